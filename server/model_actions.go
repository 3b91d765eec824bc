package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/zucenko/pachisi/game"
	"github.com/zucenko/pachisi/model"
)

const writeWait = 10 * time.Second

func NewGameServer(cfg Config) *GameServer {
	return &GameServer{
		Config:       cfg,
		GameRequests: make(chan GameRequest),
		Upgrader:     &websocket.Upgrader{},
		started:      make(chan *GameSession),
	}
}

func (s *GameServer) HandleHttpCall() http.HandlerFunc {
	timeout := s.Config.ConnectTimeout
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("HandleHttpCall connection received")

		gcas := make(chan GameContextAwaiting, 1)
		select {
		case s.GameRequests <- GameRequest{Upgrade: websocket.IsWebSocketUpgrade(r), GameContextAwaiting: gcas}:
		case <-time.After(timeout):
			log.Warn("HandleHttpCall GameRequests timed out")
			w.WriteHeader(HTTP_TIMEOUT)
			return
		}

		var gca GameContextAwaiting
		select {
		case gca = <-gcas:
			switch gca.ResponseCode {
			case GAME_INVALIDE:
				w.WriteHeader(gca.ResponseCode.ToHttp())
				return
			case GAME_READY:
			default:
				log.Errorf("HandleHttpCall unexpected response code %v", gca.ResponseCode)
				w.WriteHeader(HTTP_SERVER_ERR)
				return
			}
		case <-time.After(timeout):
			log.Warn("HandleHttpCall GameContextAwaiting timed out")
			w.WriteHeader(HTTP_TIMEOUT)
			return
		}

		con, err := s.Upgrader.Upgrade(w, r, nil)
		if err != nil {
			// Upgrade has already answered the client.
			log.WithError(err).Warn("HandleHttpCall websocket upgrade failed")
			return
		}
		defer con.Close()

		gameOver := make(chan struct{})
		select {
		case gca.GameSession.PlayerConnectRequests <- PlayerConnectRequest{Con: con, GameOver: gameOver}:
		case <-gca.GameSession.done:
			closeWith(con, websocket.CloseTryAgainLater, "game already started")
			return
		case <-time.After(timeout):
			closeWith(con, websocket.CloseTryAgainLater, "game session busy")
			return
		}

		<-gameOver
		log.WithField("session", gca.GameSession.Id).Debug("HandleHttpCall player done")
	}
}

func closeWith(con *websocket.Conn, code int, text string) {
	_ = con.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, text), time.Now().Add(time.Second))
}

// Loop hands out the session currently filling up, or opens a new one once
// the previous lobby has started its match.
func (s *GameServer) Loop(ctx context.Context) {
	log.Info("GameServer.Loop starting")
	for {
		select {
		case <-ctx.Done():
			log.Info("GameServer.Loop stopped")
			return
		case gs := <-s.started:
			if s.lobby == gs {
				s.lobby = nil
			}
		case gameReq := <-s.GameRequests:
			if !gameReq.Upgrade {
				gameReq.GameContextAwaiting <- GameContextAwaiting{ResponseCode: GAME_INVALIDE}
				continue
			}
			if s.lobby == nil {
				s.sessions++
				s.lobby = NewGameSession(s.sessions, s.Config, s.started)
				log.WithField("session", s.lobby.Id).Info("GameServer.Loop created session")
				go s.lobby.Loop(ctx)
			}
			gameReq.GameContextAwaiting <- GameContextAwaiting{
				ResponseCode: GAME_READY,
				GameSession:  s.lobby,
			}
		}
	}
}

func NewGameSession(id int, cfg Config, started chan<- *GameSession) *GameSession {
	return &GameSession{
		Id:                    id,
		State:                 GS_NEW,
		Config:                cfg,
		PlayerSessions:        make([]*PlayerSession, 0, cfg.Seats),
		PlayerConnectRequests: make(chan PlayerConnectRequest),
		started:               started,
		done:                  make(chan struct{}),
	}
}

// Loop waits for the seats to fill, then plays the match to the end.
func (gs *GameSession) Loop(ctx context.Context) {
	logger := log.WithField("session", gs.Id)
	logger.Info("GameSession.Loop start")
	defer close(gs.done)

	lobby := time.NewTimer(gs.Config.LobbyTimeout)
	defer lobby.Stop()

lobbyLoop:
	for {
		select {
		case <-ctx.Done():
			gs.State = GS_ERR
			gs.announce(ctx)
			gs.finishAll(model.ServerMessage{GameOver: &model.GameOver{Abandoned: true}})
			return
		case pcr := <-gs.PlayerConnectRequests:
			gs.addPlayer(pcr.Con, pcr.GameOver)
			if len(gs.PlayerSessions) == gs.Config.Seats {
				break lobbyLoop
			}
			gs.State = GS_WAIT
		case <-lobby.C:
			if gs.Config.FillWithBots && len(gs.PlayerSessions) > 0 {
				break lobbyLoop
			}
			lobby.Reset(gs.Config.LobbyTimeout)
		}
	}

	gs.announce(ctx)
	gs.State = GS_PLAY
	gs.play(ctx)
}

// announce tells the server loop to stop sending players here.
func (gs *GameSession) announce(ctx context.Context) {
	select {
	case gs.started <- gs:
	case <-ctx.Done():
	}
}

func (gs *GameSession) play(ctx context.Context) {
	logger := log.WithField("session", gs.Id)
	byColor := make(map[model.Color]*PlayerSession)

	gs.game = game.NewGame(
		game.WithRoller(gs.Config.Roller(gs.Id)),
		game.WithEjectHook(func(c model.Color, err error) {
			ps, ok := byColor[c]
			if !ok {
				logger.WithField("color", c).WithError(err).Warn("bot ejected")
				return
			}
			ps.State = ejectedState(err)
			ps.finish(
				model.ServerMessage{Error: err.Error()},
				model.ServerMessage{GameOver: &model.GameOver{Ejected: true, Board: gs.game.Board()}},
			)
		}),
	)

	for _, ps := range gs.PlayerSessions {
		c, err := gs.game.Register(NewRemotePolicy(ps, gs.Config.TurnTimeout))
		if err != nil {
			logger.WithError(err).Error("register player")
			ps.finish(model.ServerMessage{Error: err.Error()})
			continue
		}
		ps.Color = c
		ps.State = PS_PLAY
		byColor[c] = ps
	}
	for seat := len(gs.PlayerSessions); seat < gs.Config.Seats; seat++ {
		bot, _ := game.NewPolicy(gs.Config.BotStrategy, fmt.Sprintf("bot-%d", seat))
		if _, err := gs.game.Register(bot); err != nil {
			logger.WithError(err).Error("register bot")
		}
	}

	if err := gs.game.Start(ctx); err != nil {
		logger.WithError(err).Error("start game")
		gs.State = GS_ERR
		gs.finishAll(model.ServerMessage{Error: err.Error()})
		return
	}
	names := gs.game.Players()
	for c, ps := range byColor {
		ps.Name = names[c]
	}
	logger.WithField("players", names).Info("match started")

	winner, ok, err := gs.game.Play(ctx)
	over := &model.GameOver{Board: gs.game.Board()}
	switch {
	case ok:
		gs.State = GS_OVER
		over.Winner = &winner
		logger.WithField("winner", winner).Info("match over")
	case errors.Is(err, game.ErrNoPlayers):
		gs.State = GS_OVER
		logger.Info("match over, every player left")
	default:
		gs.State = GS_ERR
		over.Abandoned = true
		logger.WithError(err).Warn("match abandoned")
	}
	gs.finishAll(model.ServerMessage{GameOver: over})
	logger.WithField("state", gs.State.Name()).Info("GameSession.Loop end")
}

// ejectedState tells a rule breaker from a player whose connection failed.
func ejectedState(err error) PlayerSessionState {
	var v *game.Violation
	if errors.As(err, &v) {
		return PS_ERR_SEC
	}
	return PS_ERR
}

func (gs *GameSession) finishAll(last model.ServerMessage) {
	for _, ps := range gs.PlayerSessions {
		if ps.State != PS_ERR && ps.State != PS_ERR_SEC {
			ps.State = PS_OVER
		}
		ps.finish(last)
	}
}

func (gs *GameSession) addPlayer(conn *websocket.Conn, gameOver chan struct{}) {
	ps := &PlayerSession{
		State:          PS_NEW,
		Seat:           len(gs.PlayerSessions),
		GameSession:    gs,
		Conn:           conn,
		GameOver:       gameOver,
		MessagesToSend: make(chan model.ServerMessage, 10),
		Incoming:       make(chan model.ClientMessage, 1),
		dead:           make(chan struct{}),
	}
	conn.SetPingHandler(
		func(message string) error {
			err := conn.WriteControl(websocket.PongMessage, []byte(message), time.Now().Add(time.Second))
			ps.DebugLastPing = time.Now()
			ps.DebugPings++
			if err == websocket.ErrCloseSent {
				return nil
			} else if e, ok := err.(net.Error); ok && e.Timeout() {
				return nil
			}
			return err
		})
	go ps.LoopChannelRead()
	go ps.LoopChannelWrite()
	gs.PlayerSessions = append(gs.PlayerSessions, ps)
	ps.logger().Info("GameSession.addPlayer")
}

// logger only uses fields fixed before the pumps start.
func (ps *PlayerSession) logger() *log.Entry {
	return log.WithFields(log.Fields{"session": ps.GameSession.Id, "seat": ps.Seat})
}

func (ps *PlayerSession) markDead() {
	ps.deadOnce.Do(func() {
		close(ps.dead)
	})
}

// finish queues the last messages and lets the write pump hang up. Only the
// session goroutine calls it.
func (ps *PlayerSession) finish(last ...model.ServerMessage) {
	if ps.finished {
		return
	}
	ps.finished = true
	ps.logger().WithField("state", ps.State.Name()).Debug("PlayerSession.finish")
	for _, m := range last {
		select {
		case ps.MessagesToSend <- m:
		default:
			ps.logger().Warn("PlayerSession.finish dropping message, queue full")
		}
	}
	close(ps.MessagesToSend)
}

func (ps *PlayerSession) LoopChannelRead() {
	defer ps.markDead()
	for {
		var cm model.ClientMessage
		if err := ps.Conn.ReadJSON(&cm); err != nil {
			var closeErr *websocket.CloseError
			if errors.As(err, &closeErr) || errors.Is(err, net.ErrClosed) {
				ps.logger().Debug("LoopChannelRead connection closed")
			} else {
				ps.logger().WithError(err).Warn("LoopChannelRead failed")
			}
			return
		}
		ps.DebugLastMessage = time.Now()
		ps.DebugInMessages++

		select {
		case ps.Incoming <- cm:
		default:
			ps.logger().Warn("LoopChannelRead dropping unexpected message")
		}
	}
}

// LoopChannelWrite drains MessagesToSend until finish closes it, then
// releases the HTTP handler holding the connection.
func (ps *PlayerSession) LoopChannelWrite() {
	defer close(ps.GameOver)
	broken := false
	for mes := range ps.MessagesToSend {
		if broken {
			continue
		}
		_ = ps.Conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := ps.Conn.WriteJSON(mes); err != nil {
			ps.logger().WithError(err).Warn("LoopChannelWrite failed")
			broken = true
			ps.markDead()
			continue
		}
		ps.DebugOutMessages++
	}
	if !broken {
		closeWith(ps.Conn, websocket.CloseNormalClosure, "game over")
	}
}
