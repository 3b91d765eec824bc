package server

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/zucenko/pachisi/game"
	"github.com/zucenko/pachisi/model"
)

type GameServer struct {
	Config       Config
	GameRequests chan GameRequest
	Upgrader     *websocket.Upgrader

	// owned by Loop
	lobby    *GameSession
	sessions int
	started  chan *GameSession
}

type GameSessionState int

const (
	GS_NEW GameSessionState = iota
	GS_WAIT
	GS_PLAY
	GS_ERR
	GS_OVER
)

// GameSession is one match: a lobby that fills up, then a game.Game played
// by one RemotePolicy per connection plus bots for empty seats.
type GameSession struct {
	Id                    int
	State                 GameSessionState
	Config                Config
	PlayerSessions        []*PlayerSession
	PlayerConnectRequests chan PlayerConnectRequest

	game    *game.Game
	started chan<- *GameSession
	done    chan struct{}
}

type PlayerSessionState int

const (
	PS_NEW PlayerSessionState = iota + 1
	PS_PLAY
	PS_OVER
	PS_ERR     // dropped, timed out or failed to start
	PS_ERR_SEC // ejected for breaking the rules
)

// PlayerSession is one websocket connection. The session goroutine is the
// only writer of MessagesToSend; the read pump is the only writer of Incoming.
type PlayerSession struct {
	State       PlayerSessionState
	Seat        int
	Color       model.Color
	Name        string
	GameSession *GameSession
	Conn        *websocket.Conn
	GameOver    chan struct{}

	MessagesToSend chan model.ServerMessage
	Incoming       chan model.ClientMessage

	dead     chan struct{}
	deadOnce sync.Once
	finished bool

	DebugInMessages  int
	DebugOutMessages int
	DebugLastMessage time.Time
	DebugLastPing    time.Time
	DebugPings       int
}
