// Package client plays a match against the server over a websocket, with a
// game.Policy choosing the moves.
package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/zucenko/pachisi/game"
	"github.com/zucenko/pachisi/model"
)

var ErrGameError = errors.New("server reported an error")

// Client is one seat at a remote match.
type Client struct {
	URL    string
	Policy game.Policy
	Dialer *websocket.Dialer

	color model.Color
}

func New(url string, policy game.Policy) *Client {
	return &Client{URL: url, Policy: policy, Dialer: websocket.DefaultDialer}
}

// Play connects and answers the server until it announces the end of the
// match. Cancelling ctx closes the connection.
func (c *Client) Play(ctx context.Context) (model.GameOver, error) {
	conn, _, err := c.Dialer.DialContext(ctx, c.URL, nil)
	if err != nil {
		return model.GameOver{}, fmt.Errorf("dial %s: %w", c.URL, err)
	}
	defer conn.Close()

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "leaving"), time.Now().Add(time.Second))
			conn.Close()
		case <-stop:
		}
	}()

	var lastErr string
	for {
		var msg model.ServerMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if ctx.Err() != nil {
				return model.GameOver{}, ctx.Err()
			}
			if lastErr != "" {
				return model.GameOver{}, fmt.Errorf("%w: %s", ErrGameError, lastErr)
			}
			return model.GameOver{}, fmt.Errorf("read: %w", err)
		}

		if msg.Error != "" {
			lastErr = msg.Error
			log.WithField("color", c.color).Warn(msg.Error)
			continue
		}
		if msg.GameOver != nil {
			c.gameOver(*msg.GameOver)
			return *msg.GameOver, nil
		}

		reply, ok, err := c.answer(ctx, msg)
		if err != nil {
			return model.GameOver{}, err
		}
		if !ok {
			continue
		}
		if err := conn.WriteJSON(reply); err != nil {
			return model.GameOver{}, fmt.Errorf("write: %w", err)
		}
	}
}

// answer runs the policy for one question. It reports false for frames that
// ask nothing.
func (c *Client) answer(ctx context.Context, msg model.ServerMessage) (model.ClientMessage, bool, error) {
	switch {
	case msg.StartGame != nil:
		c.color = msg.StartGame.Color
		name, err := c.Policy.StartGame(ctx, c.color)
		if err != nil {
			return model.ClientMessage{}, false, fmt.Errorf("start game: %w", err)
		}
		log.WithFields(log.Fields{"color": c.color, "name": name}).Info("seated")
		return model.ClientMessage{Name: name}, true, nil
	case msg.DoMove != nil:
		moves, err := c.Policy.DoMove(ctx, msg.DoMove.Board, msg.DoMove.Dice)
		if err != nil {
			return model.ClientMessage{}, false, fmt.Errorf("do move: %w", err)
		}
		log.WithFields(log.Fields{"color": c.color, "dice": msg.DoMove.Dice.String(), "moves": len(moves)}).Debug("moved")
		return model.ClientMessage{Moves: moves}, true, nil
	case msg.DoublesPenalty != nil:
		if err := c.Policy.DoublesPenalty(ctx); err != nil {
			return model.ClientMessage{}, false, fmt.Errorf("doubles penalty: %w", err)
		}
		return model.ClientMessage{Void: true}, true, nil
	}
	return model.ClientMessage{}, false, nil
}

func (c *Client) gameOver(over model.GameOver) {
	entry := log.WithFields(log.Fields{"color": c.color, "ejected": over.Ejected, "abandoned": over.Abandoned})
	if over.Winner != nil {
		entry = entry.WithField("winner", *over.Winner)
	}
	entry.Info("game over")
}

// Color is the seat the server assigned, once StartGame has arrived.
func (c *Client) Color() model.Color {
	return c.color
}
