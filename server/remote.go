package server

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/zucenko/pachisi/model"
)

var (
	ErrDisconnected = errors.New("player disconnected")
	ErrTurnTimeout  = errors.New("player did not answer in time")
	ErrBadReply     = errors.New("unexpected reply")
)

// RemotePolicy is a game.Policy played by the client on the other end of a
// PlayerSession. Every question waits at most timeout for its answer.
type RemotePolicy struct {
	session *PlayerSession
	timeout time.Duration
}

func NewRemotePolicy(ps *PlayerSession, timeout time.Duration) *RemotePolicy {
	return &RemotePolicy{session: ps, timeout: timeout}
}

func (p *RemotePolicy) StartGame(ctx context.Context, color model.Color) (string, error) {
	reply, err := p.ask(ctx, model.ServerMessage{StartGame: &model.StartGame{Color: color}})
	if err != nil {
		return "", err
	}
	if reply.Name == "" {
		return "", fmt.Errorf("%w: start-game wants a name", ErrBadReply)
	}
	return reply.Name, nil
}

func (p *RemotePolicy) DoMove(ctx context.Context, board model.Board, dice model.Dice) ([]model.Move, error) {
	reply, err := p.ask(ctx, model.ServerMessage{DoMove: &model.DoMove{Board: board, Dice: dice}})
	if err != nil {
		return nil, err
	}
	return reply.Moves, nil
}

func (p *RemotePolicy) DoublesPenalty(ctx context.Context) error {
	reply, err := p.ask(ctx, model.ServerMessage{DoublesPenalty: &model.DoublesPenalty{}})
	if err != nil {
		return err
	}
	if !reply.Void {
		return fmt.Errorf("%w: doubles-penalty wants void", ErrBadReply)
	}
	return nil
}

func (p *RemotePolicy) ask(ctx context.Context, question model.ServerMessage) (model.ClientMessage, error) {
	ps := p.session
	if ps.finished {
		return model.ClientMessage{}, ErrDisconnected
	}

	// A late answer to an earlier question must not be taken for this one.
	select {
	case <-ps.Incoming:
	default:
	}

	timer := time.NewTimer(p.timeout)
	defer timer.Stop()

	select {
	case ps.MessagesToSend <- question:
	case <-ps.dead:
		return model.ClientMessage{}, ErrDisconnected
	case <-timer.C:
		return model.ClientMessage{}, ErrTurnTimeout
	case <-ctx.Done():
		return model.ClientMessage{}, ctx.Err()
	}

	select {
	case reply := <-ps.Incoming:
		return reply, nil
	case <-ps.dead:
		return model.ClientMessage{}, ErrDisconnected
	case <-timer.C:
		return model.ClientMessage{}, ErrTurnTimeout
	case <-ctx.Done():
		return model.ClientMessage{}, ctx.Err()
	}
}
