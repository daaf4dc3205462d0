package alphagomoku

import (
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/alphagomoku/game"
)

// Arena represents a game arena: one game and the two agents playing it.
type Arena struct {
	game                    *game.Gomoku
	bestAgent, currentAgent *Agent

	// state
	currentPlayer *Agent
	logger        zerolog.Logger

	name       string
	epoch      int // training epoch
	gameNumber int // which game is this in
}

// MakeArena makes an arena given a game.
func MakeArena(g *game.Gomoku, best, current *Agent, logger zerolog.Logger, name string) Arena {
	if name == "" {
		name = "UNKNOWN GAME"
	}
	return Arena{
		game:         g,
		bestAgent:    best,
		currentAgent: current,
		logger:       logger.With().Str("arena", name).Logger(),
		name:         name,
	}
}

// SelfPlay lets the current agent play both sides of a game and returns one record per ply.
//
// Each record holds the position before the move, from the point of view of
// the mover, and its Outcome is +1 if the mover went on to win, -1 if it lost
// and 0 for a draw.
func (a *Arena) SelfPlay() (records []game.PlayRecord, err error) {
	a.game.Reset()
	defer a.game.Reset()

	a.logger.Debug().Msg("self playing")
	var ended bool
	var winner game.Player
	for ended, winner = a.game.Ended(); !ended; ended, winner = a.game.Ended() {
		board := a.game.Board()
		mover := a.game.Turn()
		move, policy, err := a.move(a.currentAgent)
		if err != nil {
			return nil, err
		}
		if policy == nil {
			policy = oneHot(move, a.game.ActionSpace())
		}
		a.logger.Trace().Stringer("player", mover).Int("move", move).Msg("played")
		if !validPolicies(policy) {
			continue
		}
		records = append(records, game.PlayRecord{
			Board:  board,
			Mover:  mover,
			Policy: policy,
			Action: move,
		})
	}

	for i := range records {
		records[i].Outcome = outcome(records[i].Mover, winner)
	}
	a.logger.Debug().Stringer("winner", winner).Int("plies", len(records)).Msg("self play over")
	return records, nil
}

// Play plays a game, and records who is the winner. If it is a draw, the returned player is Empty.
// The current agent plays first.
func (a *Arena) Play() (game.Player, error) {
	a.game.Reset()
	defer a.game.Reset()

	a.currentAgent.Player = game.PlayerOne
	a.bestAgent.Player = game.PlayerTwo
	a.currentPlayer = a.currentAgent

	var ended bool
	var winner game.Player
	for ended, winner = a.game.Ended(); !ended; ended, winner = a.game.Ended() {
		if _, _, err := a.move(a.currentPlayer); err != nil {
			return game.Empty, err
		}
		a.switchPlayer()
	}

	a.currentAgent.record(winner)
	a.bestAgent.record(winner)
	a.logger.Info().Int("game", a.gameNumber).Stringer("winner", winner).Msg("arena game over")
	return winner, nil
}

// move asks agent for a move and applies it.
func (a *Arena) move(agent *Agent) (int, []float32, error) {
	move, policy, err := agent.Search(a.game)
	if err != nil {
		return game.NoMove, nil, errors.WithMessagef(err, "agent %s failed to search", agent.Name())
	}
	if _, _, _, _, err = a.game.Step(move); err != nil {
		return game.NoMove, nil, errors.WithMessagef(err, "agent %s", agent.Name())
	}
	return move, policy, nil
}

func (a *Arena) switchPlayer() {
	switch a.currentPlayer {
	case a.currentAgent:
		a.currentPlayer = a.bestAgent
	case a.bestAgent:
		a.currentPlayer = a.currentAgent
	}
}

// Close closes both agents.
func (a *Arena) Close() error {
	var errs error
	if err := a.bestAgent.Close(); err != nil {
		errs = multierror.Append(errs, err)
	}
	if a.currentAgent != a.bestAgent {
		if err := a.currentAgent.Close(); err != nil {
			errs = multierror.Append(errs, err)
		}
	}
	return errs
}

// Epoch returns the current Epoch
func (a *Arena) Epoch() int { return a.epoch }

// GameNumber returns the number of the arena game being played
func (a *Arena) GameNumber() int { return a.gameNumber }

// Name of the game
func (a *Arena) Name() string { return a.name }

// State of the game
func (a *Arena) State() game.State { return a.game }

// outcome converts the absolute winner into the result from mover's side.
func outcome(mover, winner game.Player) float32 {
	switch winner {
	case game.Empty:
		return 0
	case mover:
		return 1
	}
	return -1
}

func oneHot(i, n int) []float32 {
	retVal := make([]float32, n)
	retVal[i] = 1
	return retVal
}
