package alphagomoku

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"
	"gorgonia.org/tensor"

	dual "github.com/alphagomoku/dualnet"
	"github.com/alphagomoku/game"
)

// AZ is the top level structure and the entry point of the API.
// It drives self-play and arena games and hands the resulting examples to a Trainer.
// AZ stands for AlphaZero
type AZ struct {
	// state
	Arena

	// config
	nnConf          dual.Config
	trainer         Trainer
	updateThreshold float32
	maxExamples     int
	r               *rand.Rand
}

// New AlphaZero structure. best and current may be the same agent, in which case
// Learn can only be run without arena games.
func New(conf Config, best, current *Agent, trainer Trainer, logger zerolog.Logger) (*AZ, error) {
	if !conf.IsValid() {
		return nil, errors.Errorf("config %q is not valid", conf.Name)
	}
	g, err := game.New(conf.BoardSize, conf.WinLen)
	if err != nil {
		return nil, err
	}
	return &AZ{
		Arena:           MakeArena(g, best, current, logger, conf.Name),
		nnConf:          conf.NNConf,
		trainer:         trainer,
		updateThreshold: float32(conf.UpdateThreshold),
		maxExamples:     conf.MaxExamples,
		r:               rand.New(rand.NewSource(conf.Seed)),
	}, nil
}

// Learn learns for iterations. It self-plays for episodes, and then trains on the self play examples.
// When arenaGames is positive the current agent then plays the best agent, and a trainer that is a
// Promoter is told to promote when the current agent wins more than the update threshold.
func (a *AZ) Learn(iters, episodes, arenaGames int) error {
	if arenaGames > 0 && a.currentAgent == a.bestAgent {
		return errors.Errorf("arena games need two agents, %s plays both sides", a.currentAgent.Name())
	}
	for a.epoch = 0; a.epoch < iters; a.epoch++ {
		var ex []game.PlayRecord
		a.logger.Info().Int("epoch", a.epoch).Msg("self play")
		for e := 0; e < episodes; e++ {
			exs, err := a.SelfPlay()
			if err != nil {
				return errors.WithMessagef(err, "epoch %d episode %d", a.epoch, e)
			}
			ex = append(ex, exs...)
		}

		Xs, Policies, Values, err := a.prepareExamples(ex)
		if err != nil {
			return err
		}

		a.logger.Info().Int("examples", Xs.Shape()[0]).Msg("begin training")
		if err = a.trainer.Train(Xs, Policies, Values); err != nil {
			return errors.WithMessage(err, "Train fail")
		}

		if arenaGames <= 0 {
			continue
		}
		ratio, err := a.Compete(arenaGames)
		if err != nil {
			return err
		}
		if ratio <= a.updateThreshold {
			continue
		}
		if p, ok := a.trainer.(Promoter); ok {
			a.logger.Info().Float32("ratio", ratio).Msg("promoting current agent")
			if err = p.Promote(); err != nil {
				return errors.WithMessage(err, "Promote fail")
			}
		}
	}
	return nil
}

// Compete plays games between the current and the best agent and returns the
// share of decided games the current agent won.
func (a *AZ) Compete(games int) (float32, error) {
	if a.currentAgent == a.bestAgent {
		return 0, errors.Errorf("agent %s cannot compete against itself", a.currentAgent.Name())
	}
	a.currentAgent.resetStats()
	a.bestAgent.resetStats()
	for a.gameNumber = 0; a.gameNumber < games; a.gameNumber++ {
		if _, err := a.Play(); err != nil {
			return 0, errors.WithMessagef(err, "arena game %d", a.gameNumber)
		}
	}

	cw, cl, cd := a.currentAgent.Stats()
	bw, _, _ := a.bestAgent.Stats()
	a.logger.Info().Int("epoch", a.Epoch()).
		Float32("wins", cw).Float32("loss", cl).Float32("draw", cd).
		Msg("current agent results")

	// plus 1 in case all draw it will be divided by 0
	return cw / (cw + bw + 1), nil
}

func (a *AZ) prepareExamples(examples []game.PlayRecord) (Xs, Policies, Values *tensor.Dense, err error) {
	if len(examples) == 0 {
		return nil, nil, nil, errors.New("no examples, probably self play produced only invalid policies")
	}
	shuffleExamples(a.r, examples)
	if a.maxExamples > 0 && len(examples) > a.maxExamples {
		examples = examples[:a.maxExamples]
	}
	if Xs, Policies, Values, err = game.EncodeBatch(examples); err != nil {
		return nil, nil, nil, err
	}
	if err = a.nnConf.CheckInput(Xs); err != nil {
		return nil, nil, nil, err
	}
	return Xs, Policies, Values, nil
}

func shuffleExamples(r *rand.Rand, examples []game.PlayRecord) {
	r.Shuffle(len(examples), func(i, j int) {
		examples[i], examples[j] = examples[j], examples[i]
	})
}
