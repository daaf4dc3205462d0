package cli

import (
	"fmt"
	"io"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/alphagomoku"
	"github.com/alphagomoku/game"
)

func SelfPlay() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "selfplay",
		Short: "Generate training examples with the random agent",
		Long: heredoc.Doc(`selfplay lets the random agent play itself for a number of
			episodes, encodes every position from the side to move and
			reports the results and the shapes of the encoded batch.
		`),
		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			size, win, seed, err := gameFlags(cmd)
			if err != nil {
				return err
			}
			episodes, err := cmd.Flags().GetInt("episodes")
			if err != nil {
				return err
			}
			return selfPlay(cmd.OutOrStdout(), log.Logger, size, win, episodes, seed)
		},
	}
	cmd.Flags().IntP("episodes", "n", 10, "number of self play games")
	return cmd
}

func selfPlay(out io.Writer, logger zerolog.Logger, size, win, episodes int, seed uint64) error {
	if episodes < 1 {
		return errors.Errorf("need at least one episode, got %d", episodes)
	}
	g, err := game.New(size, win)
	if err != nil {
		return err
	}
	agent := alphagomoku.NewAgent("random", alphagomoku.NewRandomSearcher(seed))
	arena := alphagomoku.MakeArena(g, agent, agent, logger, "selfplay")
	defer arena.Close()

	var records []game.PlayRecord
	results := make(map[game.Player]int)
	for e := 0; e < episodes; e++ {
		exs, err := arena.SelfPlay()
		if err != nil {
			return err
		}
		if len(exs) == 0 {
			continue
		}
		// the last mover either won or drew
		last := exs[len(exs)-1]
		switch last.Outcome {
		case 1:
			results[last.Mover]++
		default:
			results[game.Empty]++
		}
		logger.Info().Int("episode", e).Int("plies", len(exs)).Msg("episode done")
		records = append(records, exs...)
	}

	xs, pis, zs, err := game.EncodeBatch(records)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "X wins: %d, O wins: %d, draws: %d\n",
		results[game.PlayerOne], results[game.PlayerTwo], results[game.Empty])
	fmt.Fprintf(out, "inputs %v, policies %v, values %v\n", xs.Shape(), pis.Shape(), zs.Shape())
	return nil
}
