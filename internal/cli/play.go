package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/alphagomoku"
	"github.com/alphagomoku/game"
)

func Play() *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play a game against the random agent",
		Long: heredoc.Doc(`play starts a game between you, playing X and moving first,
			and an agent that picks uniformly among the empty cells.

			Moves are entered as "row,col", counted from zero at the top left.
		`),
		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			size, win, seed, err := gameFlags(cmd)
			if err != nil {
				return err
			}
			g, err := game.New(size, win)
			if err != nil {
				return err
			}
			_, err = play(cmd.InOrStdin(), cmd.OutOrStdout(), g, alphagomoku.NewRandomSearcher(seed))
			return err
		},
	}
}

// play runs an interactive game in which the human is PlayerOne and returns the winner.
func play(in io.Reader, out io.Writer, g *game.Gomoku, opponent alphagomoku.Searcher) (game.Player, error) {
	scanner := bufio.NewScanner(in)
	for ended, _ := g.Ended(); !ended; ended, _ = g.Ended() {
		if err := g.Render(out); err != nil {
			return game.Empty, err
		}

		var move int
		if g.Turn() == game.PlayerOne {
			var err error
			if move, err = readMove(scanner, out, g); err != nil {
				return game.Empty, err
			}
		} else {
			var err error
			if move, _, err = opponent.Search(g); err != nil {
				return game.Empty, err
			}
			row, col := g.Board().Coord(move)
			fmt.Fprintf(out, "Opponent plays %d,%d\n", row, col)
		}
		if _, _, _, _, err := g.Step(move); err != nil {
			return game.Empty, err
		}
	}

	if err := g.Render(out); err != nil {
		return game.Empty, err
	}
	winner := g.Winner()
	switch winner {
	case game.PlayerOne:
		fmt.Fprintln(out, "You win!")
	case game.PlayerTwo:
		fmt.Fprintln(out, "You lose!")
	default:
		fmt.Fprintln(out, "It's a draw!")
	}
	return winner, nil
}

// readMove prompts until the human enters a legal move.
func readMove(scanner *bufio.Scanner, out io.Writer, g *game.Gomoku) (int, error) {
	for {
		fmt.Fprint(out, "Enter your move: ")
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return game.NoMove, err
			}
			return game.NoMove, io.ErrUnexpectedEOF
		}
		move, err := ParseMove(scanner.Text(), g.BoardSize())
		if err == nil && g.Check(move) {
			return move, nil
		}
		fmt.Fprintln(out, "Invalid move. Please try again.")
	}
}

// ParseMove converts "row,col" into a flattened index on a board of the given size.
func ParseMove(s string, size int) (int, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return game.NoMove, errors.Errorf("expected row,col, got %q", s)
	}
	row, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return game.NoMove, errors.Wrapf(err, "bad row in %q", s)
	}
	col, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return game.NoMove, errors.Wrapf(err, "bad column in %q", s)
	}
	if row < 0 || row >= size || col < 0 || col >= size {
		return game.NoMove, errors.Errorf("%d,%d is off a %d×%d board", row, col, size, size)
	}
	return row*size + col, nil
}
