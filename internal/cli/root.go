package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Root returns the gomoku command with all of its subcommands registered.
func Root() *cobra.Command {
	root := &cobra.Command{
		Use:  "gomoku",
		Args: cobra.NoArgs,

		SilenceErrors: true,
		SilenceUsage:  true,

		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// If --trace flag is provided, set logging level to Trace.
			if cmd.Flag("trace").Changed {
				zerolog.SetGlobalLevel(zerolog.TraceLevel)
			}
		},
	}

	// global flags
	root.PersistentFlags().BoolP("trace", "t", false, "Show Trace Information")
	root.PersistentFlags().Int("size", 6, "board size")
	root.PersistentFlags().Int("win", 4, "stones in a row needed to win")
	root.PersistentFlags().Uint64("seed", 1, "seed of the random agents")

	root.AddCommand(Play())
	root.AddCommand(SelfPlay())

	return root
}

// gameFlags reads the board flags shared by every subcommand.
func gameFlags(cmd *cobra.Command) (size, win int, seed uint64, err error) {
	flags := cmd.Flags()
	if size, err = flags.GetInt("size"); err != nil {
		return
	}
	if win, err = flags.GetInt("win"); err != nil {
		return
	}
	seed, err = flags.GetUint64("seed")
	return
}
