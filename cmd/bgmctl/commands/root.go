package commands

import (
	"math/rand/v2"

	"github.com/spf13/cobra"
)

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "bgmctl",
		Short: "Render and inspect VocalMaster backing tracks",
		Long: `bgmctl - offline tools for the VocalMaster BGM synthesizer.

Examples:
  # Render thirty seconds of pop in G at 100 BPM
  bgmctl render -k G -t 100 -s pop -o g-pop.wav

  # Reproducible render
  bgmctl render --seed 42 -o take.wav

  # Check what was written
  bgmctl inspect take.wav`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newRenderCmd(),
		newKeysCmd(),
		newAnalyzeCmd(),
		newInspectCmd(),
	)
	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// newRand returns a generator seeded with seed when the flag was given and
// from the runtime otherwise.
func newRand(cmd *cobra.Command, seed uint64) *rand.Rand {
	if cmd.Flags().Changed("seed") {
		return rand.New(rand.NewPCG(seed, 0))
	}
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}
