package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/srirammulukuntla11/vocalmaster/internal/pcm"
	"github.com/srirammulukuntla11/vocalmaster/internal/synth"
)

func newRenderCmd() *cobra.Command {
	var (
		key      string
		tempo    int
		style    string
		duration float64
		seed     uint64
		output   string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a backing track to a WAV file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			composer := synth.NewComposer(newRand(cmd, seed))
			track, err := composer.Synthesize(key, tempo, style, duration)
			if err != nil {
				return err
			}
			if err := pcm.WriteFile(output, track); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s: %s %s @ %d BPM, %.2fs, %d bytes\n",
				output, track.Key, track.Style, track.Tempo, track.Seconds(), pcm.EncodedSize(len(track.Samples)))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&key, "key", "k", synth.DefaultKey, "musical key (C, C#, D ... B)")
	f.IntVarP(&tempo, "tempo", "t", 120, "tempo in BPM")
	f.StringVarP(&style, "style", "s", "acoustic", "style: acoustic, pop or ballad")
	f.Float64VarP(&duration, "duration", "d", 30, "length in seconds")
	f.Uint64Var(&seed, "seed", 0, "seed for the percussion noise")
	f.StringVarP(&output, "output", "o", "bgm_track.wav", "output file")
	return cmd
}
