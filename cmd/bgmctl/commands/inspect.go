package commands

import (
	"fmt"
	"math"
	"os"

	"github.com/spf13/cobra"

	"github.com/srirammulukuntla11/vocalmaster/internal/pcm"
)

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file.wav>...",
		Short: "Show the format of WAV files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, path := range args {
				if err := inspectFile(cmd, path); err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
			}
			return nil
		},
	}
}

func inspectFile(cmd *cobra.Command, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	track, err := pcm.Decode(f)
	if err != nil {
		return err
	}

	var peak int
	for _, s := range track.Samples {
		peak = max(peak, int(math.Abs(float64(s))))
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%s\n", path)
	fmt.Fprintf(w, "  format:   PCM %d-bit, %d channel\n", pcm.BitDepth, pcm.Channels)
	fmt.Fprintf(w, "  rate:     %d Hz\n", track.SampleRate)
	fmt.Fprintf(w, "  samples:  %d\n", len(track.Samples))
	fmt.Fprintf(w, "  duration: %.3fs\n", track.Seconds())
	fmt.Fprintf(w, "  peak:     %d (%.3f of full scale)\n", peak, float64(peak)/32767)
	return nil
}
