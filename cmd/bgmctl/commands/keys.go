package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/srirammulukuntla11/vocalmaster/internal/synth"
)

func newKeysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "List supported keys and styles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "KEY\tROOT (Hz)")
			for _, k := range synth.PitchClasses {
				fmt.Fprintf(w, "%s\t%.2f\n", k, synth.KeyFrequency(k))
			}
			fmt.Fprintln(w)
			fmt.Fprintln(w, "STYLE\tCHORDS\tBEATS/CHORD\tDRUMS")
			for _, st := range []synth.Style{synth.StyleAcoustic, synth.StylePop, synth.StyleBallad} {
				p := st.Profile()
				chords := make([]string, len(p.Chords))
				for i, c := range p.Chords {
					chords[i] = c.String()
				}
				drums := fmt.Sprintf("%.1f", p.DrumGain)
				if p.HalfTimeDrums {
					drums += " half-time"
				}
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", st, strings.Join(chords, " "), p.BeatsPerChord, drums)
			}
			return w.Flush()
		},
	}
}
