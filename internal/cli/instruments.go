package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/SAP-F-2025/trait-assessment-service/internal/models"
	"github.com/spf13/cobra"
)

func newInstrumentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "instruments",
		Short: "Browse the instrument catalog",
	}
	cmd.AddCommand(newInstrumentsListCmd(), newInstrumentsShowCmd())
	return cmd
}

func newInstrumentsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every instrument",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadCatalog()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tMODE\tFAMILY\tQUESTIONS\tDIMENSIONS")
			for _, s := range c.Summaries() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\n", s.ID, s.ScoringMode, s.Family, s.QuestionCount, len(s.Dimensions))
			}
			return w.Flush()
		},
	}
}

func newInstrumentsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print an instrument's questions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadCatalog()
			if err != nil {
				return err
			}
			inst, err := c.GetInstrument(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s)\n%s\n", inst.Title, inst.ID, inst.Description)
			fmt.Fprintf(out, "mode=%s denominator=%s family=%s dimensions=%v\n",
				inst.ScoringMode, inst.DenominatorPolicy, inst.Family, inst.Dimensions)
			if len(inst.NonScoring) > 0 {
				fmt.Fprintf(out, "non-scoring=%v\n", inst.NonScoring)
			}
			fmt.Fprintln(out)

			for _, q := range inst.Questions {
				fmt.Fprintf(out, "[%s] %s\n", q.ID, q.Prompt)
				for _, o := range q.Options {
					fmt.Fprintf(out, "  %s) %s -> %s\n", o.ID, o.Text, o.Dimension)
				}
				for _, slot := range models.RankedSlots {
					if text, ok := q.Slots[slot]; ok {
						fmt.Fprintf(out, "  %s) %s -> %s\n", slot, text, models.SlotDimensions[slot])
					}
				}
			}
			return nil
		},
	}
}
