// Package cli implements traitctl, an offline front end to the scoring engine
// and the embedded instrument catalog.
package cli

import (
	"github.com/SAP-F-2025/trait-assessment-service/internal/catalog"
	"github.com/SAP-F-2025/trait-assessment-service/internal/validator"
	"github.com/spf13/cobra"
)

func Execute() error {
	return NewRootCmd().Execute()
}

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "traitctl",
		Short:         "Inspect trait instruments and score answer files offline",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(newInstrumentsCmd())
	root.AddCommand(newScoreCmd())
	return root
}

func loadCatalog() (*catalog.Catalog, error) {
	return catalog.Load(validator.New())
}
