package cmd

import (
	"fmt"

	"github.com/bnema/fhe-strength-tracker/internal/domain"
	"github.com/bnema/fhe-strength-tracker/internal/version"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version and the ledger protocol it speaks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "st %s (ledger protocol %d)\n", version.Version, domain.ProtocolID)
			return err
		},
	}
}
