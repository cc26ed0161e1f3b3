package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newProtocolCmd(loader *appLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "protocol",
		Short: "Print the deployed ledger's protocol id",
		Args:  cobra.NoArgs,
		RunE: loader.run(func(cmd *cobra.Command, app *app, _ []string) error {
			id, err := app.tracker.ProtocolID(cmd.Context())
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), id)
			return err
		}),
	}
}
