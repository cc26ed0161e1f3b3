package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDeployCmd(loader *appLoader) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy the ledger on the configured chain and record its address",
		Args:  cobra.NoArgs,
		RunE: loader.run(func(cmd *cobra.Command, app *app, _ []string) error {
			deployment, err := app.tracker.Deploy(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, deploymentJSON{
					ChainID:    deployment.Chain.ID,
					ChainName:  deployment.Chain.Name,
					Address:    deployment.Address.Hex(),
					ProtocolID: deployment.ProtocolID,
					DeployedAt: deployment.DeployedAt,
				})
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Deployed ledger at %s on %s\n",
				deployment.Address.Hex(), chainLabel(deployment.Chain.Name, deployment.Chain.ID))
			return err
		}),
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}
