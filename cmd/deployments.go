package cmd

import (
	"context"
	"fmt"

	"github.com/bnema/fhe-strength-tracker/internal/domain"
	"github.com/spf13/cobra"
)

const (
	deploymentLive        = "live"
	deploymentMissing     = "missing"
	deploymentOtherChain  = "other chain"
	deploymentPlaceholder = "not deployed"
)

type deploymentEntryJSON struct {
	deploymentJSON
	State string `json:"state"`
}

type deploymentsJSON struct {
	ChainID     uint64                `json:"chainId"`
	HeadBlock   uint64                `json:"headBlock"`
	Deployments []deploymentEntryJSON `json:"deployments"`
}

func newDeploymentsCmd(loader *appLoader) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "deployments",
		Short: "List recorded ledger deployments and check them against the local chain",
		Args:  cobra.NoArgs,
		RunE: loader.run(func(cmd *cobra.Command, app *app, _ []string) error {
			ctx := cmd.Context()

			deployments, err := app.deployments.List(ctx)
			if err != nil {
				return err
			}
			head, err := app.host.Head(ctx)
			if err != nil {
				return fmt.Errorf("read chain head: %w", err)
			}

			out := deploymentsJSON{
				ChainID:     app.host.ChainID(),
				HeadBlock:   head.Number,
				Deployments: make([]deploymentEntryJSON, 0, len(deployments)),
			}
			for _, deployment := range deployments {
				state, err := deploymentState(ctx, app, deployment)
				if err != nil {
					return err
				}
				out.Deployments = append(out.Deployments, deploymentEntryJSON{
					deploymentJSON: deploymentJSON{
						ChainID:    deployment.Chain.ID,
						ChainName:  deployment.Chain.Name,
						Address:    deployment.Address.Hex(),
						ProtocolID: deployment.ProtocolID,
						DeployedAt: deployment.DeployedAt,
					},
					State: state,
				})
			}

			if asJSON {
				return writeJSON(cmd, out)
			}

			w := cmd.OutOrStdout()
			if _, err := fmt.Fprintf(w, "local chain %d at block %d\n", out.ChainID, out.HeadBlock); err != nil {
				return err
			}
			if len(out.Deployments) == 0 {
				_, err := fmt.Fprintln(w, "no deployments recorded")
				return err
			}
			for _, entry := range out.Deployments {
				if _, err := fmt.Fprintf(w, "%s  %s  %s\n",
					chainLabel(entry.ChainName, entry.ChainID), entry.Address, entry.State); err != nil {
					return err
				}
			}

			return nil
		}),
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

// deploymentState checks a recorded address against the local host. An
// address without code means the state directory was reset after deploying.
func deploymentState(ctx context.Context, app *app, deployment domain.Deployment) (string, error) {
	if !deployment.Deployed() {
		return deploymentPlaceholder, nil
	}
	if deployment.Chain.ID != app.host.ChainID() {
		return deploymentOtherChain, nil
	}

	deployed, err := app.host.HasCode(ctx, deployment.Address)
	if err != nil {
		return "", fmt.Errorf("check code at %s: %w", deployment.Address.Hex(), err)
	}
	if !deployed {
		return deploymentMissing, nil
	}

	return deploymentLive, nil
}
