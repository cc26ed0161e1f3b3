package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/bnema/fhe-strength-tracker/internal/application"
	"github.com/spf13/cobra"
)

type deploymentJSON struct {
	ChainID    uint64    `json:"chainId"`
	ChainName  string    `json:"chainName"`
	Address    string    `json:"address"`
	ProtocolID uint64    `json:"protocolId"`
	DeployedAt time.Time `json:"deployedAt"`
}

type statusJSON struct {
	Connected  bool            `json:"connected"`
	Account    string          `json:"account,omitempty"`
	ChainID    uint64          `json:"chainId"`
	ChainName  string          `json:"chainName"`
	Deployment *deploymentJSON `json:"deployment,omitempty"`
	Recording  bool            `json:"recording"`
	CanRecord  bool            `json:"canRecord"`
	Reason     string          `json:"reason,omitempty"`
}

func newStatusCmd(loader *appLoader) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show wallet, deployment and encryption readiness",
		Args:  cobra.NoArgs,
		RunE: loader.run(func(cmd *cobra.Command, app *app, _ []string) error {
			status, err := app.tracker.Status(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, toStatusJSON(status))
			}

			return writeStatusText(cmd.OutOrStdout(), status)
		}),
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func toStatusJSON(status application.TrackerStatus) statusJSON {
	out := statusJSON{
		Connected: status.Connected,
		ChainID:   status.ChainID,
		ChainName: status.ChainName,
		Recording: status.Recording,
		CanRecord: status.CanRecord,
		Reason:    status.Reason,
	}
	if status.Connected {
		out.Account = status.Account.Hex()
	}
	if d := status.Deployment; d != nil {
		out.Deployment = &deploymentJSON{
			ChainID:    d.Chain.ID,
			ChainName:  d.Chain.Name,
			Address:    d.Address.Hex(),
			ProtocolID: d.ProtocolID,
			DeployedAt: d.DeployedAt,
		}
	}

	return out
}

func writeStatusText(w io.Writer, status application.TrackerStatus) error {
	account := "not connected"
	if status.Connected {
		account = status.Account.Hex()
	}
	ledger := "not deployed"
	if status.Deployment != nil {
		ledger = status.Deployment.Address.Hex()
	}
	ready := "yes"
	if !status.CanRecord {
		ready = "no (" + status.Reason + ")"
	}

	_, err := fmt.Fprintf(w, "chain:   %s\nwallet:  %s\nledger:  %s\nrecord:  %s\n",
		chainLabel(status.ChainName, status.ChainID), account, ledger, ready)
	return err
}
