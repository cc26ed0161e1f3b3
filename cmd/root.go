package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

func Execute() error {
	return ExecuteContext(context.Background())
}

func ExecuteContext(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	loader := &appLoader{}

	rootCmd := &cobra.Command{
		Use:           "st",
		Short:         "Strength tracker (st): record encrypted training sessions on a ledger",
		Long:          "st encrypts weight, sets and reps client-side, appends them to a per-owner ledger, and decrypts your history back with your wallet.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.PersistentFlags().StringVar(&loader.configPath, "config", "", "config file (default ~/.strength-tracker/config.toml)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newWalletCmd(loader),
		newDeployCmd(loader),
		newDeploymentsCmd(loader),
		newStatusCmd(loader),
		newProtocolCmd(loader),
		newRecordCmd(loader),
		newGetCmd(loader),
		newCountCmd(loader),
		newHistoryCmd(loader),
		newServeCmd(loader),
	)

	return rootCmd
}
