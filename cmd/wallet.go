package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/fhe-strength-tracker/internal/adapters/wallet/keystore"
	"github.com/bnema/fhe-strength-tracker/internal/domain"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/spf13/cobra"
)

func newWalletCmd(loader *appLoader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wallet",
		Short: "Manage the signing wallet",
	}

	cmd.AddCommand(
		newWalletNewCmd(loader),
		newWalletShowCmd(loader),
		newWalletImportCmd(loader),
	)

	return cmd
}

func newWalletNewCmd(loader *appLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "new",
		Short: "Generate a wallet key and store it in the secret backend",
		Args:  cobra.NoArgs,
		RunE: loader.run(func(cmd *cobra.Command, app *app, _ []string) error {
			wallet, err := keystore.Generate(cmd.Context(), app.secrets, app.settings.WalletSecretRef, app.settings.ChainID)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Created wallet %s (key at %s)\n", wallet.Address().Hex(), app.settings.WalletSecretRef)
			return err
		}),
	}
}

func newWalletShowCmd(loader *appLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the connected wallet address",
		Args:  cobra.NoArgs,
		RunE: loader.run(func(cmd *cobra.Command, app *app, _ []string) error {
			if app.wallet == nil {
				return fmt.Errorf("%w: run `st wallet new` first", domain.ErrWalletNotConnected)
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), app.wallet.Address().Hex())
			return err
		}),
	}
}

func newWalletImportCmd(loader *appLoader) *cobra.Command {
	var privateKey string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Store an existing hex private key as the wallet",
		Args:  cobra.NoArgs,
		RunE: loader.run(func(cmd *cobra.Command, app *app, _ []string) error {
			if app.wallet != nil {
				return fmt.Errorf("%w: %s", keystore.ErrWalletExists, app.settings.WalletSecretRef)
			}

			raw := strings.TrimPrefix(strings.TrimSpace(privateKey), "0x")
			key, err := crypto.HexToECDSA(raw)
			if err != nil {
				return errors.New("invalid private key: expected 32 bytes of hex")
			}
			if err := app.secrets.Put(cmd.Context(), app.settings.WalletSecretRef, raw); err != nil {
				return fmt.Errorf("store wallet key: %w", err)
			}

			wallet := keystore.New(key, app.settings.ChainID)
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Imported wallet %s\n", wallet.Address().Hex())
			return err
		}),
	}

	cmd.Flags().StringVar(&privateKey, "private-key", "", "Hex-encoded secp256k1 private key")
	_ = cmd.MarkFlagRequired("private-key")

	return cmd
}
