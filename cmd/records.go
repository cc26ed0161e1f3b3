package cmd

import (
	"fmt"
	"time"

	historyadapter "github.com/bnema/fhe-strength-tracker/internal/adapters/render/history"
	"github.com/bnema/fhe-strength-tracker/internal/application"
	"github.com/bnema/fhe-strength-tracker/internal/domain"
	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
)

type recordJSON struct {
	Index      uint64    `json:"index"`
	Timestamp  uint64    `json:"timestamp"`
	RecordedAt time.Time `json:"recordedAt"`
	Weight     string    `json:"weight"`
	Sets       string    `json:"sets"`
	Reps       string    `json:"reps"`
}

type sessionJSON struct {
	Weight uint32 `json:"weight"`
	Sets   uint32 `json:"sets"`
	Reps   uint32 `json:"reps"`
	Volume uint64 `json:"volume"`
}

type decryptedRecordJSON struct {
	Index      uint64      `json:"index"`
	Timestamp  uint64      `json:"timestamp"`
	RecordedAt time.Time   `json:"recordedAt"`
	Session    sessionJSON `json:"session"`
}

type historyEntryJSON struct {
	recordJSON
	Session *sessionJSON `json:"session,omitempty"`
}

func toRecordJSON(view application.RecordView) recordJSON {
	return recordJSON{
		Index:      view.Index,
		Timestamp:  view.Timestamp,
		RecordedAt: view.RecordedAt(),
		Weight:     view.Record.Weight.Hex(),
		Sets:       view.Record.Sets.Hex(),
		Reps:       view.Record.Reps.Hex(),
	}
}

func toSessionJSON(s domain.TrainingSession) sessionJSON {
	return sessionJSON{
		Weight: s.Weight,
		Sets:   s.Sets,
		Reps:   s.Reps,
		Volume: uint64(s.Weight) * uint64(s.Sets) * uint64(s.Reps),
	}
}

func newGetCmd(loader *appLoader) *cobra.Command {
	var (
		index   uint64
		owner   string
		decrypt bool
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Fetch one record by index",
		Args:  cobra.NoArgs,
		RunE: loader.run(func(cmd *cobra.Command, app *app, _ []string) error {
			ownerAddr, err := parseOwner(owner)
			if err != nil {
				return err
			}

			if decrypt {
				// Only the connected wallet can decrypt, so only its own records.
				if ownerAddr != (common.Address{}) && (app.wallet == nil || ownerAddr != app.wallet.Address()) {
					return fmt.Errorf("%w: only the connected wallet's records can be decrypted", domain.ErrDecryptionDenied)
				}

				record, err := app.tracker.DecryptRecord(cmd.Context(), index)
				if err != nil {
					return err
				}

				if asJSON {
					return writeJSON(cmd, decryptedRecordJSON{
						Index:      record.Index,
						Timestamp:  record.Timestamp,
						RecordedAt: record.RecordedAt(),
						Session:    toSessionJSON(record.Session),
					})
				}

				s := record.Session
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "#%d  %s  %d kg x %d sets x %d reps\n",
					record.Index, record.RecordedAt().Format(time.RFC3339), s.Weight, s.Sets, s.Reps)
				return err
			}

			view, err := app.tracker.Record(cmd.Context(), ownerAddr, index)
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, toRecordJSON(view))
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "#%d  %s\n  weight: %s\n  sets:   %s\n  reps:   %s\n",
				view.Index, view.RecordedAt().Format(time.RFC3339),
				view.Record.Weight.Hex(), view.Record.Sets.Hex(), view.Record.Reps.Hex())
			return err
		}),
	}

	cmd.Flags().Uint64Var(&index, "index", 0, "Record index")
	cmd.Flags().StringVar(&owner, "owner", "", "Owner address (default: connected wallet)")
	cmd.Flags().BoolVar(&decrypt, "decrypt", false, "Decrypt the record with the connected wallet")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")
	_ = cmd.MarkFlagRequired("index")

	return cmd
}

func newCountCmd(loader *appLoader) *cobra.Command {
	var owner string

	cmd := &cobra.Command{
		Use:   "count",
		Short: "Print how many records an owner has",
		Args:  cobra.NoArgs,
		RunE: loader.run(func(cmd *cobra.Command, app *app, _ []string) error {
			ownerAddr, err := parseOwner(owner)
			if err != nil {
				return err
			}

			count, err := app.tracker.RecordCount(cmd.Context(), ownerAddr)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), count)
			return err
		}),
	}

	cmd.Flags().StringVar(&owner, "owner", "", "Owner address (default: connected wallet)")

	return cmd
}

func newHistoryCmd(loader *appLoader) *cobra.Command {
	var (
		owner   string
		decrypt bool
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List an owner's records, optionally decrypted",
		Args:  cobra.NoArgs,
		RunE: loader.run(func(cmd *cobra.Command, app *app, _ []string) error {
			ownerAddr, err := parseOwner(owner)
			if err != nil {
				return err
			}

			entries, err := app.tracker.History(cmd.Context(), application.HistoryQuery{Owner: ownerAddr, Decrypt: decrypt})
			if err != nil {
				return err
			}

			if asJSON {
				out := make([]historyEntryJSON, len(entries))
				for i, entry := range entries {
					out[i] = historyEntryJSON{recordJSON: toRecordJSON(entry.RecordView)}
					if entry.Session != nil {
						s := toSessionJSON(*entry.Session)
						out[i].Session = &s
					}
				}
				return writeJSON(cmd, out)
			}

			if ownerAddr == (common.Address{}) && app.wallet != nil {
				ownerAddr = app.wallet.Address()
			}
			deployment, err := app.deployments.GetByChainID(cmd.Context(), app.settings.ChainID)
			if err != nil {
				return err
			}

			rendered, err := app.historyRender(entries, historyadapter.RenderOptions{
				Now:      app.now(),
				Owner:    ownerAddr,
				Contract: deployment.Address,
			})
			if err != nil {
				return fmt.Errorf("render history: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		}),
	}

	cmd.Flags().StringVar(&owner, "owner", "", "Owner address (default: connected wallet)")
	cmd.Flags().BoolVar(&decrypt, "decrypt", false, "Decrypt records with the connected wallet")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}
