package cmd

import (
	"context"
	"fmt"

	"github.com/bnema/fhe-strength-tracker/internal/application"
	"github.com/spf13/cobra"
)

type recordResultJSON struct {
	Weight      uint32 `json:"weight"`
	Sets        uint32 `json:"sets"`
	Reps        uint32 `json:"reps"`
	Contract    string `json:"contract"`
	TxHash      string `json:"txHash"`
	BlockNumber uint64 `json:"blockNumber"`
	Timestamp   uint64 `json:"timestamp"`
}

func newRecordCmd(loader *appLoader) *cobra.Command {
	var (
		command application.RecordTrainingCommand
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Encrypt a training session and append it to your ledger",
		Args:  cobra.NoArgs,
		RunE: loader.run(func(cmd *cobra.Command, app *app, _ []string) error {
			var result application.RecordTrainingResult
			submit := func(ctx context.Context, progress func(application.RecordPhase)) error {
				submitted := command
				submitted.Progress = progress
				var err error
				result, err = app.tracker.RecordTraining(ctx, submitted)
				return err
			}

			var err error
			if asJSON {
				err = submit(cmd.Context(), nil)
			} else {
				err = runRecordProgress(cmd.Context(), cmd.ErrOrStderr(), submit)
			}
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, recordResultJSON{
					Weight:      result.Session.Weight,
					Sets:        result.Session.Sets,
					Reps:        result.Session.Reps,
					Contract:    result.Contract.Address.Hex(),
					TxHash:      result.Receipt.TxHash.Hex(),
					BlockNumber: result.Receipt.BlockNumber,
					Timestamp:   result.Receipt.Timestamp,
				})
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Recorded %d kg x %d sets x %d reps in block %d (tx %s)\n",
				result.Session.Weight, result.Session.Sets, result.Session.Reps,
				result.Receipt.BlockNumber, result.Receipt.TxHash.Hex())
			return err
		}),
	}

	cmd.Flags().Uint32Var(&command.Weight, "weight", 0, "Weight lifted")
	cmd.Flags().Uint32Var(&command.Sets, "sets", 0, "Number of sets")
	cmd.Flags().Uint32Var(&command.Reps, "reps", 0, "Repetitions per set")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}
