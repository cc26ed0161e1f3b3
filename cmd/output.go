package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
)

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// parseOwner accepts an empty flag as "the connected wallet".
func parseOwner(raw string) (common.Address, error) {
	if raw == "" {
		return common.Address{}, nil
	}
	if !common.IsHexAddress(raw) {
		return common.Address{}, fmt.Errorf("invalid owner address %q", raw)
	}

	return common.HexToAddress(raw), nil
}

func chainLabel(name string, id uint64) string {
	return name + " (" + strconv.FormatUint(id, 10) + ")"
}
