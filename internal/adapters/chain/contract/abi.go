// Package contract holds the ledger's ABI and the calldata, return-data and
// revert encodings shared by the host and client bindings.
package contract

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

const (
	MethodRecordTraining = "recordTraining"
	MethodGetRecord      = "getRecord"
	MethodGetAllRecords  = "getAllRecords"
	MethodGetRecordCount = "getRecordCount"
	MethodProtocolID     = "protocolId"
)

//go:embed ledger.abi.json
var ledgerABIJSON string

var ledgerABI = mustParseABI(ledgerABIJSON)

func mustParseABI(raw string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(raw))
	if err != nil {
		panic(fmt.Sprintf("parse ledger abi: %v", err))
	}

	return parsed
}

// IsView reports whether method only reads state.
func IsView(method string) bool {
	m, ok := ledgerABI.Methods[method]
	return ok && m.IsConstant()
}
