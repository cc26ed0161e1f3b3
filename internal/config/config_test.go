package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	v, err := Load("")
	require.NoError(t, err)

	settings, err := FromViper(v)
	require.NoError(t, err)

	root := filepath.Join(home, ".strength-tracker")
	assert.Equal(t, Settings{
		DataDir:            filepath.Join(root, "data"),
		DeploymentsPath:    filepath.Join(root, "deployments.toml"),
		SecretsBackend:     SecretsBackendFile,
		SecretsDir:         filepath.Join(root, "secrets"),
		ChainID:            31337,
		WalletSecretRef:    "strength-tracker/wallet/default",
		MaxRecordsPerOwner: 0,
		FHECacheTTL:        10 * time.Minute,
		LogLevel:           "warn",
		LogFile:            "",
		HTTPListen:         "127.0.0.1:8787",
	}, settings)
}

func TestLoadFileAndEnvironment(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("ST_CHAIN_ID", "11155111")
	t.Setenv("ST_LOG_LEVEL", "debug")

	path := filepath.Join(home, "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[ledger]
max_records_per_owner = 50

[secrets]
backend = "Pass"

[data]
dir = "~/tracker-data"

[chain]
id = 31337
`), 0o600))

	v, err := Load(path)
	require.NoError(t, err)

	settings, err := FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, uint64(11155111), settings.ChainID)
	assert.Equal(t, "debug", settings.LogLevel)
	assert.Equal(t, uint64(50), settings.MaxRecordsPerOwner)
	assert.Equal(t, SecretsBackendPass, settings.SecretsBackend)
	assert.Equal(t, filepath.Join(home, "tracker-data"), settings.DataDir)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.Error(t, err)
}

func TestFromViperRejectsInvalidSettings(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("ST_CHAIN_ID", "0")
	t.Setenv("ST_SECRETS_BACKEND", "vault")

	v, err := Load("")
	require.NoError(t, err)

	_, err = FromViper(v)
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.ErrorContains(t, err, "chain.id must be non-zero")
	assert.ErrorContains(t, err, `secrets.backend "vault"`)
}
