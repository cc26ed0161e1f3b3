// Package config loads tracker settings from ~/.strength-tracker/config.toml
// and ST_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	KeyDataDir          = "data.dir"
	KeyDeploymentsPath  = "deployments.path"
	KeySecretsBackend   = "secrets.backend"
	KeySecretsDir       = "secrets.dir"
	KeyChainID          = "chain.id"
	KeyWalletSecretRef  = "wallet.secret_ref"
	KeyMaxRecords       = "ledger.max_records_per_owner"
	KeyFHECacheTTL      = "fhe.cache_ttl"
	KeyLogLevel         = "log.level"
	KeyLogFile          = "log.file"
	KeyHTTPListen       = "http.listen"
	envPrefix           = "ST"
	configDir           = ".strength-tracker"
	configName          = "config"
	configType          = "toml"
	defaultChainID      = 31337
	defaultWalletRef    = "strength-tracker/wallet/default"
	defaultHTTPListen   = "127.0.0.1:8787"
	defaultFHECacheTTL  = 10 * time.Minute
	defaultSecretsStore = SecretsBackendFile
)

const (
	SecretsBackendFile  = "file"
	SecretsBackendPass  = "pass"
	SecretsBackendChain = "chain"
)

var ErrInvalidConfig = errors.New("invalid config")

type Settings struct {
	DataDir            string
	DeploymentsPath    string
	SecretsBackend     string
	SecretsDir         string
	ChainID            uint64
	WalletSecretRef    string
	MaxRecordsPerOwner uint64
	FHECacheTTL        time.Duration
	LogLevel           string
	LogFile            string
	HTTPListen         string
}

// Load reads the config file at path, or the default location when path is
// empty. A missing default file is not an error.
func Load(path string) (*viper.Viper, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	v := viper.New()
	setDefaults(v, filepath.Join(homeDir, configDir))

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType(configType)
		v.AddConfigPath(filepath.Join(homeDir, configDir))
	}

	if err := v.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	return v, nil
}

func setDefaults(v *viper.Viper, root string) {
	v.SetDefault(KeyDataDir, filepath.Join(root, "data"))
	v.SetDefault(KeyDeploymentsPath, filepath.Join(root, "deployments.toml"))
	v.SetDefault(KeySecretsBackend, defaultSecretsStore)
	v.SetDefault(KeySecretsDir, filepath.Join(root, "secrets"))
	v.SetDefault(KeyChainID, defaultChainID)
	v.SetDefault(KeyWalletSecretRef, defaultWalletRef)
	v.SetDefault(KeyMaxRecords, 0)
	v.SetDefault(KeyFHECacheTTL, defaultFHECacheTTL)
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyHTTPListen, defaultHTTPListen)
}

func FromViper(v *viper.Viper) (Settings, error) {
	settings := Settings{
		DataDir:            v.GetString(KeyDataDir),
		DeploymentsPath:    v.GetString(KeyDeploymentsPath),
		SecretsBackend:     strings.ToLower(strings.TrimSpace(v.GetString(KeySecretsBackend))),
		SecretsDir:         v.GetString(KeySecretsDir),
		ChainID:            v.GetUint64(KeyChainID),
		WalletSecretRef:    v.GetString(KeyWalletSecretRef),
		MaxRecordsPerOwner: v.GetUint64(KeyMaxRecords),
		FHECacheTTL:        v.GetDuration(KeyFHECacheTTL),
		LogLevel:           v.GetString(KeyLogLevel),
		LogFile:            v.GetString(KeyLogFile),
		HTTPListen:         v.GetString(KeyHTTPListen),
	}

	var errs []error
	if settings.ChainID == 0 {
		errs = append(errs, fmt.Errorf("%s must be non-zero", KeyChainID))
	}
	switch settings.SecretsBackend {
	case SecretsBackendFile, SecretsBackendPass, SecretsBackendChain:
	default:
		errs = append(errs, fmt.Errorf("%s %q is not one of file, pass, chain", KeySecretsBackend, settings.SecretsBackend))
	}
	if strings.TrimSpace(settings.WalletSecretRef) == "" {
		errs = append(errs, fmt.Errorf("%s is empty", KeyWalletSecretRef))
	}
	if settings.FHECacheTTL <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive", KeyFHECacheTTL))
	}
	if len(errs) > 0 {
		return Settings{}, fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}

	for _, path := range []*string{&settings.DataDir, &settings.DeploymentsPath, &settings.SecretsDir, &settings.LogFile} {
		expanded, err := expandHome(*path)
		if err != nil {
			return Settings{}, err
		}
		*path = expanded
	}

	return settings, nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}

	return filepath.Join(homeDir, strings.TrimPrefix(path, "~")), nil
}
