package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version     int                `toml:"version"`
	Deployments []deploymentSchema `toml:"deployments"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported deployments schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type deploymentSchema struct {
	ChainID    uint64 `toml:"chain_id"`
	ChainName  string `toml:"chain_name"`
	Address    string `toml:"address"`
	ProtocolID uint64 `toml:"protocol_id,omitempty"`
	DeployedAt string `toml:"deployed_at,omitempty"`
}
