package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/bnema/fhe-strength-tracker/internal/domain"
	"github.com/bnema/fhe-strength-tracker/internal/ports"
	"github.com/ethereum/go-ethereum/common"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	DeploymentsPathKey    = "deployments.path"
	deploymentsFileMode   = 0o600
	deploymentsDirMode    = 0o700
	deploymentsConfigDir  = ".strength-tracker"
	deploymentsConfigFile = "deployments.toml"
	tempFilePattern       = ".deployments-*.toml.tmp"
)

// Repository is the deployment address book: one ledger address per chain id.
type Repository struct {
	deploymentsPath string
	mu              *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.DeploymentRepository = (*Repository)(nil)

func NewRepository(cfg *viper.Viper) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	deploymentsPath := cfg.GetString(DeploymentsPathKey)
	if deploymentsPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		deploymentsPath = filepath.Join(homeDir, deploymentsConfigDir, deploymentsConfigFile)
	}

	deploymentsPath, err := normalizeDeploymentsPath(deploymentsPath)
	if err != nil {
		return nil, err
	}

	return &Repository{deploymentsPath: deploymentsPath, mu: lockForPath(deploymentsPath)}, nil
}

func (r *Repository) Path() string {
	return r.deploymentsPath
}

func (r *Repository) Save(ctx context.Context, deployment domain.Deployment) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	encoded := toSchema(deployment)
	updated := false
	for i := range file.Deployments {
		if file.Deployments[i].ChainID == encoded.ChainID {
			file.Deployments[i] = encoded
			updated = true
			break
		}
	}

	if !updated {
		file.Deployments = append(file.Deployments, encoded)
	}
	sort.Slice(file.Deployments, func(i, j int) bool {
		return file.Deployments[i].ChainID < file.Deployments[j].ChainID
	})

	if err := ctx.Err(); err != nil {
		return err
	}

	return r.writeSchema(file)
}

// GetByChainID returns the deployment for chainID. A missing entry or a zero
// address both report domain.ErrNotDeployed.
func (r *Repository) GetByChainID(ctx context.Context, chainID uint64) (domain.Deployment, error) {
	if err := ctx.Err(); err != nil {
		return domain.Deployment{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return domain.Deployment{}, err
	}

	for _, entry := range file.Deployments {
		if entry.ChainID != chainID {
			continue
		}

		deployment, err := fromSchema(entry)
		if err != nil {
			return domain.Deployment{}, err
		}
		if !deployment.Deployed() {
			return deployment, fmt.Errorf("%w: zero address on %s", domain.ErrNotDeployed, deployment.Chain.Name)
		}
		return deployment, nil
	}

	return domain.Deployment{}, fmt.Errorf("%w: %w for chain %d", domain.ErrNotDeployed, domain.ErrDeploymentNotFound, chainID)
}

func (r *Repository) List(ctx context.Context) ([]domain.Deployment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return nil, err
	}

	deployments := make([]domain.Deployment, 0, len(file.Deployments))
	for _, entry := range file.Deployments {
		deployment, err := fromSchema(entry)
		if err != nil {
			return nil, err
		}
		deployments = append(deployments, deployment)
	}

	return deployments, nil
}

func (r *Repository) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(r.deploymentsPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			file := fileSchema{}
			file.applyDefaults()
			return file, nil
		}
		return fileSchema{}, fmt.Errorf("read deployments file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode deployments file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func normalizeDeploymentsPath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve deployments path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func (r *Repository) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(r.deploymentsPath), deploymentsDirMode); err != nil {
		return fmt.Errorf("create deployments directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode deployments file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.deploymentsPath), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp deployments file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp deployments file: %w", err)
	}

	if err := tempFile.Chmod(deploymentsFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp deployments file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp deployments file: %w", err)
	}

	if err := os.Rename(tempName, r.deploymentsPath); err != nil {
		return fmt.Errorf("replace deployments file: %w", err)
	}

	cleanup = false

	return nil
}

func toSchema(deployment domain.Deployment) deploymentSchema {
	name := deployment.Chain.Name
	if name == "" {
		name = domain.ChainName(deployment.Chain.ID)
	}

	return deploymentSchema{
		ChainID:    deployment.Chain.ID,
		ChainName:  name,
		Address:    deployment.Address.Hex(),
		ProtocolID: deployment.ProtocolID,
		DeployedAt: formatTime(deployment.DeployedAt),
	}
}

func fromSchema(entry deploymentSchema) (domain.Deployment, error) {
	if entry.Address != "" && !common.IsHexAddress(entry.Address) {
		return domain.Deployment{}, fmt.Errorf("decode deployment for chain %d: invalid address %q", entry.ChainID, entry.Address)
	}

	name := entry.ChainName
	if name == "" {
		name = domain.ChainName(entry.ChainID)
	}

	return domain.Deployment{
		Chain:      domain.Chain{ID: entry.ChainID, Name: name},
		Address:    common.HexToAddress(entry.Address),
		ProtocolID: entry.ProtocolID,
		DeployedAt: parseTime(entry.DeployedAt),
	}, nil
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}

	return parsed
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.UTC().Format(time.RFC3339)
}
