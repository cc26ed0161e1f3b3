package toml

import (
	"context"
	"math/big"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/bnema/fhe-strength-tracker/internal/domain"
	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T, path string) *Repository {
	t.Helper()

	config := viper.New()
	config.Set(DeploymentsPathKey, path)

	repo, err := NewRepository(config)
	require.NoError(t, err)
	return repo
}

func TestRepositoryRoundTrip(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, filepath.Join(t.TempDir(), "deployments.toml"))
	ctx := context.Background()

	hardhat := domain.Deployment{
		Chain:      domain.Chain{ID: domain.ChainIDHardhat, Name: "hardhat"},
		Address:    common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3"),
		ProtocolID: domain.ProtocolID,
		DeployedAt: time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
	}
	sepolia := domain.Deployment{
		Chain:   domain.Chain{ID: domain.ChainIDSepolia, Name: "sepolia"},
		Address: common.HexToAddress("0x8A791620dd6260079BF849Dc5567aDC3F2FdC318"),
	}

	require.NoError(t, repo.Save(ctx, sepolia))
	require.NoError(t, repo.Save(ctx, hardhat))

	got, err := repo.GetByChainID(ctx, domain.ChainIDHardhat)
	require.NoError(t, err)
	assert.Equal(t, hardhat, got)

	deployments, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Deployment{hardhat, sepolia}, deployments)
}

func TestRepositorySaveReplacesChainEntry(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, filepath.Join(t.TempDir(), "deployments.toml"))
	ctx := context.Background()

	first := domain.Deployment{Chain: domain.Chain{ID: domain.ChainIDHardhat}, Address: common.HexToAddress("0x01")}
	second := domain.Deployment{Chain: domain.Chain{ID: domain.ChainIDHardhat}, Address: common.HexToAddress("0x02")}

	require.NoError(t, repo.Save(ctx, first))
	require.NoError(t, repo.Save(ctx, second))

	deployments, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, deployments, 1)
	assert.Equal(t, second.Address, deployments[0].Address)
	assert.Equal(t, "hardhat", deployments[0].Chain.Name)
}

func TestRepositoryNotDeployed(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "deployments.toml")
	require.NoError(t, os.WriteFile(path, []byte(`version = 1

[[deployments]]
chain_id = 11155111
chain_name = "sepolia"
address = "0x0000000000000000000000000000000000000000"
`), 0o600))
	repo := newTestRepository(t, path)
	ctx := context.Background()

	_, err := repo.GetByChainID(ctx, domain.ChainIDSepolia)
	require.ErrorIs(t, err, domain.ErrNotDeployed)
	assert.NotErrorIs(t, err, domain.ErrDeploymentNotFound)

	_, err = repo.GetByChainID(ctx, domain.ChainIDHardhat)
	require.ErrorIs(t, err, domain.ErrNotDeployed)
	assert.ErrorIs(t, err, domain.ErrDeploymentNotFound)
}

func TestRepositorySaveCreatesDefaultPathAndEnforcesPermissions(t *testing.T) {
	homeDir := t.TempDir()
	t.Setenv("HOME", homeDir)

	repo, err := NewRepository(viper.New())
	require.NoError(t, err)

	err = repo.Save(context.Background(), domain.Deployment{
		Chain:   domain.Chain{ID: domain.ChainIDHardhat},
		Address: common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3"),
	})
	require.NoError(t, err)

	deploymentsPath := filepath.Join(homeDir, ".strength-tracker", "deployments.toml")
	assert.Equal(t, deploymentsPath, repo.Path())
	info, err := os.Stat(deploymentsPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestRepositoryMissingFileBehaviors(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, filepath.Join(t.TempDir(), "missing", "deployments.toml"))

	deployments, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, deployments)
}

func TestRepositoryMalformedFileReturnsError(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "bad toml", content: "version = [", wantErr: "decode deployments file"},
		{name: "bad address", content: "version = 1\n[[deployments]]\nchain_id = 1\naddress = \"nope\"\n", wantErr: "invalid address"},
		{name: "future version", content: "version = 99\n", wantErr: "unsupported deployments schema version 99"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "deployments.toml")
			require.NoError(t, os.WriteFile(path, []byte(tc.content), 0o600))

			_, err := newTestRepository(t, path).List(context.Background())
			require.Error(t, err)
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestRepositorySaveCanceledContextReturnsContextError(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, filepath.Join(t.TempDir(), "deployments.toml"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := repo.Save(ctx, domain.Deployment{Chain: domain.Chain{ID: domain.ChainIDHardhat}})
	require.ErrorIs(t, err, context.Canceled)
}

func TestRepositoryConcurrentSavesAcrossInstancesKeepEveryChain(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "deployments.toml")
	repoA := newTestRepository(t, path)
	repoB := newTestRepository(t, path)

	const perRepoWrites = 50
	start := make(chan struct{})
	errCh := make(chan error, perRepoWrites*2)
	var wg sync.WaitGroup
	wg.Add(2)

	write := func(repo *Repository, base uint64) {
		defer wg.Done()
		<-start
		for i := uint64(0); i < perRepoWrites; i++ {
			errCh <- repo.Save(context.Background(), domain.Deployment{
				Chain:   domain.Chain{ID: base + i},
				Address: common.BigToAddress(new(big.Int).SetUint64(base + i)),
			})
		}
	}
	go write(repoA, 1_000)
	go write(repoB, 2_000)

	close(start)
	wg.Wait()
	close(errCh)

	for err := range errCh {
		require.NoError(t, err)
	}

	deployments, err := repoA.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, deployments, perRepoWrites*2)
}

func TestRepositorySaveSerializedTOMLIncludesVersion(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "deployments.toml")
	repo := newTestRepository(t, path)

	require.NoError(t, repo.Save(context.Background(), domain.Deployment{
		Chain:   domain.Chain{ID: domain.ChainIDHardhat},
		Address: common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3"),
	}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "version = 1")
	assert.Contains(t, string(data), "chain_id = 31337")
	assert.Contains(t, string(data), "0x5FbDB2315678afecb367f032d93F642f64180aa3")
}
