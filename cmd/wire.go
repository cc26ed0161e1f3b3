package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/bnema/fhe-strength-tracker/internal/adapters/chain/binding"
	"github.com/bnema/fhe-strength-tracker/internal/adapters/chain/local"
	"github.com/bnema/fhe-strength-tracker/internal/adapters/fhe/coprocessor"
	historyadapter "github.com/bnema/fhe-strength-tracker/internal/adapters/render/history"
	tomlrepo "github.com/bnema/fhe-strength-tracker/internal/adapters/repo/toml"
	chainstore "github.com/bnema/fhe-strength-tracker/internal/adapters/secrets/chain"
	filestore "github.com/bnema/fhe-strength-tracker/internal/adapters/secrets/file"
	passstore "github.com/bnema/fhe-strength-tracker/internal/adapters/secrets/pass"
	statebadger "github.com/bnema/fhe-strength-tracker/internal/adapters/state/badger"
	"github.com/bnema/fhe-strength-tracker/internal/adapters/wallet/keystore"
	"github.com/bnema/fhe-strength-tracker/internal/application"
	"github.com/bnema/fhe-strength-tracker/internal/config"
	"github.com/bnema/fhe-strength-tracker/internal/domain"
	"github.com/bnema/fhe-strength-tracker/internal/logging"
	"github.com/bnema/fhe-strength-tracker/internal/ports"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type app struct {
	settings      config.Settings
	logger        *zap.Logger
	secrets       ports.SecretStore
	deployments   *tomlrepo.Repository
	host          *local.Host
	runtime       *coprocessor.Runtime
	wallet        *keystore.Wallet
	tracker       *application.Tracker
	historyRender func([]application.HistoryEntry, historyadapter.RenderOptions) (string, error)
	now           func() time.Time
	closers       []func() error
}

func wireApp(ctx context.Context, configPath string, console io.Writer) (_ *app, err error) {
	v, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	settings, err := config.FromViper(v)
	if err != nil {
		return nil, err
	}

	a := &app{
		settings:      settings,
		historyRender: historyadapter.Render,
		now:           time.Now,
	}
	defer func() {
		if err != nil {
			err = errors.Join(err, a.close())
		}
	}()

	logger, closeLog, err := logging.New(logging.Options{Level: settings.LogLevel, File: settings.LogFile, Console: console})
	if err != nil {
		return nil, fmt.Errorf("wire logger: %w", err)
	}
	a.logger = logger
	a.closers = append(a.closers, closeLog)

	a.secrets, err = newSecretStore(settings, logger)
	if err != nil {
		return nil, fmt.Errorf("wire secret store: %w", err)
	}

	a.deployments, err = tomlrepo.NewRepository(v)
	if err != nil {
		return nil, fmt.Errorf("wire deployment repository: %w", err)
	}

	state, err := statebadger.Open(statebadger.Options{Dir: settings.DataDir, SyncWrites: true, Logger: logger})
	if err != nil {
		return nil, fmt.Errorf("wire host state: %w", err)
	}
	a.closers = append(a.closers, state.Close)

	a.runtime, err = coprocessor.NewRuntime(ctx, coprocessor.Config{
		ChainID:  settings.ChainID,
		State:    state,
		Secrets:  a.secrets,
		Logger:   logger,
		CacheTTL: settings.FHECacheTTL,
	})
	if err != nil {
		return nil, fmt.Errorf("wire fhe runtime: %w", err)
	}
	a.closers = append(a.closers, a.runtime.Close)

	ledger := application.NewLedger(a.runtime, a.runtime.ACL(), application.LedgerOptions{
		MaxRecordsPerOwner: settings.MaxRecordsPerOwner,
	})
	a.host, err = local.NewHost(local.Options{
		ChainID: settings.ChainID,
		State:   state,
		Ledger:  ledger,
		Logger:  logger,
	})
	if err != nil {
		return nil, fmt.Errorf("wire chain host: %w", err)
	}

	a.wallet, err = keystore.Open(ctx, a.secrets, settings.WalletSecretRef, settings.ChainID)
	if err != nil && !errors.Is(err, domain.ErrWalletNotConnected) {
		return nil, fmt.Errorf("wire wallet: %w", err)
	}

	// A nil *keystore.Wallet must stay a nil interface.
	var signer ports.Signer
	if a.wallet != nil {
		signer = a.wallet
	}

	a.tracker = application.NewTracker(application.TrackerDeps{
		ChainID:     settings.ChainID,
		Deployments: a.deployments,
		Binder:      binding.NewBinder(a.host, logger),
		Deployer:    a.host,
		FHE:         a.runtime,
		Wallet:      signer,
		Logger:      logger,
	})

	return a, nil
}

func newSecretStore(settings config.Settings, logger *zap.Logger) (ports.SecretStore, error) {
	switch settings.SecretsBackend {
	case config.SecretsBackendPass:
		return passstore.NewStore(), nil
	case config.SecretsBackendChain:
		return chainstore.NewPassFirstWithFileFallback(settings.SecretsDir, logger)
	default:
		return filestore.NewStore(settings.SecretsDir), nil
	}
}

// close releases resources in reverse wiring order.
func (a *app) close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil

	return errors.Join(errs...)
}

type appLoader struct {
	configPath string
}

// run wires the app for one command invocation and tears it down afterwards.
func (l *appLoader) run(fn func(cmd *cobra.Command, app *app, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		app, err := wireApp(cmd.Context(), l.configPath, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer func() {
			if closeErr := app.close(); closeErr != nil {
				err = errors.Join(err, fmt.Errorf("close app: %w", closeErr))
			}
		}()

		return fn(cmd, app, args)
	}
}
