package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"codeberg.org/snonux/vocabbuilder/internal/gateway"
	"codeberg.org/snonux/vocabbuilder/internal/processor"
	"codeberg.org/snonux/vocabbuilder/internal/store"
)

// App holds the components one run of vocabbuilder works with
type App struct {
	Store     *store.Store
	Gateway   *gateway.Gateway
	Processor *processor.Processor
	StorePath string
}

// OpenApp opens the configured store, creates the gateway and processor and
// restores the saved state
func OpenApp(logger *slog.Logger) (*App, error) {
	driver, path := StoreLocation()
	if driver != "memory" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create state directory: %w", err)
		}
	}

	kv, err := store.Open(driver, path)
	if err != nil {
		return nil, err
	}
	st := store.New(kv)

	config := GatewayConfig()
	creds := gateway.NewCredentialSource(config.Provider, GetAPIKey(), st)
	gw := gateway.New(config, creds, gateway.WithLogger(logger))

	policy, err := StalenessPolicy()
	if err != nil {
		st.Close()
		return nil, err
	}

	proc := processor.NewProcessor(gw, st, policy, processor.WithLogger(logger))
	if err := proc.Hydrate(); err != nil {
		st.Close()
		return nil, err
	}

	logger.Debug("Opened store", "driver", driver, "path", path, "provider", config.Provider)
	return &App{Store: st, Gateway: gw, Processor: proc, StorePath: path}, nil
}

// Close stops audio and closes the store
func (a *App) Close() error {
	a.Processor.StopAudio()
	return a.Store.Close()
}

// runtime hands the App to commands. The shell shares one App between all
// commands it runs.
type runtime struct {
	flags   *Flags
	open    func(*slog.Logger) (*App, error)
	logger  *slog.Logger
	app     *App
	shared  bool
	inShell bool
}

func newRuntime(flags *Flags) *runtime {
	return &runtime{flags: flags, open: OpenApp, logger: slog.Default()}
}

// App opens the App on first use
func (r *runtime) App() (*App, error) {
	if r.app != nil {
		return r.app, nil
	}
	app, err := r.open(r.logger)
	if err != nil {
		return nil, err
	}
	r.app = app
	return app, nil
}

// release closes the App unless it is shared
func (r *runtime) release() error {
	if r.app == nil || r.shared {
		return nil
	}
	err := r.app.Close()
	r.app = nil
	return err
}

// run calls fn with the App and releases it afterwards
func (r *runtime) run(fn func(app *App) error) error {
	app, err := r.App()
	if err != nil {
		return err
	}
	err = fn(app)
	if cerr := r.release(); err == nil {
		err = cerr
	}
	return err
}

// child returns the runtime of a command run from the shell
func (r *runtime) child() *runtime {
	return &runtime{
		flags:   r.flags,
		open:    r.open,
		logger:  r.logger,
		app:     r.app,
		shared:  true,
		inShell: true,
	}
}
