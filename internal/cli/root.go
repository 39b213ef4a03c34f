package cli

import (
	"errors"
	"fmt"

	apptrash "github.com/erp/papelera/internal/application/trash"
	"github.com/erp/papelera/internal/infrastructure/config"
	"github.com/erp/papelera/internal/infrastructure/logger"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app carries the state shared by every subcommand
type app struct {
	configPath string
	actor      string
	logLevel   string
	noColor    bool

	cfg *config.Config
	env *Env
	// owned is false when the Env was injected and must outlive the command
	owned bool
}

// Option configures the root command
type Option func(*app)

// WithConfig skips loading config.toml and uses cfg
func WithConfig(cfg *config.Config) Option {
	return func(a *app) { a.cfg = cfg }
}

// WithEnv runs the commands against an already wired Env. The caller closes it.
func WithEnv(env *Env) Option {
	return func(a *app) {
		a.env = env
		a.cfg = env.Config
	}
}

// Execute runs papeleractl and closes the Env the command opened, also when
// the command failed
func Execute(version string, opts ...Option) error {
	root, a := newRoot(version, opts...)
	return a.run(root)
}

// newRoot builds the papeleractl command tree
func newRoot(version string, opts ...Option) (*cobra.Command, *app) {
	a := &app{}
	for _, opt := range opts {
		opt(a)
	}

	root := &cobra.Command{
		Use:     "papeleractl",
		Short:   "Operate the papelera trash and its identity conflicts",
		Version: version,
		Long: `papeleractl runs the trash and conflict operations directly against the
configured database, using the same services as the HTTP API.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			if a.noColor {
				color.NoColor = true
			}
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "path to config.toml (defaults to ./config.toml)")
	root.PersistentFlags().StringVar(&a.actor, "as", "papeleractl", "username recorded as the actor of changes")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "disable colored output")

	root.AddCommand(
		a.trashCmd(),
		a.restoreCmd(),
		a.conflictsCmd(),
		a.seedCmd(),
		a.tokenCmd(),
	)
	return root, a
}

// run executes root, then closes an Env opened by the command
func (a *app) run(root *cobra.Command) error {
	err := root.Execute()
	return errors.Join(err, a.close())
}

// close releases an owned Env. Injected ones are left to the caller.
func (a *app) close() error {
	if a.env == nil || !a.owned {
		return nil
	}
	a.owned = false
	return a.env.Close()
}

// config returns the injected configuration or loads it once
func (a *app) config() (*config.Config, error) {
	if a.cfg != nil {
		return a.cfg, nil
	}
	var (
		cfg *config.Config
		err error
	)
	if a.configPath != "" {
		cfg, err = config.LoadFrom(a.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	a.cfg = cfg
	return cfg, nil
}

// open returns the wired Env, connecting on first use
func (a *app) open(cmd *cobra.Command) (*Env, error) {
	if a.env != nil {
		return a.env, nil
	}
	cfg, err := a.config()
	if err != nil {
		return nil, err
	}
	logCfg := logger.ForEnvironment(cfg.App.Env)
	logCfg.Level = a.logLevel
	logCfg.Output = "stderr"
	log, err := logger.New(logCfg)
	if err != nil {
		return nil, err
	}
	env, err := NewEnv(cmd.Context(), cfg, log.With(zap.String("component", "papeleractl")))
	if err != nil {
		return nil, err
	}
	a.env = env
	a.owned = true
	return env, nil
}

// principal is the operator identity. The CLI has direct database access,
// so it acts with superuser rights.
func (a *app) principal() apptrash.Principal {
	return apptrash.Principal{UserID: "cli:" + a.actor, Username: a.actor, Superuser: true}
}
