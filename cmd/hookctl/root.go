package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"repo-relay/config"
	"repo-relay/internal/hooksetup"
	"repo-relay/internal/subscription"
	"repo-relay/internal/subscription/repository"
	"repo-relay/internal/subscription/repository/sqldb"
	"repo-relay/internal/subscription/usecase"
	"repo-relay/pkg/log"
	"repo-relay/pkg/shortener"
)

// Version is set at build time via -ldflags.
var Version = "dev"

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "hookctl",
	Short: "Manage repo-relay subscriptions",
	Long: `hookctl edits the subscription store repo-relay reads from.

  hookctl hook link #dev acme/widget         Subscribe a channel to a repository
  hookctl hook color #dev acme/widget 7 3 6 13 14 15
  hookctl hook list acme/widget              Show who receives a repository's events
  hookctl repo set #dev acme/widget          Resolve bare #123 references in #dev
  hookctl repo info acme/widget              Summarize a repository
  hookctl unfurl "see acme/widget#12"        Preview link summaries`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: config.yaml in ./config, . or /etc/repo-relay)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"enable debug logging")

	rootCmd.Version = Version
	rootCmd.AddCommand(hookCmd, repoCmd, unfurlCmd)
}

// app is what every command needs, built from the shared config file.
type app struct {
	cfg    *config.Config
	l      log.Logger
	repo   repository.Repository
	uc     subscription.UseCase
	short  *shortener.Client
	prefix string
}

func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.LoadFile(cfgFile)
	}
	return config.Load()
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	level := "warn"
	if verbose {
		level = "debug"
	}
	l := log.Init(log.ZapConfig{
		Level:        level,
		Mode:         cfg.Logger.Mode,
		Encoding:     "console",
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	repo, err := sqldb.Open(ctx, sqldb.Options{
		Driver: cfg.Database.Driver,
		Path:   cfg.Database.Path,
		DSN:    cfg.Database.DSN,
	}, l)
	if err != nil {
		return nil, err
	}

	short := shortener.New(shortener.Options{
		URL:       cfg.Shortener.URL,
		CacheSize: cfg.Shortener.CacheSize,
		CacheTTL:  cfg.Shortener.CacheTTL,
	}, l)

	// The callback is served by the running relay; hookctl only needs the link.
	var auth subscription.Authorizer
	setup, err := hooksetup.New(hooksetup.Config{
		ClientID:     cfg.GitHub.ClientID,
		ClientSecret: cfg.GitHub.ClientSecret,
		CallbackURL:  cfg.Webhook.CallbackURL(),
		Secret:       cfg.Webhook.Secret,
		APIURL:       cfg.GitHub.APIURL,
	}, short, nil, l)
	switch {
	case err == nil:
		auth = setup
	case !errors.Is(err, hooksetup.ErrNotConfigured):
		repo.Close()
		return nil, err
	}

	return &app{
		cfg:    cfg,
		l:      l,
		repo:   repo,
		uc:     usecase.New(repo, auth, l),
		short:  short,
		prefix: cfg.Bot.HelpPrefix,
	}, nil
}

func (a *app) Close() error {
	return a.repo.Close()
}

// withApp runs fn with a ready app and closes it afterwards.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(ctx, a)
}
