package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/projects42/projects42-cli/internal/api"
	"github.com/projects42/projects42-cli/internal/config"
	"github.com/projects42/projects42-cli/internal/prefs"
)

// loadConfig resolves and loads the effective configuration for a command.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = config.DiscoverPath("")
	}

	cfg, err := config.LoadWithEnv(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if serverURL != "" {
		cfg.ServerURL = serverURL
	}
	if debug {
		cfg.Debug = true
	}

	return cfg, nil
}

// getClient builds the API client from the effective configuration. The
// session cookie jar lives under the CLI data directory so a login survives
// across runs.
func getClient(cmd *cobra.Command) (*api.Client, *config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}

	if cfg.ServerURL == "" {
		return nil, nil, fmt.Errorf("no server URL configured. Set PROJECTS42_SERVER_URL or run: projects42 config set-server <url>")
	}

	client, err := api.New(api.Options{
		BaseURL:    cfg.ServerURL,
		CookiePath: config.CookiePath(),
		Debug:      cfg.Debug,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create API client: %w", err)
	}

	return client, cfg, nil
}

// getPrefsStore opens the file-backed preference store.
func getPrefsStore() (prefs.Store, error) {
	return prefs.NewFileStore(config.DataDir())
}
