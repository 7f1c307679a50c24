package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/projects42/projects42-cli/internal/api"
	"github.com/projects42/projects42-cli/internal/config"
	"github.com/projects42/projects42-cli/internal/prefs"
	"github.com/projects42/projects42-cli/internal/query"
	"github.com/projects42/projects42-cli/internal/session"
	"github.com/projects42/projects42-cli/internal/testutil"
)

func TestIntegration_ConfigManagement(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")

	cfg := &config.Config{
		ServerURL:    "https://projects.42.example.com",
		CallbackAddr: "127.0.0.1:4242",
		Debug:        true,
		UI:           config.UIConfig{Compact: true, Color: "never"},
	}

	err := config.Save(cfg, configPath)
	require.NoError(t, err, "should save config")

	loadedCfg, err := config.Load(configPath)
	require.NoError(t, err, "should load config")

	assert.Equal(t, cfg.ServerURL, loadedCfg.ServerURL)
	assert.Equal(t, cfg.CallbackAddr, loadedCfg.CallbackAddr)
	assert.Equal(t, cfg.Debug, loadedCfg.Debug)
	assert.Equal(t, cfg.UI, loadedCfg.UI)
}

func TestIntegration_ConfigFileDiscovery(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "custom-config.yaml")

	cfg := &config.Config{
		ServerURL: "https://test.example.com",
	}
	err := config.Save(cfg, configPath)
	require.NoError(t, err)

	originalEnv := os.Getenv("PROJECTS42_CONFIG")
	defer func() {
		if originalEnv != "" {
			os.Setenv("PROJECTS42_CONFIG", originalEnv)
		} else {
			os.Unsetenv("PROJECTS42_CONFIG")
		}
	}()

	os.Setenv("PROJECTS42_CONFIG", configPath)

	discoveredPath := config.DiscoverPath("")
	assert.Equal(t, configPath, discoveredPath, "should discover config from env var")

	flagPath := filepath.Join(tempDir, "flag-config.yaml")
	flagCfg := &config.Config{
		ServerURL: "https://flag.example.com",
	}
	err = config.Save(flagCfg, flagPath)
	require.NoError(t, err)

	discoveredPath = config.DiscoverPath(flagPath)
	assert.Equal(t, flagPath, discoveredPath, "flag should take precedence over env")
}

func TestIntegration_EnvironmentOverrides(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")

	cfg := &config.Config{
		ServerURL:    "https://file.example.com",
		CallbackAddr: "127.0.0.1:4242",
	}
	err := config.Save(cfg, configPath)
	require.NoError(t, err)

	t.Setenv("PROJECTS42_SERVER_URL", "https://env.example.com")

	loadedCfg, err := config.LoadWithEnv(configPath)
	require.NoError(t, err)

	assert.Equal(t, "https://env.example.com", loadedCfg.ServerURL, "env should override file")
	assert.Equal(t, "127.0.0.1:4242", loadedCfg.CallbackAddr, "file value when no env var")
}

// TestIntegration_LoginFlow drives the full redirect flow against a mock
// backend: auth URL fetch, simulated browser redirect to the local callback
// listener, callback resolution, and session verification.
func TestIntegration_LoginFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	loggedIn := false
	backend := testutil.NewMockServer(map[string]http.HandlerFunc{
		"/auth/login/": func(w http.ResponseWriter, r *http.Request) {
			http.SetCookie(w, &http.Cookie{Name: "sessionid", Value: "s3cret", Path: "/"})
			loggedIn = true
			testutil.WithJSONResponse(200, map[string]string{
				"auth_url": "https://api.intra.42.fr/oauth/authorize?client_id=abc",
			})(w, r)
		},
		"/auth/user/": func(w http.ResponseWriter, r *http.Request) {
			if !loggedIn {
				testutil.WithJSONResponse(401, map[string]string{"error": "Not authenticated"})(w, r)
				return
			}
			testutil.WithJSONResponse(200, map[string]interface{}{
				"id": 7, "username": "mnottale", "login_42": "mnottale",
			})(w, r)
		},
	})
	defer backend.Close()

	cookiePath := filepath.Join(t.TempDir(), "cookies.json")
	client, err := api.New(api.Options{BaseURL: backend.URL, CookiePath: cookiePath})
	require.NoError(t, err)

	machine := session.New(client)
	ctx := context.Background()

	// Before login the session check fails quietly.
	require.Equal(t, session.Unauthenticated, machine.Check(ctx))

	authURL, err := machine.BeginLogin(ctx)
	require.NoError(t, err)
	assert.Contains(t, authURL, "oauth/authorize")

	// Callback listener on an ephemeral port.
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	callbackAddr := listener.Addr().String()
	listener.Close()

	results := make(chan session.CallbackResult, 1)
	go func() {
		result, err := session.WaitForCallback(ctx, callbackAddr)
		if err == nil {
			results <- result
		}
	}()

	// Simulate the backend redirecting the browser back. Retry until the
	// listener is up.
	callbackURL := fmt.Sprintf("http://%s%s?success=true", callbackAddr, session.CallbackPath)
	var resp *http.Response
	for i := 0; i < 50; i++ {
		resp, err = http.Get(callbackURL)
		if err == nil {
			resp.Body.Close()
			break
		}
	}
	require.NoError(t, err, "callback request should reach the listener")

	result := <-results
	outcome := machine.ResolveCallback(result)
	require.Equal(t, session.Authenticated, outcome.State)

	// The cookie was issued during BeginLogin; verify and persist it.
	require.Equal(t, session.Authenticated, machine.Check(ctx))
	require.NoError(t, client.SaveSession())

	// A fresh client picks the saved session back up.
	reloaded, err := api.New(api.Options{BaseURL: backend.URL, CookiePath: cookiePath})
	require.NoError(t, err)
	user, err := reloaded.GetCurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "mnottale", user.Login42)
}

// TestIntegration_ListingPipeline fetches projects from a mock backend and
// runs them through saved preferences and the query engine, the same path the
// list command takes.
func TestIntegration_ListingPipeline(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	backend := testutil.NewMockServer(map[string]http.HandlerFunc{
		"/projects/": testutil.WithJSONResponse(200, testutil.SampleProjects()),
	})
	defer backend.Close()

	client, err := api.New(api.Options{BaseURL: backend.URL})
	require.NoError(t, err)

	projects, err := client.ListProjects(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 3)

	store, err := prefs.NewFileStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, prefs.SaveFilters(store, query.FilterState{
		Solo:      testutil.BoolPtr(false),
		Languages: []string{"c"},
	}))

	filters := prefs.LoadFilters(store)
	result := query.Apply(projects, "", filters, query.SortState{Key: query.SortXPPoints, Direction: query.Descending})

	require.Len(t, result, 1)
	assert.Equal(t, "minishell", result[0].Name)
}
