// Package completion provides shell completion functionality for the CLI.
package completion

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/projects42/projects42-cli/internal/api"
	"github.com/projects42/projects42-cli/internal/cache"
	"github.com/projects42/projects42-cli/internal/config"
)

// completionTTL bounds how long fetched completion values are reused.
const completionTTL = 5 * time.Minute

// ValidOutputFormats returns valid values for --output flag completion.
func ValidOutputFormats() []string {
	return []string{"table", "json"}
}

// OutputFormatCompletionFunc returns a ValidArgsFunction for output format completion.
func OutputFormatCompletionFunc() func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return ValidOutputFormats(), cobra.ShellCompDirectiveDefault
	}
}

// SortFieldCompletionFunc completes --sort values, including the optional
// direction suffix.
func SortFieldCompletionFunc() func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		fields := []string{"name", "xp_points", "estimate_time", "solo"}

		var completions []string
		for _, f := range fields {
			completions = append(completions, f, f+":asc", f+":desc")
		}
		return filterCompletions(completions, toComplete), cobra.ShellCompDirectiveNoFileComp
	}
}

// SoloValueCompletionFunc completes the --solo tri-state values.
func SoloValueCompletionFunc() func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return filterCompletions([]string{"solo", "group", "all"}, toComplete), cobra.ShellCompDirectiveNoFileComp
	}
}

// NoCompletion returns an empty completion function.
func NoCompletion() func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
}

// ProjectIDsCompletionFunc returns a ValidArgsFunction that completes project
// IDs with the project name as description, backed by the completion cache.
func ProjectIDsCompletionFunc() func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return cachedListingCompletion("project-ids", func(projects []api.Project) []string {
		completions := make([]string, 0, len(projects))
		for _, p := range projects {
			completions = append(completions, fmt.Sprintf("%d\t%s", p.ID, p.Name))
		}
		return completions
	})
}

// LanguagesCompletionFunc completes --language values from the languages
// present in the project collection.
func LanguagesCompletionFunc() func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return cachedListingCompletion("language-names", func(projects []api.Project) []string {
		return distinct(projects, func(p api.Project) []string {
			names := make([]string, len(p.Languages))
			for i, l := range p.Languages {
				names[i] = l.Name
			}
			return names
		})
	})
}

// SpecializationsCompletionFunc completes --specialization values.
func SpecializationsCompletionFunc() func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return cachedListingCompletion("specialization-names", func(projects []api.Project) []string {
		return distinct(projects, func(p api.Project) []string {
			names := make([]string, len(p.Specializations))
			for i, s := range p.Specializations {
				names[i] = s.Name
			}
			return names
		})
	})
}

// cachedListingCompletion fetches the project collection, extracts completion
// values, and caches them. Any failure completes nothing: completions must
// never be intrusive.
func cachedListingCompletion(cacheKey string, extract func([]api.Project) []string) func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		manager, _ := cache.NewManager("", completionTTL)
		if manager != nil {
			if cached, ok := manager.Get(cacheKey); ok {
				return filterCompletions(cached, toComplete), cobra.ShellCompDirectiveNoFileComp
			}
		}

		client, err := getClient(cmd)
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		projects, err := client.ListProjects(ctx)
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}

		completions := extract(projects)

		if manager != nil {
			_ = manager.Set(cacheKey, completions)
		}

		return filterCompletions(completions, toComplete), cobra.ShellCompDirectiveNoFileComp
	}
}

// getClient creates a client from command flags and config.
func getClient(cmd *cobra.Command) (*api.Client, error) {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = config.DiscoverPath("")
	}

	cfg, err := config.LoadWithEnv(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.ServerURL == "" {
		return nil, fmt.Errorf("no server URL configured")
	}

	return api.New(api.Options{
		BaseURL:    cfg.ServerURL,
		CookiePath: config.CookiePath(),
	})
}

// distinct collects values in first-seen order without duplicates.
func distinct(projects []api.Project, extract func(api.Project) []string) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, p := range projects {
		for _, v := range extract(p) {
			if _, ok := seen[v]; !ok {
				seen[v] = struct{}{}
				out = append(out, v)
			}
		}
	}
	return out
}

// filterCompletions filters completions based on the toComplete prefix.
func filterCompletions(completions []string, toComplete string) []string {
	if toComplete == "" {
		return completions
	}

	filtered := make([]string, 0)
	for _, c := range completions {
		// Handle tab-separated descriptions (value\tdescription)
		parts := strings.Split(c, "\t")
		value := parts[0]

		if strings.HasPrefix(value, toComplete) {
			filtered = append(filtered, c)
		}
	}

	return filtered
}
