package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/projects42/projects42-cli/internal/api"
	"github.com/projects42/projects42-cli/internal/completion"
	"github.com/projects42/projects42-cli/internal/prefs"
	"github.com/projects42/projects42-cli/internal/query"
	"github.com/projects42/projects42-cli/internal/ui"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "Browse curriculum projects",
	Long:  "Commands for listing and inspecting 42 curriculum projects",
}

var listProjectsCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects",
	Long: `List curriculum projects with optional search, filters, and sorting.

Filters left unspecified fall back to the selections saved by the interactive
browser. Use --all to ignore saved selections.`,
	RunE: runListProjects,
}

var getProjectCmd = &cobra.Command{
	Use:               "get [id]",
	Short:             "Show project details",
	Long:              "Show full details for a specific project by ID",
	Args:              cobra.ExactArgs(1),
	RunE:              runGetProject,
	ValidArgsFunction: completion.ProjectIDsCompletionFunc(),
}

var listFlags struct {
	search    string
	solo      string
	languages []string
	spec      string
	sort      string
	all       bool
}

func runListProjects(cmd *cobra.Command, args []string) error {
	client, _, err := getClient(cmd)
	if err != nil {
		return err
	}

	filters, err := resolveListFilters(cmd)
	if err != nil {
		return err
	}

	sortState, err := parseSortFlag(listFlags.sort)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
	defer cancel()

	projects, err := client.ListProjects(ctx)
	if err != nil {
		if api.IsUnauthorized(err) {
			return fmt.Errorf("not logged in. Run: projects42 login")
		}
		return fmt.Errorf("failed to fetch projects: %w", err)
	}

	result := query.Apply(projects, listFlags.search, filters, sortState)

	if output == "json" {
		return json.NewEncoder(os.Stdout).Encode(result)
	}

	if len(result) == 0 {
		fmt.Println("No projects found.")
		return nil
	}

	return ui.RenderProjectsTable(os.Stdout, result)
}

// resolveListFilters builds the filter state for the list command: saved
// preferences first, explicit flags on top.
func resolveListFilters(cmd *cobra.Command) (query.FilterState, error) {
	filters := query.DefaultFilters()

	if !listFlags.all {
		if store, err := getPrefsStore(); err == nil {
			filters = prefs.LoadFilters(store)
		}
	}

	if cmd.Flags().Changed("solo") {
		switch strings.ToLower(listFlags.solo) {
		case "all", "":
			filters.Solo = nil
		case "solo", "true":
			v := true
			filters.Solo = &v
		case "group", "false":
			v := false
			filters.Solo = &v
		default:
			return filters, fmt.Errorf("invalid --solo value %q (expected solo, group, or all)", listFlags.solo)
		}
	}

	if cmd.Flags().Changed("language") {
		filters.Languages = listFlags.languages
	}

	if cmd.Flags().Changed("specialization") {
		filters.Specialization = listFlags.spec
	}

	return filters, nil
}

// parseSortFlag parses "field" or "field:direction".
func parseSortFlag(s string) (query.SortState, error) {
	if s == "" {
		return query.SortState{}, nil
	}

	field := s
	direction := query.Ascending
	if idx := strings.Index(s, ":"); idx >= 0 {
		field = s[:idx]
		switch strings.ToLower(s[idx+1:]) {
		case "asc":
			direction = query.Ascending
		case "desc":
			direction = query.Descending
		default:
			return query.SortState{}, fmt.Errorf("invalid sort direction %q (must be asc or desc)", s[idx+1:])
		}
	}

	key, ok := query.ParseSortKey(field)
	if !ok {
		return query.SortState{}, fmt.Errorf("invalid sort field %q (must be name, xp_points, estimate_time, or solo)", field)
	}

	return query.SortState{Key: key, Direction: direction}, nil
}

func runGetProject(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid project ID %q", args[0])
	}

	client, _, err := getClient(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
	defer cancel()

	project, err := client.GetProject(ctx, id)
	if err != nil {
		if api.IsNotFound(err) {
			return fmt.Errorf("project not found: %d", id)
		}
		if api.IsUnauthorized(err) {
			return fmt.Errorf("not logged in. Run: projects42 login")
		}
		return fmt.Errorf("failed to fetch project: %w", err)
	}

	if output == "json" {
		return json.NewEncoder(os.Stdout).Encode(project)
	}

	printProject(project)
	return nil
}

func printProject(p *api.Project) {
	fmt.Printf("Project: %s\n", p.Name)
	fmt.Printf("  ID:              %d\n", p.ID)
	if p.Description != "" {
		fmt.Printf("  Description:     %s\n", p.Description)
	}
	fmt.Printf("  XP:              %s\n", ui.FormatXP(p.XPPoints))
	fmt.Printf("  Time estimate:   %s\n", ui.FormatHours(p.EstimateTimeHours))
	fmt.Printf("  Type:            %s\n", ui.FormatSolo(p.Solo))
	fmt.Printf("  Languages:       %s\n", ui.FormatLanguages(p.Languages))
	fmt.Printf("  Specializations: %s\n", ui.FormatSpecializations(p.Specializations))
	if len(p.Objectives) > 0 {
		fmt.Println("  Objectives:")
		for _, obj := range p.Objectives {
			fmt.Printf("    - %s\n", obj)
		}
	}
	if len(p.Prerequisites) > 0 {
		fmt.Printf("  Prerequisites:   %s\n", strings.Join(p.Prerequisites, ", "))
	}
	if p.SubjectDownloadURL != nil && *p.SubjectDownloadURL != "" {
		fmt.Printf("  Subject PDF:     %s\n", *p.SubjectDownloadURL)
	}
}

func init() {
	listProjectsCmd.Flags().StringVar(&listFlags.search, "search", "", "search in name and description")
	listProjectsCmd.Flags().StringVar(&listFlags.solo, "solo", "", "filter by project type (solo, group, all)")
	listProjectsCmd.Flags().StringSliceVar(&listFlags.languages, "language", nil, "filter by language name (repeatable, OR semantics)")
	listProjectsCmd.Flags().StringVar(&listFlags.spec, "specialization", "", "filter by specialization name")
	listProjectsCmd.Flags().StringVar(&listFlags.sort, "sort", "", "sort by field, e.g. xp_points:desc")
	listProjectsCmd.Flags().BoolVar(&listFlags.all, "all", false, "ignore saved filter preferences")

	_ = listProjectsCmd.RegisterFlagCompletionFunc("solo", completion.SoloValueCompletionFunc())
	_ = listProjectsCmd.RegisterFlagCompletionFunc("sort", completion.SortFieldCompletionFunc())
	_ = listProjectsCmd.RegisterFlagCompletionFunc("language", completion.LanguagesCompletionFunc())
	_ = listProjectsCmd.RegisterFlagCompletionFunc("specialization", completion.SpecializationsCompletionFunc())

	projectsCmd.AddCommand(listProjectsCmd)
	projectsCmd.AddCommand(getProjectCmd)
	rootCmd.AddCommand(projectsCmd)
}
