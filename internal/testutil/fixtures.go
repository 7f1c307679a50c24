package testutil

import "github.com/projects42/projects42-cli/internal/api"

// IntPtr returns a pointer to v, for optional numeric fixture fields.
func IntPtr(v int) *int { return &v }

// BoolPtr returns a pointer to v, for tri-state filter fixtures.
func BoolPtr(v bool) *bool { return &v }

// SampleProjects returns a small fixed collection covering the interesting
// shapes: solo and group projects, absent XP and time estimates, multiple
// languages and specializations.
func SampleProjects() []api.Project {
	return []api.Project{
		{
			ID:                1,
			Name:              "ft_printf",
			Description:       "Recode printf from scratch",
			XPPoints:          IntPtr(200),
			EstimateTimeHours: IntPtr(70),
			Solo:              true,
			Languages:         []api.Language{{Name: "c", DisplayName: "C"}},
			Specializations:   []api.Specialization{{Name: "common_core", DisplayName: "Common Core"}},
			Objectives:        []string{"Variadic functions", "String formatting"},
		},
		{
			ID:                2,
			Name:              "minishell",
			Description:       "As beautiful as a shell",
			XPPoints:          IntPtr(500),
			EstimateTimeHours: IntPtr(210),
			Solo:              false,
			Languages:         []api.Language{{Name: "c", DisplayName: "C"}},
			Specializations:   []api.Specialization{{Name: "common_core", DisplayName: "Common Core"}},
			Prerequisites:     []string{"ft_printf"},
		},
		{
			ID:              3,
			Name:            "ft_transcendence",
			Description:     "",
			Solo:            false,
			Languages:       []api.Language{{Name: "typescript", DisplayName: "TypeScript"}},
			Specializations: []api.Specialization{{Name: "web_mobile", DisplayName: "Web & Mobile"}},
		},
	}
}
