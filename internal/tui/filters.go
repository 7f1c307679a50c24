package tui

import (
	"github.com/projects42/projects42-cli/internal/api"
)

// cycleSolo advances the tri-state solo constraint: all -> solo -> group -> all.
func cycleSolo(current *bool) *bool {
	switch {
	case current == nil:
		v := true
		return &v
	case *current:
		v := false
		return &v
	default:
		return nil
	}
}

// specializationOptions returns the distinct specialization names present in
// the collection, in first-seen order.
func specializationOptions(projects []api.Project) []string {
	seen := map[string]struct{}{}
	var options []string
	for _, p := range projects {
		for _, s := range p.Specializations {
			if _, ok := seen[s.Name]; !ok {
				seen[s.Name] = struct{}{}
				options = append(options, s.Name)
			}
		}
	}
	return options
}

// languageOptions returns the distinct language names present in the
// collection, in first-seen order.
func languageOptions(projects []api.Project) []string {
	seen := map[string]struct{}{}
	var options []string
	for _, p := range projects {
		for _, l := range p.Languages {
			if _, ok := seen[l.Name]; !ok {
				seen[l.Name] = struct{}{}
				options = append(options, l.Name)
			}
		}
	}
	return options
}

// cycleOption advances through "" -> options[0] -> ... -> options[n-1] -> "".
func cycleOption(current string, options []string) string {
	if len(options) == 0 {
		return ""
	}
	if current == "" {
		return options[0]
	}
	for i, opt := range options {
		if opt == current {
			if i+1 < len(options) {
				return options[i+1]
			}
			return ""
		}
	}
	return ""
}
