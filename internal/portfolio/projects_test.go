package portfolio

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jonathan/portfolio-cv/internal/types"
)

func titles(projects []types.ProjectEntry) []string {
	out := make([]string, 0, len(projects))
	for _, p := range projects {
		out = append(out, p.Title)
	}
	return out
}

func TestFilterProjects(t *testing.T) {
	projects := []types.ProjectEntry{
		{Title: "Crop Monitor", Category: "AI"},
		{Title: "Sales Dashboard", Category: "Data"},
		{Title: "Meeting Insights", Category: "AI"},
		{Title: "Site", Category: "Dev"},
	}

	tests := []struct {
		category string
		want     []string
	}{
		{category: AllCategories, want: []string{"Crop Monitor", "Sales Dashboard", "Meeting Insights", "Site"}},
		{category: "", want: []string{"Crop Monitor", "Sales Dashboard", "Meeting Insights", "Site"}},
		{category: "AI", want: []string{"Crop Monitor", "Meeting Insights"}},
		{category: "Dev", want: []string{"Site"}},
		{category: "Games", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, titles(FilterProjects(projects, tt.category))); diff != "" {
				t.Errorf("FilterProjects(%q) mismatch (-want +got):\n%s", tt.category, diff)
			}
		})
	}
}

func TestCategories(t *testing.T) {
	projects := []types.ProjectEntry{
		{Title: "a", Category: "Data"},
		{Title: "b"},
		{Title: "c", Category: "AI"},
		{Title: "d", Category: "Data"},
	}
	want := []string{AllCategories, "Data", "AI"}
	if diff := cmp.Diff(want, Categories(projects)); diff != "" {
		t.Errorf("Categories mismatch (-want +got):\n%s", diff)
	}
}
