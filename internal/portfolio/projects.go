package portfolio

import "github.com/jonathan/portfolio-cv/internal/types"

// AllCategories is the filter value that matches every project
const AllCategories = "All"

// FilterProjects returns the projects in the given category, in order. AllCategories or
// an empty category returns every project.
func FilterProjects(projects []types.ProjectEntry, category string) []types.ProjectEntry {
	if category == "" || category == AllCategories {
		return projects
	}
	out := make([]types.ProjectEntry, 0, len(projects))
	for _, p := range projects {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// Categories lists AllCategories followed by each distinct project category in first
// appearance order.
func Categories(projects []types.ProjectEntry) []string {
	seen := map[string]bool{AllCategories: true}
	cats := []string{AllCategories}
	for _, p := range projects {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		cats = append(cats, p.Category)
	}
	return cats
}
