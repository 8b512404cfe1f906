package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/portfolio-cv/internal/types"
)

func twoPageDoc() *Document {
	return &Document{Pages: []Page{
		{Number: 1, Lines: []string{"Jane Doe", "SUMMARY", "Analyst.", "PROFESSIONAL EXPERIENCE", "Page 1/2"}},
		{Number: 2, Lines: []string{"PROJECTS", "2024 Crop Monitor, Personal Project", "Page 2/2"}},
	}}
}

func TestCheckPageCount(t *testing.T) {
	doc := twoPageDoc()

	assert.Empty(t, CheckPageCount(doc, 0))
	assert.Empty(t, CheckPageCount(doc, 2))

	violations := CheckPageCount(doc, 1)
	require.Len(t, violations, 1)
	assert.Equal(t, types.ViolationPageOverflow, violations[0].Type)
	assert.Contains(t, violations[0].Details, "2 pages")
}

func TestCheckFooters(t *testing.T) {
	t.Run("all present", func(t *testing.T) {
		assert.Empty(t, CheckFooters(twoPageDoc()))
	})

	t.Run("wrong total", func(t *testing.T) {
		doc := twoPageDoc()
		doc.Pages[1].Lines[2] = "Page 2/3"
		violations := CheckFooters(doc)
		require.Len(t, violations, 1)
		require.NotNil(t, violations[0].Page)
		assert.Equal(t, 2, *violations[0].Page)
	})

	t.Run("missing", func(t *testing.T) {
		doc := twoPageDoc()
		doc.Pages[0].Lines = doc.Pages[0].Lines[:4]
		violations := CheckFooters(doc)
		require.Len(t, violations, 1)
		assert.Equal(t, 1, *violations[0].Page)
	})
}

func TestCheckSections(t *testing.T) {
	violations := CheckSections(twoPageDoc(), []string{"Summary", "Professional Experience", "Education"})
	require.Len(t, violations, 1)
	assert.Equal(t, types.ViolationMissingSection, violations[0].Type)
	assert.Equal(t, []string{"Education"}, violations[0].AffectedSections)
}

func TestCheckRequiredText(t *testing.T) {
	violations := CheckRequiredText(twoPageDoc(), []string{"Crop Monitor", "", "Epsilon Engine"})
	require.Len(t, violations, 1)
	assert.Contains(t, violations[0].Details, "Epsilon Engine")
	assert.Equal(t, types.SeverityWarning, violations[0].Severity)
}

func TestCheckForbiddenPhrases(t *testing.T) {
	tests := []struct {
		name    string
		phrases []string
		want    int
	}{
		{name: "none", phrases: nil, want: 0},
		{name: "blank phrase", phrases: []string{"  "}, want: 0},
		{name: "case insensitive", phrases: []string{"crop MONITOR"}, want: 1},
		{name: "one per page", phrases: []string{"page", "analyst"}, want: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, CheckForbiddenPhrases(twoPageDoc(), tt.phrases), tt.want)
		})
	}
}

func TestInspect_CombinesChecks(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxPages = 1

	violations := Inspect(twoPageDoc(), opts)
	require.NotNil(t, violations)
	assert.True(t, violations.HasErrors())

	kinds := map[string]int{}
	for _, v := range violations.Violations {
		kinds[v.Type]++
	}
	assert.Equal(t, 1, kinds[types.ViolationPageOverflow])
	assert.Equal(t, 0, kinds[types.ViolationFooterMissing])
	// education and technical skills are absent from the fixture
	assert.Equal(t, 2, kinds[types.ViolationMissingSection])
}

func TestDocument_Find(t *testing.T) {
	doc := twoPageDoc()
	assert.Equal(t, []int{1, 2}, doc.Find("Page"))
	assert.Equal(t, []int{2}, doc.Find("Crop Monitor"))
	assert.Empty(t, doc.Find("Epsilon"))
	assert.Equal(t, "PROJECTS\n2024 Crop Monitor, Personal Project\nPage 2/2", doc.Pages[1].Text())
}
