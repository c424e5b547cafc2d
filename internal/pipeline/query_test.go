package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"job-scout/internal/models"
)

func TestBuildSearchURL_FullSearch(t *testing.T) {
	search := &models.JobSearch{
		Keyword:         "Product Manager",
		Location:        "Berlin",
		ExperienceLevel: []string{"Associate", "Mid-Senior level"},
		WorkModel:       []string{"Remote", "Hybrid"},
		JobType:         []string{"Full-time", "Contract"},
	}

	got := BuildSearchURL(search)

	assert.Contains(t, got, "f_TPR=r86400")
	assert.Contains(t, got, "keywords=%22Product+Manager%22")
	assert.Contains(t, got, "location=Berlin")
	assert.Contains(t, got, "f_E=3,4")
	assert.Contains(t, got, "f_WT=2,3")
	assert.Contains(t, got, "f_JT=F,C")
}

func TestBuildSearchURL_UnknownValuesOmitted(t *testing.T) {
	search := &models.JobSearch{
		Keyword:         "Engineer",
		ExperienceLevel: []string{"Wizard"},
		WorkModel:       []string{"Underwater"},
		JobType:         []string{"Gig"},
	}

	got := BuildSearchURL(search)

	assert.NotContains(t, got, "f_E=")
	assert.NotContains(t, got, "f_WT=")
	assert.NotContains(t, got, "f_JT=")
}

func TestBuildSearchURL_PartiallyUnknownValues(t *testing.T) {
	search := &models.JobSearch{
		Keyword:         "Engineer",
		ExperienceLevel: []string{"Wizard", "Director"},
	}
	assert.Contains(t, BuildSearchURL(search), "f_E=5")
}

func TestBuildSearchURL_EmptySearch(t *testing.T) {
	assert.Equal(t, "https://www.linkedin.com/jobs/search/?f_TPR=r86400",
		BuildSearchURL(&models.JobSearch{}))
}

func TestCompileQueries_MergesIdenticalURLs(t *testing.T) {
	s1 := &models.JobSearch{ID: "s1", UserID: "u1", Keyword: "PM", Location: "Berlin"}
	s2 := &models.JobSearch{ID: "s2", UserID: "u2", Keyword: "PM", Location: "Berlin"}
	s3 := &models.JobSearch{ID: "s3", UserID: "u1", Keyword: "Data Engineer", Location: "Berlin"}

	queries := CompileQueries([]*models.JobSearch{s1, s2, s3})
	require.Len(t, queries, 2)

	merged := queries[0]
	assert.Len(t, merged.Searches, 2)
	assert.NotEmpty(t, merged.RequestID)
	assert.NotEqual(t, merged.RequestID, queries[1].RequestID)

	// both owning users are attributed, not just the first encountered
	assert.Equal(t, []string{"u1", "u2"}, merged.Users())
	assert.Equal(t, []string{"u1"}, queries[1].Users())
}

func TestCompiledQuery_UsersDeduplicates(t *testing.T) {
	q := &CompiledQuery{Searches: []*models.JobSearch{
		{ID: "a", UserID: "u1"},
		{ID: "b", UserID: "u1"},
	}}
	assert.Equal(t, []string{"u1"}, q.Users())
}
