package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-tailor/internal/types"
)

func TestSanitizeProfile_MissingBulletsBecomesEmpty(t *testing.T) {
	p := &types.Profile{
		Name: "Jane Doe",
		Experiences: []types.Experience{
			{ID: "exp-1", Company: "Acme", Role: "Engineer", Bullets: nil},
		},
	}

	SanitizeProfile(p)

	require.Len(t, p.Experiences, 1)
	assert.NotNil(t, p.Experiences[0].Bullets)
	assert.Empty(t, p.Experiences[0].Bullets)
}

func TestSanitizeProfile_FillsMissingFields(t *testing.T) {
	p := &types.Profile{
		Experiences: []types.Experience{
			{
				Bullets: []types.Bullet{
					{Content: "Did something"},
					{ID: "b-1", Content: "Did something else", IsLocked: true},
				},
			},
		},
	}

	SanitizeProfile(p)

	exp := p.Experiences[0]
	assert.NotEmpty(t, exp.ID)
	assert.Equal(t, UnknownCompany, exp.Company)
	assert.Equal(t, UnknownRole, exp.Role)

	for _, b := range exp.Bullets {
		assert.NotEmpty(t, b.ID)
		assert.True(t, b.IsVisible)
		assert.False(t, b.IsLocked, "imported bullets start unlocked")
		assert.Nil(t, b.RelevanceScore)
	}
}

func TestSanitizeProfile_DropsInventedScores(t *testing.T) {
	score := 95
	p := &types.Profile{
		Experiences: []types.Experience{
			{
				ID: "exp-1", Company: "Acme", Role: "Engineer",
				Bullets: []types.Bullet{
					{ID: "b-1", Content: "x", RelevanceScore: &score, RelevanceReason: "made up"},
				},
			},
		},
	}

	SanitizeProfile(p)

	assert.Nil(t, p.Experiences[0].Bullets[0].RelevanceScore)
	assert.Empty(t, p.Experiences[0].Bullets[0].RelevanceReason)
}

func TestSanitizeProfile_NilExperiences(t *testing.T) {
	p := &types.Profile{Name: "Jane"}
	SanitizeProfile(p)
	assert.NotNil(t, p.Experiences)
	assert.Empty(t, p.Experiences)
}

func TestSanitizeProfile_DeduplicatesIDs(t *testing.T) {
	p := &types.Profile{
		Experiences: []types.Experience{
			{ID: "dup", Company: "A", Role: "R", Bullets: []types.Bullet{{ID: "b-dup", Content: "one"}}},
			{ID: "dup", Company: "B", Role: "R", Bullets: []types.Bullet{{ID: "b-dup", Content: "two"}}},
		},
	}

	SanitizeProfile(p)

	assert.NotEqual(t, p.Experiences[0].ID, p.Experiences[1].ID)
	assert.NotEqual(t, p.Experiences[0].Bullets[0].ID, p.Experiences[1].Bullets[0].ID)
}

func TestExtractPDFText_RejectsGarbage(t *testing.T) {
	_, err := ExtractPDFText([]byte("definitely not a pdf"))
	require.Error(t, err)
}
