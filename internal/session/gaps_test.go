package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-tailor/internal/provider"
)

func newTestGaps(analyzer *fakeAnalyzer) (*Store, *GapAnalyzer) {
	store := newTestStore()
	store.SetJobDetails("Acme", "Engineer", "We need Kubernetes and Go experience.")
	return store, NewGapAnalyzer(store, analyzer, testLogger())
}

func TestAnalyzeGapsRequiresJobText(t *testing.T) {
	store := newTestStore()
	analyzer := NewGapAnalyzer(store, &fakeAnalyzer{}, testLogger())
	_, err := analyzer.AnalyzeGaps(context.Background())
	assert.ErrorIs(t, err, ErrNoJobText)
}

func TestAnalyzeGapsSendsRolesAndBullets(t *testing.T) {
	var seen string
	fake := &fakeAnalyzer{
		gaps: func(profileText, jobText string) (*provider.GapAnalysis, error) {
			seen = profileText
			assert.Contains(t, jobText, "Kubernetes")
			return &provider.GapAnalysis{
				MissingSkills: []string{"Kubernetes"},
				PresentSkills: []string{"Python"},
			}, nil
		},
	}
	_, analyzer := newTestGaps(fake)

	result, err := analyzer.AnalyzeGaps(context.Background())
	require.NoError(t, err)

	assert.Contains(t, seen, "Senior Python Developer")
	assert.Contains(t, seen, "Directed a team of 4 analysts")
	assert.NotContains(t, seen, "FinTech Global", "company names are not part of the gap prompt")

	assert.Equal(t, []string{"Kubernetes"}, result.Missing)
	assert.Equal(t, []string{"Python"}, result.Present)
}

func TestAnalyzeGapsReplacesCacheWholesale(t *testing.T) {
	responses := []*provider.GapAnalysis{
		{MissingSkills: []string{"Kubernetes", "Terraform"}, PresentSkills: []string{"Python"}},
		{MissingSkills: []string{"GraphQL"}, PresentSkills: []string{"Go"}},
	}
	call := 0
	fake := &fakeAnalyzer{
		gaps: func(string, string) (*provider.GapAnalysis, error) {
			resp := responses[call]
			call++
			return resp, nil
		},
	}
	_, analyzer := newTestGaps(fake)

	_, err := analyzer.AnalyzeGaps(context.Background())
	require.NoError(t, err)
	_, err = analyzer.AnalyzeGaps(context.Background())
	require.NoError(t, err)

	result := analyzer.Result()
	assert.Equal(t, []string{"GraphQL"}, result.Missing, "each analysis replaces the previous result")
	assert.Equal(t, []string{"Go"}, result.Present)
}

func TestAnalyzeGapsFailureKeepsCache(t *testing.T) {
	fail := false
	fake := &fakeAnalyzer{
		gaps: func(string, string) (*provider.GapAnalysis, error) {
			if fail {
				return nil, errors.New("provider unavailable")
			}
			return &provider.GapAnalysis{MissingSkills: []string{"Kubernetes"}}, nil
		},
	}
	_, analyzer := newTestGaps(fake)
	_, err := analyzer.AnalyzeGaps(context.Background())
	require.NoError(t, err)

	fail = true
	_, err = analyzer.AnalyzeGaps(context.Background())
	require.Error(t, err)

	result := analyzer.Result()
	require.NotNil(t, result)
	assert.Equal(t, []string{"Kubernetes"}, result.Missing)
}

func TestFillGapValidatesInput(t *testing.T) {
	tests := []struct {
		name                      string
		skill, expID, userContext string
	}{
		{name: "missing skill", expID: "1", userContext: "I ran clusters"},
		{name: "missing experience", skill: "Kubernetes", userContext: "I ran clusters"},
		{name: "missing context", skill: "Kubernetes", expID: "1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, analyzer := newTestGaps(&fakeAnalyzer{})
			_, err := analyzer.FillGap(context.Background(), tt.skill, tt.expID, tt.userContext)
			assert.ErrorIs(t, err, ErrMissingGapFields)
		})
	}
}

func TestFillGapUnknownExperience(t *testing.T) {
	_, analyzer := newTestGaps(&fakeAnalyzer{})
	_, err := analyzer.FillGap(context.Background(), "Kubernetes", "nope", "I ran clusters")
	assert.ErrorIs(t, err, ErrExperienceNotFound)
}

func TestFillGapInsertsOneBulletAndMovesSkill(t *testing.T) {
	fake := &fakeAnalyzer{
		gaps: func(string, string) (*provider.GapAnalysis, error) {
			return &provider.GapAnalysis{
				MissingSkills: []string{"Kubernetes", "Terraform"},
				PresentSkills: []string{"Python"},
			}, nil
		},
		bridging: func(skill, userContext, _ string) (string, error) {
			assert.Equal(t, "Kubernetes", skill)
			assert.Equal(t, "I migrated our batch jobs to k8s", userContext)
			return "Migrated batch workloads to Kubernetes, cutting deploy time by 60%.", nil
		},
	}
	store, analyzer := newTestGaps(fake)
	_, err := analyzer.AnalyzeGaps(context.Background())
	require.NoError(t, err)

	before := store.Tailored()
	otherCount := len(before.Experiences[0].Bullets)
	targetCount := len(before.Experiences[1].Bullets)

	bullet, err := analyzer.FillGap(context.Background(), "Kubernetes", "2", "I migrated our batch jobs to k8s")
	require.NoError(t, err)

	after := store.Tailored()
	require.Len(t, after.Experiences[1].Bullets, targetCount+1)
	assert.Len(t, after.Experiences[0].Bullets, otherCount, "other experiences untouched")

	inserted := after.Experiences[1].Bullets[0]
	assert.Equal(t, bullet.ID, inserted.ID)
	assert.Equal(t, "Migrated batch workloads to Kubernetes, cutting deploy time by 60%.", inserted.Content)
	assert.True(t, inserted.IsVisible)
	assert.False(t, inserted.IsLocked)
	require.NotNil(t, inserted.RelevanceScore)
	assert.Equal(t, 100, *inserted.RelevanceScore)

	result := analyzer.Result()
	assert.Equal(t, []string{"Terraform"}, result.Missing)
	assert.Equal(t, []string{"Python", "Kubernetes"}, result.Present)
}

func TestFillGapProviderFailureChangesNothing(t *testing.T) {
	fake := &fakeAnalyzer{
		gaps: func(string, string) (*provider.GapAnalysis, error) {
			return &provider.GapAnalysis{MissingSkills: []string{"Kubernetes"}}, nil
		},
		bridging: func(string, string, string) (string, error) {
			return "", errors.New("provider unavailable")
		},
	}
	store, analyzer := newTestGaps(fake)
	_, err := analyzer.AnalyzeGaps(context.Background())
	require.NoError(t, err)
	before := len(store.Tailored().Experiences[1].Bullets)

	_, err = analyzer.FillGap(context.Background(), "Kubernetes", "2", "context")
	require.Error(t, err)

	assert.Len(t, store.Tailored().Experiences[1].Bullets, before)
	assert.Equal(t, []string{"Kubernetes"}, analyzer.Result().Missing,
		"a failed fill leaves the gap open")
}

func TestFillGapEmptyBulletChangesNothing(t *testing.T) {
	fake := &fakeAnalyzer{
		bridging: func(string, string, string) (string, error) { return "", nil },
	}
	store, analyzer := newTestGaps(fake)
	before := len(store.Tailored().Experiences[0].Bullets)

	_, err := analyzer.FillGap(context.Background(), "Kubernetes", "1", "context")
	require.Error(t, err)
	assert.Len(t, store.Tailored().Experiences[0].Bullets, before)
}

func TestResultReturnsIndependentCopy(t *testing.T) {
	fake := &fakeAnalyzer{
		gaps: func(string, string) (*provider.GapAnalysis, error) {
			return &provider.GapAnalysis{MissingSkills: []string{"Kubernetes"}}, nil
		},
	}
	_, analyzer := newTestGaps(fake)
	_, err := analyzer.AnalyzeGaps(context.Background())
	require.NoError(t, err)

	got := analyzer.Result()
	got.Missing[0] = "mutated"
	assert.Equal(t, []string{"Kubernetes"}, analyzer.Result().Missing)
}
