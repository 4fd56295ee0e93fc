package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_KnownPrompts(t *testing.T) {
	tests := []struct {
		file     string
		key      string
		contains string
	}{
		{"analysis.json", "keywords", "top 5"},
		{"analysis.json", "score_batch", "strict recruiter"},
		{"analysis.json", "score_single", "{{.BulletID}}"},
		{"analysis.json", "gap_analysis", "missingSkills"},
		{"tailoring.json", "optimize_bullet", "Ruthless Hiring Manager"},
		{"tailoring.json", "bridging_bullet", "{{.Skill}}"},
		{"tailoring.json", "cover_letter", "Dear Hiring Manager"},
		{"parsing.json", "resume_parse", "Data Entry Specialist"},
	}

	for _, tt := range tests {
		t.Run(tt.file+"/"+tt.key, func(t *testing.T) {
			prompt, err := Get(tt.file, tt.key)
			require.NoError(t, err)
			assert.Contains(t, prompt, tt.contains)
		})
	}
}

func TestGet_MissingKey(t *testing.T) {
	_, err := Get("analysis.json", "does_not_exist")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does_not_exist")
}

func TestGet_MissingFile(t *testing.T) {
	_, err := Get("nope.json", "keywords")
	require.Error(t, err)
}

func TestFormat(t *testing.T) {
	out := Format("Bullet: {{.Bullet}} against {{.JobContext}}", map[string]string{
		"Bullet":     "Built a cache",
		"JobContext": "backend role",
	})
	assert.Equal(t, "Bullet: Built a cache against backend role", out)
	assert.False(t, strings.Contains(out, "{{"))
}

func TestMustGet_PanicsOnMissing(t *testing.T) {
	assert.Panics(t, func() { MustGet("analysis.json", "missing_key") })
}
