package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jonathan/resume-tailor/internal/provider"
	"github.com/jonathan/resume-tailor/internal/types"
)

// gapFillScore is the pre-seeded relevance of a bridging bullet: it was
// written specifically for the detected gap.
const gapFillScore = 100

// gapFillReason marks a bullet inserted by the gap workflow.
const gapFillReason = "Gap filled via Strategy"

// GapAnalyzer detects job-required qualifications absent from the Tailored
// Profile and inserts bridging bullets to close them. Each analysis replaces
// the cached result wholesale; filling a gap updates the cache locally
// without a re-fetch.
type GapAnalyzer struct {
	store    *Store
	analyzer provider.Analyzer
	validate *validator.Validate
	log      *logrus.Logger

	mu     sync.Mutex
	result *types.GapAnalysisResult
}

// NewGapAnalyzer creates a gap analyzer over the session store.
func NewGapAnalyzer(store *Store, analyzer provider.Analyzer, log *logrus.Logger) *GapAnalyzer {
	if log == nil {
		log = logrus.New()
	}
	return &GapAnalyzer{
		store:    store,
		analyzer: analyzer,
		validate: validator.New(),
		log:      log,
	}
}

// Result returns a copy of the cached gap analysis, or nil before the first
// successful analysis.
func (g *GapAnalyzer) Result() *types.GapAnalysisResult {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.result == nil {
		return nil
	}
	return g.result.Clone()
}

// Restore reloads a persisted gap analysis result.
func (g *GapAnalyzer) Restore(result *types.GapAnalysisResult) {
	if result == nil {
		return
	}
	g.mu.Lock()
	g.result = result.Clone()
	g.mu.Unlock()
}

// AnalyzeGaps serializes the Tailored Profile's roles and bullet contents,
// asks the provider for missing and present skills, and replaces the cached
// result wholesale. On provider failure the cache is left unchanged and the
// error is surfaced as a notice.
func (g *GapAnalyzer) AnalyzeGaps(ctx context.Context) (*types.GapAnalysisResult, error) {
	job := g.store.Job()
	if job.Text == "" {
		return nil, ErrNoJobText
	}

	profileText, err := serializeForGapAnalysis(g.store.Tailored())
	if err != nil {
		return nil, err
	}

	gaps, err := g.analyzer.AnalyzeGaps(ctx, profileText, job.Text)
	if err != nil {
		return nil, err
	}

	result := &types.GapAnalysisResult{
		Missing: append([]string(nil), gaps.MissingSkills...),
		Present: append([]string(nil), gaps.PresentSkills...),
	}
	g.mu.Lock()
	g.result = result
	g.mu.Unlock()
	return result.Clone(), nil
}

// gapFillInput carries the validated preconditions of a gap fill.
type gapFillInput struct {
	Skill        string `validate:"required"`
	ExperienceID string `validate:"required"`
	UserContext  string `validate:"required"`
}

// FillGap asks the provider for one bridging bullet proving the skill, using
// the user's rough context and the job text, then prepends it to the chosen
// experience with a pre-seeded high relevance score and moves the skill from
// missing to present in the cached result. On provider failure nothing is
// inserted and the gap lists are unchanged.
func (g *GapAnalyzer) FillGap(ctx context.Context, skill, experienceID, userContext string) (*types.Bullet, error) {
	input := gapFillInput{Skill: skill, ExperienceID: experienceID, UserContext: userContext}
	if err := g.validate.Struct(input); err != nil {
		return nil, ErrMissingGapFields
	}

	job := g.store.Job()
	if job.Text == "" {
		return nil, ErrNoJobText
	}

	// Reject unknown targets before the provider call.
	if g.store.Tailored().FindExperience(experienceID) == nil {
		return nil, ErrExperienceNotFound
	}

	content, err := g.analyzer.GenerateBridgingBullet(ctx, skill, userContext, job.Text)
	if err != nil {
		return nil, err
	}
	if content == "" {
		return nil, fmt.Errorf("provider returned no bullet for %q", skill)
	}

	bullet := types.Bullet{
		ID:        fmt.Sprintf("b-%s", uuid.NewString()),
		Content:   content,
		IsVisible: true,
		IsLocked:  false,
	}
	bullet.SetScore(gapFillScore, gapFillReason)

	if err := g.store.InsertBulletFront(experienceID, bullet); err != nil {
		return nil, err
	}

	g.mu.Lock()
	if g.result != nil {
		g.result.MarkFilled(skill)
	}
	g.mu.Unlock()

	g.log.WithFields(logrus.Fields{"skill": skill, "experience": experienceID}).Info("gap filled")
	return &bullet, nil
}

// gapExperience is the wire shape of one experience in the serialized
// profile sent to gap analysis: role plus bullet contents only.
type gapExperience struct {
	Role    string   `json:"role"`
	Bullets []string `json:"bullets"`
}

func serializeForGapAnalysis(profile *types.Profile) (string, error) {
	entries := make([]gapExperience, 0, len(profile.Experiences))
	for _, exp := range profile.Experiences {
		entry := gapExperience{Role: exp.Role, Bullets: make([]string, 0, len(exp.Bullets))}
		for _, b := range exp.Bullets {
			entry.Bullets = append(entry.Bullets, b.Content)
		}
		entries = append(entries, entry)
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return "", fmt.Errorf("failed to serialize profile: %w", err)
	}
	return string(data), nil
}
