// Package provider defines the analysis/generation collaborator used by the
// tailoring session: bullet rewrites, relevance scoring, gap analysis, resume
// parsing, and cover letter generation. Implementations call out to an LLM
// and may fail or return malformed data; callers must treat any error as
// "use the documented fallback" and never as fatal.
package provider

import (
	"context"

	"github.com/jonathan/resume-tailor/internal/types"
)

// BulletScore is one scored bullet in a relevance-ranking response.
type BulletScore struct {
	ID     string `json:"id"`
	Score  int    `json:"score"`
	Reason string `json:"reason"`
}

// GapAnalysis is the provider's skill gap verdict for a profile/job pair.
type GapAnalysis struct {
	MissingSkills []string `json:"missingSkills"`
	PresentSkills []string `json:"presentSkills"`
}

// Analyzer is the opaque analysis/generation provider. Fallbacks on error:
//
//	OptimizeBullet         -> caller keeps the original text
//	AnalyzeJobDescription  -> caller keeps an empty keyword list
//	ScoreBullets           -> caller applies no scores
//	ScoreOneBullet         -> caller applies no score
//	AnalyzeGaps            -> caller keeps both lists empty
//	GenerateBridgingBullet -> caller inserts nothing
//	GenerateCoverLetter    -> caller keeps an empty letter
//	ParseResumeFromText    -> caller keeps the current profile
//	ParseResumeFromPDF     -> caller keeps the current profile
type Analyzer interface {
	OptimizeBullet(ctx context.Context, bullet, jobText string) (string, error)
	AnalyzeJobDescription(ctx context.Context, jobText string) ([]string, error)
	ScoreBullets(ctx context.Context, bullets []types.BulletRef, jobText string) ([]BulletScore, error)
	ScoreOneBullet(ctx context.Context, id, content, jobText string) (*BulletScore, error)
	AnalyzeGaps(ctx context.Context, profileText, jobText string) (*GapAnalysis, error)
	GenerateBridgingBullet(ctx context.Context, skill, userContext, jobText string) (string, error)
	GenerateCoverLetter(ctx context.Context, profile *types.Profile, jobTitle, company, jobText string) (string, error)
	ParseResumeFromText(ctx context.Context, rawText string) (*types.Profile, error)
	ParseResumeFromPDF(ctx context.Context, data []byte) (*types.Profile, error)
}
