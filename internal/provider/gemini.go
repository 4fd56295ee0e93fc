package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-tailor/internal/llm"
	"github.com/jonathan/resume-tailor/internal/parsing"
	"github.com/jonathan/resume-tailor/internal/prompts"
	"github.com/jonathan/resume-tailor/internal/types"
)

// Excerpt limits keep prompts inside the context budget. Values follow the
// per-operation truncation the scoring and rewrite prompts were tuned with.
const (
	optimizeJobExcerpt    = 300
	scoreSingleJobExcerpt = 1000
	scoreBatchJobExcerpt  = 1500
	keywordJobExcerpt     = 2000
	gapProfileExcerpt     = 4000
	gapJobExcerpt         = 2000
	bridgeJobExcerpt      = 500
	letterJobExcerpt      = 1500
	resumeTextExcerpt     = 8000
)

// maxKeywords caps how many extracted keywords are kept from a job description.
const maxKeywords = 5

// GeminiAnalyzer implements Analyzer on top of the shared LLM client.
type GeminiAnalyzer struct {
	client llm.Client
}

// NewGeminiAnalyzer creates an Analyzer backed by the given LLM client.
func NewGeminiAnalyzer(client llm.Client) *GeminiAnalyzer {
	return &GeminiAnalyzer{client: client}
}

// OptimizeBullet rewrites one bullet against the job text.
func (g *GeminiAnalyzer) OptimizeBullet(ctx context.Context, bullet, jobText string) (string, error) {
	prompt := prompts.Format(prompts.MustGet("tailoring.json", "optimize_bullet"), map[string]string{
		"Bullet":     bullet,
		"JobContext": excerpt(jobText, optimizeJobExcerpt),
	})

	text, err := g.client.GenerateContent(ctx, prompt, llm.TierAdvanced)
	if err != nil {
		return "", fmt.Errorf("optimize bullet: %w", err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("optimize bullet: empty response")
	}
	return text, nil
}

// AnalyzeJobDescription extracts up to five keyword strings from the job text.
func (g *GeminiAnalyzer) AnalyzeJobDescription(ctx context.Context, jobText string) ([]string, error) {
	prompt := prompts.Format(prompts.MustGet("analysis.json", "keywords"), map[string]string{
		"JobText": excerpt(jobText, keywordJobExcerpt),
	})

	raw, err := g.client.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		return nil, fmt.Errorf("analyze job description: %w", err)
	}
	if err := validateAgainstSchema(keywordListSchema, raw); err != nil {
		return nil, fmt.Errorf("analyze job description: %w", err)
	}

	var keywords []string
	if err := json.Unmarshal([]byte(raw), &keywords); err != nil {
		return nil, fmt.Errorf("analyze job description: %w", err)
	}
	if len(keywords) > maxKeywords {
		keywords = keywords[:maxKeywords]
	}
	return keywords, nil
}

// ScoreBullets rates every supplied bullet in one batched request and returns
// the scores the provider actually produced; omitted bullets simply don't
// appear in the result.
func (g *GeminiAnalyzer) ScoreBullets(ctx context.Context, bullets []types.BulletRef, jobText string) ([]BulletScore, error) {
	if len(bullets) == 0 {
		return nil, nil
	}

	var list strings.Builder
	for i, b := range bullets {
		if i > 0 {
			list.WriteString("\n\n")
		}
		fmt.Fprintf(&list, "ID: %s\nContent: %s", b.ID, b.Content)
	}

	prompt := prompts.Format(prompts.MustGet("analysis.json", "score_batch"), map[string]string{
		"JobText":    excerpt(jobText, scoreBatchJobExcerpt),
		"BulletList": list.String(),
	})

	raw, err := g.client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, fmt.Errorf("score bullets: %w", err)
	}

	arrayJSON, err := extractScoreArray(raw)
	if err != nil {
		return nil, fmt.Errorf("score bullets: %w", err)
	}
	if err := validateAgainstSchema(bulletScoreListSchema, arrayJSON); err != nil {
		return nil, fmt.Errorf("score bullets: %w", err)
	}

	var scores []BulletScore
	if err := json.Unmarshal([]byte(arrayJSON), &scores); err != nil {
		return nil, fmt.Errorf("score bullets: %w", err)
	}
	return scores, nil
}

// ScoreOneBullet rates a single bullet, used after an accepted rewrite.
func (g *GeminiAnalyzer) ScoreOneBullet(ctx context.Context, id, content, jobText string) (*BulletScore, error) {
	prompt := prompts.Format(prompts.MustGet("analysis.json", "score_single"), map[string]string{
		"JobText":  excerpt(jobText, scoreSingleJobExcerpt),
		"BulletID": id,
		"Content":  content,
	})

	raw, err := g.client.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		return nil, fmt.Errorf("score one bullet: %w", err)
	}
	if err := validateAgainstSchema(bulletScoreSchema, raw); err != nil {
		return nil, fmt.Errorf("score one bullet: %w", err)
	}

	var score BulletScore
	if err := json.Unmarshal([]byte(raw), &score); err != nil {
		return nil, fmt.Errorf("score one bullet: %w", err)
	}
	return &score, nil
}

// AnalyzeGaps compares a serialized profile against the job text.
func (g *GeminiAnalyzer) AnalyzeGaps(ctx context.Context, profileText, jobText string) (*GapAnalysis, error) {
	prompt := prompts.Format(prompts.MustGet("analysis.json", "gap_analysis"), map[string]string{
		"ProfileText": excerpt(profileText, gapProfileExcerpt),
		"JobText":     excerpt(jobText, gapJobExcerpt),
	})

	raw, err := g.client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, fmt.Errorf("analyze gaps: %w", err)
	}
	if err := validateAgainstSchema(gapAnalysisSchema, raw); err != nil {
		return nil, fmt.Errorf("analyze gaps: %w", err)
	}

	var gaps GapAnalysis
	if err := json.Unmarshal([]byte(raw), &gaps); err != nil {
		return nil, fmt.Errorf("analyze gaps: %w", err)
	}
	return &gaps, nil
}

// GenerateBridgingBullet writes one new bullet proving the given skill.
func (g *GeminiAnalyzer) GenerateBridgingBullet(ctx context.Context, skill, userContext, jobText string) (string, error) {
	prompt := prompts.Format(prompts.MustGet("tailoring.json", "bridging_bullet"), map[string]string{
		"Skill":       skill,
		"UserContext": userContext,
		"JobContext":  excerpt(jobText, bridgeJobExcerpt),
	})

	text, err := g.client.GenerateContent(ctx, prompt, llm.TierAdvanced)
	if err != nil {
		return "", fmt.Errorf("generate bridging bullet: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// GenerateCoverLetter writes a letter from the profile's summary and history.
func (g *GeminiAnalyzer) GenerateCoverLetter(ctx context.Context, profile *types.Profile, jobTitle, company, jobText string) (string, error) {
	prompt := prompts.Format(prompts.MustGet("tailoring.json", "cover_letter"), map[string]string{
		"Name":     profile.Name,
		"JobTitle": jobTitle,
		"Company":  company,
		"JobText":  excerpt(jobText, letterJobExcerpt),
		"Summary":  profile.Summary,
		"History":  experienceSummary(profile),
	})

	text, err := g.client.GenerateContent(ctx, prompt, llm.TierAdvanced)
	if err != nil {
		return "", fmt.Errorf("generate cover letter: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// ParseResumeFromText converts raw resume text into a partial profile.
// The result is sanitized; missing ids and defaults are filled in.
func (g *GeminiAnalyzer) ParseResumeFromText(ctx context.Context, rawText string) (*types.Profile, error) {
	prompt := prompts.Format(prompts.MustGet("parsing.json", "resume_parse"), map[string]string{
		"Input": excerpt(rawText, resumeTextExcerpt),
	})

	raw, err := g.client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, fmt.Errorf("parse resume: %w", err)
	}
	if err := validateAgainstSchema(parsedProfileSchema, raw); err != nil {
		return nil, fmt.Errorf("parse resume: %w", err)
	}

	var profile types.Profile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		return nil, fmt.Errorf("parse resume: %w", err)
	}
	parsing.SanitizeProfile(&profile)
	return &profile, nil
}

// ParseResumeFromPDF extracts text from a PDF document locally, then parses
// it like raw text.
func (g *GeminiAnalyzer) ParseResumeFromPDF(ctx context.Context, data []byte) (*types.Profile, error) {
	text, err := parsing.ExtractPDFText(data)
	if err != nil {
		return nil, fmt.Errorf("parse resume pdf: %w", err)
	}
	return g.ParseResumeFromText(ctx, text)
}

// extractScoreArray accepts either a top-level JSON array or an object
// wrapping one (models sometimes return { "items": [...] }), and returns the
// array as raw JSON.
func extractScoreArray(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "[") {
		return trimmed, nil
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal([]byte(trimmed), &wrapper); err != nil {
		return "", fmt.Errorf("neither array nor object: %w", err)
	}
	for _, v := range wrapper {
		inner := strings.TrimSpace(string(v))
		if strings.HasPrefix(inner, "[") {
			return inner, nil
		}
	}
	return "", fmt.Errorf("no array found in wrapped response")
}

// experienceSummary builds the compact history line used in letter prompts:
// at most three entries of "Role at Company (N achievements)".
func experienceSummary(profile *types.Profile) string {
	limit := len(profile.Experiences)
	if limit > 3 {
		limit = 3
	}
	parts := make([]string, 0, limit)
	for _, exp := range profile.Experiences[:limit] {
		parts = append(parts, fmt.Sprintf("%s at %s (%d achievements)", exp.Role, exp.Company, len(exp.Bullets)))
	}
	return strings.Join(parts, ", ")
}

// excerpt truncates s to at most n bytes without splitting a rune.
func excerpt(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := n
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
