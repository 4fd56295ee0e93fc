package session

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/jonathan/resume-tailor/internal/provider"
	"github.com/jonathan/resume-tailor/internal/storage"
	"github.com/jonathan/resume-tailor/internal/types"
)

// fakeAnalyzer implements provider.Analyzer with per-method hooks. Unset
// hooks return zero values, matching the documented fallbacks.
type fakeAnalyzer struct {
	optimize     func(bullet, jobText string) (string, error)
	keywords     func(jobText string) ([]string, error)
	scoreBullets func(refs []types.BulletRef, jobText string) ([]provider.BulletScore, error)
	scoreOne     func(id, content, jobText string) (*provider.BulletScore, error)
	gaps         func(profileText, jobText string) (*provider.GapAnalysis, error)
	bridging     func(skill, userContext, jobText string) (string, error)
	coverLetter  func(profile *types.Profile, jobTitle, company, jobText string) (string, error)
}

func (f *fakeAnalyzer) OptimizeBullet(_ context.Context, bullet, jobText string) (string, error) {
	if f.optimize == nil {
		return bullet, nil
	}
	return f.optimize(bullet, jobText)
}

func (f *fakeAnalyzer) AnalyzeJobDescription(_ context.Context, jobText string) ([]string, error) {
	if f.keywords == nil {
		return nil, nil
	}
	return f.keywords(jobText)
}

func (f *fakeAnalyzer) ScoreBullets(_ context.Context, refs []types.BulletRef, jobText string) ([]provider.BulletScore, error) {
	if f.scoreBullets == nil {
		return nil, nil
	}
	return f.scoreBullets(refs, jobText)
}

func (f *fakeAnalyzer) ScoreOneBullet(_ context.Context, id, content, jobText string) (*provider.BulletScore, error) {
	if f.scoreOne == nil {
		return nil, nil
	}
	return f.scoreOne(id, content, jobText)
}

func (f *fakeAnalyzer) AnalyzeGaps(_ context.Context, profileText, jobText string) (*provider.GapAnalysis, error) {
	if f.gaps == nil {
		return &provider.GapAnalysis{}, nil
	}
	return f.gaps(profileText, jobText)
}

func (f *fakeAnalyzer) GenerateBridgingBullet(_ context.Context, skill, userContext, jobText string) (string, error) {
	if f.bridging == nil {
		return "", nil
	}
	return f.bridging(skill, userContext, jobText)
}

func (f *fakeAnalyzer) GenerateCoverLetter(_ context.Context, profile *types.Profile, jobTitle, company, jobText string) (string, error) {
	if f.coverLetter == nil {
		return "", nil
	}
	return f.coverLetter(profile, jobTitle, company, jobText)
}

func (f *fakeAnalyzer) ParseResumeFromText(_ context.Context, _ string) (*types.Profile, error) {
	return nil, nil
}

func (f *fakeAnalyzer) ParseResumeFromPDF(_ context.Context, _ []byte) (*types.Profile, error) {
	return nil, nil
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestStore() *Store {
	return NewStore(storage.NewMemoryKV(), testLogger())
}

// firstBulletID returns the id of the first bullet in the tailored profile.
func firstBulletID(s *Store) string {
	return s.Tailored().Experiences[0].Bullets[0].ID
}
