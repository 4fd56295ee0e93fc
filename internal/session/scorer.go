package session

import (
	"context"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/jonathan/resume-tailor/internal/provider"
	"github.com/jonathan/resume-tailor/internal/types"
)

// RelevanceScorer maintains the per-bullet relevance score cache against the
// active job text. A score is a claim about specific text: the store clears
// it on every content change, and results for superseded content are dropped
// by the generation check. A changed bullet stays unscored until explicitly
// rescored; there is no partial re-score.
type RelevanceScorer struct {
	store    *Store
	analyzer provider.Analyzer
	log      *logrus.Logger
}

// NewRelevanceScorer creates a scorer over the session store.
func NewRelevanceScorer(store *Store, analyzer provider.Analyzer, log *logrus.Logger) *RelevanceScorer {
	if log == nil {
		log = logrus.New()
	}
	return &RelevanceScorer{store: store, analyzer: analyzer, log: log}
}

// ScoreAll batches every bullet across every experience into one provider
// request and merges results back by bullet id. Bullets the provider omits
// keep no score: they remain "needs ranking", not zero. On provider failure
// no score changes at all.
func (s *RelevanceScorer) ScoreAll(ctx context.Context) error {
	job := s.store.Job()
	if job.Text == "" {
		return ErrNoJobText
	}

	tailored := s.store.Tailored()
	refs := tailored.FlattenBullets()
	if len(refs) == 0 {
		return nil
	}

	// Capture generations before the request; any bullet edited while the
	// request is in flight must not receive the outdated score.
	gens := make(map[string]uint64, len(refs))
	for _, ref := range refs {
		gens[ref.ID] = s.store.Generation(ref.ID)
	}

	scores, err := s.analyzer.ScoreBullets(ctx, refs, job.Text)
	if err != nil {
		return err
	}

	applied := 0
	for _, score := range scores {
		gen, known := gens[score.ID]
		if !known {
			continue
		}
		if s.store.ApplyBulletScore(score.ID, gen, score.Score, score.Reason) {
			applied++
		}
	}
	s.log.WithFields(logrus.Fields{"requested": len(refs), "applied": applied}).Debug("bullet ranking merged")
	return nil
}

// ScoreOne rescores a single bullet, used after an accepted rewrite. The
// result is dropped if the bullet's content changed since the request.
func (s *RelevanceScorer) ScoreOne(ctx context.Context, bulletID string) error {
	job := s.store.Job()
	if job.Text == "" {
		return ErrNoJobText
	}

	content, gen, err := s.store.BulletSnapshot(bulletID)
	if err != nil {
		return err
	}

	score, err := s.analyzer.ScoreOneBullet(ctx, bulletID, content, job.Text)
	if err != nil {
		return err
	}
	if score == nil {
		return nil
	}

	s.store.ApplyBulletScore(bulletID, gen, score.Score, score.Reason)
	return nil
}

// SortBulletsByRelevance orders an experience's bullets by descending score
// for display. An unset score sorts as zero without being stored as zero;
// equal scores keep their insertion order.
func SortBulletsByRelevance(exp *types.Experience) {
	sort.SliceStable(exp.Bullets, func(i, j int) bool {
		return scoreForOrdering(&exp.Bullets[i]) > scoreForOrdering(&exp.Bullets[j])
	})
}

func scoreForOrdering(b *types.Bullet) int {
	if b.RelevanceScore == nil {
		return 0
	}
	return *b.RelevanceScore
}
