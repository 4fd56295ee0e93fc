package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/jonathan/resume-tailor/internal/config"
	"github.com/jonathan/resume-tailor/internal/llm"
	"github.com/jonathan/resume-tailor/internal/observability"
	"github.com/jonathan/resume-tailor/internal/provider"
	"github.com/jonathan/resume-tailor/internal/session"
	"github.com/jonathan/resume-tailor/internal/snapshot"
	"github.com/jonathan/resume-tailor/internal/storage"
	"github.com/jonathan/resume-tailor/internal/types"
)

// sessionState is the persisted in-progress session carried between CLI
// invocations: everything except the Master Profile and snapshots, which
// have their own keys.
type sessionState struct {
	Tailored    *types.Profile           `json:"tailored,omitempty"`
	Job         *types.JobDescription    `json:"job,omitempty"`
	CoverLetter string                   `json:"coverLetter,omitempty"`
	Gaps        *types.GapAnalysisResult `json:"gaps,omitempty"`
	Proposals   map[string]string        `json:"proposals,omitempty"`
}

// app wires the session layers for one CLI invocation. The analyzer is
// created lazily; commands that never call the provider work offline.
type app struct {
	cfg       config.Config
	log       *logrus.Logger
	kv        storage.KV
	store     *session.Store
	scorer    *session.RelevanceScorer
	proposals *session.ProposalManager
	gaps      *session.GapAnalyzer
	snapshots *snapshot.Store
	printer   *observability.Printer

	llmClient llm.Client
	analyzer  provider.Analyzer
}

// newApp loads config, opens the store, and rehydrates the persisted session.
func newApp(ctx context.Context) (*app, error) {
	cfg := config.Config{}
	if flagConfig != "" {
		loaded, err := config.LoadConfig(flagConfig)
		if err != nil {
			return nil, err
		}
		cfg = *loaded
	}
	cfg.FromEnvironment()
	cfg = mergeFlags(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log := logrus.New()
	log.SetOutput(os.Stderr)
	if cfg.Verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	kv, err := storage.OpenSQLite(cfg.StorePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	a := &app{
		cfg:       cfg,
		log:       log,
		kv:        kv,
		store:     session.NewStore(kv, log),
		snapshots: snapshot.NewStore(kv),
		printer:   observability.NewPrinter(os.Stdout),
	}
	a.scorer = session.NewRelevanceScorer(a.store, a.lazyAnalyzer(), log)
	a.proposals = session.NewProposalManager(a.store, a.lazyAnalyzer(), a.scorer, log)
	a.gaps = session.NewGapAnalyzer(a.store, a.lazyAnalyzer(), log)

	if err := a.store.LoadMaster(ctx); err != nil {
		return nil, fmt.Errorf("failed to load master profile: %w", err)
	}
	if err := a.restoreSession(ctx); err != nil {
		return nil, err
	}
	return a, nil
}

// mergeFlags layers precedence: flags beat the environment-overlaid file
// config, which beats built-in defaults. Bools are not merged; the flag wins.
func mergeFlags(fileCfg config.Config) config.Config {
	cfg := config.Config{
		APIKey:    flagAPIKey,
		StorePath: flagStore,
		Model:     flagModel,
	}
	cfg = cfg.MergeWithDefaults(fileCfg)
	cfg.Verbose = flagVerbose || fileCfg.Verbose
	if cfg.StorePath == "" {
		cfg.StorePath = config.DefaultStorePath()
	}
	return cfg
}

// lazyAnalyzer defers client creation until a provider call happens, so
// offline commands never need an API key.
func (a *app) lazyAnalyzer() provider.Analyzer {
	return &deferredAnalyzer{app: a}
}

// requireAnalyzer creates the Gemini client on first use.
func (a *app) requireAnalyzer(ctx context.Context) (provider.Analyzer, error) {
	if a.analyzer != nil {
		return a.analyzer, nil
	}
	if a.cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required (set GEMINI_API_KEY or use --api-key)")
	}
	llmCfg := llm.DefaultConfig()
	if a.cfg.Model != "" {
		llmCfg = llm.ConfigForTier(llm.ModelTier(a.cfg.Model))
	}
	client, err := llm.NewClient(ctx, llmCfg, a.cfg.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	a.llmClient = client
	a.analyzer = provider.NewGeminiAnalyzer(client)
	return a.analyzer, nil
}

// restoreSession rehydrates the tailored profile, job, cover letter, gap
// result, and pending proposals from the session_state key.
func (a *app) restoreSession(ctx context.Context) error {
	data, ok, err := a.kv.Get(ctx, storage.KeySessionState)
	if err != nil {
		return fmt.Errorf("failed to load session state: %w", err)
	}
	if !ok {
		return nil
	}
	var state sessionState
	if err := json.Unmarshal(data, &state); err != nil {
		return fmt.Errorf("failed to decode session state: %w", err)
	}

	if state.Job != nil {
		a.store.SetJobDetails(state.Job.Company, state.Job.Title, state.Job.Text)
		a.store.SetJobKeywords(state.Job.Keywords)
	}
	// Order matters: the tailored profile only survives restore when the job
	// is non-empty, matching the sync rule.
	if state.Tailored != nil {
		a.store.SetTailored(state.Tailored)
	}
	a.store.SetCoverLetter(state.CoverLetter)
	a.gaps.Restore(state.Gaps)
	a.proposals.Restore(state.Proposals)
	return nil
}

// saveSession persists the in-progress session and waits for any scheduled
// master profile write.
func (a *app) saveSession(ctx context.Context) error {
	state := sessionState{
		Tailored:    a.store.Tailored(),
		Job:         a.store.Job(),
		CoverLetter: a.store.CoverLetter(),
		Gaps:        a.gaps.Result(),
		Proposals:   a.proposals.Pending(),
	}
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode session state: %w", err)
	}
	if err := a.kv.Put(ctx, storage.KeySessionState, data); err != nil {
		return fmt.Errorf("failed to save session state: %w", err)
	}
	a.store.Flush()
	return nil
}

// Close releases the store and any LLM client.
func (a *app) Close() {
	a.store.Flush()
	if a.llmClient != nil {
		_ = a.llmClient.Close()
	}
	_ = a.kv.Close()
}

// deferredAnalyzer resolves the real analyzer on first call.
type deferredAnalyzer struct {
	app *app
}

func (d *deferredAnalyzer) resolve(ctx context.Context) (provider.Analyzer, error) {
	return d.app.requireAnalyzer(ctx)
}

func (d *deferredAnalyzer) OptimizeBullet(ctx context.Context, bullet, jobText string) (string, error) {
	a, err := d.resolve(ctx)
	if err != nil {
		return "", err
	}
	return a.OptimizeBullet(ctx, bullet, jobText)
}

func (d *deferredAnalyzer) AnalyzeJobDescription(ctx context.Context, jobText string) ([]string, error) {
	a, err := d.resolve(ctx)
	if err != nil {
		return nil, err
	}
	return a.AnalyzeJobDescription(ctx, jobText)
}

func (d *deferredAnalyzer) ScoreBullets(ctx context.Context, bullets []types.BulletRef, jobText string) ([]provider.BulletScore, error) {
	a, err := d.resolve(ctx)
	if err != nil {
		return nil, err
	}
	return a.ScoreBullets(ctx, bullets, jobText)
}

func (d *deferredAnalyzer) ScoreOneBullet(ctx context.Context, id, content, jobText string) (*provider.BulletScore, error) {
	a, err := d.resolve(ctx)
	if err != nil {
		return nil, err
	}
	return a.ScoreOneBullet(ctx, id, content, jobText)
}

func (d *deferredAnalyzer) AnalyzeGaps(ctx context.Context, profileText, jobText string) (*provider.GapAnalysis, error) {
	a, err := d.resolve(ctx)
	if err != nil {
		return nil, err
	}
	return a.AnalyzeGaps(ctx, profileText, jobText)
}

func (d *deferredAnalyzer) GenerateBridgingBullet(ctx context.Context, skill, userContext, jobText string) (string, error) {
	a, err := d.resolve(ctx)
	if err != nil {
		return "", err
	}
	return a.GenerateBridgingBullet(ctx, skill, userContext, jobText)
}

func (d *deferredAnalyzer) GenerateCoverLetter(ctx context.Context, profile *types.Profile, jobTitle, company, jobText string) (string, error) {
	a, err := d.resolve(ctx)
	if err != nil {
		return "", err
	}
	return a.GenerateCoverLetter(ctx, profile, jobTitle, company, jobText)
}

func (d *deferredAnalyzer) ParseResumeFromText(ctx context.Context, rawText string) (*types.Profile, error) {
	a, err := d.resolve(ctx)
	if err != nil {
		return nil, err
	}
	return a.ParseResumeFromText(ctx, rawText)
}

func (d *deferredAnalyzer) ParseResumeFromPDF(ctx context.Context, data []byte) (*types.Profile, error) {
	a, err := d.resolve(ctx)
	if err != nil {
		return nil, err
	}
	return a.ParseResumeFromPDF(ctx, data)
}
