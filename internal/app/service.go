package app

import (
	"context"
	"encoding/json"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"pulseboard/api/internal/analysis"
	"pulseboard/api/internal/domain"
	"pulseboard/api/internal/ingest"
	"pulseboard/api/internal/repohost"
	"pulseboard/api/internal/tasks"
)

type repoFetcher interface {
	FetchStats(ctx context.Context, owner, repo string) (*repohost.RepoStats, error)
	FetchLogs(ctx context.Context, owner, repo string) ([]repohost.ActivityLogEntry, error)
	FetchSummary(ctx context.Context, owner, repo string) (*repohost.RepoSummary, error)
	ListUserRepos(ctx context.Context) ([]string, error)
	CreateIssue(ctx context.Context, owner, repo, title, body string) (*repohost.RepoIssue, error)
	UpdateIssue(ctx context.Context, owner, repo string, number int, title, body string) (*repohost.RepoIssue, error)
	CloseIssue(ctx context.Context, owner, repo string, number int) (*repohost.RepoIssue, error)
}

type analyzer interface {
	Analyze(ctx context.Context, owner, repo string, days int) (*analysis.Report, error)
}

// Service glues the pipeline components together for the HTTP layer.
// It holds no entity state between calls: every upload replaces the
// previous task set on the client side, and every repository load
// replaces the displayed stats and logs.
type Service struct {
	fetcher  repoFetcher
	analyzer analyzer
	synth    *tasks.Synthesizer
}

func New(fetcher repoFetcher, analyzer analyzer) *Service {
	return &Service{
		fetcher:  fetcher,
		analyzer: analyzer,
		synth:    tasks.New(),
	}
}

// SectionCounts reports how many records each upload section yielded
// after normalization, malformed entries excluded.
type SectionCounts struct {
	Messages   int `json:"messages"`
	Paragraphs int `json:"paragraphs"`
	Notes      int `json:"notes"`
}

type UploadResult struct {
	UploadID string        `json:"uploadId"`
	Sections SectionCounts `json:"sections"`
	Tasks    []tasks.Task  `json:"tasks"`
}

// ProcessUpload normalizes a raw upload body and synthesizes tasks
// from it. A body that is not JSON at all fails with a parse error;
// malformed individual records are skipped during normalization.
func (s *Service) ProcessUpload(body []byte) (*UploadResult, error) {
	var raw ingest.RawUpload
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, domain.Parse("upload body is not valid JSON")
	}

	normalized := ingest.Normalize(raw)
	generated := s.synth.Synthesize(normalized)

	result := &UploadResult{
		UploadID: uuid.NewString(),
		Sections: SectionCounts{
			Messages:   len(normalized.Messages),
			Paragraphs: len(normalized.Paragraphs),
			Notes:      len(normalized.Notes),
		},
		Tasks: generated,
	}
	log.Info("app: upload processed",
		"upload_id", result.UploadID,
		"messages", result.Sections.Messages,
		"paragraphs", result.Sections.Paragraphs,
		"notes", result.Sections.Notes,
		"tasks", len(generated),
	)
	return result, nil
}

func (s *Service) RepoStats(ctx context.Context, owner, repo string) (*repohost.RepoStats, error) {
	return s.fetcher.FetchStats(ctx, owner, repo)
}

func (s *Service) RepoLogs(ctx context.Context, owner, repo string) ([]repohost.ActivityLogEntry, error) {
	return s.fetcher.FetchLogs(ctx, owner, repo)
}

func (s *Service) RepoSummary(ctx context.Context, owner, repo string) (*repohost.RepoSummary, error) {
	return s.fetcher.FetchSummary(ctx, owner, repo)
}

func (s *Service) UserRepos(ctx context.Context) ([]string, error) {
	return s.fetcher.ListUserRepos(ctx)
}

func (s *Service) CreateIssue(ctx context.Context, owner, repo, title, body string) (*repohost.RepoIssue, error) {
	return s.fetcher.CreateIssue(ctx, owner, repo, title, body)
}

func (s *Service) UpdateIssue(ctx context.Context, owner, repo string, number int, title, body string) (*repohost.RepoIssue, error) {
	return s.fetcher.UpdateIssue(ctx, owner, repo, number, title, body)
}

func (s *Service) CloseIssue(ctx context.Context, owner, repo string, number int) (*repohost.RepoIssue, error) {
	return s.fetcher.CloseIssue(ctx, owner, repo, number)
}

func (s *Service) Analyze(ctx context.Context, owner, repo string, days int) (*analysis.Report, error) {
	return s.analyzer.Analyze(ctx, owner, repo, days)
}
