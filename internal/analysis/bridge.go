// Package analysis is the boundary to the external commit-analysis
// process. The exchange is a single request/response: the request JSON
// goes to the child's stdin, the report JSON comes back on stdout. The
// analyzer's internals are not modeled here.
package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"os/exec"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"pulseboard/api/internal/domain"
)

var ownerRepoPattern = regexp.MustCompile(`^[\w.-]+$`)

type Request struct {
	Owner string `json:"owner"`
	Repo  string `json:"repo"`
	Days  int    `json:"days"`
}

type RepositoryInfo struct {
	Owner              string `json:"owner"`
	Name               string `json:"name"`
	AnalysisPeriodDays int    `json:"analysis_period_days"`
}

type Summary struct {
	TotalAdditions    int `json:"total_additions"`
	TotalDeletions    int `json:"total_deletions"`
	TotalFilesChanged int `json:"total_files_changed"`
}

type CommitAnalysis struct {
	Type         string  `json:"type"`
	QualityScore float64 `json:"quality_score"`
	Insights     string  `json:"insights"`
}

type Report struct {
	Repository      RepositoryInfo            `json:"repository"`
	CommitsAnalyzed int                       `json:"commits_analyzed"`
	Summary         Summary                   `json:"summary"`
	Analyses        map[string]CommitAnalysis `json:"analyses"`
}

// reportEnvelope catches the analyzer's error shape alongside the
// report fields; a non-empty Error means the run failed even when the
// process exited zero.
type reportEnvelope struct {
	Report
	Error string `json:"error"`
}

// Bridge runs the external analyzer as a subprocess.
type Bridge struct {
	command string
	args    []string
	timeout time.Duration
}

func New(command string, args []string, timeout time.Duration) *Bridge {
	return &Bridge{command: command, args: args, timeout: timeout}
}

// Analyze asks the external process for a commit-analysis report.
func (b *Bridge) Analyze(ctx context.Context, owner, repo string, days int) (*Report, error) {
	if owner == "" || repo == "" || !ownerRepoPattern.MatchString(owner) || !ownerRepoPattern.MatchString(repo) {
		return nil, domain.Validation("invalid repository name format")
	}
	if days <= 0 {
		return nil, domain.Validation("days must be a positive number")
	}

	input, err := json.Marshal(Request{Owner: owner, Repo: repo, Days: days})
	if err != nil {
		return nil, domain.Unknown(err.Error())
	}

	if b.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, b.command, b.args...)
	cmd.Stdin = bytes.NewReader(input)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		message := strings.TrimSpace(stderr.String())
		if message == "" {
			message = "Analysis failed"
		}
		log.Error("analysis: analyzer process failed", "owner", owner, "repo", repo, "err", err)
		return nil, domain.Unknown(message)
	}

	var envelope reportEnvelope
	if err := json.Unmarshal(stdout.Bytes(), &envelope); err != nil {
		log.Error("analysis: unparseable analyzer output", "owner", owner, "repo", repo, "err", err)
		return nil, domain.Parse("Failed to parse analysis results")
	}
	if envelope.Error != "" {
		return nil, domain.Unknown(envelope.Error)
	}
	return &envelope.Report, nil
}
