package analysis

import (
	"context"
	"errors"
	"testing"
	"time"

	"pulseboard/api/internal/domain"
)

// shBridge runs the given shell snippet as the analyzer process.
func shBridge(script string) *Bridge {
	return New("/bin/sh", []string{"-c", script}, 5*time.Second)
}

func TestAnalyzeParsesReport(t *testing.T) {
	bridge := shBridge(`cat > /dev/null; printf '%s' '{
		"repository": {"owner": "acme", "name": "widgets", "analysis_period_days": 7},
		"commits_analyzed": 2,
		"summary": {"total_additions": 10, "total_deletions": 4, "total_files_changed": 3},
		"analyses": {"abc1234": {"type": "feature", "quality_score": 8.5, "insights": "solid"}}
	}'`)

	report, err := bridge.Analyze(context.Background(), "acme", "widgets", 7)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if report.Repository.Owner != "acme" || report.Repository.AnalysisPeriodDays != 7 {
		t.Errorf("repository = %+v", report.Repository)
	}
	if report.CommitsAnalyzed != 2 {
		t.Errorf("commits_analyzed = %d", report.CommitsAnalyzed)
	}
	if report.Summary.TotalAdditions != 10 {
		t.Errorf("summary = %+v", report.Summary)
	}
	got, ok := report.Analyses["abc1234"]
	if !ok || got.QualityScore != 8.5 {
		t.Errorf("analyses = %+v", report.Analyses)
	}
}

func TestAnalyzeSurfacesAnalyzerError(t *testing.T) {
	bridge := shBridge(`cat > /dev/null; printf '%s' '{"error": "token missing"}'`)

	_, err := bridge.Analyze(context.Background(), "acme", "widgets", 7)

	var de *domain.Error
	if !errors.As(err, &de) || de.Kind != domain.KindUnknown {
		t.Fatalf("expected unknown domain error, got %v", err)
	}
	if de.Message != "token missing" {
		t.Errorf("message = %q", de.Message)
	}
}

func TestAnalyzeRejectsBadInput(t *testing.T) {
	bridge := shBridge(`cat > /dev/null; echo '{}'`)

	tests := []struct {
		name        string
		owner, repo string
		days        int
	}{
		{"bad owner", "bad/owner", "repo", 7},
		{"empty repo", "owner", "", 7},
		{"zero days", "owner", "repo", 0},
		{"negative days", "owner", "repo", -3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := bridge.Analyze(context.Background(), tt.owner, tt.repo, tt.days)
			var de *domain.Error
			if !errors.As(err, &de) || de.Kind != domain.KindValidation {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestAnalyzeProcessFailure(t *testing.T) {
	bridge := shBridge(`cat > /dev/null; echo "github unreachable" >&2; exit 1`)

	_, err := bridge.Analyze(context.Background(), "acme", "widgets", 7)

	var de *domain.Error
	if !errors.As(err, &de) || de.Kind != domain.KindUnknown {
		t.Fatalf("expected unknown domain error, got %v", err)
	}
	if de.Message != "github unreachable" {
		t.Errorf("message = %q", de.Message)
	}
}

func TestAnalyzeMalformedOutput(t *testing.T) {
	bridge := shBridge(`cat > /dev/null; echo "not json"`)

	_, err := bridge.Analyze(context.Background(), "acme", "widgets", 7)

	var de *domain.Error
	if !errors.As(err, &de) || de.Kind != domain.KindParse {
		t.Fatalf("expected parse domain error, got %v", err)
	}
}
