package repohost

import (
	"testing"
	"time"

	"github.com/google/go-github/v74/github"
)

func ts(t time.Time) github.Timestamp {
	return github.Timestamp{Time: t}
}

func tsPtr(t time.Time) *github.Timestamp {
	stamp := ts(t)
	return &stamp
}

func TestMergeLogsOrdersDescending(t *testing.T) {
	t1 := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)

	issues := []*github.Issue{
		{
			Number:    github.Ptr(1),
			Title:     github.Ptr("older issue"),
			State:     github.Ptr("open"),
			CreatedAt: tsPtr(t1),
			User:      &github.User{Login: github.Ptr("alice")},
		},
	}
	pulls := []*github.PullRequest{
		{
			Number:    github.Ptr(2),
			Title:     github.Ptr("newer pull"),
			State:     github.Ptr("closed"),
			CreatedAt: tsPtr(t2),
			MergedAt:  tsPtr(t2.Add(time.Minute)),
			User:      &github.User{Login: github.Ptr("bob")},
		},
	}

	got := mergeLogs(issues, pulls)

	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[0].Type != EntryPull || got[0].SubjectNumber != 2 {
		t.Errorf("expected the newer pull first, got %+v", got[0])
	}
	if got[0].Action != "merged" {
		t.Errorf("action = %q, want merged", got[0].Action)
	}
	if got[1].Type != EntryIssue || got[1].Action != "opened" {
		t.Errorf("expected opened issue second, got %+v", got[1])
	}
}

func TestMergeLogsStableOnEqualTimestamps(t *testing.T) {
	at := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	issues := []*github.Issue{
		{Number: github.Ptr(1), Title: github.Ptr("first"), State: github.Ptr("open"), CreatedAt: tsPtr(at)},
		{Number: github.Ptr(2), Title: github.Ptr("second"), State: github.Ptr("closed"), CreatedAt: tsPtr(at)},
	}
	pulls := []*github.PullRequest{
		{Number: github.Ptr(3), Title: github.Ptr("third"), State: github.Ptr("open"), CreatedAt: tsPtr(at)},
	}

	got := mergeLogs(issues, pulls)

	wantNumbers := []int{1, 2, 3}
	for i, want := range wantNumbers {
		if got[i].SubjectNumber != want {
			t.Errorf("entry %d = #%d, want #%d (input order must be preserved)", i, got[i].SubjectNumber, want)
		}
	}
}

func TestMergeLogsExcludesCrossListedPulls(t *testing.T) {
	at := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	issues := []*github.Issue{
		{
			Number:           github.Ptr(7),
			Title:            github.Ptr("really a pull"),
			State:            github.Ptr("open"),
			CreatedAt:        tsPtr(at),
			PullRequestLinks: &github.PullRequestLinks{URL: github.Ptr("https://example.test/pulls/7")},
		},
	}
	pulls := []*github.PullRequest{
		{Number: github.Ptr(7), Title: github.Ptr("really a pull"), State: github.Ptr("open"), CreatedAt: tsPtr(at)},
	}

	got := mergeLogs(issues, pulls)

	if len(got) != 1 {
		t.Fatalf("expected a single entry for the cross-listed pull, got %d", len(got))
	}
	if got[0].Type != EntryPull {
		t.Errorf("surviving entry should come from the pull stream, got %q", got[0].Type)
	}
}

func TestMergeLogsDefaultsMissingActor(t *testing.T) {
	at := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	issues := []*github.Issue{
		{Number: github.Ptr(1), Title: github.Ptr("ghost"), State: github.Ptr("open"), CreatedAt: tsPtr(at)},
	}

	got := mergeLogs(issues, nil)

	if got[0].Actor != "unknown" {
		t.Errorf("actor = %q, want unknown", got[0].Actor)
	}
}

func TestMergeLogsPullActionFallsBackToState(t *testing.T) {
	at := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	pulls := []*github.PullRequest{
		{Number: github.Ptr(4), Title: github.Ptr("open pr"), State: github.Ptr("open"), CreatedAt: tsPtr(at)},
	}

	got := mergeLogs(nil, pulls)

	if got[0].Action != "open" {
		t.Errorf("action = %q, want raw state for unmerged pulls", got[0].Action)
	}
}
