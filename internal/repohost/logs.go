package repohost

import (
	"context"
	"sort"
	"time"

	"github.com/google/go-github/v74/github"
	"golang.org/x/sync/errgroup"
)

const logPageSize = 100

type EntryType string

const (
	EntryIssue EntryType = "issue"
	EntryPull  EntryType = "pull"
)

// ActivityLogEntry is one normalized, timestamped event derived from
// either an issue or a pull request.
type ActivityLogEntry struct {
	Type          EntryType `json:"type"`
	Actor         string    `json:"actor"`
	Action        string    `json:"action"`
	SubjectNumber int       `json:"subjectNumber"`
	Title         string    `json:"title"`
	Timestamp     string    `json:"timestamp"`

	at time.Time
}

// FetchLogs fetches issues and pull requests concurrently (one page of
// up to 100 each, newest first) and merges them into one descending
// activity log. Either sub-query failing fails the whole call.
func (c *Client) FetchLogs(ctx context.Context, owner, repo string) ([]ActivityLogEntry, error) {
	if err := validateOwnerRepo(owner, repo); err != nil {
		return nil, err
	}

	var (
		issues []*github.Issue
		pulls  []*github.PullRequest
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		list, _, err := c.gh.Issues.ListByRepo(gctx, owner, repo, &github.IssueListByRepoOptions{
			State:       "all",
			Sort:        "created",
			Direction:   "desc",
			ListOptions: github.ListOptions{PerPage: logPageSize},
		})
		if err != nil {
			return Translate(err)
		}
		issues = list
		return nil
	})
	g.Go(func() error {
		list, _, err := c.gh.PullRequests.List(gctx, owner, repo, &github.PullRequestListOptions{
			State:       "all",
			Sort:        "created",
			Direction:   "desc",
			ListOptions: github.ListOptions{PerPage: logPageSize},
		})
		if err != nil {
			return Translate(err)
		}
		pulls = list
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, Translate(err)
	}

	return mergeLogs(issues, pulls), nil
}

// mergeLogs normalizes both record kinds into activity entries and
// orders them by timestamp descending. Issues carrying a pull-request
// back-reference are the hosting API cross-listing the same pull in
// both streams and are excluded from the issue side. The sort is
// stable: entries with equal timestamps keep their relative input
// order.
func mergeLogs(issues []*github.Issue, pulls []*github.PullRequest) []ActivityLogEntry {
	entries := []ActivityLogEntry{}

	for _, issue := range issues {
		if issue.IsPullRequest() {
			continue
		}
		action := "closed"
		if issue.GetState() == "open" {
			action = "opened"
		}
		createdAt := issue.GetCreatedAt()
		entries = append(entries, ActivityLogEntry{
			Type:          EntryIssue,
			Actor:         actorName(issue.GetUser()),
			Action:        action,
			SubjectNumber: issue.GetNumber(),
			Title:         issue.GetTitle(),
			Timestamp:     createdAt.UTC().Format(timestampFormat),
			at:            createdAt.Time,
		})
	}

	for _, pull := range pulls {
		action := pull.GetState()
		if pull.MergedAt != nil {
			action = "merged"
		}
		createdAt := pull.GetCreatedAt()
		entries = append(entries, ActivityLogEntry{
			Type:          EntryPull,
			Actor:         actorName(pull.GetUser()),
			Action:        action,
			SubjectNumber: pull.GetNumber(),
			Title:         pull.GetTitle(),
			Timestamp:     createdAt.UTC().Format(timestampFormat),
			at:            createdAt.Time,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].at.After(entries[j].at)
	})
	return entries
}

func actorName(user *github.User) string {
	if login := user.GetLogin(); login != "" {
		return login
	}
	return "unknown"
}
