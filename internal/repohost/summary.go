package repohost

import (
	"context"
	"math"

	"github.com/google/go-github/v74/github"
	"golang.org/x/sync/errgroup"
)

type SummaryStats struct {
	ActiveIssues int `json:"activeIssues"`
	ClosedIssues int `json:"closedIssues"`
	OpenPRs      int `json:"openPRs"`
	MergedPRs    int `json:"mergedPRs"`
}

// ProjectStatus expresses the same counts as percentages for the
// status chart.
type ProjectStatus struct {
	InProgress int `json:"inProgress"`
	Completed  int `json:"completed"`
	OnHold     int `json:"onHold"`
	Delayed    int `json:"delayed"`
}

type RepoSummary struct {
	Stats         SummaryStats  `json:"stats"`
	ProjectStatus ProjectStatus `json:"projectStatus"`
}

// FetchSummary derives issue and pull-request counts for the stats
// cards. Issues cross-listed as pull requests are not counted as
// issues.
func (c *Client) FetchSummary(ctx context.Context, owner, repo string) (*RepoSummary, error) {
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

	summary := &RepoSummary{}
	for _, issue := range issues {
		if issue.IsPullRequest() {
			continue
		}
		if issue.GetState() == "open" {
			summary.Stats.ActiveIssues++
		} else {
			summary.Stats.ClosedIssues++
		}
	}
	for _, pull := range pulls {
		if pull.GetState() == "open" {
			summary.Stats.OpenPRs++
		}
		if pull.MergedAt != nil {
			summary.Stats.MergedPRs++
		}
	}

	totalIssues := summary.Stats.ActiveIssues + summary.Stats.ClosedIssues
	if totalIssues == 0 {
		totalIssues = 1
	}
	totalPRs := summary.Stats.OpenPRs + summary.Stats.MergedPRs
	if totalPRs == 0 {
		totalPRs = 1
	}
	summary.ProjectStatus = ProjectStatus{
		InProgress: percent(summary.Stats.ActiveIssues, totalIssues),
		Completed:  percent(summary.Stats.ClosedIssues, totalIssues),
		OnHold:     percent(summary.Stats.OpenPRs, totalPRs),
		Delayed:    percent(summary.Stats.MergedPRs, totalPRs),
	}
	return summary, nil
}

func percent(part, total int) int {
	return int(math.Round(float64(part) / float64(total) * 100))
}
