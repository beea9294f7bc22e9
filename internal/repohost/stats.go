package repohost

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/google/go-github/v74/github"
	"golang.org/x/sync/errgroup"
)

const (
	maxRecentIssues    = 5
	maxRecentWorkflows = 5
	maxActivityWeeks   = 12
)

type CommitWeek struct {
	Week  string `json:"week"`
	Count int    `json:"count"`
}

type RepoIssue struct {
	Number    int    `json:"number"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	State     string `json:"state"`
	CreatedAt string `json:"createdAt"`
}

type WorkflowRun struct {
	Name       string `json:"name"`
	Status     string `json:"status"`
	Conclusion string `json:"conclusion"`
	StartedAt  string `json:"startedAt"`
}

// RepoStats is the aggregate view the dashboard header renders. The
// commit-activity and workflow sub-queries are best-effort: when one
// fails the corresponding slice is empty and its Degraded flag is set,
// so callers can tell "no data" from "fetch failed".
type RepoStats struct {
	Stars                  int           `json:"stars"`
	Forks                  int           `json:"forks"`
	OpenIssues             int           `json:"openIssues"`
	CommitActivity         []CommitWeek  `json:"commitActivity"`
	CommitActivityDegraded bool          `json:"commitActivityDegraded"`
	RecentIssues           []RepoIssue   `json:"recentIssues"`
	RecentWorkflows        []WorkflowRun `json:"recentWorkflows"`
	WorkflowsDegraded      bool          `json:"workflowsDegraded"`
}

// FetchStats issues the four stats sub-queries concurrently and joins
// on their completion. Repository metadata and recent issues failing
// fails the whole call; commit activity and workflow runs degrade to
// empty results instead.
func (c *Client) FetchStats(ctx context.Context, owner, repo string) (*RepoStats, error) {
	if err := validateOwnerRepo(owner, repo); err != nil {
		return nil, err
	}

	var (
		meta             *github.Repository
		activity         []*github.WeeklyCommitActivity
		activityDegraded bool
		issues           []*github.Issue
		runs             []*github.WorkflowRun
		runsDegraded     bool
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r, _, err := c.gh.Repositories.Get(gctx, owner, repo)
		if err != nil {
			return Translate(err)
		}
		meta = r
		return nil
	})
	g.Go(func() error {
		weeks, _, err := c.gh.Repositories.ListCommitActivity(gctx, owner, repo)
		if err != nil {
			// Includes the 202 the stats endpoint returns while the
			// numbers are still being computed upstream.
			log.Warn("repohost: commit activity unavailable", "owner", owner, "repo", repo, "err", err)
			activityDegraded = true
			return nil
		}
		activity = weeks
		return nil
	})
	g.Go(func() error {
		list, _, err := c.gh.Issues.ListByRepo(gctx, owner, repo, &github.IssueListByRepoOptions{
			State:       "all",
			ListOptions: github.ListOptions{PerPage: maxRecentIssues},
		})
		if err != nil {
			return Translate(err)
		}
		issues = list
		return nil
	})
	g.Go(func() error {
		result, _, err := c.gh.Actions.ListRepositoryWorkflowRuns(gctx, owner, repo, &github.ListWorkflowRunsOptions{
			ListOptions: github.ListOptions{PerPage: maxRecentWorkflows},
		})
		if err != nil {
			log.Warn("repohost: workflow runs unavailable", "owner", owner, "repo", repo, "err", err)
			runsDegraded = true
			return nil
		}
		runs = result.WorkflowRuns
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, Translate(err)
	}

	stats := &RepoStats{
		Stars:                  meta.GetStargazersCount(),
		Forks:                  meta.GetForksCount(),
		OpenIssues:             meta.GetOpenIssuesCount(),
		CommitActivity:         []CommitWeek{},
		CommitActivityDegraded: activityDegraded,
		RecentIssues:           []RepoIssue{},
		RecentWorkflows:        []WorkflowRun{},
		WorkflowsDegraded:      runsDegraded,
	}

	if len(activity) > maxActivityWeeks {
		activity = activity[len(activity)-maxActivityWeeks:]
	}
	for _, week := range activity {
		stats.CommitActivity = append(stats.CommitActivity, CommitWeek{
			Week:  week.GetWeek().UTC().Format(timestampFormat),
			Count: week.GetTotal(),
		})
	}

	if len(issues) > maxRecentIssues {
		issues = issues[:maxRecentIssues]
	}
	for _, issue := range issues {
		stats.RecentIssues = append(stats.RecentIssues, issueRecord(issue))
	}

	if len(runs) > maxRecentWorkflows {
		runs = runs[:maxRecentWorkflows]
	}
	for _, run := range runs {
		conclusion := run.GetConclusion()
		if conclusion == "" {
			conclusion = "pending"
		}
		stats.RecentWorkflows = append(stats.RecentWorkflows, WorkflowRun{
			Name:       run.GetName(),
			Status:     run.GetStatus(),
			Conclusion: conclusion,
			StartedAt:  run.GetRunStartedAt().UTC().Format(timestampFormat),
		})
	}

	return stats, nil
}

func issueRecord(issue *github.Issue) RepoIssue {
	return RepoIssue{
		Number:    issue.GetNumber(),
		Title:     issue.GetTitle(),
		Body:      issue.GetBody(),
		State:     issue.GetState(),
		CreatedAt: issue.GetCreatedAt().UTC().Format(timestampFormat),
	}
}
