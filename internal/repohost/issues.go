package repohost

import (
	"context"

	"github.com/google/go-github/v74/github"

	"pulseboard/api/internal/domain"
)

// CreateIssue opens a new issue on the repository.
func (c *Client) CreateIssue(ctx context.Context, owner, repo, title, body string) (*RepoIssue, error) {
	if err := validateOwnerRepo(owner, repo); err != nil {
		return nil, err
	}
	if title == "" {
		return nil, domain.Validation("issue title is required")
	}
	issue, _, err := c.gh.Issues.Create(ctx, owner, repo, &github.IssueRequest{
		Title: github.Ptr(title),
		Body:  github.Ptr(body),
	})
	if err != nil {
		return nil, Translate(err)
	}
	record := issueRecord(issue)
	return &record, nil
}

// UpdateIssue replaces an issue's title and body.
func (c *Client) UpdateIssue(ctx context.Context, owner, repo string, number int, title, body string) (*RepoIssue, error) {
	if err := validateOwnerRepo(owner, repo); err != nil {
		return nil, err
	}
	issue, _, err := c.gh.Issues.Edit(ctx, owner, repo, number, &github.IssueRequest{
		Title: github.Ptr(title),
		Body:  github.Ptr(body),
	})
	if err != nil {
		return nil, Translate(err)
	}
	record := issueRecord(issue)
	return &record, nil
}

// CloseIssue marks an issue closed.
func (c *Client) CloseIssue(ctx context.Context, owner, repo string, number int) (*RepoIssue, error) {
	if err := validateOwnerRepo(owner, repo); err != nil {
		return nil, err
	}
	issue, _, err := c.gh.Issues.Edit(ctx, owner, repo, number, &github.IssueRequest{
		State: github.Ptr("closed"),
	})
	if err != nil {
		return nil, Translate(err)
	}
	record := issueRecord(issue)
	return &record, nil
}

// ListUserRepos returns the full names of repositories visible to the
// configured token, for the repository picker.
func (c *Client) ListUserRepos(ctx context.Context) ([]string, error) {
	repos, _, err := c.gh.Repositories.ListByAuthenticatedUser(ctx, nil)
	if err != nil {
		return nil, Translate(err)
	}
	names := []string{}
	for _, repo := range repos {
		names = append(names, repo.GetFullName())
	}
	return names, nil
}
