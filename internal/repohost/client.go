// Package repohost talks to the repository-hosting API and normalizes
// its issue, pull-request, and statistics records into the shapes the
// dashboard renders. All failures surface as domain errors; callers
// never see library-specific error shapes.
package repohost

import (
	"context"
	"net/url"
	"regexp"
	"strings"

	"github.com/google/go-github/v74/github"
	"golang.org/x/oauth2"

	"pulseboard/api/internal/domain"
)

// timestampFormat is the millisecond ISO-8601 form the dashboard expects.
const timestampFormat = "2006-01-02T15:04:05.000Z07:00"

var ownerRepoPattern = regexp.MustCompile(`^[\w.-]+$`)

type Client struct {
	gh *github.Client
}

// New builds a client for the hosting API. The token and base URL are
// explicit configuration; there is no ambient singleton. An empty
// baseURL targets the public API, anything else (tests, enterprise
// installs) overrides it.
func New(token, baseURL string) (*Client, error) {
	var gh *github.Client
	if strings.TrimSpace(token) != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: strings.TrimSpace(token)})
		gh = github.NewClient(oauth2.NewClient(context.Background(), ts))
	} else {
		gh = github.NewClient(nil)
	}
	if strings.TrimSpace(baseURL) != "" {
		parsed, err := url.Parse(strings.TrimSuffix(baseURL, "/") + "/")
		if err != nil {
			return nil, domain.Validation("invalid API base URL")
		}
		gh.BaseURL = parsed
	}

	return &Client{gh: gh}, nil
}

// validateOwnerRepo rejects malformed identifiers before any network
// call is made.
func validateOwnerRepo(owner, repo string) *domain.Error {
	if owner == "" || repo == "" {
		return domain.Validation(`invalid repository format, expected "owner/repo"`)
	}
	if !ownerRepoPattern.MatchString(owner) || !ownerRepoPattern.MatchString(repo) {
		return domain.Validation("invalid repository name format")
	}
	return nil
}
