package repohost

import (
	"errors"

	"github.com/google/go-github/v74/github"

	"pulseboard/api/internal/domain"
)

// Translate maps an upstream failure into the closed domain taxonomy.
// It never returns the original error: the status code decides the
// kind, and anything unrecognized becomes an unknown error carrying
// the original message for diagnostics.
func Translate(err error) *domain.Error {
	var already *domain.Error
	if errors.As(err, &already) {
		return already
	}

	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return domain.RateLimit("API rate limit exceeded. Please try again later.")
	}
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return domain.RateLimit("API rate limit exceeded. Please try again later.")
	}

	var respErr *github.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil {
		switch respErr.Response.StatusCode {
		case 404:
			return domain.NotFound("Repository not found. Please check the repository name.")
		case 401:
			return domain.Auth("Authentication failed. Please check your GitHub token.")
		case 403:
			return domain.RateLimit("API rate limit exceeded. Please try again later.")
		}
		if respErr.Message != "" {
			return domain.Unknown(respErr.Message)
		}
	}

	if err == nil || err.Error() == "" {
		return domain.Unknown("An error occurred while fetching repository data")
	}
	return domain.Unknown(err.Error())
}
