package services

import (
	"context"

	"github.com/AmazyanAyoub/ai-deal-flow-scanner/internal/models"
	"github.com/AmazyanAyoub/ai-deal-flow-scanner/pkg/logger"
	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
)

// CandidateSource is the discovery feed: a paged stream of repository
// candidates with lazy accessors for their long-form content.
type CandidateSource interface {
	Fetch(ctx context.Context, limit int) ([]*models.Candidate, error)
}

// GitHubDiscoveryService discovers candidates through the GitHub search API
type GitHubDiscoveryService struct {
	client *github.Client
	query  string
}

func NewGitHubDiscoveryService(token, query string) *GitHubDiscoveryService {
	return &GitHubDiscoveryService{
		client: createGitHubClient(token),
		query:  query,
	}
}

// createGitHubClient creates a GitHub client with the provided token
func createGitHubClient(token string) *github.Client {
	if token == "" {
		return github.NewClient(nil)
	}

	ctx := context.Background()
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)
	return github.NewClient(tc)
}

// Fetch searches for repositories matching the configured query, most
// recently updated first, following pagination until limit candidates have
// been collected or the results run out.
func (s *GitHubDiscoveryService) Fetch(ctx context.Context, limit int) ([]*models.Candidate, error) {
	opt := &github.SearchOptions{
		Sort:        "updated",
		Order:       "desc",
		ListOptions: github.ListOptions{PerPage: 100},
	}

	var candidates []*models.Candidate
	for {
		result, resp, err := s.client.Search.Repositories(ctx, s.query, opt)
		if err != nil {
			return nil, err
		}

		for _, repo := range result.Repositories {
			candidates = append(candidates, s.toCandidate(ctx, repo))
			if len(candidates) >= limit {
				return candidates, nil
			}
		}

		if resp.NextPage == 0 {
			break
		}
		opt.Page = resp.NextPage
	}

	return candidates, nil
}

func (s *GitHubDiscoveryService) toCandidate(ctx context.Context, repo *github.Repository) *models.Candidate {
	candidate := models.NewCandidate(
		repo.GetHTMLURL(),
		repo.GetName(),
		repo.Description,
		repo.GetCreatedAt().Time,
		repo.GetPushedAt().Time,
		repo.GetStargazersCount(),
		repo.GetForksCount(),
	)

	owner := repo.GetOwner().GetLogin()
	name := repo.GetName()

	// Content accessors may fail (e.g. no README); they degrade to empty
	// values rather than propagating.
	candidate.SetLoaders(
		func() string { return s.fetchReadme(ctx, owner, name) },
		func() []string { return s.fetchFileListing(ctx, owner, name) },
	)

	return candidate
}

func (s *GitHubDiscoveryService) fetchReadme(ctx context.Context, owner, name string) string {
	readme, _, err := s.client.Repositories.GetReadme(ctx, owner, name, nil)
	if err != nil {
		logger.WithError(err).Debugf("No readme for %s/%s", owner, name)
		return ""
	}

	content, err := readme.GetContent()
	if err != nil {
		logger.WithError(err).Warnf("Failed to decode readme for %s/%s", owner, name)
		return ""
	}
	return content
}

func (s *GitHubDiscoveryService) fetchFileListing(ctx context.Context, owner, name string) []string {
	_, contents, _, err := s.client.Repositories.GetContents(ctx, owner, name, "", nil)
	if err != nil {
		logger.WithError(err).Debugf("No root listing for %s/%s", owner, name)
		return nil
	}

	var paths []string
	for _, entry := range contents {
		paths = append(paths, entry.GetPath())
	}
	return paths
}
