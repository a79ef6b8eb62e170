// Package githubrepo retrieves repository metadata and file contents from
// the GitHub API, sampling large repositories down to an analyzable set.
package githubrepo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/go-github/v60/github"
	"golang.org/x/oauth2"

	"github.com/empatia-tech/empatia/internal/metrics"
)

// ErrRepoNotFound is returned when the repository does not exist or is not
// accessible with the current credentials.
var ErrRepoNotFound = errors.New("repository not found")

// ErrRateLimited is returned when GitHub rejects a call for quota reasons.
var ErrRateLimited = errors.New("github rate limit exceeded")

// notFoundStatus and forbiddenStatus are the GitHub error codes mapped to
// sentinels.
const (
	notFoundStatus  = http.StatusNotFound
	forbiddenStatus = http.StatusForbidden
)

// blobTypeFile marks regular file entries in a git tree.
const blobTypeFile = "blob"

// Client fetches repositories through the GitHub API behind a token bucket.
type Client struct {
	api     *github.Client
	limiter *RateLimiter
	logger  *slog.Logger
}

// NewClient builds a client. An empty token falls back to anonymous access
// with its much lower quota; a nil logger discards.
func NewClient(token string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	httpClient := http.DefaultClient
	if token != "" {
		source := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), source)
	}

	return &Client{
		api:     github.NewClient(httpClient),
		limiter: NewRateLimiter(defaultMaxRequests, defaultWindow),
		logger:  logger,
	}
}

// RepoInfo fetches the repository metadata consumed by the reports.
func (c *Client) RepoInfo(ctx context.Context, owner, repo string) (metrics.RepoInfo, error) {
	err := c.limiter.Wait(ctx)
	if err != nil {
		return metrics.RepoInfo{}, err
	}

	repository, _, err := c.api.Repositories.Get(ctx, owner, repo)
	if err != nil {
		return metrics.RepoInfo{}, c.wrapAPIError(owner, repo, err)
	}

	return metrics.RepoInfo{
		Name:            repository.GetFullName(),
		URL:             repository.GetHTMLURL(),
		Description:     repository.GetDescription(),
		PrimaryLanguage: repository.GetLanguage(),
		SizeKB:          repository.GetSize(),
		CreatedAt:       repository.GetCreatedAt().Format(time.RFC3339),
		PushedAt:        repository.GetPushedAt().Format(time.RFC3339),
	}, nil
}

// RepoTree is the recursive git tree of a repository's default branch. SHA
// identifies the tree and keys cached analyses; no blob content has been
// downloaded yet when a RepoTree is returned.
type RepoTree struct {
	SHA string

	entries []*github.TreeEntry
	fileCap int
}

// Tree fetches the default-branch tree without downloading any blob, so
// callers can probe a cache by SHA before spending quota on content.
func (c *Client) Tree(ctx context.Context, owner, repo string) (*RepoTree, error) {
	err := c.limiter.Wait(ctx)
	if err != nil {
		return nil, err
	}

	repository, _, err := c.api.Repositories.Get(ctx, owner, repo)
	if err != nil {
		return nil, c.wrapAPIError(owner, repo, err)
	}

	branch := repository.GetDefaultBranch()

	err = c.limiter.Wait(ctx)
	if err != nil {
		return nil, err
	}

	tree, _, err := c.api.Git.GetTree(ctx, owner, repo, branch, true)
	if err != nil {
		return nil, c.wrapAPIError(owner, repo, err)
	}

	return &RepoTree{
		SHA:     tree.GetSHA(),
		entries: tree.Entries,
		fileCap: FileCapForSize(repository.GetSize()),
	}, nil
}

// Download fetches a sampled map of path to content for the tree's entries.
func (c *Client) Download(ctx context.Context, owner, repo string, tree *RepoTree) (map[string]string, error) {
	files := make(map[string]string, tree.fileCap)

	for _, entry := range tree.entries {
		if len(files) >= tree.fileCap {
			c.logger.Info("file cap reached",
				slog.String("repo", repo),
				slog.Int("cap", tree.fileCap))

			break
		}

		if entry.GetType() != blobTypeFile || SkipPath(entry.GetPath(), int64(entry.GetSize())) {
			continue
		}

		content, err := c.blobContent(ctx, owner, repo, entry.GetSHA())
		if err != nil {
			c.logger.Warn("skipping file",
				slog.String("file", entry.GetPath()),
				slog.String("error", err.Error()))

			continue
		}

		if SkipContent(content) {
			continue
		}

		files[entry.GetPath()] = string(content)
	}

	return files, nil
}

// blobContent downloads one blob's raw bytes.
func (c *Client) blobContent(ctx context.Context, owner, repo, sha string) ([]byte, error) {
	err := c.limiter.Wait(ctx)
	if err != nil {
		return nil, err
	}

	content, _, err := c.api.Git.GetBlobRaw(ctx, owner, repo, sha)
	if err != nil {
		return nil, fmt.Errorf("downloading blob %s: %w", sha, err)
	}

	return content, nil
}

// wrapAPIError maps GitHub error responses onto the package sentinels.
func (c *Client) wrapAPIError(owner, repo string, err error) error {
	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		switch ghErr.Response.StatusCode {
		case notFoundStatus:
			return fmt.Errorf("%w: %s/%s", ErrRepoNotFound, owner, repo)
		case forbiddenStatus:
			return fmt.Errorf("%w: %s/%s", ErrRateLimited, owner, repo)
		}
	}

	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return fmt.Errorf("%w: retry after %s", ErrRateLimited, rateErr.Rate.Reset.Time)
	}

	return fmt.Errorf("github api: %s/%s: %w", owner, repo, err)
}
