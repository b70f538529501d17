package release

import (
	"context"
	"fmt"
	"time"

	"github.com/google/go-github/v66/github"
	"golang.org/x/oauth2"
)

// DefaultPublishTimeout bounds a release publish call.
const DefaultPublishTimeout = 30 * time.Second

// Publisher creates GitHub Releases for changelog runs.
type Publisher struct {
	owner  string
	repo   string
	client *github.Client
}

// NewPublisher creates a Publisher for owner/repo authenticated with token.
func NewPublisher(ctx context.Context, owner, repo, token string) *Publisher {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(ctx, ts)

	return &Publisher{
		owner:  owner,
		repo:   repo,
		client: github.NewClient(tc),
	}
}

// TagFor returns the release tag for a run: docs-<hash>, or a timestamped
// tag for local runs with no commit.
func TagFor(commitHash string, now time.Time) string {
	if commitHash == "" {
		return "docs-" + now.UTC().Format("20060102-1504")
	}
	return "docs-" + commitHash
}

// Publish creates a release with the given tag and body. The release name
// matches the tag.
func (p *Publisher) Publish(ctx context.Context, tag, body string) (string, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultPublishTimeout)
		defer cancel()
	}

	release := &github.RepositoryRelease{
		TagName: github.String(tag),
		Name:    github.String(tag),
		Body:    github.String(body),
	}

	created, _, err := p.client.Repositories.CreateRelease(ctx, p.owner, p.repo, release)
	if err != nil {
		return "", fmt.Errorf("creating release %s: %w", tag, err)
	}

	return created.GetHTMLURL(), nil
}
