package github

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/go-github/v75/github"
	"github.com/kelexine/winwatch/pkg/domain/interfaces"
	"github.com/kelexine/winwatch/pkg/domain/model"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

var issueLabels = []string{"automated", "new-release", "build-pending"}

type issueNotifier struct {
	client *github.Client
	owner  string
	repo   string
}

// NewIssueNotifier creates a notifier that opens one tracking issue per
// newly detected release in the given repository.
func NewIssueNotifier(token, owner, repo string) (interfaces.ReleaseNotifier, error) {
	if token == "" {
		return nil, goerr.New("github token is empty")
	}
	if owner == "" || repo == "" {
		return nil, goerr.New("github repository is not specified",
			goerr.V("owner", owner),
			goerr.V("repo", repo),
		)
	}

	return &issueNotifier{
		client: github.NewClient(nil).WithAuthToken(token),
		owner:  owner,
		repo:   repo,
	}, nil
}

// NotifyNewRelease opens a tracking issue for the release.
func (n *issueNotifier) NotifyNewRelease(ctx context.Context, release *model.ClassifiedRelease) error {
	logger := ctxlog.From(ctx)

	title := fmt.Sprintf("New Windows %s Release - Build %s", release.Version, release.BuildNumber)
	body := issueBody(release)
	labels := issueLabels

	issue, _, err := n.client.Issues.Create(ctx, n.owner, n.repo, &github.IssueRequest{
		Title:  github.String(title),
		Body:   github.String(body),
		Labels: &labels,
	})
	if err != nil {
		return goerr.Wrap(err, "failed to create release issue",
			goerr.V("owner", n.owner),
			goerr.V("repo", n.repo),
			goerr.V("build_id", release.BuildID),
		)
	}

	logger.Info("Created release tracking issue",
		"issue", issue.GetNumber(),
		"build_id", release.BuildID,
	)

	return nil
}

// issueBody formats the release metadata and build checklist as markdown.
func issueBody(release *model.ClassifiedRelease) string {
	var sb strings.Builder

	sb.WriteString("## New Windows Release Detected\n\n")
	sb.WriteString("**Build Information:**\n")
	sb.WriteString(fmt.Sprintf("- **Title:** %s\n", release.Title))
	sb.WriteString(fmt.Sprintf("- **Build Number:** %s\n", release.BuildNumber))
	sb.WriteString(fmt.Sprintf("- **Version:** %s\n", release.Version))
	sb.WriteString(fmt.Sprintf("- **Architecture:** %s\n", release.Architecture))
	sb.WriteString(fmt.Sprintf("- **Channel:** %s\n", release.Channel))
	sb.WriteString("\n**ISO Source:**\n")
	sb.WriteString(fmt.Sprintf("- %s\n", release.ISOURL))
	sb.WriteString("\n**Automated Actions:**\n")
	sb.WriteString("- [ ] Trigger standard build\n")
	sb.WriteString("- [ ] Trigger core build\n")
	sb.WriteString("- [ ] Trigger nano build\n")
	sb.WriteString("- [ ] Test builds in VM\n")
	sb.WriteString("- [ ] Upload artifacts\n")
	sb.WriteString("\n---\n")
	sb.WriteString("This issue was created automatically by winwatch\n")

	return sb.String()
}
