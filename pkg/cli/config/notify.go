package config

import (
	"github.com/kelexine/winwatch/pkg/domain/interfaces"
	githubinfra "github.com/kelexine/winwatch/pkg/infra/github"
	slackinfra "github.com/kelexine/winwatch/pkg/infra/slack"
	"github.com/urfave/cli/v3"
)

// Notify holds release notification configuration. Both channels are
// optional; an unset token disables the channel.
type Notify struct {
	GitHubToken string `masq:"secret"`
	GitHubOwner string
	GitHubRepo  string

	SlackToken   string `masq:"secret"`
	SlackChannel string
}

// Flags returns CLI flags for notification configuration
func (c *Notify) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-token",
			Usage:       "GitHub token for release tracking issues",
			Destination: &c.GitHubToken,
			Sources:     cli.EnvVars("WINWATCH_GITHUB_TOKEN", "GITHUB_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "github-owner",
			Usage:       "Owner of the repository receiving release issues",
			Destination: &c.GitHubOwner,
			Sources:     cli.EnvVars("WINWATCH_GITHUB_OWNER"),
		},
		&cli.StringFlag{
			Name:        "github-repo",
			Usage:       "Repository receiving release issues",
			Destination: &c.GitHubRepo,
			Sources:     cli.EnvVars("WINWATCH_GITHUB_REPO"),
		},
		&cli.StringFlag{
			Name:        "slack-token",
			Usage:       "Slack bot token for release notifications",
			Destination: &c.SlackToken,
			Sources:     cli.EnvVars("WINWATCH_SLACK_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "slack-channel",
			Usage:       "Slack channel for release notifications",
			Destination: &c.SlackChannel,
			Sources:     cli.EnvVars("WINWATCH_SLACK_CHANNEL"),
		},
	}
}

// Notifiers builds the configured release notifiers.
func (c *Notify) Notifiers() ([]interfaces.ReleaseNotifier, error) {
	var notifiers []interfaces.ReleaseNotifier

	if c.GitHubToken != "" {
		n, err := githubinfra.NewIssueNotifier(c.GitHubToken, c.GitHubOwner, c.GitHubRepo)
		if err != nil {
			return nil, err
		}
		notifiers = append(notifiers, n)
	}

	if c.SlackToken != "" {
		n, err := slackinfra.NewNotifier(c.SlackToken, c.SlackChannel)
		if err != nil {
			return nil, err
		}
		notifiers = append(notifiers, n)
	}

	return notifiers, nil
}
