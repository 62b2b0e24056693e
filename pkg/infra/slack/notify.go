package slack

import (
	"context"
	"fmt"

	"github.com/kelexine/winwatch/pkg/domain/interfaces"
	"github.com/kelexine/winwatch/pkg/domain/model"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"
)

type notifier struct {
	client  *slack.Client
	channel string
}

// NewNotifier creates a notifier that posts one Slack message per newly
// detected release.
func NewNotifier(token, channel string) (interfaces.ReleaseNotifier, error) {
	if token == "" {
		return nil, goerr.New("slack token is empty")
	}
	if channel == "" {
		return nil, goerr.New("slack channel is empty")
	}

	return &notifier{
		client:  slack.New(token),
		channel: channel,
	}, nil
}

// NotifyNewRelease posts the release summary to the configured channel.
func (n *notifier) NotifyNewRelease(ctx context.Context, release *model.ClassifiedRelease) error {
	logger := ctxlog.From(ctx)

	text := fmt.Sprintf("New Windows release detected: *%s* (build %s, %s channel)\n%s",
		release.Version, release.BuildNumber, release.Channel, release.Title)

	_, ts, err := n.client.PostMessageContext(ctx, n.channel,
		slack.MsgOptionText(text, false),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to post slack message",
			goerr.V("channel", n.channel),
			goerr.V("build_id", release.BuildID),
		)
	}

	logger.Debug("Posted release notification to Slack",
		"channel", n.channel,
		"ts", ts,
	)

	return nil
}
