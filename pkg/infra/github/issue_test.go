package github_test

import (
	"context"
	"os"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/kelexine/winwatch/pkg/domain/model"
	githubinfra "github.com/kelexine/winwatch/pkg/infra/github"
)

func TestNewIssueNotifierValidation(t *testing.T) {
	_, err := githubinfra.NewIssueNotifier("", "owner", "repo")
	gt.Error(t, err)

	_, err = githubinfra.NewIssueNotifier("token", "", "repo")
	gt.Error(t, err)

	_, err = githubinfra.NewIssueNotifier("token", "owner", "")
	gt.Error(t, err)

	notifier, err := githubinfra.NewIssueNotifier("token", "owner", "repo")
	gt.NoError(t, err)
	gt.Value(t, notifier).NotNil()
}

func TestNotifyNewRelease_WithRealAPI(t *testing.T) {
	token := os.Getenv("TEST_GITHUB_TOKEN")
	owner := os.Getenv("TEST_GITHUB_OWNER")
	repo := os.Getenv("TEST_GITHUB_REPO")

	if token == "" || owner == "" || repo == "" {
		t.Skip("Test GitHub credentials not provided via environment variables")
	}

	notifier, err := githubinfra.NewIssueNotifier(token, owner, repo)
	gt.NoError(t, err)

	release := &model.ClassifiedRelease{
		Release: model.Release{
			BuildID:      "test-build-id",
			BuildNumber:  "26100.7462",
			Title:        "Windows 11, version 24H2 (integration test)",
			Architecture: model.ArchAMD64,
			Channel:      model.ChannelRetail,
			ISOURL:       "https://example.com/iso",
		},
		Version: model.Version24H2,
	}

	gt.NoError(t, notifier.NotifyNewRelease(context.Background(), release))
}
