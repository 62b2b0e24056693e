package config

import (
	"time"

	"github.com/kelexine/winwatch/pkg/domain/interfaces"
	"github.com/kelexine/winwatch/pkg/infra/uupdump"
	"github.com/urfave/cli/v3"
)

// Index holds upstream release index configuration
type Index struct {
	APIURL       string
	DownloadURL  string
	RetryBackoff time.Duration
}

// Flags returns CLI flags for release index configuration
func (c *Index) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "index-api-url",
			Usage:       "Release index API base URL",
			Value:       "https://api.uupdump.net",
			Destination: &c.APIURL,
			Sources:     cli.EnvVars("WINWATCH_INDEX_API_URL"),
		},
		&cli.StringFlag{
			Name:        "index-download-url",
			Usage:       "Release index download page base URL",
			Value:       "https://uupdump.net",
			Destination: &c.DownloadURL,
			Sources:     cli.EnvVars("WINWATCH_INDEX_DOWNLOAD_URL"),
		},
		&cli.DurationFlag{
			Name:        "index-retry-backoff",
			Usage:       "Fixed backoff before the single index retry",
			Value:       5 * time.Second,
			Destination: &c.RetryBackoff,
			Sources:     cli.EnvVars("WINWATCH_INDEX_RETRY_BACKOFF"),
		},
	}
}

// Fetcher builds the release fetcher from the configuration.
func (c *Index) Fetcher() interfaces.ReleaseFetcher {
	return uupdump.NewClient(c.APIURL, c.DownloadURL,
		uupdump.WithRetryBackoff(c.RetryBackoff),
	)
}
