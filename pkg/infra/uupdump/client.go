package uupdump

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kelexine/winwatch/pkg/domain/interfaces"
	"github.com/kelexine/winwatch/pkg/domain/model"
	"github.com/kelexine/winwatch/pkg/domain/types"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

const (
	// candidateLimit bounds how many of the newest index records are
	// considered per run. The index returns thousands of historical
	// builds; anything older than the newest 30 was seen long ago.
	candidateLimit = 30

	searchQuery = "Windows 11"
)

type client struct {
	apiURL       string
	downloadURL  string
	httpClient   *http.Client
	retryBackoff time.Duration
}

// Option is a functional option for Client configuration
type Option func(*client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *client) {
		c.httpClient = hc
	}
}

// WithRetryBackoff sets the fixed delay before the single retry.
func WithRetryBackoff(d time.Duration) Option {
	return func(c *client) {
		c.retryBackoff = d
	}
}

// NewClient creates a UUP dump index client. apiURL is the API base
// (e.g. https://api.uupdump.net), downloadURL the download-page base
// (e.g. https://uupdump.net).
func NewClient(apiURL, downloadURL string, opts ...Option) interfaces.ReleaseFetcher {
	c := &client{
		apiURL:       strings.TrimRight(apiURL, "/"),
		downloadURL:  strings.TrimRight(downloadURL, "/"),
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		retryBackoff: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// listIDResponse mirrors the listid.php payload shape.
type listIDResponse struct {
	Response struct {
		Builds []indexBuild `json:"builds"`
	} `json:"response"`
}

type indexBuild struct {
	UUID  string `json:"uuid"`
	Title string `json:"title"`
	Build string `json:"build"`
	Arch  string `json:"arch"`
}

// FetchCandidates queries the index for the newest Windows 11 builds and
// normalizes them into releases. Zero candidates is a valid outcome; only
// transport failures and malformed payloads are errors.
func (c *client) FetchCandidates(ctx context.Context) ([]model.Release, error) {
	logger := ctxlog.From(ctx)

	body, err := c.fetchListID(ctx)
	if err != nil {
		return nil, err
	}

	var payload listIDResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, goerr.Wrap(err, "malformed response from release index",
			goerr.T(types.ErrTagFetch),
		)
	}

	builds := payload.Response.Builds
	if len(builds) > candidateLimit {
		builds = builds[:candidateLimit]
	}

	var releases []model.Release
	for _, build := range builds {
		if build.Arch != model.ArchAMD64 || !strings.Contains(build.Title, "Windows 11") {
			continue
		}
		if build.UUID == "" {
			logger.Warn("Skipping index record without UUID", "title", build.Title)
			continue
		}

		channel := model.ChannelRetail
		if strings.Contains(build.Title, "Insider") {
			channel = model.ChannelInsider
		}

		releases = append(releases, model.Release{
			BuildID:      build.UUID,
			BuildNumber:  build.Build,
			Title:        build.Title,
			Architecture: build.Arch,
			Channel:      channel,
			ISOURL:       c.isoURL(build.UUID),
		})
	}

	logger.Debug("Normalized index records",
		"records", len(builds),
		"candidates", len(releases),
	)

	return releases, nil
}

// fetchListID performs the index query with one fixed-backoff retry on
// transient failures only: transport errors and 5xx responses. 4xx is the
// server rejecting the request and will not improve on retry.
func (c *client) fetchListID(ctx context.Context) ([]byte, error) {
	logger := ctxlog.From(ctx)

	body, transient, err := c.doListID(ctx)
	if err == nil {
		return body, nil
	}
	if !transient {
		return nil, err
	}

	logger.Warn("Release index query failed, retrying once",
		"error", err,
		"backoff", c.retryBackoff,
	)

	select {
	case <-time.After(c.retryBackoff):
	case <-ctx.Done():
		return nil, goerr.Wrap(ctx.Err(), "release index query cancelled", goerr.T(types.ErrTagFetch))
	}

	body, _, retryErr := c.doListID(ctx)
	if retryErr != nil {
		return nil, goerr.Wrap(retryErr, "release index unreachable after retry", goerr.T(types.ErrTagFetch))
	}
	return body, nil
}

// doListID reports whether a failure was transient alongside the error.
func (c *client) doListID(ctx context.Context) (body []byte, transient bool, err error) {
	query := url.Values{
		"search":     []string{searchQuery},
		"sortByDate": []string{"1"},
	}
	endpoint := fmt.Sprintf("%s/listid.php?%s", c.apiURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, false, goerr.Wrap(err, "failed to build index request", goerr.T(types.ErrTagFetch))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, goerr.Wrap(err, "failed to query release index", goerr.T(types.ErrTagFetch))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, resp.StatusCode >= http.StatusInternalServerError,
			goerr.New("unexpected status from release index",
				goerr.T(types.ErrTagFetch),
				goerr.V("status", resp.StatusCode),
			)
	}

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, goerr.Wrap(err, "failed to read index response", goerr.T(types.ErrTagFetch))
	}
	return body, false, nil
}

// isoURL derives the download-page link for a build UUID.
func (c *client) isoURL(buildID string) string {
	return fmt.Sprintf("%s/download.php?id=%s&pack=en-us&edition=professional", c.downloadURL, buildID)
}
