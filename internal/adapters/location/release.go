package location

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"go.trai.ch/odra/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/mod/semver"
)

type releaseResponse struct {
	TagName string `json:"tag_name"`
}

// latestRelease asks the release endpoint for the newest published framework version.
func (r *Resolver) latestRelease(ctx context.Context) (string, error) {
	endpoint := r.settings.ReleaseEndpoint

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return "", networkFailure(err, endpoint)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", "cargo-odra")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", networkFailure(err, endpoint)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", errors.Join(
			domain.ErrNetworkFailure,
			zerr.With(zerr.With(zerr.Wrap(domain.ErrReleaseLookupFailed, ""), "status_code", resp.StatusCode), "url", endpoint),
		)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", networkFailure(err, endpoint)
	}

	var release releaseResponse
	if err := json.Unmarshal(body, &release); err != nil {
		return "", parseFailure(zerr.Wrap(err, domain.ErrReleaseParseFailed.Error()), endpoint)
	}

	version := strings.TrimPrefix(release.TagName, "v")
	if !strictVersion.MatchString(version) || !semver.IsValid("v"+version) {
		return "", parseFailure(zerr.With(zerr.Wrap(domain.ErrReleaseParseFailed, ""), "tag_name", release.TagName), endpoint)
	}
	return version, nil
}

func networkFailure(err error, url string) error {
	return errors.Join(domain.ErrNetworkFailure, zerr.With(zerr.Wrap(err, domain.ErrReleaseLookupFailed.Error()), "url", url))
}

func parseFailure(err error, url string) error {
	return errors.Join(domain.ErrParseFailure, zerr.With(err, "url", url))
}
