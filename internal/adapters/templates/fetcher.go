// Package templates retrieves template bodies from the framework source.
package templates

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"go.trai.ch/odra/internal/core/domain"
	"go.trai.ch/odra/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.TemplateFetcher = (*Fetcher)(nil)

const (
	templatesDir  = "templates"
	githubPrefix  = "https://github.com/"
	rawGitHubBase = "https://raw.githubusercontent.com/"
	releasePrefix = "release/"
)

// Fetcher implements ports.TemplateFetcher. It performs no retries and no caching.
type Fetcher struct {
	settings   domain.Settings
	httpClient *http.Client
}

// NewFetcher creates a Fetcher using an HTTP client bounded by the configured timeout.
func NewFetcher(settings domain.Settings) *Fetcher {
	return newFetcherWithClient(settings, &http.Client{Timeout: settings.HTTPTimeout})
}

func newFetcherWithClient(settings domain.Settings, client *http.Client) *Fetcher {
	return &Fetcher{settings: settings, httpClient: client}
}

// Fetch returns the body of the named template as published by location.
func (f *Fetcher) Fetch(ctx context.Context, location domain.OdraLocation, name string) (string, error) {
	switch loc := location.(type) {
	case domain.LocalLocation:
		return f.readLocal(loc.Path, name)
	case domain.RemoteLocation:
		ref := loc.Branch
		if ref == "" {
			ref = f.settings.DefaultRef
		}
		return f.download(ctx, f.TemplateURL(loc.Repository, ref, name), name)
	case domain.CratesIOLocation:
		return f.download(ctx, f.TemplateURL(f.settings.FrameworkRepository, releasePrefix+loc.Version, name), name)
	default:
		return "", errors.Join(domain.ErrArgumentInvalid, zerr.With(zerr.Wrap(domain.ErrTemplateFetchFailed, label(name)), "template", name))
	}
}

// TemplateURL builds the raw download URL of a template in repository at ref.
// GitHub repository URLs map onto raw.githubusercontent.com; any other
// repository falls back to the configured raw base.
func (f *Fetcher) TemplateURL(repository, ref, name string) string {
	return rawBase(repository, f.settings.RawRepositoryBase) + "/" + ref + "/" + templatesDir + "/" + name
}

func rawBase(repository, fallback string) string {
	if strings.HasPrefix(repository, githubPrefix) {
		slug := strings.TrimSuffix(strings.TrimSuffix(strings.TrimPrefix(repository, githubPrefix), "/"), ".git")
		return rawGitHubBase + slug
	}
	return strings.TrimSuffix(fallback, "/")
}

func (f *Fetcher) readLocal(root, name string) (string, error) {
	path := filepath.Join(root, templatesDir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Join(
			domain.ErrNetworkFailure,
			zerr.With(zerr.With(zerr.Wrap(err, domain.ErrTemplateFetchFailed.Error()+" "+strconv.Quote(name)), "template", name), "path", path),
		)
	}
	return decode(data, name, "path", path)
}

func (f *Fetcher) download(ctx context.Context, url, name string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return "", fetchFailed(err, name, url)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fetchFailed(err, name, url)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", errors.Join(
			domain.ErrNetworkFailure,
			zerr.With(zerr.With(zerr.With(zerr.Wrap(domain.ErrTemplateFetchFailed, label(name)), "template", name), "url", url), "status_code", resp.StatusCode),
		)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fetchFailed(err, name, url)
	}
	return decode(body, name, "url", url)
}

func decode(data []byte, name, key, source string) (string, error) {
	if !utf8.Valid(data) {
		return "", errors.Join(
			domain.ErrParseFailure,
			zerr.With(zerr.With(zerr.Wrap(domain.ErrTemplateNotText, label(name)), "template", name), key, source),
		)
	}
	return string(data), nil
}

func label(name string) string {
	return "template " + strconv.Quote(name)
}

func fetchFailed(err error, name, url string) error {
	return errors.Join(
		domain.ErrNetworkFailure,
		zerr.With(zerr.With(zerr.Wrap(err, domain.ErrTemplateFetchFailed.Error()+" "+strconv.Quote(name)), "template", name), "url", url),
	)
}
