// Package settings loads the tool configuration.
//
// Viper stays inside this package; the rest of the code receives an explicit domain.Settings.
// Sources are resolved in this order: environment > config file > defaults.
package settings

import (
	"errors"
	"net/url"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"go.trai.ch/odra/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	// EnvPrefix prefixes every environment variable read by the loader.
	EnvPrefix = "CARGO_ODRA"

	configName = "config"
	configType = "toml"
	appDir     = "cargo-odra"
)

const (
	keyTemplateRepository  = "template_repository"
	keyTemplateBranch      = "template_branch"
	keyTemplateName        = "template_name"
	keyFrameworkRepository = "framework_repository"
	keyRawRepositoryBase   = "raw_repository_base"
	keyReleaseEndpoint     = "release_endpoint"
	keyDefaultRef          = "default_ref"
	keyHTTPTimeout         = "http_timeout"
)

// Loader reads settings from an optional config file and the environment.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a Loader searching configDirs for config.toml.
// Without directories the user config locations are searched.
func NewLoader(configDirs ...string) *Loader {
	if len(configDirs) == 0 {
		configDirs = DefaultConfigDirs()
	}

	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType(configType)
	for _, dir := range configDirs {
		v.AddConfigPath(dir)
	}

	defaults := domain.DefaultSettings()
	v.SetDefault(keyTemplateRepository, defaults.TemplateRepository)
	v.SetDefault(keyTemplateBranch, defaults.TemplateBranch)
	v.SetDefault(keyTemplateName, defaults.TemplateName)
	v.SetDefault(keyFrameworkRepository, defaults.FrameworkRepository)
	v.SetDefault(keyRawRepositoryBase, defaults.RawRepositoryBase)
	v.SetDefault(keyReleaseEndpoint, defaults.ReleaseEndpoint)
	v.SetDefault(keyDefaultRef, defaults.DefaultRef)
	v.SetDefault(keyHTTPTimeout, defaults.HTTPTimeout)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	return &Loader{v: v}
}

// DefaultConfigDirs returns $XDG_CONFIG_HOME/cargo-odra (when set) and $HOME/.cargo-odra.
func DefaultConfigDirs() []string {
	var dirs []string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		dirs = append(dirs, filepath.Join(xdg, appDir))
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, "."+appDir))
	}
	return dirs
}

// Load merges all sources and validates the result.
func (l *Loader) Load() (domain.Settings, error) {
	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return domain.Settings{}, errors.Join(
				domain.ErrConfigMalformed,
				zerr.With(zerr.Wrap(err, domain.ErrInvalidSettings.Error()), "path", l.v.ConfigFileUsed()),
			)
		}
	}

	s := domain.Settings{
		TemplateRepository:  l.v.GetString(keyTemplateRepository),
		TemplateBranch:      l.v.GetString(keyTemplateBranch),
		TemplateName:        l.v.GetString(keyTemplateName),
		FrameworkRepository: l.v.GetString(keyFrameworkRepository),
		RawRepositoryBase:   l.v.GetString(keyRawRepositoryBase),
		ReleaseEndpoint:     l.v.GetString(keyReleaseEndpoint),
		DefaultRef:          l.v.GetString(keyDefaultRef),
		HTTPTimeout:         l.v.GetDuration(keyHTTPTimeout),
	}

	if err := Validate(s); err != nil {
		return domain.Settings{}, err
	}
	return s, nil
}

// ConfigFileUsed returns the config file read by the last Load, or "" if none was found.
func (l *Loader) ConfigFileUsed() string {
	return l.v.ConfigFileUsed()
}

// Validate rejects empty or non-absolute URLs and non-positive timeouts.
func Validate(s domain.Settings) error {
	required := []struct {
		key   string
		value string
	}{
		{keyTemplateRepository, s.TemplateRepository},
		{keyTemplateBranch, s.TemplateBranch},
		{keyTemplateName, s.TemplateName},
		{keyDefaultRef, s.DefaultRef},
	}
	for _, r := range required {
		if r.value == "" {
			return invalid(r.key, r.value, "must not be empty")
		}
	}

	urls := []struct {
		key   string
		value string
	}{
		{keyFrameworkRepository, s.FrameworkRepository},
		{keyRawRepositoryBase, s.RawRepositoryBase},
		{keyReleaseEndpoint, s.ReleaseEndpoint},
	}
	for _, u := range urls {
		parsed, err := url.Parse(u.value)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return invalid(u.key, u.value, "must be an absolute URL")
		}
	}

	if s.HTTPTimeout <= 0 {
		return invalid(keyHTTPTimeout, s.HTTPTimeout.String(), "must be positive")
	}
	return nil
}

func invalid(key, value, reason string) error {
	return errors.Join(
		domain.ErrConfigMalformed,
		zerr.With(zerr.With(zerr.Wrap(domain.ErrInvalidSettings, key+" "+reason), "key", key), "value", value),
	)
}
