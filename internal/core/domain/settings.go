package domain

import "time"

// Settings holds the tool configuration after defaults, config file and environment are merged.
type Settings struct {
	TemplateRepository  string
	TemplateBranch      string
	TemplateName        string
	FrameworkRepository string
	RawRepositoryBase   string
	ReleaseEndpoint     string
	DefaultRef          string
	HTTPTimeout         time.Duration
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		TemplateRepository:  "odradev/odra-template",
		TemplateBranch:      "master",
		TemplateName:        "full",
		FrameworkRepository: "https://github.com/odradev/odra",
		RawRepositoryBase:   "https://raw.githubusercontent.com/odradev/odra",
		ReleaseEndpoint:     "https://api.github.com/repos/odradev/odra/releases/latest",
		DefaultRef:          "release/latest",
		HTTPTimeout:         30 * time.Second,
	}
}
