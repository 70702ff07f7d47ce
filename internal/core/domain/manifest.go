package domain

// BuildManifest is the cargo manifest synthesized for a backend builder.
type BuildManifest struct {
	Package      Package               `toml:"package"`
	Dependencies map[string]Dependency `toml:"dependencies"`
	Bins         []BinTarget           `toml:"bin"`
}

// Package is the [package] table of a cargo manifest.
type Package struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
	Edition string `toml:"edition"`
}

// Dependency is a detailed cargo dependency entry.
type Dependency struct {
	Version         string   `toml:"version,omitempty"`
	Path            string   `toml:"path,omitempty"`
	Git             string   `toml:"git,omitempty"`
	Branch          string   `toml:"branch,omitempty"`
	Features        []string `toml:"features,omitempty"`
	DefaultFeatures *bool    `toml:"default-features,omitempty"`
}

// BinTarget is a [[bin]] entry of a cargo manifest.
type BinTarget struct {
	Name    string `toml:"name"`
	Path    string `toml:"path"`
	Edition string `toml:"edition"`
	Test    bool   `toml:"test"`
	Doctest bool   `toml:"doctest"`
	Bench   bool   `toml:"bench"`
	Doc     bool   `toml:"doc"`
}
