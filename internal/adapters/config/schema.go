package config

// CargoManifest is the subset of a Cargo.toml read by the tool.
type CargoManifest struct {
	Package      *PackageSection   `toml:"package"`
	Workspace    *WorkspaceSection `toml:"workspace"`
	Dependencies map[string]any    `toml:"dependencies"`
}

// PackageSection is the [package] table.
type PackageSection struct {
	Name string `toml:"name"`
}

// WorkspaceSection is the [workspace] table.
type WorkspaceSection struct {
	Members      []string       `toml:"members"`
	Exclude      []string       `toml:"exclude"`
	Dependencies map[string]any `toml:"dependencies"`
}

// Registry is the structure of Odra.toml.
type Registry struct {
	Contracts []ContractDTO `toml:"contracts"`
}

// ContractDTO is one [[contracts]] entry. Name is a legacy key that is read and ignored.
type ContractDTO struct {
	FQN  string `toml:"fqn"`
	Name string `toml:"name,omitempty"`
}
