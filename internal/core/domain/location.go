package domain

import "path/filepath"

// OdraLocation describes where the odra framework comes from.
// It is one of LocalLocation, RemoteLocation or CratesIOLocation.
type OdraLocation interface {
	isOdraLocation()
	String() string
}

// LocalLocation is a framework checkout on the local filesystem.
type LocalLocation struct {
	Path string
}

// RemoteLocation is a git repository, optionally pinned to a branch.
// An empty Branch means the repository's default.
type RemoteLocation struct {
	Repository string
	Branch     string
}

// CratesIOLocation is a version published to crates.io.
type CratesIOLocation struct {
	Version string
}

func (LocalLocation) isOdraLocation()    {}
func (RemoteLocation) isOdraLocation()   {}
func (CratesIOLocation) isOdraLocation() {}

func (l LocalLocation) String() string {
	return "local path " + l.Path
}

func (l RemoteLocation) String() string {
	if l.Branch == "" {
		return "git " + l.Repository
	}
	return "git " + l.Repository + " (branch " + l.Branch + ")"
}

func (l CratesIOLocation) String() string {
	return "crates.io " + l.Version
}

// ResolveLocal returns location with a relative local path joined onto root.
// Other locations are returned unchanged.
func ResolveLocal(location OdraLocation, root string) OdraLocation {
	if loc, ok := location.(LocalLocation); ok && !filepath.IsAbs(loc.Path) {
		return LocalLocation{Path: filepath.Join(root, loc.Path)}
	}
	return location
}
