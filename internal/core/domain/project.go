package domain

import "strings"

// Project is an odra project detected on disk.
// It is built once per invocation and passed to every component that needs the project root.
type Project struct {
	Name         string
	Root         string
	ManifestPath string
	RegistryPath string
	Members      []Member
}

// Member is a crate of the project. A project without workspace members has
// a single unnamed member rooted at the project root.
type Member struct {
	Name         string
	Root         string
	ManifestPath string
}

// IsWorkspace reports whether the project declares more than one crate.
func (p *Project) IsWorkspace() bool {
	return len(p.Members) > 1
}

// CrateName returns the rust crate identifier of the project package.
func (p *Project) CrateName() string {
	return CrateIdent(p.Name)
}

// MemberName returns the dependency name of m, falling back to the project name for the unnamed member.
func (p *Project) MemberName(m Member) string {
	if m.Name == "" {
		return p.Name
	}
	return m.Name
}

// OwningMember returns the member whose crate defines c.
func (p *Project) OwningMember(c Contract) (Member, bool) {
	crate := c.CrateName()
	for _, m := range p.Members {
		if CrateIdent(p.MemberName(m)) == crate {
			return m, true
		}
	}
	return Member{}, false
}

// CrateIdent converts a package name to the identifier rust uses for it in paths.
func CrateIdent(packageName string) string {
	return strings.ReplaceAll(packageName, "-", "_")
}
