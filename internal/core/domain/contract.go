package domain

import (
	"errors"
	"strconv"
	"strings"
	"unicode"

	"go.trai.ch/zerr"
)

const fqnSeparator = "::"

// Contract is a registered contract identified by its fully-qualified name.
type Contract struct {
	FQN string
}

// ParseContract validates fqn and returns the contract it names.
// The name must have at least two segments, each a rust identifier.
func ParseContract(fqn string) (Contract, error) {
	segments := strings.Split(fqn, fqnSeparator)
	if len(segments) < 2 {
		return Contract{}, invalidFQN(fqn)
	}
	for _, segment := range segments {
		if !isIdentifier(segment) {
			return Contract{}, invalidFQN(fqn)
		}
	}
	return Contract{FQN: fqn}, nil
}

func invalidFQN(fqn string) error {
	return errors.Join(ErrConfigMalformed, zerr.With(zerr.Wrap(ErrInvalidFQN, "invalid contract name "+strconv.Quote(fqn)), "fqn", fqn))
}

// StructName returns the last segment, the contract's struct identifier.
func (c Contract) StructName() string {
	i := strings.LastIndex(c.FQN, fqnSeparator)
	if i < 0 {
		return c.FQN
	}
	return c.FQN[i+len(fqnSeparator):]
}

// ModuleName returns every segment before the struct name, joined with "::".
func (c Contract) ModuleName() string {
	i := strings.LastIndex(c.FQN, fqnSeparator)
	if i < 0 {
		return ""
	}
	return c.FQN[:i]
}

// CrateName returns the first segment, the crate that defines the contract.
func (c Contract) CrateName() string {
	crate, _, _ := strings.Cut(c.FQN, fqnSeparator)
	return crate
}

// CheckStructNames fails with ErrConfigMalformed when two contracts share a struct name.
func CheckStructNames(contracts []Contract) error {
	seen := make(map[string]Contract, len(contracts))
	for _, c := range contracts {
		if prev, ok := seen[c.StructName()]; ok {
			return errors.Join(ErrConfigMalformed, duplicateStructName(prev, c))
		}
		seen[c.StructName()] = c
	}
	return nil
}

func duplicateStructName(a, b Contract) error {
	return zerr.With(zerr.With(zerr.Wrap(ErrDuplicateStructName, a.FQN+" and "+b.FQN), "contract", b.FQN), "conflicts_with", a.FQN)
}

// ConflictsWith reports whether c and other would produce the same artifact.
func (c Contract) ConflictsWith(other Contract) bool {
	return c.StructName() == other.StructName()
}

func (c Contract) String() string {
	return c.FQN
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', unicode.IsLetter(r):
		case unicode.IsDigit(r) && i > 0:
		default:
			return false
		}
	}
	return true
}
