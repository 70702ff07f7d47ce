package domain

import (
	"errors"
	"strings"
	"unicode"

	"go.trai.ch/zerr"
)

// ParseContractFilter splits a space separated list of contract names.
// An empty or blank filter selects every contract and yields nil.
// Whitespace other than plain spaces is rejected.
func ParseContractFilter(raw string) ([]string, error) {
	for _, r := range raw {
		if unicode.IsSpace(r) && r != ' ' {
			return nil, errors.Join(ErrArgumentInvalid, zerr.With(zerr.Wrap(ErrInvalidFilter, ""), "filter", raw))
		}
	}
	names := strings.Fields(raw)
	if len(names) == 0 {
		return nil, nil
	}
	return names, nil
}

// SelectContracts returns the contracts named by filter in registry order.
// A nil filter selects everything. Unknown names fail with ErrContractNotFound.
// Contracts sharing a struct name fail with ErrConfigMalformed.
func SelectContracts(contracts []Contract, filter []string) ([]Contract, error) {
	if err := CheckStructNames(contracts); err != nil {
		return nil, err
	}
	if len(filter) == 0 {
		return contracts, nil
	}

	known := make(map[string]struct{}, len(contracts))
	for _, c := range contracts {
		known[c.StructName()] = struct{}{}
	}
	for _, name := range filter {
		if _, ok := known[name]; !ok {
			return nil, errors.Join(
				ErrContractNotFound,
				zerr.With(zerr.New("no contract named "+name+" in "+RegistryFileName), "contract", name),
			)
		}
	}

	wanted := make(map[string]struct{}, len(filter))
	for _, name := range filter {
		wanted[name] = struct{}{}
	}
	selected := make([]Contract, 0, len(filter))
	for _, c := range contracts {
		if _, ok := wanted[c.StructName()]; ok {
			selected = append(selected, c)
		}
	}
	return selected, nil
}
