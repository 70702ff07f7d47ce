package main

import (
	"errors"

	"go.trai.ch/odra/internal/core/domain"
)

const exitUnknown = 10

// exitCodes is checked in order; the first kind found in the error chain wins.
var exitCodes = []struct {
	kind error
	code int
}{
	{domain.ErrCommandFailed, 1},
	{domain.ErrArgumentInvalid, 2},
	{domain.ErrConfigMalformed, 3},
	{domain.ErrContractNotFound, 4},
	{domain.ErrNetworkFailure, 5},
	{domain.ErrToolingMissing, 6},
	{domain.ErrConfigMissing, 7},
	{domain.ErrParseFailure, 8},
}

func exitCode(err error) int {
	for _, e := range exitCodes {
		if errors.Is(err, e.kind) {
			return e.code
		}
	}
	return exitUnknown
}
