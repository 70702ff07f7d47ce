package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/odra/internal/core/domain"
)

func TestParseContractFilter(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{name: "empty", raw: "", want: nil},
		{name: "blank", raw: "   ", want: nil},
		{name: "single", raw: "Flipper", want: []string{"Flipper"}},
		{name: "repeated spaces", raw: " Flipper  Erc20 ", want: []string{"Flipper", "Erc20"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.ParseContractFilter(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseContractFilter_RejectsOtherWhitespace(t *testing.T) {
	for _, raw := range []string{"Flipper\tErc20", "Flipper\nErc20", "Flipper\u00a0Erc20"} {
		_, err := domain.ParseContractFilter(raw)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrArgumentInvalid)
		assert.ErrorIs(t, err, domain.ErrInvalidFilter)
	}
}

func TestSelectContracts(t *testing.T) {
	contracts := []domain.Contract{
		{FQN: "a::A"},
		{FQN: "b::B"},
		{FQN: "c::C"},
	}

	all, err := domain.SelectContracts(contracts, nil)
	require.NoError(t, err)
	assert.Equal(t, contracts, all)

	// Registry order wins over filter order.
	got, err := domain.SelectContracts(contracts, []string{"C", "A"})
	require.NoError(t, err)
	assert.Equal(t, []domain.Contract{{FQN: "a::A"}, {FQN: "c::C"}}, got)

	_, err = domain.SelectContracts(contracts, []string{"A", "D"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrContractNotFound)
	assert.Contains(t, err.Error(), "D")
}

func TestSelectContracts_DuplicateStructNames(t *testing.T) {
	contracts := []domain.Contract{{FQN: "a::Token"}, {FQN: "b::Token"}, {FQN: "c::C"}}

	// Rejected even when the filter only names an unrelated contract.
	_, err := domain.SelectContracts(contracts, []string{"C"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfigMalformed)
	assert.ErrorIs(t, err, domain.ErrDuplicateStructName)
}
