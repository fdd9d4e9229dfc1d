package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	for _, kind := range Kinds() {
		parsed, err := ParseKind(string(kind))
		require.NoError(t, err)
		assert.Equal(t, kind, parsed)
	}
}

func TestParseKindUnknown(t *testing.T) {
	for _, raw := range []string{"", "clients", "Client", "payment", "drop table"} {
		_, err := ParseKind(raw)
		assert.ErrorIs(t, err, ErrUnknownKind, "input %q", raw)
	}
}

func TestRule(t *testing.T) {
	rule, err := KindVehicle.Rule()
	require.NoError(t, err)
	assert.Equal(t, "vehicles", rule.Table)
	assert.Equal(t, "deleted_at", rule.DeletionColumn)

	_, err = Kind("bogus").Rule()
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestMustRulePanicsOnUnknownKind(t *testing.T) {
	assert.Panics(t, func() {
		Kind("bogus").MustRule()
	})
}

func TestEveryKindHasARule(t *testing.T) {
	for _, kind := range Kinds() {
		rule := kind.MustRule()
		assert.NotEmpty(t, rule.Table, "kind %s", kind)
		assert.NotEmpty(t, rule.DeletionColumn, "kind %s", kind)
	}
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Client", KindClient.Label())
	assert.Equal(t, "Weighbridge", KindWeighbridge.Label())
	assert.Equal(t, "User", KindUser.Label())
}
