package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleColor_Fallback(t *testing.T) {
	assert.Equal(t, "bg-red-500", RoleAdmin.Color())
	assert.Equal(t, "bg-green-500", RoleLider.Color())
	assert.Equal(t, "bg-gray-400", Role("Desconocido").Color())
	assert.Equal(t, "bg-gray-400", Role("").Color())
}

func TestTurnStateEmoji_Fallback(t *testing.T) {
	assert.Equal(t, "🟢", TurnStateAvailable.Emoji())
	assert.Equal(t, "🍔", TurnStateOnBreak.Emoji())
	assert.Equal(t, "🏠", TurnStateOffDuty.Emoji())
	assert.Equal(t, "🔴", TurnStateBusy.Emoji())
	assert.Equal(t, "✈️", TurnStateInFlight.Emoji())
	assert.Equal(t, "⚪", TurnState("algo raro").Emoji())
}

func TestTurnStateOnDuty(t *testing.T) {
	assert.True(t, TurnStateAvailable.OnDuty())
	assert.True(t, TurnStateBusy.OnDuty())
	assert.False(t, TurnStateOnBreak.OnDuty())
	assert.False(t, TurnStateOffDuty.OnDuty())
	assert.False(t, TurnStateInFlight.OnDuty())
}

func TestRoleValid(t *testing.T) {
	for _, role := range AllRoles {
		assert.Truef(t, role.Valid(), "role %q", role)
	}
	assert.False(t, Role("Supervisor").Valid())
}
