package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActor_CanActOn(t *testing.T) {
	admin := Actor{OrganizationID: 1, ProfileID: 10, Role: "admin"}
	barber := Actor{OrganizationID: 1, ProfileID: 20, Role: "barber"}

	assert.True(t, admin.IsAdmin())
	assert.True(t, admin.CanActOn(20))
	assert.False(t, barber.IsAdmin())
	assert.True(t, barber.CanActOn(20))
	assert.False(t, barber.CanActOn(10))
}

func TestActor_ProfileRef(t *testing.T) {
	assert.Nil(t, Actor{}.ProfileRef())

	ref := Actor{ProfileID: 7}.ProfileRef()
	if assert.NotNil(t, ref) {
		assert.Equal(t, uint(7), *ref)
	}
}
