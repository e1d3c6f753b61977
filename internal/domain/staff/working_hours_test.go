package staff

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-backoffice/internal/httperr"
	"github.com/BruksfildServices01/barber-backoffice/internal/models"
)

func TestToggle_OnResetsToDefault(t *testing.T) {
	wh := models.WorkingHours{"monday": {Start: "10:00", End: "14:00"}}

	off, err := Toggle(wh, "monday")
	require.NoError(t, err)
	assert.Nil(t, off["monday"])

	on, err := Toggle(off, "monday")
	require.NoError(t, err)
	require.NotNil(t, on["monday"])
	assert.Equal(t, models.DayHours{Start: "09:00", End: "18:00"}, *on["monday"])

	assert.Equal(t, "10:00", wh["monday"].Start, "input map is not mutated")
}

func TestToggle_UnknownDay(t *testing.T) {
	_, err := Toggle(nil, "funday")
	assert.True(t, httperr.IsBusiness(err, "invalid_weekday"))
}

func TestSetDay(t *testing.T) {
	wh, err := SetDay(nil, "friday", models.DayHours{Start: "08:00", End: "12:00"})
	require.NoError(t, err)
	assert.Equal(t, "08:00", wh["friday"].Start)
	assert.Len(t, wh, 7)

	_, err = SetDay(nil, "friday", models.DayHours{Start: "12:00", End: "08:00"})
	assert.True(t, httperr.IsBusiness(err, "invalid_working_hours"))

	_, err = SetDay(nil, "friday", models.DayHours{Start: "8h", End: "12:00"})
	assert.True(t, httperr.IsBusiness(err, "invalid_working_hours"))
}

func TestNormalize(t *testing.T) {
	wh, err := Normalize(models.WorkingHours{"tuesday": {Start: "09:00", End: "17:00"}, "sunday": nil})
	require.NoError(t, err)
	assert.Len(t, wh, 7)
	assert.Nil(t, wh["monday"])
	assert.NotNil(t, wh["tuesday"])

	_, err = Normalize(models.WorkingHours{"segunda": nil})
	assert.True(t, httperr.IsBusiness(err, "invalid_weekday"))
}

func TestValidateCommission(t *testing.T) {
	assert.NoError(t, ValidateCommission(decimal.NewFromInt(30)))
	assert.Error(t, ValidateCommission(decimal.NewFromInt(-1)))
	assert.Error(t, ValidateCommission(decimal.NewFromInt(101)))
}
