package appointment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/barber-backoffice/internal/httperr"
)

func TestCanTransition(t *testing.T) {
	allowed := map[Status][]Status{
		StatusScheduled:  {StatusConfirmed, StatusCancelled},
		StatusConfirmed:  {StatusInProgress, StatusCancelled, StatusNoShow},
		StatusInProgress: {StatusCompleted, StatusCancelled},
	}
	all := []Status{StatusScheduled, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled, StatusNoShow}

	for _, from := range all {
		for _, to := range all {
			err := CanTransition(from, to)
			if contains(allowed[from], to) {
				assert.NoError(t, err, "%s -> %s", from, to)
				continue
			}
			assert.True(t, httperr.IsBusiness(err, "invalid_transition"), "%s -> %s", from, to)
		}
	}
}

func TestCanTransition_UnknownTarget(t *testing.T) {
	err := CanTransition(StatusScheduled, "done")
	assert.True(t, httperr.IsBusiness(err, "invalid_status"))
}

func TestTerminal(t *testing.T) {
	assert.True(t, StatusCompleted.Terminal())
	assert.True(t, StatusCancelled.Terminal())
	assert.True(t, StatusNoShow.Terminal())
	assert.False(t, StatusScheduled.Terminal())
	assert.Empty(t, NextStatuses(StatusNoShow))
}

func TestParseStatusFilter(t *testing.T) {
	assert.Equal(t, Status(""), ParseStatusFilter("all"))
	assert.Equal(t, Status(""), ParseStatusFilter(""))
	assert.Equal(t, Status(""), ParseStatusFilter("whatever"))
	assert.Equal(t, StatusNoShow, ParseStatusFilter("no_show"))
}

func contains(list []Status, s Status) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
