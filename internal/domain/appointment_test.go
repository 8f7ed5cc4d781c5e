package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppointment_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from    AppointmentStatus
		to      AppointmentStatus
		allowed bool
	}{
		{StatusScheduled, StatusConfirmed, true},
		{StatusScheduled, StatusCancelled, true},
		{StatusScheduled, StatusInProgress, false},
		{StatusScheduled, StatusCompleted, false},
		{StatusScheduled, StatusNoShow, false},

		{StatusConfirmed, StatusInProgress, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusNoShow, true},
		{StatusConfirmed, StatusCompleted, false},
		{StatusConfirmed, StatusScheduled, false},

		{StatusInProgress, StatusCompleted, true},
		{StatusInProgress, StatusCancelled, false},

		{StatusCompleted, StatusInProgress, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusNoShow, StatusConfirmed, false},
	}

	for _, tc := range cases {
		a := &Appointment{Status: tc.from}
		assert.Equal(t, tc.allowed, a.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestAppointment_IsActive(t *testing.T) {
	for _, status := range ActiveStatuses {
		a := &Appointment{Status: status}
		assert.True(t, a.IsActive(), string(status))
	}
	for _, status := range InactiveStatuses {
		a := &Appointment{Status: status}
		assert.False(t, a.IsActive(), string(status))
	}
}

func TestAppointment_CanBeCancelled(t *testing.T) {
	assert.True(t, (&Appointment{Status: StatusScheduled}).CanBeCancelled())
	assert.True(t, (&Appointment{Status: StatusConfirmed}).CanBeCancelled())
	assert.False(t, (&Appointment{Status: StatusInProgress}).CanBeCancelled())
	assert.False(t, (&Appointment{Status: StatusCompleted}).CanBeCancelled())
	assert.False(t, (&Appointment{Status: StatusCancelled}).CanBeCancelled())
}
