package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeString_Validate(t *testing.T) {
	valid := []string{"00:00", "08:00", "09:30", "23:59"}
	for _, s := range valid {
		assert.NoError(t, TimeString(s).Validate(), s)
	}

	invalid := []string{"", "8:00", "24:00", "12:60", "ab:cd", "12-30", "12:3", "012:30"}
	for _, s := range invalid {
		assert.ErrorIs(t, TimeString(s).Validate(), ErrInvalidTimeFormat, s)
	}
}

func TestTimeString_Minutes(t *testing.T) {
	m, err := TimeString("00:00").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 0, m)

	m, err = TimeString("10:30").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 630, m)

	m, err = TimeString("23:59").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 1439, m)

	_, err = TimeString("25:00").Minutes()
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)
}

func TestTimeString_AddMinutes(t *testing.T) {
	got, err := TimeString("10:00").AddMinutes(45)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:45"), got)

	got, err = TimeString("09:50").AddMinutes(20)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:10"), got)

	_, err = TimeString("23:30").AddMinutes(60)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)

	_, err = TimeString("00:10").AddMinutes(-20)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)
}

func TestTimeString_Compare(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
	assert.False(t, TimeString("11:00").IsBefore("10:00"))

	assert.True(t, TimeString("11:00").IsAfter("10:00"))
	assert.False(t, TimeString("10:00").IsAfter("10:00"))
}

func TestTimeString_InRange(t *testing.T) {
	// Bounds are inclusive on both ends.
	cases := []struct {
		value string
		want  bool
	}{
		{"08:00", true},
		{"18:00", true},
		{"12:30", true},
		{"07:59", false},
		{"18:01", false},
	}

	for _, tc := range cases {
		got, err := TimeString(tc.value).InRange("08:00", "18:00")
		require.NoError(t, err, tc.value)
		assert.Equal(t, tc.want, got, tc.value)
	}
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("10:00:00"))
	assert.Equal(t, TimeString("10:00"), ts)

	require.NoError(t, ts.Scan([]byte("14:30")))
	assert.Equal(t, TimeString("14:30"), ts)

	require.NoError(t, ts.Scan(time.Date(2024, 1, 16, 9, 15, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("09:15"), ts)

	assert.Error(t, ts.Scan(42))
}

func TestNewTimeString(t *testing.T) {
	ts := NewTimeString(time.Date(2024, 1, 16, 8, 5, 59, 0, time.UTC))
	assert.Equal(t, TimeString("08:05"), ts)
}
