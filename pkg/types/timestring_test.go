package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeString_Validate(t *testing.T) {
	valid := []string{"00:00", "09:30", "23:59"}
	for _, s := range valid {
		assert.NoError(t, TimeString(s).Validate(), s)
	}

	invalid := []string{"", "24:00", "09:60", "09:30:00", "abc"}
	for _, s := range invalid {
		err := TimeString(s).Validate()
		require.Error(t, err, s)
		assert.ErrorIs(t, err, ErrInvalidTimeString)
	}
}

func TestTimeString_Minutes(t *testing.T) {
	tests := []struct {
		in   TimeString
		want int
	}{
		{"00:00", 0},
		{"00:01", 1},
		{"09:30", 570},
		{"23:59", 1439},
	}

	for _, tt := range tests {
		got, err := tt.in.Minutes()
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, string(tt.in))
	}

	_, err := TimeString("25:99").Minutes()
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_AddMinutes(t *testing.T) {
	tests := []struct {
		in      TimeString
		minutes int
		want    TimeString
	}{
		{"09:00", 30, "09:30"},
		{"09:45", 30, "10:15"},
		// Переход через полночь заворачивается
		{"23:50", 20, "00:10"},
		{"00:10", -20, "23:50"},
	}

	for _, tt := range tests {
		got, err := tt.in.AddMinutes(tt.minutes)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestTimeString_AnchorTo(t *testing.T) {
	// Дата с ненулевым временем и не-UTC зоной: якорь всегда от UTC-полуночи
	loc := time.FixedZone("UTC+3", 3*3600)
	date := time.Date(2025, 10, 15, 18, 45, 12, 0, loc)

	got, err := TimeString("09:30").AnchorTo(date)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 10, 15, 9, 30, 0, 0, time.UTC), got)

	_, err = TimeString("bad").AnchorTo(date)
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("09:30"))
	assert.Equal(t, TimeString("09:30"), ts)

	// Postgres TIME приходит с секундами
	require.NoError(t, ts.Scan("14:00:00"))
	assert.Equal(t, TimeString("14:00"), ts)

	require.NoError(t, ts.Scan([]byte("23:59:59")))
	assert.Equal(t, TimeString("23:59"), ts)

	require.NoError(t, ts.Scan(time.Date(2025, 10, 15, 8, 15, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("08:15"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.ErrorIs(t, ts.Scan(42), ErrInvalidTimeString)
	assert.ErrorIs(t, ts.Scan("garbage"), ErrInvalidTimeString)
}

func TestTimeString_Value(t *testing.T) {
	v, err := TimeString("09:30").Value()
	require.NoError(t, err)
	assert.Equal(t, "09:30", v)

	v, err = TimeString("").Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = TimeString("25:00").Value()
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_JSON(t *testing.T) {
	data, err := json.Marshal(TimeString("09:30"))
	require.NoError(t, err)
	assert.Equal(t, `"09:30"`, string(data))

	var ts TimeString
	require.NoError(t, json.Unmarshal([]byte(`"17:45"`), &ts))
	assert.Equal(t, TimeString("17:45"), ts)

	assert.Error(t, json.Unmarshal([]byte(`"25:00"`), &ts))
	assert.Error(t, json.Unmarshal([]byte(`123`), &ts))
}
