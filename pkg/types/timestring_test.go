package types_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BeautyBooking/pkg/types"
)

func TestNewTimeStringFromString(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		want    types.TimeString
		wantErr bool
	}{
		{name: "hh:mm", in: "09:30", want: "09:30"},
		{name: "seconds are dropped", in: "14:00:59", want: "14:00"},
		{name: "end of day", in: "24:00", want: "24:00"},
		{name: "surrounding spaces", in: " 10:15 ", want: "10:15"},
		{name: "single digit hour", in: "9:00", wantErr: true},
		{name: "minutes out of range", in: "10:60", wantErr: true},
		{name: "past end of day", in: "24:01", wantErr: true},
		{name: "letters", in: "ab:cd", wantErr: true},
		{name: "empty", in: "", wantErr: true},
		{name: "negative minutes", in: "09:-1", wantErr: true},
		{name: "signed hour", in: "+9:00", wantErr: true},
		{name: "negative hour", in: "-1:00", wantErr: true},
		{name: "signed seconds", in: "10:00:+1", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := types.NewTimeStringFromString(tc.in)
			if tc.wantErr {
				require.ErrorIs(t, err, types.ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestTimeString_Validate(t *testing.T) {
	assert.NoError(t, types.TimeString("09:00").Validate())
	assert.ErrorIs(t, types.TimeString("-1:00").Validate(), types.ErrInvalidTimeString)
	assert.ErrorIs(t, types.TimeString("09:-1").Validate(), types.ErrInvalidTimeString)
	assert.Equal(t, -1, types.TimeString("+9:00").Minutes())
}

func TestTimeString_Minutes(t *testing.T) {
	assert.Equal(t, 0, types.TimeString("00:00").Minutes())
	assert.Equal(t, 9*60+30, types.TimeString("09:30").Minutes())
	assert.Equal(t, types.MinutesPerDay, types.TimeString("24:00").Minutes())
	assert.Equal(t, -1, types.TimeString("nope").Minutes())
}

func TestTimeString_AddMinutes(t *testing.T) {
	got, err := types.TimeString("18:30").AddMinutes(90)
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("20:00"), got)

	_, err = types.TimeString("23:30").AddMinutes(60)
	assert.ErrorIs(t, err, types.ErrInvalidTimeString)
}

func TestTimeString_Compare(t *testing.T) {
	assert.True(t, types.TimeString("09:00").IsBefore("10:00"))
	assert.False(t, types.TimeString("10:00").IsBefore("10:00"))
	assert.True(t, types.TimeString("19:00").IsAfter("09:00"))
}

func TestTimeString_Label(t *testing.T) {
	cases := map[types.TimeString]string{
		"00:00": "12:00 AM",
		"09:00": "9:00 AM",
		"11:45": "11:45 AM",
		"12:00": "12:00 PM",
		"14:30": "2:30 PM",
		"18:00": "6:00 PM",
	}
	for in, want := range cases {
		assert.Equal(t, want, in.Label(), "label of %s", in)
	}
}

func TestTimeString_Scan(t *testing.T) {
	t.Run("postgres TIME as string", func(t *testing.T) {
		var ts types.TimeString
		require.NoError(t, ts.Scan("13:00:00"))
		assert.Equal(t, types.TimeString("13:00"), ts)
	})

	t.Run("bytes", func(t *testing.T) {
		var ts types.TimeString
		require.NoError(t, ts.Scan([]byte("07:05:00")))
		assert.Equal(t, types.TimeString("07:05"), ts)
	})

	t.Run("time.Time", func(t *testing.T) {
		var ts types.TimeString
		require.NoError(t, ts.Scan(time.Date(0, 1, 1, 16, 20, 0, 0, time.UTC)))
		assert.Equal(t, types.TimeString("16:20"), ts)
	})

	t.Run("nil", func(t *testing.T) {
		ts := types.TimeString("10:00")
		require.NoError(t, ts.Scan(nil))
		assert.True(t, ts.IsZero())
	})

	t.Run("unsupported type", func(t *testing.T) {
		var ts types.TimeString
		assert.ErrorIs(t, ts.Scan(42), types.ErrInvalidTimeString)
	})
}

func TestTimeString_Value(t *testing.T) {
	v, err := types.TimeString("10:00").Value()
	require.NoError(t, err)
	assert.Equal(t, "10:00", v)

	v, err = types.TimeString("").Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}
