package workload

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActivityCurve_PeakAtMidpoint(t *testing.T) {
	// GIVEN business hours 8-18 with 15-30 users
	curve := ActivityCurve{MinUsers: 15, MaxUsers: 30, StartHour: 8, EndHour: 18}

	// THEN the midpoint (13:00) reaches the maximum
	assert.Equal(t, 30, curve.Users(13*3600))
	// AND the window edges sit near the minimum: exp(-2) of the range above it
	assert.Equal(t, 17, curve.Users(8*3600))
	// AND the curve is symmetric around the peak
	assert.Equal(t, curve.Users(10*3600), curve.Users(16*3600))
}

func TestActivityCurve_OffHours(t *testing.T) {
	tests := []struct {
		name     string
		minUsers int
		want     int
	}{
		{"twenty percent of minimum", 15, 3},
		{"floored at one", 2, 1},
		{"zero minimum stays zero", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			curve := ActivityCurve{MinUsers: tt.minUsers, MaxUsers: 30, StartHour: 8, EndHour: 18}
			assert.Equal(t, tt.want, curve.Users(3*3600))
			assert.Equal(t, tt.want, curve.Users(20*3600))
		})
	}
}

func TestActivityCurve_WrapsAcrossDays(t *testing.T) {
	curve := ActivityCurve{MinUsers: 15, MaxUsers: 30, StartHour: 8, EndHour: 18}
	assert.True(t, curve.IsBusinessHours(8*3600))
	assert.False(t, curve.IsBusinessHours(18*3600))
	assert.True(t, curve.IsBusinessHours(86400+13*3600))
	assert.Equal(t, curve.Users(13*3600), curve.Users(5*86400+13*3600))
}
