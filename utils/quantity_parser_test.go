package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSeconds(t *testing.T) {
	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{"1:30", 90, true},
		{"2 h", 7200, true},
		{"1 hr 20 min", 4800, true},
		{"2 horas", 7200, true},
		{"1,5 h", 5400, true},
		{"45 min", 2700, true},
		{"3 mins", 180, true},
		{"30 seg", 30, true},
		{"12 s", 12, true},
		{"pickup (min): 5 min | 1.2 km", 300, true},
		{"no units", 0, false},
		{"4.2 km", 0, false},
		{"", 0, false},
	}

	for _, tc := range cases {
		got, ok := ParseSeconds(tc.in)
		assert.Equal(t, tc.ok, ok, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestParseMeters(t *testing.T) {
	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{"4.2 km", 4200, true},
		{"4,2 km", 4200, true},
		{"8.5 km", 8500, true},
		{"6 km", 6000, true},
		{"1.15 km", 1150, true},
		{"350 m", 350, true},
		{"350m", 350, true},
		{"900 metros", 900, true},
		{"120 mts", 120, true},
		{"10 min", 0, false},
		{"10 m in", 0, false},
		{"10 m1n", 0, false},
		{"10 m in 250 m", 250, true},
		{"17 min | 8.5 km", 8500, true},
		{"no units", 0, false},
	}

	for _, tc := range cases {
		got, ok := ParseMeters(tc.in)
		assert.Equal(t, tc.ok, ok, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestMatchersAreIndependent(t *testing.T) {
	_, ok := matchColon("45 min")
	assert.False(t, ok)

	v, ok := matchMinutes("1:30 and 45 min")
	assert.True(t, ok)
	assert.Equal(t, 2700, v)

	_, ok = matchColon("1:75")
	assert.False(t, ok)

	v, ok = matchKilometers("approx 3,75 km away")
	assert.True(t, ok)
	assert.Equal(t, 3750, v)

	_, ok = matchMeters("6 km")
	assert.False(t, ok)
}
