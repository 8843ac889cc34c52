package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeLine(t *testing.T) {
	cases := map[string]string{
		"  17 MIN  ":          "17 min",
		"5 m in":              "5 min",
		"12 m1n":              "12 min",
		"8 mn | 3,4 KN":       "8 min | 3,4 km",
		"4 rnin\t2.1 k m":     "4 min 2.1 km",
		"10 1n":               "10 min",
		"6 kms":               "6 km",
		"PICKUP (min): 5 min": "pickup (min): 5 min",
		"17mn":                "17min",
		"5m1n":                "5min",
		"9rnin | 6,0kn":       "9min | 6,0km",
		"3kms":                "3km",
		"12 mn":               "12 min",
		"21n":                 "21n",
	}

	for in, want := range cases {
		assert.Equal(t, want, NormalizeLine(in), "input %q", in)
	}
}

func TestNormalizeLineIdempotent(t *testing.T) {
	inputs := []string{
		"Aceptar por MXN70",
		"k m in",
		"kn in 3 m in",
		"TOTAL (max): 12 MIN | 6.0 KMS",
		"m m in 1n 1n",
		"",
		"   ",
		"1:30 h",
		"17mn 5m1n 6,0kn",
		"4m in 2k m",
	}

	for _, in := range inputs {
		once := NormalizeLine(in)
		assert.Equal(t, once, NormalizeLine(once), "input %q", in)
	}
}

func TestNormalizeLineGluedUnitsParse(t *testing.T) {
	secs, ok := ParseSeconds(NormalizeLine("17mn"))
	assert.True(t, ok)
	assert.Equal(t, 1020, secs)

	secs, ok = ParseSeconds(NormalizeLine("5m1n"))
	assert.True(t, ok)
	assert.Equal(t, 300, secs)

	meters, ok := ParseMeters(NormalizeLine("6,0kn"))
	assert.True(t, ok)
	assert.Equal(t, 6000, meters)
}
