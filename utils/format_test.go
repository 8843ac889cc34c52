package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0 min", FormatDuration(0))
	assert.Equal(t, "0 min", FormatDuration(-5))
	assert.Equal(t, "2 min", FormatDuration(90))
	assert.Equal(t, "17 min", FormatDuration(1020))
	assert.Equal(t, "1 h 05 min", FormatDuration(3900))
	assert.Equal(t, "2 h 00 min", FormatDuration(7200))
}

func TestFormatDistance(t *testing.T) {
	assert.Equal(t, "350 m", FormatDistance(350))
	assert.Equal(t, "1.0 km", FormatDistance(1000))
	assert.Equal(t, "4.2 km", FormatDistance(4200))
	assert.Equal(t, "7.2 km", FormatDistance(7200))
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$70.00", FormatMoney(70))
	assert.Equal(t, "$17.19", FormatMoney(17.1857))
}
