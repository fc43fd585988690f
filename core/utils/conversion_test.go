package utils

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestToInt(t *testing.T) {
	assert.Equal(t, 5, ToInt(int64(5)))
	assert.Equal(t, 7, ToInt(7.9))
	assert.Equal(t, 12, ToInt(" 12 "))
	assert.Equal(t, 3, ToInt([]byte("3")))
	assert.Equal(t, 0, ToInt("abc"))
}

func TestToString(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   any
		want string
	}{
		{"Nil", nil, ""},
		{"String", "alpha", "alpha"},
		{"Bytes", []byte("beta"), "beta"},
		{"Int", int64(42), "42"},
		{"Float", 1.5, "1.5"},
		{"WholeFloat", 2.0, "2"},
		{"NaN", math.NaN(), ""},
		{"Time", ts, "2024-03-01 12:30:00"},
		{"ZeroTime", time.Time{}, ""},
		{"Bool", true, "true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToString(tt.in))
		})
	}
}

func TestToBool(t *testing.T) {
	assert.True(t, ToBool("on"))
	assert.True(t, ToBool("TRUE"))
	assert.True(t, ToBool(1))
	assert.True(t, ToBool([]byte("1")))
	assert.False(t, ToBool("off"))
	assert.False(t, ToBool(nil))
	assert.False(t, ToBool(int64(2)))
}
