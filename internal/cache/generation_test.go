package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseGeneration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value interface{}
		want  int64
	}{
		{name: "missing key", value: nil, want: 0},
		{name: "empty GET result", value: "", want: 0},
		{name: "counter", value: "12", want: 12},
		{name: "garbage", value: "abc", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseGeneration(tt.value))
		})
	}
}

func TestKeysAreSeparatePerMentor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "availability:schedule:7", scheduleKey(7))
	assert.Equal(t, "availability:schedule-gen:7", generationKey(7))
	assert.NotEqual(t, generationKey(7), generationKey(8))
}
