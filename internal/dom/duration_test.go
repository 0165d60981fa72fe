package dom

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLongestTransition(t *testing.T) {
	tests := []struct {
		css  string
		want time.Duration
	}{
		{"", 0},
		{"0s", 0},
		{"0.2s", 200 * time.Millisecond},
		{"150ms", 150 * time.Millisecond},
		{"0s, 0.3s, 120ms", 300 * time.Millisecond},
		{"bogus, 1s", time.Second},
		{"xs", 0},
	}
	for _, tt := range tests {
		t.Run(tt.css, func(t *testing.T) {
			assert.Equal(t, tt.want, longestTransition(tt.css))
		})
	}
}
