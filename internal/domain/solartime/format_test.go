package solartime

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFormatPadsFields(t *testing.T) {
	for _, h := range []int{0, 7, 12, 23} {
		for _, m := range []int{0, 5, 59} {
			for _, s := range []int{0, 9, 30, 59} {
				w := NewWallClock(2024, time.January, 15, h, m, s)
				require.Equal(t, fmt.Sprintf("%02d:%02d:%02d", h, m, s), Format(w))
			}
		}
	}
}

func TestFormatInvalidReading(t *testing.T) {
	require.Equal(t, "--:--:--", Format(WallClock{}))
	require.Equal(t, "--:--:--", Format(NewWallClock(2024, time.February, 30, 12, 0, 0)))
	require.Equal(t, "--:--:--", Format(NewWallClock(2024, time.January, 15, 24, 0, 0)))
}

func TestFormatDropsSubSeconds(t *testing.T) {
	w := WallClockOf(time.Date(2024, time.January, 15, 9, 8, 7, 999_999_999, time.UTC))
	require.Equal(t, "09:08:07", Format(w))
}
