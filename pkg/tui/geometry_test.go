// ABOUTME: Tests for centring rectangles on the screen
// ABOUTME: Covers the usual modal placement and clipping on screens smaller than the box

package tui

import "testing"

func TestCentered(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		termW, termH int
		w, h         int
		want         Rect
	}{
		{"modal on 80x24", 80, 24, 23, 4, R(29, 10, 51, 14)},
		{"even size", 10, 10, 4, 4, R(3, 3, 7, 7)},
		{"narrower than box", 20, 24, 23, 4, R(1, 10, 20, 14)},
		{"shorter than box", 80, 3, 23, 4, R(29, 1, 51, 3)},
		{"tiny screen", 1, 1, 23, 4, R(1, 1, 1, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Centered(tt.termW, tt.termH, tt.w, tt.h); got != tt.want {
				t.Errorf("Centered(%d,%d,%d,%d) = %+v, want %+v", tt.termW, tt.termH, tt.w, tt.h, got, tt.want)
			}
		})
	}
}
