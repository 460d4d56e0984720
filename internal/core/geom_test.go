package core

import "testing"

func TestRectIntersect(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		expected Rect
		empty    bool
	}{
		{
			name:     "overlapping rects",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(5, 5, 10, 10),
			expected: NewRect(5, 5, 5, 5),
		},
		{
			name:  "non-overlapping horizontal",
			a:     NewRect(0, 0, 10, 10),
			b:     NewRect(15, 0, 10, 10),
			empty: true,
		},
		{
			name:  "adjacent (no overlap)",
			a:     NewRect(0, 0, 10, 10),
			b:     NewRect(10, 0, 10, 10),
			empty: true,
		},
		{
			name:     "contained rect",
			a:        NewRect(0, 0, 20, 20),
			b:        NewRect(5, 5, 5, 5),
			expected: NewRect(5, 5, 5, 5),
		},
		{
			name:     "clip to screen",
			a:        NewRect(0, 0, 80, 23),
			b:        NewRect(-3, 20, 10, 10),
			expected: NewRect(0, 20, 7, 3),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := tc.a.Intersect(tc.b)
			if tc.empty {
				if !result.Empty() {
					t.Errorf("Intersect() = %+v, expected empty", result)
				}
				return
			}
			if result != tc.expected {
				t.Errorf("Intersect() = %+v, expected %+v", result, tc.expected)
			}
			// Also test symmetry
			if reverse := tc.b.Intersect(tc.a); reverse != tc.expected {
				t.Errorf("Intersect() (reversed) = %+v, expected %+v", reverse, tc.expected)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{2.5, 1.0, 5.0, 2.5},
		{0.5, 1.0, 5.0, 1.0},
		{7.5, 1.0, 5.0, 5.0},
	}

	for _, tc := range tests {
		result := ClampF(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestNearestColor(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b float64
		want    Color
	}{
		{"sky blue clear color", 164.0 / 255.0, 233.0 / 255.0, 1.0, ColorBrightCyan},
		{"pure red", 1, 0, 0, ColorBrightRed},
		{"black", 0, 0, 0, ColorDefault},
		{"white", 1, 1, 1, ColorBrightWhite},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := NearestColor(tc.r, tc.g, tc.b); got != tc.want {
				t.Errorf("NearestColor(%v, %v, %v) = %v, expected %v", tc.r, tc.g, tc.b, got, tc.want)
			}
		})
	}
}

func TestSurfaceSize(t *testing.T) {
	cfg := RuntimeConfig{ScreenW: 80, ScreenH: 24}
	w, h := cfg.SurfaceSize()
	if w != 80 || h != 23 {
		t.Errorf("SurfaceSize() = (%d, %d), expected (80, 23)", w, h)
	}

	tiny := RuntimeConfig{ScreenW: 0, ScreenH: 1}
	w, h = tiny.SurfaceSize()
	if w != 1 || h != 1 {
		t.Errorf("SurfaceSize() for tiny terminal = (%d, %d), expected (1, 1)", w, h)
	}
}
