package core

import "testing"

func TestBoxIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Box
		expected bool
	}{
		{
			name:     "overlapping boxes",
			a:        NewBox(0, 0, 10, 10),
			b:        NewBox(5, 5, 10, 10),
			expected: true,
		},
		{
			name:     "non-overlapping horizontal",
			a:        NewBox(0, 0, 10, 10),
			b:        NewBox(15, 0, 10, 10),
			expected: false,
		},
		{
			name:     "non-overlapping vertical",
			a:        NewBox(0, 0, 10, 10),
			b:        NewBox(0, 15, 10, 10),
			expected: false,
		},
		{
			name:     "touching edges",
			a:        NewBox(0, 0, 10, 10),
			b:        NewBox(10, 0, 10, 10),
			expected: false,
		},
		{
			name:     "contained box",
			a:        NewBox(0, 0, 20, 20),
			b:        NewBox(5, 5, 1.5, 1.5),
			expected: true,
		},
		{
			name:     "sub-unit overlap",
			a:        NewBox(0, 0, 3, 3),
			b:        NewBox(2.9, 2.9, 2, 2),
			expected: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Intersects(tc.b); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Intersects(tc.a); got != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestBoxAround(t *testing.T) {
	b := BoxAround(10, 20, 2)
	if b.X != 8 || b.Y != 18 || b.W != 4 || b.H != 4 {
		t.Errorf("BoxAround(10, 20, 2) = %+v", b)
	}
	cx, cy := b.Center()
	if cx != 10 || cy != 20 {
		t.Errorf("Center() = (%v, %v), expected (10, 20)", cx, cy)
	}
}

func TestCircleIntersects(t *testing.T) {
	paddle := NewBox(10, 30, 12, 1)

	tests := []struct {
		name       string
		cx, cy, r  float64
		wantInside bool
	}{
		{"resting on top", 16, 29, 1, true},
		{"just above", 16, 28.9, 1, false},
		{"corner within radius", 9.5, 29.5, 1, true},
		{"corner outside radius", 9.2, 29.2, 1, false},
		{"center inside", 12, 30.5, 0.5, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := paddle.CircleIntersects(tc.cx, tc.cy, tc.r); got != tc.wantInside {
				t.Errorf("CircleIntersects(%v, %v, %v) = %v, expected %v", tc.cx, tc.cy, tc.r, got, tc.wantInside)
			}
		})
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{5.5, 0.0, 10.0, 5.5},
		{-5.5, 0.0, 10.0, 0.0},
		{15.5, 0.0, 10.0, 10.0},
	}

	for _, tc := range tests {
		if got := ClampF(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}
}
