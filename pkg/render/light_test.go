package render

import (
	"testing"

	"github.com/taigrr/softpipe/pkg/math3d"
)

func TestApplyIntensity(t *testing.T) {
	tests := []struct {
		name   string
		in     Color
		factor float64
		want   Color
	}{
		{"full", RGB(200, 100, 50), 1, RGB(200, 100, 50)},
		{"half", RGB(200, 100, 50), 0.5, RGB(100, 50, 25)},
		{"zero", RGB(200, 100, 50), 0, RGB(0, 0, 0)},
		{"clamped above", RGB(200, 100, 50), 3, RGB(200, 100, 50)},
		{"clamped below", RGB(200, 100, 50), -1, RGB(0, 0, 0)},
		{"alpha kept", Color{R: 255, G: 255, B: 255, A: 128}, 0.5, Color{R: 128, G: 128, B: 128, A: 128}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ApplyIntensity(tc.in, tc.factor); got != tc.want {
				t.Errorf("ApplyIntensity(%v, %v) = %v, want %v", tc.in, tc.factor, got, tc.want)
			}
		})
	}
}

func TestLightIntensity(t *testing.T) {
	l := NewLight(math3d.V3(0, 0, 2))
	if l.Direction != math3d.V3(0, 0, 1) {
		t.Errorf("direction not normalized: %v", l.Direction)
	}

	tests := []struct {
		name   string
		normal math3d.Vec3
		want   float64
	}{
		{"facing the light", math3d.V3(0, 0, -1), 1},
		{"perpendicular", math3d.V3(1, 0, 0), 0},
		{"facing away", math3d.V3(0, 0, 1), 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := l.Intensity(tc.normal); got != tc.want {
				t.Errorf("Intensity = %v, want %v", got, tc.want)
			}
		})
	}
}
