package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestNew(t *testing.T) {
	cam := New(0.25, 75)

	if cam.AngleX != 0 || cam.AngleY != 0 {
		t.Errorf("expected zero angles, got (%f, %f)", cam.AngleX, cam.AngleY)
	}
	if cam.Zoom != 0.25 {
		t.Errorf("expected zoom 0.25, got %f", cam.Zoom)
	}
	if cam.MinPitch != -89.9 || cam.MaxPitch != 0 {
		t.Errorf("unexpected pitch limits [%f, %f]", cam.MinPitch, cam.MaxPitch)
	}
}

func TestEyeDefaultLooksFromPlusZ(t *testing.T) {
	cam := New(1, 50)

	eye := cam.Eye()
	if !eye.ApproxEqualThreshold(mgl32.Vec3{0, 0, 1}, 1e-5) {
		t.Errorf("expected eye (0, 0, 1), got %v", eye)
	}
}

func TestEyeRotations(t *testing.T) {
	testCases := []struct {
		name   string
		angleX float32
		angleY float32
		want   mgl32.Vec3
	}{
		{"yaw quarter turn", 90, 0, mgl32.Vec3{1, 0, 0}},
		{"yaw half turn", 180, 0, mgl32.Vec3{0, 0, -1}},
		{"negative pitch raises eye", 0, -45, mgl32.Vec3{0, float32(math.Sqrt2 / 2), float32(math.Sqrt2 / 2)}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cam := New(1, 50)
			cam.AngleX = tc.angleX
			cam.AngleY = tc.angleY

			eye := cam.Eye()
			if !eye.ApproxEqualThreshold(tc.want, 1e-5) {
				t.Errorf("expected eye %v, got %v", tc.want, eye)
			}
			if math.Abs(float64(eye.Len()-1)) > 1e-5 {
				t.Errorf("eye should stay on the unit sphere, |eye| = %f", eye.Len())
			}
		})
	}
}

func TestDragRotates(t *testing.T) {
	cam := New(1, 50)

	// First sample only anchors the drag
	cam.Drag(100, 100)
	if cam.AngleX != 0 || cam.AngleY != 0 {
		t.Fatalf("anchor frame rotated camera to (%f, %f)", cam.AngleX, cam.AngleY)
	}

	cam.Drag(140, 120)
	if cam.AngleX != -10 {
		t.Errorf("expected yaw -10, got %f", cam.AngleX)
	}
	if cam.AngleY != -5 {
		t.Errorf("expected pitch -5, got %f", cam.AngleY)
	}

	cam.Release()
	if cam.Dragging() {
		t.Error("expected drag to end after Release")
	}

	// A new drag re-anchors instead of jumping
	cam.Drag(0, 0)
	if cam.AngleX != -10 || cam.AngleY != -5 {
		t.Errorf("re-anchor moved camera to (%f, %f)", cam.AngleX, cam.AngleY)
	}
}

func TestPitchClamp(t *testing.T) {
	cam := New(1, 50)

	cam.Drag(0, 0)
	cam.Drag(0, 1000) // 250 degrees down
	if cam.AngleY != cam.MinPitch {
		t.Errorf("expected pitch clamped to %f, got %f", cam.MinPitch, cam.AngleY)
	}

	cam.Drag(0, -1000)
	if cam.AngleY != cam.MaxPitch {
		t.Errorf("expected pitch clamped to %f, got %f", cam.MaxPitch, cam.AngleY)
	}
}

func TestScrollZoom(t *testing.T) {
	cam := New(0.25, 50)

	cam.Scroll(20)
	if math.Abs(float64(cam.Zoom-0.35)) > 1e-6 {
		t.Errorf("expected zoom 0.35, got %f", cam.Zoom)
	}

	cam.Scroll(-1000)
	if cam.Zoom != 0 {
		t.Errorf("expected zoom clamped to 0, got %f", cam.Zoom)
	}

	cam.ZoomSensitivity = 0
	cam.Scroll(50)
	if cam.Zoom != 0 {
		t.Errorf("zero sensitivity should ignore the wheel, got %f", cam.Zoom)
	}
}

func TestModelMapsRiseToWorldUp(t *testing.T) {
	cam := New(2, 50)

	p := cam.ToWorld(mgl32.Vec3{0, 0, 1})
	if !p.ApproxEqualThreshold(mgl32.Vec3{0, 2, 0}, 1e-5) {
		t.Errorf("expected sim +Z to map to (0, 2, 0), got %v", p)
	}

	p = cam.ToWorld(mgl32.Vec3{1, 0, 0})
	if !p.ApproxEqualThreshold(mgl32.Vec3{2, 0, 0}, 1e-5) {
		t.Errorf("expected sim +X to map to (2, 0, 0), got %v", p)
	}
}

func TestReset(t *testing.T) {
	cam := New(1, 50)
	cam.AngleX = 30
	cam.AngleY = -40
	cam.Drag(5, 5)

	cam.Reset()

	if cam.AngleX != 0 || cam.AngleY != 0 {
		t.Errorf("expected zero angles, got (%f, %f)", cam.AngleX, cam.AngleY)
	}
	if cam.Dragging() {
		t.Error("expected drag cleared by Reset")
	}
}
