// Package camera provides an orbit camera that circles the scene origin.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Orbit holds the view state driven by mouse drag and wheel input.
// Angles are in degrees.
type Orbit struct {
	// Yaw around the world Y axis
	AngleX float32

	// Pitch around the camera's horizontal axis, kept within [MinPitch, MaxPitch]
	AngleY float32

	// Uniform scene scale; 0 collapses the scene to the origin
	Zoom float32

	// Wheel sensitivity in percent (0-100)
	ZoomSensitivity int32

	// Degrees of rotation per pixel of drag
	RotateSensitivity float32

	// Pitch constraints
	MinPitch, MaxPitch float32

	// Drag tracking
	dragging     bool
	prevX, prevY float32
}

// New creates an orbit camera looking at the origin from +Z.
func New(zoom float32, zoomSensitivity int32) *Orbit {
	return &Orbit{
		Zoom:              zoom,
		ZoomSensitivity:   zoomSensitivity,
		RotateSensitivity: 0.25,
		MinPitch:          -89.9,
		MaxPitch:          0,
	}
}

// Drag feeds the pointer position for one frame while the rotate button is
// held. The first frame of a drag only records the anchor.
func (o *Orbit) Drag(x, y float32) {
	if !o.dragging {
		o.dragging = true
		o.prevX, o.prevY = x, y
		return
	}

	dx := x - o.prevX
	dy := y - o.prevY
	o.prevX, o.prevY = x, y

	o.AngleX -= dx * o.RotateSensitivity
	o.AngleY = clamp(o.AngleY-dy*o.RotateSensitivity, o.MinPitch, o.MaxPitch)
}

// Release ends the current drag.
func (o *Orbit) Release() {
	o.dragging = false
}

// Dragging reports whether a drag is in progress.
func (o *Orbit) Dragging() bool {
	return o.dragging
}

// Scroll applies a mouse wheel delta to the zoom.
func (o *Orbit) Scroll(wheel float32) {
	o.Zoom += wheel * float32(o.ZoomSensitivity) / 10000
	if o.Zoom < 0 {
		o.Zoom = 0
	}
}

// Eye returns the camera position on the unit sphere around the origin.
// The +Z unit vector is yawed about Y, then pitched about the yawed X axis.
func (o *Orbit) Eye() mgl32.Vec3 {
	yaw := mgl32.HomogRotate3DY(mgl32.DegToRad(o.AngleX))
	eye := yaw.Mul4x1(mgl32.Vec4{0, 0, 1, 1})
	axis := yaw.Mul4x1(mgl32.Vec4{1, 0, 0, 1}).Vec3()
	pitch := mgl32.HomogRotate3D(mgl32.DegToRad(o.AngleY), axis)
	return pitch.Mul4x1(eye).Vec3()
}

// View returns the look-at matrix from Eye toward the origin.
func (o *Orbit) View() mgl32.Mat4 {
	return mgl32.LookAtV(o.Eye(), mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 1, 0})
}

// Model returns the scene transform: uniform zoom, then a quarter turn that
// maps the simulation's +Z (particle rise) onto world +Y.
func (o *Orbit) Model() mgl32.Mat4 {
	return mgl32.Scale3D(o.Zoom, o.Zoom, o.Zoom).Mul4(mgl32.HomogRotate3DX(-math.Pi / 2))
}

// ToWorld maps a point in simulation space to world space.
func (o *Orbit) ToWorld(p mgl32.Vec3) mgl32.Vec3 {
	return o.Model().Mul4x1(p.Vec4(1)).Vec3()
}

// Reset returns the camera to its initial angles.
func (o *Orbit) Reset() {
	o.AngleX = 0
	o.AngleY = 0
	o.dragging = false
}

// clamp restricts a value to a range.
func clamp(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
