package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/embers/camera"
)

// Camera3D builds the raylib camera for an orbit camera placed distance
// units from the origin.
func Camera3D(o *camera.Orbit, distance, fovy float32) rl.Camera3D {
	eye := o.Eye().Mul(distance)
	return rl.NewCamera3D(
		rl.NewVector3(eye[0], eye[1], eye[2]),
		rl.NewVector3(0, 0, 0),
		rl.NewVector3(0, 1, 0),
		fovy,
		rl.CameraPerspective,
	)
}

// toMatrix converts a column-major mgl32 matrix to raylib's layout.
func toMatrix(m mgl32.Mat4) rl.Matrix {
	return rl.Matrix{
		M0: m[0], M1: m[1], M2: m[2], M3: m[3],
		M4: m[4], M5: m[5], M6: m[6], M7: m[7],
		M8: m[8], M9: m[9], M10: m[10], M11: m[11],
		M12: m[12], M13: m[13], M14: m[14], M15: m[15],
	}
}
