package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// SceneRenderer draws the static scene behind the particles: an environment
// cube seen from the inside and a textured ground plane.
type SceneRenderer struct {
	plane       rl.Model
	environment rl.Model

	planeSize       float32
	environmentSize float32

	// Toggled by the scene overlays
	ShowPlane       bool
	ShowEnvironment bool

	initialized bool
}

// NewSceneRenderer creates a scene renderer with the given extents in
// simulation units.
func NewSceneRenderer(planeSize, environmentSize float32) *SceneRenderer {
	return &SceneRenderer{
		planeSize:       planeSize,
		environmentSize: environmentSize,
		ShowPlane:       true,
		ShowEnvironment: true,
	}
}

// Init builds the meshes (must be called after raylib window is created).
func (r *SceneRenderer) Init(textures *TextureSet) {
	if r.initialized {
		return
	}

	r.plane = rl.LoadModelFromMesh(rl.GenMeshPlane(1, 1, 1, 1))
	r.plane.Materials.Maps.Texture = textures.Plane

	r.environment = rl.LoadModelFromMesh(rl.GenMeshCube(1, 1, 1))
	r.environment.Materials.Maps.Texture = textures.Environment

	r.initialized = true
}

// Draw renders the environment then the plane, scaled by the camera zoom.
// Must be called between BeginMode3D and EndMode3D.
func (r *SceneRenderer) Draw(zoom float32) {
	if !r.initialized {
		return
	}

	// The environment never occludes anything and is viewed from inside.
	if r.ShowEnvironment {
		rl.DisableDepthMask()
		rl.DisableBackfaceCulling()
		rl.DrawModel(r.environment, rl.NewVector3(0, 0, 0), r.environmentSize*zoom, rl.White)
		rl.EnableBackfaceCulling()
		rl.EnableDepthMask()
	}

	if r.ShowPlane {
		rl.DrawModel(r.plane, rl.NewVector3(0, 0, 0), r.planeSize*zoom, rl.White)
	}
}

// Unload frees resources. Textures are owned by the TextureSet.
func (r *SceneRenderer) Unload() {
	if !r.initialized {
		return
	}
	r.plane.Materials.Maps.Texture = rl.Texture2D{}
	r.environment.Materials.Maps.Texture = rl.Texture2D{}
	rl.UnloadModel(r.plane)
	rl.UnloadModel(r.environment)
	r.initialized = false
}
