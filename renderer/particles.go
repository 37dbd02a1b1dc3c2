package renderer

import (
	_ "embed"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/embers/renderer/surface"
)

//go:embed shaders/particle.vs
var particleVS string

//go:embed shaders/particle.fs
var particleFS string

// ParticleSurface draws particle billboards through the particle shader.
// It implements surface.Surface.
//
// Every uniform value is cached. Values the shader declares are also
// uploaded; the rest (model, position, size, texture) are consumed on the CPU
// when the billboard is built. Integer uniforms select a registered texture
// by handle.
type ParticleSurface struct {
	shader rl.Shader
	locs   map[string]int32

	floats map[string]float32
	ints   map[string]int32
	vec3s  map[string]mgl32.Vec3
	mat4s  map[string]mgl32.Mat4

	textures map[uint32]rl.Texture2D
	camera   rl.Camera3D

	initialized bool
}

var _ surface.Surface = (*ParticleSurface)(nil)

// NewParticleSurface creates a particle surface. Init must run after the
// window exists.
func NewParticleSurface() *ParticleSurface {
	return &ParticleSurface{
		locs:     make(map[string]int32),
		floats:   make(map[string]float32),
		ints:     make(map[string]int32),
		vec3s:    make(map[string]mgl32.Vec3),
		mat4s:    make(map[string]mgl32.Mat4),
		textures: make(map[uint32]rl.Texture2D),
	}
}

// Init compiles the shader (must be called after raylib window is created).
func (s *ParticleSurface) Init() {
	if s.initialized {
		return
	}
	s.shader = rl.LoadShaderFromMemory(particleVS, particleFS)
	s.initialized = true
}

// RegisterTexture makes a texture selectable through the particle_texture uniform.
func (s *ParticleSurface) RegisterTexture(tex rl.Texture2D) {
	s.textures[tex.ID] = tex
}

// SetCamera sets the view the billboards face.
func (s *ParticleSurface) SetCamera(cam rl.Camera3D) {
	s.camera = cam
}

// loc returns the cached uniform location, -1 when the shader lacks it.
func (s *ParticleSurface) loc(name string) int32 {
	if l, ok := s.locs[name]; ok {
		return l
	}
	l := rl.GetShaderLocation(s.shader, name)
	s.locs[name] = l
	return l
}

// Use activates the particle shader.
func (s *ParticleSurface) Use() {
	if !s.initialized {
		s.Init()
	}
	rl.BeginShaderMode(s.shader)
}

func (s *ParticleSurface) SetFloat(name string, v float32) {
	s.floats[name] = v
	if l := s.loc(name); l >= 0 {
		rl.SetShaderValue(s.shader, l, []float32{v}, rl.ShaderUniformFloat)
	}
}

func (s *ParticleSurface) SetInt(name string, v int32) {
	s.ints[name] = v
}

func (s *ParticleSurface) SetVec3(name string, v mgl32.Vec3) {
	s.vec3s[name] = v
	if l := s.loc(name); l >= 0 {
		rl.SetShaderValue(s.shader, l, v[:], rl.ShaderUniformVec3)
	}
}

func (s *ParticleSurface) SetMat4(name string, m mgl32.Mat4) {
	s.mat4s[name] = m
	if l := s.loc(name); l >= 0 {
		rl.SetShaderValueMatrix(s.shader, l, toMatrix(m))
	}
}

// BeginParticlePass flushes pending opaque geometry, then draws with depth
// testing off and alpha blending on.
func (s *ParticleSurface) BeginParticlePass() {
	rl.DrawRenderBatchActive()
	rl.DisableDepthTest()
	rl.BeginBlendMode(rl.BlendAlpha)
}

// DrawQuad draws one billboard with the current uniforms. The batch is
// flushed right away so the next uniform change cannot leak into this quad.
func (s *ParticleSurface) DrawQuad() {
	tex, ok := s.textures[uint32(s.ints[surface.UniformParticleTexture])]
	if !ok {
		return
	}

	model, ok := s.mat4s[surface.UniformModel]
	if !ok {
		model = mgl32.Ident4()
	}
	world := model.Mul4x1(s.vec3s[surface.UniformPosition].Vec4(1)).Vec3()
	size := s.floats[surface.UniformParticleSize] * s.floats[surface.UniformParticleScale] * 2

	rl.DrawBillboard(s.camera, tex, rl.NewVector3(world[0], world[1], world[2]), size, rl.White)
	rl.DrawRenderBatchActive()
}

// EndParticlePass restores depth testing and the default blend mode.
func (s *ParticleSurface) EndParticlePass() {
	rl.EndBlendMode()
	rl.EnableDepthTest()
	rl.EndShaderMode()
}

// Unload frees resources.
func (s *ParticleSurface) Unload() {
	if s.initialized {
		rl.UnloadShader(s.shader)
		s.initialized = false
	}
}
