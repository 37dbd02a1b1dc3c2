// Package surface defines the shader abstraction particles are drawn through
// and the particle pass built on it.
package surface

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/embers/systems"
)

// Uniform names shared by the particle shader and its callers.
const (
	UniformModel           = "model"
	UniformParticleScale   = "particle_scale"
	UniformParticleSize    = "particle_size"
	UniformColor           = "color"
	UniformPosition        = "position"
	UniformParticleTexture = "particle_texture"
	UniformAlpha           = "alpha"
)

// Surface is a shader program that draws one textured quad per call.
// Implementations remember the last value set for every uniform and a draw
// uses those values.
type Surface interface {
	Use()
	SetFloat(name string, v float32)
	SetInt(name string, v int32)
	SetVec3(name string, v mgl32.Vec3)
	SetMat4(name string, m mgl32.Mat4)

	// BeginParticlePass disables depth testing and enables alpha blending.
	// EndParticlePass restores both.
	BeginParticlePass()
	DrawQuad()
	EndParticlePass()
}

// Pass holds the uniforms shared by every particle of one pool.
type Pass struct {
	Model mgl32.Mat4 // Simulation to world transform
	Scale float32    // Camera zoom
	Size  float32    // Billboard half-size before zoom
}

// DrawParticles draws every live particle of the pool as a quad and returns
// how many were drawn. Per-particle uniforms are set before each draw.
func DrawParticles(s Surface, pool *systems.ParticlePool, pass Pass) int {
	var texture int32
	if tex := pool.Textures(); len(tex) > 0 {
		texture = int32(tex[0])
	}

	s.Use()
	s.SetMat4(UniformModel, pass.Model)
	s.SetFloat(UniformParticleScale, pass.Scale)
	s.SetFloat(UniformParticleSize, pass.Size)

	s.BeginParticlePass()
	drawn := 0
	particles := pool.Particles()
	for i := range particles {
		p := &particles[i]
		if !p.Alive() {
			continue
		}
		s.SetVec3(UniformColor, p.Color)
		s.SetVec3(UniformPosition, p.Position)
		s.SetInt(UniformParticleTexture, texture)
		s.SetFloat(UniformAlpha, p.Alpha)
		s.DrawQuad()
		drawn++
	}
	s.EndParticlePass()
	return drawn
}
