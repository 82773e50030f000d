package core

import (
	"math"
	"math/rand"
)

// Sampler provides random sampling for rendering algorithms
// Can be swapped out for deterministic testing or different sampling patterns
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
	Get3D() Vec3
}

// RandomSampler wraps a standard Go random generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// NewSeededSampler creates a sampler with its own deterministic stream
func NewSeededSampler(seed int64) *RandomSampler {
	return NewRandomSampler(rand.New(rand.NewSource(seed)))
}

// Reseed restarts the stream from the given seed
func (r *RandomSampler) Reseed(seed int64) {
	r.random.Seed(seed)
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	return NewVec2(r.random.Float64(), r.random.Float64())
}

// Get3D returns three random float64 values in [0, 1)
func (r *RandomSampler) Get3D() Vec3 {
	return NewVec3(r.random.Float64(), r.random.Float64(), r.random.Float64())
}

// SeedFor derives the seed of the stream owned by one unit of parallel work
// (a tile or a pixel). Neighbouring indices get well separated seeds.
func SeedFor(base int64, index int) int64 {
	z := uint64(base) + uint64(index+1)*0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	z ^= z >> 31
	return int64(z & math.MaxInt64)
}

// Warping functions. Every generator maps a uniform sample from [0,1)² onto
// its domain and is paired with the pdf of the density it induces. Directions
// are unit vectors in a local frame whose pole is +z.

// SampleUniformSphere generates a uniform random direction on the unit sphere
func SampleUniformSphere(sample Vec2) Vec3 {
	z := 1.0 - 2.0*sample.X // z ∈ [-1, 1]
	r := math.Sqrt(math.Max(0, 1.0-z*z))
	phi := 2.0 * math.Pi * sample.Y
	return NewVec3(r*math.Cos(phi), r*math.Sin(phi), z)
}

// UniformSpherePDF is the solid angle density of SampleUniformSphere
func UniformSpherePDF() float64 {
	return 1.0 / (4.0 * math.Pi)
}

// SampleUniformHemisphere generates a uniform direction on the +z hemisphere
func SampleUniformHemisphere(sample Vec2) Vec3 {
	z := sample.X
	r := math.Sqrt(math.Max(0, 1.0-z*z))
	phi := 2.0 * math.Pi * sample.Y
	return NewVec3(r*math.Cos(phi), r*math.Sin(phi), z)
}

// UniformHemispherePDF is the solid angle density of SampleUniformHemisphere
func UniformHemispherePDF(v Vec3) float64 {
	if v.Z < 0 {
		return 0
	}
	return 1.0 / (2.0 * math.Pi)
}

// SampleConcentricDisk maps a sample to a point in the unit disk using the
// concentric mapping, which avoids rejection sampling and keeps strata compact
func SampleConcentricDisk(sample Vec2) Vec2 {
	// Map sample to [-1,1]² and handle degeneracy at the origin
	uOffset := NewVec2(2*sample.X-1, 2*sample.Y-1)
	if uOffset.X == 0 && uOffset.Y == 0 {
		return Vec2{}
	}

	var theta, r float64
	if math.Abs(uOffset.X) > math.Abs(uOffset.Y) {
		r = uOffset.X
		theta = math.Pi / 4 * (uOffset.Y / uOffset.X)
	} else {
		r = uOffset.Y
		theta = math.Pi/2 - math.Pi/4*(uOffset.X/uOffset.Y)
	}

	return NewVec2(r*math.Cos(theta), r*math.Sin(theta))
}

// ConcentricDiskPDF is the area density of SampleConcentricDisk
func ConcentricDiskPDF(p Vec2) float64 {
	if p.X*p.X+p.Y*p.Y > 1 {
		return 0
	}
	return 1.0 / math.Pi
}

// SampleCosineHemisphere lifts a concentric disk sample onto the +z hemisphere,
// giving directions distributed proportionally to cos(θ)
func SampleCosineHemisphere(sample Vec2) Vec3 {
	d := SampleConcentricDisk(sample)
	z := math.Sqrt(math.Max(0, 1.0-d.X*d.X-d.Y*d.Y))
	return NewVec3(d.X, d.Y, z)
}

// CosineHemispherePDF is the solid angle density of SampleCosineHemisphere
func CosineHemispherePDF(v Vec3) float64 {
	if v.Z <= 0 {
		return 0
	}
	return v.Z / math.Pi
}

// SamplePhongLobe draws a direction around +z with density proportional to cos^n(θ)
func SamplePhongLobe(sample Vec2, exponent float64) Vec3 {
	cosTheta := math.Pow(sample.X, 1.0/(exponent+1.0))
	sinTheta := math.Sqrt(math.Max(0, 1.0-cosTheta*cosTheta))
	phi := 2.0 * math.Pi * sample.Y
	return NewVec3(sinTheta*math.Cos(phi), sinTheta*math.Sin(phi), cosTheta)
}

// PhongLobePDF is the solid angle density of SamplePhongLobe
func PhongLobePDF(v Vec3, exponent float64) float64 {
	if v.Z <= 0 {
		return 0
	}
	return (exponent + 1.0) / (2.0 * math.Pi) * math.Pow(v.Z, exponent)
}

// SampleUniformTriangle returns barycentric coordinates (b1, b2) of a point
// distributed uniformly over a triangle; the point is v0*(1-b1-b2) + v1*b1 + v2*b2
func SampleUniformTriangle(sample Vec2) Vec2 {
	u := math.Sqrt(1.0 - sample.X)
	return NewVec2(1.0-u, u*sample.Y)
}

// UniformTrianglePDF is the density of SampleUniformTriangle over the
// barycentric domain, whose area is 1/2. Divide by the face area relative to
// that domain to get an area-measure density on a concrete triangle.
func UniformTrianglePDF() float64 {
	return 2.0
}

// SampleUniformCone draws a direction uniformly inside the cone around +z
// whose half-angle has cosine cosThetaMax
func SampleUniformCone(sample Vec2, cosThetaMax float64) Vec3 {
	cosTheta := (1.0 - sample.X) + sample.X*cosThetaMax
	sinTheta := math.Sqrt(math.Max(0, 1.0-cosTheta*cosTheta))
	phi := 2.0 * math.Pi * sample.Y
	return NewVec3(sinTheta*math.Cos(phi), sinTheta*math.Sin(phi), cosTheta)
}

// UniformConePDF is the solid angle density of SampleUniformCone
func UniformConePDF(cosThetaMax float64) float64 {
	return 1.0 / (2.0 * math.Pi * (1.0 - cosThetaMax))
}
