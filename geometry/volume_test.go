package geometry

import (
	"math/rand"
	"testing"
)

func TestRandomInSphereStaysInside(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	const radius = 42.0

	for i := 0; i < 10000; i++ {
		p := RandomInSphere(rng, radius)
		if d := p.Length(); d > radius+1e-4 {
			t.Fatalf("point %d outside sphere: dist %v", i, d)
		}
	}
}

func TestRandomInSphereVolumeDistribution(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	const (
		radius  = 10.0
		samples = 20000
	)

	// For a uniform volume fill the expected radial coordinate is 3/4 R
	// and only 1/8 of points fall within R/2.
	var sum float64
	inner := 0
	for i := 0; i < samples; i++ {
		d := float64(RandomInSphere(rng, radius).Length())
		sum += d
		if d < radius/2 {
			inner++
		}
	}

	mean := sum / samples
	if mean < 7.3 || mean > 7.7 {
		t.Errorf("mean radius should be near 7.5, got %v", mean)
	}
	frac := float64(inner) / samples
	if frac < 0.10 || frac > 0.15 {
		t.Errorf("inner-half fraction should be near 0.125, got %v", frac)
	}
}

func TestRandomDirectionIsUnit(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 1000; i++ {
		l := RandomDirection(rng).Length()
		if l < 0.999 || l > 1.001 {
			t.Fatalf("direction %d not unit length: %v", i, l)
		}
	}
}
