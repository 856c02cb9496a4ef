package rng

import "testing"

func TestDeterministicGivenSeed(t *testing.T) {
	a := New(42)
	b := New(42)
	for i := 0; i < 10; i++ {
		if a.Uniform01() != b.Uniform01() {
			t.Fatalf("expected identical sequences from identical seeds")
		}
	}
}

func TestUniformRangeBounds(t *testing.T) {
	s := New(1)
	for i := 0; i < 1000; i++ {
		v := s.UniformRange(-5, 5)
		if v < -5 || v >= 5 {
			t.Fatalf("sample %v out of range", v)
		}
	}
}

func TestDefaultIsUsable(t *testing.T) {
	d := Default()
	if d == nil {
		t.Fatalf("expected non-nil default source")
	}
	_ = d.Uniform01()
	_ = d.Normal()
}
