// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package lin

import "testing"

func TestAeqZ(t *testing.T) {
	if !AeqZ(0.0000001) {
		t.Error("expected AeqZ to treat tiny values as zero")
	}
	if AeqZ(0.1) {
		t.Error("expected AeqZ to reject 0.1")
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(5, 0, 1); got != 1 {
		t.Errorf("expected clamp to upper bound 1, got %f", got)
	}
	if got := Clamp(-5, 0, 1); got != 0 {
		t.Errorf("expected clamp to lower bound 0, got %f", got)
	}
	if got := Clamp(0.5, 0, 1); got != 0.5 {
		t.Errorf("expected clamp to pass through 0.5, got %f", got)
	}
}

func TestNang(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{0, 0},
		{PIx2, 0},
		{-PI, PI},
		{PIx2 + 0.5, 0.5},
		{-0.5, PIx2 - 0.5},
	}
	for _, c := range cases {
		if got := Nang(c.in); !Aeq(got, c.want) {
			t.Errorf("Nang(%f) = %f, want %f", c.in, got, c.want)
		}
	}
}
