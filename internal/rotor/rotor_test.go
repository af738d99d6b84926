package rotor

import (
	"testing"

	"github.com/coredds/enigma-breaker/internal/alphabet"
)

func TestNewRejectsUnknownKind(t *testing.T) {
	if _, err := New(Kind("VI"), 0, 0); err == nil {
		t.Fatal("expected error for unsupported rotor kind")
	}
}

func TestMovableAndThin(t *testing.T) {
	for _, k := range []Kind{I, II, III, IV, V} {
		if !Movable(k) {
			t.Errorf("%s should be movable", k)
		}
		if Thin(k) {
			t.Errorf("%s should not be thin", k)
		}
	}
	for _, k := range []Kind{Beta, Gamma} {
		if Movable(k) {
			t.Errorf("%s should not be movable", k)
		}
		if !Thin(k) {
			t.Errorf("%s should be thin", k)
		}
	}
}

func TestRingSettingShiftsNotch(t *testing.T) {
	// Rotor I has its notch at Q (index 16). With ring setting 0, the
	// notch fires at position 16.
	r, err := New(I, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if r.notchPos != alphabet.MustIndexOf('Q') {
		t.Fatalf("notchPos = %d, want %d", r.notchPos, alphabet.MustIndexOf('Q'))
	}

	r2, err := New(I, 0, 5)
	if err != nil {
		t.Fatal(err)
	}
	want := alphabet.Mod(alphabet.MustIndexOf('Q') - 5)
	if r2.notchPos != want {
		t.Fatalf("notchPos with ring offset = %d, want %d", r2.notchPos, want)
	}
}

// TestDoubleStepSequence checks the historical double-step anomaly:
// rotors III-II-I (fastest right) starting at positions A-D-Q produce
// A-D-R, A-D-S, A-D-T, A-E-U, B-F-V over five keystrokes.
func TestDoubleStepSequence(t *testing.T) {
	r0, _ := New(I, alphabet.MustIndexOf('Q'), 0)   // rightmost, notch Q
	r1, _ := New(II, alphabet.MustIndexOf('D'), 0)  // middle, notch E
	r2, _ := New(III, alphabet.MustIndexOf('A'), 0) // left, notch V

	step := func() {
		r0WasAtNotch := r0.Step()
		if r0WasAtNotch || r1.IsAtNotch() {
			r1WasAtNotch := r1.Step()
			if r1WasAtNotch {
				r2.Step()
			}
		}
	}

	want := []struct{ a, d, q rune }{
		{'A', 'D', 'R'},
		{'A', 'D', 'S'},
		{'A', 'D', 'T'},
		{'A', 'E', 'U'},
		{'B', 'F', 'V'},
	}

	for i, w := range want {
		step()
		gotLeft := alphabet.Letter(r2.Position())
		gotMid := alphabet.Letter(r1.Position())
		gotRight := alphabet.Letter(r0.Position())
		if gotLeft != w.a || gotMid != w.d || gotRight != w.q {
			t.Fatalf("keystroke %d: got (%c,%c,%c), want (%c,%c,%c)",
				i+1, gotLeft, gotMid, gotRight, w.a, w.d, w.q)
		}
	}
}

func TestForwardBackwardAreInverses(t *testing.T) {
	r, err := New(I, 3, 7)
	if err != nil {
		t.Fatal(err)
	}
	for c := 0; c < alphabet.Size; c++ {
		fwd := r.Forward(c, 0)
		// Forward's output is relative to this rotor's own position, so
		// Backward is given that position as its left neighbour's and
		// returns the pin Forward entered on.
		back := r.Backward(fwd, r.Position())
		want := alphabet.Mod(c + r.Position())
		if back != want {
			t.Fatalf("Backward(Forward(%d)) = %d, want %d", c, back, want)
		}
	}
}

func TestCloneIsIndependent(t *testing.T) {
	r, _ := New(I, 0, 0)
	clone := r.Clone()
	clone.Step()
	if r.Position() == clone.Position() {
		t.Fatal("stepping the clone should not affect the original")
	}
}
