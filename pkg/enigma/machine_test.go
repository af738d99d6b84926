package enigma

import (
	"testing"

	"github.com/coredds/enigma-breaker/internal/reflector"
	"github.com/coredds/enigma-breaker/pkg/config"
)

func build(t *testing.T, s string) *Machine {
	t.Helper()
	cfg, err := config.Parse(s)
	if err != nil {
		t.Fatalf("config.Parse(%q): %v", s, err)
	}
	m, err := Build(cfg)
	if err != nil {
		t.Fatalf("Build(%q): %v", s, err)
	}
	return m
}

// TestScenario1 is a mandatory end-to-end scenario: 3-rotor encode.
func TestScenario1(t *testing.T) {
	m := build(t, "B III-II-I 1-1-1 A-A-Z HL-MO-AJ-CX-BZ-SR-NI-YW-DG-PK")
	got, err := m.EncodeString("HELLOWORLD")
	if err != nil {
		t.Fatal(err)
	}
	if got != "RFKTMBXVVW" {
		t.Fatalf("got %q, want RFKTMBXVVW", got)
	}
}

// TestScenario2 is a mandatory end-to-end scenario: 4-rotor naval encode.
func TestScenario2(t *testing.T) {
	m := build(t, "A IV-V-Beta-I 18-24-3-5 E-Z-G-P PC-XZ-FM-QA-ST-NB-HY-OR-EV-IU")
	const cipher = "BUPXWJCDPFASXBDHLBBIBSRNWCSZXQOLBNXYAXVHOGCUUIBCVMPUZYUUKHI"
	const want = "CONGRATULATIONSONPRODUCINGYOURWORKINGENIGMAMACHINESIMULATOR"
	got, err := m.EncodeString(cipher)
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestEncodeDecodeSymmetric(t *testing.T) {
	m1 := build(t, "B III-II-I 1-1-1 A-A-Z HL-MO-AJ-CX-BZ-SR-NI-YW-DG-PK")
	enc, err := m1.EncodeString("HELLOWORLD")
	if err != nil {
		t.Fatal(err)
	}

	m2 := build(t, "B III-II-I 1-1-1 A-A-Z HL-MO-AJ-CX-BZ-SR-NI-YW-DG-PK")
	dec, err := m2.EncodeString(enc)
	if err != nil {
		t.Fatal(err)
	}
	if dec != "HELLOWORLD" {
		t.Fatalf("decrypted %q, want HELLOWORLD", dec)
	}
}

// TestNoFixedPoints checks that encode(x) != x over 26 consecutive
// keystrokes, typing each letter of the alphabet once in order.
func TestNoFixedPoints(t *testing.T) {
	m := build(t, "B III-II-I 1-1-1 A-A-A")
	for i, r := range "ABCDEFGHIJKLMNOPQRSTUVWXYZ" {
		enc, err := m.EncodeChar(r)
		if err != nil {
			t.Fatal(err)
		}
		if enc == r {
			t.Fatalf("keystroke %d: %c encoded to itself", i, r)
		}
	}
}

func TestAdvanceMatchesStepping(t *testing.T) {
	m1 := build(t, "B III-II-I 1-1-1 A-D-Q")
	m1.Advance(5)

	m2 := build(t, "B III-II-I 1-1-1 A-D-Q")
	for i := 0; i < 5; i++ {
		if _, err := m2.EncodeChar('A'); err != nil {
			t.Fatal(err)
		}
	}

	p1 := m1.RotorPositions()
	p2 := m2.RotorPositions()
	for i := range p1 {
		if p1[i] != p2[i] {
			t.Fatalf("Advance and stepwise EncodeChar diverged at rotor %d: %c vs %c", i, p1[i], p2[i])
		}
	}
}

func TestOverrideReflectorWiringKeepsKind(t *testing.T) {
	m := build(t, "B V-II-IV 6-18-7 A-J-L UG-IE-PO-NX-WT")
	if err := m.OverrideReflectorWiring("PQUHRSLDYXNGOKMABEFZCWVJIT"); err != nil {
		t.Fatal(err)
	}
	if m.ReflectorWiring() != "PQUHRSLDYXNGOKMABEFZCWVJIT" {
		t.Fatalf("ReflectorWiring() = %s", m.ReflectorWiring())
	}
	if m.reflector.Kind() != reflector.B {
		t.Fatalf("reflector kind = %s, want B", m.reflector.Kind())
	}
}

func TestInvalidConfigurationRejected(t *testing.T) {
	if _, err := config.Parse("B III-II-I 1-1-1 A-A-A KK"); err == nil {
		t.Fatal("expected validation error for self-pair plug KK")
	}
}
