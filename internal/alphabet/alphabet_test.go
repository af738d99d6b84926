package alphabet

import "testing"

func TestIndexOfAndLetter(t *testing.T) {
	for i, r := range Letters {
		idx, err := IndexOf(r)
		if err != nil {
			t.Fatalf("IndexOf(%c) returned error: %v", r, err)
		}
		if idx != i {
			t.Fatalf("IndexOf(%c) = %d, want %d", r, idx, i)
		}
		if got := Letter(idx); got != r {
			t.Fatalf("Letter(%d) = %c, want %c", idx, got, r)
		}
	}
}

func TestIndexOfInvalid(t *testing.T) {
	for _, r := range []rune{'a', '0', ' ', '?', 'Ä'} {
		if _, err := IndexOf(r); err == nil {
			t.Fatalf("IndexOf(%c) should have failed", r)
		}
	}
}

func TestLetterWraps(t *testing.T) {
	if got := Letter(26); got != 'A' {
		t.Fatalf("Letter(26) = %c, want A", got)
	}
	if got := Letter(-1); got != 'Z' {
		t.Fatalf("Letter(-1) = %c, want Z", got)
	}
}

func TestStringRoundTrip(t *testing.T) {
	const s = "HELLOWORLD"
	indices, err := StringToIndices(s)
	if err != nil {
		t.Fatalf("StringToIndices: %v", err)
	}
	if got := IndicesToString(indices); got != s {
		t.Fatalf("round trip = %q, want %q", got, s)
	}
}

func TestValidateString(t *testing.T) {
	if err := ValidateString("ABCXYZ"); err != nil {
		t.Fatalf("ValidateString returned error for valid input: %v", err)
	}
	if err := ValidateString("AB1"); err == nil {
		t.Fatal("ValidateString should reject digits")
	}
}
