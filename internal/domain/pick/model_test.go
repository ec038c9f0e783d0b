package pick

import "testing"

func TestLocked(t *testing.T) {
	cases := []struct {
		name    string
		started bool
		hasPick bool
		want    bool
	}{
		{"started with a pick", true, true, true},
		{"started without a pick", true, false, false},
		{"not started with a pick", false, true, false},
		{"not started without a pick", false, false, false},
	}

	for _, tc := range cases {
		if got := Locked(tc.started, tc.hasPick); got != tc.want {
			t.Fatalf("%s: Locked=%t, want %t", tc.name, got, tc.want)
		}
		// ChangesDisabled is behaviourally the same gate.
		if got := ChangesDisabled(tc.started, tc.hasPick); got != tc.want {
			t.Fatalf("%s: ChangesDisabled=%t, want %t", tc.name, got, tc.want)
		}
	}
}

func TestFirstPickAllowed(t *testing.T) {
	if !FirstPickAllowed(true, false) {
		t.Fatal("late joiner without a pick should keep the first-pick window")
	}
	if FirstPickAllowed(true, true) {
		t.Fatal("existing pick closes the first-pick window")
	}
	if FirstPickAllowed(false, false) {
		t.Fatal("first-pick carve-out only applies once the gameweek starts")
	}
}
