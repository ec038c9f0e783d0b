package league

import "testing"

func TestGameweekStarted(t *testing.T) {
	cases := []struct {
		name     string
		pickWeek int
		gameWeek int
		want     bool
	}{
		{"matching positive pointers", 5, 5, true},
		{"zero pointers never count", 0, 0, false},
		{"pick week behind game week", 5, 6, false},
		{"pick week ahead of game week", 6, 5, false},
		{"first week started", 1, 1, true},
	}

	for _, tc := range cases {
		l := League{CurrentPickWeek: tc.pickWeek, CurrentGameWeek: tc.gameWeek}
		if got := l.GameweekStarted(); got != tc.want {
			t.Fatalf("%s: pick=%d game=%d → %t, want %t", tc.name, tc.pickWeek, tc.gameWeek, got, tc.want)
		}
	}
}

func TestLeagueValidate(t *testing.T) {
	valid := League{
		ID:            "lg-1",
		CompetitionID: "epl-2025",
		Name:          "Office Pool",
		OwnerUserID:   "user-1",
		MaxStrikes:    2,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid league rejected: %v", err)
	}

	broken := valid
	broken.MaxStrikes = 0
	if err := broken.Validate(); err == nil {
		t.Fatal("expected max strikes validation to fail")
	}

	broken = valid
	broken.CurrentGameWeek = -1
	if err := broken.Validate(); err == nil {
		t.Fatal("expected negative week pointer to fail")
	}
}
