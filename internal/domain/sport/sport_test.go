package sport

import "testing"

func TestNormalize(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want Sport
		ok   bool
	}{
		{"soccer", Soccer, true},
		{"Football", Soccer, true},
		{"BASKETBALL", Basketball, true},
		{"nba", Basketball, true},
		{"ice hockey", IceHockey, true},
		{"ice-hockey", IceHockey, true},
		{"hockey", IceHockey, true},
		{"handball", Handball, true},
		{"cricket", "", false},
		{"", "", false},
	}

	for _, tc := range cases {
		got, ok := Normalize(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Errorf("Normalize(%q) = (%q, %v), want (%q, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestHasDraw(t *testing.T) {
	t.Parallel()

	if !Soccer.HasDraw() || !Handball.HasDraw() {
		t.Error("soccer and handball allow regulation draws")
	}
	if Basketball.HasDraw() || IceHockey.HasDraw() {
		t.Error("basketball and ice hockey do not allow regulation draws")
	}
}

func TestDisplay(t *testing.T) {
	t.Parallel()

	if got := IceHockey.Display(); got != "ice hockey" {
		t.Errorf("Display() = %q", got)
	}
	if got := Soccer.Display(); got != "soccer" {
		t.Errorf("Display() = %q", got)
	}
}
