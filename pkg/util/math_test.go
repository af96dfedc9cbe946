package util

import "testing"

func TestRound2(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{10.004, 10.00},
		{10.006, 10.01},
		{-3.456, -3.46},
		{5.5, 5.5},
	}
	for _, c := range cases {
		if got := Round2(c.in); got != c.want {
			t.Errorf("Round2(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestComma(t *testing.T) {
	cases := map[int64]string{
		0:        "0",
		800:      "800",
		1500:     "1,500",
		800000:   "800,000",
		1500000:  "1,500,000",
		-1234567: "-1,234,567",
	}
	for in, want := range cases {
		if got := Comma(in); got != want {
			t.Errorf("Comma(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestParseClock(t *testing.T) {
	m, err := ParseClock("09:30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m != 9*60+30 {
		t.Fatalf("unexpected minutes %d", m)
	}
	if _, err := ParseClock("25:99"); err == nil {
		t.Fatalf("expected error for invalid clock")
	}
}
