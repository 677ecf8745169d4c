package utils

import "testing"

func TestToCents(t *testing.T) {
	cases := []struct {
		amount float64
		want   int64
	}{
		{0, 0},
		{57.00, 5700},
		{19.99, 1999},
		{0.1, 10},
		{10.004, 1000},
		{10.005, 1001}, // tie rounds away from zero
		{-10.005, -1001},
		{19.995, 2000},
		{-3.50, -350},
	}
	for _, c := range cases {
		if got := ToCents(c.amount); got != c.want {
			t.Errorf("ToCents(%v) = %d, want %d", c.amount, got, c.want)
		}
	}
}
