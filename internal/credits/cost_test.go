package credits

import (
	"errors"
	"testing"
)

func TestCostScalesWithContentLength(t *testing.T) {
	cases := []struct {
		name    string
		tier    string
		length  int
		want    int
		wantErr error
	}{
		{name: "basic zero length", tier: "basic", length: 0, want: 1},
		{name: "basic below one unit", tier: "basic", length: 1999, want: 1},
		{name: "basic exactly one unit", tier: "basic", length: 2000, want: 1},
		{name: "basic just over one unit", tier: "basic", length: 2001, want: 2},
		{name: "basic three units", tier: "basic", length: 6000, want: 3},
		{name: "pro zero length", tier: "pro", length: 0, want: 3},
		{name: "pro two units", tier: "pro", length: 4000, want: 6},
		{name: "negative length", tier: "basic", length: -1, wantErr: ErrInvalidLength},
		{name: "unknown tier", tier: "platinum", length: 100, wantErr: ErrUnknownTier},
		{name: "empty tier", tier: "", length: 100, wantErr: ErrUnknownTier},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Cost(tc.tier, tc.length)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("Cost(%q, %d) err = %v, want %v", tc.tier, tc.length, err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Cost(%q, %d): %v", tc.tier, tc.length, err)
			}
			if got != tc.want {
				t.Fatalf("Cost(%q, %d) = %d, want %d", tc.tier, tc.length, got, tc.want)
			}
		})
	}
}

func TestCostNeverBelowBase(t *testing.T) {
	for _, tier := range []string{"basic", "pro"} {
		base, err := Cost(tier, 0)
		if err != nil {
			t.Fatalf("Cost(%q, 0): %v", tier, err)
		}
		for _, length := range []int{0, 1, 500, 1999, 2000} {
			got, err := Cost(tier, length)
			if err != nil {
				t.Fatalf("Cost(%q, %d): %v", tier, length, err)
			}
			if got < base {
				t.Fatalf("Cost(%q, %d) = %d, below base %d", tier, length, got, base)
			}
		}
	}
}
