package bounty

import (
	"errors"
	"math"
	"testing"
)

func TestSplitFee(t *testing.T) {
	tests := []struct {
		gross   uint64
		fee     uint64
		net     uint64
		wantErr bool
	}{
		{10_000_000, 1_000_000, 9_000_000, false}, // 10 USDC
		{100, 10, 90, false},
		{19, 1, 18, false}, // fee floors
		{10, 1, 9, false},
		{9, 0, 9, false}, // below divisor, fee rounds to zero
		{1, 0, 1, false},
		{0, 0, 0, true},
	}
	for _, tt := range tests {
		fee, net, err := SplitFee(tt.gross)
		if tt.wantErr {
			if !errors.Is(err, ErrAmountTooSmall) {
				t.Errorf("SplitFee(%d) err = %v, want ErrAmountTooSmall", tt.gross, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("SplitFee(%d): %v", tt.gross, err)
			continue
		}
		if fee != tt.fee || net != tt.net {
			t.Errorf("SplitFee(%d) = (%d, %d), want (%d, %d)", tt.gross, fee, net, tt.fee, tt.net)
		}
		if fee+net != tt.gross {
			t.Errorf("SplitFee(%d) loses atoms: fee+net = %d", tt.gross, fee+net)
		}
	}
}

func TestAtomsFromUi(t *testing.T) {
	if got, err := AtomsFromUi(10); err != nil || got != 10_000_000 {
		t.Fatalf("AtomsFromUi(10) = %d, %v", got, err)
	}
	if got, err := AtomsFromUi(0.000001); err != nil || got != 1 {
		t.Fatalf("AtomsFromUi(0.000001) = %d, %v", got, err)
	}

	for _, bad := range []float64{0, -5, math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := AtomsFromUi(bad); !errors.Is(err, ErrAmountInvalid) {
			t.Errorf("AtomsFromUi(%f) err = %v, want ErrAmountInvalid", bad, err)
		}
	}

	// 2^64 atoms as a ui amount lands exactly on the float boundary where
	// uint64 conversion wraps; it and everything above must be rejected.
	boundary := math.Ldexp(1, 64) / AtomsPerToken
	for _, huge := range []float64{boundary, boundary * 2, 1e30} {
		if _, err := AtomsFromUi(huge); !errors.Is(err, ErrAmountInvalid) {
			t.Errorf("AtomsFromUi(%g) err = %v, want ErrAmountInvalid", huge, err)
		}
	}
}
