package codec

import (
	"errors"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"

	"agentgrind-service/bounty"
)

var (
	testCreator = solana.MustPublicKeyFromBase58("4Nd1mBQtrMJVYVfKf2PJy9NZUZdTAsp7D4xWLs4gDB4T")
	testClaimer = solana.MustPublicKeyFromBase58("8FE27ioQh3T7o22QsYVT5Re8NnzhcbgtqozgVZZFTQCp")
	testMint    = solana.MustPublicKeyFromBase58("Gh9ZwEmdLJ8DscKNTkTqPbNwLNNBjuSzaG9Vp2KGtKJr")
)

func sampleBounty() *bounty.Bounty {
	c := testClaimer
	return &bounty.Bounty{
		Creator:          testCreator,
		Mint:             testMint,
		Amount:           9_000_000,
		Deadline:         time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC).Unix(),
		Status:           bounty.StatusSubmitted,
		Claimer:          &c,
		ProofURI:         "https://github.com/acme/widgets/pull/7",
		ProofSubmittedAt: time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC).Unix(),
		RejectionReason:  "",
		BountyID:         "fix-parser-0042",
		Bump:             254,
	}
}

func TestBountyRoundTrip(t *testing.T) {
	want := sampleBounty()

	data, err := EncodeBounty(want)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if len(data) != BountyAccountSize {
		t.Fatalf("encoded size = %d, want %d", len(data), BountyAccountSize)
	}

	got, err := DecodeBounty(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !got.Creator.Equals(want.Creator) || !got.Mint.Equals(want.Mint) {
		t.Fatalf("keys: %+v", got)
	}
	if got.Amount != want.Amount || got.Deadline != want.Deadline || got.Status != want.Status {
		t.Fatalf("scalars: %+v", got)
	}
	if got.Claimer == nil || !got.Claimer.Equals(testClaimer) {
		t.Fatalf("claimer: %v", got.Claimer)
	}
	if got.ProofURI != want.ProofURI || got.ProofSubmittedAt != want.ProofSubmittedAt {
		t.Fatalf("proof: %+v", got)
	}
	if got.BountyID != want.BountyID || got.Bump != want.Bump {
		t.Fatalf("id/bump: %+v", got)
	}
}

func TestBountyRoundTripNoClaimer(t *testing.T) {
	want := sampleBounty()
	want.Status = bounty.StatusOpen
	want.Claimer = nil
	want.ProofURI = ""
	want.ProofSubmittedAt = 0

	data, err := EncodeBounty(want)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := DecodeBounty(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Claimer != nil {
		t.Fatalf("claimer should be nil, got %v", got.Claimer)
	}
	if got.Status != bounty.StatusOpen {
		t.Fatalf("status = %s", got.Status)
	}
}

func TestDecodeBountyRejectsBadInput(t *testing.T) {
	good, err := EncodeBounty(sampleBounty())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	t.Run("wrong size", func(t *testing.T) {
		if _, err := DecodeBounty(good[:BountyAccountSize-1]); !errors.Is(err, ErrSizeMismatch) {
			t.Fatalf("err = %v, want ErrSizeMismatch", err)
		}
		if _, err := DecodeBounty(append(append([]byte{}, good...), 0)); !errors.Is(err, ErrSizeMismatch) {
			t.Fatalf("err = %v, want ErrSizeMismatch", err)
		}
	})

	t.Run("unknown status ordinal", func(t *testing.T) {
		bad := append([]byte{}, good...)
		bad[8+32+32+8+8] = 6
		if _, err := DecodeBounty(bad); !errors.Is(err, ErrUnknownStatus) {
			t.Fatalf("err = %v, want ErrUnknownStatus", err)
		}
	})

	t.Run("bad option tag", func(t *testing.T) {
		bad := append([]byte{}, good...)
		bad[8+32+32+8+8+1] = 7
		if _, err := DecodeBounty(bad); !errors.Is(err, ErrMalformedOption) {
			t.Fatalf("err = %v, want ErrMalformedOption", err)
		}
	})

	t.Run("string length exceeds cap", func(t *testing.T) {
		bad := append([]byte{}, good...)
		// proof_uri length prefix sits after the 33-byte claimer option
		off := 8 + 32 + 32 + 8 + 8 + 1 + 33
		bad[off] = 0xff
		bad[off+1] = 0xff
		bad[off+2] = 0
		bad[off+3] = 0
		if _, err := DecodeBounty(bad); !errors.Is(err, ErrMalformedString) {
			t.Fatalf("err = %v, want ErrMalformedString", err)
		}
	})
}

func TestEncodeBountyRejectsOversizedStrings(t *testing.T) {
	b := sampleBounty()
	b.ProofURI = string(make([]byte, MaxProofURILen+1))
	if _, err := EncodeBounty(b); !errors.Is(err, ErrStringTooLong) {
		t.Fatalf("err = %v, want ErrStringTooLong", err)
	}
}

func TestCreatorProfileRoundTrip(t *testing.T) {
	want := &bounty.CreatorProfile{
		Wallet:             testCreator,
		Reputation:         85,
		TotalCreated:       12,
		TotalCompleted:     9,
		TotalRejected:      1,
		TotalAutoFinalized: 0,
		TotalCancelled:     2,
		XHandle:            "web3_builder",
		XVerified:          true,
		Bump:               253,
	}

	data, err := EncodeCreatorProfile(want)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := DecodeCreatorProfile(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !got.Wallet.Equals(want.Wallet) || got.Reputation != 85 {
		t.Fatalf("identity: %+v", got)
	}
	if got.TotalCreated != 12 || got.TotalCompleted != 9 || got.TotalRejected != 1 || got.TotalAutoFinalized != 0 || got.TotalCancelled != 2 {
		t.Fatalf("counters: %+v", got)
	}
	if got.XHandle != "web3_builder" || !got.XVerified || got.Bump != 253 {
		t.Fatalf("handle: %+v", got)
	}
}

func TestDecodeCreatorProfileTruncated(t *testing.T) {
	data, err := EncodeCreatorProfile(&bounty.CreatorProfile{Wallet: testCreator, Reputation: 100, Bump: 255})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	for _, cut := range []int{0, 7, 8, 40, len(data) - 1} {
		if _, err := DecodeCreatorProfile(data[:cut]); err == nil {
			t.Errorf("decode of %d bytes succeeded", cut)
		}
	}
}

func TestNegativeReputationRoundTrip(t *testing.T) {
	data, err := EncodeCreatorProfile(&bounty.CreatorProfile{Wallet: testCreator, Reputation: -20, Bump: 255})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := DecodeCreatorProfile(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Reputation != -20 {
		t.Fatalf("reputation = %d, want -20", got.Reputation)
	}
}
