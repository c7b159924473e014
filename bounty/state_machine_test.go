package bounty

import (
	"errors"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
)

var (
	testCreator = solana.MustPublicKeyFromBase58("4Nd1mBQtrMJVYVfKf2PJy9NZUZdTAsp7D4xWLs4gDB4T")
	testClaimer = solana.MustPublicKeyFromBase58("8FE27ioQh3T7o22QsYVT5Re8NnzhcbgtqozgVZZFTQCp")
	testOther   = solana.MustPublicKeyFromBase58("HN7cABqLq46Es1jh92dQQisAq662SmxELLLsHHe4YWrH")
)

func testBounty(status Status) *Bounty {
	b := &Bounty{
		Creator:  testCreator,
		Amount:   9_000_000,
		Deadline: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC).Unix(),
		Status:   status,
		BountyID: "fix-parser-0042",
	}
	if status == StatusClaimed || status == StatusSubmitted {
		c := testClaimer
		b.Claimer = &c
	}
	if status == StatusSubmitted {
		b.ProofURI = "https://github.com/acme/widgets/pull/7"
		b.ProofSubmittedAt = time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC).Unix()
	}
	return b
}

func TestValidateTransitionTable(t *testing.T) {
	beforeDeadline := time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		status  Status
		req     Request
		wantErr error
	}{
		{"claim open", StatusOpen, Request{Action: ActionClaim, Caller: testClaimer, Now: beforeDeadline}, nil},
		{"claim claimed", StatusClaimed, Request{Action: ActionClaim, Caller: testOther, Now: beforeDeadline}, ErrTransitionNotAllowed},
		{"claim completed", StatusCompleted, Request{Action: ActionClaim, Caller: testOther, Now: beforeDeadline}, ErrTransitionNotAllowed},
		{"claim cancelled", StatusCancelled, Request{Action: ActionClaim, Caller: testOther, Now: beforeDeadline}, ErrTransitionNotAllowed},

		{"abandon by claimer", StatusClaimed, Request{Action: ActionAbandon, Caller: testClaimer}, nil},
		{"abandon by stranger", StatusClaimed, Request{Action: ActionAbandon, Caller: testOther}, ErrWrongActor},
		{"abandon open", StatusOpen, Request{Action: ActionAbandon, Caller: testClaimer}, ErrTransitionNotAllowed},

		{"submit by claimer", StatusClaimed, Request{Action: ActionSubmitProof, Caller: testClaimer, Now: beforeDeadline, ProofURI: "x"}, nil},
		{"submit by creator", StatusClaimed, Request{Action: ActionSubmitProof, Caller: testCreator, Now: beforeDeadline, ProofURI: "x"}, ErrWrongActor},
		{"submit from open", StatusOpen, Request{Action: ActionSubmitProof, Caller: testClaimer, Now: beforeDeadline}, ErrTransitionNotAllowed},

		{"approve by creator", StatusSubmitted, Request{Action: ActionApprove, Caller: testCreator}, nil},
		{"approve by claimer", StatusSubmitted, Request{Action: ActionApprove, Caller: testClaimer}, ErrWrongActor},
		{"approve from claimed", StatusClaimed, Request{Action: ActionApprove, Caller: testCreator}, ErrTransitionNotAllowed},

		{"reject with reason", StatusSubmitted, Request{Action: ActionReject, Caller: testCreator, Reason: "proof does not build"}, nil},
		{"reject without reason", StatusSubmitted, Request{Action: ActionReject, Caller: testCreator}, ErrEmptyReason},
		{"reject by claimer", StatusSubmitted, Request{Action: ActionReject, Caller: testClaimer, Reason: "x"}, ErrWrongActor},

		{"cancel by creator", StatusOpen, Request{Action: ActionCancel, Caller: testCreator}, nil},
		{"cancel by stranger", StatusOpen, Request{Action: ActionCancel, Caller: testOther}, ErrWrongActor},
		{"cancel claimed", StatusClaimed, Request{Action: ActionCancel, Caller: testCreator}, ErrTransitionNotAllowed},
		{"cancel completed", StatusCompleted, Request{Action: ActionCancel, Caller: testCreator}, ErrTransitionNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(testBounty(tt.status), tt.req)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDeadlineGating(t *testing.T) {
	b := testBounty(StatusOpen)
	deadline := time.Unix(b.Deadline, 0)

	if err := Validate(b, Request{Action: ActionClaim, Caller: testClaimer, Now: deadline.Add(-time.Second)}); err != nil {
		t.Fatalf("claim one second before deadline: %v", err)
	}
	// Deadline instant itself is already too late.
	if err := Validate(b, Request{Action: ActionClaim, Caller: testClaimer, Now: deadline}); !errors.Is(err, ErrDeadlinePassed) {
		t.Fatalf("claim at deadline = %v, want ErrDeadlinePassed", err)
	}

	claimed := testBounty(StatusClaimed)
	if err := Validate(claimed, Request{Action: ActionSubmitProof, Caller: testClaimer, Now: deadline.Add(time.Hour), ProofURI: "x"}); !errors.Is(err, ErrDeadlinePassed) {
		t.Fatalf("submit after deadline = %v, want ErrDeadlinePassed", err)
	}
	// Abandon stays legal after the deadline so escrow is never stranded.
	if err := Validate(claimed, Request{Action: ActionAbandon, Caller: testClaimer, Now: deadline.Add(time.Hour)}); err != nil {
		t.Fatalf("abandon after deadline: %v", err)
	}
}

func TestForceFinalizeWindow(t *testing.T) {
	b := testBounty(StatusSubmitted)
	at := FinalizeAt(b)

	if err := Validate(b, Request{Action: ActionForceFinalize, Caller: testOther, Now: at.Add(-time.Minute)}); !errors.Is(err, ErrReviewWindowActive) {
		t.Fatalf("finalize before window = %v, want ErrReviewWindowActive", err)
	}
	// Window boundary is inclusive.
	if err := Validate(b, Request{Action: ActionForceFinalize, Caller: testOther, Now: at}); err != nil {
		t.Fatalf("finalize at window boundary: %v", err)
	}
	if err := Validate(b, Request{Action: ActionForceFinalize, Caller: testOther, Now: at.Add(time.Hour)}); err != nil {
		t.Fatalf("finalize after window: %v", err)
	}
}

func TestApplyClaimThenAbandon(t *testing.T) {
	now := time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC)
	open := testBounty(StatusOpen)

	claimed, err := Apply(open, Request{Action: ActionClaim, Caller: testClaimer, Now: now})
	if err != nil {
		t.Fatalf("claim: %v", err)
	}
	if claimed.Bounty.Status != StatusClaimed {
		t.Fatalf("status after claim = %s", claimed.Bounty.Status)
	}
	if claimed.Bounty.Claimer == nil || !claimed.Bounty.Claimer.Equals(testClaimer) {
		t.Fatalf("claimer not recorded: %v", claimed.Bounty.Claimer)
	}
	if open.Status != StatusOpen {
		t.Fatal("Apply mutated its input")
	}

	reopened, err := Apply(&claimed.Bounty, Request{Action: ActionAbandon, Caller: testClaimer, Now: now})
	if err != nil {
		t.Fatalf("abandon: %v", err)
	}
	if reopened.Bounty.Status != StatusOpen || reopened.Bounty.Claimer != nil {
		t.Fatalf("abandon result: status=%s claimer=%v", reopened.Bounty.Status, reopened.Bounty.Claimer)
	}
}

func TestApplyRejectClearsClaimAndProof(t *testing.T) {
	b := testBounty(StatusSubmitted)

	out, err := Apply(b, Request{Action: ActionReject, Caller: testCreator, Reason: "tests missing"})
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	next := out.Bounty
	if next.Status != StatusOpen {
		t.Fatalf("status after reject = %s, want Open", next.Status)
	}
	if next.Claimer != nil || next.ProofURI != "" || next.ProofSubmittedAt != 0 {
		t.Fatalf("reject did not clear claim/proof: %+v", next)
	}
	if next.RejectionReason != "tests missing" {
		t.Fatalf("reason = %q", next.RejectionReason)
	}
	if out.ReputationDelta != ReputationReject {
		t.Fatalf("delta = %d, want %d", out.ReputationDelta, ReputationReject)
	}
}

func TestReputationDeltas(t *testing.T) {
	submitted := testBounty(StatusSubmitted)
	after := FinalizeAt(submitted).Add(time.Minute)

	approve, err := Apply(submitted, Request{Action: ActionApprove, Caller: testCreator})
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if approve.ReputationDelta != 15 {
		t.Fatalf("approve delta = %d", approve.ReputationDelta)
	}

	finalize, err := Apply(submitted, Request{Action: ActionForceFinalize, Caller: testOther, Now: after})
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if finalize.Bounty.Status != StatusCompleted {
		t.Fatalf("finalize status = %s", finalize.Bounty.Status)
	}
	if finalize.ReputationDelta != -30 {
		t.Fatalf("finalize delta = %d", finalize.ReputationDelta)
	}
}

func TestStatusFromByte(t *testing.T) {
	for b := byte(0); b < 6; b++ {
		s, ok := StatusFromByte(b)
		if !ok || s != Status(b) {
			t.Fatalf("StatusFromByte(%d) = %v, %v", b, s, ok)
		}
	}
	if _, ok := StatusFromByte(6); ok {
		t.Fatal("ordinal 6 accepted")
	}
	if _, ok := StatusFromByte(0xff); ok {
		t.Fatal("ordinal 255 accepted")
	}
}

func TestTerminal(t *testing.T) {
	for s, want := range map[Status]bool{
		StatusOpen: false, StatusClaimed: false, StatusSubmitted: false,
		StatusCompleted: true, StatusCancelled: true, StatusRejected: false,
	} {
		if got := s.Terminal(); got != want {
			t.Errorf("%s.Terminal() = %v, want %v", s, got, want)
		}
	}
}
