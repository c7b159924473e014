package bounty

import (
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
)

// ReviewWindow time after proof submission during which only the creator may
// settle; once it elapses anyone may force-finalize.
const ReviewWindow = 48 * time.Hour

// Reputation constants mirrored from the program.
const (
	InitialReputation   int64 = 100
	ReputationApprove   int64 = 15
	ReputationReject    int64 = -15
	ReputationAutoFinal int64 = -30
)

// Action a lifecycle action a caller can attempt against a bounty
type Action uint8

const (
	ActionClaim Action = iota
	ActionAbandon
	ActionSubmitProof
	ActionApprove
	ActionReject
	ActionForceFinalize
	ActionCancel
)

var actionNames = [...]string{"claim", "abandon", "submit_proof", "approve", "reject", "force_finalize", "cancel"}

func (a Action) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return "unknown"
}

// Request everything needed to judge a lifecycle action locally
type Request struct {
	Action Action
	Caller solana.PublicKey
	Now    time.Time

	// ProofURI for submit_proof
	ProofURI string
	// Reason for reject
	Reason string
}

// FinalizeAt the instant force-finalize becomes legal for a submitted bounty.
func FinalizeAt(b *Bounty) time.Time {
	return time.Unix(b.ProofSubmittedAt, 0).Add(ReviewWindow)
}

// DeadlinePassed report whether the claim/submit deadline has elapsed.
func DeadlinePassed(b *Bounty, now time.Time) bool {
	return !now.Before(time.Unix(b.Deadline, 0))
}

// Validate judge a lifecycle action against current state without mutating it.
// A nil error means the program should accept the same action, absent races.
func Validate(b *Bounty, req Request) error {
	switch req.Action {
	case ActionClaim:
		if b.Status != StatusOpen {
			return fmt.Errorf("%w: claim requires Open, got %s", ErrTransitionNotAllowed, b.Status)
		}
		if DeadlinePassed(b, req.Now) {
			return fmt.Errorf("%w: cannot claim", ErrDeadlinePassed)
		}
	case ActionAbandon:
		if b.Status != StatusClaimed {
			return fmt.Errorf("%w: abandon requires Claimed, got %s", ErrTransitionNotAllowed, b.Status)
		}
		if b.Claimer == nil {
			return ErrNoClaimer
		}
		if !req.Caller.Equals(*b.Claimer) {
			return fmt.Errorf("%w: only the claimer may abandon", ErrWrongActor)
		}
	case ActionSubmitProof:
		if b.Status != StatusClaimed {
			return fmt.Errorf("%w: submit_proof requires Claimed, got %s", ErrTransitionNotAllowed, b.Status)
		}
		if b.Claimer == nil {
			return ErrNoClaimer
		}
		if !req.Caller.Equals(*b.Claimer) {
			return fmt.Errorf("%w: only the claimer may submit proof", ErrWrongActor)
		}
		if DeadlinePassed(b, req.Now) {
			return fmt.Errorf("%w: cannot submit proof", ErrDeadlinePassed)
		}
	case ActionApprove:
		if b.Status != StatusSubmitted {
			return fmt.Errorf("%w: approve requires Submitted, got %s", ErrTransitionNotAllowed, b.Status)
		}
		if !req.Caller.Equals(b.Creator) {
			return fmt.Errorf("%w: only the creator may approve", ErrWrongActor)
		}
	case ActionReject:
		if b.Status != StatusSubmitted {
			return fmt.Errorf("%w: reject requires Submitted, got %s", ErrTransitionNotAllowed, b.Status)
		}
		if !req.Caller.Equals(b.Creator) {
			return fmt.Errorf("%w: only the creator may reject", ErrWrongActor)
		}
		if req.Reason == "" {
			return ErrEmptyReason
		}
	case ActionForceFinalize:
		if b.Status != StatusSubmitted {
			return fmt.Errorf("%w: force_finalize requires Submitted, got %s", ErrTransitionNotAllowed, b.Status)
		}
		if req.Now.Before(FinalizeAt(b)) {
			return fmt.Errorf("%w: finalizable at %s", ErrReviewWindowActive, FinalizeAt(b).UTC().Format(time.RFC3339))
		}
	case ActionCancel:
		if b.Status != StatusOpen {
			return fmt.Errorf("%w: cancel requires Open, got %s", ErrTransitionNotAllowed, b.Status)
		}
		if !req.Caller.Equals(b.Creator) {
			return fmt.Errorf("%w: only the creator may cancel", ErrWrongActor)
		}
	default:
		return fmt.Errorf("%w: unknown action", ErrTransitionNotAllowed)
	}
	return nil
}

// Outcome predicted post-transaction state
type Outcome struct {
	Bounty          Bounty
	ReputationDelta int64
}

// Apply predict the state produced by a valid action. Inputs are not mutated;
// the returned bounty is a modified copy. Validation runs first, so Apply on
// an illegal request fails the same way Validate does.
func Apply(b *Bounty, req Request) (*Outcome, error) {
	if err := Validate(b, req); err != nil {
		return nil, err
	}

	next := *b
	out := &Outcome{}

	switch req.Action {
	case ActionClaim:
		claimer := req.Caller
		next.Status = StatusClaimed
		next.Claimer = &claimer
	case ActionAbandon:
		next.Status = StatusOpen
		next.Claimer = nil
	case ActionSubmitProof:
		next.Status = StatusSubmitted
		next.ProofURI = req.ProofURI
		next.ProofSubmittedAt = req.Now.Unix()
	case ActionApprove:
		next.Status = StatusCompleted
		out.ReputationDelta = ReputationApprove
	case ActionReject:
		// Reject reopens the bounty for other agents; claim and proof are
		// cleared, only the reason survives as an audit trail.
		next.Status = StatusOpen
		next.Claimer = nil
		next.ProofURI = ""
		next.ProofSubmittedAt = 0
		next.RejectionReason = req.Reason
		out.ReputationDelta = ReputationReject
	case ActionForceFinalize:
		next.Status = StatusCompleted
		out.ReputationDelta = ReputationAutoFinal
	case ActionCancel:
		next.Status = StatusCancelled
	}

	out.Bounty = next
	return out, nil
}
