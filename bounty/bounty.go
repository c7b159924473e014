// Package bounty mirrors the AgentGrind program's bounty lifecycle rules
// client-side: account state, legal transitions, fee arithmetic and the
// reputation read model. The ledger stays authoritative; everything here is
// validation and prediction so bad actions are rejected before a round trip.
package bounty

import (
	"github.com/gagliardetto/solana-go"
)

// Status bounty lifecycle status, ordinal-matched to the program enum
type Status uint8

const (
	StatusOpen Status = iota
	StatusClaimed
	StatusSubmitted
	StatusCompleted
	StatusCancelled
	StatusRejected
)

var statusNames = [...]string{"Open", "Claimed", "Submitted", "Completed", "Cancelled", "Rejected"}

func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return "Unknown"
}

// StatusFromByte map a raw status ordinal to a Status. The second return is
// false for unrecognized ordinals; callers must treat that as corruption, not
// default to Open.
func StatusFromByte(b byte) (Status, bool) {
	if int(b) >= len(statusNames) {
		return 0, false
	}
	return Status(b), true
}

// Terminal report whether no further transitions leave this status.
// Rejected is not terminal: the reject transaction itself reopens the bounty,
// so a persisted Rejected only exists at the instant of the event.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Bounty decoded bounty account state
type Bounty struct {
	Creator          solana.PublicKey  `json:"creator"`
	Mint             solana.PublicKey  `json:"mint"`
	Amount           uint64            `json:"amount"`
	Deadline         int64             `json:"deadline"`
	Status           Status            `json:"status"`
	Claimer          *solana.PublicKey `json:"claimer"`
	ProofURI         string            `json:"proof_uri"`
	ProofSubmittedAt int64             `json:"proof_submitted_at"`
	RejectionReason  string            `json:"rejection_reason"`
	BountyID         string            `json:"bounty_id"`
	Bump             uint8             `json:"bump"`
}

// CreatorProfile decoded creator profile account state
type CreatorProfile struct {
	Wallet             solana.PublicKey `json:"wallet"`
	Reputation         int64            `json:"reputation"`
	TotalCreated       uint32           `json:"total_created"`
	TotalCompleted     uint32           `json:"total_completed"`
	TotalRejected      uint32           `json:"total_rejected"`
	TotalAutoFinalized uint32           `json:"total_auto_finalized"`
	TotalCancelled     uint32           `json:"total_cancelled"`
	XHandle            string           `json:"x_handle"`
	XVerified          bool             `json:"x_verified"`
	Bump               uint8            `json:"bump"`
}
