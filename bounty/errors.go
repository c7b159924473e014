package bounty

import "errors"

var (
	// ErrTransitionNotAllowed action is not legal from the bounty's current status
	ErrTransitionNotAllowed = errors.New("transition not allowed from current status")

	// ErrWrongActor caller lacks the required relationship to the bounty
	ErrWrongActor = errors.New("caller not permitted to perform this action")

	// ErrDeadlinePassed the bounty deadline gates this action and has elapsed
	ErrDeadlinePassed = errors.New("bounty deadline has passed")

	// ErrReviewWindowActive the 48h review window has not elapsed yet
	ErrReviewWindowActive = errors.New("review window still active")

	// ErrEmptyReason a rejection requires a non-empty reason
	ErrEmptyReason = errors.New("rejection reason must not be empty")

	// ErrNoClaimer bounty has no claimer recorded where one is required
	ErrNoClaimer = errors.New("bounty has no claimer")

	// ErrAmountTooSmall amount is zero or exhausted by the platform fee
	ErrAmountTooSmall = errors.New("amount too small after fee")

	// ErrAmountInvalid amount is non-finite or non-positive
	ErrAmountInvalid = errors.New("invalid amount")
)
