package agent

import "errors"

var (
	ErrValidation      = errors.New("validation failed")
	ErrAgentNotFound   = errors.New("agent application not found")
	ErrAlreadyApplied  = errors.New("an application with this phone or email already exists")
	ErrBadReferral     = errors.New("referral code does not match an approved agent")
	ErrAlreadyReviewed = errors.New("application has already been reviewed")
)
