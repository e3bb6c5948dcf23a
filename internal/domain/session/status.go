package session

import "github.com/neuromancers/session-scheduler/internal/httperr"

// ===============================
// Request status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusWithdrawn Status = "withdrawn"
)

// ===============================
// Validations
// ===============================

func CanApprove(current Status) error {
	if current != StatusPending {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanReject(current Status) error {
	if current != StatusPending {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// Attendees may withdraw while the request is pending or already
// approved; rejected and withdrawn requests are final.
func CanWithdraw(current Status) error {
	if current != StatusPending && current != StatusApproved {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// InitialStatus is pending unless the session skips approval, in which
// case requests are approved on creation.
func InitialStatus(requireApproval bool) Status {
	if requireApproval {
		return StatusPending
	}
	return StatusApproved
}
