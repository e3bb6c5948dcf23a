package session

import (
	"time"

	"github.com/neuromancers/session-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Approve(req *models.SessionRequest, now time.Time) error {
	if err := CanApprove(Status(req.Status)); err != nil {
		return err
	}

	req.Status = string(StatusApproved)
	req.ApprovedAt = &now
	return nil
}

func Reject(req *models.SessionRequest, message string, now time.Time) error {
	if err := CanReject(Status(req.Status)); err != nil {
		return err
	}

	req.Status = string(StatusRejected)
	req.RejectionMessage = message
	req.RejectedAt = &now
	return nil
}

func Withdraw(req *models.SessionRequest, now time.Time) error {
	if err := CanWithdraw(Status(req.Status)); err != nil {
		return err
	}

	req.Status = string(StatusWithdrawn)
	req.WithdrawnAt = &now
	return nil
}
