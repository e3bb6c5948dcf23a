package session

import (
	"context"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"

	domain "github.com/neuromancers/session-scheduler/internal/domain/session"
	"github.com/neuromancers/session-scheduler/internal/httperr"
)

// ======================================================
// INPUT
// ======================================================

type GetRequestPaymentInput struct {
	RequestID  uuid.UUID
	AttendeeID uuid.UUID
}

// ======================================================
// USE CASE
// ======================================================

// GetRequestPayment looks up the live state of the payment attached to
// one of the caller's requests.
type GetRequestPayment struct {
	repo     domain.Repository
	payments PaymentProvider
}

func NewGetRequestPayment(
	repo domain.Repository,
	p PaymentProvider,
) *GetRequestPayment {
	return &GetRequestPayment{repo: repo, payments: p}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *GetRequestPayment) Execute(
	ctx context.Context,
	in GetRequestPaymentInput,
) (*stripe.PaymentIntent, error) {

	req, err := uc.repo.GetRequestForAttendee(ctx, in.RequestID, in.AttendeeID)
	if err != nil {
		return nil, httperr.ErrBusiness("request_not_found")
	}

	if req.StripePaymentIntentID == "" {
		return nil, httperr.ErrBusiness("no_payment")
	}

	return uc.payments.GetIntent(req.StripePaymentIntentID)
}
