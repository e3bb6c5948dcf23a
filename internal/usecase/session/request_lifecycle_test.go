package session

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76"

	domain "github.com/neuromancers/session-scheduler/internal/domain/session"
	"github.com/neuromancers/session-scheduler/internal/models"
)

func seedPendingRequest(repo *fakeRepo, s *models.Session, attendee *models.User) *models.SessionRequest {
	req := &models.SessionRequest{
		ID:         uuid.New(),
		SessionID:  s.ID,
		AttendeeID: attendee.ID,
		StartsAt:   time.Date(2030, 3, 10, 10, 0, 0, 0, time.UTC),
		EndsAt:     time.Date(2030, 3, 10, 11, 0, 0, 0, time.UTC),
		Status:     string(domain.StatusPending),
	}
	repo.requests[req.ID] = req
	return req
}

func TestApproveRequestCreatesScheduledSession(t *testing.T) {
	repo := newFakeRepo()
	s, host, attendee := seedBookableSession(repo)
	req := seedPendingRequest(repo, s, attendee)

	notifier := &fakeNotifier{}
	pay := &fakePayments{}
	uc := NewApproveRequest(repo, pay, notifier, &fakeAudit{})

	out, err := uc.Execute(context.Background(), ApproveRequestInput{
		RequestID: req.ID,
		HostID:    host.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusApproved), out.Status)
	require.NotNil(t, out.ApprovedAt)
	require.Len(t, repo.scheduled, 1)
	assert.Equal(t, req.ID, repo.scheduled[0].RequestID)
	assert.Equal(t, []string{"Listening session"}, notifier.approved)
	assert.Empty(t, pay.intents, "free session must not charge")
}

func TestApproveRequestChargesUpfrontSessions(t *testing.T) {
	repo := newFakeRepo()
	s, host, attendee := seedBookableSession(repo)

	perHour := int64(4000)
	s.PerHourPrice = &perHour
	s.AccessBeforePayment = false
	host.StripeAccountID = "acct_123"

	req := seedPendingRequest(repo, s, attendee)

	pay := &fakePayments{}
	notifier := &fakeNotifier{}
	uc := NewApproveRequest(repo, pay, notifier, &fakeAudit{})

	out, err := uc.Execute(context.Background(), ApproveRequestInput{
		RequestID: req.ID,
		HostID:    host.ID,
	})
	require.NoError(t, err)

	require.Len(t, pay.intents, 1)
	assert.Equal(t, int64(4000), pay.intents[0].Amount)
	assert.Equal(t, "acct_123", pay.intents[0].HostAccount)
	assert.Equal(t, "pi_test_1", out.StripePaymentIntentID)

	// Both sides hear about the money moving.
	assert.Equal(t, []int64{4000}, notifier.paymentsMade)
	assert.Equal(t, []int64{4000}, notifier.paymentsReceived)
}

func TestApproveRequestOnlyFromPending(t *testing.T) {
	repo := newFakeRepo()
	s, host, attendee := seedBookableSession(repo)
	req := seedPendingRequest(repo, s, attendee)
	req.Status = string(domain.StatusRejected)

	uc := NewApproveRequest(repo, &fakePayments{}, &fakeNotifier{}, &fakeAudit{})

	_, err := uc.Execute(context.Background(), ApproveRequestInput{
		RequestID: req.ID,
		HostID:    host.ID,
	})
	assert.Equal(t, "invalid_state", businessCode(t, err))
}

func TestApproveRequestWrongHost(t *testing.T) {
	repo := newFakeRepo()
	s, _, attendee := seedBookableSession(repo)
	req := seedPendingRequest(repo, s, attendee)

	uc := NewApproveRequest(repo, &fakePayments{}, &fakeNotifier{}, &fakeAudit{})

	_, err := uc.Execute(context.Background(), ApproveRequestInput{
		RequestID: req.ID,
		HostID:    uuid.New(),
	})
	assert.Equal(t, "request_not_found", businessCode(t, err))
}

func TestRejectRequestStoresMessage(t *testing.T) {
	repo := newFakeRepo()
	s, host, attendee := seedBookableSession(repo)
	req := seedPendingRequest(repo, s, attendee)

	notifier := &fakeNotifier{}
	uc := NewRejectRequest(repo, notifier, &fakeAudit{})

	out, err := uc.Execute(context.Background(), RejectRequestInput{
		RequestID: req.ID,
		HostID:    host.ID,
		Message:   "fully booked that week",
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusRejected), out.Status)
	assert.Equal(t, "fully booked that week", out.RejectionMessage)
	require.NotNil(t, out.RejectedAt)
	assert.Equal(t, []string{"Listening session"}, notifier.rejected)
}

func TestWithdrawPendingRequest(t *testing.T) {
	repo := newFakeRepo()
	s, _, attendee := seedBookableSession(repo)
	req := seedPendingRequest(repo, s, attendee)

	uc := NewWithdrawRequest(repo, &fakePayments{}, &fakeMeetings{}, &fakeNotifier{}, &fakeAudit{})

	out, err := uc.Execute(context.Background(), WithdrawRequestInput{
		RequestID:  req.ID,
		AttendeeID: attendee.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusWithdrawn), out.Status)
	require.NotNil(t, out.WithdrawnAt)
}

func TestWithdrawRefundsAutomatically(t *testing.T) {
	repo := newFakeRepo()
	s, _, attendee := seedBookableSession(repo)
	s.RequireRefundApproval = false

	req := seedPendingRequest(repo, s, attendee)
	req.Status = string(domain.StatusApproved)
	req.StripePaymentIntentID = "pi_live_9"
	repo.scheduled = append(repo.scheduled, &models.ScheduledSession{
		ID:        uuid.New(),
		RequestID: req.ID,
		MeetingID: "m-room-1",
	})

	pay := &fakePayments{}
	notifier := &fakeNotifier{}
	rooms := &fakeMeetings{}
	uc := NewWithdrawRequest(repo, pay, rooms, notifier, &fakeAudit{})

	out, err := uc.Execute(context.Background(), WithdrawRequestInput{
		RequestID:  req.ID,
		AttendeeID: attendee.ID,
	})
	require.NoError(t, err)

	assert.True(t, out.Refunded)
	assert.Equal(t, []string{"pi_live_9"}, pay.refunds)
	assert.Equal(t, []string{"Listening session"}, notifier.refunded)
	assert.Equal(t, []string{"m-room-1"}, rooms.deleted)
}

func TestWithdrawLeavesRefundPendingWhenApprovalRequired(t *testing.T) {
	repo := newFakeRepo()
	s, _, attendee := seedBookableSession(repo)
	s.RequireRefundApproval = true

	req := seedPendingRequest(repo, s, attendee)
	req.Status = string(domain.StatusApproved)
	req.StripePaymentIntentID = "pi_live_9"

	pay := &fakePayments{}
	notifier := &fakeNotifier{}
	uc := NewWithdrawRequest(repo, pay, &fakeMeetings{}, notifier, &fakeAudit{})

	out, err := uc.Execute(context.Background(), WithdrawRequestInput{
		RequestID:  req.ID,
		AttendeeID: attendee.ID,
	})
	require.NoError(t, err)

	assert.False(t, out.Refunded)
	assert.Equal(t, string(domain.StatusPending), out.RefundStatus)
	assert.Empty(t, pay.refunds)

	// The host has to approve the refund, so they hear about it.
	assert.Equal(t, []string{"Listening session"}, notifier.refundRequested)
}

func TestRequestPaymentStatus(t *testing.T) {
	repo := newFakeRepo()
	s, _, attendee := seedBookableSession(repo)
	req := seedPendingRequest(repo, s, attendee)

	uc := NewGetRequestPayment(repo, &fakePayments{})

	_, err := uc.Execute(context.Background(), GetRequestPaymentInput{
		RequestID:  req.ID,
		AttendeeID: attendee.ID,
	})
	assert.Equal(t, "no_payment", businessCode(t, err))

	req.StripePaymentIntentID = "pi_live_9"
	intent, err := uc.Execute(context.Background(), GetRequestPaymentInput{
		RequestID:  req.ID,
		AttendeeID: attendee.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "pi_live_9", intent.ID)
	assert.Equal(t, stripe.PaymentIntentStatusSucceeded, intent.Status)
}

func TestApproveRefundSettlesPendingRefund(t *testing.T) {
	repo := newFakeRepo()
	s, host, attendee := seedBookableSession(repo)

	req := seedPendingRequest(repo, s, attendee)
	req.Status = string(domain.StatusWithdrawn)
	req.StripePaymentIntentID = "pi_live_9"
	req.RefundStatus = string(domain.StatusPending)

	pay := &fakePayments{}
	uc := NewApproveRefund(repo, pay, &fakeNotifier{}, &fakeAudit{})

	out, err := uc.Execute(context.Background(), ApproveRefundInput{
		RequestID: req.ID,
		HostID:    host.ID,
	})
	require.NoError(t, err)

	assert.True(t, out.Refunded)
	assert.Equal(t, []string{"pi_live_9"}, pay.refunds)
}

func TestApproveRefundNothingToRefund(t *testing.T) {
	repo := newFakeRepo()
	s, host, attendee := seedBookableSession(repo)

	req := seedPendingRequest(repo, s, attendee)
	req.Status = string(domain.StatusWithdrawn)

	uc := NewApproveRefund(repo, &fakePayments{}, &fakeNotifier{}, &fakeAudit{})

	_, err := uc.Execute(context.Background(), ApproveRefundInput{
		RequestID: req.ID,
		HostID:    host.ID,
	})
	assert.Equal(t, "nothing_to_refund", businessCode(t, err))
}
