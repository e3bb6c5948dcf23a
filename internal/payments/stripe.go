package payments

import (
	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"go.uber.org/zap"

	"github.com/neuromancers/session-scheduler/internal/config"
	"github.com/neuromancers/session-scheduler/internal/httperr"
)

// Client wraps Stripe Connect payments. Session money goes to the
// host's connected account; the platform keeps an application fee.
type Client struct {
	api *client.API
	fee float64
	log *zap.Logger
}

func New(cfg *config.Config, log *zap.Logger) *Client {
	api := &client.API{}
	api.Init(cfg.StripeSecretKey, nil)

	return &Client{
		api: api,
		fee: cfg.StripeApplicationFee,
		log: log,
	}
}

type IntentInput struct {
	Amount      int64
	Currency    string
	RequestID   uuid.UUID
	SessionID   uuid.UUID
	AttendeeID  uuid.UUID
	HostAccount string
}

// CreateIntent creates a PaymentIntent for a session request. The
// application fee is taken off the top and the remainder transfers to
// the host's connected account on capture.
func (c *Client) CreateIntent(in IntentInput) (*stripe.PaymentIntent, error) {
	if in.HostAccount == "" {
		return nil, httperr.ErrBusiness("host_not_onboarded")
	}

	feeAmount := int64(float64(in.Amount) * c.fee)

	params := &stripe.PaymentIntentParams{
		Amount:               stripe.Int64(in.Amount),
		Currency:             stripe.String(in.Currency),
		ApplicationFeeAmount: stripe.Int64(feeAmount),
		TransferData: &stripe.PaymentIntentTransferDataParams{
			Destination: stripe.String(in.HostAccount),
		},
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.AddMetadata("request_id", in.RequestID.String())
	params.AddMetadata("session_id", in.SessionID.String())
	params.AddMetadata("attendee_id", in.AttendeeID.String())

	intent, err := c.api.PaymentIntents.New(params)
	if err != nil {
		c.log.Error("stripe payment intent failed",
			zap.String("request_id", in.RequestID.String()),
			zap.Error(err))
		return nil, err
	}

	return intent, nil
}

// Refund refunds a payment intent in full, reversing the transfer and
// clawing back the application fee.
func (c *Client) Refund(paymentIntentID string) (*stripe.Refund, error) {
	if paymentIntentID == "" {
		return nil, httperr.ErrBusiness("nothing_to_refund")
	}

	refund, err := c.api.Refunds.New(&stripe.RefundParams{
		PaymentIntent:        stripe.String(paymentIntentID),
		ReverseTransfer:      stripe.Bool(true),
		RefundApplicationFee: stripe.Bool(true),
	})
	if err != nil {
		c.log.Error("stripe refund failed",
			zap.String("payment_intent", paymentIntentID),
			zap.Error(err))
		return nil, err
	}

	return refund, nil
}

// GetIntent fetches the current state of a payment intent.
func (c *Client) GetIntent(paymentIntentID string) (*stripe.PaymentIntent, error) {
	return c.api.PaymentIntents.Get(paymentIntentID, nil)
}
