package notifications

import (
	"fmt"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	"github.com/neuromancers/session-scheduler/internal/config"
	"github.com/neuromancers/session-scheduler/internal/models"
)

// Notifier sends transactional email through SendGrid, honouring each
// recipient's per-subject preferences. Delivery is fire-and-forget.
type Notifier struct {
	key        string
	from       *sgmail.Email
	subjPrefix string
	log        *zap.Logger
}

func New(cfg *config.Config, log *zap.Logger) *Notifier {
	return &Notifier{
		key:        cfg.SendgridAPIKey,
		from:       sgmail.NewEmail(cfg.AppName, cfg.EmailFrom),
		subjPrefix: "[" + cfg.AppName + "] ",
		log:        log,
	}
}

// Message is one notification to one recipient. Subject selects which
// preference gates it (models.Subject*).
type Message struct {
	To       *models.User
	Settings *models.NotificationSettings
	Subject  string
	Title    string
	Body     string
}

// Send delivers the message if the recipient's settings allow email for
// its subject. Errors are logged, never propagated: notification
// failure must not fail the triggering operation.
func (n *Notifier) Send(msg Message) {
	if msg.To == nil || msg.To.Email == "" {
		return
	}
	if !msg.Settings.WantsEmail(msg.Subject) {
		return
	}

	go n.deliver(msg)
}

func (n *Notifier) deliver(msg Message) {
	p := sgmail.NewPersonalization()
	p.Subject = n.subjPrefix + msg.Title
	p.AddTos(sgmail.NewEmail(msg.To.Username, msg.To.Email))

	m := sgmail.NewV3Mail()
	m.SetFrom(n.from)
	m.AddPersonalizations(p)
	m.AddContent(
		sgmail.NewContent("text/plain", msg.Body),
		sgmail.NewContent(
			"text/html",
			fmt.Sprintf("<p>%s</p>", msg.Body),
		),
	)

	req := sendgrid.GetRequest(
		n.key,
		"/v3/mail/send",
		"https://api.sendgrid.com",
	)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(m)

	res, err := sendgrid.API(req)
	if err != nil {
		n.log.Error("sending email",
			zap.String("to", msg.To.Email),
			zap.Error(err))
	} else if res.StatusCode >= http.StatusBadRequest {
		n.log.Error("sending email",
			zap.String("to", msg.To.Email),
			zap.Int("status", res.StatusCode),
			zap.String("body", res.Body))
	}
}

// formatAmount renders a minor-unit amount for email bodies.
func formatAmount(amount int64, currency string) string {
	return fmt.Sprintf("%s %.2f", currency, float64(amount)/100)
}

// --------------------------------------------------
// Canned messages
// --------------------------------------------------

func (n *Notifier) SessionPublished(
	host *models.User,
	settings *models.NotificationSettings,
	sessionTitle string,
) {
	n.Send(Message{
		To:       host,
		Settings: settings,
		Subject:  models.SubjectSession,
		Title:    "Session published",
		Body: fmt.Sprintf(
			"%q is now live and open for requests.",
			sessionTitle,
		),
	})
}

func (n *Notifier) SessionRequested(
	host *models.User,
	settings *models.NotificationSettings,
	sessionTitle string,
) {
	n.Send(Message{
		To:       host,
		Settings: settings,
		Subject:  models.SubjectSession,
		Title:    "New session request",
		Body: fmt.Sprintf(
			"You have a new request for %q. Review it from your dashboard.",
			sessionTitle,
		),
	})
}

func (n *Notifier) RequestApproved(
	attendee *models.User,
	settings *models.NotificationSettings,
	sessionTitle string,
	startsAt string,
) {
	n.Send(Message{
		To:       attendee,
		Settings: settings,
		Subject:  models.SubjectSession,
		Title:    "Session request approved",
		Body: fmt.Sprintf(
			"Your request for %q starting at %s was approved.",
			sessionTitle, startsAt,
		),
	})
}

func (n *Notifier) RequestRejected(
	attendee *models.User,
	settings *models.NotificationSettings,
	sessionTitle string,
	reason string,
) {
	body := fmt.Sprintf("Your request for %q was declined.", sessionTitle)
	if reason != "" {
		body += " Message from the host: " + reason
	}
	n.Send(Message{
		To:       attendee,
		Settings: settings,
		Subject:  models.SubjectSession,
		Title:    "Session request declined",
		Body:     body,
	})
}

func (n *Notifier) PaymentMade(
	attendee *models.User,
	settings *models.NotificationSettings,
	sessionTitle string,
	amount int64,
	currency string,
) {
	n.Send(Message{
		To:       attendee,
		Settings: settings,
		Subject:  models.SubjectPayment,
		Title:    "Payment confirmed",
		Body: fmt.Sprintf(
			"Your payment of %s for %q is being processed.",
			formatAmount(amount, currency), sessionTitle,
		),
	})
}

func (n *Notifier) PaymentReceived(
	host *models.User,
	settings *models.NotificationSettings,
	sessionTitle string,
	amount int64,
	currency string,
) {
	n.Send(Message{
		To:       host,
		Settings: settings,
		Subject:  models.SubjectPayment,
		Title:    "Payment received",
		Body: fmt.Sprintf(
			"A payment of %s for %q is on its way to your account.",
			formatAmount(amount, currency), sessionTitle,
		),
	})
}

func (n *Notifier) RefundRequested(
	host *models.User,
	settings *models.NotificationSettings,
	sessionTitle string,
) {
	n.Send(Message{
		To:       host,
		Settings: settings,
		Subject:  models.SubjectPayment,
		Title:    "Refund awaiting approval",
		Body: fmt.Sprintf(
			"An attendee withdrew from %q and their refund needs your approval.",
			sessionTitle,
		),
	})
}

func (n *Notifier) RefundIssued(
	attendee *models.User,
	settings *models.NotificationSettings,
	sessionTitle string,
) {
	n.Send(Message{
		To:       attendee,
		Settings: settings,
		Subject:  models.SubjectPayment,
		Title:    "Refund issued",
		Body: fmt.Sprintf(
			"Your payment for %q has been refunded.",
			sessionTitle,
		),
	})
}

func (n *Notifier) SessionReminder(
	to *models.User,
	settings *models.NotificationSettings,
	sessionTitle string,
	startsAt string,
	meetingLink string,
) {
	body := fmt.Sprintf(
		"Reminder: %q starts at %s.",
		sessionTitle, startsAt,
	)
	if meetingLink != "" {
		body += " Join here: " + meetingLink
	}
	n.Send(Message{
		To:       to,
		Settings: settings,
		Subject:  models.SubjectReminder,
		Title:    "Upcoming session",
		Body:     body,
	})
}
