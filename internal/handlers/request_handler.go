package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/neuromancers/session-scheduler/internal/calendar"
	domain "github.com/neuromancers/session-scheduler/internal/domain/session"
	"github.com/neuromancers/session-scheduler/internal/dto"
	"github.com/neuromancers/session-scheduler/internal/httperr"
	"github.com/neuromancers/session-scheduler/internal/httpresp"
	ucSession "github.com/neuromancers/session-scheduler/internal/usecase/session"
)

// ======================================================
// HANDLER
// ======================================================

// RequestHandler covers the attendee side: making requests, listing
// them, withdrawing, reviewing, and exporting the calendar.
type RequestHandler struct {
	createUC   *ucSession.CreateRequest
	listUC     *ucSession.ListMyRequests
	withdrawUC *ucSession.WithdrawRequest
	paymentUC  *ucSession.GetRequestPayment
	reviewUC   *ucSession.CreateReview
	appName    string
}

func NewRequestHandler(
	createUC *ucSession.CreateRequest,
	listUC *ucSession.ListMyRequests,
	withdrawUC *ucSession.WithdrawRequest,
	paymentUC *ucSession.GetRequestPayment,
	reviewUC *ucSession.CreateReview,
	appName string,
) *RequestHandler {
	return &RequestHandler{
		createUC:   createUC,
		listUC:     listUC,
		withdrawUC: withdrawUC,
		paymentUC:  paymentUC,
		reviewUC:   reviewUC,
		appName:    appName,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateSessionRequestBody struct {
	// Hidden booking form fields, submitted verbatim.
	StartsAt string `json:"starts_at" binding:"required"`
	EndsAt   string `json:"ends_at" binding:"required"`

	Language           string `json:"language"`
	AccessibilityNeeds string `json:"accessibility_needs"`

	PayConcessionaryPrice bool `json:"pay_concessionary_price"`
}

type CreateReviewBody struct {
	Rating  int    `json:"rating" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// ======================================================
// HANDLERS
// ======================================================

func (h *RequestHandler) Create(c *gin.Context) {
	sessionID, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	var body CreateSessionRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	req, err := h.createUC.Execute(c.Request.Context(), ucSession.CreateRequestInput{
		SessionID:             sessionID,
		AttendeeID:            currentUserID(c),
		StartsAt:              body.StartsAt,
		EndsAt:                body.EndsAt,
		Language:              body.Language,
		AccessibilityNeeds:    body.AccessibilityNeeds,
		PayConcessionaryPrice: body.PayConcessionaryPrice,
	})
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.Created(c, req)
}

func (h *RequestHandler) ListMine(c *gin.Context) {
	requests, err := h.listUC.Execute(c.Request.Context(), currentUserID(c))
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	out := make([]dto.RequestListDTO, 0, len(requests))
	for i := range requests {
		out = append(out, dto.NewRequestListDTO(&requests[i]))
	}

	httpresp.List(c, out)
}

func (h *RequestHandler) Withdraw(c *gin.Context) {
	requestID, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	req, err := h.withdrawUC.Execute(c.Request.Context(), ucSession.WithdrawRequestInput{
		RequestID:  requestID,
		AttendeeID: currentUserID(c),
	})
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.OK(c, dto.NewRequestListDTO(req))
}

// PaymentStatus reports the live state of the payment behind one of the
// caller's requests.
func (h *RequestHandler) PaymentStatus(c *gin.Context) {
	requestID, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	intent, err := h.paymentUC.Execute(c.Request.Context(), ucSession.GetRequestPaymentInput{
		RequestID:  requestID,
		AttendeeID: currentUserID(c),
	})
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"status":   intent.Status,
		"amount":   intent.Amount,
		"currency": intent.Currency,
	})
}

func (h *RequestHandler) CreateReview(c *gin.Context) {
	sessionID, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	var body CreateReviewBody
	if err := c.ShouldBindJSON(&body); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	review, err := h.reviewUC.Execute(c.Request.Context(), ucSession.CreateReviewInput{
		SessionID:  sessionID,
		AttendeeID: currentUserID(c),
		Rating:     body.Rating,
		Content:    body.Content,
	})
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.Created(c, review)
}

// ======================================================
// CALENDAR EXPORT
// ======================================================

// ExportCalendar renders the caller's approved upcoming sessions as an
// iCalendar file.
func (h *RequestHandler) ExportCalendar(c *gin.Context) {
	requests, err := h.listUC.Execute(c.Request.Context(), currentUserID(c))
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	var events []calendar.Event
	for i := range requests {
		r := &requests[i]
		if r.Status != string(domain.StatusApproved) {
			continue
		}
		events = append(events, calendar.Event{
			UID:         r.ID,
			Summary:     calendar.EventTitle(r.Session.Title, r.Session.Host.Username),
			Description: r.Session.Description,
			StartsAt:    r.StartsAt,
			EndsAt:      r.EndsAt,
		})
	}

	ics := calendar.Render(h.appName, events)

	c.Header("Content-Disposition", `attachment; filename="sessions.ics"`)
	c.Data(200, "text/calendar; charset=utf-8", []byte(ics))
}
