package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/neuromancers/session-scheduler/internal/dto"
	"github.com/neuromancers/session-scheduler/internal/httperr"
	"github.com/neuromancers/session-scheduler/internal/httpresp"
	ucSession "github.com/neuromancers/session-scheduler/internal/usecase/session"
)

// ======================================================
// HANDLER
// ======================================================

// SessionHandler covers the host side: creating sessions, publishing,
// managing availability and deciding requests.
type SessionHandler struct {
	createUC        *ucSession.CreateSession
	publishUC       *ucSession.PublishSession
	availabilityUC  *ucSession.ManageAvailability
	listRequestsUC  *ucSession.ListSessionRequests
	approveUC       *ucSession.ApproveRequest
	rejectUC        *ucSession.RejectRequest
	approveRefundUC *ucSession.ApproveRefund
}

func NewSessionHandler(
	createUC *ucSession.CreateSession,
	publishUC *ucSession.PublishSession,
	availabilityUC *ucSession.ManageAvailability,
	listRequestsUC *ucSession.ListSessionRequests,
	approveUC *ucSession.ApproveRequest,
	rejectUC *ucSession.RejectRequest,
	approveRefundUC *ucSession.ApproveRefund,
) *SessionHandler {
	return &SessionHandler{
		createUC:        createUC,
		publishUC:       publishUC,
		availabilityUC:  availabilityUC,
		listRequestsUC:  listRequestsUC,
		approveUC:       approveUC,
		rejectUC:        rejectUC,
		approveRefundUC: approveRefundUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateSessionRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Languages   []string `json:"languages" binding:"required"`
	Durations   []int    `json:"durations" binding:"required"`

	Currency                  string `json:"currency"`
	Price                     int64  `json:"price"`
	ConcessionaryPrice        *int64 `json:"concessionary_price"`
	PerHourPrice              *int64 `json:"per_hour_price"`
	ConcessionaryPerHourPrice *int64 `json:"concessionary_per_hour_price"`

	AccessBeforePayment          *bool `json:"access_before_payment"`
	RequireRequestApproval       *bool `json:"require_request_approval"`
	RequireConcessionaryApproval *bool `json:"require_concessionary_approval"`
	RequireRefundApproval        *bool `json:"require_refund_approval"`

	Filters string `json:"filters"`
}

type AddAvailabilityRequest struct {
	StartsAt time.Time `json:"starts_at" binding:"required"`
	EndsAt   time.Time `json:"ends_at" binding:"required"`

	Occurrence         string     `json:"occurrence"`
	OccurrenceStartsAt *time.Time `json:"occurrence_starts_at"`
	OccurrenceEndsAt   *time.Time `json:"occurrence_ends_at"`
}

type RejectRequestBody struct {
	Message string `json:"message"`
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

// ======================================================
// SESSIONS
// ======================================================

func (h *SessionHandler) Create(c *gin.Context) {
	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	s, err := h.createUC.Execute(c.Request.Context(), ucSession.CreateSessionInput{
		HostID:      currentUserID(c),
		Title:       req.Title,
		Description: req.Description,
		Languages:   req.Languages,
		Durations:   req.Durations,

		Currency:                  req.Currency,
		Price:                     req.Price,
		ConcessionaryPrice:        req.ConcessionaryPrice,
		PerHourPrice:              req.PerHourPrice,
		ConcessionaryPerHourPrice: req.ConcessionaryPerHourPrice,

		AccessBeforePayment:          boolOr(req.AccessBeforePayment, true),
		RequireRequestApproval:       boolOr(req.RequireRequestApproval, true),
		RequireConcessionaryApproval: boolOr(req.RequireConcessionaryApproval, true),
		RequireRefundApproval:        boolOr(req.RequireRefundApproval, true),

		Filters: req.Filters,
	})
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.Created(c, s)
}

func (h *SessionHandler) Publish(c *gin.Context) {
	h.setPublished(c, true)
}

func (h *SessionHandler) Unpublish(c *gin.Context) {
	h.setPublished(c, false)
}

func (h *SessionHandler) setPublished(c *gin.Context, publish bool) {
	sessionID, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	s, err := h.publishUC.Execute(c.Request.Context(), ucSession.PublishSessionInput{
		SessionID: sessionID,
		HostID:    currentUserID(c),
		Publish:   publish,
	})
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.OK(c, s)
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *SessionHandler) AddAvailability(c *gin.Context) {
	sessionID, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	var req AddAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	av, err := h.availabilityUC.Add(c.Request.Context(), ucSession.AddAvailabilityInput{
		SessionID:          sessionID,
		HostID:             currentUserID(c),
		StartsAt:           req.StartsAt,
		EndsAt:             req.EndsAt,
		Occurrence:         req.Occurrence,
		OccurrenceStartsAt: req.OccurrenceStartsAt,
		OccurrenceEndsAt:   req.OccurrenceEndsAt,
	})
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.Created(c, av)
}

func (h *SessionHandler) RemoveAvailability(c *gin.Context) {
	sessionID, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	availabilityID, ok := paramUUID(c, "availabilityId")
	if !ok {
		return
	}

	if err := h.availabilityUC.Remove(
		c.Request.Context(),
		sessionID,
		currentUserID(c),
		availabilityID,
	); err != nil {
		writeBusinessError(c, err)
		return
	}

	c.Status(204)
}

// ======================================================
// REQUEST DECISIONS
// ======================================================

func (h *SessionHandler) ListRequests(c *gin.Context) {
	sessionID, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	requests, err := h.listRequestsUC.Execute(
		c.Request.Context(),
		sessionID,
		currentUserID(c),
	)
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

func (h *SessionHandler) ApproveRequest(c *gin.Context) {
	requestID, ok := paramUUID(c, "requestId")
	if !ok {
		return
	}

	req, err := h.approveUC.Execute(c.Request.Context(), ucSession.ApproveRequestInput{
		RequestID: requestID,
		HostID:    currentUserID(c),
	})
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.OK(c, dto.NewRequestListDTO(req))
}

func (h *SessionHandler) RejectRequest(c *gin.Context) {
	requestID, ok := paramUUID(c, "requestId")
	if !ok {
		return
	}

	var body RejectRequestBody
	_ = c.ShouldBindJSON(&body)

	req, err := h.rejectUC.Execute(c.Request.Context(), ucSession.RejectRequestInput{
		RequestID: requestID,
		HostID:    currentUserID(c),
		Message:   body.Message,
	})
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.OK(c, dto.NewRequestListDTO(req))
}

func (h *SessionHandler) ApproveRefund(c *gin.Context) {
	requestID, ok := paramUUID(c, "requestId")
	if !ok {
		return
	}

	req, err := h.approveRefundUC.Execute(c.Request.Context(), ucSession.ApproveRefundInput{
		RequestID: requestID,
		HostID:    currentUserID(c),
	})
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.OK(c, dto.NewRequestListDTO(req))
}
