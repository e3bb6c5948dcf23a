package session

import (
	"context"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/neuromancers/session-scheduler/internal/audit"
	domain "github.com/neuromancers/session-scheduler/internal/domain/session"
	"github.com/neuromancers/session-scheduler/internal/httperr"
	"github.com/neuromancers/session-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateSessionInput struct {
	HostID uuid.UUID

	Title       string
	Description string

	Languages []string
	Durations []int

	Currency                  string
	Price                     int64
	ConcessionaryPrice        *int64
	PerHourPrice              *int64
	ConcessionaryPerHourPrice *int64

	AccessBeforePayment          bool
	RequireRequestApproval       bool
	RequireConcessionaryApproval bool
	RequireRefundApproval        bool

	Filters string
}

// ======================================================
// USE CASE
// ======================================================

type CreateSession struct {
	repo   domain.Repository
	grants Grants
	audit  AuditTrail
}

func NewCreateSession(
	repo domain.Repository,
	grants Grants,
	audit AuditTrail,
) *CreateSession {
	return &CreateSession{
		repo:   repo,
		grants: grants,
		audit:  audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateSession) Execute(
	ctx context.Context,
	in CreateSessionInput,
) (*models.Session, error) {

	// --------------------------------------------------
	// 1. Host must exist and be a peer
	// --------------------------------------------------
	host, err := uc.repo.GetUserByID(ctx, in.HostID)
	if err != nil {
		return nil, httperr.ErrBusiness("host_not_found")
	}
	if host.Role != models.RolePeer && host.Role != models.RoleAdmin {
		return nil, httperr.ErrBusiness("not_a_peer")
	}

	// --------------------------------------------------
	// 2. Field validation
	// --------------------------------------------------
	if strings.TrimSpace(in.Title) == "" {
		return nil, httperr.ErrBusiness("title_required")
	}
	if err := validatePricing(
		in.Price,
		in.ConcessionaryPrice,
		in.PerHourPrice,
		in.ConcessionaryPerHourPrice,
	); err != nil {
		return nil, err
	}
	for _, d := range in.Durations {
		if d <= 0 {
			return nil, httperr.ErrBusiness("invalid_duration")
		}
	}

	// A free session has no payment to wait for, so it may not withhold
	// access until one is made.
	free := in.Price == 0 && (in.PerHourPrice == nil || *in.PerHourPrice == 0)
	if free && !in.AccessBeforePayment {
		return nil, httperr.ErrBusiness("free_session_requires_access")
	}

	filters := in.Filters
	if filters == "" {
		filters = "{}"
	}

	// --------------------------------------------------
	// 3. Persist (unpublished)
	// --------------------------------------------------
	s := &models.Session{
		HostID:      in.HostID,
		Title:       in.Title,
		Description: in.Description,
		Languages:   joinCSV(in.Languages),
		Durations:   joinInts(in.Durations),

		Currency:                  currencyOrDefault(in.Currency),
		Price:                     in.Price,
		ConcessionaryPrice:        in.ConcessionaryPrice,
		PerHourPrice:              in.PerHourPrice,
		ConcessionaryPerHourPrice: in.ConcessionaryPerHourPrice,

		AccessBeforePayment:          in.AccessBeforePayment,
		RequireRequestApproval:       in.RequireRequestApproval,
		RequireConcessionaryApproval: in.RequireConcessionaryApproval,
		RequireRefundApproval:        in.RequireRefundApproval,

		Filters: filters,
	}

	if err := uc.repo.SaveSession(ctx, s); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 4. Object permissions for the host
	// --------------------------------------------------
	if err := uc.grants.OnSessionCreated(ctx, s); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 5. Audit
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		UserID:   &in.HostID,
		Action:   "session_created",
		Entity:   "session",
		EntityID: &s.ID,
	})

	return s, nil
}

// --------------------------------------------------
// Helpers
// --------------------------------------------------

func validatePricing(
	price int64,
	concessionary *int64,
	perHour *int64,
	concessionaryPerHour *int64,
) error {
	if price < 0 {
		return httperr.ErrBusiness("negative_price")
	}
	for _, p := range []*int64{concessionary, perHour, concessionaryPerHour} {
		if p != nil && *p < 0 {
			return httperr.ErrBusiness("negative_price")
		}
	}
	if concessionary != nil && *concessionary > price {
		return httperr.ErrBusiness("concessionary_above_standard")
	}
	if concessionaryPerHour != nil && perHour != nil && *concessionaryPerHour > *perHour {
		return httperr.ErrBusiness("concessionary_above_standard")
	}
	return nil
}

func joinCSV(parts []string) string {
	var kept []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ",")
}

func joinInts(ns []int) string {
	parts := make([]string, 0, len(ns))
	for _, n := range ns {
		parts = append(parts, strconv.Itoa(n))
	}
	return strings.Join(parts, ",")
}

func currencyOrDefault(c string) string {
	c = strings.ToUpper(strings.TrimSpace(c))
	if len(c) != 3 {
		return "GBP"
	}
	return c
}
