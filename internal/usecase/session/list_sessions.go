package session

import (
	"context"

	domain "github.com/neuromancers/session-scheduler/internal/domain/session"
	"github.com/neuromancers/session-scheduler/internal/models"
)

type ListSessions struct {
	repo domain.Repository
}

func NewListSessions(repo domain.Repository) *ListSessions {
	return &ListSessions{repo: repo}
}

func (uc *ListSessions) Execute(
	ctx context.Context,
	filter domain.ListFilter,
) ([]models.Session, error) {
	return uc.repo.ListPublishedSessions(ctx, filter)
}
