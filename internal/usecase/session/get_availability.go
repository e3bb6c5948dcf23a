package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/neuromancers/session-scheduler/internal/domain/schedule"
	domain "github.com/neuromancers/session-scheduler/internal/domain/session"
	"github.com/neuromancers/session-scheduler/internal/httperr"
)

const availabilityCacheTTL = 2 * time.Minute

// SlotCache is the slice of the cache this use case needs. Satisfied by
// *cache.Cache.
type SlotCache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration)
}

type GetAvailability struct {
	repo  domain.Repository
	cache SlotCache
}

func NewGetAvailability(repo domain.Repository, c SlotCache) *GetAvailability {
	return &GetAvailability{repo: repo, cache: c}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.TimeSlot, error) {

	s, err := uc.repo.GetPublishedSession(ctx, in.SessionID)
	if err != nil {
		return nil, httperr.ErrBusiness("session_not_found")
	}

	day := in.Day.UTC()
	cacheKey := fmt.Sprintf(
		"availability:%s:%s",
		in.SessionID, day.Format("2006-01-02"),
	)

	if raw, ok := uc.cache.Get(ctx, cacheKey); ok {
		var cached []domain.TimeSlot
		if json.Unmarshal([]byte(raw), &cached) == nil {
			return cached, nil
		}
	}

	durations := s.DurationList()
	if len(durations) == 0 {
		return []domain.TimeSlot{}, nil
	}

	records, err := uc.repo.ListAvailability(ctx, in.SessionID)
	if err != nil {
		return nil, err
	}

	var windows []schedule.AvailabilityWindow
	for i := range records {
		windows = append(
			windows,
			domain.ProjectOnDay(&records[i], day, durations)...,
		)
	}
	if len(windows) == 0 {
		return []domain.TimeSlot{}, nil
	}

	dayStart := day.Truncate(24 * time.Hour)
	booked, err := uc.repo.ListApprovedRequestsBetween(
		ctx,
		in.SessionID,
		dayStart,
		dayStart.Add(24*time.Hour),
	)
	if err != nil {
		return nil, err
	}

	slots := []domain.TimeSlot{}

	for _, w := range windows {
		apIdx := 0

		for _, slot := range w.Slots(w.MinDuration()) {

			// skip requests that ended before this slot
			for apIdx < len(booked) && !booked[apIdx].EndsAt.After(slot.Start) {
				apIdx++
			}

			conflict := false
			if apIdx < len(booked) {
				b := booked[apIdx]
				if slot.Start.Before(b.EndsAt) && slot.End.After(b.StartsAt) {
					conflict = true
				}
			}

			if !conflict {
				slots = append(slots, domain.TimeSlot{
					Start: schedule.Timestamp(slot.Start),
					End:   schedule.Timestamp(slot.End),
				})
			}
		}
	}

	if raw, err := json.Marshal(slots); err == nil {
		uc.cache.Set(ctx, cacheKey, string(raw), availabilityCacheTTL)
	}

	return slots, nil
}
