package reminders

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/neuromancers/session-scheduler/internal/cache"
	"github.com/neuromancers/session-scheduler/internal/domain/schedule"
	"github.com/neuromancers/session-scheduler/internal/meetings"
	"github.com/neuromancers/session-scheduler/internal/models"
	"github.com/neuromancers/session-scheduler/internal/notifications"
)

const (
	meetingLinkLead   = time.Hour
	meetingLinkBuffer = 5 * time.Minute

	// Each reminder window must span at least half the job's run
	// interval on both sides, or sessions starting between two ticks'
	// windows never get the reminder. Day reminders run hourly, hour
	// reminders every 15 minutes.
	dayReminderBuffer  = 30 * time.Minute
	hourReminderBuffer = 10 * time.Minute
)

// Runner drives the scheduled background work: provisioning meeting
// links shortly before sessions start and sending reminder emails.
// Redis markers keep each send idempotent across restarts and
// overlapping runs.
type Runner struct {
	db       *gorm.DB
	cache    *cache.Cache
	meetings *meetings.Client
	notifier *notifications.Notifier
	log      *zap.Logger
	cron     *cron.Cron
}

func NewRunner(
	db *gorm.DB,
	c *cache.Cache,
	m *meetings.Client,
	n *notifications.Notifier,
	log *zap.Logger,
) *Runner {
	return &Runner{
		db:       db,
		cache:    c,
		meetings: m,
		notifier: n,
		log:      log,
		cron:     cron.New(),
	}
}

// Start registers the jobs and launches the scheduler.
func (r *Runner) Start() error {
	if _, err := r.cron.AddFunc("*/10 * * * *", r.provisionMeetingLinks); err != nil {
		return err
	}
	if _, err := r.cron.AddFunc("@hourly", r.sendDayReminders); err != nil {
		return err
	}
	if _, err := r.cron.AddFunc("*/15 * * * *", r.sendHourReminders); err != nil {
		return err
	}

	r.cron.Start()
	r.log.Info("reminder scheduler started")
	return nil
}

func (r *Runner) Stop() {
	r.cron.Stop()
}

// upcoming returns scheduled sessions whose request starts inside the
// window, with the rows needed to notify both sides.
func (r *Runner) upcoming(
	ctx context.Context,
	from time.Time,
	to time.Time,
) ([]models.ScheduledSession, error) {

	var scheduled []models.ScheduledSession
	err := r.db.WithContext(ctx).
		Preload("Request").
		Preload("Request.Attendee").
		Preload("Request.Session").
		Preload("Request.Session.Host").
		Joins("JOIN session_requests ON session_requests.id = scheduled_sessions.request_id").
		Where(
			"session_requests.status = 'approved' AND session_requests.starts_at >= ? AND session_requests.starts_at < ?",
			from, to,
		).
		Find(&scheduled).Error

	return scheduled, err
}

// provisionMeetingLinks creates a video room for every session starting
// within the next hour that does not have one yet.
func (r *Runner) provisionMeetingLinks() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	now := time.Now().UTC()
	scheduled, err := r.upcoming(ctx, now, now.Add(meetingLinkLead+meetingLinkBuffer))
	if err != nil {
		r.log.Error("listing sessions for meeting links", zap.Error(err))
		return
	}

	for _, s := range scheduled {
		if s.MeetingLink != "" {
			continue
		}
		if !r.cache.SetNX(ctx, "meeting_link:"+s.ID.String(), 2*time.Hour) {
			continue
		}

		meeting, err := r.meetings.CreateMeeting(ctx, s.Request.EndsAt.Add(time.Hour))
		if err != nil {
			r.log.Error("creating meeting room",
				zap.String("scheduled_session_id", s.ID.String()),
				zap.Error(err))
			// Release the marker so the next run retries.
			r.cache.Delete(ctx, "meeting_link:"+s.ID.String())
			continue
		}

		if err := r.db.WithContext(ctx).
			Model(&models.ScheduledSession{}).
			Where("id = ?", s.ID).
			Updates(map[string]any{
				"meeting_id":   meeting.MeetingID,
				"meeting_link": meeting.RoomURL,
			}).Error; err != nil {
			r.log.Error("saving meeting link",
				zap.String("scheduled_session_id", s.ID.String()),
				zap.Error(err))
		}
	}
}

func (r *Runner) sendDayReminders() {
	r.sendReminders("reminder:day:", 24*time.Hour, dayReminderBuffer)
}

func (r *Runner) sendHourReminders() {
	r.sendReminders("reminder:hour:", time.Hour, hourReminderBuffer)
}

func (r *Runner) sendReminders(
	keyPrefix string,
	lead time.Duration,
	buffer time.Duration,
) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	now := time.Now().UTC()
	scheduled, err := r.upcoming(ctx, now.Add(lead-buffer), now.Add(lead+buffer))
	if err != nil {
		r.log.Error("listing sessions for reminders", zap.Error(err))
		return
	}

	for _, s := range scheduled {
		if !r.cache.SetNX(ctx, keyPrefix+s.ID.String(), lead+buffer) {
			continue
		}

		startsAt := schedule.Timestamp(s.Request.StartsAt)
		title := s.Request.Session.Title

		r.notifier.SessionReminder(
			&s.Request.Attendee,
			r.settingsFor(ctx, s.Request.AttendeeID.String()),
			title, startsAt, s.MeetingLink,
		)
		r.notifier.SessionReminder(
			&s.Request.Session.Host,
			r.settingsFor(ctx, s.Request.Session.HostID.String()),
			title, startsAt, s.MeetingLink,
		)
	}
}

func (r *Runner) settingsFor(
	ctx context.Context,
	userID string,
) *models.NotificationSettings {

	var settings models.NotificationSettings
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&settings).Error; err != nil {
		return nil
	}
	return &settings
}
