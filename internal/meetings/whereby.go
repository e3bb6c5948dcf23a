package meetings

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/neuromancers/session-scheduler/internal/config"
)

var (
	ErrUnauthorized = errors.New("meetings: invalid api key")
	ErrForbidden    = errors.New("meetings: access denied")
	ErrNotFound     = errors.New("meetings: meeting not found")
	ErrRateLimited  = errors.New("meetings: rate limited")
)

// Client provisions video rooms through the Whereby REST API.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	log     *zap.Logger
}

func New(cfg *config.Config, log *zap.Logger) *Client {
	return &Client{
		baseURL: cfg.WherebyAPIURL,
		apiKey:  cfg.WherebyAPIKey,
		http:    &http.Client{Timeout: 15 * time.Second},
		log:     log,
	}
}

type Meeting struct {
	MeetingID   string `json:"meetingId"`
	RoomURL     string `json:"roomUrl"`
	HostRoomURL string `json:"hostRoomUrl"`
}

type createMeetingRequest struct {
	EndDate string   `json:"endDate"`
	Fields  []string `json:"fields"`
}

// CreateMeeting provisions a room that stays open until endDate.
func (c *Client) CreateMeeting(
	ctx context.Context,
	endDate time.Time,
) (*Meeting, error) {

	body, err := json.Marshal(createMeetingRequest{
		EndDate: endDate.UTC().Format(time.RFC3339),
		Fields:  []string{"hostRoomUrl"},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+"/meetings",
		bytes.NewReader(body),
	)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := statusError(resp.StatusCode); err != nil {
		c.log.Error("whereby request failed",
			zap.Int("status", resp.StatusCode))
		return nil, err
	}

	var meeting Meeting
	if err := json.NewDecoder(resp.Body).Decode(&meeting); err != nil {
		return nil, err
	}

	return &meeting, nil
}

// DeleteMeeting tears a room down early.
func (c *Client) DeleteMeeting(ctx context.Context, meetingID string) error {
	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodDelete,
		c.baseURL+"/meetings/"+meetingID,
		nil,
	)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return statusError(resp.StatusCode)
}

func statusError(code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusUnauthorized:
		return ErrUnauthorized
	case code == http.StatusForbidden:
		return ErrForbidden
	case code == http.StatusNotFound:
		return ErrNotFound
	case code == http.StatusTooManyRequests:
		return ErrRateLimited
	default:
		return fmt.Errorf("meetings: unexpected status %d", code)
	}
}
