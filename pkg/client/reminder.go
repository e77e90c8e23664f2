package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/bornholm/garden/internal/http/handler/api"
	"github.com/pkg/errors"
)

type CreateReminderRequest struct {
	PlantID    string    `json:"plant_id"`
	Type       string    `json:"reminder_type"`
	RemindTime time.Time `json:"remind_time"`
	Notes      string    `json:"notes,omitempty"`
}

type UpdateReminderRequest struct {
	PlantID    *string    `json:"plant_id,omitempty"`
	Type       *string    `json:"reminder_type,omitempty"`
	RemindTime *time.Time `json:"remind_time,omitempty"`
	Notes      *string    `json:"notes,omitempty"`
}

func (c *Client) ListReminders(ctx context.Context, opts ListOptions) ([]api.Reminder, int64, error) {
	var res api.ListResponse[api.Reminder]
	if err := c.jsonRequest(ctx, http.MethodGet, "/reminders"+opts.query(), nil, &res); err != nil {
		return nil, 0, errors.WithStack(err)
	}

	return res.Data, res.Count, nil
}

func (c *Client) GetReminder(ctx context.Context, reminderID string) (*api.Reminder, error) {
	var reminder api.Reminder
	if err := c.jsonRequest(ctx, http.MethodGet, fmt.Sprintf("/reminders/%s", reminderID), nil, &reminder); err != nil {
		return nil, errors.WithStack(err)
	}

	return &reminder, nil
}

func (c *Client) CreateReminder(ctx context.Context, req CreateReminderRequest) (*api.Reminder, error) {
	var reminder api.Reminder
	if err := c.jsonRequest(ctx, http.MethodPost, "/reminders", req, &reminder); err != nil {
		return nil, errors.WithStack(err)
	}

	return &reminder, nil
}

func (c *Client) UpdateReminder(ctx context.Context, reminderID string, req UpdateReminderRequest) (*api.Reminder, error) {
	var reminder api.Reminder
	if err := c.jsonRequest(ctx, http.MethodPut, fmt.Sprintf("/reminders/%s", reminderID), req, &reminder); err != nil {
		return nil, errors.WithStack(err)
	}

	return &reminder, nil
}

func (c *Client) DeleteReminder(ctx context.Context, reminderID string) error {
	var res api.MessageResponse
	if err := c.jsonRequest(ctx, http.MethodDelete, fmt.Sprintf("/reminders/%s", reminderID), nil, &res); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// LastScan returns the outcome of the latest due-reminder scan. It
// requires superuser credentials.
func (c *Client) LastScan(ctx context.Context) (*api.ScanReport, error) {
	var report api.ScanReport
	if err := c.jsonRequest(ctx, http.MethodGet, "/scanner/last", nil, &report); err != nil {
		return nil, errors.WithStack(err)
	}

	return &report, nil
}
