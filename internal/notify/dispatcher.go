package notify

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lucasmonteiro/lingohabit/internal/clock"
	"github.com/lucasmonteiro/lingohabit/internal/logger"
	"github.com/lucasmonteiro/lingohabit/internal/models"
	"github.com/lucasmonteiro/lingohabit/internal/storage"
)

// Dispatcher renders and delivers notifications. Missing permission turns a
// dispatch into a logged no-op, never an error.
type Dispatcher struct {
	notifier Notifier
	store    storage.Provider
	clock    clock.Clock
}

func NewDispatcher(notifier Notifier, store storage.Provider, clk clock.Clock) *Dispatcher {
	return &Dispatcher{
		notifier: notifier,
		store:    store,
		clock:    clk,
	}
}

// Dispatch delivers one notification of the given kind. Every call appends
// exactly one log entry, whatever the outcome. The returned error reports log
// persistence problems only; delivery failure is expressed in the result.
func (d *Dispatcher) Dispatch(kind models.NotificationKind, data TemplateData) (models.DispatchResult, error) {
	payload, ok := BuildPayload(kind, data)
	if !ok {
		return models.ResultFailed, fmt.Errorf("unknown notification kind %q", kind)
	}

	now := d.clock.Now()
	entry := models.NotificationLogEntry{
		ID:           uuid.NewString(),
		Kind:         kind,
		ScheduledFor: now,
	}

	var result models.DispatchResult
	if d.notifier.Permission() != PermissionGranted {
		result = models.ResultSkipped
		logger.Debug("Notification skipped, permission not granted", "kind", kind)
	} else if err := d.notifier.Show(payload.Title, payload.Body, payload.Options); err != nil {
		result = models.ResultFailed
		logger.Warn("Notification delivery failed", "kind", kind, "error", err)
	} else {
		result = models.ResultDelivered
		deliveredAt := d.clock.Now()
		entry.DeliveredAt = &deliveredAt
		logger.Debug("Notification delivered", "kind", kind)
	}
	entry.Result = result

	if err := d.store.AppendNotificationLog(entry); err != nil {
		return result, fmt.Errorf("failed to record notification log: %w", err)
	}

	return result, nil
}

// LogCanceled appends a log entry for a reminder that was scheduled but
// cancelled before it could fire.
func (d *Dispatcher) LogCanceled(kind models.NotificationKind, scheduledFor time.Time) error {
	return d.store.AppendNotificationLog(models.NotificationLogEntry{
		ID:           uuid.NewString(),
		Kind:         kind,
		ScheduledFor: scheduledFor,
		Canceled:     true,
		Result:       models.ResultSkipped,
	})
}
