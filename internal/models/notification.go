package models

import "time"

// NotificationKind identifies one of the closed set of notification types.
type NotificationKind string

const (
	KindReminderPrimary   NotificationKind = "reminder_primary"
	KindReminderSecondary NotificationKind = "reminder_secondary"
	KindAlmost            NotificationKind = "almost"
	KindGoalDone          NotificationKind = "goal_done"
	KindWeeklySummary     NotificationKind = "weekly_summary"
	KindTest              NotificationKind = "test"
)

// DispatchResult reports the outcome of a single dispatch attempt.
type DispatchResult string

const (
	ResultDelivered DispatchResult = "delivered"
	ResultSkipped   DispatchResult = "skipped" // permission not granted
	ResultFailed    DispatchResult = "failed"
)

// NotificationLogEntry is an append-only record of one dispatch attempt.
type NotificationLogEntry struct {
	ID           string           `json:"id"`
	Kind         NotificationKind `json:"kind"`
	ScheduledFor time.Time        `json:"scheduled_for"`
	DeliveredAt  *time.Time       `json:"delivered_at,omitempty"`
	ActionTaken  string           `json:"action_taken,omitempty"`
	Canceled     bool             `json:"canceled"`
	Result       DispatchResult   `json:"result"`
}
