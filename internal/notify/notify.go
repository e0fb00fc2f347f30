// Package notify owns notification dispatch: it is the only component that
// talks to the external notifier, and every dispatch attempt lands in the
// append-only notification log regardless of outcome.
package notify

// Permission is the notifier's delivery permission state. It is queried per
// dispatch decision, never cached beyond one.
type Permission string

const (
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
)

// Action is one interactive button on a notification.
type Action struct {
	Action string `json:"action"`
	Title  string `json:"title"`
}

// ShowOptions carries the delivery options for one notification.
type ShowOptions struct {
	Tag                string   `json:"tag"`
	RequireInteraction bool     `json:"require_interaction"`
	Actions            []Action `json:"actions,omitempty"`
}

// Notifier is the external delivery collaborator.
type Notifier interface {
	Permission() Permission
	// Show requests delivery. It is only called when permission is granted.
	Show(title, body string, opts ShowOptions) error
}
