// Package notifier delivers notifications through the lingohabit tray agent,
// a separate desktop process that owns the OS notification permission. The
// agent writes a lockfile with its webhook port, pid and shared secret; when
// the agent is not running, delivery permission is reported as denied.
package notifier

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/lucasmonteiro/lingohabit/internal/constants"
	"github.com/lucasmonteiro/lingohabit/internal/notify"
)

var (
	userConfigDirFunc = os.UserConfigDir
	findProcessFunc   = ps.FindProcess
)

type TrayNotifier struct{}

type WebhookPayload struct {
	Title              string          `json:"title"`
	Body               string          `json:"body"`
	Tag                string          `json:"tag"`
	RequireInteraction bool            `json:"require_interaction"`
	Actions            []notify.Action `json:"actions,omitempty"`
	DurationMs         uint32          `json:"duration_ms"`
}

func New() *TrayNotifier {
	return &TrayNotifier{}
}

// Permission reports granted only when the tray agent is running and its
// lockfile is valid. The check runs fresh on every call.
func (n *TrayNotifier) Permission() notify.Permission {
	if _, _, err := n.agentEndpoint(); err != nil {
		return notify.PermissionDenied
	}
	return notify.PermissionGranted
}

func (n *TrayNotifier) Show(title, body string, opts notify.ShowOptions) error {
	port, secret, err := n.agentEndpoint()
	if err != nil {
		return err
	}

	payload := WebhookPayload{
		Title:              title,
		Body:               body,
		Tag:                opts.Tag,
		RequireInteraction: opts.RequireInteraction,
		Actions:            opts.Actions,
		DurationMs:         constants.NotificationDurationMs,
	}

	return sendNotification(port, secret, payload)
}

func (n *TrayNotifier) agentEndpoint() (string, string, error) {
	configPath, err := GetTrayAppConfigDir()
	if err != nil {
		return "", "", err
	}
	return findAndValidateTrayProcess(filepath.Join(configPath, constants.NotifierLockfileName))
}

// GetTrayAppConfigDir returns the configuration directory used by the tray agent.
func GetTrayAppConfigDir() (string, error) {
	configDir, err := userConfigDirFunc()
	if err != nil {
		return "", fmt.Errorf("failed to get user config dir: %w", err)
	}

	trayConfigDir := filepath.Join(configDir, constants.TrayAppIdentifier)

	// Check for settings.json to see if a custom lockfile dir is set
	settingsPath := filepath.Join(trayConfigDir, "settings.json")
	if _, err := os.Stat(settingsPath); err == nil {
		data, err := os.ReadFile(settingsPath)
		if err == nil {
			var store struct {
				Settings struct {
					LockfileDir *string `json:"lockfile_dir"`
				} `json:"settings"`
			}
			if err := json.Unmarshal(data, &store); err == nil {
				if store.Settings.LockfileDir != nil && *store.Settings.LockfileDir != "" {
					return *store.Settings.LockfileDir, nil
				}
			}
		}
	}

	return trayConfigDir, nil
}

// findAndValidateTrayProcess parses a "port|pid|secret" lockfile and verifies
// the pid still belongs to a lingohabit-tray executable, so a stale lockfile
// from a crashed agent never causes a blind POST to a reused port.
func findAndValidateTrayProcess(lockfilePath string) (string, string, error) {
	content, err := os.ReadFile(lockfilePath)
	if err != nil {
		return "", "", errors.New("lingohabit-tray is not running")
	}

	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 3 {
		return "", "", fmt.Errorf("lockfile %s is malformed", filepath.Base(lockfilePath))
	}
	port, pidStr, secret := parts[0], parts[1], parts[2]

	portNum, err := strconv.Atoi(port)
	if err != nil || portNum < 1 || portNum > 65535 {
		return "", "", fmt.Errorf("lockfile has an unusable port %q", port)
	}
	pid, err := strconv.Atoi(pidStr)
	if err != nil {
		return "", "", fmt.Errorf("lockfile has an unusable pid %q", pidStr)
	}
	if strings.TrimSpace(secret) == "" {
		return "", "", errors.New("lockfile has an empty secret")
	}

	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return "", "", errors.New("lingohabit-tray process not running")
	}
	if !strings.HasPrefix(process.Executable(), "lingohabit-tray") {
		return "", "", fmt.Errorf("pid %d belongs to %s, not lingohabit-tray", pid, process.Executable())
	}

	return port, secret, nil
}

func sendNotification(port string, secret string, payload WebhookPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, "http://127.0.0.1:"+port, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Lingohabit-Secret", secret)

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(res.Body)
		return fmt.Errorf("tray agent rejected notification: status %d: %s", res.StatusCode, string(detail))
	}
	return nil
}

var _ notify.Notifier = (*TrayNotifier)(nil)
