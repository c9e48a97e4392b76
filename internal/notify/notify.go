// Package notify wraps the platform notification facility used for
// same-day reminders.
package notify

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

type Permission string

const (
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
)

type Message struct {
	Title string
	Body  string
}

type Notifier interface {
	RequestPermission(ctx context.Context) (Permission, error)
	Send(ctx context.Context, msg Message) error
}

// NoopNotifier grants permission and discards every message.
type NoopNotifier struct{}

func (NoopNotifier) RequestPermission(context.Context) (Permission, error) {
	return PermissionGranted, nil
}

func (NoopNotifier) Send(context.Context, Message) error { return nil }

// DeniedNotifier models a platform where the user refused notifications.
type DeniedNotifier struct{}

func (DeniedNotifier) RequestPermission(context.Context) (Permission, error) {
	return PermissionDenied, nil
}

func (DeniedNotifier) Send(context.Context, Message) error {
	return fmt.Errorf("notify: permission %s", PermissionDenied)
}

// ExecNotifier shells out to notify-send on Linux and osascript on macOS.
// Permission is granted only when the helper binary is on PATH.
type ExecNotifier struct {
	goos     string
	lookPath func(string) (string, error)
	command  func(ctx context.Context, name string, args ...string) *exec.Cmd
}

func NewExecNotifier() *ExecNotifier {
	return &ExecNotifier{goos: runtime.GOOS, lookPath: exec.LookPath, command: exec.CommandContext}
}

func (n *ExecNotifier) binary() string {
	switch n.goos {
	case "linux":
		return "notify-send"
	case "darwin":
		return "osascript"
	default:
		return ""
	}
}

func (n *ExecNotifier) RequestPermission(context.Context) (Permission, error) {
	bin := n.binary()
	if bin == "" {
		return PermissionDenied, nil
	}
	if _, err := n.lookPath(bin); err != nil {
		return PermissionDenied, nil
	}
	return PermissionGranted, nil
}

func (n *ExecNotifier) Send(ctx context.Context, msg Message) error {
	name, args := n.args(msg)
	if name == "" {
		return nil
	}
	if err := n.command(ctx, name, args...).Run(); err != nil {
		return fmt.Errorf("notify: %s: %w", name, err)
	}
	return nil
}

func (n *ExecNotifier) args(msg Message) (string, []string) {
	switch n.goos {
	case "linux":
		return "notify-send", []string{msg.Title, msg.Body}
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(msg.Body), escapeAppleScript(msg.Title))
		return "osascript", []string{"-e", script}
	default:
		return "", nil
	}
}

func escapeAppleScript(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}
