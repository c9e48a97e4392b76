package notify

import (
	"context"
	"errors"
	"os/exec"
	"testing"
)

func TestExecNotifierPermission(t *testing.T) {
	cases := []struct {
		name  string
		goos  string
		found bool
		want  Permission
	}{
		{name: "linux with notify-send", goos: "linux", found: true, want: PermissionGranted},
		{name: "linux without notify-send", goos: "linux", found: false, want: PermissionDenied},
		{name: "darwin with osascript", goos: "darwin", found: true, want: PermissionGranted},
		{name: "unsupported platform", goos: "plan9", found: true, want: PermissionDenied},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			n := &ExecNotifier{goos: tc.goos, lookPath: func(string) (string, error) {
				if tc.found {
					return "/usr/bin/x", nil
				}
				return "", exec.ErrNotFound
			}}
			got, err := n.RequestPermission(context.Background())
			if err != nil {
				t.Fatalf("request permission: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestExecNotifierArgs(t *testing.T) {
	linux := &ExecNotifier{goos: "linux"}
	name, args := linux.args(Message{Title: "Reminder", Body: "stretch"})
	if name != "notify-send" || len(args) != 2 || args[1] != "stretch" {
		t.Fatalf("unexpected linux command: %s %v", name, args)
	}

	mac := &ExecNotifier{goos: "darwin"}
	name, args = mac.args(Message{Title: `Say "hi"`, Body: `a\b`})
	if name != "osascript" || args[1] != `display notification "a\\b" with title "Say \"hi\""` {
		t.Fatalf("unexpected darwin command: %s %v", name, args)
	}

	other := &ExecNotifier{goos: "windows"}
	if err := other.Send(context.Background(), Message{Title: "x"}); err != nil {
		t.Fatalf("unsupported platform should be a silent no-op: %v", err)
	}
}

func TestExecNotifierSendFailure(t *testing.T) {
	n := &ExecNotifier{
		goos: "linux",
		command: func(ctx context.Context, _ string, _ ...string) *exec.Cmd {
			return exec.CommandContext(ctx, "/nonexistent/lifeboost-notify")
		},
	}
	if err := n.Send(context.Background(), Message{Title: "x", Body: "y"}); err == nil {
		t.Fatalf("expected an error from a missing binary")
	}
}

func TestStaticNotifiers(t *testing.T) {
	ctx := context.Background()
	if p, _ := (NoopNotifier{}).RequestPermission(ctx); p != PermissionGranted {
		t.Fatalf("noop should grant")
	}
	if p, _ := (DeniedNotifier{}).RequestPermission(ctx); p != PermissionDenied {
		t.Fatalf("denied should deny")
	}
	if err := (DeniedNotifier{}).Send(ctx, Message{}); err == nil || errors.Is(err, context.Canceled) {
		t.Fatalf("denied send should fail plainly, got %v", err)
	}
}
