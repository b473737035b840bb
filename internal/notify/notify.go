// Package notify raises best-effort OS-level alerts. Nothing in here is load
// bearing: when the host has no notification surface or no audio output, the
// in-app reminder signal still fires.
package notify

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"
)

// Notifier raises a system-level notification.
type Notifier interface {
	Send(title, body string) error
}

type NoopNotifier struct{}

func (NoopNotifier) Send(string, string) error { return nil }

// ExecNotifier shells out to the platform notification tool.
type ExecNotifier struct{}

func (ExecNotifier) Send(title, body string) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("notify-send", title, body).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(body), escapeAppleScript(title))
		return exec.Command("osascript", "-e", script).Run()
	default:
		return nil
	}
}

func escapeAppleScript(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}

// AudioPlayer plays a short audible cue.
type AudioPlayer interface {
	Play() error
}

type NoopAudioPlayer struct{}

func (NoopAudioPlayer) Play() error { return nil }

// cueDuration caps how long the alert sound runs.
const cueDuration = 3 * time.Second

// ExecAudioPlayer plays the configured sound file and kills the player after
// the cue duration.
type ExecAudioPlayer struct {
	SoundPath string
}

func (p ExecAudioPlayer) Play() error {
	if strings.TrimSpace(p.SoundPath) == "" {
		return nil
	}
	var name string
	switch runtime.GOOS {
	case "linux":
		name = "paplay"
	case "darwin":
		name = "afplay"
	default:
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), cueDuration)
	defer cancel()
	err := exec.CommandContext(ctx, name, p.SoundPath).Run()
	if ctx.Err() == context.DeadlineExceeded {
		// Cut off on purpose, not a failure.
		return nil
	}
	return err
}
