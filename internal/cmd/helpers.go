package cmd

import (
	"os"
	"os/exec"
	"os/user"
	"strings"

	"pgr/internal/activitylog"
)

// resolveActor names who is at the keyboard for activity log entries.
// PGR_ACTOR wins, then git's user.name, then the login name of the
// process owner. Only called when the activity log is enabled, so a plain
// pgr start never spawns git.
func resolveActor() string {
	if actor := os.Getenv("PGR_ACTOR"); actor != "" {
		return actor
	}

	if out, err := exec.Command("git", "config", "--get", "user.name").Output(); err == nil {
		if name := strings.TrimSpace(string(out)); name != "" {
			return name
		}
	}

	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}

	return "unknown"
}

// newActivityLog opens the activity log at path, resolving the actor only
// when there is a log to write to.
func newActivityLog(path string) *activitylog.Logger {
	if path == "" {
		return activitylog.Nop()
	}
	return activitylog.New(path, resolveActor())
}
