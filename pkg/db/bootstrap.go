package db

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"
)

// Bootstrap creates the default profile and panel settings on first run.
// It does nothing once any profile exists.
func (db *DB) Bootstrap(ctx context.Context) error {
	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM profiles`).Scan(&count); err != nil {
		return fmt.Errorf("failed to check profiles: %w", err)
	}
	if count > 0 {
		return nil
	}

	timezone := detectTimezone()
	if _, err := time.LoadLocation(timezone); err != nil {
		timezone = "UTC"
	}

	profile := &Profile{Name: "default", Timezone: timezone, IsActive: true}
	if err := db.Profiles().Create(ctx, profile); err != nil {
		return fmt.Errorf("failed to create default profile: %w", err)
	}

	panel := &Panel{ProfileID: profile.ID, Host: DefaultPanelHost, Port: DefaultPanelPort}
	if err := db.Panels().Save(ctx, panel); err != nil {
		return fmt.Errorf("failed to create default panel settings: %w", err)
	}

	return nil
}

// detectTimezone returns the system's IANA timezone name, or UTC.
func detectTimezone() string {
	if tz := os.Getenv("TZ"); tz != "" {
		if _, err := time.LoadLocation(tz); err == nil {
			return tz
		}
	}

	switch runtime.GOOS {
	case "darwin":
		out, err := exec.Command("systemsetup", "-gettimezone").Output()
		if err == nil {
			if _, tz, ok := strings.Cut(string(out), ": "); ok {
				return strings.TrimSpace(tz)
			}
		}
	case "linux":
		out, err := exec.Command("timedatectl", "show", "--property=Timezone", "--value").Output()
		if err == nil && len(strings.TrimSpace(string(out))) > 0 {
			return strings.TrimSpace(string(out))
		}
		if data, err := os.ReadFile("/etc/timezone"); err == nil {
			return strings.TrimSpace(string(data))
		}
	}

	if link, err := os.Readlink("/etc/localtime"); err == nil {
		if _, tz, ok := strings.Cut(link, "zoneinfo/"); ok {
			return tz
		}
	}

	return "UTC"
}
