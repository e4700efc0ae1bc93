package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

var ErrNoActiveProfile = errors.New("no active profile found")

// Settings is the persisted runtime configuration of the active profile.
type Settings struct {
	Profile *Profile
	Panel   *Panel
}

// PanelAddress returns the control panel listen address.
func (s *Settings) PanelAddress() string {
	if s.Panel == nil {
		return (&Panel{Host: DefaultPanelHost, Port: DefaultPanelPort}).Address()
	}
	return s.Panel.Address()
}

// Location returns the active profile's timezone.
func (s *Settings) Location() *time.Location {
	return s.Profile.Location()
}

// ActiveSettings loads the settings of the active profile.
func (db *DB) ActiveSettings(ctx context.Context) (*Settings, error) {
	profile, err := db.Profiles().GetActive(ctx)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			return nil, ErrNoActiveProfile
		}
		return nil, fmt.Errorf("failed to get active profile: %w", err)
	}

	settings := &Settings{Profile: profile}

	panel, err := db.Panels().Get(ctx, profile.ID)
	if err != nil && !errors.Is(err, ErrPanelNotFound) {
		return nil, fmt.Errorf("failed to get panel settings: %w", err)
	}
	settings.Panel = panel

	return settings, nil
}

// SelectProfile makes the named profile active and stores timezone on the
// active profile. Empty arguments leave the current state untouched.
func (db *DB) SelectProfile(ctx context.Context, name, timezone string) (*Settings, error) {
	profiles := db.Profiles()

	if name != "" {
		profile, err := profiles.GetByName(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("profile %q: %w", name, err)
		}
		if !profile.IsActive {
			if err := profiles.SetActive(ctx, profile.ID); err != nil {
				return nil, fmt.Errorf("failed to activate profile %q: %w", name, err)
			}
		}
	}

	if timezone != "" {
		active, err := profiles.GetActive(ctx)
		if err != nil {
			if errors.Is(err, ErrProfileNotFound) {
				return nil, ErrNoActiveProfile
			}
			return nil, err
		}
		if err := profiles.SetTimezone(ctx, active.ID, timezone); err != nil {
			return nil, err
		}
	}

	return db.ActiveSettings(ctx)
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
