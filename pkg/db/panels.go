package db

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"
)

var ErrPanelNotFound = errors.New("panel settings not found")

const (
	DefaultPanelHost = "127.0.0.1"
	DefaultPanelPort = 8080
)

// Panel is where the control panel HTTP server listens for a profile.
type Panel struct {
	ID        int64
	ProfileID int64
	Host      string
	Port      int
	CreatedAt time.Time
}

// Address returns the listen address (host:port).
func (p *Panel) Address() string {
	return net.JoinHostPort(p.Host, strconv.Itoa(p.Port))
}

// PanelStore reads and writes panel settings.
type PanelStore interface {
	Get(ctx context.Context, profileID int64) (*Panel, error)
	Save(ctx context.Context, p *Panel) error
}

// Panels returns a PanelStore for this database.
func (db *DB) Panels() PanelStore {
	return &panelStore{db: db}
}

type panelStore struct {
	db *DB
}

func (s *panelStore) Get(ctx context.Context, profileID int64) (*Panel, error) {
	p := &Panel{}
	var createdAt string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, profile_id, host, port, created_at
		FROM panels WHERE profile_id = ?
	`, profileID).Scan(&p.ID, &p.ProfileID, &p.Host, &p.Port, &createdAt)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrPanelNotFound
		}
		return nil, err
	}
	p.CreatedAt, _ = time.Parse(time.DateTime, createdAt)
	return p, nil
}

// Save inserts or replaces the settings for p.ProfileID.
func (s *panelStore) Save(ctx context.Context, p *Panel) error {
	if p.Port < 1 || p.Port > 65535 {
		return fmt.Errorf("invalid port: %d", p.Port)
	}
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO panels (profile_id, host, port) VALUES (?, ?, ?)
		ON CONFLICT(profile_id) DO UPDATE SET host = excluded.host, port = excluded.port
		RETURNING id
	`, p.ProfileID, p.Host, p.Port).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("failed to save panel settings: %w", err)
	}
	return nil
}
