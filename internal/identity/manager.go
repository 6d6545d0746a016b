package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/njprem/ExploreNusa_BackEnd/internal/domain"
	"github.com/njprem/ExploreNusa_BackEnd/internal/repository/ports"
)

// Keys of the durable client slot.
const (
	KeyAppUser         = "app_user"
	KeyLegacyGuestID   = "guest_user_id"
	KeyLegacyGuestName = "guest_user_name"
)

var (
	ErrBlankName       = errors.New("display name is required")
	ErrMissingClientID = errors.New("client id is required")
	// ErrCorruptSession is returned when app_user holds an undecodable value.
	// The stored value is left untouched.
	ErrCorruptSession = errors.New("identity: stored session is unreadable")
)

var legacyKeys = []string{KeyLegacyGuestID, KeyLegacyGuestName}

// Manager owns the visitor session stored in each client's slot.
type Manager struct {
	store     ports.SessionStore
	guestName string
	newUID    func() string
}

func NewManager(store ports.SessionStore, guestName string) *Manager {
	if strings.TrimSpace(guestName) == "" {
		guestName = domain.DefaultGuestName
	}
	return &Manager{store: store, guestName: guestName, newUID: NewUID}
}

// Load returns the stored session. Legacy guest keys are folded into
// app_user on first sight; a legacy id is dropped, only the name survives.
func (m *Manager) Load(ctx context.Context, clientID string) (domain.Session, error) {
	guest := domain.GuestSession(m.guestName)
	if strings.TrimSpace(clientID) == "" {
		return guest, nil
	}

	raw, err := m.store.Get(ctx, clientID, KeyAppUser)
	switch {
	case err == nil:
		var session domain.Session
		if err := json.Unmarshal([]byte(raw), &session); err != nil {
			return guest, fmt.Errorf("%w: %w", ErrCorruptSession, err)
		}
		return m.normalize(session), nil
	case errors.Is(err, ports.ErrKeyNotFound):
		return m.migrateLegacy(ctx, clientID)
	default:
		return guest, fmt.Errorf("identity: load session: %w", err)
	}
}

// SetDisplayName saves name and upgrades a guest or legacy visitor to a
// fresh identifier. A valid identifier is kept.
func (m *Manager) SetDisplayName(ctx context.Context, clientID, name string) (domain.Session, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Session{}, ErrBlankName
	}
	if strings.TrimSpace(clientID) == "" {
		return domain.Session{}, ErrMissingClientID
	}

	current, err := m.Load(ctx, clientID)
	if err != nil {
		return domain.Session{}, err
	}

	session := domain.Session{Name: name, UID: current.UID}
	if session.UID == nil || IsLegacyUID(*session.UID) {
		uid := m.newUID()
		session.UID = &uid
	}
	if err := m.save(ctx, clientID, session); err != nil {
		return domain.Session{}, err
	}
	return session, nil
}

// ResetToGuest forgets the identifier. It is not reused later.
func (m *Manager) ResetToGuest(ctx context.Context, clientID string) (domain.Session, error) {
	guest := domain.GuestSession(m.guestName)
	if strings.TrimSpace(clientID) == "" {
		return guest, nil
	}
	keys := append([]string{KeyAppUser}, legacyKeys...)
	if err := m.store.Delete(ctx, clientID, keys...); err != nil {
		return guest, fmt.Errorf("identity: reset session: %w", err)
	}
	return guest, nil
}

func (m *Manager) migrateLegacy(ctx context.Context, clientID string) (domain.Session, error) {
	guest := domain.GuestSession(m.guestName)

	name, nameErr := m.store.Get(ctx, clientID, KeyLegacyGuestName)
	_, idErr := m.store.Get(ctx, clientID, KeyLegacyGuestID)
	for _, err := range []error{nameErr, idErr} {
		if err != nil && !errors.Is(err, ports.ErrKeyNotFound) {
			return guest, fmt.Errorf("identity: read legacy keys: %w", err)
		}
	}
	if nameErr != nil && idErr != nil {
		return guest, nil
	}

	session := domain.GuestSession(name)
	if strings.TrimSpace(name) == "" {
		session = guest
	}
	if err := m.save(ctx, clientID, session); err != nil {
		return guest, err
	}
	return session, nil
}

func (m *Manager) save(ctx context.Context, clientID string, session domain.Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("identity: encode session: %w", err)
	}
	if err := m.store.Set(ctx, clientID, KeyAppUser, string(payload)); err != nil {
		return fmt.Errorf("identity: save session: %w", err)
	}
	if err := m.store.Delete(ctx, clientID, legacyKeys...); err != nil {
		return fmt.Errorf("identity: clear legacy keys: %w", err)
	}
	return nil
}

func (m *Manager) normalize(session domain.Session) domain.Session {
	if strings.TrimSpace(session.Name) == "" {
		session.Name = m.guestName
	}
	if session.UID != nil && IsLegacyUID(*session.UID) {
		session.UID = nil
	}
	return session
}
