package prefs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/campuskit/notify/pkg/logger"
)

// Service orchestrates preference reads and writes with catalog validation.
// Reads fall back to the opt-out default (both channels enabled) when no
// record exists; writes validate the notification type against the active
// template catalog.
type Service struct {
	storage Storage
	catalog TemplateCatalog
	logger  *slog.Logger
}

// ServiceOption configures a Service
type ServiceOption func(*Service)

// WithLogger sets the logger for the Service
func WithLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService creates a new preference service
func NewService(storage Storage, catalog TemplateCatalog, opts ...ServiceOption) (*Service, error) {
	if storage == nil {
		return nil, ErrStorageNil
	}
	if catalog == nil {
		return nil, ErrCatalogNil
	}

	s := &Service{
		storage: storage,
		catalog: catalog,
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Get returns the stored preference for a recipient/type pair, or
// ErrNotFound when the recipient has never customised this type. Callers
// that only need the effective toggles should use IsEmailEnabled and
// IsPushEnabled, which apply the default.
func (s *Service) Get(ctx context.Context, recipientID uuid.UUID, notifType string) (*Preference, error) {
	return s.storage.Get(ctx, recipientID, notifType)
}

// Set stores the channel toggles for a recipient/type pair. Disabling both
// channels through the generic setter is rejected; use DisableAll for the
// explicit everything-off sweep.
func (s *Service) Set(ctx context.Context, recipientID uuid.UUID, notifType string, emailEnabled, pushEnabled bool) error {
	if recipientID == uuid.Nil {
		return ErrMissingRecipient
	}
	if !emailEnabled && !pushEnabled {
		return ErrNoChannelEnabled
	}
	if err := s.validateType(ctx, notifType); err != nil {
		return err
	}

	return s.storage.Set(ctx, Preference{
		RecipientID:  recipientID,
		Type:         notifType,
		EmailEnabled: emailEnabled,
		PushEnabled:  pushEnabled,
	})
}

// IsEmailEnabled reports whether email delivery is enabled for the pair,
// defaulting to true when no record exists
func (s *Service) IsEmailEnabled(ctx context.Context, recipientID uuid.UUID, notifType string) (bool, error) {
	pref, err := s.storage.Get(ctx, recipientID, notifType)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return true, nil
		}
		return false, err
	}
	return pref.EmailEnabled, nil
}

// IsPushEnabled reports whether push delivery is enabled for the pair,
// defaulting to true when no record exists
func (s *Service) IsPushEnabled(ctx context.Context, recipientID uuid.UUID, notifType string) (bool, error) {
	pref, err := s.storage.Get(ctx, recipientID, notifType)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return true, nil
		}
		return false, err
	}
	return pref.PushEnabled, nil
}

// Channels returns the effective email/push toggles for the pair in one
// lookup, applying the default when no record exists
func (s *Service) Channels(ctx context.Context, recipientID uuid.UUID, notifType string) (ChannelPair, error) {
	pref, err := s.storage.Get(ctx, recipientID, notifType)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ChannelPair{EmailEnabled: true, PushEnabled: true}, nil
		}
		return ChannelPair{}, err
	}
	return ChannelPair{EmailEnabled: pref.EmailEnabled, PushEnabled: pref.PushEnabled}, nil
}

// ResetAll deletes every stored preference for the recipient, reverting all
// types to defaults. Returns the number of deleted records.
func (s *Service) ResetAll(ctx context.Context, recipientID uuid.UUID) (int, error) {
	if recipientID == uuid.Nil {
		return 0, ErrMissingRecipient
	}
	return s.storage.DeleteAll(ctx, recipientID)
}

// BulkSet applies per-type channel toggles. Each type is validated and
// committed independently; the returned map reports per-type success, with
// failed entries carrying their error. No cross-type rollback.
func (s *Service) BulkSet(ctx context.Context, recipientID uuid.UUID, toggles map[string]ChannelPair) (map[string]error, error) {
	if recipientID == uuid.Nil {
		return nil, ErrMissingRecipient
	}

	results := make(map[string]error, len(toggles))
	for notifType, pair := range toggles {
		results[notifType] = s.Set(ctx, recipientID, notifType, pair.EmailEnabled, pair.PushEnabled)
	}

	return results, nil
}

// DisableAll turns off both channels for the given types. With no explicit
// types, the sweep covers every active template in the catalog. This is the
// only path that may store a both-disabled preference. Each type commits
// independently.
func (s *Service) DisableAll(ctx context.Context, recipientID uuid.UUID, types ...string) (map[string]error, error) {
	return s.sweep(ctx, recipientID, false, types)
}

// EnableAll turns on both channels for the given types, or for every active
// template when no types are given. Each type commits independently.
func (s *Service) EnableAll(ctx context.Context, recipientID uuid.UUID, types ...string) (map[string]error, error) {
	return s.sweep(ctx, recipientID, true, types)
}

func (s *Service) sweep(ctx context.Context, recipientID uuid.UUID, enabled bool, types []string) (map[string]error, error) {
	if recipientID == uuid.Nil {
		return nil, ErrMissingRecipient
	}

	templates, err := s.catalog.SelectActiveTemplates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load active templates: %w", err)
	}
	known := make(map[string]struct{}, len(templates))
	for _, tmpl := range templates {
		known[tmpl.Type] = struct{}{}
	}

	if len(types) == 0 {
		types = make([]string, len(templates))
		for i, tmpl := range templates {
			types[i] = tmpl.Type
		}
	}

	results := make(map[string]error, len(types))
	for _, notifType := range types {
		// Explicit type lists go through the same catalog check as Set
		if _, ok := known[notifType]; !ok {
			results[notifType] = fmt.Errorf("%w: %q", ErrUnknownType, notifType)
			continue
		}

		err := s.storage.Set(ctx, Preference{
			RecipientID:  recipientID,
			Type:         notifType,
			EmailEnabled: enabled,
			PushEnabled:  enabled,
		})
		if err != nil {
			s.logger.LogAttrs(ctx, slog.LevelWarn, "preference sweep entry failed",
				logger.RecipientID(recipientID),
				logger.NotifType(notifType),
				logger.Error(err),
			)
		}
		results[notifType] = err
	}

	return results, nil
}

func (s *Service) validateType(ctx context.Context, notifType string) error {
	if notifType == "" {
		return ErrUnknownType
	}

	templates, err := s.catalog.SelectActiveTemplates(ctx)
	if err != nil {
		return fmt.Errorf("failed to load active templates: %w", err)
	}

	for _, tmpl := range templates {
		if tmpl.Type == notifType {
			return nil
		}
	}

	return fmt.Errorf("%w: %q", ErrUnknownType, notifType)
}
