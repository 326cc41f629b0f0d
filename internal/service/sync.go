package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/healix-app/healix-go/internal/api"
	"github.com/healix-app/healix-go/internal/store"
	"github.com/healix-app/healix-go/pkg/model"
	"go.uber.org/zap"
)

// ErrNoSession signals that neither a token nor a local profile exists;
// the caller is expected to send the user to sign-in.
var ErrNoSession = errors.New("no session")

// Synchronizer reconciles the backend's view of the user with the
// local profile store. The merge is one-directional and collection
// level: a non-empty remote collection replaces the local one wholesale,
// an empty or failed fetch preserves local state. Local-only records
// can therefore be discarded by a later non-empty fetch; that risk is
// accepted behavior.
type Synchronizer struct {
	store  *store.Store
	client *api.Client
	logger *zap.Logger
	now    func() time.Time
}

// NewSynchronizer creates a Synchronizer
func NewSynchronizer(st *store.Store, client *api.Client, logger *zap.Logger) *Synchronizer {
	return &Synchronizer{
		store:  st,
		client: client,
		logger: logger,
		now:    time.Now,
	}
}

// Sync runs on dashboard entry and on manual refresh. It returns the
// new authoritative aggregate, falling back to local state when the
// backend is unreachable.
func (s *Synchronizer) Sync(ctx context.Context) (*model.UserData, error) {
	if !s.client.Authenticated(ctx) {
		local, ok := s.store.LoadUser(ctx)
		if !ok {
			return nil, ErrNoSession
		}
		s.logger.Info("no access token, serving local profile")
		return local, nil
	}

	remote, err := s.client.CurrentUser(ctx)
	if err != nil {
		s.logger.Warn("profile fetch failed, falling back to local state", zap.Error(err))
		local, ok := s.store.LoadUser(ctx)
		if !ok {
			return nil, err
		}
		return local, nil
	}

	merged, ok := s.store.LoadUser(ctx)
	if !ok {
		merged = &model.UserData{}
	}
	s.applyProfile(merged, remote)

	// Three independent fetches; each degrades to "keep local" on
	// failure or empty result. Reminders never come from the backend.
	if meds, err := s.client.Medications(ctx); err == nil && len(meds) > 0 {
		merged.Medications = meds
	} else if err != nil {
		s.logger.Warn("medications fetch failed, keeping local collection", zap.Error(err))
	}
	if rxs, err := s.client.Prescriptions(ctx); err == nil && len(rxs) > 0 {
		merged.Prescriptions = rxs
	} else if err != nil {
		s.logger.Warn("prescriptions fetch failed, keeping local collection", zap.Error(err))
	}
	if reports, err := s.client.Reports(ctx); err == nil && len(reports) > 0 {
		merged.Reports = reports
	} else if err != nil {
		s.logger.Warn("reports fetch failed, keeping local collection", zap.Error(err))
	}

	merged.RecomputeBMI()
	merged.LastSync = s.now().UTC().Format(time.RFC3339)

	if err := s.store.SaveUser(ctx, merged); err != nil {
		return nil, err
	}

	s.logger.Info("sync completed",
		zap.Int("medications", len(merged.Medications)),
		zap.Int("prescriptions", len(merged.Prescriptions)),
		zap.Int("reports", len(merged.Reports)),
	)
	return merged, nil
}

// applyProfile overwrites local profile fields with the backend's
// authoritative view.
func (s *Synchronizer) applyProfile(user *model.UserData, remote *api.RemoteUser) {
	if remote.FullName != "" {
		user.Name = remote.FullName
	}
	if age, ok := model.AgeFromDOB(remote.DOB, s.now()); ok {
		user.Age = age
	}
	user.Gender = titleCase(remote.Gender)
	user.BloodGroup = remote.BloodGroup
	user.HeightCm = remote.HeightCm
	user.WeightKg = remote.WeightKg
	user.Allergies = splitCommaList(remote.Allergies)
	user.Conditions = splitCommaList(remote.KnownConditions)
}

// splitCommaList turns the backend's comma-joined list fields into
// trimmed slices, dropping empty fragments.
func splitCommaList(joined string) []string {
	if joined == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(joined, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func titleCase(s string) string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
