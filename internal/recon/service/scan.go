package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aussiebroadwan/recon/internal/recon/domain"
	"github.com/aussiebroadwan/recon/internal/recon/engine"
	"github.com/aussiebroadwan/recon/internal/recon/store"
	"github.com/aussiebroadwan/recon/pkg/idx"
	"github.com/aussiebroadwan/recon/pkg/slogx"
)

// maxActionLength bounds free-form log actions.
const maxActionLength = 1024

// HistoryScope decides whose records the listing endpoints return.
type HistoryScope string

const (
	// ScopeShared lists every record regardless of who created it.
	ScopeShared HistoryScope = "shared"
	// ScopeUser lists only the caller's records.
	ScopeUser HistoryScope = "user"
)

// Engine runs scans.
type Engine interface {
	Scan(ctx context.Context, category domain.ScanCategory, target string) (engine.Result, error)
}

// Archiver receives saved records after commit.
type Archiver interface {
	Archive(ctx context.Context, rec domain.ScanRecord) error
}

type ScanService struct {
	Store    store.Store
	Engine   Engine
	Archiver Archiver // optional
	Scope    HistoryScope
	Now      func() time.Time
}

// SubmitResult is a scan that was run and saved.
type SubmitResult struct {
	Payload domain.ScanPayload
	Raw     json.RawMessage
	Record  domain.ScanRecord
}

// Submit runs a scan of target for userID and saves the result together
// with a log entry.
//
// Transport failures and non-2xx engine answers wrap ErrUpstreamUnavailable.
// An engine answer that reports an error comes back as *engine.ScanError and
// nothing is saved.
func (s *ScanService) Submit(ctx context.Context, userID, target string, category domain.ScanCategory) (SubmitResult, error) {
	if _, err := s.Store.Users().GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return SubmitResult{}, ErrUserNotFound
		}
		return SubmitResult{}, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	target = strings.TrimSpace(target)
	if target == "" {
		return SubmitResult{}, ErrInvalidTarget
	}
	if !category.Valid() {
		return SubmitResult{}, ErrInvalidCategory
	}

	ctx = slogx.With(ctx, "category", category)
	log := slogx.FromContext(ctx)

	res, err := s.Engine.Scan(ctx, category, target)
	if err != nil {
		var scanErr *engine.ScanError
		if errors.As(err, &scanErr) {
			log.Info("scan reported an error", "reason", scanErr.Reason)
			return SubmitResult{}, err
		}
		log.Error("scan engine unavailable", "err", err)
		return SubmitResult{}, fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err)
	}

	now := s.now().UTC()
	rec := domain.ScanRecord{
		ID:           idx.NewAt(now).String(),
		URLOrIP:      target,
		ScanType:     domain.ScanTypeActive,
		ScanCategory: category,
		Results:      res.Raw,
		UserID:       userID,
		CreatedAt:    now,
	}
	entry := domain.LogEntry{
		ID:        idx.NewAt(now).String(),
		Action:    domain.ScanAction(category, target),
		UserID:    &userID,
		Timestamp: now,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Scans().CreateScan(ctx, rec); err != nil {
			return err
		}
		return tx.Logs().CreateLog(ctx, entry)
	})
	if err != nil {
		return SubmitResult{}, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	log.Info("scan saved", "scan_id", rec.ID, "summary", res.Payload.Summary())

	if s.Archiver != nil {
		if err := s.Archiver.Archive(ctx, rec); err != nil {
			log.Warn("scan archive failed", "scan_id", rec.ID, "err", err)
		}
	}

	return SubmitResult{Payload: res.Payload, Raw: res.Raw, Record: rec}, nil
}

// ScanQuery is the raw filter of a listing request. Empty fields match
// everything.
type ScanQuery struct {
	ScanType     string
	ScanCategory string
}

// ListScans returns saved scans, newest first. Unknown filter values fail
// with ErrInvalidFilter.
func (s *ScanService) ListScans(ctx context.Context, userID string, q ScanQuery) ([]domain.ScanRecord, error) {
	var f domain.ScanFilter

	if q.ScanType != "" {
		t, err := domain.ParseScanType(q.ScanType)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidFilter, err)
		}
		f.ScanType = &t
	}
	if q.ScanCategory != "" {
		c, err := domain.ParseScanCategory(q.ScanCategory)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidFilter, err)
		}
		f.ScanCategory = &c
	}
	if s.Scope == ScopeUser {
		f.UserID = &userID
	}

	scans, err := s.Store.Scans().ListScans(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return scans, nil
}

// ListLogs returns the activity log, newest first.
func (s *ScanService) ListLogs(ctx context.Context, userID string) ([]domain.LogEntry, error) {
	var f domain.LogFilter
	if s.Scope == ScopeUser {
		f.UserID = &userID
	}

	logs, err := s.Store.Logs().ListLogs(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return logs, nil
}

// AppendLog records a free-form action for userID.
func (s *ScanService) AppendLog(ctx context.Context, userID, action string) (domain.LogEntry, error) {
	action = strings.TrimSpace(action)
	if action == "" || len(action) > maxActionLength {
		return domain.LogEntry{}, fmt.Errorf("%w: action must be 1-%d characters", ErrInvalidInput, maxActionLength)
	}

	now := s.now().UTC()
	entry := domain.LogEntry{
		ID:        idx.NewAt(now).String(),
		Action:    action,
		UserID:    &userID,
		Timestamp: now,
	}
	if err := s.Store.Logs().CreateLog(ctx, entry); err != nil {
		return domain.LogEntry{}, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return entry, nil
}

func (s *ScanService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}
