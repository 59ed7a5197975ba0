package processor

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/campuskit/notify/pkg/delivery"
	"github.com/campuskit/notify/pkg/logger"
	"github.com/campuskit/notify/pkg/prefs"
	"github.com/campuskit/notify/pkg/queue"
	"github.com/campuskit/notify/pkg/settings"
)

// ChannelAdapter delivers one notification over a single channel and
// classifies the result three ways: sent, skipped (intentional non-delivery)
// or failed (transport error). The error return carries the diagnostic for
// the failure case; it is recorded on the queue record and never forwarded
// to the recipient.
type ChannelAdapter interface {
	Send(ctx context.Context, notif *queue.Notification) (delivery.Result, error)
}

// PreferenceReader resolves the effective channel toggles for a
// recipient/type pair, applying the opt-out default for unset pairs
type PreferenceReader interface {
	Channels(ctx context.Context, recipientID uuid.UUID, notifType string) (prefs.ChannelPair, error)
}

// TokenCleaner prunes stale push device tokens collected during a batch
type TokenCleaner interface {
	CleanupInvalidTokens(ctx context.Context) (int, error)
}

// Report accumulates per-sweep counters for operational reporting
type Report struct {
	Processed int `json:"processed"`
	EmailSent int `json:"email_sent"`
	PushSent  int `json:"push_sent"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
}

// Processor runs bounded delivery sweeps over the notification queue.
// It is not a long-running service: each ProcessBatch call handles one batch
// and returns, with periodic triggering left to an external scheduler.
// Overlapping invocations are safe because the storage's conditional
// pending->processing transition lets only one sweep claim any record.
type Processor struct {
	storage     queue.Storage
	preferences PreferenceReader
	email       ChannelAdapter
	push        ChannelAdapter
	provider    settings.Provider
	cleaner     TokenCleaner
	concurrency int
	logger      *slog.Logger
}

// New creates a batch processor. Either adapter may be nil; a nil adapter
// behaves as if the recipient had disabled that channel.
func New(storage queue.Storage, preferences PreferenceReader, opts ...Option) (*Processor, error) {
	if storage == nil {
		return nil, ErrStorageNil
	}
	if preferences == nil {
		return nil, ErrPreferencesNil
	}

	options := &processorOptions{
		concurrency: 1,
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		opt(options)
	}

	if options.email == nil && options.push == nil {
		return nil, ErrNoAdapters
	}

	return &Processor{
		storage:     storage,
		preferences: preferences,
		email:       options.email,
		push:        options.push,
		provider:    options.provider,
		cleaner:     options.cleaner,
		concurrency: options.concurrency,
		logger:      options.logger,
	}, nil
}

// ProcessBatch runs one delivery sweep. The effective batch size is the
// smaller of limit and the configured queueBatchSize setting; limit <= 0
// means "use the setting". Individual record failures are absorbed into the
// report, never returned as errors.
func (p *Processor) ProcessBatch(ctx context.Context, limit int, opts ...ProcessOption) (Report, error) {
	runOpts := &processOptions{}
	for _, opt := range opts {
		opt(runOpts)
	}

	// Settings resolve once per sweep so the per-record loop never hits
	// the string-keyed settings store
	cfg := settings.Resolve(ctx, p.provider, p.logger)

	effectiveLimit := cfg.BatchSize
	if limit > 0 && limit < effectiveLimit {
		effectiveLimit = limit
	}

	candidates, err := p.storage.SelectPending(ctx, effectiveLimit, cfg.MaxAttempts)
	if err != nil {
		return Report{}, fmt.Errorf("failed to select pending notifications: %w", err)
	}

	p.logger.LogAttrs(ctx, slog.LevelDebug, "batch sweep started",
		logger.BatchSize(len(candidates)),
		slog.Int("limit", effectiveLimit),
		slog.Bool("dry_run", runOpts.dryRun),
	)

	var (
		mu     sync.Mutex
		report Report
		wg     sync.WaitGroup
		sem    = make(chan struct{}, p.concurrency)
	)

	now := time.Now()
	for i := range candidates {
		notif := candidates[i]

		// Eligibility gate: not-yet-ready or exhausted records are left
		// untouched for a later sweep
		if !delivery.ShouldAttemptDelivery(&notif, cfg.MaxAttempts, cfg.RetryDelay, now) {
			continue
		}

		sem <- struct{}{}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			result, processed := p.processOne(ctx, &notif, cfg, runOpts.dryRun)
			if !processed {
				// Lost to a concurrent sweep's claim: the record was
				// never handled here and stays out of the report
				return
			}

			mu.Lock()
			report.Processed++
			report.EmailSent += result.emailSent
			report.PushSent += result.pushSent
			report.Skipped += result.skipped
			report.Failed += result.failed
			mu.Unlock()
		}()
	}

	wg.Wait()

	if !runOpts.dryRun && p.cleaner != nil {
		removed, err := p.cleaner.CleanupInvalidTokens(ctx)
		if err != nil {
			p.logger.LogAttrs(ctx, slog.LevelWarn, "invalid token cleanup failed",
				logger.Error(err))
		} else if removed > 0 {
			p.logger.LogAttrs(ctx, slog.LevelInfo, "pruned invalid device tokens",
				slog.Int("removed", removed))
		}
	}

	p.logger.LogAttrs(ctx, slog.LevelInfo, "batch sweep finished",
		slog.Int("processed", report.Processed),
		slog.Int("email_sent", report.EmailSent),
		slog.Int("push_sent", report.PushSent),
		slog.Int("skipped", report.Skipped),
		slog.Int("failed", report.Failed),
		slog.Bool("dry_run", runOpts.dryRun),
	)

	return report, nil
}

type recordResult struct {
	emailSent int
	pushSent  int
	skipped   int
	failed    int
}

// processOne handles a single record in isolation: adapter latency or
// failure here never affects other records in the sweep. The second return
// reports whether this sweep actually handled the record; it is false when a
// concurrent sweep claimed the record first.
func (p *Processor) processOne(ctx context.Context, notif *queue.Notification, cfg settings.Settings, dryRun bool) (result recordResult, processed bool) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.LogAttrs(ctx, slog.LevelError, "panic while processing notification",
				logger.NotificationID(notif.ID),
				slog.Any("panic", r),
			)
			if !dryRun {
				_ = p.storage.MarkFailed(ctx, notif.ID, fmt.Sprintf("panic: %v", r), cfg.MaxAttempts)
			}
			result = recordResult{failed: 1}
			processed = true
		}
	}()

	pair, err := p.preferences.Channels(ctx, notif.RecipientID, notif.Type)
	if err != nil {
		p.logger.LogAttrs(ctx, slog.LevelError, "preference lookup failed",
			logger.NotificationID(notif.ID),
			logger.RecipientID(notif.RecipientID),
			logger.NotifType(notif.Type),
			logger.Error(err),
		)
		if !dryRun {
			_ = p.storage.MarkFailed(ctx, notif.ID, "preference lookup failed: "+err.Error(), cfg.MaxAttempts)
		}
		return recordResult{failed: 1}, true
	}

	effective := delivery.ResolveChannel(notif.Channel, pair.EmailEnabled && p.email != nil, pair.PushEnabled && p.push != nil)

	if dryRun {
		p.logger.LogAttrs(ctx, slog.LevelInfo, "dry run: would deliver",
			logger.NotificationID(notif.ID),
			logger.Channel(string(notif.Channel)),
			slog.String("effective_channel", string(effective)),
		)
		if effective == delivery.EffectiveNone {
			return recordResult{skipped: 1}, true
		}
		return recordResult{}, true
	}

	// Claim the record before touching any transport; a claim miss means a
	// concurrent sweep got here first
	if err := p.storage.MarkProcessing(ctx, notif.ID); err != nil {
		p.logger.LogAttrs(ctx, slog.LevelDebug, "record already claimed",
			logger.NotificationID(notif.ID),
			logger.Attempts(notif.Attempts),
		)
		return recordResult{}, false
	}

	// Preference suppression of every requested channel is an intentional
	// skip: the record completes as a successful no-op and consumes no
	// retry attempt
	if effective == delivery.EffectiveNone {
		if err := p.storage.MarkSent(ctx, notif.ID); err != nil {
			p.logger.LogAttrs(ctx, slog.LevelError, "failed to complete skipped notification",
				logger.NotificationID(notif.ID),
				logger.Error(err),
			)
		}
		return recordResult{skipped: 1}, true
	}

	var (
		results []delivery.Result
		errMsgs []string
	)

	if effective.IncludesEmail() {
		res, err := p.email.Send(ctx, notif)
		results = append(results, res)
		if res == delivery.ResultSent {
			result.emailSent++
		}
		if err != nil {
			errMsgs = append(errMsgs, "email: "+err.Error())
		}
	}

	if effective.IncludesPush() {
		res, err := p.push.Send(ctx, notif)
		results = append(results, res)
		if res == delivery.ResultSent {
			result.pushSent++
		}
		if err != nil {
			errMsgs = append(errMsgs, "push: "+err.Error())
		}
	}

	switch delivery.Reconcile(results...) {
	case delivery.OutcomeSent:
		if err := p.storage.MarkSent(ctx, notif.ID); err != nil {
			p.logger.LogAttrs(ctx, slog.LevelError, "failed to mark notification sent",
				logger.NotificationID(notif.ID),
				logger.Error(err),
			)
		}
		if result.emailSent == 0 && result.pushSent == 0 {
			// Delivered as a no-op: every attempted channel skipped
			result.skipped++
		}
	case delivery.OutcomeFailed:
		errMsg := strings.Join(errMsgs, "; ")
		if errMsg == "" {
			errMsg = "delivery failed"
		}
		if err := p.storage.MarkFailed(ctx, notif.ID, errMsg, cfg.MaxAttempts); err != nil {
			p.logger.LogAttrs(ctx, slog.LevelError, "failed to mark notification failed",
				logger.NotificationID(notif.ID),
				logger.Error(err),
			)
		}
		result.failed++
	}

	return result, true
}
