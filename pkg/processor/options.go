package processor

import (
	"log/slog"

	"github.com/campuskit/notify/pkg/settings"
)

// Option is a functional option for configuring a Processor
type Option func(*processorOptions)

type processorOptions struct {
	email       ChannelAdapter
	push        ChannelAdapter
	provider    settings.Provider
	cleaner     TokenCleaner
	concurrency int
	logger      *slog.Logger
}

// WithEmailAdapter sets the email delivery adapter
func WithEmailAdapter(adapter ChannelAdapter) Option {
	return func(o *processorOptions) {
		o.email = adapter
	}
}

// WithPushAdapter sets the push delivery adapter
func WithPushAdapter(adapter ChannelAdapter) Option {
	return func(o *processorOptions) {
		o.push = adapter
	}
}

// WithSettingsProvider sets the external settings store the processor
// resolves its tunables from at the start of each sweep. Without a provider
// the documented defaults apply.
func WithSettingsProvider(provider settings.Provider) Option {
	return func(o *processorOptions) {
		o.provider = provider
	}
}

// WithTokenCleaner registers a post-batch hook that prunes push device
// tokens the transport rejected during the sweep
func WithTokenCleaner(cleaner TokenCleaner) Option {
	return func(o *processorOptions) {
		o.cleaner = cleaner
	}
}

// WithConcurrency bounds the number of records delivered in parallel within
// one sweep. Defaults to sequential processing.
func WithConcurrency(n int) Option {
	return func(o *processorOptions) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

// WithLogger sets the logger for the Processor
func WithLogger(logger *slog.Logger) Option {
	return func(o *processorOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// ProcessOption is a functional option for a single ProcessBatch call
type ProcessOption func(*processOptions)

type processOptions struct {
	dryRun bool
}

// WithDryRun makes the sweep report what it would deliver without mutating
// any record or invoking any adapter
func WithDryRun() ProcessOption {
	return func(o *processOptions) {
		o.dryRun = true
	}
}
