package delivery

import "github.com/campuskit/notify/pkg/queue"

// EffectiveChannel is the channel actually used after reconciling the
// requested channel against recipient preferences
type EffectiveChannel string

const (
	EffectiveEmail EffectiveChannel = "email"
	EffectivePush  EffectiveChannel = "push"
	EffectiveBoth  EffectiveChannel = "both"
	EffectiveNone  EffectiveChannel = "none"
)

// IncludesEmail reports whether delivery through the email channel is wanted
func (e EffectiveChannel) IncludesEmail() bool {
	return e == EffectiveEmail || e == EffectiveBoth
}

// IncludesPush reports whether delivery through the push channel is wanted
func (e EffectiveChannel) IncludesPush() bool {
	return e == EffectivePush || e == EffectiveBoth
}

// ResolveChannel degrades the requested channel against recipient
// preferences: a "both" request still delivers through whichever single
// channel the recipient has left enabled, rather than failing outright.
func ResolveChannel(requested queue.Channel, emailEnabled, pushEnabled bool) EffectiveChannel {
	switch requested {
	case queue.ChannelEmail:
		if emailEnabled {
			return EffectiveEmail
		}
		return EffectiveNone
	case queue.ChannelPush:
		if pushEnabled {
			return EffectivePush
		}
		return EffectiveNone
	case queue.ChannelBoth:
		switch {
		case emailEnabled && pushEnabled:
			return EffectiveBoth
		case emailEnabled:
			return EffectiveEmail
		case pushEnabled:
			return EffectivePush
		default:
			return EffectiveNone
		}
	}
	return EffectiveNone
}

// Result is the three-way outcome of one sub-channel delivery. Preference
// suppression (Skipped) is carried distinctly from transport failure all the
// way to reconciliation so operators can tell the two apart.
type Result int

const (
	ResultSkipped Result = iota
	ResultSent
	ResultFailed
)

// String returns a human-readable label for the result
func (r Result) String() string {
	switch r {
	case ResultSent:
		return "sent"
	case ResultFailed:
		return "failed"
	default:
		return "skipped"
	}
}

// Outcome aggregates per-channel results into one record-level decision
type Outcome int

const (
	// OutcomeSent means at least one channel delivered, or every requested
	// channel was intentionally skipped by preference (successful no-op)
	OutcomeSent Outcome = iota
	// OutcomeFailed means no channel delivered and at least one transport
	// failure occurred; the attempt counts toward exhaustion
	OutcomeFailed
)

// Reconcile folds the per-channel results of a delivery attempt into the
// record-level outcome. Any successful channel wins. Skips never count as
// failures: a record whose only requested channel is preference-disabled is
// treated as delivered (intentional skip), not failed.
func Reconcile(results ...Result) Outcome {
	failed := false
	for _, r := range results {
		switch r {
		case ResultSent:
			return OutcomeSent
		case ResultFailed:
			failed = true
		}
	}
	if failed {
		return OutcomeFailed
	}
	return OutcomeSent
}
