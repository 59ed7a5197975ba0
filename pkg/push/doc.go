// Package push provides the push delivery adapter for the notification
// queue, plus the device token registry behind it.
//
// The actual transport (FCM, APNs, web push) sits behind the Sender
// interface; the package ships a DevSender that only logs. Adapter fans one
// notification out to every device registered for the recipient and
// classifies the result three ways: sent when any device accepts, skipped
// when the recipient has no deliverable devices, failed on transport errors.
//
// Senders report stale tokens via ErrInvalidToken. The adapter collects
// them during a batch so CleanupInvalidTokens can prune the registry
// afterwards.
package push
