// Package mailer provides the email delivery adapter for the notification
// queue.
//
// Two EmailSender implementations ship with the package: a Postmark-backed
// client for production and a DevSender that writes emails to disk for local
// development. Adapter sits on top of either sender and translates a queued
// notification into an outbound email, resolving the recipient's address
// through the externally owned ContactDirectory.
//
// A recipient without an address on file produces a skip, not a failure, so
// missing contact data does not burn retry attempts.
package mailer
