// Package contact accepts contact form submissions, stores them and notifies
// the site owner by email and, optionally, a signed webhook.
//
// A submission is normalized and validated, persisted with status pending,
// then handed to a Notifier under a per-attempt timeout and a bounded retry
// policy. The record ends up delivered or failed. Form models the lifecycle
// of one form instance (idle, submitting, success or error, then back to
// idle after a delay) and Handler exposes it at POST /api/contact for JSON,
// DataStar and plain HTML form clients.
package contact
