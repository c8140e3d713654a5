// Package webhook posts signed JSON payloads to HTTP endpoints.
//
// A Sender makes one delivery attempt per Send call and leaves retrying to the
// caller. Client errors (4xx other than 408, 425 and 429) are reported as
// ErrPermanentFailure so retry loops can stop early. An optional
// CircuitBreaker short-circuits sends to an endpoint that keeps failing.
//
// Payloads are signed with HMAC-SHA256 over "timestamp.body" when a secret is
// configured; receivers check them with Verify.
package webhook
