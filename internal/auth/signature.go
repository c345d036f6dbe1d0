// Package auth implements shared-secret authentication of inbound webhook
// requests. The upstream platform signs the request body with HMAC-SHA256
// using a pre-agreed secret; verification runs over the exact raw body bytes
// as received. Re-serializing a parsed body before hashing is unsafe (the
// re-encoding is not guaranteed byte-identical to the original) and is
// deliberately not supported here.
package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"orderline/internal/types"
)

// signaturePrefix is the optional scheme prefix some senders put in front of
// the hex digest, e.g. "sha256=<hex>".
const signaturePrefix = "sha256="

// VerifyHMAC checks an inbound request signature against the raw body bytes.
//
// Rules:
//   - No secret configured: verification is vacuously true (authentication
//     is opt-in by deployment).
//   - Secret configured, signature empty: verification fails. A missing
//     header is a failure, never "no secret configured".
//   - Otherwise the signature (bare hex or "sha256="-prefixed) must equal the
//     HMAC-SHA256 hex digest of the raw body keyed by the secret. The
//     comparison is constant-time over the hex representation.
func VerifyHMAC(rawBody []byte, signature, secret string) bool {
	if secret == "" {
		return true
	}
	if signature == "" {
		return false
	}

	supplied := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(signature), signaturePrefix))
	expected := computeHMAC(rawBody, secret)

	return hmac.Equal([]byte(supplied), []byte(expected))
}

// computeHMAC computes the HMAC-SHA256 of body keyed by secret and returns it
// as a lowercase hex string.
func computeHMAC(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// HMACVerifier binds a configured secret to the verification rule so handlers
// can hold a single injected dependency.
type HMACVerifier struct {
	secret types.SecretString
}

// NewHMACVerifier creates a verifier for the given shared secret. An empty
// secret produces a verifier that accepts every request.
func NewHMACVerifier(secret types.SecretString) *HMACVerifier {
	return &HMACVerifier{secret: secret}
}

// Verify reports whether the signature authenticates the raw body.
func (v *HMACVerifier) Verify(rawBody []byte, signature string) bool {
	return VerifyHMAC(rawBody, signature, v.secret.Unmask())
}
