// Package guard generates the time-based second-factor codes the storefront
// expects during sign-in. The code is derived from a shared secret and a
// 30-second time window; the clock is always passed in by the caller.
package guard

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base32"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Period is the width of one code window in seconds.
const Period = 30

// ErrInvalidSecret is returned when an encoded shared secret cannot be decoded.
var ErrInvalidSecret = errors.New("invalid shared secret")

// GenerateCode derives the 5-digit code for the window containing at, along
// with the instant the code stops being valid.
//
// The derivation is HMAC-SHA1 over the big-endian 8-byte window counter,
// dynamically truncated to a 31-bit value; the code is the last five decimal
// digits of that value, zero-padded.
func GenerateCode(secret []byte, at time.Time) (string, time.Time) {
	step := at.Unix() / Period

	var msg [8]byte
	binary.BigEndian.PutUint64(msg[:], uint64(step))

	mac := hmac.New(sha1.New, secret)
	mac.Write(msg[:])
	sum := mac.Sum(nil)

	offset := sum[len(sum)-1] & 0x0f
	value := (uint32(sum[offset])&0x7f)<<24 |
		uint32(sum[offset+1])<<16 |
		uint32(sum[offset+2])<<8 |
		uint32(sum[offset+3])

	code := fmt.Sprintf("%05d", value%100000)
	validUntil := time.Unix((step+1)*Period, 0)
	return code, validUntil
}

// DecodeSecret decodes a stored shared secret. Secrets are provisioned in
// base64; unpadded base32 (the format authenticator exports use) is accepted
// as a fallback.
func DecodeSecret(encoded string) ([]byte, error) {
	trimmed := strings.TrimSpace(encoded)
	if trimmed == "" {
		return nil, ErrInvalidSecret
	}
	if raw, err := base64.StdEncoding.DecodeString(trimmed); err == nil {
		return raw, nil
	}
	enc := base32.StdEncoding.WithPadding(base32.NoPadding)
	if raw, err := enc.DecodeString(strings.ToUpper(trimmed)); err == nil {
		return raw, nil
	}
	return nil, fmt.Errorf("%w: not base64 or base32", ErrInvalidSecret)
}
