package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"lingo-days/internal/domain"
)

// VerifySallaSignature checks a hex HMAC-SHA256 of body keyed by secret.
func VerifySallaSignature(secret string, body []byte, signature string) error {
	if secret == "" {
		return domain.NewError(domain.CodeUnavailable, "Order webhook is not configured", nil)
	}
	given, err := hex.DecodeString(strings.TrimSpace(signature))
	if err != nil || len(given) == 0 {
		return domain.NewError(domain.CodeInvalidSignature, "Missing or malformed webhook signature", nil)
	}
	if !hmac.Equal(given, SignSallaPayload(secret, body)) {
		return domain.NewError(domain.CodeInvalidSignature, "Webhook signature does not match", nil)
	}
	return nil
}

// SignSallaPayload returns the raw HMAC-SHA256 of body.
func SignSallaPayload(secret string, body []byte) []byte {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return mac.Sum(nil)
}
