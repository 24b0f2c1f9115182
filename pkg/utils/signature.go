package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// SignHMAC returns the hex-encoded HMAC-SHA256 of body under secret.
func SignHMAC(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyHMACSignature checks a hex-encoded HMAC-SHA256 signature over the raw
// request body. Comparison is constant-time.
func VerifyHMACSignature(body []byte, signature string, secret string) bool {
	if signature == "" || secret == "" {
		return false
	}
	expected := SignHMAC(body, secret)
	return hmac.Equal([]byte(expected), []byte(signature))
}
