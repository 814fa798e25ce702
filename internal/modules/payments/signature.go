package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// VerifySignature reports whether providedSignature is the hex-encoded
// HMAC-SHA256 of "orderRef|paymentRef" under secret. The comparison is
// constant-time; any empty input fails verification.
func VerifySignature(orderRef, paymentRef, providedSignature string, secret []byte) bool {
	if orderRef == "" || paymentRef == "" || providedSignature == "" || len(secret) == 0 {
		return false
	}

	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(orderRef + "|" + paymentRef))
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(providedSignature))
}

// Sign computes the signature VerifySignature expects. Exposed for tests and
// the mockconfirm tool.
func Sign(orderRef, paymentRef string, secret []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(orderRef + "|" + paymentRef))
	return hex.EncodeToString(mac.Sum(nil))
}
