package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"
)

func TestVerifySignature(t *testing.T) {
	secret := []byte("test_key_secret")

	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte("order_1|pay_1"))
	valid := hex.EncodeToString(mac.Sum(nil))

	tests := []struct {
		name       string
		orderRef   string
		paymentRef string
		signature  string
		secret     []byte
		want       bool
	}{
		{name: "valid signature", orderRef: "order_1", paymentRef: "pay_1", signature: valid, secret: secret, want: true},
		{name: "tampered signature", orderRef: "order_1", paymentRef: "pay_1", signature: "deadbeef" + valid[8:], secret: secret, want: false},
		{name: "wrong secret", orderRef: "order_1", paymentRef: "pay_1", signature: valid, secret: []byte("other"), want: false},
		{name: "swapped refs", orderRef: "pay_1", paymentRef: "order_1", signature: valid, secret: secret, want: false},
		{name: "empty order ref", orderRef: "", paymentRef: "pay_1", signature: valid, secret: secret, want: false},
		{name: "empty payment ref", orderRef: "order_1", paymentRef: "", signature: valid, secret: secret, want: false},
		{name: "empty signature", orderRef: "order_1", paymentRef: "pay_1", signature: "", secret: secret, want: false},
		{name: "empty secret", orderRef: "order_1", paymentRef: "pay_1", signature: valid, secret: nil, want: false},
		{name: "garbage signature", orderRef: "order_1", paymentRef: "pay_1", signature: "not-hex-at-all", secret: secret, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VerifySignature(tt.orderRef, tt.paymentRef, tt.signature, tt.secret)
			if got != tt.want {
				t.Errorf("VerifySignature() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSignRoundTrip(t *testing.T) {
	secret := []byte("another_secret")
	sig := Sign("order_42", "pay_42", secret)

	if !VerifySignature("order_42", "pay_42", sig, secret) {
		t.Errorf("VerifySignature rejected a signature produced by Sign")
	}
	if VerifySignature("order_42", "pay_43", sig, secret) {
		t.Errorf("VerifySignature accepted a signature for a different payment ref")
	}
}
