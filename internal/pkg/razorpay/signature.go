package razorpay

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"
)

// SignPayment computes the payment proof signature:
// HMAC-SHA256(secret, orderID + "|" + paymentID), hex encoded.
// This construction must match the deployed gateway exactly.
func SignPayment(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature compares an expected hex signature against the one the
// client relayed from the gateway, in constant time.
func VerifySignature(expectedHex, receivedHex string) bool {
	expected := strings.ToLower(strings.TrimSpace(expectedHex))
	received := strings.ToLower(strings.TrimSpace(receivedHex))
	return subtle.ConstantTimeCompare([]byte(expected), []byte(received)) == 1
}

// VerifyPaymentSignature recomputes and checks the payment signature.
func VerifyPaymentSignature(secret, orderID, paymentID, signature string) bool {
	return VerifySignature(SignPayment(secret, orderID, paymentID), signature)
}
