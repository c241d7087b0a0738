package middleware

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"kayexpress/internal/pkg/response"
)

// SignatureHeader carries the hex HMAC-SHA256 of the raw request body,
// keyed with the shared gateway secret.
const SignatureHeader = "X-Gateway-Signature"

// Sign computes the signature the gateway is expected to send for body.
func Sign(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func ValidSignature(body []byte, secret, signature string) bool {
	expected := Sign(body, secret)
	return hmac.Equal([]byte(expected), []byte(signature))
}

// GatewaySignature authenticates payment gateway callbacks. The body is
// read for verification and restored so handlers can bind it again.
func GatewaySignature(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			logWebhookFailure(c, http.StatusInternalServerError, "secret_not_configured")
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Webhook secret is not configured")
			c.Abort()
			return
		}

		signature := c.GetHeader(SignatureHeader)
		if signature == "" {
			logWebhookFailure(c, http.StatusUnauthorized, "missing_signature")
			response.Error(c, http.StatusUnauthorized, "INVALID_SIGNATURE", "Gateway signature header is required")
			c.Abort()
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			logWebhookFailure(c, http.StatusBadRequest, "unreadable_body")
			response.Error(c, http.StatusBadRequest, "INVALID_BODY", "Could not read request body")
			c.Abort()
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		if !ValidSignature(body, secret, signature) {
			logWebhookFailure(c, http.StatusUnauthorized, "invalid_signature")
			response.Error(c, http.StatusUnauthorized, "INVALID_SIGNATURE", "Gateway signature mismatch")
			c.Abort()
			return
		}

		c.Next()
	}
}

func logWebhookFailure(c *gin.Context, status int, reason string) {
	log.Printf("gateway_webhook_auth status=%d request_id=%s reason=%s", status, requestID(c), reason)
}
