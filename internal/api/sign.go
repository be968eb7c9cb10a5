package api

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/url"
	"strings"
)

// Sign returns base64(HMAC-SHA256(secretKey, timestamp+method+requestPath)).
// requestPath must carry the query string byte-for-byte as it goes on the wire.
func Sign(timestamp, method, requestPath, secretKey string) string {
	var payload strings.Builder
	payload.WriteString(timestamp)
	payload.WriteString(method)
	payload.WriteString(requestPath)

	mac := hmac.New(sha256.New, []byte(secretKey))
	mac.Write([]byte(payload.String()))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// RequestPath renders endpoint plus encoded query. The result is used both for
// signing and as the request target, so the two can never drift apart.
func RequestPath(endpoint string, params url.Values) string {
	if len(params) == 0 {
		return endpoint
	}
	return endpoint + "?" + params.Encode()
}
