package api

import (
	"encoding/base64"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret    = "testsecret"
	testTimestamp = "1700000000000"
	// base64(HMAC-SHA256("testsecret", "1700000000000GET/api/v2/margin/isolated/interest-rate-and-limit?symbol=BTCUSDT"))
	btcusdtSignature = "vgWNvQGQyntRjpzxW09OG565yTELzUcXJ0BwQzrcp9A="
)

func TestSign_PinnedFixture(t *testing.T) {
	path := RequestPath(IsolatedInterestRateEndpoint, url.Values{"symbol": {"BTCUSDT"}})
	require.Equal(t, "/api/v2/margin/isolated/interest-rate-and-limit?symbol=BTCUSDT", path)

	assert.Equal(t, btcusdtSignature, Sign(testTimestamp, "GET", path, testSecret))
}

func TestSign_Deterministic(t *testing.T) {
	cases := []struct {
		secret  string
		message string
	}{
		{"testsecret", "/api/v2/spot/leverage/info"},
		{"", ""},
		{"密钥", "/api/v2/margin/isolated/interest-rate-and-limit?symbol=ETHUSDT"},
	}

	for _, tc := range cases {
		first := Sign(testTimestamp, "GET", tc.message, tc.secret)
		second := Sign(testTimestamp, "GET", tc.message, tc.secret)
		assert.Equal(t, first, second)
	}
}

func TestSign_DecodesToSHA256Digest(t *testing.T) {
	for _, path := range []string{"", "/a", "/api/v2/margin/isolated/interest-rate-and-limit?symbol=BTCUSDT"} {
		sig := Sign(testTimestamp, "GET", path, testSecret)

		raw, err := base64.StdEncoding.DecodeString(sig)
		require.NoError(t, err)
		assert.Len(t, raw, 32)
	}
}

func TestSign_SingleCharacterChangeAltersSignature(t *testing.T) {
	base := "/api/v2/margin/isolated/interest-rate-and-limit?symbol=BTCUSDT"
	want := Sign(testTimestamp, "GET", base, testSecret)

	variants := []string{
		"/api/v2/margin/isolated/interest-rate-and-limit?symbol=BTCUSDC",
		"/api/v2/margin/isolated/interest-rate-and-limit?symbol=btcusdt",
		"/api/v2/margin/isolated/interest-rate-and-limit?Symbol=BTCUSDT",
		"/api/v2/margin/isolated/interest-rate-and-limit/?symbol=BTCUSDT",
	}
	for _, v := range variants {
		assert.NotEqual(t, want, Sign(testTimestamp, "GET", v, testSecret), v)
	}

	assert.NotEqual(t, want, Sign("1700000000001", "GET", base, testSecret))
	assert.NotEqual(t, want, Sign(testTimestamp, "POST", base, testSecret))
	assert.NotEqual(t, want, Sign(testTimestamp, "GET", base, "testsecreT"))
}

func TestSign_ParameterOrderMatters(t *testing.T) {
	a := Sign(testTimestamp, "GET", "/x?a=1&b=2", testSecret)
	b := Sign(testTimestamp, "GET", "/x?b=2&a=1", testSecret)
	assert.NotEqual(t, a, b)
}

func TestRequestPath(t *testing.T) {
	assert.Equal(t, LeverageInfoEndpoint, RequestPath(LeverageInfoEndpoint, nil))
	assert.Equal(t, "/x?a=1&b=2", RequestPath("/x", url.Values{"b": {"2"}, "a": {"1"}}))
	assert.Equal(t, "/x?symbol=BTC%2FUSDT", RequestPath("/x", url.Values{"symbol": {"BTC/USDT"}}))
}
