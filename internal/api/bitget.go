package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"

	"bitget-margin-info/internal/config"
	"bitget-margin-info/internal/logger"
	"bitget-margin-info/internal/model"
)

const (
	LeverageInfoEndpoint         = "/api/v2/spot/leverage/info"
	IsolatedInterestRateEndpoint = "/api/v2/margin/isolated/interest-rate-and-limit"
	MarginCurrenciesEndpoint     = "/api/v2/margin/currencies"
)

// Numbers stay json.Number so payloads come back exactly as sent.
var payloadCodec = jsoniter.Config{
	EscapeHTML:             true,
	ValidateJsonRawMessage: true,
	UseNumber:              true,
}.Froze()

type BitgetClient struct {
	Credentials model.Credentials
	BaseURL     string
	Locale      string
	Client      *http.Client

	now func() time.Time
}

// NewBitgetClient builds a client from the loaded configuration. The http.Client
// has no timeout of its own; callers bound requests through the context.
func NewBitgetClient(cfg *config.Config) *BitgetClient {
	return &BitgetClient{
		Credentials: cfg.Credentials,
		BaseURL:     cfg.BitgetBaseURL,
		Locale:      cfg.BitgetLocale,
		Client:      &http.Client{},
		now:         time.Now,
	}
}

// NewBitgetClientWithHTTPClient points the client at another base URL, e.g. an httptest server.
func NewBitgetClientWithHTTPClient(httpClient *http.Client, baseURL string, creds model.Credentials) *BitgetClient {
	return &BitgetClient{
		Credentials: creds,
		BaseURL:     baseURL,
		Locale:      config.DefaultLocale,
		Client:      httpClient,
		now:         time.Now,
	}
}

// GetLeverageInfo lists leveraged spot pairs. Public, unsigned.
func (c *BitgetClient) GetLeverageInfo(ctx context.Context) (model.Payload, error) {
	return c.get(ctx, LeverageInfoEndpoint, nil, false)
}

// GetIsolatedInterestRateAndLimit returns isolated-margin interest rates and
// borrow limits for symbol. Signed.
func (c *BitgetClient) GetIsolatedInterestRateAndLimit(ctx context.Context, symbol string) (model.Payload, error) {
	params := url.Values{}
	params.Add("symbol", symbol)
	return c.get(ctx, IsolatedInterestRateEndpoint, params, true)
}

// GetMarginCurrencies lists margin-enabled pairs with their borrowability flags. Public.
func (c *BitgetClient) GetMarginCurrencies(ctx context.Context) (model.Payload, error) {
	return c.get(ctx, MarginCurrenciesEndpoint, nil, false)
}

func (c *BitgetClient) get(ctx context.Context, endpoint string, params url.Values, signed bool) (model.Payload, error) {
	requestPath := RequestPath(endpoint, params)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+requestPath, nil)
	if err != nil {
		return nil, &TransportError{Endpoint: endpoint, Err: err}
	}
	// Send the query exactly as rendered for the signature.
	req.URL.RawQuery = params.Encode()

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("locale", c.Locale)
	if signed {
		c.signRequest(req, requestPath)
	}

	logger.Debug("Bitget request", "method", req.Method, "path", requestPath, "signed", signed)

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, &TransportError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Endpoint: endpoint, Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		logger.Error("Bitget API Error", "endpoint", endpoint, "status", resp.StatusCode, "body", string(body))
		return nil, &StatusError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(body),
		}
	}

	var payload model.Payload
	if err := payloadCodec.Unmarshal(body, &payload); err != nil {
		return nil, &DecodeError{Endpoint: endpoint, Body: string(body), Err: err}
	}
	if payload == nil {
		return nil, &DecodeError{Endpoint: endpoint, Body: string(body), Err: errors.New("response is not a JSON object")}
	}

	return payload, nil
}

func (c *BitgetClient) signRequest(req *http.Request, requestPath string) {
	timestamp := strconv.FormatInt(c.now().UnixMilli(), 10)

	req.Header.Set("ACCESS-KEY", c.Credentials.APIKey)
	req.Header.Set("ACCESS-SIGN", Sign(timestamp, req.Method, requestPath, c.Credentials.SecretKey))
	req.Header.Set("ACCESS-PASSPHRASE", c.Credentials.Passphrase)
	req.Header.Set("ACCESS-TIMESTAMP", timestamp)
}
