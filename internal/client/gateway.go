package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/madistic/Edviron-2/internal/apperr"
	"github.com/madistic/Edviron-2/internal/config"
)

// GatewayClient talks to the Edviron collect-request API. Requests carry a
// bearer API key plus a per-request JWT signed with the PG key. Stateless
// apart from the injected secrets, so safe for concurrent use.
type GatewayClient interface {
	CreateCollectRequest(ctx context.Context, amount, callbackURL string) (*CollectRequestResponse, error)
	CheckStatus(ctx context.Context, collectRequestID string) (map[string]interface{}, error)
}

type CollectRequestResponse struct {
	CollectRequestID  string
	CollectRequestURL string
	Sign              string
}

type gatewayClientImpl struct {
	httpClient *http.Client
	baseURL    string
	pgKey      string
	apiKey     string
	schoolID   string
}

func NewGatewayClient(gatewayCfg *config.Gateway) GatewayClient {
	return &gatewayClientImpl{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL:  gatewayCfg.BaseURL,
		pgKey:    gatewayCfg.PGKey,
		apiKey:   gatewayCfg.APIKey,
		schoolID: gatewayCfg.SchoolID,
	}
}

func (c *gatewayClientImpl) sign(claims jwt.MapClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(c.pgKey))
	if err != nil {
		return "", fmt.Errorf("sign gateway payload: %w", err)
	}
	return signed, nil
}

func (c *gatewayClientImpl) CreateCollectRequest(ctx context.Context, amount, callbackURL string) (*CollectRequestResponse, error) {
	sign, err := c.sign(jwt.MapClaims{
		"school_id":    c.schoolID,
		"amount":       amount,
		"callback_url": callbackURL,
	})
	if err != nil {
		return nil, err
	}

	payload := map[string]string{
		"school_id":    c.schoolID,
		"amount":       amount,
		"callback_url": callbackURL,
		"sign":         sign,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal req payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/erp/create-collect-request",
		bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &apperr.GatewayError{Message: "create collect request failed", Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &apperr.GatewayError{StatusCode: resp.StatusCode, Message: "read gateway response", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &apperr.GatewayError{StatusCode: resp.StatusCode, Message: gatewayMessage(respBody)}
	}
	if len(respBody) == 0 {
		return nil, &apperr.GatewayError{StatusCode: resp.StatusCode, Message: "empty response from payment gateway"}
	}

	// encoding/json matches keys case-insensitively, which absorbs the
	// gateway's Collect_request_url / collect_request_url inconsistency.
	var result struct {
		CollectRequestID  string `json:"collect_request_id"`
		CollectRequestURL string `json:"collect_request_url"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, &apperr.GatewayError{StatusCode: resp.StatusCode, Message: "decode gateway response", Err: err}
	}

	return &CollectRequestResponse{
		CollectRequestID:  result.CollectRequestID,
		CollectRequestURL: result.CollectRequestURL,
		Sign:              sign,
	}, nil
}

func (c *gatewayClientImpl) CheckStatus(ctx context.Context, collectRequestID string) (map[string]interface{}, error) {
	sign, err := c.sign(jwt.MapClaims{
		"school_id":          c.schoolID,
		"collect_request_id": collectRequestID,
	})
	if err != nil {
		return nil, err
	}

	statusURL := fmt.Sprintf("%s/erp/collect-request/%s", c.baseURL, url.PathEscape(collectRequestID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, statusURL, nil)
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}
	q := req.URL.Query()
	q.Set("school_id", c.schoolID)
	q.Set("sign", sign)
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &apperr.GatewayError{Message: "check collect request status failed", Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &apperr.GatewayError{StatusCode: resp.StatusCode, Message: "read gateway response", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &apperr.GatewayError{StatusCode: resp.StatusCode, Message: gatewayMessage(respBody)}
	}

	var result map[string]interface{}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, &apperr.GatewayError{StatusCode: resp.StatusCode, Message: "decode gateway response", Err: err}
	}

	return result, nil
}

// gatewayMessage pulls the gateway's own message out of an error reply when
// there is one, falling back to the raw body.
func gatewayMessage(body []byte) string {
	var parsed struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Message != "" {
		return parsed.Message
	}
	if len(body) == 0 {
		return "empty response from payment gateway"
	}
	return string(body)
}
