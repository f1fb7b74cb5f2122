package twilio

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"dojoflow/pkg/config"

	"go.uber.org/zap"
)

// Client is a minimal Twilio REST client covering outbound messages and
// calls. Credentials come from configuration; there is no SDK dependency.
// API reference: https://www.twilio.com/docs/messaging/api/message-resource
type Client struct {
	accountSID string
	authToken  string
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(cfg *config.TwilioConfig, logger *zap.Logger) *Client {
	return &Client{
		accountSID: cfg.AccountSID,
		authToken:  cfg.AuthToken,
		baseURL:    "https://api.twilio.com/2010-04-01",
		httpClient: &http.Client{},
		logger:     logger,
	}
}

// Send delivers a message and returns the provider message SID. The caller
// is responsible for channel prefixes ("whatsapp:+1...").
func (c *Client) Send(ctx context.Context, from, to, body string) (string, error) {
	form := url.Values{}
	form.Set("From", from)
	form.Set("To", to)
	form.Set("Body", body)

	endpoint := fmt.Sprintf("%s/Accounts/%s/Messages.json", c.baseURL, c.accountSID)
	resp, err := c.postForm(ctx, endpoint, form)
	if err != nil {
		return "", err
	}

	return resp.SID, nil
}

// Call initiates an outbound voice call instructed by the TwiML at
// configURL; statusCallback may be empty.
func (c *Client) Call(ctx context.Context, from, to, configURL, statusCallback string) (string, error) {
	form := url.Values{}
	form.Set("From", from)
	form.Set("To", to)
	form.Set("Url", configURL)
	if statusCallback != "" {
		form.Set("StatusCallback", statusCallback)
	}

	endpoint := fmt.Sprintf("%s/Accounts/%s/Calls.json", c.baseURL, c.accountSID)
	resp, err := c.postForm(ctx, endpoint, form)
	if err != nil {
		return "", err
	}

	return resp.SID, nil
}

type apiResponse struct {
	SID     string `json:"sid"`
	Status  string `json:"status"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

func (c *Client) postForm(ctx context.Context, endpoint string, form url.Values) (*apiResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.accountSID, c.authToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("twilio request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		c.logger.Error("Twilio API error",
			zap.Int("status", resp.StatusCode),
			zap.String("response", string(bodyBytes)),
		)
		return nil, fmt.Errorf("twilio API returned status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var parsed apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode twilio response: %w", err)
	}

	return &parsed, nil
}
