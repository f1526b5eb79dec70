package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"kzstore-backoffice/internal/config"
	"net/http"
	"time"
)

// MailClient sends one transactional email to one recipient. Delivery is
// best effort: the provider gives no guarantee beyond accepting the request,
// and callers own any per-recipient failure handling.
type MailClient interface {
	Send(ctx context.Context, to, subject, html string) error
}

type resendClientImpl struct {
	httpClient *http.Client
	baseApiURL string
	apiKey     string
	from       string
}

type resendSendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

type resendSendResult struct {
	ID string `json:"id"`
}

func NewResendClient(resendCfg *config.Resend) MailClient {
	return &resendClientImpl{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseApiURL: resendCfg.BaseApiURL,
		apiKey:     resendCfg.APIKey,
		from:       fmt.Sprintf("%s <%s>", resendCfg.FromName, resendCfg.FromEmail),
	}
}

func (c *resendClientImpl) Send(ctx context.Context, to, subject, html string) error {
	if c.apiKey == "" {
		return fmt.Errorf("resend api key not configured")
	}

	payload, err := json.Marshal(resendSendRequest{
		From:    c.from,
		To:      []string{to},
		Subject: subject,
		HTML:    html,
	})
	if err != nil {
		return fmt.Errorf("marshal send request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST",
		c.baseApiURL+"/emails", bytes.NewBuffer(payload))
	if err != nil {
		return fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("resend send failed (%d): %s", resp.StatusCode, string(body))
	}

	var res resendSendResult
	json.NewDecoder(resp.Body).Decode(&res)

	return nil
}
