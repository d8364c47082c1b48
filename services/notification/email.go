package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultEmailEndpoint = "https://api.emailjs.com/api/v1.0/email/send"

// EmailSender delivers one templated confirmation email.
type EmailSender interface {
	SendTemplate(ctx context.Context, toEmail string, params map[string]string) error
}

// EmailJSClient sends through the hosted EmailJS template API the original
// deployment used.
type EmailJSClient struct {
	serviceID  string
	templateID string
	publicKey  string
	endpoint   string
	httpClient *http.Client
}

func NewEmailJSClient(serviceID, templateID, publicKey string) *EmailJSClient {
	if strings.TrimSpace(serviceID) == "" || strings.TrimSpace(templateID) == "" {
		return nil
	}
	return &EmailJSClient{
		serviceID:  serviceID,
		templateID: templateID,
		publicKey:  publicKey,
		endpoint:   defaultEmailEndpoint,
		httpClient: &http.Client{Timeout: 8 * time.Second},
	}
}

type emailSendRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	TemplateParams map[string]string `json:"template_params"`
}

func (c *EmailJSClient) SendTemplate(ctx context.Context, toEmail string, params map[string]string) error {
	if c == nil {
		return errors.New("email client is nil")
	}
	if strings.TrimSpace(toEmail) == "" {
		return errors.New("missing recipient email")
	}

	merged := map[string]string{"to_email": toEmail}
	for k, v := range params {
		merged[k] = v
	}
	payload := emailSendRequest{
		ServiceID:      c.serviceID,
		TemplateID:     c.templateID,
		UserID:         c.publicKey,
		TemplateParams: merged,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("email send request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("email send rejected (%d): %s", resp.StatusCode, msg)
	}
	return nil
}
