package postmark

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	netmail "net/mail"
	"strings"
	"time"

	"partner-portal-api/res/mail"
)

// PostmarkService implements the MailService interface using the Postmark API
type PostmarkService struct {
	serverToken string
	apiBaseURL  string
	logger      *log.Logger
	httpClient  *http.Client
}

// New creates a new Postmark service instance
func New(serverToken, apiURL string, timeout time.Duration, logger *log.Logger) mail.MailService {
	if apiURL == "" {
		apiURL = "https://api.postmarkapp.com"
	}
	return &PostmarkService{
		serverToken: serverToken,
		apiBaseURL:  apiURL,
		logger:      logger,
		httpClient:  &http.Client{Timeout: timeout},
	}
}

// postmarkEmailPayload represents the payload for sending email via Postmark
type postmarkEmailPayload struct {
	From          string `json:"From"`
	To            string `json:"To"`
	Subject       string `json:"Subject"`
	HtmlBody      string `json:"HtmlBody,omitempty"`
	TextBody      string `json:"TextBody,omitempty"`
	MessageStream string `json:"MessageStream"`
}

// postmarkResponse represents a response from the Postmark API
type postmarkResponse struct {
	ErrorCode int    `json:"ErrorCode"`
	Message   string `json:"Message"`
	MessageID string `json:"MessageID"`
}

// validateEmail validates an email address format using Go's built-in mail parser.
func (s *PostmarkService) validateEmail(email string) error {
	_, err := netmail.ParseAddress(email)
	if err != nil {
		return fmt.Errorf("invalid email address: %w", err)
	}
	return nil
}

// Send delivers one email through Postmark. If no server token is
// configured, Send returns nil (graceful degradation).
func (s *PostmarkService) Send(ctx context.Context, from, to, subject, htmlBody, textBody string) error {
	if s.serverToken == "" {
		s.logger.Printf("Postmark server token not configured, skipping email send")
		return nil
	}

	if err := s.validateEmail(from); err != nil {
		return fmt.Errorf("email send failed: %w", err)
	}
	if err := s.validateEmail(to); err != nil {
		return fmt.Errorf("email send failed: %w", err)
	}

	payload := postmarkEmailPayload{
		From:          from,
		To:            to,
		Subject:       subject,
		HtmlBody:      htmlBody,
		TextBody:      textBody,
		MessageStream: "outbound",
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("error marshaling email data: %w", err)
	}

	url := fmt.Sprintf("%s/email", s.apiBaseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Postmark-Server-Token", s.serverToken)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error sending request: %w", err)
	}
	defer resp.Body.Close()

	return s.handlePostmarkResponse(resp, fmt.Sprintf("email to %s", to))
}

// handlePostmarkResponse handles and validates responses from the Postmark API.
func (s *PostmarkService) handlePostmarkResponse(resp *http.Response, operation string) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response body: %w", err)
	}

	s.logger.Printf("[POSTMARK_RESPONSE] status=%d operation=%s body_length=%d", resp.StatusCode, operation, len(body))

	var response postmarkResponse
	if err := json.Unmarshal(body, &response); err != nil {
		s.logger.Printf("Warning: Could not parse Postmark response: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("postmark API returned status %d: %s", resp.StatusCode, sanitizeResponseBody(string(body)))
	}
	if response.ErrorCode != 0 {
		return fmt.Errorf("postmark API error %d: %s", response.ErrorCode, response.Message)
	}

	s.logger.Printf("[POSTMARK_SUCCESS] operation=%s message_id=%s", operation, response.MessageID)
	return nil
}

// sanitizeResponseBody limits response bodies for safe inclusion in errors
func sanitizeResponseBody(body string) string {
	const maxLength = 200
	cleaned := strings.ReplaceAll(body, "\x00", "")
	cleaned = strings.ReplaceAll(cleaned, "\r", "")
	cleaned = strings.ReplaceAll(cleaned, "\n", "")
	cleaned = strings.TrimSpace(cleaned)

	if len(cleaned) > maxLength {
		return cleaned[:maxLength] + "..."
	}
	return cleaned
}
