// Package notify sends SMS budget alerts through the Twilio Messages API.
//
// The rest of the system treats this as an opaque collaborator: it receives
// a destination and the category numbers, sends, and reports the message
// SID. Delivery guarantees are Twilio's problem, not ours.
package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	defaultBaseURL = "https://api.twilio.com"
	requestTimeout = 10 * time.Second
	maxBodySize    = 1 << 20 // 1 MB
)

// ErrUnauthorized indicates the Twilio credentials were rejected.
var ErrUnauthorized = errors.New("notify: twilio rejected credentials")

// Client sends SMS messages through Twilio.
type Client struct {
	accountSID string
	authToken  string
	from       string
	baseURL    string
	http       *http.Client
}

// NewClient creates a Twilio client. Returns nil if any credential is
// missing, so callers can treat notifications as disabled.
func NewClient(accountSID, authToken, from string) *Client {
	if strings.TrimSpace(accountSID) == "" ||
		strings.TrimSpace(authToken) == "" ||
		strings.TrimSpace(from) == "" {
		return nil
	}
	return &Client{
		accountSID: accountSID,
		authToken:  authToken,
		from:       from,
		baseURL:    defaultBaseURL,
		http:       &http.Client{},
	}
}

// BudgetAlert is the payload for a category budget notification.
type BudgetAlert struct {
	Destination  string
	CategoryName string
	Spent        decimal.Decimal
	Remaining    decimal.Decimal
}

// Body renders the SMS text for the alert.
func (a BudgetAlert) Body() string {
	return fmt.Sprintf("Budget Update: You spent $%s on %s. $%s remaining in this category.",
		a.Spent.StringFixed(2), a.CategoryName, a.Remaining.StringFixed(2))
}

// SendBudgetAlert sends a category budget SMS and returns the Twilio
// message SID.
func (c *Client) SendBudgetAlert(ctx context.Context, alert BudgetAlert) (string, error) {
	return c.send(ctx, alert.Destination, alert.Body())
}

// SendBillReminder sends a due/overdue bill reminder SMS.
func (c *Client) SendBillReminder(ctx context.Context, destination, billName string, amount decimal.Decimal, dueDate string) (string, error) {
	body := fmt.Sprintf("Bill Reminder: %s ($%s) is due %s.", billName, amount.StringFixed(2), dueDate)
	return c.send(ctx, destination, body)
}

func (c *Client) send(ctx context.Context, to, body string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	form := url.Values{
		"To":   {to},
		"From": {c.from},
		"Body": {body},
	}
	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", c.baseURL, c.accountSID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("notify: creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.accountSID, c.authToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("notify: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", fmt.Errorf("notify: reading response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return "", ErrUnauthorized
	}

	var parsed struct {
		SID     string `json:"sid"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("notify: parsing response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if parsed.Message != "" {
			return "", fmt.Errorf("notify: twilio error: %s", parsed.Message)
		}
		return "", fmt.Errorf("notify: unexpected status %d", resp.StatusCode)
	}

	return parsed.SID, nil
}
