package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"drive-booking/internal/notify"
	"drive-booking/internal/pkg/config"
	"drive-booking/internal/pkg/errs"
)

// RelayMailer posts the notification payload as JSON to an external
// mail-relay endpoint (an Apps-Script-style webhook). Fire-and-forget:
// a non-2xx status is an error for logging, nothing retries it.
type RelayMailer struct {
	url    string
	client *http.Client
}

func NewRelayMailer(cfg config.MailConfig) (*RelayMailer, error) {
	if cfg.RelayURL == "" {
		return nil, errs.New("mail relay URL is not configured")
	}

	timeout := cfg.RelayTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &RelayMailer{
		url:    cfg.RelayURL,
		client: &http.Client{Timeout: timeout},
	}, nil
}

func (m *RelayMailer) Send(ctx context.Context, payload notify.EmailPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errs.Wrap(err, "failed to encode relay payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.url, bytes.NewReader(body))
	if err != nil {
		return errs.Wrap(err, "failed to build relay request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return errs.Wrap(err, "mail relay request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errs.New(fmt.Sprintf("mail relay returned status %d", resp.StatusCode))
	}
	return nil
}
