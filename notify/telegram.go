package notify

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"
)

// Telegram ships notifications to a Telegram chat using plain HTTP calls.
type Telegram struct {
	token  string
	chatID string
	client *http.Client
}

// NewTelegram returns a sender with a shared HTTP client. Empty credentials
// fall back to the TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID environment
// variables.
func NewTelegram(token, chatID string) *Telegram {
	if token == "" {
		token = os.Getenv("TELEGRAM_BOT_TOKEN")
	}
	if chatID == "" {
		chatID = os.Getenv("TELEGRAM_CHAT_ID")
	}
	return &Telegram{
		token:  token,
		chatID: chatID,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Validate ensures credentials are present before a run starts. Missing
// notification credentials are the one fatal configuration error.
func (t *Telegram) Validate() error {
	if t.token == "" {
		return errors.New("telegram bot token not provided")
	}
	if t.chatID == "" {
		return errors.New("telegram chat id not provided")
	}
	return nil
}

// SendMessage posts a Markdown-formatted message to the configured chat.
func (t *Telegram) SendMessage(text string) error {
	payload := map[string]string{
		"chat_id":    t.chatID,
		"text":       text,
		"parse_mode": "Markdown",
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", t.token)
	resp, err := t.client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("telegram returned %s", resp.Status)
	}
	return nil
}

// SendTestMessage verifies the bot wiring end to end.
func (t *Telegram) SendTestMessage() error {
	return t.SendMessage("transit-pings test message - bot is working")
}
