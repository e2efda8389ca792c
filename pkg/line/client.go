package line

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client talks to the LINE Messaging API: reply dispatch and message content
// download.
type Client struct {
	channelToken string
	apiBaseURL   string
	dataBaseURL  string
	client       *http.Client
}

func NewClient(channelToken string) *Client {
	return &Client{
		channelToken: channelToken,
		apiBaseURL:   "https://api.line.me/v2/bot",
		dataBaseURL:  "https://api-data.line.me/v2/bot",
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// --- Request structs (Internal to this package) ---

type replyRequest struct {
	ReplyToken string         `json:"replyToken"`
	Messages   []sendMessage  `json:"messages"`
}

type sendMessage struct {
	Type               string `json:"type"`
	Text               string `json:"text,omitempty"`
	OriginalContentUrl string `json:"originalContentUrl,omitempty"`
	Duration           int64  `json:"duration,omitempty"`
}

// ReplyText sends a single text message for the given reply token.
func (c *Client) ReplyText(ctx context.Context, replyToken, text string) error {
	return c.reply(ctx, replyRequest{
		ReplyToken: replyToken,
		Messages: []sendMessage{
			{Type: "text", Text: text},
		},
	})
}

// ReplyAudio sends an audio message followed by its text rendition.
// durationMs is the audio length in integer milliseconds.
func (c *Client) ReplyAudio(ctx context.Context, replyToken, audioURL string, durationMs int64, text string) error {
	return c.reply(ctx, replyRequest{
		ReplyToken: replyToken,
		Messages: []sendMessage{
			{Type: "audio", OriginalContentUrl: audioURL, Duration: durationMs},
			{Type: "text", Text: text},
		},
	})
}

func (c *Client) reply(ctx context.Context, payload replyRequest) error {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	url := c.apiBaseURL + "/message/reply"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.channelToken)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("line request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("line error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}
	return nil
}

// GetMessageContent streams the binary content (e.g. a recorded voice
// message) of a received message. The caller must close the reader.
func (c *Client) GetMessageContent(ctx context.Context, messageId string) (io.ReadCloser, error) {
	url := fmt.Sprintf("%s/message/%s/content", c.dataBaseURL, messageId)
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.channelToken)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("line request failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("line error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}
	return resp.Body, nil
}
