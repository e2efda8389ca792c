package line

import "encoding/json"

// Message types delivered by the webhook that this bot handles.
const (
	MessageTypeText  = "text"
	MessageTypeAudio = "audio"

	EventTypeMessage = "message"
)

// WebhookRequest is the envelope POSTed to /callback.
type WebhookRequest struct {
	Destination string  `json:"destination"`
	Events      []Event `json:"events"`
}

type Event struct {
	Type       string  `json:"type"`
	ReplyToken string  `json:"replyToken"`
	Source     Source  `json:"source"`
	Message    Message `json:"message"`
	Timestamp  int64   `json:"timestamp"`
}

type Source struct {
	Type   string `json:"type"`
	UserId string `json:"userId"`
}

type Message struct {
	Id       string `json:"id"`
	Type     string `json:"type"`
	Text     string `json:"text,omitempty"`
	Duration int64  `json:"duration,omitempty"`
}

// ParseWebhookRequest decodes the raw webhook body.
func ParseWebhookRequest(body []byte) (*WebhookRequest, error) {
	var req WebhookRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, err
	}
	return &req, nil
}
