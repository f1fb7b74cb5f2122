package dto

import "dojoflow/internal/models"

// IncomingMessage is a normalized inbound message from a telephony webhook.
type IncomingMessage struct {
	From       string         `json:"from"`
	To         string         `json:"to"`
	Body       string         `json:"body"`
	Channel    models.Channel `json:"channel"`
	MessageSid string         `json:"messageSid"`
}

// SendMessageRequest is an outbound message submission.
type SendMessageRequest struct {
	To      string         `json:"to"`
	Body    string         `json:"body"`
	Channel models.Channel `json:"channel"`
}
