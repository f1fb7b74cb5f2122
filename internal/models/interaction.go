package models

import (
	"time"

	"github.com/google/uuid"
)

type Channel string

const (
	ChannelVoice     Channel = "voice"
	ChannelSMS       Channel = "sms"
	ChannelWhatsApp  Channel = "whatsapp"
	ChannelFacebook  Channel = "facebook"
	ChannelInstagram Channel = "instagram"
	ChannelEmail     Channel = "email"
)

type Direction string

const (
	DirectionInbound  Direction = "inbound"
	DirectionOutbound Direction = "outbound"
)

type Outcome string

const (
	OutcomeBooked           Outcome = "booked"
	OutcomeQuestionAnswered Outcome = "question_answered"
	OutcomeEscalated        Outcome = "escalated"
	OutcomeFailed           Outcome = "failed"
	OutcomeNoAnswer         Outcome = "no_answer"
)

type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// Interaction is one append-only audit log entry. UserID keys the contact by
// normalized phone number so every channel reads and writes the same history.
type Interaction struct {
	ID        uuid.UUID `db:"id"`
	UserID    string    `db:"user_id"`
	Channel   Channel   `db:"channel"`
	Direction Direction `db:"direction"`
	Outcome   Outcome   `db:"outcome"`
	Sentiment Sentiment `db:"sentiment"`
	Summary   string    `db:"summary"`
	Duration  int       `db:"duration"` // seconds, voice calls only
	Timestamp time.Time `db:"timestamp"`
}
