package dto

// CallConfig is the per-caller configuration handed to the voice agent at
// call setup time.
type CallConfig struct {
	SystemPrompt string      `json:"systemPrompt"`
	Context      CallContext `json:"context"`
	VoiceConfig  VoiceConfig `json:"voiceConfig"`
}

// CallContext carries what is known about the caller. Fields stay empty for
// anonymous callers.
type CallContext struct {
	UserID         string `json:"userId,omitempty"`
	UserName       string `json:"userName,omitempty"`
	UserType       string `json:"userType,omitempty"`
	PaymentStatus  string `json:"paymentStatus,omitempty"`
	LastAttendance string `json:"lastAttendance,omitempty"`
}

type VoiceConfig struct {
	VoiceID         string  `json:"voiceId"`
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarityBoost"`
}
