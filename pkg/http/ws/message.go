package ws

import "encoding/json"

// MessageType constants for the quiz session protocol.
const (
	// Client -> Server
	TypeStart = "start"
	TypeNext  = "next"
	TypePing  = "ping"

	// Server -> Client
	TypeQuestion     = "question"
	TypeQuizComplete = "quiz_complete"
	TypeError        = "error"
	TypePong         = "pong"
)

// Message wraps all WebSocket payloads with type and optional request ID.
type Message struct {
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	RequestID string          `json:"request_id,omitempty"`
}

// NewMessage encodes payload into a typed message. A nil payload is omitted.
func NewMessage(msgType string, payload interface{}) (Message, error) {
	msg := Message{Type: msgType}
	if payload == nil {
		return msg, nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	msg.Payload = raw
	return msg, nil
}

// Client Messages (incoming)

type StartPayload struct {
	QuizCategory QuizCategory `json:"quiz_category"`
}

type QuizCategory struct {
	ID   int    `json:"id"`
	Type string `json:"type"`
}

// Server Messages (outgoing)

type QuestionPayload struct {
	Question QuizQuestion `json:"question"`
	Asked    int          `json:"asked"`
}

type QuizQuestion struct {
	ID         int    `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   int    `json:"category"`
	Difficulty int    `json:"difficulty"`
}

type QuizCompletePayload struct {
	Asked int `json:"asked"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
