package chat

import (
	"time"

	"github.com/google/uuid"
)

const (
	GreetingID = "1"
	Greeting   = "Hello! I'm your AI Gym Coach. How can I help you achieve your fitness goals today?"
	Apology    = "Sorry, something went wrong. Please try again."
)

type Message struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	IsUser    bool      `json:"is_user"`
	Timestamp time.Time `json:"timestamp"`
}

func NewMessage(text string, isUser bool, now time.Time) Message {
	return Message{
		ID:        uuid.NewString(),
		Message:   text,
		IsUser:    isUser,
		Timestamp: now,
	}
}

func GreetingMessage(now time.Time) Message {
	return Message{ID: GreetingID, Message: Greeting, IsUser: false, Timestamp: now}
}
