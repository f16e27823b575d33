package store

import (
	"sync"
	"time"

	"github.com/yungbote/gymcoach/internal/domain/chat"
)

// ChatLog is the append-only conversation, seeded with the coach greeting.
type ChatLog struct {
	mu       sync.RWMutex
	messages []chat.Message
	loading  bool
	now      func() time.Time
}

func NewChatLog() *ChatLog {
	l := &ChatLog{now: time.Now}
	l.messages = []chat.Message{chat.GreetingMessage(l.now())}
	return l
}

// Append adds one message and returns it.
func (l *ChatLog) Append(text string, isUser bool) chat.Message {
	l.mu.Lock()
	defer l.mu.Unlock()
	m := chat.NewMessage(text, isUser, l.now())
	l.messages = append(l.messages, m)
	return m
}

// Messages returns a copy of the log in append order.
func (l *ChatLog) Messages() []chat.Message {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]chat.Message(nil), l.messages...)
}

// Clear resets the log to the greeting alone.
func (l *ChatLog) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = []chat.Message{chat.GreetingMessage(l.now())}
	l.loading = false
}

func (l *ChatLog) SetLoading(v bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.loading = v
}

func (l *ChatLog) Loading() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.loading
}
