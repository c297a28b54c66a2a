package mocks

import (
	"context"
	"sync"
	"time"
)

// SentReminder records one reminder delivered to the mock notifier.
type SentReminder struct {
	To        string
	TaskTitle string
	DueDate   time.Time
}

// MockNotifier implements reminder.Notifier for testing
type MockNotifier struct {
	// Function field for customizable behavior
	SendTaskReminderFn func(ctx context.Context, to, taskTitle string, dueDate time.Time) error

	// FailFor makes delivery fail for the listed recipients while the
	// rest succeed, for partial-failure scenarios.
	FailFor map[string]error

	mu   sync.Mutex
	Sent []SentReminder
}

// NewMockNotifier creates a new mock notifier
func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

// SendTaskReminder implements the reminder.Notifier interface
func (m *MockNotifier) SendTaskReminder(ctx context.Context, to, taskTitle string, dueDate time.Time) error {
	if m.SendTaskReminderFn != nil {
		return m.SendTaskReminderFn(ctx, to, taskTitle, dueDate)
	}

	if err, ok := m.FailFor[to]; ok {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, SentReminder{To: to, TaskTitle: taskTitle, DueDate: dueDate})
	return nil
}

// SentTo returns the reminders delivered to the given recipient.
func (m *MockNotifier) SentTo(to string) []SentReminder {
	m.mu.Lock()
	defer m.mu.Unlock()

	var result []SentReminder
	for _, s := range m.Sent {
		if s.To == to {
			result = append(result, s)
		}
	}
	return result
}
