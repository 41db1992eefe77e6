package mailer

import (
	"sync"
)

// Email is a message captured by the MockMailer instead of being delivered.
type Email struct {
	Recipient    string
	TemplateFile string
	Data         any
}

// MockMailer records outgoing mail for inspection in tests. Safe for
// concurrent use, since booking notifications are sent from goroutines.
type MockMailer struct {
	mu   sync.RWMutex
	sent []Email
}

func NewMockMailer() *MockMailer {
	return &MockMailer{}
}

func (m *MockMailer) Send(recipient, templateFile string, data any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sent = append(m.sent, Email{
		Recipient:    recipient,
		TemplateFile: templateFile,
		Data:         data,
	})

	return nil
}

// GetSentEmails returns a copy of everything sent so far.
func (m *MockMailer) GetSentEmails() []Email {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sent := make([]Email, len(m.sent))
	copy(sent, m.sent)
	return sent
}

func (m *MockMailer) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sent = nil
}
