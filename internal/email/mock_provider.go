package email

import "sync"

// MockProvider records sent mail instead of delivering it. Used in tests and
// local development.
type MockProvider struct {
	mu       sync.Mutex
	Messages []*Message
	Links    []string
}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (m *MockProvider) Send(msg *Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Messages = append(m.Messages, msg)
	return nil
}

func (m *MockProvider) SendVerification(to, link string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Links = append(m.Links, link)
	m.Messages = append(m.Messages, &Message{To: []string{to}, Subject: "Verify your MarketSafe email", Body: link})
	return nil
}

func (m *MockProvider) Close() error { return nil }

// LastLink returns the most recently recorded verification link.
func (m *MockProvider) LastLink() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Links) == 0 {
		return ""
	}
	return m.Links[len(m.Links)-1]
}
