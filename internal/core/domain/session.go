package domain

import (
	"strings"
	"sync"
)

// ContentType is the kind of output the user wants generated.
type ContentType string

// Available content types.
const (
	ContentTypeDocumentation ContentType = "Documentation"
	ContentTypeArticle       ContentType = "Article"
	ContentTypeSummary       ContentType = "Summary"
)

// IsValid returns true if the content type is recognised.
func (c ContentType) IsValid() bool {
	switch c {
	case ContentTypeDocumentation, ContentTypeArticle, ContentTypeSummary:
		return true
	default:
		return false
	}
}

// Message is one turn of a conversation.
type Message struct {
	// Role is "user" or "assistant".
	Role string

	// Content is the message text.
	Content string
}

// Session is the explicit context of one user session.
// It replaces ambient global state and is torn down with Close.
type Session struct {
	mu          sync.Mutex
	contentType ContentType
	tree        string
	history     []Message
	closed      bool
}

// NewSession creates a session. An invalid content type falls back to Documentation.
func NewSession(contentType ContentType, tree string) *Session {
	if !contentType.IsValid() {
		contentType = ContentTypeDocumentation
	}
	return &Session{
		contentType: contentType,
		tree:        tree,
	}
}

// ContentType returns the selected content type.
func (s *Session) ContentType() ContentType {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.contentType
}

// Tree returns the code-base tree description, or a placeholder when none was supplied.
func (s *Session) Tree() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tree == "" {
		return "The project has no code base provided"
	}
	return s.tree
}

// Record appends a message to the history.
func (s *Session) Record(role, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	s.history = append(s.history, Message{Role: role, Content: content})
	return nil
}

// History returns a copy of the conversation so far.
func (s *Session) History() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.history))
	copy(out, s.history)
	return out
}

// Close clears the history and rejects further messages.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = nil
	s.closed = true
}

// Render fills a prompt template with the session context and appends the
// conversation so far. Recognised placeholders are {tree}, {input} and
// {content_type}.
func (s *Session) Render(template, input string) string {
	r := strings.NewReplacer(
		"{tree}", s.Tree(),
		"{input}", input,
		"{content_type}", string(s.ContentType()),
	)

	var b strings.Builder
	b.WriteString(r.Replace(template))

	history := s.History()
	if len(history) > 0 {
		b.WriteString("\n\nChat history:\n")
		for _, m := range history {
			b.WriteString(m.Role)
			b.WriteString(": ")
			b.WriteString(m.Content)
			b.WriteString("\n")
		}
	}
	return b.String()
}
