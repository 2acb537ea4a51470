package testsupport

import (
	"context"
	"sync"

	"taskhero.com/taskhero/internal/mail"
)

// RecordingMailer keeps every message it is asked to send.
type RecordingMailer struct {
	mu   sync.Mutex
	sent []mail.Message
}

func (r *RecordingMailer) Send(_ context.Context, msg mail.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sent = append(r.sent, msg)
	return nil
}

func (r *RecordingMailer) Sent() []mail.Message {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]mail.Message, len(r.sent))
	copy(out, r.sent)
	return out
}
