package mail

import (
	"context"
	"log"
)

type Message struct {
	From    string
	To      string
	Subject string
	Body    string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// LogMailer writes messages to the process log instead of delivering them.
type LogMailer struct{}

func (LogMailer) Send(_ context.Context, msg Message) error {
	log.Printf("mail: to=%s subject=%q\n%s", msg.To, msg.Subject, msg.Body)
	return nil
}
