package services

import (
	"context"
	"log"
	"sync"

	"taskhero.com/taskhero/internal/mail"
)

// MailPool delivers queued messages on a fixed set of workers so request
// handlers never wait on the mailer.
type MailPool struct {
	queue  chan mail.Message
	wg     sync.WaitGroup
	mailer mail.Mailer

	mu     sync.RWMutex
	closed bool
}

func NewMailPool(mailer mail.Mailer, workers, queueSize int) *MailPool {
	p := &MailPool{
		queue:  make(chan mail.Message, queueSize),
		mailer: mailer,
	}

	for i := 1; i <= workers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}

	return p
}

// Enqueue reports false when the queue is full or the pool is shut down.
func (p *MailPool) Enqueue(msg mail.Message) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return false
	}

	select {
	case p.queue <- msg:
		return true
	default:
		return false
	}
}

func (p *MailPool) worker(workerID int) {
	defer p.wg.Done()

	log.Printf("mail worker %d started", workerID)

	for msg := range p.queue {
		if err := p.mailer.Send(context.Background(), msg); err != nil {
			log.Printf("mail worker %d: failed to send %q to %s: %v", workerID, msg.Subject, msg.To, err)
		}
	}

	log.Printf("mail worker %d stopped", workerID)
}

func (p *MailPool) Shutdown(ctx context.Context) {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.queue)
	}
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Println("mail pool shut down cleanly")
	case <-ctx.Done():
		log.Println("mail pool shutdown timed out")
	}
}
