package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"newsflix/internal/eventloop"
)

// tasksMsg delivers queued loop handlers to Update, in posting order.
type tasksMsg []eventloop.Handler

// mailbox is the event loop sink of the UI. post never blocks, so handlers
// posted from inside Update cannot deadlock the program.
type mailbox struct {
	mu    sync.Mutex
	queue []eventloop.Handler
	ready chan struct{}
}

func newMailbox() *mailbox {
	return &mailbox{ready: make(chan struct{}, 1)}
}

func (b *mailbox) post(h eventloop.Handler) {
	b.mu.Lock()
	b.queue = append(b.queue, h)
	b.mu.Unlock()

	select {
	case b.ready <- struct{}{}:
	default:
	}
}

// wait returns a command that blocks until something was posted and then
// hands over everything queued so far.
func (b *mailbox) wait() tea.Cmd {
	return func() tea.Msg {
		<-b.ready
		b.mu.Lock()
		batch := b.queue
		b.queue = nil
		b.mu.Unlock()
		return tasksMsg(batch)
	}
}
