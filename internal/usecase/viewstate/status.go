// Package viewstate holds the lifecycle shared by every view controller.
package viewstate

// Status is the lifecycle of one view.
type Status int

const (
	// Idle means nothing has been requested yet.
	Idle Status = iota
	// Loading means a request is in flight and there is nothing to show.
	Loading
	// Ready means the view has content. A refresh may still be in flight.
	Ready
	// Error means the last request failed and there is nothing to show.
	Error
)

func (s Status) String() string {
	switch s {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Error:
		return "error"
	default:
		return "idle"
	}
}

// Token issues monotonically increasing request tokens.
// Only a completion carrying the latest token may update a view.
type Token struct {
	n uint64
}

// Next invalidates every earlier token and returns a new one.
func (t *Token) Next() uint64 {
	t.n++
	return t.n
}

// Current reports whether tok is the latest token.
func (t *Token) Current(tok uint64) bool {
	return tok == t.n
}
