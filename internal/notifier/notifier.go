package notifier

import "context"

// Notifier delivers a finished plain-text report.
type Notifier interface {
	Notify(ctx context.Context, title, body string) error
}

// Multi fans a report out to several notifiers and returns the first error.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, title, body string) error {
	var first error
	for _, n := range m {
		if err := n.Notify(ctx, title, body); err != nil && first == nil {
			first = err
		}
	}
	return first
}
