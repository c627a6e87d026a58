package worker

import (
	"context"

	audit "taxportal/pkg/platform/audit"
)

// Worker consumes audit events from a channel and persists them. It returns
// when the context ends or the inbox is closed and drained.
type Worker struct {
	store audit.Store
	inbox <-chan audit.Event
	onErr func(error)
}

func NewWorker(store audit.Store, inbox <-chan audit.Event, onErr func(error)) *Worker {
	return &Worker{store: store, inbox: inbox, onErr: onErr}
}

func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.inbox:
			if !ok {
				return nil
			}
			if err := w.store.Append(ctx, event); err != nil && w.onErr != nil {
				w.onErr(err)
			}
		}
	}
}
