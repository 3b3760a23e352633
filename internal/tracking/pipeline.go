package tracking

import (
	"context"

	"github.com/chris-shaw-2011/geo-time-tracker/internal/logging"
)

// Pipeline adapts the source's push-style event stream into store and
// timeclock calls. A single loop consumes the channel, so updates are
// processed strictly in arrival order; downstream consumers reconstruct a
// path from event times and must never see reordering.
type Pipeline struct {
	source  Source
	clock   *Timeclock
	storage Storage
	log     logging.Logger
}

func NewPipeline(source Source, clock *Timeclock, storage Storage, log logging.Logger) *Pipeline {
	return &Pipeline{source: source, clock: clock, storage: storage, log: log}
}

// Run consumes the source stream until ctx is cancelled or the source
// closes its channel. Cancelling ctx is the explicit teardown path.
func (p *Pipeline) Run(ctx context.Context) error {
	events := p.source.Events()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case u, ok := <-events:
			if !ok {
				return nil
			}
			p.handle(ctx, u)
		}
	}
}

func (p *Pipeline) handle(ctx context.Context, u Update) {
	// The diagnostic trail is written unconditionally so it survives
	// even when no timecard is open.
	var data any
	if u.Latitude != nil && u.Longitude != nil {
		payload := map[string]any{"latitude": *u.Latitude, "longitude": *u.Longitude}
		if u.Accuracy != nil {
			payload["accuracy"] = *u.Accuracy
		}
		data = payload
	}
	if _, err := p.storage.AppendLog(ctx, normalizeMessage(u.Message), data, u.Time); err != nil {
		p.log.Error(ctx, "failed to append log record", "error", err)
	}

	attached, err := p.clock.IngestExternalEvent(ctx, u)
	if err != nil {
		p.log.Error(ctx, "failed to ingest source event", "error", err)
		return
	}
	if !attached {
		p.log.Debug(ctx, "no open timecard; source event not attached", "message", normalizeMessage(u.Message))
	}
}
