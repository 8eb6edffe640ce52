package usecase

import (
	"context"

	"ScenarioSim/internal/domain/models"
	drepo "ScenarioSim/internal/domain/repository"
	"ScenarioSim/internal/services/simulation"
)

// PriceCollector drains the live price feed into the rolling price history
// so volatility estimates reflect recent market conditions.
type PriceCollector struct {
	stream  drepo.PriceStream
	history *simulation.PriceHistory
	metrics drepo.Metrics
}

// NewPriceCollector creates a new PriceCollector instance.
func NewPriceCollector(stream drepo.PriceStream, history *simulation.PriceHistory, metrics drepo.Metrics) *PriceCollector {
	return &PriceCollector{stream: stream, history: history, metrics: metrics}
}

// IsConnected returns true if the price stream is connected.
func (c *PriceCollector) IsConnected() bool {
	return c.stream.IsConnected()
}

func (c *PriceCollector) Start(ctx context.Context) error {
	if err := c.stream.Connect(ctx); err != nil {
		return err
	}
	if err := c.stream.Subscribe(ctx); err != nil {
		return err
	}
	ptCh, errCh := c.stream.Read(ctx)
	go c.consume(ctx, ptCh, errCh)
	return nil
}

func (c *PriceCollector) consume(ctx context.Context, ptCh <-chan models.PricePoint, errCh <-chan error) {
	for {
		select {
		case <-ctx.Done():
			return
		case err, ok := <-errCh:
			if ok && err != nil && c.metrics != nil {
				c.metrics.RecordError("price_stream")
			}
			// The stream closes both channels when its read loop exits.
			// A fresh Read is required after each reconnect or the loop
			// would spin on the dead channel pair forever.
			if ptCh, errCh = c.reopen(ctx); ptCh == nil {
				return
			}
		case pt, ok := <-ptCh:
			if !ok {
				// drained; the error side drives the reconnect
				ptCh = nil
				continue
			}
			c.history.Record(pt.Timestamp, pt.Price)
		}
	}
}

// reopen reconnects the stream until it succeeds or ctx is cancelled,
// then returns a fresh channel pair. Stream.Reconnect waits its
// configured delay between attempts.
func (c *PriceCollector) reopen(ctx context.Context) (<-chan models.PricePoint, <-chan error) {
	for {
		if ctx.Err() != nil {
			return nil, nil
		}
		if err := c.stream.Reconnect(ctx); err != nil {
			if c.metrics != nil {
				c.metrics.RecordError("price_stream")
			}
			continue
		}
		return c.stream.Read(ctx)
	}
}

// Shutdown closes the stream.
func (c *PriceCollector) Shutdown(ctx context.Context) error {
	return c.stream.Close()
}
