// Package sim drives an order book with generated orders.
package sim

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/quagmt/udecimal"

	match "github.com/0x5487/clob-simulator"
	"github.com/0x5487/clob-simulator/internal/generator"
)

// Book is the order book surface the simulator drives.
type Book interface {
	Submit(side match.Side, price udecimal.Decimal, size int64) (*match.SubmitResult, error)
}

// OrderSource produces the next order to submit.
type OrderSource interface {
	Next() generator.Request
}

// Renderer draws the book after each order. May be nil.
type Renderer interface {
	Render() error
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func() error

func (f RendererFunc) Render() error {
	return f()
}

type Options struct {
	Interval  time.Duration // Pause between orders; 0 submits as fast as possible
	MaxOrders int           // Stop after this many orders; 0 runs until ctx is done
	Logger    *slog.Logger
}

// Summary reports what a run did.
type Summary struct {
	Orders   int           `json:"orders"`
	Rejected int           `json:"rejected"`
	Trades   int           `json:"trades"`
	Volume   int64         `json:"volume"`
	Elapsed  time.Duration `json:"elapsed"`
}

type Simulator struct {
	book     Book
	source   OrderSource
	renderer Renderer
	opts     Options
}

func New(book Book, source OrderSource, renderer Renderer, opts Options) *Simulator {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Simulator{
		book:     book,
		source:   source,
		renderer: renderer,
		opts:     opts,
	}
}

// Run submits orders until ctx is done or MaxOrders is reached.
// Cancellation is not an error; a render failure stops the run and is returned.
func (s *Simulator) Run(ctx context.Context) (summary Summary, err error) {
	start := time.Now()
	defer func() {
		summary.Elapsed = time.Since(start)
	}()

	var tick <-chan time.Time
	if s.opts.Interval > 0 {
		ticker := time.NewTicker(s.opts.Interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for s.opts.MaxOrders == 0 || summary.Orders < s.opts.MaxOrders {
		select {
		case <-ctx.Done():
			return summary, nil
		default:
		}

		if err = s.step(&summary); err != nil {
			return summary, err
		}

		if tick == nil {
			continue
		}
		select {
		case <-ctx.Done():
			return summary, nil
		case <-tick:
		}
	}

	return summary, nil
}

func (s *Simulator) step(summary *Summary) error {
	req := s.source.Next()
	summary.Orders++

	result, err := s.book.Submit(req.Side, req.Price, req.Size)
	switch {
	case errors.Is(err, match.ErrInvalidOrder):
		summary.Rejected++
		s.opts.Logger.Warn("generated order rejected",
			slog.String("side", req.Side.String()),
			slog.String("price", req.Price.String()),
			slog.Int64("size", req.Size),
		)
	case err != nil:
		return fmt.Errorf("submit: %w", err)
	default:
		summary.Trades += len(result.Trades)
		summary.Volume += result.Filled()
	}

	if s.renderer != nil {
		if err := s.renderer.Render(); err != nil {
			return fmt.Errorf("render: %w", err)
		}
	}
	return nil
}
