// Package dashboard renders an order book to a terminal.
package dashboard

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/quagmt/udecimal"

	match "github.com/0x5487/clob-simulator"
)

const clearScreen = "\033[2J\033[H"

// BookView is the read-only surface of an order book the dashboard needs.
type BookView interface {
	Depth(limit uint32) (*match.Depth, error)
	Spread() (udecimal.Decimal, bool)
	Trades() []match.Trade
}

type Options struct {
	Instrument  string
	Rows        int
	ClearScreen bool
}

type Dashboard struct {
	w    io.Writer
	opts Options
}

func New(w io.Writer, opts Options) *Dashboard {
	if opts.Rows <= 0 {
		opts.Rows = 15
	}
	return &Dashboard{w: w, opts: opts}
}

// Render draws the price levels, the spread and the recent trades, oldest trade first.
func (d *Dashboard) Render(book BookView) error {
	depth, err := book.Depth(uint32(d.opts.Rows))
	if err != nil {
		return fmt.Errorf("dashboard depth: %w", err)
	}

	if d.opts.ClearScreen {
		if _, err := io.WriteString(d.w, clearScreen); err != nil {
			return err
		}
	}

	fmt.Fprintln(d.w, "--- CONTINUOUS LIMIT ORDER BOOK (CLOB) ---")
	fmt.Fprintf(d.w, "Stock: %s\n", d.opts.Instrument)

	table := tablewriter.NewWriter(d.w)
	table.SetHeader([]string{"Bid Qty", "Bid $", "Ask $", "Ask Qty"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	for i := 0; i < d.opts.Rows; i++ {
		row := make([]string, 4)
		if i < len(depth.Bids) {
			row[0] = strconv.FormatInt(depth.Bids[i].Size, 10)
			row[1] = depth.Bids[i].Price.StringFixed(2)
		}
		if i < len(depth.Asks) {
			row[2] = depth.Asks[i].Price.StringFixed(2)
			row[3] = strconv.FormatInt(depth.Asks[i].Size, 10)
		}
		table.Append(row)
	}
	table.Render()

	if spread, ok := book.Spread(); ok {
		fmt.Fprintf(d.w, "SPREAD: %s\n", spread.StringFixed(2))
	} else {
		fmt.Fprintln(d.w, "SPREAD: N/A (one side is empty)")
	}

	fmt.Fprintln(d.w, "--- RECENT TRADES ---")
	for _, trade := range book.Trades() {
		if _, err := fmt.Fprintln(d.w, trade.String()); err != nil {
			return err
		}
	}
	return nil
}
