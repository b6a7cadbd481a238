package sim

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/quagmt/udecimal"
	"github.com/stretchr/testify/suite"

	match "github.com/0x5487/clob-simulator"
	"github.com/0x5487/clob-simulator/internal/generator"
)

type scriptedSource struct {
	reqs []generator.Request
	i    int
}

func (s *scriptedSource) Next() generator.Request {
	req := s.reqs[s.i%len(s.reqs)]
	s.i++
	return req
}

type SimulatorTestSuite struct {
	suite.Suite
	book   *match.OrderBook
	logger *slog.Logger
}

func TestSimulatorTestSuite(t *testing.T) {
	suite.Run(t, new(SimulatorTestSuite))
}

func (suite *SimulatorTestSuite) SetupTest() {
	suite.book = match.NewOrderBook(nil)
	suite.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (suite *SimulatorTestSuite) TestMaxOrders() {
	source := &scriptedSource{reqs: []generator.Request{
		{Side: match.Sell, Price: udecimal.MustParse("101"), Size: 10},
		{Side: match.Buy, Price: udecimal.MustParse("101"), Size: 4},
		{Side: match.Buy, Price: udecimal.MustParse("0"), Size: 4},
	}}

	renders := 0
	renderer := RendererFunc(func() error {
		renders++
		return nil
	})

	s := New(suite.book, source, renderer, Options{MaxOrders: 3, Logger: suite.logger})
	summary, err := s.Run(context.Background())
	suite.NoError(err)

	suite.Equal(3, summary.Orders)
	suite.Equal(1, summary.Rejected)
	suite.Equal(1, summary.Trades)
	suite.Equal(int64(4), summary.Volume)
	suite.Equal(3, renders)

	asks := suite.book.AskLevels()
	suite.Len(asks, 1)
	suite.Equal(int64(6), asks[0].Size)
}

func (suite *SimulatorTestSuite) TestCancellationStopsRun() {
	source := generator.New(generator.Options{MidPrice: 100, PriceStdDev: 1.5, MaxSize: 100, Seed: 1})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	s := New(suite.book, source, nil, Options{Interval: time.Millisecond, Logger: suite.logger})
	summary, err := s.Run(ctx)
	suite.NoError(err)
	suite.Greater(summary.Orders, 0)
	suite.Greater(summary.Elapsed, time.Duration(0))
}

func (suite *SimulatorTestSuite) TestAlreadyCancelled() {
	source := &scriptedSource{reqs: []generator.Request{{Side: match.Buy, Price: udecimal.MustParse("1"), Size: 1}}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary, err := New(suite.book, source, nil, Options{Logger: suite.logger}).Run(ctx)
	suite.NoError(err)
	suite.Equal(0, summary.Orders)
}

func (suite *SimulatorTestSuite) TestRenderErrorStopsRun() {
	source := &scriptedSource{reqs: []generator.Request{{Side: match.Buy, Price: udecimal.MustParse("1"), Size: 1}}}
	boom := errors.New("boom")

	s := New(suite.book, source, RendererFunc(func() error { return boom }), Options{MaxOrders: 5, Logger: suite.logger})
	summary, err := s.Run(context.Background())
	suite.ErrorIs(err, boom)
	suite.Equal(1, summary.Orders)
}
