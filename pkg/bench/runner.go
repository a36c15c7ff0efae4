package bench

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	hdrhistogram "github.com/HdrHistogram/hdrhistogram-go"
	"github.com/nikolaydubina/fpdecimal"
	"golang.org/x/time/rate"

	"github.com/quantior/limitbook/pkg/core"
	"github.com/quantior/limitbook/pkg/logging"
)

// Result summarizes one benchmark run
type Result struct {
	Orders          int
	Trades          int
	RestingOrders   int
	Elapsed         time.Duration
	OrdersPerSecond float64
	// Latency holds per-order submission latency in nanoseconds
	Latency *hdrhistogram.Histogram
}

// Run submits cfg.NumOrders randomized limit orders to a fresh order book
// and measures wall-clock throughput together with per-order latency
// percentiles. Side is uniform, price uniform in a band around the base
// price, quantity uniform in [1, MaxQuantity]. The book is in-process, so
// the numbers reflect the engine alone.
func Run(ctx context.Context, cfg *Config) (*Result, error) {
	logger := logging.Component("bench")

	book := core.NewOrderBook()
	rng := rand.New(rand.NewSource(cfg.Seed))

	// Per-order latency from 1ns up to 1s, 3 significant figures
	hist := hdrhistogram.New(1, time.Second.Nanoseconds(), 3)

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateLimit)
	}

	logger.Info().
		Int("num_orders", cfg.NumOrders).
		Int64("seed", cfg.Seed).
		Float64("base_price", cfg.BasePrice).
		Float64("price_band", cfg.PriceBand).
		Msg("starting benchmark")

	start := time.Now()

	for i := 0; i < cfg.NumOrders; i++ {
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return nil, fmt.Errorf("benchmark interrupted: %w", err)
			}
		}

		side := core.Buy
		if rng.Float64() < 0.5 {
			side = core.Sell
		}

		price := fpdecimal.FromFloat(cfg.BasePrice + (rng.Float64()*2-1)*cfg.PriceBand)
		quantity := 1 + rng.Int63n(cfg.MaxQuantity)

		submitted := time.Now()
		if _, err := book.AddLimitOrder(side, price, quantity); err != nil {
			return nil, fmt.Errorf("order %d rejected: %w", i, err)
		}
		recordLatency(hist, time.Since(submitted).Nanoseconds())
	}

	elapsed := time.Since(start)

	result := &Result{
		Orders:          cfg.NumOrders,
		Trades:          len(book.Trades()),
		RestingOrders:   book.OpenOrders(),
		Elapsed:         elapsed,
		OrdersPerSecond: float64(cfg.NumOrders) / elapsed.Seconds(),
		Latency:         hist,
	}

	logger.Info().
		Dur("elapsed", elapsed).
		Float64("orders_per_second", result.OrdersPerSecond).
		Int("trades", result.Trades).
		Int("resting_orders", result.RestingOrders).
		Int64("latency_p50_ns", hist.ValueAtQuantile(50)).
		Int64("latency_p99_ns", hist.ValueAtQuantile(99)).
		Int64("latency_max_ns", hist.Max()).
		Msg("benchmark finished")

	return result, nil
}

// recordLatency stores a latency sample, clamping values above the histogram's
// trackable range to its highest trackable value so outliers are never lost
func recordLatency(hist *hdrhistogram.Histogram, ns int64) {
	if err := hist.RecordValue(ns); err != nil {
		_ = hist.RecordValue(hist.HighestTrackableValue())
	}
}

// AppendToFile appends a one-line summary of the result to path
func (r *Result) AppendToFile(path string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open results file: %w", err)
	}
	defer f.Close()

	_, err = fmt.Fprintf(f, "[%s] num_orders=%d, elapsed=%.4fs, throughput=%.0f orders/s, trades=%d, p50=%dns, p99=%dns\n",
		time.Now().Format(time.RFC3339),
		r.Orders,
		r.Elapsed.Seconds(),
		r.OrdersPerSecond,
		r.Trades,
		r.Latency.ValueAtQuantile(50),
		r.Latency.ValueAtQuantile(99),
	)
	if err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}

	return nil
}
