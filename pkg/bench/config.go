package bench

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds all parameters for the synthetic throughput benchmark
type Config struct {
	// Number of randomized limit orders to submit
	NumOrders int
	// PRNG seed, fixed for reproducible runs
	Seed int64

	// Price generation: uniform in [BasePrice-PriceBand, BasePrice+PriceBand]
	BasePrice float64
	PriceBand float64
	// Quantity generation: uniform integer in [1, MaxQuantity]
	MaxQuantity int64

	// Orders per second; zero means unpaced
	RateLimit int

	// File that result lines are appended to; empty disables the file
	OutputPath string
}

// LoadConfig loads benchmark configuration from environment variables
func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetDefault("BENCH_NUM_ORDERS", 100_000)
	v.SetDefault("BENCH_SEED", 42)
	v.SetDefault("BENCH_BASE_PRICE", 100.0)
	v.SetDefault("BENCH_PRICE_BAND", 0.5)
	v.SetDefault("BENCH_MAX_QUANTITY", 100)
	v.SetDefault("BENCH_RATE_LIMIT", 0)
	v.SetDefault("BENCH_OUTPUT_PATH", "benchmark_results.txt")

	v.AutomaticEnv()

	cfg := &Config{
		NumOrders:   v.GetInt("BENCH_NUM_ORDERS"),
		Seed:        v.GetInt64("BENCH_SEED"),
		BasePrice:   v.GetFloat64("BENCH_BASE_PRICE"),
		PriceBand:   v.GetFloat64("BENCH_PRICE_BAND"),
		MaxQuantity: v.GetInt64("BENCH_MAX_QUANTITY"),
		RateLimit:   v.GetInt("BENCH_RATE_LIMIT"),
		OutputPath:  v.GetString("BENCH_OUTPUT_PATH"),
	}

	if cfg.NumOrders <= 0 {
		return nil, fmt.Errorf("BENCH_NUM_ORDERS must be positive, got %d", cfg.NumOrders)
	}
	if cfg.BasePrice-cfg.PriceBand <= 0 {
		return nil, fmt.Errorf("price band %f around base price %f reaches zero", cfg.PriceBand, cfg.BasePrice)
	}
	if cfg.MaxQuantity <= 0 {
		return nil, fmt.Errorf("BENCH_MAX_QUANTITY must be positive, got %d", cfg.MaxQuantity)
	}

	return cfg, nil
}
