package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/nikolaydubina/fpdecimal"
	"github.com/rs/zerolog/log"

	"github.com/quantior/limitbook/config"
	"github.com/quantior/limitbook/pkg/core"
	"github.com/quantior/limitbook/pkg/logging"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logging.Setup(logging.Config{
		Level:  cfg.Log.Level,
		Pretty: cfg.Log.Format == "pretty",
		Output: os.Stderr,
	})

	book := core.NewOrderBook(core.WithLogger(logging.Component("book")))

	// Rest liquidity on both sides
	mustAdd(book, core.Sell, 101.0, 100)
	mustAdd(book, core.Sell, 102.0, 200)
	mustAdd(book, core.Buy, 99.0, 150)
	mustAdd(book, core.Buy, 98.0, 250)

	fmt.Println("Resting book:")
	printBook(book, cfg.Demo.DepthLevels)
	printBest(book)

	// Aggressive buy that crosses the best ask
	aggressorID := mustAdd(book, core.Buy, 102.0, 180)

	fmt.Printf("\nAfter aggressive buy (order %d):\n", aggressorID)
	printBook(book, cfg.Demo.DepthLevels)
	printBest(book)

	fmt.Println("\nTrades:")
	for _, t := range book.Trades() {
		fmt.Printf("  buy=%d sell=%d price=%s quantity=%d\n",
			t.BuyOrderID, t.SellOrderID, t.Price.String(), t.Quantity)
	}
}

func mustAdd(book *core.OrderBook, side core.Side, price float64, quantity int64) uint64 {
	id, err := book.AddLimitOrder(side, fpdecimal.FromFloat(price), quantity)
	if err != nil {
		log.Fatal().Err(err).Str("side", side.String()).Msg("failed to add order")
	}
	return id
}

func printBest(book *core.OrderBook) {
	if bid, ok := book.BestBid(); ok {
		fmt.Printf("Best bid: %s x %d\n", bid.Price.String(), bid.Quantity)
	} else {
		fmt.Println("Best bid: none")
	}

	if ask, ok := book.BestAsk(); ok {
		fmt.Printf("Best ask: %s x %d\n", ask.Price.String(), ask.Quantity)
	} else {
		fmt.Println("Best ask: none")
	}
}

func printBook(book *core.OrderBook, levels int) {
	cyan := color.New(color.FgCyan).SprintfFunc()
	red := color.New(color.FgRed).SprintfFunc()
	green := color.New(color.FgGreen).SprintfFunc()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.AlignRight)

	fmt.Fprintf(w, "%15s|%15s|%s\n", cyan("Price"), cyan("Quantity"), cyan("Side"))
	fmt.Fprintf(w, "%15s|%15s|%s\n", "---------------", "---------------", "----")

	// Asks are printed worst-to-best so the spread sits in the middle
	asks := book.Depth(core.Sell, levels)
	for i := len(asks) - 1; i >= 0; i-- {
		fmt.Fprintf(w, "%15s|%15d|%s\n", asks[i].Price.String(), asks[i].Quantity, red("ASK"))
	}

	for _, q := range book.Depth(core.Buy, levels) {
		fmt.Fprintf(w, "%15s|%15d|%s\n", q.Price.String(), q.Quantity, green("BID"))
	}

	w.Flush()
}
