package main

import (
	"flag"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"heimdall/internal/protocol"
)

func main() {
	// CLI Parameter Parsing
	file := flag.String("file", "", "Path to a FIXML execution report (default: read stdin)")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	var (
		doc []byte
		err error
	)
	if *file == "" {
		doc, err = io.ReadAll(os.Stdin)
	} else {
		doc, err = os.ReadFile(*file)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("unable to read document")
	}

	report, err := protocol.DecodeExecutionReport(doc)
	if err != nil {
		log.Fatal().Err(err).Msg("unable to decode report")
	}

	orderID := mustString(report.OrderID())
	clientID := mustString(report.ClientOrderID())
	status, err := report.Status()
	fatal(err)
	account := mustString(report.Account())
	side, err := report.Side()
	fatal(err)
	orderType, err := report.OrderType()
	fatal(err)
	tif, err := report.TimeInForce()
	fatal(err)
	px, err := report.Price()
	fatal(err)
	qty, err := report.Quantity()
	fatal(err)
	leaves, err := report.RemainingQuantity()
	fatal(err)
	product, err := report.Product()
	fatal(err)
	ts, err := report.Timestamp()
	fatal(err)

	event := log.Info().
		Str("order_id", orderID).
		Str("client_order_id", clientID).
		Str("account", account).
		Stringer("status", status).
		Stringer("side", side).
		Stringer("type", orderType).
		Stringer("time_in_force", tif).
		Str("price", px.String()).
		Int64("quantity", qty).
		Int64("remaining", leaves).
		Str("symbol", product.Symbol).
		Time("transaction_time", ts)

	if last, err := report.LastPrice(); err == nil && last.Valid {
		event = event.Str("last_price", last.Decimal.String())
	}
	if avg, err := report.AveragePrice(); err == nil && avg.Valid {
		event = event.Str("average_price", avg.Decimal.String())
	}
	if fill, err := report.Fill(); err == nil && fill != nil {
		event = event.
			Int64("fill_quantity", fill.Quantity).
			Str("fill_price", fill.Price.String())
	}
	if msg := report.Message(); msg != "" {
		event = event.Str("message", msg)
	}
	event.Msg("execution report")
}

func mustString(v string, err error) string {
	fatal(err)
	return v
}

func fatal(err error) {
	if err != nil {
		log.Fatal().Err(err).Msg("incomplete report")
	}
}
