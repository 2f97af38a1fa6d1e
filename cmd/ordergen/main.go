package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"heimdall/internal/protocol"
)

func main() {
	// CLI Parameter Parsing
	entryStr := flag.String("entry", "new", "Entry type: ['new', 'modify', 'cancel']")
	account := flag.String("account", "", "Account number (compulsory)")

	// Order Parameters
	symbol := flag.String("symbol", "", "Ticker symbol")
	sideStr := flag.String("side", "buy", "Order side: ['buy', 'sell', 'short']")
	qty := flag.Int64("qty", 0, "Order quantity")
	limit := flag.Float64("limit", 0, "Limit price (0 for none)")
	stop := flag.Float64("stop", 0, "Stop price (0 for none)")
	tifStr := flag.String("tif", "day", "Time in force: ['day', 'gtc', 'atc']")

	// Modify/Cancel Parameters
	orderID := flag.String("order-id", "", "Order ID to modify or cancel")
	clientID := flag.String("client-id", "", "Client order ID (generated when omitted)")

	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if *account == "" {
		fmt.Println("Error: -account is compulsory.")
		flag.Usage()
		os.Exit(1)
	}

	var entry protocol.OrderEntryType
	switch strings.ToLower(*entryStr) {
	case "new":
		entry = protocol.EntryNew
	case "modify":
		entry = protocol.EntryModify
	case "cancel":
		entry = protocol.EntryCancel
	default:
		log.Fatal().Str("entry", *entryStr).Msg("unknown entry type")
	}

	var side protocol.Side
	switch strings.ToLower(*sideStr) {
	case "buy":
		side = protocol.Buy
	case "sell":
		side = protocol.Sell
	case "short":
		side = protocol.SellShort
	default:
		log.Fatal().Str("side", *sideStr).Msg("unknown side")
	}

	var tif protocol.TimeInForce
	switch strings.ToLower(*tifStr) {
	case "day":
		tif = protocol.Day
	case "gtc":
		tif = protocol.GoodTillCancel
	case "atc":
		tif = protocol.AtClose
	default:
		log.Fatal().Str("tif", *tifStr).Msg("unknown time in force")
	}

	var pricing protocol.Pricing
	switch {
	case *limit > 0 && *stop > 0:
		pricing = protocol.StopLimit(*limit, *stop)
	case *limit > 0:
		pricing = protocol.Limit(*limit)
	case *stop > 0:
		pricing = protocol.Stop(*stop)
	default:
		pricing = protocol.Market()
	}

	order := protocol.NewOrder(entry).
		SetAccount(*account).
		SetTimeInForce(tif)
	if entry != protocol.EntryCancel {
		order.SetSide(side).SetPricing(pricing)
	}
	if *symbol != "" {
		order.SetSymbol(*symbol)
	}
	if *qty > 0 {
		order.SetQuantity(*qty)
	}
	if *orderID != "" {
		order.SetOrderID(*orderID)
	}
	if *clientID != "" {
		order.SetClientID(*clientID)
	}

	doc, err := order.Serialize()
	if err != nil {
		log.Fatal().Err(err).Msg("unable to serialize order")
	}
	fmt.Println(string(doc))
}
