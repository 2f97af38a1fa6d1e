package protocol

import (
	"github.com/shopspring/decimal"

	"heimdall/internal/fixml"
)

// Pricing is the closed set of pricing variants an outbound order can
// carry. Each variant contributes its own wire attributes (Typ, Px, StopPx)
// directly onto the order element; the unexported method keeps the set
// closed to this package.
type Pricing interface {
	// Type is the order type the variant serializes as.
	Type() OrderType

	contribute(node *fixml.AttributeNode)
}

// Prices are rounded to 2 decimal places when a variant is constructed;
// that is the only validation pricing performs.
const priceScale = 2

// MarketPricing executes immediately at the prevailing price.
type MarketPricing struct{}

func Market() MarketPricing { return MarketPricing{} }

func (MarketPricing) Type() OrderType { return MarketOrder }

func (p MarketPricing) contribute(node *fixml.AttributeNode) {
	node.SetAttr("Typ", p.Type().Code())
}

// LimitPricing executes at the limit price or better.
type LimitPricing struct {
	px decimal.Decimal
}

func Limit(limitPrice float64) LimitPricing {
	return LimitPricing{px: decimal.NewFromFloat(limitPrice).Round(priceScale)}
}

func (LimitPricing) Type() OrderType { return LimitOrder }

func (p LimitPricing) Price() decimal.Decimal { return p.px }

func (p LimitPricing) contribute(node *fixml.AttributeNode) {
	node.SetAttr("Typ", p.Type().Code())
	node.SetAttr("Px", p.px.String())
}

// StopPricing becomes a market order once the stop price trades.
type StopPricing struct {
	stopPx decimal.Decimal
}

func Stop(stopPrice float64) StopPricing {
	return StopPricing{stopPx: decimal.NewFromFloat(stopPrice).Round(priceScale)}
}

func (StopPricing) Type() OrderType { return StopOrder }

func (p StopPricing) StopPrice() decimal.Decimal { return p.stopPx }

func (p StopPricing) contribute(node *fixml.AttributeNode) {
	node.SetAttr("Typ", p.Type().Code())
	node.SetAttr("StopPx", p.stopPx.String())
}

// StopLimitPricing becomes a limit order at the limit price once the stop
// price trades.
type StopLimitPricing struct {
	px     decimal.Decimal
	stopPx decimal.Decimal
}

func StopLimit(limitPrice, stopPrice float64) StopLimitPricing {
	return StopLimitPricing{
		px:     decimal.NewFromFloat(limitPrice).Round(priceScale),
		stopPx: decimal.NewFromFloat(stopPrice).Round(priceScale),
	}
}

func (StopLimitPricing) Type() OrderType { return StopLimitOrder }

func (p StopLimitPricing) Price() decimal.Decimal { return p.px }

func (p StopLimitPricing) StopPrice() decimal.Decimal { return p.stopPx }

func (p StopLimitPricing) contribute(node *fixml.AttributeNode) {
	node.SetAttr("Typ", p.Type().Code())
	node.SetAttr("Px", p.px.String())
	node.SetAttr("StopPx", p.stopPx.String())
}
