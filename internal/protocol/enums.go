// Package protocol implements the typed layer of the FIXML 5.0 SP2 codec:
// closed enumerations for the protocol-coded fields, the execution-report
// decoder and the outbound order builder. Wire codes follow the FIXML
// 5.0 SP2 schema.
package protocol

// Namespace is the FIXML 5.0 SP2 document namespace, declared on the root
// element of every message the codec emits.
const Namespace = "http://www.fixprotocol.org/FIXML-5-0-SP2"

// Root is the protocol root element wrapping every message.
const Root = "FIXML"

// OrderStatus is the current status of an order as reported by the
// sell-side. The wire codes are single characters; "5" (Replaced) was
// retired before 5.0 and is deliberately absent.
type OrderStatus string

const (
	StatusNew                OrderStatus = "0"
	StatusPartiallyFilled    OrderStatus = "1"
	StatusFilled             OrderStatus = "2"
	StatusDoneForDay         OrderStatus = "3"
	StatusCanceled           OrderStatus = "4"
	StatusPendingCancel      OrderStatus = "6"
	StatusStopped            OrderStatus = "7"
	StatusRejected           OrderStatus = "8"
	StatusSuspended          OrderStatus = "9"
	StatusPendingNew         OrderStatus = "A"
	StatusCalculated         OrderStatus = "B"
	StatusExpired            OrderStatus = "C"
	StatusAcceptedForBidding OrderStatus = "D"
	StatusPendingReplace     OrderStatus = "E"
)

var orderStatusNames = map[OrderStatus]string{
	StatusNew:                "new",
	StatusPartiallyFilled:    "partially filled",
	StatusFilled:             "filled",
	StatusDoneForDay:         "done for day",
	StatusCanceled:           "canceled",
	StatusPendingCancel:      "pending cancel",
	StatusStopped:            "stopped",
	StatusRejected:           "rejected",
	StatusSuspended:          "suspended",
	StatusPendingNew:         "pending new",
	StatusCalculated:         "calculated",
	StatusExpired:            "expired",
	StatusAcceptedForBidding: "accepted for bidding",
	StatusPendingReplace:     "pending replace",
}

// OrderStatusFromCode maps a Stat wire code onto its variant. Codes outside
// the closed set are an error, never a default.
func OrderStatusFromCode(code string) (OrderStatus, error) {
	s := OrderStatus(code)
	if _, ok := orderStatusNames[s]; !ok {
		return "", &UnknownCodeError{Field: "Stat", Code: code}
	}
	return s, nil
}

func (s OrderStatus) Code() string { return string(s) }

func (s OrderStatus) String() string {
	if name, ok := orderStatusNames[s]; ok {
		return name
	}
	return "unknown(" + string(s) + ")"
}

// Side is the order side.
type Side string

const (
	Buy       Side = "1"
	Sell      Side = "2"
	SellShort Side = "5"
)

var sideNames = map[Side]string{
	Buy:       "buy",
	Sell:      "sell",
	SellShort: "sell short",
}

func SideFromCode(code string) (Side, error) {
	s := Side(code)
	if _, ok := sideNames[s]; !ok {
		return "", &UnknownCodeError{Field: "Side", Code: code}
	}
	return s, nil
}

func (s Side) Code() string { return string(s) }

func (s Side) String() string {
	if name, ok := sideNames[s]; ok {
		return name
	}
	return "unknown(" + string(s) + ")"
}

// OrderType is the pricing discipline of an order.
type OrderType string

const (
	MarketOrder       OrderType = "1"
	LimitOrder        OrderType = "2"
	StopOrder         OrderType = "3"
	StopLimitOrder    OrderType = "4"
	StopLossOrder     OrderType = "5"
	TrailingStopOrder OrderType = "6"
)

var orderTypeNames = map[OrderType]string{
	MarketOrder:       "market",
	LimitOrder:        "limit",
	StopOrder:         "stop",
	StopLimitOrder:    "stop limit",
	StopLossOrder:     "stop loss",
	TrailingStopOrder: "trailing stop",
}

func OrderTypeFromCode(code string) (OrderType, error) {
	t := OrderType(code)
	if _, ok := orderTypeNames[t]; !ok {
		return "", &UnknownCodeError{Field: "Typ", Code: code}
	}
	return t, nil
}

func (t OrderType) Code() string { return string(t) }

func (t OrderType) String() string {
	if name, ok := orderTypeNames[t]; ok {
		return name
	}
	return "unknown(" + string(t) + ")"
}

// TimeInForce is how long an order stays active before expiring unfilled.
type TimeInForce string

const (
	Day TimeInForce = "0"
	// GoodTillCancel rests until explicitly canceled.
	GoodTillCancel TimeInForce = "1"
	// AtClose executes at the market close. Not valid with MarketOrder.
	AtClose TimeInForce = "7"
)

var timeInForceNames = map[TimeInForce]string{
	Day:            "day",
	GoodTillCancel: "good till cancel",
	AtClose:        "at close",
}

func TimeInForceFromCode(code string) (TimeInForce, error) {
	tif := TimeInForce(code)
	if _, ok := timeInForceNames[tif]; !ok {
		return "", &UnknownCodeError{Field: "TmInForce", Code: code}
	}
	return tif, nil
}

func (tif TimeInForce) Code() string { return string(tif) }

func (tif TimeInForce) String() string {
	if name, ok := timeInForceNames[tif]; ok {
		return name
	}
	return "unknown(" + string(tif) + ")"
}

// OrderEntryType selects which action an outbound message requests. It
// decides the message's root element name and which builder fields are
// required at serialization.
type OrderEntryType int

const (
	EntryNew OrderEntryType = iota
	EntryModify
	EntryCancel
)

// Element returns the message element name the entry type serializes under.
func (e OrderEntryType) Element() string {
	switch e {
	case EntryModify:
		return "OrdCxlRplcReq"
	case EntryCancel:
		return "OrdCxlReq"
	default:
		return "Order"
	}
}

func (e OrderEntryType) String() string {
	switch e {
	case EntryNew:
		return "new"
	case EntryModify:
		return "modify"
	case EntryCancel:
		return "cancel"
	}
	return "unknown"
}
