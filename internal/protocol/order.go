package protocol

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"heimdall/internal/fixml"
)

// Order accumulates the fields of an outbound order request. Setters are
// plain assignments and chain; nothing is checked until Serialize runs the
// entry-type-conditional validation. A builder belongs to one logical
// sequence of calls; concurrent mutation needs one builder per caller.
type Order struct {
	entry    OrderEntryType
	account  string
	symbol   string
	orderID  string
	clientID string
	pricing  Pricing
	side     Side
	quantity int64
	hasQty   bool
	tif      TimeInForce
}

// NewOrder starts a builder for the given entry type. The entry type is
// fixed for the builder's lifetime; time-in-force defaults to Day.
func NewOrder(entry OrderEntryType) *Order {
	return &Order{entry: entry, tif: Day}
}

func (o *Order) SetAccount(account string) *Order {
	o.account = account
	return o
}

func (o *Order) SetSymbol(symbol string) *Order {
	o.symbol = symbol
	return o
}

// SetOrderID records the sell-side identifier of the order a modify or
// cancel request targets.
func (o *Order) SetOrderID(orderID string) *Order {
	o.orderID = orderID
	return o
}

// SetClientID fixes the buy-side order identifier. A new order with no
// client ID gets a generated one at serialization.
func (o *Order) SetClientID(clientID string) *Order {
	o.clientID = clientID
	return o
}

func (o *Order) SetPricing(pricing Pricing) *Order {
	o.pricing = pricing
	return o
}

func (o *Order) SetSide(side Side) *Order {
	o.side = side
	return o
}

func (o *Order) SetQuantity(quantity int64) *Order {
	o.quantity = quantity
	o.hasQty = true
	return o
}

func (o *Order) SetTimeInForce(tif TimeInForce) *Order {
	o.tif = tif
	return o
}

// validate enforces the per-entry-type required fields. Cancels only need
// routing fields and always go out as day orders; new orders need the full
// pricing picture; modifies additionally need the target order.
func (o *Order) validate() error {
	switch o.entry {
	case EntryCancel:
		if o.account == "" {
			return &ValidationError{Field: "account", Entry: o.entry}
		}
		if o.orderID == "" {
			return &ValidationError{Field: "order id", Entry: o.entry}
		}
		o.tif = Day
		return nil
	case EntryNew, EntryModify:
		if o.account == "" {
			return &ValidationError{Field: "account", Entry: o.entry}
		}
		if o.symbol == "" {
			return &ValidationError{Field: "symbol", Entry: o.entry}
		}
		if o.pricing == nil {
			return &ValidationError{Field: "pricing", Entry: o.entry}
		}
		if o.side == "" {
			return &ValidationError{Field: "side", Entry: o.entry}
		}
		if o.tif == "" {
			return &ValidationError{Field: "time in force", Entry: o.entry}
		}
		if o.entry == EntryModify && o.orderID == "" {
			return &ValidationError{Field: "order id", Entry: o.entry}
		}
		return nil
	}
	return fmt.Errorf("unknown entry type %d", int(o.entry))
}

// Serialize validates the builder and renders the request as a FIXML
// document. The builder remains intact and inspectable afterwards.
func (o *Order) Serialize() ([]byte, error) {
	if err := o.validate(); err != nil {
		return nil, err
	}

	node := fixml.NewNode()
	node.SetAttr("Acct", o.account)
	node.SetAttr("TmInForce", o.tif.Code())
	if o.side != "" {
		node.SetAttr("Side", o.side.Code())
	}
	if o.orderID != "" {
		node.SetAttr("OrigID", o.orderID)
	}
	if o.entry == EntryNew && o.clientID == "" {
		o.clientID = uuid.New().String()
	}
	if o.clientID != "" {
		node.SetAttr("ID", o.clientID)
	}
	// Pricing attributes merge into the order element itself, they are not
	// a nested block.
	if o.pricing != nil {
		o.pricing.contribute(node)
	}
	if o.symbol != "" {
		instrmt := fixml.NewNode()
		instrmt.SetAttr("Sym", o.symbol)
		instrmt.SetAttr("SecTyp", CommonStock)
		node.SetChild("Instrmt", instrmt)
	}
	if o.hasQty {
		ordQty := fixml.NewNode()
		ordQty.SetAttr("Qty", strconv.FormatInt(o.quantity, 10))
		node.SetChild("OrdQty", ordQty)
	}

	return node.Render(o.entry.Element(), Root, Namespace)
}

// EntryType reports the action the builder was created for.
func (o *Order) EntryType() OrderEntryType { return o.entry }
