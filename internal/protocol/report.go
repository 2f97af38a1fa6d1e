package protocol

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"heimdall/internal/fixml"
)

var errNegativeQuantity = errors.New("quantity must be non-negative")

// CommonStock is the only security type the codec accepts on an
// instrument block.
const CommonStock = "CS"

// Product is the traded instrument attached to a report.
type Product struct {
	Symbol      string
	Description string
}

// FillInfo carries the fill group of a report, present only when the
// report describes an execution.
type FillInfo struct {
	Quantity int64
	Price    decimal.Decimal
}

// ExecutionReport is a read-only typed view over a parsed execution-report
// element. Accessors read the underlying tree on every call: same tree,
// same answer, and nothing is ever mutated. The report owns its tree; no
// other value aliases it.
type ExecutionReport struct {
	raw *fixml.AttributeNode
}

// DecodeExecutionReport parses an inbound FIXML document and binds the
// report element nested under the protocol root.
func DecodeExecutionReport(doc []byte) (*ExecutionReport, error) {
	root, err := fixml.Parse(doc)
	if err != nil {
		return nil, err
	}
	elems := root.Elements()
	if len(elems) == 0 {
		return nil, &MissingFieldError{Field: "ExecRpt"}
	}
	raw, _ := root.Child(elems[0])
	return &ExecutionReport{raw: raw}, nil
}

// require reads an attribute that the report cannot legally omit.
func (r *ExecutionReport) require(field string) (string, error) {
	v, ok := r.raw.Attr(field)
	if !ok {
		return "", &MissingFieldError{Field: field}
	}
	return v, nil
}

// quantity parses an integral wire quantity. The feed writes some counts
// with a trailing fraction (LeavesQty="1.0"), so parse as a decimal and
// take the integer part.
func quantity(field, v string) (int64, error) {
	d, err := decimal.NewFromString(v)
	if err != nil {
		return 0, &BadValueError{Field: field, Value: v, err: err}
	}
	if d.IsNegative() {
		return 0, &BadValueError{Field: field, Value: v, err: errNegativeQuantity}
	}
	return d.IntPart(), nil
}

func price(field, v string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Decimal{}, &BadValueError{Field: field, Value: v, err: err}
	}
	return d, nil
}

// OrderID is the order identifier assigned by the sell side.
func (r *ExecutionReport) OrderID() (string, error) {
	return r.require("OrdID")
}

// ClientOrderID is the order identifier assigned by the buy side.
func (r *ExecutionReport) ClientOrderID() (string, error) {
	return r.require("ID")
}

func (r *ExecutionReport) Status() (OrderStatus, error) {
	code, err := r.require("Stat")
	if err != nil {
		return "", err
	}
	return OrderStatusFromCode(code)
}

func (r *ExecutionReport) Account() (string, error) {
	return r.require("Acct")
}

// AccountType is the broker's account classification. Optional; empty when
// the report omits it.
func (r *ExecutionReport) AccountType() string {
	v, _ := r.raw.Attr("AcctTyp")
	return v
}

func (r *ExecutionReport) Side() (Side, error) {
	code, err := r.require("Side")
	if err != nil {
		return "", err
	}
	return SideFromCode(code)
}

func (r *ExecutionReport) OrderType() (OrderType, error) {
	code, err := r.require("Typ")
	if err != nil {
		return "", err
	}
	return OrderTypeFromCode(code)
}

func (r *ExecutionReport) TimeInForce() (TimeInForce, error) {
	code, err := r.require("TmInForce")
	if err != nil {
		return "", err
	}
	return TimeInForceFromCode(code)
}

// Price is the order's limit or stop price.
func (r *ExecutionReport) Price() (decimal.Decimal, error) {
	v, err := r.require("Px")
	if err != nil {
		return decimal.Decimal{}, err
	}
	return price("Px", v)
}

// LastPrice is the price of the most recent fill. Absent on reports with
// no executions; the returned NullDecimal is invalid in that case.
func (r *ExecutionReport) LastPrice() (decimal.NullDecimal, error) {
	return r.optionalPrice("LastPx")
}

// AveragePrice is the volume-weighted price across all fills so far.
// Absent on reports with no executions.
func (r *ExecutionReport) AveragePrice() (decimal.NullDecimal, error) {
	return r.optionalPrice("AvgPx")
}

func (r *ExecutionReport) optionalPrice(field string) (decimal.NullDecimal, error) {
	v, ok := r.raw.Attr(field)
	if !ok {
		return decimal.NullDecimal{}, nil
	}
	d, err := price(field, v)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}, nil
}

// Quantity is the ordered quantity, read from the OrdQty element's own Qty
// attribute.
func (r *ExecutionReport) Quantity() (int64, error) {
	ordQty, ok := r.raw.Child("OrdQty")
	if !ok {
		return 0, &MissingFieldError{Field: "OrdQty"}
	}
	v, ok := ordQty.Attr("Qty")
	if !ok {
		return 0, &MissingFieldError{Field: "Qty"}
	}
	return quantity("Qty", v)
}

// LastQuantity is the quantity of the most recent fill; zero when absent.
func (r *ExecutionReport) LastQuantity() (int64, error) {
	return r.optionalQuantity("LastQty")
}

// CumulativeQuantity is the total quantity filled so far; zero when absent.
func (r *ExecutionReport) CumulativeQuantity() (int64, error) {
	return r.optionalQuantity("CumQty")
}

// RemainingQuantity is the quantity still open on the book; zero when
// absent.
func (r *ExecutionReport) RemainingQuantity() (int64, error) {
	return r.optionalQuantity("LeavesQty")
}

func (r *ExecutionReport) optionalQuantity(field string) (int64, error) {
	v, ok := r.raw.Attr(field)
	if !ok {
		return 0, nil
	}
	return quantity(field, v)
}

// Product reads the Instrmt block. The security type must be common stock;
// anything else is outside the codec's closed set.
func (r *ExecutionReport) Product() (Product, error) {
	instrmt, ok := r.raw.Child("Instrmt")
	if !ok {
		return Product{}, &MissingFieldError{Field: "Instrmt"}
	}
	sym, ok := instrmt.Attr("Sym")
	if !ok {
		return Product{}, &MissingFieldError{Field: "Sym"}
	}
	secTyp, ok := instrmt.Attr("SecTyp")
	if !ok {
		return Product{}, &MissingFieldError{Field: "SecTyp"}
	}
	if secTyp != CommonStock {
		return Product{}, &UnknownCodeError{Field: "SecTyp", Code: secTyp}
	}
	desc, _ := instrmt.Attr("Desc")
	return Product{Symbol: sym, Description: desc}, nil
}

// Fill reads the optional fill group. A nil FillInfo with a nil error means
// the report carries no fills; when the group is present both its quantity
// and price are required.
func (r *ExecutionReport) Fill() (*FillInfo, error) {
	grp, ok := r.raw.Child("FillsGrp")
	if !ok {
		return nil, nil
	}
	qtyStr, ok := grp.Attr("FillQty")
	if !ok {
		return nil, &MissingFieldError{Field: "FillQty"}
	}
	qty, err := quantity("FillQty", qtyStr)
	if err != nil {
		return nil, err
	}
	pxStr, ok := grp.Attr("FillPx")
	if !ok {
		return nil, &MissingFieldError{Field: "FillPx"}
	}
	px, err := price("FillPx", pxStr)
	if err != nil {
		return nil, err
	}
	return &FillInfo{Quantity: qty, Price: px}, nil
}

// Commission is the commission block's amount; invalid when the report
// carries no Comm element.
func (r *ExecutionReport) Commission() (decimal.NullDecimal, error) {
	comm, ok := r.raw.Child("Comm")
	if !ok {
		return decimal.NullDecimal{}, nil
	}
	v, ok := comm.Attr("Comm")
	if !ok {
		return decimal.NullDecimal{}, &MissingFieldError{Field: "Comm"}
	}
	d, err := price("Comm", v)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}, nil
}

// Timestamp is the transaction time of the event the report describes.
func (r *ExecutionReport) Timestamp() (time.Time, error) {
	v, err := r.require("TxnTm")
	if err != nil {
		return time.Time{}, err
	}
	ts, perr := time.Parse(time.RFC3339, v)
	if perr != nil {
		return time.Time{}, &BadTimestampError{Field: "TxnTm", Value: v, err: perr}
	}
	return ts, nil
}

// TradeDate is the trading session the event belongs to. Optional; the
// zero time when absent.
func (r *ExecutionReport) TradeDate() (time.Time, error) {
	v, ok := r.raw.Attr("TrdDt")
	if !ok {
		return time.Time{}, nil
	}
	ts, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, &BadTimestampError{Field: "TrdDt", Value: v, err: err}
	}
	return ts, nil
}

// Message is the free-text annotation on the report; empty when absent.
func (r *ExecutionReport) Message() string {
	v, _ := r.raw.Attr("Txt")
	return v
}
