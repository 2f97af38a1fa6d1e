package protocol

import (
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Setup & Helpers --------------------------------------------------------

// sampleReport is a canceled limit order as the broker reports it.
const sampleReport = `<?xml version="1.0" encoding="utf-8"?>
<FIXML xmlns:xsd="http://www.w3.org/2001/XMLSchema" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance" xmlns="http://www.fixprotocol.org/FIXML-5-0-SP2">
  <ExecRpt OrdID="SVI-6214055216" ID="SVI-6214055216" Stat="4" Acct="3LB700351" AcctTyp="1" Side="2" Typ="2" Px="85.0" TmInForce="0" LeavesQty="1.0" TrdDt="2022-11-20T15:13:00.000-05:00" TxnTm="2022-11-20T15:13:00.000-05:00" Txt="Canceled by user">
    <Instrmt Sym="TSM" SecTyp="CS" Desc="TAIWAN SEMICONDUCTOR MFG CO" />
    <OrdQty Qty="1" />
    <Comm Comm="0.00" />
  </ExecRpt>
</FIXML>`

// reportDoc builds an execution-report document from an attribute map and a
// literal body, so tests can drop or corrupt individual fields.
func reportDoc(attrs map[string]string, body string) []byte {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString(`<FIXML xmlns="` + Namespace + `"><ExecRpt`)
	for _, k := range keys {
		fmt.Fprintf(&sb, " %s=%q", k, attrs[k])
	}
	sb.WriteString(">")
	sb.WriteString(body)
	sb.WriteString("</ExecRpt></FIXML>")
	return []byte(sb.String())
}

func baseAttrs() map[string]string {
	return map[string]string{
		"OrdID":     "SVI-1",
		"ID":        "CLIENT-1",
		"Stat":      "0",
		"Acct":      "12345",
		"Side":      "1",
		"Typ":       "2",
		"Px":        "13.5",
		"TmInForce": "0",
		"TxnTm":     "2022-11-20T15:13:00.000-05:00",
	}
}

const baseBody = `<Instrmt Sym="TSLA" SecTyp="CS"/><OrdQty Qty="1"/>`

func decode(t *testing.T, doc []byte) *ExecutionReport {
	t.Helper()
	report, err := DecodeExecutionReport(doc)
	require.NoError(t, err)
	return report
}

// --- Tests ------------------------------------------------------------------

func TestDecode_SampleReport(t *testing.T) {
	report := decode(t, []byte(sampleReport))

	orderID, err := report.OrderID()
	assert.NoError(t, err)
	assert.Equal(t, "SVI-6214055216", orderID)

	clientID, err := report.ClientOrderID()
	assert.NoError(t, err)
	assert.Equal(t, "SVI-6214055216", clientID)

	status, err := report.Status()
	assert.NoError(t, err)
	assert.Equal(t, StatusCanceled, status)

	account, err := report.Account()
	assert.NoError(t, err)
	assert.Equal(t, "3LB700351", account)
	assert.Equal(t, "1", report.AccountType())

	side, err := report.Side()
	assert.NoError(t, err)
	assert.Equal(t, Sell, side)

	orderType, err := report.OrderType()
	assert.NoError(t, err)
	assert.Equal(t, LimitOrder, orderType)

	tif, err := report.TimeInForce()
	assert.NoError(t, err)
	assert.Equal(t, Day, tif)

	px, err := report.Price()
	assert.NoError(t, err)
	assert.True(t, px.Equal(decimal.NewFromFloat(85.0)), "got %s", px)

	qty, err := report.Quantity()
	assert.NoError(t, err)
	assert.Equal(t, int64(1), qty)

	leaves, err := report.RemainingQuantity()
	assert.NoError(t, err)
	assert.Equal(t, int64(1), leaves)

	product, err := report.Product()
	assert.NoError(t, err)
	assert.Equal(t, Product{Symbol: "TSM", Description: "TAIWAN SEMICONDUCTOR MFG CO"}, product)

	ts, err := report.Timestamp()
	assert.NoError(t, err)
	want := time.Date(2022, 11, 20, 15, 13, 0, 0, time.FixedZone("", -5*3600))
	assert.True(t, ts.Equal(want), "got %s", ts)

	trdDt, err := report.TradeDate()
	assert.NoError(t, err)
	assert.True(t, trdDt.Equal(want), "got %s", trdDt)

	comm, err := report.Commission()
	assert.NoError(t, err)
	assert.True(t, comm.Valid)
	assert.True(t, comm.Decimal.IsZero())

	assert.Equal(t, "Canceled by user", report.Message())

	fill, err := report.Fill()
	assert.NoError(t, err)
	assert.Nil(t, fill, "report has no fill group")
}

func TestDecode_StatusCodes(t *testing.T) {
	codes := map[string]OrderStatus{
		"0": StatusNew,
		"1": StatusPartiallyFilled,
		"2": StatusFilled,
		"3": StatusDoneForDay,
		"4": StatusCanceled,
		"6": StatusPendingCancel,
		"7": StatusStopped,
		"8": StatusRejected,
		"9": StatusSuspended,
		"A": StatusPendingNew,
		"B": StatusCalculated,
		"C": StatusExpired,
		"D": StatusAcceptedForBidding,
		"E": StatusPendingReplace,
	}
	for code, want := range codes {
		attrs := baseAttrs()
		attrs["Stat"] = code
		report := decode(t, reportDoc(attrs, baseBody))

		status, err := report.Status()
		assert.NoError(t, err, "code %q", code)
		assert.Equal(t, want, status, "code %q", code)
	}
}

func TestDecode_UnknownCodes(t *testing.T) {
	for _, field := range []string{"Stat", "Side", "Typ", "TmInForce"} {
		attrs := baseAttrs()
		attrs[field] = "Z"
		report := decode(t, reportDoc(attrs, baseBody))

		var err error
		switch field {
		case "Stat":
			_, err = report.Status()
		case "Side":
			_, err = report.Side()
		case "Typ":
			_, err = report.OrderType()
		case "TmInForce":
			_, err = report.TimeInForce()
		}

		var unknown *UnknownCodeError
		require.ErrorAs(t, err, &unknown, "field %q", field)
		assert.Equal(t, field, unknown.Field)
		assert.Equal(t, "Z", unknown.Code)
	}
}

func TestDecode_MissingRequiredFields(t *testing.T) {
	checks := map[string]func(r *ExecutionReport) error{
		"OrdID":     func(r *ExecutionReport) error { _, err := r.OrderID(); return err },
		"ID":        func(r *ExecutionReport) error { _, err := r.ClientOrderID(); return err },
		"Stat":      func(r *ExecutionReport) error { _, err := r.Status(); return err },
		"Acct":      func(r *ExecutionReport) error { _, err := r.Account(); return err },
		"Side":      func(r *ExecutionReport) error { _, err := r.Side(); return err },
		"Typ":       func(r *ExecutionReport) error { _, err := r.OrderType(); return err },
		"TmInForce": func(r *ExecutionReport) error { _, err := r.TimeInForce(); return err },
		"Px":        func(r *ExecutionReport) error { _, err := r.Price(); return err },
		"TxnTm":     func(r *ExecutionReport) error { _, err := r.Timestamp(); return err },
	}
	for field, access := range checks {
		attrs := baseAttrs()
		delete(attrs, field)
		report := decode(t, reportDoc(attrs, baseBody))

		var missing *MissingFieldError
		require.ErrorAs(t, access(report), &missing, "field %q", field)
		assert.Equal(t, field, missing.Field)
	}
}

func TestDecode_MissingReportElement(t *testing.T) {
	_, err := DecodeExecutionReport([]byte(`<FIXML xmlns="` + Namespace + `"></FIXML>`))

	var missing *MissingFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "ExecRpt", missing.Field)
}

func TestDecode_MalformedDocument(t *testing.T) {
	_, err := DecodeExecutionReport([]byte(`<FIXML><ExecRpt</FIXML>`))
	assert.Error(t, err)
}

func TestDecode_QuantityReadsNestedOrdQty(t *testing.T) {
	// The quantity lives on the OrdQty element, not the report itself.
	attrs := baseAttrs()
	attrs["Qty"] = "999"
	report := decode(t, reportDoc(attrs, `<Instrmt Sym="TSLA" SecTyp="CS"/><OrdQty Qty="7"/>`))

	qty, err := report.Quantity()
	assert.NoError(t, err)
	assert.Equal(t, int64(7), qty)
}

func TestDecode_MissingOrdQty(t *testing.T) {
	report := decode(t, reportDoc(baseAttrs(), `<Instrmt Sym="TSLA" SecTyp="CS"/>`))

	var missing *MissingFieldError
	_, err := report.Quantity()
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "OrdQty", missing.Field)
}

func TestDecode_OptionalDefaults(t *testing.T) {
	report := decode(t, reportDoc(baseAttrs(), baseBody))

	last, err := report.LastPrice()
	assert.NoError(t, err)
	assert.False(t, last.Valid)

	avg, err := report.AveragePrice()
	assert.NoError(t, err)
	assert.False(t, avg.Valid)

	for _, q := range []func() (int64, error){
		report.LastQuantity,
		report.CumulativeQuantity,
		report.RemainingQuantity,
	} {
		n, err := q()
		assert.NoError(t, err)
		assert.Zero(t, n)
	}

	comm, err := report.Commission()
	assert.NoError(t, err)
	assert.False(t, comm.Valid)

	assert.Empty(t, report.Message())

	trdDt, err := report.TradeDate()
	assert.NoError(t, err)
	assert.True(t, trdDt.IsZero())
}

func TestDecode_PartialFill(t *testing.T) {
	attrs := baseAttrs()
	attrs["Stat"] = "1"
	attrs["LastPx"] = "13.45"
	attrs["AvgPx"] = "13.40"
	attrs["LastQty"] = "3"
	attrs["CumQty"] = "5"
	attrs["LeavesQty"] = "5"
	body := baseBody + `<FillsGrp FillQty="3" FillPx="13.45"/>`
	report := decode(t, reportDoc(attrs, body))

	fill, err := report.Fill()
	require.NoError(t, err)
	require.NotNil(t, fill)
	assert.Equal(t, int64(3), fill.Quantity)
	assert.True(t, fill.Price.Equal(decimal.NewFromFloat(13.45)))

	last, err := report.LastPrice()
	assert.NoError(t, err)
	assert.True(t, last.Valid)
	assert.True(t, last.Decimal.Equal(decimal.NewFromFloat(13.45)))

	cum, err := report.CumulativeQuantity()
	assert.NoError(t, err)
	assert.Equal(t, int64(5), cum)
}

func TestDecode_FillGroupRequiresBothFields(t *testing.T) {
	for _, tc := range []struct {
		body    string
		missing string
	}{
		{baseBody + `<FillsGrp FillPx="13.45"/>`, "FillQty"},
		{baseBody + `<FillsGrp FillQty="3"/>`, "FillPx"},
	} {
		report := decode(t, reportDoc(baseAttrs(), tc.body))

		var missing *MissingFieldError
		_, err := report.Fill()
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, tc.missing, missing.Field)
	}
}

func TestDecode_SecurityTypeMustBeCommonStock(t *testing.T) {
	report := decode(t, reportDoc(baseAttrs(), `<Instrmt Sym="TSLA" SecTyp="OPT"/><OrdQty Qty="1"/>`))

	var unknown *UnknownCodeError
	_, err := report.Product()
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "SecTyp", unknown.Field)
	assert.Equal(t, "OPT", unknown.Code)
}

func TestDecode_BadTimestamp(t *testing.T) {
	attrs := baseAttrs()
	attrs["TxnTm"] = "late afternoon"
	report := decode(t, reportDoc(attrs, baseBody))

	var bad *BadTimestampError
	_, err := report.Timestamp()
	require.ErrorAs(t, err, &bad)
	assert.Equal(t, "TxnTm", bad.Field)
	assert.Equal(t, "late afternoon", bad.Value)
}

func TestDecode_BadNumericValue(t *testing.T) {
	attrs := baseAttrs()
	attrs["Px"] = "a lot"
	report := decode(t, reportDoc(attrs, baseBody))

	var bad *BadValueError
	_, err := report.Price()
	require.ErrorAs(t, err, &bad)
	assert.Equal(t, "Px", bad.Field)
}

func TestDecode_NegativeQuantitiesRejected(t *testing.T) {
	report := decode(t, reportDoc(baseAttrs(), `<Instrmt Sym="TSLA" SecTyp="CS"/><OrdQty Qty="-3"/>`))

	var bad *BadValueError
	_, err := report.Quantity()
	require.ErrorAs(t, err, &bad)
	assert.Equal(t, "Qty", bad.Field)
	assert.Equal(t, "-3", bad.Value)

	attrs := baseAttrs()
	attrs["LeavesQty"] = "-1"
	report = decode(t, reportDoc(attrs, baseBody))

	_, err = report.RemainingQuantity()
	require.ErrorAs(t, err, &bad)
	assert.Equal(t, "LeavesQty", bad.Field)

	report = decode(t, reportDoc(baseAttrs(), baseBody+`<FillsGrp FillQty="-2" FillPx="13.45"/>`))

	_, err = report.Fill()
	require.ErrorAs(t, err, &bad)
	assert.Equal(t, "FillQty", bad.Field)
}

func TestDecode_BindsFirstRootChild(t *testing.T) {
	// One message per document is the norm; when a root carries extra
	// differently-named siblings, the first child is the report and the
	// rest are ignored, as the upstream handling does.
	doc := []byte(`<FIXML xmlns="` + Namespace + `">` +
		`<ExecRpt OrdID="SVI-FIRST" ID="C1" Stat="0" Acct="12345" Side="1" Typ="2" Px="13.5" TmInForce="0" TxnTm="2022-11-20T15:13:00.000-05:00"/>` +
		`<Batch Total="2"/>` +
		`</FIXML>`)
	report, err := DecodeExecutionReport(doc)
	require.NoError(t, err)

	orderID, err := report.OrderID()
	require.NoError(t, err)
	assert.Equal(t, "SVI-FIRST", orderID)
}

func TestDecode_AccessorsIdempotent(t *testing.T) {
	report := decode(t, []byte(sampleReport))

	first, err := report.Status()
	require.NoError(t, err)
	for n := 0; n < 3; n++ {
		again, err := report.Status()
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}

	px1, err := report.Price()
	require.NoError(t, err)
	px2, err := report.Price()
	require.NoError(t, err)
	assert.True(t, px1.Equal(px2))
}

func TestDecode_ErrorsAreValues(t *testing.T) {
	attrs := baseAttrs()
	delete(attrs, "OrdID")
	report := decode(t, reportDoc(attrs, baseBody))

	_, err := report.OrderID()
	assert.Error(t, err)
	assert.EqualError(t, err, `missing required field "OrdID"`)
}
