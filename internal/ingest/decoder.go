package ingest

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/agroplan/plan-service/internal/domain/model"
)

// Decoder turns loose rows into model structs using its field maps. A row
// or line missing a required field, or carrying a value that cannot be
// coerced, is dropped and counted rather than failing the batch: one bad
// record must not abort a whole evaluation. That dropped rows simply never
// match anything is documented engine behavior, not an accident.
type Decoder struct {
	inventory InventoryFieldMap
	orders    OrderFieldMap
	invoices  InvoiceFieldMap
}

// NewDecoder creates a Decoder with the default field maps.
func NewDecoder() Decoder {
	return Decoder{
		inventory: defaultInventoryFieldMap(),
		orders:    defaultOrderFieldMap(),
		invoices:  defaultInvoiceFieldMap(),
	}
}

// NewDecoderWithOverrides creates a Decoder whose override keys are tried
// before the default candidates.
func NewDecoderWithOverrides(o FieldOverrides) Decoder {
	d := NewDecoder()
	d.inventory = o.Inventory.merge(d.inventory)
	d.orders = o.Orders.merge(d.orders)
	d.invoices = o.Invoices.merge(d.invoices)
	return d
}

// InventoryRows decodes inventory rows. Product id and quantity are
// required; unit, when present, must parse into the closed unit set.
// The second return is the number of dropped rows.
func (d Decoder) InventoryRows(rows []map[string]any) ([]model.InventoryRow, int) {
	out := make([]model.InventoryRow, 0, len(rows))
	dropped := 0

	for _, raw := range rows {
		productID, ok := stringField(raw, d.inventory.ProductID)
		if !ok {
			dropped++
			continue
		}
		qty, ok := floatField(raw, d.inventory.Quantity)
		if !ok {
			dropped++
			continue
		}
		unit, ok := unitField(raw, d.inventory.Unit)
		if !ok {
			dropped++
			continue
		}

		row := model.InventoryRow{
			ProductID: productID,
			Quantity:  qty,
			Unit:      unit,
		}
		row.ID, _ = stringField(raw, d.inventory.ID)
		row.Location, _ = stringField(raw, d.inventory.Location)
		row.Lot, _ = stringField(raw, d.inventory.Lot)
		row.ReceivedAt = timeField(raw, d.inventory.ReceivedAt)

		out = append(out, row)
	}
	return out, dropped
}

// Orders decodes orders with their embedded lines. The order itself has no
// required fields: a missing status leaves the order counting as open, the
// same way upstream treats statuses outside its cancelled/closed set. Lines
// require a product id and a remaining quantity; bad lines are dropped and
// counted.
func (d Decoder) Orders(rows []map[string]any) ([]model.Order, int) {
	out := make([]model.Order, 0, len(rows))
	dropped := 0

	for _, raw := range rows {
		var o model.Order
		o.ID, _ = stringField(raw, d.orders.ID)
		o.Vendor, _ = stringField(raw, d.orders.Vendor)
		if status, ok := stringField(raw, d.orders.Status); ok {
			o.Status = model.OrderStatus(strings.ToLower(strings.TrimSpace(status)))
		}

		for _, rawLine := range listField(raw, d.orders.Lines) {
			productID, ok := stringField(rawLine, d.orders.LineProduct)
			if !ok {
				dropped++
				continue
			}
			remaining, ok := floatField(rawLine, d.orders.LineRemaining)
			if !ok {
				dropped++
				continue
			}
			unit, ok := unitField(rawLine, d.orders.LineUnit)
			if !ok {
				dropped++
				continue
			}
			o.Lines = append(o.Lines, model.OrderLine{
				ProductID:    productID,
				RemainingQty: remaining,
				Unit:         unit,
			})
		}

		out = append(out, o)
	}
	return out, dropped
}

// Invoices decodes invoices with their embedded lines. Lines require a
// product id and a money line total; bad lines are dropped and counted.
func (d Decoder) Invoices(rows []map[string]any) ([]model.Invoice, int) {
	out := make([]model.Invoice, 0, len(rows))
	dropped := 0

	for _, raw := range rows {
		var inv model.Invoice
		inv.ID, _ = stringField(raw, d.invoices.ID)
		inv.Vendor, _ = stringField(raw, d.invoices.Vendor)
		inv.Date = timeField(raw, d.invoices.Date)

		for _, rawLine := range listField(raw, d.invoices.Lines) {
			productID, ok := stringField(rawLine, d.invoices.LineProduct)
			if !ok {
				dropped++
				continue
			}
			total, ok := decimalField(rawLine, d.invoices.LineTotal)
			if !ok {
				dropped++
				continue
			}
			unit, ok := unitField(rawLine, d.invoices.LineUnit)
			if !ok {
				dropped++
				continue
			}

			line := model.InvoiceLine{
				ProductID: productID,
				Unit:      unit,
				LineTotal: total,
			}
			line.Description, _ = stringField(rawLine, d.invoices.LineDesc)
			line.Quantity, _ = floatField(rawLine, d.invoices.LineQty)

			inv.Lines = append(inv.Lines, line)
		}

		out = append(out, inv)
	}
	return out, dropped
}

// stringField reads the first present candidate key as a non-empty string.
// Numeric identifiers are rendered to strings, since some sources send ids
// as JSON numbers.
func stringField(row map[string]any, keys []string) (string, bool) {
	for _, key := range keys {
		v, ok := row[key]
		if !ok || v == nil {
			continue
		}
		switch s := v.(type) {
		case string:
			if trimmed := strings.TrimSpace(s); trimmed != "" {
				return trimmed, true
			}
		case float64:
			return strconv.FormatFloat(s, 'f', -1, 64), true
		case int:
			return strconv.Itoa(s), true
		case int64:
			return strconv.FormatInt(s, 10), true
		case json.Number:
			return s.String(), true
		}
	}
	return "", false
}

// floatField reads the first present candidate key as a float64.
func floatField(row map[string]any, keys []string) (float64, bool) {
	for _, key := range keys {
		v, ok := row[key]
		if !ok || v == nil {
			continue
		}
		switch n := v.(type) {
		case float64:
			return n, true
		case int:
			return float64(n), true
		case int64:
			return float64(n), true
		case json.Number:
			if f, err := n.Float64(); err == nil {
				return f, true
			}
		case string:
			if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
				return f, true
			}
		}
	}
	return 0, false
}

// decimalField reads the first present candidate key as an exact decimal.
// Strings are preferred over floats by upstream exporters for money, and
// both are accepted here.
func decimalField(row map[string]any, keys []string) (decimal.Decimal, bool) {
	for _, key := range keys {
		v, ok := row[key]
		if !ok || v == nil {
			continue
		}
		switch n := v.(type) {
		case float64:
			return decimal.NewFromFloat(n), true
		case int:
			return decimal.NewFromInt(int64(n)), true
		case int64:
			return decimal.NewFromInt(n), true
		case json.Number:
			if d, err := decimal.NewFromString(n.String()); err == nil {
				return d, true
			}
		case string:
			if d, err := decimal.NewFromString(strings.TrimSpace(n)); err == nil {
				return d, true
			}
		}
	}
	return decimal.Decimal{}, false
}

// unitField reads an optional unit. Absent means "already in the planned
// unit" and is fine; a present label that does not parse into the closed
// unit set makes the row malformed, because guessing a unit would corrupt
// every quantity derived from it.
func unitField(row map[string]any, keys []string) (model.Unit, bool) {
	for _, key := range keys {
		v, ok := row[key]
		if !ok || v == nil {
			continue
		}
		s, isString := v.(string)
		if !isString {
			return "", false
		}
		if strings.TrimSpace(s) == "" {
			return "", true
		}
		unit, err := model.ParseUnit(s)
		if err != nil {
			return "", false
		}
		return unit, true
	}
	return "", true
}

// timeField reads an optional timestamp in RFC 3339 or date-only form.
func timeField(row map[string]any, keys []string) *time.Time {
	s, ok := stringField(row, keys)
	if !ok {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// listField reads the first present candidate key as a list of loose rows.
func listField(row map[string]any, keys []string) []map[string]any {
	for _, key := range keys {
		v, ok := row[key]
		if !ok || v == nil {
			continue
		}
		items, isList := v.([]any)
		if !isList {
			continue
		}
		out := make([]map[string]any, 0, len(items))
		for _, item := range items {
			if m, isMap := item.(map[string]any); isMap {
				out = append(out, m)
			}
		}
		return out
	}
	return nil
}
