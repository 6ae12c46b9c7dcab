// Package ingest decodes loosely-typed upstream rows into typed engine
// inputs. Upstream systems disagree on field names (productId, product_id,
// product), so every field is read through an ordered candidate-key list.
// This is the single translation boundary: past this package, all planning
// code works on model types only.
package ingest

// InventoryFieldMap names the candidate keys for each inventory row field.
type InventoryFieldMap struct {
	ID         []string `json:"id,omitempty"`
	ProductID  []string `json:"product_id,omitempty"`
	Quantity   []string `json:"quantity,omitempty"`
	Unit       []string `json:"unit,omitempty"`
	Location   []string `json:"location,omitempty"`
	Lot        []string `json:"lot,omitempty"`
	ReceivedAt []string `json:"received_at,omitempty"`
}

// OrderFieldMap names the candidate keys for order and order-line fields.
type OrderFieldMap struct {
	ID            []string `json:"id,omitempty"`
	Status        []string `json:"status,omitempty"`
	Vendor        []string `json:"vendor,omitempty"`
	Lines         []string `json:"lines,omitempty"`
	LineProduct   []string `json:"line_product,omitempty"`
	LineRemaining []string `json:"line_remaining,omitempty"`
	LineUnit      []string `json:"line_unit,omitempty"`
}

// InvoiceFieldMap names the candidate keys for invoice and line fields.
type InvoiceFieldMap struct {
	ID          []string `json:"id,omitempty"`
	Vendor      []string `json:"vendor,omitempty"`
	Date        []string `json:"date,omitempty"`
	Lines       []string `json:"lines,omitempty"`
	LineProduct []string `json:"line_product,omitempty"`
	LineDesc    []string `json:"line_desc,omitempty"`
	LineQty     []string `json:"line_qty,omitempty"`
	LineUnit    []string `json:"line_unit,omitempty"`
	LineTotal   []string `json:"line_total,omitempty"`
}

// FieldOverrides extends the default field maps per request. Override keys
// are tried before the defaults, so a source with an odd schema can be
// mapped without losing the common fallbacks.
type FieldOverrides struct {
	Inventory InventoryFieldMap `json:"inventory,omitempty"`
	Orders    OrderFieldMap     `json:"orders,omitempty"`
	Invoices  InvoiceFieldMap   `json:"invoices,omitempty"`
}

func defaultInventoryFieldMap() InventoryFieldMap {
	return InventoryFieldMap{
		ID:         []string{"id", "_id", "rowId", "row_id"},
		ProductID:  []string{"productId", "product_id", "product"},
		Quantity:   []string{"qty", "quantity", "amount", "qtyOnHand", "qty_on_hand"},
		Unit:       []string{"unit", "uom"},
		Location:   []string{"location", "site", "warehouse"},
		Lot:        []string{"lot", "lotNumber", "lot_number", "batch"},
		ReceivedAt: []string{"receivedAt", "received_at", "receivedDate", "received_date"},
	}
}

func defaultOrderFieldMap() OrderFieldMap {
	return OrderFieldMap{
		ID:            []string{"id", "orderId", "order_id", "number"},
		Status:        []string{"status", "state"},
		Vendor:        []string{"vendor", "vendorName", "vendor_name", "supplier"},
		Lines:         []string{"lines", "items", "lineItems", "line_items"},
		LineProduct:   []string{"productId", "product_id", "product"},
		LineRemaining: []string{"remainingQty", "remaining_qty", "remaining", "qtyRemaining", "qty_remaining"},
		LineUnit:      []string{"unit", "uom"},
	}
}

func defaultInvoiceFieldMap() InvoiceFieldMap {
	return InvoiceFieldMap{
		ID:          []string{"id", "invoiceId", "invoice_id", "number"},
		Vendor:      []string{"vendor", "vendorName", "vendor_name", "supplier"},
		Date:        []string{"date", "invoiceDate", "invoice_date", "issuedAt", "issued_at"},
		Lines:       []string{"lines", "items", "lineItems", "line_items"},
		LineProduct: []string{"productId", "product_id", "product"},
		LineDesc:    []string{"description", "desc", "label"},
		LineQty:     []string{"qty", "quantity"},
		LineUnit:    []string{"unit", "uom"},
		LineTotal:   []string{"lineTotal", "line_total", "total", "amount"},
	}
}

func mergeKeys(override, defaults []string) []string {
	if len(override) == 0 {
		return defaults
	}
	merged := make([]string, 0, len(override)+len(defaults))
	merged = append(merged, override...)
	merged = append(merged, defaults...)
	return merged
}

func (m InventoryFieldMap) merge(defaults InventoryFieldMap) InventoryFieldMap {
	return InventoryFieldMap{
		ID:         mergeKeys(m.ID, defaults.ID),
		ProductID:  mergeKeys(m.ProductID, defaults.ProductID),
		Quantity:   mergeKeys(m.Quantity, defaults.Quantity),
		Unit:       mergeKeys(m.Unit, defaults.Unit),
		Location:   mergeKeys(m.Location, defaults.Location),
		Lot:        mergeKeys(m.Lot, defaults.Lot),
		ReceivedAt: mergeKeys(m.ReceivedAt, defaults.ReceivedAt),
	}
}

func (m OrderFieldMap) merge(defaults OrderFieldMap) OrderFieldMap {
	return OrderFieldMap{
		ID:            mergeKeys(m.ID, defaults.ID),
		Status:        mergeKeys(m.Status, defaults.Status),
		Vendor:        mergeKeys(m.Vendor, defaults.Vendor),
		Lines:         mergeKeys(m.Lines, defaults.Lines),
		LineProduct:   mergeKeys(m.LineProduct, defaults.LineProduct),
		LineRemaining: mergeKeys(m.LineRemaining, defaults.LineRemaining),
		LineUnit:      mergeKeys(m.LineUnit, defaults.LineUnit),
	}
}

func (m InvoiceFieldMap) merge(defaults InvoiceFieldMap) InvoiceFieldMap {
	return InvoiceFieldMap{
		ID:          mergeKeys(m.ID, defaults.ID),
		Vendor:      mergeKeys(m.Vendor, defaults.Vendor),
		Date:        mergeKeys(m.Date, defaults.Date),
		Lines:       mergeKeys(m.Lines, defaults.Lines),
		LineProduct: mergeKeys(m.LineProduct, defaults.LineProduct),
		LineDesc:    mergeKeys(m.LineDesc, defaults.LineDesc),
		LineQty:     mergeKeys(m.LineQty, defaults.LineQty),
		LineUnit:    mergeKeys(m.LineUnit, defaults.LineUnit),
		LineTotal:   mergeKeys(m.LineTotal, defaults.LineTotal),
	}
}
