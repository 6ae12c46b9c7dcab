package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/agroplan/plan-service/internal/domain/model"
)

// VarianceInput is the snapshot one variance report is computed from.
type VarianceInput struct {
	Season    string
	Planned   []model.PlannedUsage
	Products  []model.Product
	Invoices  []model.Invoice
	PriceBook model.PriceBook
}

// VarianceReporter defines the variance report operation.
type VarianceReporter interface {
	// BuildVarianceByPass allocates each crop's actual invoice cost across
	// its (crop, pass) buckets in proportion to planned quantity and
	// compares the result to price-book planned cost. Rows appear in the
	// order their bucket first appears in the plan.
	BuildVarianceByPass(in VarianceInput) (model.VarianceReport, error)
}

// VarianceService implements VarianceReporter as a pure computation.
type VarianceService struct{}

// NewVarianceService creates a new VarianceService.
func NewVarianceService() *VarianceService {
	return &VarianceService{}
}

// varianceBucket accumulates one (crop, pass) bucket during the pass over
// the plan. plannedQty is in family base units and is the allocation weight.
type varianceBucket struct {
	key          model.BucketKey
	products     []string
	productSeen  map[string]bool
	plannedQty   float64
	plannedCost  *decimal.Decimal
	missingPrice bool
	actual       decimal.Decimal
	noInvoices   bool
}

// BuildVarianceByPass builds the variance report for one season snapshot.
func (s *VarianceService) BuildVarianceByPass(in VarianceInput) (model.VarianceReport, error) {
	names := make(map[string]string, len(in.Products))
	for _, p := range in.Products {
		names[p.ID] = p.Name
	}

	buckets, order, err := collectBuckets(in.Planned, in.PriceBook)
	if err != nil {
		return model.VarianceReport{}, err
	}

	allocateActuals(buckets, order, in.Invoices)

	report := model.VarianceReport{
		Season: in.Season,
		Rows:   make([]model.VarianceRow, 0, len(order)),
		Caveat: model.VarianceCaveat,
	}

	for _, key := range order {
		b := buckets[key]
		row := model.VarianceRow{
			Crop:                b.key.Crop,
			Pass:                b.key.Pass,
			Products:            productNames(b.products, names),
			PlannedQtyBase:      b.plannedQty,
			ActualCostAllocated: b.actual,
			Flags: model.VarianceFlags{
				MissingPlannedPrice: b.missingPrice,
				NoInvoices:          b.noInvoices,
			},
		}

		if b.plannedCost != nil {
			planned := b.plannedCost.Round(2)
			row.PlannedCost = &planned

			variance := b.actual.Sub(planned)
			row.Variance = &variance

			if !planned.IsZero() {
				pct := variance.Div(planned).Mul(decimal.NewFromInt(100)).Round(2)
				row.VariancePct = &pct
			}

			report.PlannedTotal = report.PlannedTotal.Add(planned)
			report.VarianceTotal = report.VarianceTotal.Add(variance)
		} else {
			// A null planned cost stays null on the row; the totals simply
			// treat it as zero, which leaves the actual side standing alone.
			report.VarianceTotal = report.VarianceTotal.Add(b.actual)
		}
		report.ActualTotalAllocated = report.ActualTotalAllocated.Add(b.actual)

		report.Rows = append(report.Rows, row)
	}

	return report, nil
}

// collectBuckets folds the plan into (crop, pass) buckets, pricing each
// usage against the price book as it goes. Bucket order is first appearance
// in the plan.
func collectBuckets(planned []model.PlannedUsage, priceBook model.PriceBook) (map[model.BucketKey]*varianceBucket, []model.BucketKey, error) {
	buckets := make(map[model.BucketKey]*varianceBucket)
	order := make([]model.BucketKey, 0)

	for _, u := range planned {
		if !u.Form.IsValid() {
			return nil, nil, fmt.Errorf("usage %q: %w: %q", u.ID, ErrUnknownUnitFamily, u.Form)
		}
		if !u.Unit.MemberOf(u.Form) {
			return nil, nil, fmt.Errorf("usage %q: %w: %s is not a %s unit", u.ID, ErrUnitFamilyMismatch, u.Unit, u.Form)
		}

		key := u.Bucket()
		b, ok := buckets[key]
		if !ok {
			b = &varianceBucket{key: key, productSeen: make(map[string]bool)}
			buckets[key] = b
			order = append(order, key)
		}

		if !b.productSeen[u.ProductID] {
			b.productSeen[u.ProductID] = true
			b.products = append(b.products, u.ProductID)
		}

		baseQty, err := ToBase(u.RequiredQty, u.Unit, u.Form)
		if err != nil {
			return nil, nil, fmt.Errorf("usage %q: %w", u.ID, err)
		}
		b.plannedQty += baseQty

		entry, found := priceBook.Lookup(u.ProductID, u.Crop, u.Pass)
		if !found {
			// Not an error: the row carries a null planned cost and a flag.
			b.missingPrice = true
			continue
		}

		pricedQty, err := ConvertUnits(u.RequiredQty, u.Unit, entry.Unit, u.Form)
		if err != nil {
			return nil, nil, fmt.Errorf("price book entry for product %q: %w", u.ProductID, err)
		}
		cost := entry.UnitPrice.Mul(decimal.NewFromFloat(pricedQty))
		if b.plannedCost == nil {
			b.plannedCost = &cost
		} else {
			sum := b.plannedCost.Add(cost)
			b.plannedCost = &sum
		}
	}

	return buckets, order, nil
}

// allocateActuals distributes each crop's matched invoice total across that
// crop's buckets by planned-quantity share. The crop's last bucket receives
// the remainder after rounding, so the per-crop allocation always sums to
// exactly the matched invoice total.
func allocateActuals(buckets map[model.BucketKey]*varianceBucket, order []model.BucketKey, invoices []model.Invoice) {
	cropOrder := make([]string, 0)
	cropBuckets := make(map[string][]*varianceBucket)
	for _, key := range order {
		b := buckets[key]
		if _, ok := cropBuckets[b.key.Crop]; !ok {
			cropOrder = append(cropOrder, b.key.Crop)
		}
		cropBuckets[b.key.Crop] = append(cropBuckets[b.key.Crop], b)
	}

	for _, crop := range cropOrder {
		group := cropBuckets[crop]

		cropProducts := make(map[string]bool)
		for _, b := range group {
			for _, pid := range b.products {
				cropProducts[pid] = true
			}
		}

		cropActual := decimal.Zero
		matched := false
		for _, inv := range invoices {
			for _, line := range inv.Lines {
				if line.ProductID == "" || !cropProducts[line.ProductID] {
					continue
				}
				cropActual = cropActual.Add(line.LineTotal)
				matched = true
			}
		}

		if !matched {
			for _, b := range group {
				b.actual = decimal.Zero
				b.noInvoices = true
			}
			continue
		}

		var totalQty float64
		for _, b := range group {
			totalQty += b.plannedQty
		}

		allocated := decimal.Zero
		for i, b := range group {
			if i == len(group)-1 {
				b.actual = cropActual.Sub(allocated)
				break
			}
			share := 1.0 / float64(len(group))
			if totalQty != 0 {
				share = b.plannedQty / totalQty
			}
			b.actual = cropActual.Mul(decimal.NewFromFloat(share)).Round(2)
			allocated = allocated.Add(b.actual)
		}
	}
}

func productNames(ids []string, names map[string]string) []string {
	if len(ids) == 0 {
		return nil
	}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := names[id]; ok && name != "" {
			out = append(out, name)
			continue
		}
		out = append(out, id)
	}
	return out
}
