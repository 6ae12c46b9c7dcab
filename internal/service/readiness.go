package service

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/agroplan/plan-service/internal/domain/model"
	"github.com/agroplan/plan-service/internal/service/cache"
)

// ReadinessEvaluator defines the readiness evaluation operation.
type ReadinessEvaluator interface {
	// Evaluate nets every planned usage against on-hand inventory and open
	// order quantity, in the usage's own unit, and classifies each one.
	// Items come back in input order, one per usage, never dropped.
	Evaluate(planned []model.PlannedUsage, inventory []model.InventoryRow, orders []model.Order) (model.ReadinessResult, error)
}

// ReadinessOption configures a ReadinessService.
type ReadinessOption func(*ReadinessService)

// ReadinessService implements ReadinessEvaluator as a pure, stateless
// computation over immutable snapshots. The optional cache short-circuits
// re-evaluation of byte-identical snapshots; since the computation is
// deterministic, a cached result is exact, not stale.
type ReadinessService struct {
	cache cache.Cache
}

// NewReadinessService creates a new ReadinessService with the given options.
func NewReadinessService(opts ...ReadinessOption) *ReadinessService {
	s := &ReadinessService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithReadinessCache enables snapshot-keyed result caching with the given
// total capacity, TTL, and shard count.
func WithReadinessCache(capacity int, ttl time.Duration, shards int) ReadinessOption {
	return func(s *ReadinessService) {
		if capacity > 0 {
			s.cache = NewShardedCache(capacity, ttl, shards)
		}
	}
}

// WithReadinessCacheInterface injects a custom cache implementation.
func WithReadinessCacheInterface(c cache.Cache) ReadinessOption {
	return func(s *ReadinessService) {
		s.cache = c
	}
}

// Evaluate classifies every planned usage against the given snapshot.
func (s *ReadinessService) Evaluate(planned []model.PlannedUsage, inventory []model.InventoryRow, orders []model.Order) (model.ReadinessResult, error) {
	key, keyed := 0, false
	if s.cache != nil {
		key, keyed = snapshotKey(planned, inventory, orders)
		if keyed {
			if result, ok := s.cache.Get(key); ok {
				return result, nil
			}
		}
	}

	result, err := evaluateSnapshot(planned, inventory, orders)
	if err != nil {
		return model.ReadinessResult{}, err
	}

	if s.cache != nil && keyed {
		s.cache.Set(key, result)
	}
	return result, nil
}

// evaluateSnapshot runs the netting pass. Indexes are built once per run so
// large plans do not rescan the whole snapshot per usage.
func evaluateSnapshot(planned []model.PlannedUsage, inventory []model.InventoryRow, orders []model.Order) (model.ReadinessResult, error) {
	invByProduct := make(map[string][]int, len(inventory))
	for i, row := range inventory {
		if row.ProductID == "" {
			// Rows without a product id can never match a usage.
			continue
		}
		invByProduct[row.ProductID] = append(invByProduct[row.ProductID], i)
	}

	openOrders := make([]int, 0, len(orders))
	for i, o := range orders {
		if o.Status.IsOpen() {
			openOrders = append(openOrders, i)
		}
	}

	result := model.ReadinessResult{
		Items:      make([]model.ReadinessItem, 0, len(planned)),
		TotalCount: len(planned),
	}

	for _, u := range planned {
		item, err := evaluateUsage(u, inventory, orders, invByProduct, openOrders)
		if err != nil {
			return model.ReadinessResult{}, err
		}
		result.Items = append(result.Items, item)

		switch item.Status {
		case model.StatusReady:
			result.ReadyCount++
		case model.StatusOnOrder:
			result.OnOrderCount++
		case model.StatusBlocking:
			result.BlockingCount++
		}
	}

	return result, nil
}

func evaluateUsage(u model.PlannedUsage, inventory []model.InventoryRow, orders []model.Order, invByProduct map[string][]int, openOrders []int) (model.ReadinessItem, error) {
	if !u.Form.IsValid() {
		return model.ReadinessItem{}, fmt.Errorf("usage %q: %w: %q", u.ID, ErrUnknownUnitFamily, u.Form)
	}
	if !u.Unit.MemberOf(u.Form) {
		return model.ReadinessItem{}, fmt.Errorf("usage %q: %w: %s is not a %s unit", u.ID, ErrUnitFamilyMismatch, u.Unit, u.Form)
	}

	explain := model.ReadinessExplain{RequiredQty: u.RequiredQty}

	// On hand: every matching row contributes, converted into the planned
	// unit. A row without a unit is taken as already being in that unit.
	// Quantities are summed as-is, negatives included, so data anomalies
	// stay visible in the trace instead of being masked.
	var onHand float64
	for _, i := range invByProduct[u.ProductID] {
		row := inventory[i]
		qty := row.Quantity
		if row.Unit != "" {
			converted, err := ConvertUnits(row.Quantity, row.Unit, u.Unit, u.Form)
			if err != nil {
				return model.ReadinessItem{}, fmt.Errorf("inventory row %q for usage %q: %w", row.ID, u.ID, err)
			}
			qty = converted
		}
		onHand += qty
		explain.Inventory = append(explain.Inventory, model.InventoryContribution{
			RowID:    row.ID,
			Location: row.Location,
			Lot:      row.Lot,
			Quantity: qty,
		})
	}

	// On order: only open orders count; within each, every matching line's
	// remaining quantity contributes. Contributions are recorded per order,
	// not per line, since that is what a buyer chases up.
	var onOrder float64
	for _, i := range openOrders {
		o := orders[i]
		var contributed float64
		matched := false
		for _, line := range o.Lines {
			if line.ProductID != u.ProductID || line.ProductID == "" {
				continue
			}
			qty := line.RemainingQty
			if line.Unit != "" {
				converted, err := ConvertUnits(line.RemainingQty, line.Unit, u.Unit, u.Form)
				if err != nil {
					return model.ReadinessItem{}, fmt.Errorf("order %q line for usage %q: %w", o.ID, u.ID, err)
				}
				qty = converted
			}
			contributed += qty
			matched = true
		}
		if matched {
			onOrder += contributed
			explain.Orders = append(explain.Orders, model.OrderContribution{
				OrderID:  o.ID,
				Vendor:   o.Vendor,
				Quantity: contributed,
			})
		}
	}

	deficit := u.RequiredQty - onHand
	if deficit < 0 {
		deficit = 0
	}

	explain.OnHandQty = onHand
	explain.OnOrderQty = onOrder
	explain.Deficit = deficit

	var status model.ReadinessStatus
	switch {
	case u.RequiredQty == 0:
		// Nothing required is always satisfiable, whatever the data says.
		status = model.StatusReady
	case deficit == 0:
		status = model.StatusReady
	case onOrder >= deficit:
		status = model.StatusOnOrder
	default:
		status = model.StatusBlocking
	}

	return model.ReadinessItem{
		UsageID:     u.ID,
		Label:       u.Label,
		ProductID:   u.ProductID,
		Crop:        u.Crop,
		Pass:        u.Pass,
		RequiredQty: u.RequiredQty,
		Unit:        u.Unit,
		OnHandQty:   onHand,
		OnOrderQty:  onOrder,
		Status:      status,
		Explain:     explain,
	}, nil
}

// snapshotKey derives a cache key from the full input snapshot. The inputs
// are plain data structs, so their JSON encoding is stable for identical
// snapshots.
func snapshotKey(planned []model.PlannedUsage, inventory []model.InventoryRow, orders []model.Order) (int, bool) {
	buf, err := json.Marshal(struct {
		Planned   []model.PlannedUsage `json:"p"`
		Inventory []model.InventoryRow `json:"i"`
		Orders    []model.Order        `json:"o"`
	}{planned, inventory, orders})
	if err != nil {
		return 0, false
	}
	h := fnv.New64a()
	_, _ = h.Write(buf)
	return int(h.Sum64() & 0x7fffffffffffffff), true
}
