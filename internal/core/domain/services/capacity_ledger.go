package services

import (
	"context"
	"errors"
	"sort"
	"time"

	"dinner/internal/core/domain/model/inventory"
	"dinner/internal/core/domain/model/kernel"
	"dinner/internal/core/domain/model/menu"
	"dinner/internal/core/domain/model/order"
	"dinner/internal/core/ports"
	"dinner/internal/pkg/errs"
)

// preOrderLeadDays is the advance-order horizon: deliveries at least this
// many days out draw against future restock, so the daily cap is waived.
const preOrderLeadDays = 3

// ReservationLine is one validated line of a reservation plan.
type ReservationLine struct {
	MenuItemID int64
	ItemName   string
	Quantity   int
	Perishable bool
}

// ReservationPlan is the validated, not yet written outcome of preparing
// reservations: the window the holds will count against and the lines to
// hold. Prepared separately from committing so the caller can validate
// dependent resources before any write happens.
type ReservationPlan struct {
	Window       kernel.Window
	DeliveryTime time.Time
	Lines        []ReservationLine
}

// CapacityLedger is a domain service that accounts menu item capacity per
// delivery-day window. It validates requested quantities against what is
// already held, commits and releases reservations, consumes them when
// cooking starts, and exposes the mutation surface the nightly maintenance
// job drives.
//
// The ledger is constructed over transaction-bound repositories so a commit
// and its stock mutations land in the caller's transaction.
type CapacityLedger struct {
	stocks       ports.StockRepository
	reservations ports.ReservationRepository
	catalog      ports.CatalogRepository
}

// NewCapacityLedger creates a CapacityLedger over the given repositories.
func NewCapacityLedger(
	stocks ports.StockRepository,
	reservations ports.ReservationRepository,
	catalog ports.CatalogRepository,
) (*CapacityLedger, error) {
	if stocks == nil {
		return nil, errs.NewValueIsRequiredError("stocks")
	}
	if reservations == nil {
		return nil, errs.NewValueIsRequiredError("reservations")
	}
	if catalog == nil {
		return nil, errs.NewValueIsRequiredError("catalog")
	}
	return &CapacityLedger{
		stocks:       stocks,
		reservations: reservations,
		catalog:      catalog,
	}, nil
}

// AggregateQuantities merges requested order lines into one quantity per
// menu item, rejecting empty input, missing item ids and non-positive
// quantities. Duplicate lines for the same item are summed.
func (l *CapacityLedger) AggregateQuantities(items []order.Item) (map[int64]int, error) {
	if len(items) == 0 {
		return nil, errs.NewValueIsRequiredError("order items")
	}

	aggregated := make(map[int64]int, len(items))
	for _, item := range items {
		if item.MenuItemID <= 0 {
			return nil, errs.NewValueIsRequiredError("menu item id")
		}
		if item.Quantity <= 0 {
			return nil, errs.NewValueIsInvalidError("quantity")
		}
		aggregated[item.MenuItemID] += item.Quantity
	}
	return aggregated, nil
}

// PrepareReservations validates every aggregated line against current
// capacity and returns an immutable plan without writing anything.
func (l *CapacityLedger) PrepareReservations(
	ctx context.Context,
	items []order.Item,
	deliveryTime time.Time,
	now time.Time,
) (ReservationPlan, error) {
	return l.prepare(ctx, 0, items, deliveryTime, now)
}

// ValidateChangePlan validates an amendment plan for an existing order. The
// order's own holds in the same window are subtracted from "already
// reserved" first, so an order does not count against itself.
func (l *CapacityLedger) ValidateChangePlan(
	ctx context.Context,
	orderID int64,
	items []order.Item,
	deliveryTime time.Time,
	now time.Time,
) (ReservationPlan, error) {
	if orderID <= 0 {
		return ReservationPlan{}, errs.NewValueIsRequiredError("order id")
	}
	return l.prepare(ctx, orderID, items, deliveryTime, now)
}

func (l *CapacityLedger) prepare(
	ctx context.Context,
	ownOrderID int64,
	items []order.Item,
	deliveryTime time.Time,
	now time.Time,
) (ReservationPlan, error) {
	aggregated, err := l.AggregateQuantities(items)
	if err != nil {
		return ReservationPlan{}, err
	}

	window, err := kernel.NewWindowForTime(deliveryTime)
	if err != nil {
		return ReservationPlan{}, err
	}

	ids := make([]int64, 0, len(aggregated))
	for id := range aggregated {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	lines := make([]ReservationLine, 0, len(ids))
	for _, id := range ids {
		menuItem, err := l.catalog.GetMenuItem(ctx, id)
		if err != nil {
			return ReservationPlan{}, err
		}

		quantity := aggregated[id]
		if err := l.validateLine(ctx, menuItem, window, quantity, deliveryTime, now, ownOrderID); err != nil {
			return ReservationPlan{}, err
		}

		lines = append(lines, ReservationLine{
			MenuItemID: menuItem.ID,
			ItemName:   menuItem.Name,
			Quantity:   quantity,
			Perishable: !menuItem.IsAlcohol(),
		})
	}

	return ReservationPlan{
		Window:       window,
		DeliveryTime: deliveryTime,
		Lines:        lines,
	}, nil
}

// validateLine checks one item's requested quantity against the window.
// Advance orders (delivery at least preOrderLeadDays out) skip the cap:
// they will be cooked from future restock, not today's stock.
func (l *CapacityLedger) validateLine(
	ctx context.Context,
	menuItem menu.MenuItem,
	window kernel.Window,
	requested int,
	deliveryTime time.Time,
	now time.Time,
	ownOrderID int64,
) error {
	if kernel.DaysUntil(now, deliveryTime) >= preOrderLeadDays {
		return nil
	}

	capacity, err := l.capacityFor(ctx, menuItem.ID)
	if err != nil {
		return err
	}

	reserved, err := l.reservations.SumActiveQuantityInWindow(ctx, menuItem.ID, window, now)
	if err != nil {
		return err
	}

	if ownOrderID != 0 {
		own, err := l.ownContribution(ctx, ownOrderID, menuItem.ID, window)
		if err != nil {
			return err
		}
		reserved -= own
		if reserved < 0 {
			reserved = 0
		}
	}

	if reserved+requested > capacity {
		return errs.NewCapacityExceededError(menuItem.Name, requested, reserved, capacity)
	}
	return nil
}

func (l *CapacityLedger) capacityFor(ctx context.Context, menuItemID int64) (int, error) {
	stock, err := l.stocks.GetByMenuItem(ctx, menuItemID)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return inventory.DefaultCapacityPerWindow, nil
		}
		return 0, err
	}
	return stock.CapacityPerWindow(), nil
}

func (l *CapacityLedger) ownContribution(
	ctx context.Context,
	orderID int64,
	menuItemID int64,
	window kernel.Window,
) (int, error) {
	held, err := l.reservations.GetUnconsumedByOrder(ctx, orderID)
	if err != nil {
		return 0, err
	}

	own := 0
	for _, reservation := range held {
		if reservation.MenuItemID() == menuItemID && reservation.Window().IsEqual(window) {
			own += reservation.Quantity()
		}
	}
	return own, nil
}

// CommitReservations re-validates the plan against current counts and
// persists one reservation row per line. The re-validation closes most of
// the check-then-act gap left since the plan was prepared.
func (l *CapacityLedger) CommitReservations(
	ctx context.Context,
	orderID int64,
	plan ReservationPlan,
	now time.Time,
) error {
	if orderID <= 0 {
		return errs.NewValueIsRequiredError("order id")
	}
	if len(plan.Lines) == 0 {
		return errs.NewValueIsRequiredError("reservation plan")
	}

	if err := l.revalidate(ctx, 0, plan, now); err != nil {
		return err
	}
	return l.writeLines(ctx, orderID, plan)
}

// ReplaceReservationsForOrder swaps the order's holds for the new plan as a
// unit: re-validate with the order's own contribution subtracted, delete the
// old rows, insert the new ones.
func (l *CapacityLedger) ReplaceReservationsForOrder(
	ctx context.Context,
	orderID int64,
	plan ReservationPlan,
	now time.Time,
) error {
	if orderID <= 0 {
		return errs.NewValueIsRequiredError("order id")
	}

	if err := l.revalidate(ctx, orderID, plan, now); err != nil {
		return err
	}
	if err := l.reservations.DeleteByOrder(ctx, orderID); err != nil {
		return err
	}
	return l.writeLines(ctx, orderID, plan)
}

func (l *CapacityLedger) revalidate(
	ctx context.Context,
	ownOrderID int64,
	plan ReservationPlan,
	now time.Time,
) error {
	for _, line := range plan.Lines {
		menuItem, err := l.catalog.GetMenuItem(ctx, line.MenuItemID)
		if err != nil {
			return err
		}
		if err := l.validateLine(ctx, menuItem, plan.Window, line.Quantity, plan.DeliveryTime, now, ownOrderID); err != nil {
			return err
		}
	}
	return nil
}

func (l *CapacityLedger) writeLines(ctx context.Context, orderID int64, plan ReservationPlan) error {
	for _, line := range plan.Lines {
		if err := l.ensureStock(ctx, line.MenuItemID); err != nil {
			return err
		}

		reservation, err := inventory.NewReservation(
			orderID, line.MenuItemID, line.Quantity, plan.DeliveryTime, line.Perishable)
		if err != nil {
			return err
		}
		if err := l.reservations.Add(ctx, reservation); err != nil {
			return err
		}
	}
	return nil
}

// ensureStock lazily creates the default stock row for an item the first
// time it gets reserved.
func (l *CapacityLedger) ensureStock(ctx context.Context, menuItemID int64) error {
	_, err := l.stocks.GetByMenuItem(ctx, menuItemID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}

	stock, err := inventory.NewItemStock(menuItemID)
	if err != nil {
		return err
	}
	return l.stocks.Add(ctx, stock)
}

// ConsumeReservationsForOrder marks the order's unconsumed holds as used and
// deducts their quantity from window capacity, flooring at zero. Idempotent:
// a second call finds no unconsumed rows and does nothing.
func (l *CapacityLedger) ConsumeReservationsForOrder(ctx context.Context, orderID int64) error {
	if orderID <= 0 {
		return errs.NewValueIsRequiredError("order id")
	}

	unconsumed, err := l.reservations.GetUnconsumedByOrder(ctx, orderID)
	if err != nil {
		return err
	}

	for _, reservation := range unconsumed {
		if err := reservation.Consume(); err != nil {
			return err
		}
		if err := l.reservations.Update(ctx, reservation); err != nil {
			return err
		}

		stock, err := l.stocks.GetByMenuItem(ctx, reservation.MenuItemID())
		if err != nil {
			if errors.Is(err, errs.ErrObjectNotFound) {
				continue
			}
			return err
		}
		stock.ConsumeCapacity(reservation.Quantity())
		if err := l.stocks.Update(ctx, stock); err != nil {
			return err
		}
	}
	return nil
}

// ReleaseReservationsForOrder deletes the order's holds. Safe to call when
// none exist.
func (l *CapacityLedger) ReleaseReservationsForOrder(ctx context.Context, orderID int64) error {
	if orderID <= 0 {
		return errs.NewValueIsRequiredError("order id")
	}
	return l.reservations.DeleteByOrder(ctx, orderID)
}

// Restock replaces an item's window capacity, creating the stock row if it
// does not exist yet.
func (l *CapacityLedger) Restock(ctx context.Context, menuItemID int64, capacity int, notes string, now time.Time) error {
	stock, err := l.getOrCreateStock(ctx, menuItemID)
	if err != nil {
		return err
	}
	if err := stock.Restock(capacity, now); err != nil {
		return err
	}
	stock.SetNotes(notes)
	return l.stocks.Update(ctx, stock)
}

// SetOrderedQuantity records an item's pending supplier order.
func (l *CapacityLedger) SetOrderedQuantity(ctx context.Context, menuItemID int64, quantity int) error {
	stock, err := l.getOrCreateStock(ctx, menuItemID)
	if err != nil {
		return err
	}
	if err := stock.SetOrderedQuantity(quantity); err != nil {
		return err
	}
	return l.stocks.Update(ctx, stock)
}

// ReceiveOrderedInventory folds an item's pending supplier order into its
// window capacity and zeroes it.
func (l *CapacityLedger) ReceiveOrderedInventory(ctx context.Context, menuItemID int64, now time.Time) error {
	stock, err := l.stocks.GetByMenuItem(ctx, menuItemID)
	if err != nil {
		return err
	}
	stock.ReceiveOrdered(now)
	return l.stocks.Update(ctx, stock)
}

// PurgeExpired removes unconsumed reservations past their expiry.
func (l *CapacityLedger) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	return l.reservations.DeleteExpired(ctx, now)
}

// PurgePastWindows removes reservations whose delivery day already ended.
func (l *CapacityLedger) PurgePastWindows(ctx context.Context, now time.Time) (int64, error) {
	return l.reservations.DeletePastWindows(ctx, now)
}

func (l *CapacityLedger) getOrCreateStock(ctx context.Context, menuItemID int64) (*inventory.ItemStock, error) {
	stock, err := l.stocks.GetByMenuItem(ctx, menuItemID)
	if err == nil {
		return stock, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	stock, err = inventory.NewItemStock(menuItemID)
	if err != nil {
		return nil, err
	}
	if err := l.stocks.Add(ctx, stock); err != nil {
		return nil, err
	}
	return stock, nil
}
