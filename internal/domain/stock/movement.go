package stock

import (
	"github.com/BruksfildServices01/barber-backoffice/internal/httperr"
)

type MovementType string

const (
	MovementIn         MovementType = "in"
	MovementOut        MovementType = "out"
	MovementAdjustment MovementType = "adjustment"
	// MovementSale is recorded by sales flows; it cannot be posted by hand.
	MovementSale MovementType = "sale"
)

var reasons = map[MovementType][]string{
	MovementIn:         {"purchase", "return", "transfer", "other"},
	MovementOut:        {"sale", "loss", "donation", "transfer", "other"},
	MovementAdjustment: {"inventory", "correction", "other"},
}

// Reasons lists the accepted reasons for a manual movement type.
func Reasons(t MovementType) []string {
	out := make([]string, len(reasons[t]))
	copy(out, reasons[t])
	return out
}

// Request is a manual movement as entered by staff. For adjustments,
// Quantity is the desired absolute stock level.
type Request struct {
	Type     MovementType
	Quantity int
	Reason   string
	Notes    string
}

// Result is what gets persisted: the signed ledger quantity and the new counter.
type Result struct {
	Delta    int
	NewStock int
}

func (r Request) Validate() error {
	allowed, ok := reasons[r.Type]
	if !ok {
		return httperr.ErrBusiness("invalid_movement_type")
	}

	switch r.Type {
	case MovementIn, MovementOut:
		if r.Quantity <= 0 {
			return httperr.ErrBusiness("invalid_quantity")
		}
	case MovementAdjustment:
		if r.Quantity < 0 {
			return httperr.ErrBusiness("invalid_quantity")
		}
	}

	for _, reason := range allowed {
		if reason == r.Reason {
			return nil
		}
	}
	return httperr.ErrBusiness("invalid_reason")
}

// Apply computes the ledger delta against the current stock.
//
//	in:         delta = +q,          new = current + q
//	out:        delta = -q,          new = current - q   (rejected if q > current)
//	adjustment: delta = q - current, new = q
func Apply(current int, r Request) (Result, error) {
	if err := r.Validate(); err != nil {
		return Result{}, err
	}

	switch r.Type {
	case MovementIn:
		return Result{Delta: r.Quantity, NewStock: current + r.Quantity}, nil
	case MovementOut:
		if r.Quantity > current {
			return Result{}, httperr.ErrBusiness("insufficient_stock")
		}
		return Result{Delta: -r.Quantity, NewStock: current - r.Quantity}, nil
	default:
		return Result{Delta: r.Quantity - current, NewStock: r.Quantity}, nil
	}
}

// Reconciliation compares the stored counter with the ledger sum.
type Reconciliation struct {
	ProductID     uint `json:"product_id"`
	StockQuantity int  `json:"stock_quantity"`
	LedgerSum     int  `json:"ledger_sum"`
	Drift         int  `json:"drift"`
	Consistent    bool `json:"consistent"`
}

func Reconcile(productID uint, counter, ledgerSum int) Reconciliation {
	return Reconciliation{
		ProductID:     productID,
		StockQuantity: counter,
		LedgerSum:     ledgerSum,
		Drift:         counter - ledgerSum,
		Consistent:    counter == ledgerSum,
	}
}
