package stock_test

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jmedinae/stock-hospitalario/internal/domain/entity"
	"github.com/jmedinae/stock-hospitalario/internal/domain/repository"
)

// memStore estado compartido de los fakes. El txRunner serializa las
// transacciones con un mutex y restaura un snapshot ante error, imitando el
// Commit/Rollback real.
type memStore struct {
	mu        sync.Mutex
	products  map[string]*entity.Product
	centers   map[string]*entity.HospitalCenter
	balances  map[string]*entity.InventoryBalance
	movements []*entity.StockMovement
}

func newMemStore() *memStore {
	return &memStore{
		products: map[string]*entity.Product{},
		centers:  map[string]*entity.HospitalCenter{},
		balances: map[string]*entity.InventoryBalance{},
	}
}

func (s *memStore) addProduct(id string) {
	s.products[id] = &entity.Product{ID: id, Code: id, Name: "producto " + id, UnitOfMeasure: "unidad", Active: true}
}

func (s *memStore) addCenter(id string) {
	s.centers[id] = &entity.HospitalCenter{ID: id, Name: "centro " + id, Active: true}
}

func balanceKey(productID, centerID string) string { return productID + "|" + centerID }

func copyBalance(b *entity.InventoryBalance) *entity.InventoryBalance {
	if b == nil {
		return nil
	}
	c := *b
	return &c
}

type storeSnapshot struct {
	balances  map[string]*entity.InventoryBalance
	movements []*entity.StockMovement
}

func (s *memStore) snapshot() storeSnapshot {
	balances := make(map[string]*entity.InventoryBalance, len(s.balances))
	for k, v := range s.balances {
		balances[k] = copyBalance(v)
	}
	return storeSnapshot{balances: balances, movements: append([]*entity.StockMovement(nil), s.movements...)}
}

func (s *memStore) restore(snap storeSnapshot) {
	s.balances = snap.balances
	s.movements = snap.movements
}

// sumMovements suma las cantidades del libro para (producto, centro).
func (s *memStore) sumMovements(productID, centerID string) decimal.Decimal {
	sum := decimal.Zero
	for _, m := range s.movements {
		if m.ProductID == productID && m.HospitalCenterID == centerID {
			sum = sum.Add(m.Quantity)
		}
	}
	return sum
}

// --- repositorios fake ---

type memProductRepo struct{ s *memStore }

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) { return r.s.products[id], nil }
func (r *memProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		out = append(out, p)
	}
	return out, nil
}

type memCenterRepo struct{ s *memStore }

func (r *memCenterRepo) GetByID(id string) (*entity.HospitalCenter, error) {
	return r.s.centers[id], nil
}
func (r *memCenterRepo) List(limit, offset int) ([]*entity.HospitalCenter, error) {
	out := make([]*entity.HospitalCenter, 0, len(r.s.centers))
	for _, c := range r.s.centers {
		out = append(out, c)
	}
	return out, nil
}

type memBalanceRepo struct{ s *memStore }

func (r *memBalanceRepo) Get(productID, centerID string) (*entity.InventoryBalance, error) {
	return copyBalance(r.s.balances[balanceKey(productID, centerID)]), nil
}

// GetForUpdate materializa la fila con línea base cero si el par nunca se
// movió, como el adaptador real; el rollback del runner la deshace.
func (r *memBalanceRepo) GetForUpdate(productID, centerID string) (*entity.InventoryBalance, error) {
	key := balanceKey(productID, centerID)
	if _, ok := r.s.balances[key]; !ok {
		r.s.balances[key] = &entity.InventoryBalance{ProductID: productID, HospitalCenterID: centerID}
	}
	return copyBalance(r.s.balances[key]), nil
}

func (r *memBalanceRepo) Upsert(balance *entity.InventoryBalance) error {
	r.s.balances[balanceKey(balance.ProductID, balance.HospitalCenterID)] = copyBalance(balance)
	return nil
}

func (r *memBalanceRepo) UpdateThresholds(productID, centerID string, min, max *decimal.Decimal) error {
	b := r.s.balances[balanceKey(productID, centerID)]
	if b != nil {
		b.MinimumThreshold = min
		b.MaximumThreshold = max
	}
	return nil
}

func (r *memBalanceRepo) ListByCenter(centerID string, limit, offset int) ([]*entity.InventoryBalance, error) {
	var out []*entity.InventoryBalance
	for k, b := range r.s.balances {
		if strings.HasSuffix(k, "|"+centerID) {
			out = append(out, copyBalance(b))
		}
	}
	return out, nil
}

type memMovementRepo struct{ s *memStore }

func (r *memMovementRepo) Create(m *entity.StockMovement) error {
	c := *m
	r.s.movements = append(r.s.movements, &c)
	return nil
}

func (r *memMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	for _, m := range r.s.movements {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, nil
}

func (r *memMovementRepo) ListByProduct(productID, centerID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.s.movements {
		if m.ProductID == productID && (centerID == "" || m.HospitalCenterID == centerID) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memMovementRepo) ListByCenter(centerID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.s.movements {
		if m.HospitalCenterID == centerID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memMovementRepo) ListByReference(referenceType, referenceID string) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.s.movements {
		if m.ReferenceType == referenceType && m.ReferenceID == referenceID {
			out = append(out, m)
		}
	}
	return out, nil
}

// memTxRunner serializa transacciones y revierte el estado ante error.
type memTxRunner struct{ s *memStore }

func (r *memTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	balanceRepo repository.InventoryBalanceRepository,
) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	snap := r.s.snapshot()
	if err := fn(&memMovementRepo{r.s}, &memBalanceRepo{r.s}); err != nil {
		r.s.restore(snap)
		return err
	}
	return nil
}

// conflictTxRunner falla los primeros n intentos con el error dado antes de
// delegar en el runner real; simula carreras perdidas sobre la fila de saldo.
type conflictTxRunner struct {
	inner    *memTxRunner
	failures int
	fail     error
	attempts int
}

func (r *conflictTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	balanceRepo repository.InventoryBalanceRepository,
) error) error {
	r.attempts++
	if r.attempts <= r.failures {
		return r.fail
	}
	return r.inner.Run(ctx, fn)
}
