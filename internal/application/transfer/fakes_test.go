package transfer_test

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jmedinae/stock-hospitalario/internal/domain/entity"
	"github.com/jmedinae/stock-hospitalario/internal/domain/repository"
)

// memStore estado compartido de los fakes del flujo de traslados. El txRunner
// serializa con mutex y restaura snapshot ante error (Commit/Rollback).
type memStore struct {
	mu        sync.Mutex
	products  map[string]*entity.Product
	centers   map[string]*entity.HospitalCenter
	balances  map[string]*entity.InventoryBalance
	movements []*entity.StockMovement
	transfers map[string]*entity.Transfer
}

func newMemStore() *memStore {
	return &memStore{
		products:  map[string]*entity.Product{},
		centers:   map[string]*entity.HospitalCenter{},
		balances:  map[string]*entity.InventoryBalance{},
		transfers: map[string]*entity.Transfer{},
	}
}

func balanceKey(productID, centerID string) string { return productID + "|" + centerID }

func copyBalance(b *entity.InventoryBalance) *entity.InventoryBalance {
	if b == nil {
		return nil
	}
	c := *b
	return &c
}

func copyTransfer(t *entity.Transfer) *entity.Transfer {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

type storeSnapshot struct {
	balances  map[string]*entity.InventoryBalance
	movements []*entity.StockMovement
	transfers map[string]*entity.Transfer
}

func (s *memStore) snapshot() storeSnapshot {
	balances := make(map[string]*entity.InventoryBalance, len(s.balances))
	for k, v := range s.balances {
		balances[k] = copyBalance(v)
	}
	transfers := make(map[string]*entity.Transfer, len(s.transfers))
	for k, v := range s.transfers {
		transfers[k] = copyTransfer(v)
	}
	return storeSnapshot{
		balances:  balances,
		movements: append([]*entity.StockMovement(nil), s.movements...),
		transfers: transfers,
	}
}

func (s *memStore) restore(snap storeSnapshot) {
	s.balances = snap.balances
	s.movements = snap.movements
	s.transfers = snap.transfers
}

func (s *memStore) setBalance(productID, centerID string, qty decimal.Decimal) {
	s.balances[balanceKey(productID, centerID)] = &entity.InventoryBalance{
		ProductID: productID, HospitalCenterID: centerID, CurrentQuantity: qty, LastMovementDate: time.Now(),
	}
}

// --- repositorios fake ---

type memProductRepo struct{ s *memStore }

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) { return r.s.products[id], nil }
func (r *memProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}

type memCenterRepo struct{ s *memStore }

func (r *memCenterRepo) GetByID(id string) (*entity.HospitalCenter, error) {
	return r.s.centers[id], nil
}
func (r *memCenterRepo) List(limit, offset int) ([]*entity.HospitalCenter, error) {
	return nil, nil
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

func (r *memMovementRepo) GetByID(id string) (*entity.StockMovement, error) { return nil, nil }

func (r *memMovementRepo) ListByProduct(productID, centerID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	return nil, nil
}

func (r *memMovementRepo) ListByCenter(centerID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	return nil, nil
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

type memTransferRepo struct{ s *memStore }

func (r *memTransferRepo) Create(t *entity.Transfer) error {
	r.s.transfers[t.ID] = copyTransfer(t)
	return nil
}

func (r *memTransferRepo) GetByID(id string) (*entity.Transfer, error) {
	return copyTransfer(r.s.transfers[id]), nil
}

func (r *memTransferRepo) GetForUpdate(id string) (*entity.Transfer, error) {
	return copyTransfer(r.s.transfers[id]), nil
}

func (r *memTransferRepo) Update(t *entity.Transfer) error {
	r.s.transfers[t.ID] = copyTransfer(t)
	return nil
}

func (r *memTransferRepo) List(centerID, status string, limit, offset int) ([]*entity.Transfer, error) {
	var out []*entity.Transfer
	for _, t := range r.s.transfers {
		if centerID != "" && t.FromCenterID != centerID && t.ToCenterID != centerID {
			continue
		}
		if status != "" && t.Status != status {
			continue
		}
		out = append(out, copyTransfer(t))
	}
	return out, nil
}

// memTxRunner implementa stock.TxRunner y transfer.TxRunner sobre el store.
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

func (r *memTxRunner) RunTransfer(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	balanceRepo repository.InventoryBalanceRepository,
	transferRepo repository.TransferRepository,
) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	snap := r.s.snapshot()
	if err := fn(&memMovementRepo{r.s}, &memBalanceRepo{r.s}, &memTransferRepo{r.s}); err != nil {
		r.s.restore(snap)
		return err
	}
	return nil
}
