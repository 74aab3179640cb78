// Package memory はリポジトリのインメモリ実装。
// STORAGE_DRIVER=memory とテストで使う。
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/CaduValezzi/FIAP-3ESA-csharp-cp3-2025/internal/domain/model"
	repo "github.com/CaduValezzi/FIAP-3ESA-csharp-cp3-2025/internal/repository"
)

type state struct {
	bands       map[int64]model.Band
	shirts      []model.Shirt // 追加順
	orders      []model.Order
	orderItems  []model.OrderItem
	adjustments []model.StockAdjustment

	nextBandID  int64
	nextShirtID int64
	nextOrderID int64
	nextItemID  int64
	nextAdjID   int64
}

func newState() *state {
	return &state{bands: map[int64]model.Band{}}
}

func (s *state) clone() *state {
	c := *s
	c.bands = make(map[int64]model.Band, len(s.bands))
	for k, v := range s.bands {
		c.bands[k] = v
	}
	c.shirts = append([]model.Shirt(nil), s.shirts...)
	c.orders = append([]model.Order(nil), s.orders...)
	c.orderItems = append([]model.OrderItem(nil), s.orderItems...)
	c.adjustments = append([]model.StockAdjustment(nil), s.adjustments...)
	return &c
}

// Store は1つのmutexで守る。WithinTxはコピーに対して実行し、成功したときだけ差し替える。
type Store struct {
	mu        sync.RWMutex
	st        *state
	commitErr error
}

func NewStore() *Store {
	return &Store{st: newState()}
}

// 次のコミットを失敗させる（テスト用）
func (s *Store) FailNextCommit(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commitErr = err
}

func (s *Store) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.st.clone()
	if err := fn(&txRepos{st: work}); err != nil {
		return err
	}
	if s.commitErr != nil {
		err := s.commitErr
		s.commitErr = nil
		return err
	}
	s.st = work
	return nil
}

// トランザクション外の読み取り
func (s *Store) Shirts() repo.ShirtRepository {
	return &lockedShirts{s: s}
}

type lockedShirts struct {
	s *Store
}

func (l *lockedShirts) List(ctx context.Context, f repo.ShirtFilter) ([]model.Shirt, error) {
	l.s.mu.RLock()
	defer l.s.mu.RUnlock()
	return (&shirtRepo{st: l.s.st}).List(ctx, f)
}

func (l *lockedShirts) FindByID(ctx context.Context, id int64) (model.Shirt, error) {
	l.s.mu.RLock()
	defer l.s.mu.RUnlock()
	return (&shirtRepo{st: l.s.st}).FindByID(ctx, id)
}

// ===== seed / 検証用 =====

func (s *Store) AddBand(name string) model.Band {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.nextBandID++
	b := model.Band{ID: s.st.nextBandID, Name: name}
	s.st.bands[b.ID] = b
	return b
}

// IDが0なら採番する
func (s *Store) AddShirt(sh model.Shirt) model.Shirt {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sh.ID == 0 {
		s.st.nextShirtID++
		sh.ID = s.st.nextShirtID
	} else if sh.ID > s.st.nextShirtID {
		s.st.nextShirtID = sh.ID
	}
	sh.Band = nil
	s.st.shirts = append(s.st.shirts, sh)
	return sh
}

func (s *Store) Stock(shirtID int64) (int64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sh := range s.st.shirts {
		if sh.ID == shirtID {
			return sh.Stock, true
		}
	}
	return 0, false
}

// 明細付きで返す
func (s *Store) Orders() []model.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Order, 0, len(s.st.orders))
	for _, o := range s.st.orders {
		o.Items = nil
		for _, it := range s.st.orderItems {
			if it.OrderID == o.ID {
				o.Items = append(o.Items, it)
			}
		}
		out = append(out, o)
	}
	return out
}

func (s *Store) Adjustments() []model.StockAdjustment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.StockAdjustment(nil), s.st.adjustments...)
}

// ===== repos over state =====

type txRepos struct {
	st *state
}

func (r *txRepos) Shirts() repo.ShirtRepository         { return &shirtRepo{st: r.st} }
func (r *txRepos) Inventory() repo.InventoryRepository  { return &inventoryRepo{st: r.st} }
func (r *txRepos) Orders() repo.OrderRepository         { return &orderRepo{st: r.st} }
func (r *txRepos) OrderItems() repo.OrderItemRepository { return &orderItemRepo{st: r.st} }

type shirtRepo struct {
	st *state
}

func (r *shirtRepo) List(_ context.Context, f repo.ShirtFilter) ([]model.Shirt, error) {
	out := make([]model.Shirt, 0, len(r.st.shirts))
	for _, sh := range r.st.shirts {
		if f.BandID != nil && sh.BandID != *f.BandID {
			continue
		}
		if f.WithBand {
			if b, ok := r.st.bands[sh.BandID]; ok {
				sh.Band = &b
			}
		}
		out = append(out, sh)
	}
	return out, nil
}

func (r *shirtRepo) FindByID(_ context.Context, id int64) (model.Shirt, error) {
	for _, sh := range r.st.shirts {
		if sh.ID == id {
			return sh, nil
		}
	}
	return model.Shirt{}, repo.ErrNotFound
}

type inventoryRepo struct {
	st *state
}

func (r *inventoryRepo) SetStock(_ context.Context, shirtID int64, newStock int64) error {
	for i := range r.st.shirts {
		if r.st.shirts[i].ID == shirtID {
			r.st.shirts[i].Stock = newStock
			return nil
		}
	}
	return repo.ErrNotFound
}

func (r *inventoryRepo) CreateAdjustments(_ context.Context, adjs []model.StockAdjustment) error {
	now := time.Now()
	for _, a := range adjs {
		r.st.nextAdjID++
		a.ID = r.st.nextAdjID
		if a.CreatedAt.IsZero() {
			a.CreatedAt = now
		}
		r.st.adjustments = append(r.st.adjustments, a)
	}
	return nil
}

type orderRepo struct {
	st *state
}

func (r *orderRepo) FindByID(_ context.Context, orderID int64) (model.Order, error) {
	for _, o := range r.st.orders {
		if o.ID == orderID {
			return o, nil
		}
	}
	return model.Order{}, repo.ErrNotFound
}

func (r *orderRepo) Create(_ context.Context, order model.Order) (int64, error) {
	r.st.nextOrderID++
	order.ID = r.st.nextOrderID
	order.Items = nil
	r.st.orders = append(r.st.orders, order)
	return order.ID, nil
}

type orderItemRepo struct {
	st *state
}

func (r *orderItemRepo) CreateBulk(_ context.Context, orderID int64, items []model.OrderItem) error {
	now := time.Now()
	for _, it := range items {
		r.st.nextItemID++
		it.ID = r.st.nextItemID
		it.OrderID = orderID
		if it.CreatedAt.IsZero() {
			it.CreatedAt = now
		}
		r.st.orderItems = append(r.st.orderItems, it)
	}
	return nil
}

func (r *orderItemRepo) ListByOrderID(_ context.Context, orderID int64) ([]model.OrderItem, error) {
	out := []model.OrderItem{}
	for _, it := range r.st.orderItems {
		if it.OrderID == orderID {
			out = append(out, it)
		}
	}
	return out, nil
}

var _ repo.TransactionManager = (*Store)(nil)
