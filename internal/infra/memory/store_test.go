package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/CaduValezzi/FIAP-3ESA-csharp-cp3-2025/internal/domain/model"
	repo "github.com/CaduValezzi/FIAP-3ESA-csharp-cp3-2025/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_ListFiltersByBand(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	a := s.AddBand("A")
	b := s.AddBand("B")
	s.AddShirt(model.Shirt{Name: "a1", BandID: a.ID})
	s.AddShirt(model.Shirt{Name: "b1", BandID: b.ID})
	s.AddShirt(model.Shirt{Name: "a2", BandID: a.ID})

	all, err := s.Shirts().List(ctx, repo.ShirtFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Nil(t, all[0].Band)

	onlyA, err := s.Shirts().List(ctx, repo.ShirtFilter{BandID: &a.ID, WithBand: true})
	require.NoError(t, err)
	require.Len(t, onlyA, 2)
	for _, sh := range onlyA {
		assert.Equal(t, a.ID, sh.BandID)
		assert.Equal(t, "A", sh.BandName())
	}
}

func TestStore_WithinTx_RollbackOnError(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	sh := s.AddShirt(model.Shirt{Name: "x", Stock: 10})

	err := s.WithinTx(ctx, func(r repo.TxRepos) error {
		if err := r.Inventory().SetStock(ctx, sh.ID, 1); err != nil {
			return err
		}
		return errors.New("boom")
	})
	assert.EqualError(t, err, "boom")

	stock, _ := s.Stock(sh.ID)
	assert.Equal(t, int64(10), stock)
}

func TestStore_WithinTx_FailNextCommit(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	sh := s.AddShirt(model.Shirt{Name: "x", Stock: 10})
	s.FailNextCommit(errors.New("disk full"))

	err := s.WithinTx(ctx, func(r repo.TxRepos) error {
		return r.Inventory().SetStock(ctx, sh.ID, 3)
	})
	assert.EqualError(t, err, "disk full")
	stock, _ := s.Stock(sh.ID)
	assert.Equal(t, int64(10), stock)

	//次は成功する
	require.NoError(t, s.WithinTx(ctx, func(r repo.TxRepos) error {
		return r.Inventory().SetStock(ctx, sh.ID, 3)
	}))
	stock, _ = s.Stock(sh.ID)
	assert.Equal(t, int64(3), stock)
}

func TestStore_OrdersWithItems(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	require.NoError(t, s.WithinTx(ctx, func(r repo.TxRepos) error {
		id, err := r.Orders().Create(ctx, model.Order{})
		if err != nil {
			return err
		}
		return r.OrderItems().CreateBulk(ctx, id, []model.OrderItem{{ShirtID: 1, Quantity: 2}, {ShirtID: 2, Quantity: 1}})
	}))

	orders := s.Orders()
	require.Len(t, orders, 1)
	assert.Equal(t, int64(1), orders[0].ID)
	assert.Len(t, orders[0].Items, 2)
	assert.Equal(t, int64(1), orders[0].Items[0].OrderID)
}

func TestSeedDemo(t *testing.T) {
	s := NewStore()
	SeedDemo(s)

	all, err := s.Shirts().List(context.Background(), repo.ShirtFilter{WithBand: true})
	require.NoError(t, err)
	assert.Len(t, all, 4)
	assert.Equal(t, "Metallica", all[0].BandName())
}
