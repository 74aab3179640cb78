package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/CaduValezzi/FIAP-3ESA-csharp-cp3-2025/internal/domain/model"
	"github.com/CaduValezzi/FIAP-3ESA-csharp-cp3-2025/internal/domain/stockfile"
	repo "github.com/CaduValezzi/FIAP-3ESA-csharp-cp3-2025/internal/repository"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// 購入ファイルを注文として保存する
type OrderUsecase struct {
	tx     repo.TransactionManager
	bundle repo.BundleRepository
	obs    ReconciliationObserver
	clock  Clock
	tracer trace.Tracer
}

func NewOrderUsecase(
	tx repo.TransactionManager,
	bundle repo.BundleRepository,
	obs ReconciliationObserver,
	clock Clock,
	tracer trace.Tracer,
) *OrderUsecase {
	if obs == nil {
		obs = NopObserver{}
	}
	if tracer == nil {
		tracer = otel.Tracer(tracerName)
	}
	return &OrderUsecase{tx: tx, bundle: bundle, obs: obs, clock: clock, tracer: tracer}
}

type SaveOrdersOutput struct {
	OrderID   int64
	Items     int
	Missing   int
	Malformed int
}

// 有効な行ごとに明細を作る（同じシャツの行が複数あればそれぞれ明細になる）。
// 単価は保存時点のシャツ価格。
func (u *OrderUsecase) SaveOrders(ctx context.Context, day time.Time) (SaveOrdersOutput, error) {
	stamp := stockfile.Stamp(day)
	ctx, span := u.tracer.Start(ctx, "order.save", trace.WithAttributes(attribute.String("stock.stamp", stamp)))
	defer span.End()

	text, err := u.bundle.Read(ctx, stamp, stockfile.SlotPurchases)
	if errors.Is(err, repo.ErrNotFound) {
		return SaveOrdersOutput{}, failSpan(span, NewHTTPError(http.StatusNotFound, msgPurchasesNotFound))
	}
	if err != nil {
		return SaveOrdersOutput{}, failSpan(span, internalError(fmt.Errorf("read purchases: %w", err)))
	}

	lines, bad := stockfile.ParsePurchaseLines(text)
	reportMalformed(ctx, u.obs, stockfile.SlotPurchases, bad)

	var out SaveOrdersOutput
	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		out = SaveOrdersOutput{Malformed: len(bad)}

		order := model.Order{
			CreatedAt: u.clock.Now(),
			Items:     make([]model.OrderItem, 0, len(lines)),
		}

		for _, l := range lines {
			s, err := r.Shirts().FindByID(ctx, l.ShirtID)
			if errors.Is(err, repo.ErrNotFound) {
				u.obs.MissingShirt(ctx, stockfile.SlotPurchases, l.ShirtID)
				out.Missing++
				continue
			}
			if err != nil {
				return fmt.Errorf("find shirt %d: %w", l.ShirtID, err)
			}

			//スナップショット
			order.Items = append(order.Items, model.OrderItem{
				ShirtID:   s.ID,
				Quantity:  l.Quantity,
				UnitPrice: s.Price,
				CreatedAt: order.CreatedAt,
			})
		}

		// 注文作成
		orderID, err := r.Orders().Create(ctx, order)
		if err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		//注文明細一括作成
		if err := r.OrderItems().CreateBulk(ctx, orderID, order.Items); err != nil {
			return fmt.Errorf("create order items: %w", err)
		}

		out.OrderID = orderID
		out.Items = len(order.Items)
		return nil
	})
	if err != nil {
		return SaveOrdersOutput{}, failSpan(span, internalError(err))
	}

	span.SetAttributes(attribute.Int64("order.id", out.OrderID), attribute.Int("order.items", out.Items))
	return out, nil
}

type OrderItemOutput struct {
	ShirtID   int64           `json:"shirtId"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

type OrderOutput struct {
	ID        int64             `json:"id"`
	CreatedAt time.Time         `json:"createdAt"`
	Items     []OrderItemOutput `json:"items"`
	Total     decimal.Decimal   `json:"total"`
}

// 保存済みの注文を明細付きで返す
func (u *OrderUsecase) GetOrder(ctx context.Context, orderID int64) (OrderOutput, error) {
	ctx, span := u.tracer.Start(ctx, "order.get", trace.WithAttributes(attribute.Int64("order.id", orderID)))
	defer span.End()

	var out OrderOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "pedido não encontrado")
		}
		if err != nil {
			return fmt.Errorf("find order %d: %w", orderID, err)
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return fmt.Errorf("list order items %d: %w", orderID, err)
		}

		out = OrderOutput{
			ID:        o.ID,
			CreatedAt: o.CreatedAt,
			Items:     make([]OrderItemOutput, 0, len(items)),
			Total:     decimal.Zero,
		}
		for _, it := range items {
			out.Items = append(out.Items, OrderItemOutput{
				ShirtID:   it.ShirtID,
				Quantity:  it.Quantity,
				UnitPrice: it.UnitPrice,
			})
			out.Total = out.Total.Add(it.UnitPrice.Mul(decimal.NewFromInt(it.Quantity)))
		}
		return nil
	})
	if err != nil {
		return OrderOutput{}, failSpan(span, internalError(err))
	}
	return out, nil
}
