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

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/CaduValezzi/FIAP-3ESA-csharp-cp3-2025/internal/usecase"

const (
	msgPurchasesNotFound  = "arquivo de compras não encontrado"
	msgFinalStockNotFound = "arquivo de estoque final não encontrado"
)

// 在庫照合（照会・初期在庫・最終在庫・在庫確定）
type StockUsecase struct {
	shirts repo.ShirtRepository
	tx     repo.TransactionManager
	bundle repo.BundleRepository
	obs    ReconciliationObserver
	tracer trace.Tracer
}

// DI（obs/tracerはnilなら既定値）
func NewStockUsecase(
	shirts repo.ShirtRepository,
	tx repo.TransactionManager,
	bundle repo.BundleRepository,
	obs ReconciliationObserver,
	tracer trace.Tracer,
) *StockUsecase {
	if obs == nil {
		obs = NopObserver{}
	}
	if tracer == nil {
		tracer = otel.Tracer(tracerName)
	}
	return &StockUsecase{
		shirts: shirts,
		tx:     tx,
		bundle: bundle,
		obs:    obs,
		tracer: tracer,
	}
}

// GET /operacoes/GetInfo の1件
type ShirtInfo struct {
	ShirtID         int64  `json:"shirtId"`
	Name            string `json:"name"`
	Size            string `json:"size"`
	Color           string `json:"color"`
	QuantityInStock int64  `json:"quantityInStock"`
	GroupID         int64  `json:"groupId"`
}

type SnapshotOutput struct {
	Stamp    string
	FileName string
	Text     string
}

// Stagedは確定前の最終在庫。同じプロセスならCommitStagedにそのまま渡せる。
type FinalStockOutput struct {
	SnapshotOutput
	Staged    []stockfile.StockLine
	Malformed int
}

type CommitOutput struct {
	Updated   int
	Adjusted  int
	Missing   int
	Malformed int
}

// bandIDがnilなら全件
func (u *StockUsecase) GetInfo(ctx context.Context, bandID *int64) ([]ShirtInfo, error) {
	ctx, span := u.tracer.Start(ctx, "stock.get_info")
	defer span.End()

	shirts, err := u.shirts.List(ctx, repo.ShirtFilter{BandID: bandID})
	if err != nil {
		return nil, failSpan(span, internalError(fmt.Errorf("list shirts: %w", err)))
	}

	out := make([]ShirtInfo, 0, len(shirts))
	for _, s := range shirts {
		out = append(out, ShirtInfo{
			ShirtID:         s.ID,
			Name:            s.Name,
			Size:            s.Size,
			Color:           s.Color,
			QuantityInStock: s.Stock,
			GroupID:         s.BandID,
		})
	}
	span.SetAttributes(attribute.Int("shirts.count", len(out)))
	return out, nil
}

// 現在の在庫を DDMMYY_estoque_inicial.txt に書き出す
func (u *StockUsecase) GenerateInitialStock(ctx context.Context, day time.Time) (SnapshotOutput, error) {
	stamp := stockfile.Stamp(day)
	ctx, span := u.tracer.Start(ctx, "stock.generate_initial", trace.WithAttributes(attribute.String("stock.stamp", stamp)))
	defer span.End()

	shirts, err := u.shirts.List(ctx, repo.ShirtFilter{WithBand: true})
	if err != nil {
		return SnapshotOutput{}, failSpan(span, internalError(fmt.Errorf("list shirts: %w", err)))
	}

	lines := make([]stockfile.StockLine, 0, len(shirts))
	for _, s := range shirts {
		lines = append(lines, u.stockLine(ctx, s, s.Stock))
	}

	text := stockfile.FormatStockLines(lines)
	if err := u.bundle.Write(ctx, stamp, stockfile.SlotInitialStock, text); err != nil {
		return SnapshotOutput{}, failSpan(span, internalError(fmt.Errorf("write initial stock: %w", err)))
	}

	return SnapshotOutput{
		Stamp:    stamp,
		FileName: stockfile.FileName(stamp, stockfile.SlotInitialStock),
		Text:     text,
	}, nil
}

// 購入ファイルを在庫から引いて DDMMYY_estoque_final.txt を作る。
// DBにはまだ保存しない（確定はCommitStock / CommitStaged）。
func (u *StockUsecase) GenerateFinalStock(ctx context.Context, day time.Time) (FinalStockOutput, error) {
	stamp := stockfile.Stamp(day)
	ctx, span := u.tracer.Start(ctx, "stock.generate_final", trace.WithAttributes(attribute.String("stock.stamp", stamp)))
	defer span.End()

	text, err := u.bundle.Read(ctx, stamp, stockfile.SlotPurchases)
	if errors.Is(err, repo.ErrNotFound) {
		return FinalStockOutput{}, failSpan(span, NewHTTPError(http.StatusNotFound, msgPurchasesNotFound))
	}
	if err != nil {
		return FinalStockOutput{}, failSpan(span, internalError(fmt.Errorf("read purchases: %w", err)))
	}

	purchaseLines, bad := stockfile.ParsePurchaseLines(text)
	reportMalformed(ctx, u.obs, stockfile.SlotPurchases, bad)
	purchased := stockfile.Purchases(purchaseLines)

	shirts, err := u.shirts.List(ctx, repo.ShirtFilter{WithBand: true})
	if err != nil {
		return FinalStockOutput{}, failSpan(span, internalError(fmt.Errorf("list shirts: %w", err)))
	}

	staged := make([]stockfile.StockLine, 0, len(shirts))
	for i := range shirts {
		final := stockfile.FinalQuantity(shirts[i].Stock, purchased[shirts[i].ID])
		//メモリ上だけ更新
		shirts[i].Stock = final
		staged = append(staged, u.stockLine(ctx, shirts[i], final))
	}

	out := stockfile.FormatStockLines(staged)
	if err := u.bundle.Write(ctx, stamp, stockfile.SlotFinalStock, out); err != nil {
		return FinalStockOutput{}, failSpan(span, internalError(fmt.Errorf("write final stock: %w", err)))
	}

	span.SetAttributes(
		attribute.Int("purchases.count", len(purchased)),
		attribute.Int("purchases.malformed", len(bad)),
	)
	return FinalStockOutput{
		SnapshotOutput: SnapshotOutput{
			Stamp:    stamp,
			FileName: stockfile.FileName(stamp, stockfile.SlotFinalStock),
			Text:     out,
		},
		Staged:    staged,
		Malformed: len(bad),
	}, nil
}

// DDMMYY_estoque_final.txt を読んで在庫を確定する
func (u *StockUsecase) CommitStock(ctx context.Context, day time.Time) (CommitOutput, error) {
	stamp := stockfile.Stamp(day)
	ctx, span := u.tracer.Start(ctx, "stock.commit", trace.WithAttributes(attribute.String("stock.stamp", stamp)))
	defer span.End()

	text, err := u.bundle.Read(ctx, stamp, stockfile.SlotFinalStock)
	if errors.Is(err, repo.ErrNotFound) {
		return CommitOutput{}, failSpan(span, NewHTTPError(http.StatusNotFound, msgFinalStockNotFound))
	}
	if err != nil {
		return CommitOutput{}, failSpan(span, internalError(fmt.Errorf("read final stock: %w", err)))
	}

	lines, bad := stockfile.ParseStockLines(text)
	reportMalformed(ctx, u.obs, stockfile.SlotFinalStock, bad)

	out, err := u.commit(ctx, stamp, lines)
	if err != nil {
		return CommitOutput{}, failSpan(span, err)
	}
	out.Malformed = len(bad)
	return out, nil
}

// GenerateFinalStockの結果をファイルを介さず確定する
func (u *StockUsecase) CommitStaged(ctx context.Context, day time.Time, staged []stockfile.StockLine) (CommitOutput, error) {
	stamp := stockfile.Stamp(day)
	ctx, span := u.tracer.Start(ctx, "stock.commit_staged", trace.WithAttributes(attribute.String("stock.stamp", stamp)))
	defer span.End()

	out, err := u.commit(ctx, stamp, staged)
	if err != nil {
		return CommitOutput{}, failSpan(span, err)
	}
	return out, nil
}

// 全行を1トランザクションで保存する（途中で失敗したら何も残らない）
func (u *StockUsecase) commit(ctx context.Context, stamp string, lines []stockfile.StockLine) (CommitOutput, error) {
	type pending struct {
		before int64
		after  int64
	}

	var out CommitOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		out = CommitOutput{}
		byID := map[int64]*pending{}
		ids := make([]int64, 0, len(lines))

		for _, l := range lines {
			//同じIDが複数あれば後の行で上書き
			if p, ok := byID[l.ShirtID]; ok {
				p.after = l.Quantity
				continue
			}
			s, err := r.Shirts().FindByID(ctx, l.ShirtID)
			if errors.Is(err, repo.ErrNotFound) {
				u.obs.MissingShirt(ctx, stockfile.SlotFinalStock, l.ShirtID)
				out.Missing++
				continue
			}
			if err != nil {
				return fmt.Errorf("find shirt %d: %w", l.ShirtID, err)
			}
			byID[l.ShirtID] = &pending{before: s.Stock, after: l.Quantity}
			ids = append(ids, l.ShirtID)
		}

		adjs := make([]model.StockAdjustment, 0, len(ids))
		for _, id := range ids {
			p := byID[id]
			if err := r.Inventory().SetStock(ctx, id, p.after); err != nil {
				return fmt.Errorf("set stock %d: %w", id, err)
			}
			if delta := p.after - p.before; delta != 0 {
				adjs = append(adjs, model.StockAdjustment{
					ShirtID: id,
					Delta:   delta,
					Reason:  "estoque final " + stamp,
				})
			}
		}
		if err := r.Inventory().CreateAdjustments(ctx, adjs); err != nil {
			return fmt.Errorf("create adjustments: %w", err)
		}

		out.Updated = len(ids)
		out.Adjusted = len(adjs)
		return nil
	})
	if err != nil {
		return CommitOutput{}, internalError(err)
	}
	return out, nil
}

func (u *StockUsecase) stockLine(ctx context.Context, s model.Shirt, qty int64) stockfile.StockLine {
	if s.Band == nil {
		u.obs.MissingBand(ctx, s.ID, s.BandID)
	}
	return stockfile.StockLine{ShirtID: s.ID, BandName: s.BandName(), Quantity: qty}
}

func failSpan(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

type BundleStatus struct {
	Stamp        string `json:"stamp"`
	Purchases    bool   `json:"purchases"`
	InitialStock bool   `json:"initialStock"`
	FinalStock   bool   `json:"finalStock"`
}

// その日のファイルがどこまで揃っているか
func (u *StockUsecase) GetBundleStatus(ctx context.Context, day time.Time) (BundleStatus, error) {
	stamp := stockfile.Stamp(day)
	out := BundleStatus{Stamp: stamp}

	slots := []struct {
		slot stockfile.Slot
		dst  *bool
	}{
		{stockfile.SlotPurchases, &out.Purchases},
		{stockfile.SlotInitialStock, &out.InitialStock},
		{stockfile.SlotFinalStock, &out.FinalStock},
	}
	for _, s := range slots {
		ok, err := u.bundle.Exists(ctx, stamp, s.slot)
		if err != nil {
			return BundleStatus{}, internalError(fmt.Errorf("check %s: %w", s.slot, err))
		}
		*s.dst = ok
	}
	return out, nil
}
