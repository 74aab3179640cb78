// Package stockfile は在庫照合で使うフラットファイルの形式を扱う。
//
// 購入ファイル:   <ShirtId>;<Quantity>
// 在庫ファイル:   <ShirtId>;<BandName>;<Quantity>
package stockfile

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DDMMYY
const StampLayout = "020106"

const separator = ";"

// Slot は1日分のバンドルの中のファイル種別。
type Slot string

const (
	SlotPurchases    Slot = "compras"
	SlotInitialStock Slot = "estoque_inicial"
	SlotFinalStock   Slot = "estoque_final"
)

// Stamp は日付をファイル名のキー（DDMMYY）にする。
func Stamp(day time.Time) string {
	return day.Format(StampLayout)
}

// ParseStamp はDDMMYYを日付に戻す。
func ParseStamp(s string) (time.Time, error) {
	day, err := time.Parse(StampLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date stamp %q: %w", s, err)
	}
	return day, nil
}

// FileName: 191026_compras.txt など
func FileName(stamp string, slot Slot) string {
	return stamp + "_" + string(slot) + ".txt"
}

type PurchaseLine struct {
	ShirtID  int64
	Quantity int64
}

type StockLine struct {
	ShirtID  int64
	BandName string
	Quantity int64
}

// Malformed は形式に合わなかった行（1始まりの行番号）。
type Malformed struct {
	LineNo int
	Text   string
}

// ParsePurchaseLines は有効な行をファイル順に返す。
// 2項目かつ両方整数でない行はMalformedに入れて読み飛ばす。
func ParsePurchaseLines(text string) ([]PurchaseLine, []Malformed) {
	var (
		out []PurchaseLine
		bad []Malformed
	)
	for i, line := range splitLines(text) {
		parts := strings.Split(line, separator)
		if len(parts) != 2 {
			bad = append(bad, Malformed{LineNo: i + 1, Text: line})
			continue
		}
		id, err1 := parseInt(parts[0])
		qty, err2 := parseInt(parts[1])
		if err1 != nil || err2 != nil {
			bad = append(bad, Malformed{LineNo: i + 1, Text: line})
			continue
		}
		out = append(out, PurchaseLine{ShirtID: id, Quantity: qty})
	}
	return out, bad
}

// Purchases はシャツIDごとの購入数。同じIDが複数あれば最初の行だけ使う。
func Purchases(lines []PurchaseLine) map[int64]int64 {
	m := make(map[int64]int64, len(lines))
	for _, l := range lines {
		if _, seen := m[l.ShirtID]; seen {
			continue
		}
		m[l.ShirtID] = l.Quantity
	}
	return m
}

// ParseStockLines は3項目の在庫行を読む。2番目（バンド名）は検証しない。
func ParseStockLines(text string) ([]StockLine, []Malformed) {
	var (
		out []StockLine
		bad []Malformed
	)
	for i, line := range splitLines(text) {
		parts := strings.Split(line, separator)
		if len(parts) != 3 {
			bad = append(bad, Malformed{LineNo: i + 1, Text: line})
			continue
		}
		id, err1 := parseInt(parts[0])
		qty, err2 := parseInt(parts[2])
		if err1 != nil || err2 != nil {
			bad = append(bad, Malformed{LineNo: i + 1, Text: line})
			continue
		}
		out = append(out, StockLine{ShirtID: id, BandName: parts[1], Quantity: qty})
	}
	return out, bad
}

// FormatStockLines は1行1レコード、改行は\n。
func FormatStockLines(lines []StockLine) string {
	var sb strings.Builder
	for _, l := range lines {
		sb.WriteString(strconv.FormatInt(l.ShirtID, 10))
		sb.WriteString(separator)
		sb.WriteString(l.BandName)
		sb.WriteString(separator)
		sb.WriteString(strconv.FormatInt(l.Quantity, 10))
		sb.WriteString("\n")
	}
	return sb.String()
}

// FinalQuantity = max(stock - purchased, 0)
func FinalQuantity(stock, purchased int64) int64 {
	final := stock - purchased
	if final < 0 {
		return 0
	}
	return final
}

func parseInt(s string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(s), 10, 64)
}

// 末尾の改行では空行を作らない。\r\nも受け付ける。
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	for i := range lines {
		lines[i] = strings.TrimSuffix(lines[i], "\r")
	}
	return lines
}
