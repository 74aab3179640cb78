package model

import "github.com/shopspring/decimal"

type Shirt struct {
	ID     int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name   string          `gorm:"type:varchar(255);not null" json:"name"`
	Size   string          `gorm:"type:varchar(10);not null" json:"size"`
	Color  string          `gorm:"type:varchar(50);not null" json:"color"`
	Stock  int64           `gorm:"not null;default:0" json:"stock"`
	Price  decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	BandID int64           `gorm:"not null;index" json:"band_id"`

	// Preloadしたときだけ埋まる
	Band *Band `gorm:"foreignKey:BandID" json:"band,omitempty"`
}

// バンド名（バンドが無いときは空文字）
func (s Shirt) BandName() string {
	if s.Band == nil {
		return ""
	}
	return s.Band.Name
}
