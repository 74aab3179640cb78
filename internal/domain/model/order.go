package model

import "time"

// 購入ファイルから作る注文
type Order struct {
	ID        int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time   `gorm:"not null" json:"created_at"`
	Items     []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
}
