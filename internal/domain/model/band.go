package model

// バンド（シャツの所属グループ）。このサービスでは参照のみ。
type Band struct {
	ID   int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"type:varchar(255);not null" json:"name"`
}
