package model

import "time"

// Priceは注文時点の商品価格スナップショット。以後の価格変更の影響を受けない。
type OrderItem struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   int64     `gorm:"not null;index" json:"order_id"`
	ProductID int64     `gorm:"not null;index" json:"product_id"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity  int64     `gorm:"not null" json:"quantity"`
	Price     Money     `gorm:"type:numeric(12,2);not null" json:"price"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
