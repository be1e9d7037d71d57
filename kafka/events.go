package kafka

import "time"

// SaleRecordedEvent is emitted after a sale commits, carrying the ledger
// outcome for downstream consumers (alerts, analytics).
type SaleRecordedEvent struct {
	EventID     string    `json:"event_id"`
	EventType   string    `json:"event_type"`
	SaleID      uint      `json:"sale_id"`
	GoodsID     uint      `json:"goods_id"`
	UserID      uint      `json:"user_id"`
	Quantity    int       `json:"quantity"`
	TotalProfit float64   `json:"total_profit"`
	SaleDate    time.Time `json:"sale_date"`
	Timestamp   time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeSaleRecorded = "sale.recorded"
)

// Kafka topics
const (
	TopicSaleRecorded = "sale-recorded"
)
