package model

// OrderStatus is the current stage of an order. The conventional
// progression is pending → preparing → ready → completed, displayed
// left-to-right in the admin UI; transitions are not enforced and any
// status can be set by an explicit admin action.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusCompleted OrderStatus = "completed"
)

// OrderStatuses lists the statuses in conventional order.
var OrderStatuses = []OrderStatus{
	StatusPending,
	StatusPreparing,
	StatusReady,
	StatusCompleted,
}

func (s OrderStatus) Known() bool {
	switch s {
	case StatusPending, StatusPreparing, StatusReady, StatusCompleted:
		return true
	}
	return false
}

// Order is created once at checkout; items and total are immutable
// afterwards and status is the only field admins change post-creation.
type Order struct {
	ID                  string      `json:"id"`
	Items               []CartLine  `json:"items"`
	Total               float64     `json:"total"`
	CustomerName        string      `json:"customerName"`
	CustomerPhone       string      `json:"customerPhone"`
	CollectionTime      string      `json:"collectionTime"`
	CollectionLocation  string      `json:"collectionLocation"`
	SpecialInstructions string      `json:"specialInstructions,omitempty"`
	Status              OrderStatus `json:"status"`
	Date                string      `json:"date"`
	Timestamp           int64       `json:"timestamp"`
	UserID              string      `json:"userId"`
}
