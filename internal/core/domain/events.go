package domain

// Real-time event names published after state changes.
const (
	EventStockUpdated       = "stock.updated"
	EventOrderCreated       = "order.created"
	EventOrderUpdated       = "order.updated"
	EventOrderStatusChanged = "order.status_changed"
	EventOrderDeleted       = "order.deleted"
)
