package models

type OrderStatus string

const (
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusInTransit  OrderStatus = "IN_TRANSIT"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusProcessing, OrderStatusInTransit, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}

	return false
}

// Next is the only status an admin may advance an order to.
func (s OrderStatus) Next() (OrderStatus, bool) {
	switch s {
	case OrderStatusProcessing:
		return OrderStatusInTransit, true
	case OrderStatusInTransit:
		return OrderStatusDelivered, true
	}

	return "", false
}

type RefundStatus string

const (
	RefundStatusPending  RefundStatus = "PENDING"
	RefundStatusApproved RefundStatus = "APPROVED"
	RefundStatusRejected RefundStatus = "REJECTED"
)

func (s RefundStatus) Terminal() bool {
	return s == RefundStatusApproved || s == RefundStatusRejected
}
