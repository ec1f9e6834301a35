package models

import "time"

type RefundRequest struct {
	ID              int64        `json:"id"`
	OrderItem       int64        `json:"order_item"`
	Order           int64        `json:"order,omitempty"`
	Requester       string       `json:"requester"`
	Reason          string       `json:"reason"`
	Status          RefundStatus `json:"status"`
	Approver        string       `json:"approver,omitempty"`
	RejectionReason string       `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

type CreateRefundRequest struct {
	OrderID     int64  `json:"order_id" validate:"required,gt=0"`
	OrderItemID int64  `json:"order_item" validate:"required,gt=0"`
	Reason      string `json:"reason" validate:"required,max=1000"`
}

type RejectRefundRequest struct {
	Reason string `json:"reason" validate:"required,max=1000"`
}
