package model

type OrderStatus string

const (
	OrderPending    OrderStatus = "Pending"
	OrderProcessing OrderStatus = "Processing"
	OrderShipped    OrderStatus = "Shipped"
	OrderDelivered  OrderStatus = "Delivered"
	OrderCancelled  OrderStatus = "Cancelled"
)

// orderTransitions is the allowed from → to table. Re-asserting the current
// status is always permitted so a repeated "Delivered" call stays a safe no-op
// (settlement is guarded per item).
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:    {OrderProcessing, OrderCancelled},
	OrderProcessing: {OrderShipped, OrderCancelled},
	OrderShipped:    {OrderDelivered},
	OrderDelivered:  {},
	OrderCancelled:  {},
}

func (s OrderStatus) Valid() bool {
	_, ok := orderTransitions[s]
	return ok
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type PayoutStatus string

const (
	PayoutPending    PayoutStatus = "Pending"
	PayoutProcessing PayoutStatus = "Processing"
	PayoutPaid       PayoutStatus = "Paid"
	PayoutFailed     PayoutStatus = "Failed"
	PayoutRejected   PayoutStatus = "Rejected"
)

func (s PayoutStatus) Terminal() bool {
	return s == PayoutPaid || s == PayoutFailed || s == PayoutRejected
}

type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationVerified VerificationStatus = "verified"
	VerificationRejected VerificationStatus = "rejected"
)

type ReturnStatus string

const (
	ReturnNone      ReturnStatus = ""
	ReturnRequested ReturnStatus = "Requested"
	ReturnApproved  ReturnStatus = "Approved"
	ReturnRejected  ReturnStatus = "Rejected"
)

type Role string

const (
	RoleUser   Role = "user"
	RoleSeller Role = "seller"
	RoleAdmin  Role = "admin"
)
