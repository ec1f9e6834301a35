package models

// AddressForm is the first checkout step. Field order is the order errors are reported in.
type AddressForm struct {
	FullName   string `json:"full_name" validate:"required"`
	Street     string `json:"street" validate:"required"`
	City       string `json:"city" validate:"required"`
	State      string `json:"state" validate:"required"`
	PostalCode string `json:"postal_code" validate:"required"`
	Country    string `json:"country" validate:"required"`
}

// PaymentForm is the second checkout step. Card number and CVV never leave the request.
type PaymentForm struct {
	CardNumber string `json:"card_number" validate:"cardnumber"`
	CardHolder string `json:"card_holder" validate:"required"`
	Expiry     string `json:"expiry" validate:"expiry"`
	CVV        string `json:"cvv" validate:"cvv"`
}

// PaymentDescriptor is everything about the card that is ever sent to the backend.
type PaymentDescriptor struct {
	CardLast4  string `json:"card_last4"`
	CardHolder string `json:"card_holder"`
	Expiry     string `json:"expiry"`
}

type CheckoutStep string

const (
	CheckoutStepAddress CheckoutStep = "address"
	CheckoutStepPayment CheckoutStep = "payment"
)

// CheckoutState is the workflow as exposed to the UI.
type CheckoutState struct {
	Step       CheckoutStep `json:"step"`
	Address    AddressForm  `json:"address"`
	CardHolder string       `json:"card_holder,omitempty"`
	Expiry     string       `json:"expiry,omitempty"`
	Error      string       `json:"error,omitempty"`
}

type CheckoutResult struct {
	Order    *Order `json:"order"`
	Redirect string `json:"redirect"`
}
