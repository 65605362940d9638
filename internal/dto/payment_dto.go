package dto

import "github.com/shopspring/decimal"

type PaymentItemRequest struct {
	Name     string          `json:"name"     validate:"required"`
	Price    decimal.Decimal `json:"price"    validate:"required"`
	Quantity int             `json:"quantity" validate:"required,gt=0"`
}

type CreatePaymentRequest struct {
	Order         []PaymentItemRequest `json:"order"         validate:"required,min=1,dive"`
	PaymentMethod string               `json:"paymentMethod" validate:"required,oneof=daviplata nequi bancolombia qr"`
	TableNumber   int                  `json:"tableNumber"   validate:"required,gt=0"`
}
