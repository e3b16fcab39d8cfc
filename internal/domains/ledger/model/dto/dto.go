package dto

import (
	"github.com/shopspring/decimal"
)

type RecordEntryRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"required"`
	Method string          `json:"method"`
	Reason string          `json:"reason"`
}
