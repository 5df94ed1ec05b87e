package utils

import (
	"toursbackend/internal/domain"
	"toursbackend/internal/domain/models"

	"github.com/shopspring/decimal"
)

// ComputeTotalPrice returns (basePrice + modifier) * travelers. A nil
// modifier counts as zero.
func ComputeTotalPrice(basePrice models.Money, modifier *models.Money, travelers int) (models.Money, error) {
	if travelers < 1 {
		return models.Money{}, domain.ValidationError{Field: "travelers_count", Msg: "must be at least 1"}
	}

	unit := basePrice.Decimal
	if modifier != nil {
		unit = unit.Add(modifier.Decimal)
	}

	total := models.NewMoney(unit.Mul(decimal.NewFromInt(int64(travelers))))
	if total.IsNegative() {
		return models.Money{}, domain.ValidationError{Field: "total_price", Msg: "must not be negative"}
	}
	if !total.Fits() {
		return models.Money{}, domain.ValidationError{Field: "total_price", Msg: "exceeds 12 digits"}
	}
	return total, nil
}
