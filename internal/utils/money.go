package utils

import (
	"strings"

	"toursbackend/internal/domain"
	"toursbackend/internal/domain/models"
)

// FormatMoney renders amount with thousand separators and two decimals,
// e.g. 60000 -> "60,000.00".
func FormatMoney(amount models.Money) string {
	s := amount.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	return sign + formatThousand(intPart) + "." + frac
}

// ValidateAmount checks a client supplied amount: positive and DECIMAL(12,2).
func ValidateAmount(field string, amount models.Money) error {
	if !amount.IsPositive() {
		return domain.ValidationError{Field: field, Msg: "must be greater than zero"}
	}
	if !amount.Fits() {
		return domain.ValidationError{Field: field, Msg: "exceeds 12 digits"}
	}
	if !amount.Equal(amount.Round(2)) {
		return domain.ValidationError{Field: field, Msg: "at most 2 decimal places"}
	}
	return nil
}

func formatThousand(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var out strings.Builder
	for i, c := range digits {
		if i != 0 && (len(digits)-i)%3 == 0 {
			out.WriteByte(',')
		}
		out.WriteRune(c)
	}
	return out.String()
}
