package payment

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/httperr"
	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/models"
)

type CommissionType string

const (
	CommissionPercent CommissionType = "PERCENT"
	CommissionFixed   CommissionType = "FIXED"
	CommissionTable   CommissionType = "TABLE"
)

var hundred = decimal.NewFromInt(100)

func ParseCommissionType(raw string) (CommissionType, error) {
	if strings.TrimSpace(raw) == "" {
		return CommissionPercent, nil
	}

	t := CommissionType(strings.ToUpper(strings.TrimSpace(raw)))
	switch t {
	case CommissionPercent, CommissionFixed, CommissionTable:
		return t, nil
	}
	return "", httperr.ErrInvalid("invalid_commission_type", "Commission type must be PERCENT, FIXED or TABLE")
}

// Tier is one bracket of a TABLE policy. Max is open ended when nil.
type Tier struct {
	Min  decimal.Decimal
	Max  *decimal.Decimal
	Rate decimal.Decimal
}

type Policy struct {
	Type  CommissionType
	Value decimal.Decimal
	Tiers []Tier
}

func PolicyFromStaff(s *models.Staff) Policy {
	p := Policy{
		Type:  CommissionType(s.CommissionType),
		Value: s.CommissionValue,
	}

	for _, t := range s.CommissionTiers {
		tier := Tier{Min: t.MinAmount, Rate: t.Rate}
		if t.MaxAmount.Valid {
			upper := t.MaxAmount.Decimal
			tier.Max = &upper
		}
		p.Tiers = append(p.Tiers, tier)
	}

	return p
}

// Commission applies the policy to a payment amount, rounded to cents.
//
//	PERCENT  amount * value / 100
//	FIXED    value
//	TABLE    marginal brackets: every tier pays its rate on the part of
//	         the amount that falls inside [min, max)
func (p Policy) Commission(amount decimal.Decimal) decimal.Decimal {
	switch p.Type {
	case CommissionPercent, "":
		return amount.Mul(p.Value).Div(hundred).Round(2)
	case CommissionFixed:
		return p.Value.Round(2)
	case CommissionTable:
		return tieredCommission(amount, p.Tiers).Round(2)
	default:
		return decimal.Zero
	}
}

func tieredCommission(amount decimal.Decimal, tiers []Tier) decimal.Decimal {
	total := decimal.Zero

	for _, tier := range tiers {
		if !amount.GreaterThan(tier.Min) {
			continue
		}

		upper := amount
		if tier.Max != nil && amount.GreaterThan(*tier.Max) {
			upper = *tier.Max
		}

		inTier := upper.Sub(tier.Min)
		if inTier.IsPositive() {
			total = total.Add(inTier.Mul(tier.Rate).Div(hundred))
		}
	}

	return total
}
