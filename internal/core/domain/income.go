package domain

import "github.com/SscSPs/life_management_app/internal/apperrors"

// IncomeCategory classifies an income. It is disjoint from ExpenseCategory.
type IncomeCategory string

const (
	IncomeSalary     IncomeCategory = "salary"
	IncomeFreelance  IncomeCategory = "freelance"
	IncomeBusiness   IncomeCategory = "business"
	IncomeInvestment IncomeCategory = "investment"
	IncomeRental     IncomeCategory = "rental"
	IncomeGift       IncomeCategory = "gift"
	IncomeOther      IncomeCategory = "other"
)

func (c IncomeCategory) IsValid() bool {
	switch c {
	case IncomeSalary, IncomeFreelance, IncomeBusiness, IncomeInvestment,
		IncomeRental, IncomeGift, IncomeOther:
		return true
	default:
		return false
	}
}

// Income is an incoming money record.
type Income struct {
	IncomeID    string         `json:"incomeID"`
	UserID      string         `json:"userID"`
	Source      string         `json:"source"`
	Description string         `json:"description,omitempty"`
	Category    IncomeCategory `json:"category"`
	MoneyRecord
	Taxable bool `json:"taxable"`
	AuditFields
}

func (i Income) Validate() error {
	if i.Source == "" {
		return apperrors.NewValidationError("source is required")
	}
	if !i.Category.IsValid() {
		return apperrors.NewValidationError("unknown income category %q", i.Category)
	}
	return i.MoneyRecord.Validate()
}
