package middleware

import (
	"fmt"

	"github.com/SscSPs/life_management_app/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators adds the domain enum validators (currency, frequency,
// expense_category, income_category, budget_period) to gin's binding engine.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding validator engine %T", binding.Validator.Engine())
	}
	return registerDomainValidators(v)
}

func registerDomainValidators(v *validator.Validate) error {
	rules := map[string]validator.Func{
		"currency": func(fl validator.FieldLevel) bool {
			return domain.Currency(fl.Field().String()).IsValid()
		},
		"frequency": func(fl validator.FieldLevel) bool {
			return domain.Frequency(fl.Field().String()).IsValid()
		},
		"expense_category": func(fl validator.FieldLevel) bool {
			return domain.ExpenseCategory(fl.Field().String()).IsValid()
		},
		"income_category": func(fl validator.FieldLevel) bool {
			return domain.IncomeCategory(fl.Field().String()).IsValid()
		},
		"budget_period": func(fl validator.FieldLevel) bool {
			return domain.BudgetPeriod(fl.Field().String()).IsValid()
		},
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("register %s validator: %w", tag, err)
		}
	}
	return nil
}
