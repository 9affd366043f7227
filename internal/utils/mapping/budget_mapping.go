package mapping

import (
	"github.com/SscSPs/life_management_app/internal/core/domain"
	"github.com/SscSPs/life_management_app/internal/models"
)

func ToModelBudget(d domain.Budget) models.Budget {
	return models.Budget{
		BudgetID:     d.BudgetID,
		UserID:       d.UserID,
		Name:         d.Name,
		Category:     nullableString(string(d.Category)),
		Amount:       d.Amount,
		CurrentSpent: d.CurrentSpent,
		Currency:     string(d.Currency),
		Period:       string(d.Period),
		StartDate:    d.StartDate,
		EndDate:      d.EndDate,
		IsActive:     d.IsActive,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainBudget(m models.Budget) domain.Budget {
	return domain.Budget{
		BudgetID:     m.BudgetID,
		UserID:       m.UserID,
		Name:         m.Name,
		Category:     domain.ExpenseCategory(derefString(m.Category)),
		Amount:       m.Amount,
		CurrentSpent: m.CurrentSpent,
		Currency:     domain.Currency(m.Currency),
		Period:       domain.BudgetPeriod(m.Period),
		StartDate:    m.StartDate,
		EndDate:      m.EndDate,
		IsActive:     m.IsActive,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}
