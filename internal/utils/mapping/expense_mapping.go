package mapping

import (
	"github.com/SscSPs/life_management_app/internal/core/domain"
	"github.com/SscSPs/life_management_app/internal/models"
)

func ToModelExpense(d domain.Expense) models.Expense {
	return models.Expense{
		ExpenseID:   d.ExpenseID,
		UserID:      d.UserID,
		Title:       d.Title,
		Description: d.Description,
		Category:    string(d.Category),
		Amount:      d.Amount,
		Currency:    string(d.Currency),
		Date:        d.Date,
		IsRecurring: d.IsRecurring,
		Frequency:   toModelFrequency(d.Frequency),
		NextDueDate: d.NextDueDate,
		PaidAmount:  d.PaidAmount,
		IsPaid:      d.IsPaid,
		PaidDate:    d.PaidDate,
		IsOverdue:   d.IsOverdue,
		DueDate:     d.DueDate,
		BudgetID:    d.BudgetID,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainExpense(m models.Expense) domain.Expense {
	return domain.Expense{
		ExpenseID:   m.ExpenseID,
		UserID:      m.UserID,
		Title:       m.Title,
		Description: m.Description,
		Category:    domain.ExpenseCategory(m.Category),
		MoneyRecord: domain.MoneyRecord{
			Amount:      m.Amount,
			Currency:    domain.Currency(m.Currency),
			Date:        m.Date,
			IsRecurring: m.IsRecurring,
			Frequency:   toDomainFrequency(m.Frequency),
			NextDueDate: m.NextDueDate,
		},
		PaidAmount:  m.PaidAmount,
		IsPaid:      m.IsPaid,
		PaidDate:    m.PaidDate,
		IsOverdue:   m.IsOverdue,
		DueDate:     m.DueDate,
		BudgetID:    m.BudgetID,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainExpenses(ms []models.Expense) []domain.Expense {
	out := make([]domain.Expense, len(ms))
	for i, m := range ms {
		out[i] = ToDomainExpense(m)
	}
	return out
}
