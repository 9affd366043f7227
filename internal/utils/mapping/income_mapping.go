package mapping

import (
	"github.com/SscSPs/life_management_app/internal/core/domain"
	"github.com/SscSPs/life_management_app/internal/models"
)

func ToModelIncome(d domain.Income) models.Income {
	return models.Income{
		IncomeID:    d.IncomeID,
		UserID:      d.UserID,
		Source:      d.Source,
		Description: d.Description,
		Category:    string(d.Category),
		Amount:      d.Amount,
		Currency:    string(d.Currency),
		Date:        d.Date,
		IsRecurring: d.IsRecurring,
		Frequency:   toModelFrequency(d.Frequency),
		NextDueDate: d.NextDueDate,
		Taxable:     d.Taxable,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainIncome(m models.Income) domain.Income {
	return domain.Income{
		IncomeID:    m.IncomeID,
		UserID:      m.UserID,
		Source:      m.Source,
		Description: m.Description,
		Category:    domain.IncomeCategory(m.Category),
		MoneyRecord: domain.MoneyRecord{
			Amount:      m.Amount,
			Currency:    domain.Currency(m.Currency),
			Date:        m.Date,
			IsRecurring: m.IsRecurring,
			Frequency:   toDomainFrequency(m.Frequency),
			NextDueDate: m.NextDueDate,
		},
		Taxable:     m.Taxable,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainIncomes(ms []models.Income) []domain.Income {
	out := make([]domain.Income, len(ms))
	for i, m := range ms {
		out[i] = ToDomainIncome(m)
	}
	return out
}
