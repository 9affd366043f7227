package mapping

import (
	"github.com/SscSPs/life_management_app/internal/core/domain"
	"github.com/SscSPs/life_management_app/internal/models"
)

func ToModelUser(d domain.User) models.User {
	var currency *string
	if d.DefaultCurrency != nil {
		c := string(*d.DefaultCurrency)
		currency = &c
	}
	return models.User{
		UserID:          d.UserID,
		Username:        d.Username,
		Email:           d.Email,
		Name:            d.Name,
		PasswordHash:    nullableString(d.PasswordHash),
		AuthProvider:    string(d.AuthProvider),
		ProviderUserID:  nullableString(d.ProviderUserID),
		DefaultCurrency: currency,
		AuditFields:     ToModelAuditFields(d.AuditFields),
		DeletedAt:       d.DeletedAt,
	}
}

func ToDomainUser(m models.User) domain.User {
	var currency *domain.Currency
	if m.DefaultCurrency != nil {
		c := domain.Currency(*m.DefaultCurrency)
		currency = &c
	}
	return domain.User{
		UserID:          m.UserID,
		Username:        m.Username,
		Email:           m.Email,
		Name:            m.Name,
		PasswordHash:    derefString(m.PasswordHash),
		AuthProvider:    domain.AuthProvider(m.AuthProvider),
		ProviderUserID:  derefString(m.ProviderUserID),
		DefaultCurrency: currency,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
		DeletedAt:       m.DeletedAt,
	}
}
