package services

import (
	"time"

	"github.com/SscSPs/life_management_app/internal/apperrors"
	"github.com/SscSPs/life_management_app/internal/core/domain"
	"github.com/SscSPs/life_management_app/internal/core/finance"
	"github.com/SscSPs/life_management_app/internal/dto"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

func normalizeLimit(limit int) int {
	switch {
	case limit <= 0:
		return defaultListLimit
	case limit > maxListLimit:
		return maxListLimit
	default:
		return limit
	}
}

// summaryFilter turns query parameters into an aggregation filter. The end
// date covers the whole of that day.
func summaryFilter(params dto.SummaryParams) (finance.Filter, error) {
	var f finance.Filter
	if params.StartDate != nil {
		start := *params.StartDate
		f.Start = &start
	}
	if params.EndDate != nil {
		end := params.EndDate.AddDate(0, 0, 1).Add(-time.Nanosecond)
		f.End = &end
	}
	if f.Start != nil && f.End != nil && f.End.Before(*f.Start) {
		return finance.Filter{}, apperrors.NewValidationError("endDate must not be before startDate")
	}
	if params.Currency != nil && *params.Currency != "" {
		c, err := domain.ParseCurrency(*params.Currency)
		if err != nil {
			return finance.Filter{}, err
		}
		f.Currency = &c
	}
	return f, nil
}

// optionalCurrency parses an optional currency query parameter.
func optionalCurrency(code *string) (*domain.Currency, error) {
	if code == nil || *code == "" {
		return nil, nil
	}
	c, err := domain.ParseCurrency(*code)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
