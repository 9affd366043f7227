package messaging

import (
	"context"

	"github.com/SscSPs/life_management_app/internal/core/domain"
)

// LedgerEventPublisher emits expense ledger events to interested consumers.
type LedgerEventPublisher interface {
	PublishLedgerEvent(ctx context.Context, event domain.LedgerEvent) error
	Close() error
}
