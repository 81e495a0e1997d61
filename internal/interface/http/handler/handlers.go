package handler

import (
	"github.com/udhari/ledger-service/internal/application/service"
	"go.uber.org/zap"
)

type Handlers struct {
	Ledger *LedgerHandler
}

func NewHandlers(ledger *service.LedgerService, logger *zap.Logger) *Handlers {
	return &Handlers{
		Ledger: NewLedgerHandler(ledger, logger),
	}
}
