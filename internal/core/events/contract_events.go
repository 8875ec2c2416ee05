package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
)

const ContractSigned = "contract.signed"

// ContractSignedEvent is announced when a contract moves from unsigned to signed.
type ContractSignedEvent struct {
	Header
	ContractID  int64           `json:"contract_id"`
	ClientID    int64           `json:"client_id"`
	SignedBy    int64           `json:"signed_by"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

func NewContractSignedEvent(contractID, clientID, signedBy int64, total decimal.Decimal) *ContractSignedEvent {
	return &ContractSignedEvent{
		Header:      newHeader(ContractSigned, time.Now()),
		ContractID:  contractID,
		ClientID:    clientID,
		SignedBy:    signedBy,
		TotalAmount: total,
	}
}

func (e *ContractSignedEvent) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("contract_id", e.ContractID),
		slog.Int64("client_id", e.ClientID),
		slog.Int64("signed_by", e.SignedBy),
		slog.String("total_amount", e.TotalAmount.StringFixed(2)),
	)
}

// LogSink records published events as structured log lines.
func LogSink(logger *slog.Logger) Handler {
	return func(ctx context.Context, event Event) error {
		logger.InfoContext(ctx, "domain event",
			"event", event.Name(),
			"event_id", event.ID(),
			"occurred_at", event.OccurredAt(),
			"payload", event)
		return nil
	}
}
