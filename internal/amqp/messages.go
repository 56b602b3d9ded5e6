package amqp

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"spendboard/internal/core"
)

// ExpenseRecordedMessage announces that one expense record was durably
// appended. Consumers treat it as a nudge to refresh derived views; the
// record payload is carried so consumers without store access can still
// react.
type ExpenseRecordedMessage struct {
	MessageID   string    `json:"message_id"`
	RowRef      string    `json:"row_ref"`
	Payer       string    `json:"payer"`
	AmountCents int64     `json:"amount_cents"`
	Date        string    `json:"date"`
	Method      string    `json:"payment_method"`
	Category    string    `json:"category,omitempty"`
	CardType    string    `json:"card_type,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// NewExpenseRecordedMessage builds the message for an appended record.
func NewExpenseRecordedMessage(rowRef string, rec core.ExpenseRecord) *ExpenseRecordedMessage {
	return &ExpenseRecordedMessage{
		MessageID:   uuid.New().String(),
		RowRef:      rowRef,
		Payer:       rec.Payer,
		AmountCents: rec.Amount.Cents,
		Date:        rec.Date.String(),
		Method:      string(rec.Method),
		Category:    rec.Category,
		CardType:    rec.CardType,
		Timestamp:   time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *ExpenseRecordedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ExpenseRecordedMessageFromJSON parses a message from JSON bytes.
func ExpenseRecordedMessageFromJSON(data []byte) (*ExpenseRecordedMessage, error) {
	var msg ExpenseRecordedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
