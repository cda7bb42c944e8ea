package ledger

import (
	"github.com/akib4796/omnishop-manager-sub002/internal/domain/shared"
	"github.com/google/uuid"
)

// Counterparty is a customer or supplier the business trades with.
// The aging algorithm treats both symmetrically; only the category
// mapping of the chosen AgingDirection differs.
type Counterparty struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Phone string    `json:"phone,omitempty"`
}

// NewCounterparty creates a validated counterparty
func NewCounterparty(id uuid.UUID, name, phone string) (*Counterparty, error) {
	if id == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_COUNTERPARTY", "Counterparty ID cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_COUNTERPARTY_NAME", "Counterparty name cannot be empty")
	}
	return &Counterparty{ID: id, Name: name, Phone: phone}, nil
}
