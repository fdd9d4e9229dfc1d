package entity

import (
	"errors"
	"fmt"
)

// Kind identifies one of the record types that share the soft-delete
// contract. The set is closed: unknown values must be rejected where they
// are parsed, never silently passed down to the store.
type Kind string

const (
	KindClient      Kind = "client"
	KindDocument    Kind = "document"
	KindExpense     Kind = "expense"
	KindTrip        Kind = "trip"
	KindUser        Kind = "user"
	KindVehicle     Kind = "vehicle"
	KindInvoice     Kind = "invoice"
	KindWeighbridge Kind = "weighbridge"
)

var ErrUnknownKind = errors.New("unknown entity kind")

// SoftDeleteRule describes how a registered kind participates in soft
// delete: which table holds it and which column marks deletion.
type SoftDeleteRule struct {
	Table          string
	DeletionColumn string
}

var softDeleteRegistry = map[Kind]SoftDeleteRule{
	KindClient:      {Table: "clients", DeletionColumn: "deleted_at"},
	KindDocument:    {Table: "documents", DeletionColumn: "deleted_at"},
	KindExpense:     {Table: "expenses", DeletionColumn: "deleted_at"},
	KindTrip:        {Table: "trips", DeletionColumn: "deleted_at"},
	KindUser:        {Table: "users", DeletionColumn: "deleted_at"},
	KindVehicle:     {Table: "vehicles", DeletionColumn: "deleted_at"},
	KindInvoice:     {Table: "invoices", DeletionColumn: "deleted_at"},
	KindWeighbridge: {Table: "weighbridges", DeletionColumn: "deleted_at"},
}

// ParseKind converts a wire value into a Kind. Callers must parse at the
// boundary and treat an error as caller input error.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if _, ok := softDeleteRegistry[k]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
	return k, nil
}

// Rule returns the soft-delete rule for a kind. Asking for an unregistered
// kind is a configuration error and fails loudly.
func (k Kind) Rule() (SoftDeleteRule, error) {
	rule, ok := softDeleteRegistry[k]
	if !ok {
		return SoftDeleteRule{}, fmt.Errorf("%w: %q", ErrUnknownKind, string(k))
	}
	return rule, nil
}

// MustRule is Rule for kinds known at compile time (repository wiring).
func (k Kind) MustRule() SoftDeleteRule {
	rule, err := k.Rule()
	if err != nil {
		panic(err)
	}
	return rule
}

// Label returns the human-readable name used in API messages,
// e.g. "Client not found".
func (k Kind) Label() string {
	switch k {
	case KindClient:
		return "Client"
	case KindDocument:
		return "Document"
	case KindExpense:
		return "Expense"
	case KindTrip:
		return "Trip"
	case KindUser:
		return "User"
	case KindVehicle:
		return "Vehicle"
	case KindInvoice:
		return "Invoice"
	case KindWeighbridge:
		return "Weighbridge"
	default:
		return string(k)
	}
}

// Kinds returns every registered kind in stable order.
func Kinds() []Kind {
	return []Kind{
		KindClient,
		KindDocument,
		KindExpense,
		KindTrip,
		KindUser,
		KindVehicle,
		KindInvoice,
		KindWeighbridge,
	}
}
