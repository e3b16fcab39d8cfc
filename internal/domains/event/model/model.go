package model

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"frontdesk/shared/model"
)

const (
	TableName  = "operational_events"
	EntityName = "event"

	FieldID              = "id"
	FieldLineageRootID   = "lineage_root_id"
	FieldVersionNo       = "version_no"
	FieldEntityKind      = "entity_kind"
	FieldPayload         = "payload"
	FieldStatus          = "status"
	FieldSubmittedBy     = "submitted_by"
	FieldFinancialAmount = "financial_amount"
	FieldDeletedAt       = "deleted_at"
)

const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusCancelled = "cancelled"
	StatusExpired   = "expired"
	StatusConverted = "converted"
)

const (
	KindBooking            = "booking"
	KindExtension          = "extension"
	KindTransfer           = "transfer"
	KindInterruption       = "interruption"
	KindInterruptionCredit = "interruption_credit"
	KindCheckout           = "checkout"
	KindReservation        = "reservation"
	KindHousekeeping       = "housekeeping"
	KindPayment            = "payment"
	KindPenalty            = "penalty"
	KindDiscount           = "discount"
	KindRefund             = "refund"
	KindCancellation       = "cancellation"
	KindCategory           = "category"
	KindCollection         = "collection"
	KindItem               = "item"
	KindStock              = "stock"
)

// OperationalEvent is one immutable record in the append-only business log.
// Rows are never updated in place except by status transitions and soft
// deletion; corrections append a new version on the same lineage root.
type OperationalEvent struct {
	ID              string          `db:"id"`
	LineageRootID   string          `db:"lineage_root_id"`
	VersionNo       int             `db:"version_no"`
	EntityKind      string          `db:"entity_kind"`
	Payload         json.RawMessage `db:"payload"`
	Status          string          `db:"status"`
	SubmittedBy     string          `db:"submitted_by"`
	FinancialAmount decimal.Decimal `db:"financial_amount"`
	DeletedAt       *time.Time      `db:"deleted_at"`
	model.Metadata
}

// Root returns the lineage grouping key, falling back to the event id for
// events recorded before lineage roots were tracked.
func (e OperationalEvent) Root() string {
	if e.LineageRootID != "" {
		return e.LineageRootID
	}

	return e.ID
}

// Live reports whether the event participates in derivations.
func (e OperationalEvent) Live() bool {
	return e.DeletedAt == nil
}

// Supersedes reports whether e is the newer version within a lineage: greater
// version_no, ties by created_at, then by id so the ordering is total.
func (e OperationalEvent) Supersedes(other OperationalEvent) bool {
	if e.VersionNo != other.VersionNo {
		return e.VersionNo > other.VersionNo
	}

	if !e.CreatedAt.Equal(other.CreatedAt) {
		return e.CreatedAt.After(other.CreatedAt)
	}

	return e.ID > other.ID
}
