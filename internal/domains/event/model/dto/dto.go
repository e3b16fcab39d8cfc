package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"frontdesk/internal/domains/event/model"
	"frontdesk/shared"
	gDto "frontdesk/shared/dto"
	gModel "frontdesk/shared/model"
	"frontdesk/shared/timezone"
)

type InsertEventRequest struct {
	EntityKind      string          `json:"entity_kind"      validate:"required,oneof=booking extension transfer interruption interruption_credit checkout reservation housekeeping payment penalty discount refund cancellation category collection item stock"`
	Payload         json.RawMessage `json:"payload"          validate:"required"`
	FinancialAmount decimal.Decimal `json:"financial_amount"`
	LineageRootID   string          `json:"lineage_root_id"  validate:"omitempty,uuid"`
}

func (r *InsertEventRequest) ToModel(user string) model.OperationalEvent {
	return model.OperationalEvent{
		ID:              uuid.NewString(),
		LineageRootID:   r.LineageRootID,
		VersionNo:       1,
		EntityKind:      r.EntityKind,
		Payload:         r.Payload,
		Status:          model.StatusPending,
		SubmittedBy:     user,
		FinancialAmount: r.FinancialAmount,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type EditEventRequest struct {
	Payload         json.RawMessage `json:"payload"          validate:"required"`
	FinancialAmount decimal.Decimal `json:"financial_amount"`
}

// ToVersionOf builds the next version of previous, sharing its lineage root.
func (r *EditEventRequest) ToVersionOf(previous model.OperationalEvent, user string) model.OperationalEvent {
	return model.OperationalEvent{
		ID:              uuid.NewString(),
		LineageRootID:   previous.Root(),
		VersionNo:       previous.VersionNo + 1,
		EntityKind:      previous.EntityKind,
		Payload:         r.Payload,
		Status:          previous.Status,
		SubmittedBy:     user,
		FinancialAmount: r.FinancialAmount,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type CreatedResponse struct {
	ID string `json:"id"`
}

type EventResponse struct {
	ID              string          `json:"id"`
	LineageRootID   string          `json:"lineage_root_id,omitempty"`
	VersionNo       int             `json:"version_no"`
	EntityKind      string          `json:"entity_kind"`
	Payload         json.RawMessage `json:"payload"`
	Status          string          `json:"status"`
	SubmittedBy     string          `json:"submitted_by"`
	FinancialAmount decimal.Decimal `json:"financial_amount"`
	DeletedAt       *time.Time      `json:"deleted_at,omitempty"`
	gDto.Metadata
}

func (r *EventResponse) FromModel(model model.OperationalEvent) {
	r.ID = model.ID
	r.LineageRootID = model.LineageRootID
	r.VersionNo = model.VersionNo
	r.EntityKind = model.EntityKind
	r.Payload = model.Payload
	r.Status = model.Status
	r.SubmittedBy = model.SubmittedBy
	r.FinancialAmount = model.FinancialAmount
	r.DeletedAt = model.DeletedAt
	r.Metadata.FromModel(model.Metadata)
}

type GetEventsResponse struct {
	Events    []EventResponse `json:"events"`
	TotalData int             `json:"total_data"`
	TotalPage int             `json:"total_page"`
}

func (r *GetEventsResponse) FromModels(models []model.OperationalEvent, totalData, limit int) {
	r.Events = make([]EventResponse, 0, len(models))

	for _, m := range models {
		res := EventResponse{}
		res.FromModel(m)
		r.Events = append(r.Events, res)
	}

	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)
}
