package engine_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"frontdesk/internal/domains/event/classifier"
	"frontdesk/internal/domains/event/model"
	"frontdesk/internal/domains/stay/engine"
	gModel "frontdesk/shared/model"
)

func makeEvent(t *testing.T, id, root, kind, status string, version int, createdAt time.Time, payload string) classifier.Record {
	t.Helper()

	ev := model.OperationalEvent{
		ID:            id,
		LineageRootID: root,
		VersionNo:     version,
		EntityKind:    kind,
		Status:        status,
		Payload:       json.RawMessage(payload),
		Metadata: gModel.Metadata{
			CreatedAt: createdAt,
		},
	}

	rec, err := classifier.Classify(ev)
	assert.NoError(t, err)

	return rec
}

func bookingPayload(roomID, checkIn, checkOut string) string {
	return `{"room_id": "` + roomID + `", "guest_name": "Alice", "check_in": "` + checkIn + `", "check_out": "` + checkOut + `", "rate_per_night": "100000", "nights": 3}`
}

func TestBuildLineages_WinnerIndependentOfOrder(t *testing.T) {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	v1 := makeEvent(t, "ev-1", "root-a", model.KindBooking, model.StatusApproved, 1, base,
		bookingPayload("room-101", "2026-03-01T14:00:00Z", "2026-03-04T12:00:00Z"))
	v2 := makeEvent(t, "ev-2", "root-a", model.KindBooking, model.StatusApproved, 2, base.Add(time.Hour),
		bookingPayload("room-102", "2026-03-01T14:00:00Z", "2026-03-04T12:00:00Z"))

	orderings := [][]classifier.Record{
		{v1, v2},
		{v2, v1},
	}

	for _, records := range orderings {
		lineages := engine.BuildLineages(records)

		assert.Len(t, lineages, 1)
		assert.Equal(t, "root-a", lineages[0].Root)
		assert.Equal(t, "ev-2", lineages[0].Booking.Source().ID)
		assert.Equal(t, "room-102", lineages[0].Booking.RoomID)
	}
}

func TestBuildLineages_TiesBreakOnCreatedAtThenID(t *testing.T) {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	older := makeEvent(t, "ev-1", "root-a", model.KindBooking, model.StatusApproved, 2, base,
		bookingPayload("room-101", "2026-03-01T14:00:00Z", "2026-03-04T12:00:00Z"))
	newer := makeEvent(t, "ev-2", "root-a", model.KindBooking, model.StatusApproved, 2, base.Add(time.Minute),
		bookingPayload("room-102", "2026-03-01T14:00:00Z", "2026-03-04T12:00:00Z"))

	lineages := engine.BuildLineages([]classifier.Record{newer, older})

	assert.Len(t, lineages, 1)
	assert.Equal(t, "ev-2", lineages[0].Booking.Source().ID)
}

func TestBuildLineages_AttachesByRootAndBookingRef(t *testing.T) {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	booking := makeEvent(t, "ev-1", "root-a", model.KindBooking, model.StatusApproved, 1, base,
		bookingPayload("room-101", "2026-03-01T14:00:00Z", "2026-03-04T12:00:00Z"))
	sameRoot := makeEvent(t, "ev-2", "root-a", model.KindExtension, model.StatusApproved, 1, base.Add(time.Hour),
		`{"booking_id": "ev-1", "new_check_out": "2026-03-06T12:00:00Z"}`)

	// Recorded on its own lineage; only the payload's booking_id ties it back.
	ownRoot := makeEvent(t, "ev-3", "root-b", model.KindPayment, model.StatusApproved, 1, base.Add(2*time.Hour),
		`{"booking_id": "ev-1", "amount": "50000"}`)

	lineages := engine.BuildLineages([]classifier.Record{ownRoot, sameRoot, booking})

	assert.Len(t, lineages, 1)
	assert.Len(t, lineages[0].Extensions, 1)
	assert.Len(t, lineages[0].Payments, 1)
	assert.Equal(t, "ev-3", lineages[0].Payments[0].Source().ID)
}

func TestBuildLineages_FiltersByStatusAndDeletion(t *testing.T) {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	deletedAt := base.Add(time.Hour)

	booking := makeEvent(t, "ev-1", "root-a", model.KindBooking, model.StatusApproved, 1, base,
		bookingPayload("room-101", "2026-03-01T14:00:00Z", "2026-03-04T12:00:00Z"))
	pending := makeEvent(t, "ev-2", "root-b", model.KindBooking, model.StatusPending, 1, base,
		bookingPayload("room-102", "2026-03-01T14:00:00Z", "2026-03-04T12:00:00Z"))

	deletedEvent := model.OperationalEvent{
		ID:            "ev-3",
		LineageRootID: "root-a",
		VersionNo:     1,
		EntityKind:    model.KindPayment,
		Status:        model.StatusApproved,
		Payload:       json.RawMessage(`{"booking_id": "ev-1", "amount": "50000"}`),
		DeletedAt:     &deletedAt,
		Metadata:      gModel.Metadata{CreatedAt: base},
	}
	deleted, err := classifier.Classify(deletedEvent)
	assert.NoError(t, err)

	// Converted credits stay in the lineage; any other converted kind drops out.
	convertedCredit := makeEvent(t, "ev-4", "root-a", model.KindInterruptionCredit, model.StatusConverted, 1, base,
		`{"booking_id": "ev-1", "room_id": "room-101", "credit_remaining": "20000", "can_resume": true}`)

	lineages := engine.BuildLineages([]classifier.Record{booking, pending, deleted, convertedCredit})

	assert.Len(t, lineages, 1)
	assert.Equal(t, "root-a", lineages[0].Root)
	assert.Empty(t, lineages[0].Payments)
	assert.Len(t, lineages[0].Credits, 1)
}

func TestLineage_CheckedOut(t *testing.T) {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	booking := makeEvent(t, "ev-1", "root-a", model.KindBooking, model.StatusApproved, 1, base,
		bookingPayload("room-101", "2026-03-01T14:00:00Z", "2026-03-04T12:00:00Z"))
	checkout := makeEvent(t, "ev-2", "root-a", model.KindCheckout, model.StatusApproved, 1, base.Add(time.Hour),
		`{"booking_id": "ev-1", "checked_out_at": "2026-03-04T11:00:00Z", "total_charges": "300000", "total_payments": "300000"}`)

	open := engine.BuildLineages([]classifier.Record{booking})
	closed := engine.BuildLineages([]classifier.Record{booking, checkout})

	assert.False(t, open[0].CheckedOut())
	assert.True(t, closed[0].CheckedOut())
}
