package engine_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"frontdesk/internal/domains/event/classifier"
	"frontdesk/internal/domains/event/model"
	"frontdesk/internal/domains/occupancy/engine"
	roomModel "frontdesk/internal/domains/room/model"
	gModel "frontdesk/shared/model"
)

var now = time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC)

func makeEvent(t *testing.T, id, root, kind, status string, createdAt time.Time, payload string) classifier.Record {
	t.Helper()

	ev := model.OperationalEvent{
		ID:            id,
		LineageRootID: root,
		VersionNo:     1,
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

func room(id, number string) roomModel.Room {
	return roomModel.Room{ID: id, RoomNumber: number, RoomType: "standard", Active: true}
}

func approved(t *testing.T, id, root, kind, payload string) classifier.Record {
	t.Helper()

	return makeEvent(t, id, root, kind, model.StatusApproved, now.Add(-24*time.Hour), payload)
}

func coveringBooking(t *testing.T, roomID string) classifier.Record {
	t.Helper()

	return approved(t, "ev-bk-"+roomID, "root-"+roomID, model.KindBooking,
		`{"room_id": "`+roomID+`", "guest_name": "Alice", "check_in": "2026-03-01T14:00:00Z", "check_out": "2026-03-04T12:00:00Z", "rate_per_night": "100000", "nights": 3}`)
}

func statusOf(t *testing.T, statuses []engine.RoomStatus, roomID string) engine.RoomStatus {
	t.Helper()

	for _, s := range statuses {
		if s.RoomID == roomID {
			return s
		}
	}

	t.Fatalf("room %s not in derivation output", roomID)

	return engine.RoomStatus{}
}

func TestDeriveRoomStatuses_Cascade(t *testing.T) {
	rooms := []roomModel.Room{
		room("room-101", "101"),
		room("room-102", "102"),
		room("room-103", "103"),
		room("room-104", "104"),
		room("room-105", "105"),
	}

	records := []classifier.Record{
		coveringBooking(t, "room-101"),
		approved(t, "ev-res", "root-res", model.KindReservation,
			`{"room_id": "room-102", "guest_name": "Bob", "start": "2026-03-02T14:00:00Z", "end": "2026-03-05T12:00:00Z"}`),
		approved(t, "ev-hk-1", "root-hk-1", model.KindHousekeeping,
			`{"room_id": "room-103", "condition": "dirty", "reported_at": "2026-03-02T10:00:00Z"}`),
		approved(t, "ev-hk-2", "root-hk-2", model.KindHousekeeping,
			`{"room_id": "room-104", "condition": "maintenance", "reported_at": "2026-03-02T10:00:00Z"}`),
	}

	statuses := engine.DeriveRoomStatuses(engine.Snapshot{Rooms: rooms, Records: records}, now)

	assert.Len(t, statuses, 5)

	occupied := statusOf(t, statuses, "room-101")
	assert.Equal(t, engine.StatusOccupied, occupied.Status)
	assert.Equal(t, "Alice", occupied.CurrentGuest)
	assert.NotNil(t, occupied.CheckOutDate)
	assert.Equal(t, time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC), *occupied.CheckOutDate)

	reserved := statusOf(t, statuses, "room-102")
	assert.Equal(t, engine.StatusReserved, reserved.Status)
	assert.Equal(t, "Bob", reserved.CurrentGuest)

	assert.Equal(t, engine.StatusCleaning, statusOf(t, statuses, "room-103").Status)
	assert.Equal(t, engine.StatusMaintenance, statusOf(t, statuses, "room-104").Status)
	assert.Equal(t, engine.StatusAvailable, statusOf(t, statuses, "room-105").Status)
}

func TestDeriveRoomStatuses_StayOutranksReservationAndHousekeeping(t *testing.T) {
	rooms := []roomModel.Room{room("room-101", "101")}

	records := []classifier.Record{
		coveringBooking(t, "room-101"),
		approved(t, "ev-res", "root-res", model.KindReservation,
			`{"room_id": "room-101", "guest_name": "Bob", "start": "2026-03-02T14:00:00Z", "end": "2026-03-05T12:00:00Z"}`),
		approved(t, "ev-hk", "root-hk", model.KindHousekeeping,
			`{"room_id": "room-101", "condition": "dirty", "reported_at": "2026-03-02T10:00:00Z"}`),
	}

	statuses := engine.DeriveRoomStatuses(engine.Snapshot{Rooms: rooms, Records: records}, now)

	status := statusOf(t, statuses, "room-101")
	assert.Equal(t, engine.StatusOccupied, status.Status)
	assert.Equal(t, engine.HousekeepingDirty, status.HousekeepingStatus)
}

func TestDeriveRoomStatuses_ExtensionKeepsRoomOccupied(t *testing.T) {
	rooms := []roomModel.Room{room("room-101", "101")}

	// The original window ended at noon today; the approved extension keeps
	// the guest in house.
	records := []classifier.Record{
		approved(t, "ev-bk", "root-bk", model.KindBooking,
			`{"room_id": "room-101", "guest_name": "Alice", "check_in": "2026-03-01T14:00:00Z", "check_out": "2026-03-02T12:00:00Z", "rate_per_night": "100000", "nights": 1}`),
		approved(t, "ev-ext", "root-bk", model.KindExtension,
			`{"booking_id": "ev-bk", "new_check_out": "2026-03-06T12:00:00Z"}`),
	}

	statuses := engine.DeriveRoomStatuses(engine.Snapshot{Rooms: rooms, Records: records}, now)

	status := statusOf(t, statuses, "room-101")
	assert.Equal(t, engine.StatusOccupied, status.Status)
	assert.Equal(t, time.Date(2026, 3, 6, 12, 0, 0, 0, time.UTC), *status.CheckOutDate)
}

func TestDeriveRoomStatuses_CheckedOutStayReleasesRoom(t *testing.T) {
	rooms := []roomModel.Room{room("room-101", "101")}

	records := []classifier.Record{
		coveringBooking(t, "room-101"),
		approved(t, "ev-co", "root-room-101", model.KindCheckout,
			`{"booking_id": "ev-bk-room-101", "checked_out_at": "2026-03-02T11:00:00Z", "total_charges": "300000"}`),
	}

	statuses := engine.DeriveRoomStatuses(engine.Snapshot{Rooms: rooms, Records: records}, now)

	assert.Equal(t, engine.StatusAvailable, statusOf(t, statuses, "room-101").Status)
}

func TestDeriveRoomStatuses_InterruptedStay(t *testing.T) {
	rooms := []roomModel.Room{room("room-101", "101")}

	records := []classifier.Record{
		coveringBooking(t, "room-101"),
		approved(t, "ev-int", "root-room-101", model.KindInterruption,
			`{"booking_id": "ev-bk-room-101", "interruption_date": "2026-03-02T08:00:00Z", "reason": "burst pipe"}`),
	}

	statuses := engine.DeriveRoomStatuses(engine.Snapshot{Rooms: rooms, Records: records}, now)

	status := statusOf(t, statuses, "room-101")
	assert.Equal(t, engine.StatusAvailable, status.Status)
	assert.True(t, status.Interrupted)
	assert.Empty(t, status.CurrentGuest)
}

func TestDeriveRoomStatuses_InterruptionExpiresWithWindow(t *testing.T) {
	rooms := []roomModel.Room{room("room-101", "101")}

	// The booking would have ended 2026-02-28, before now; its interruption
	// no longer marks the room once the original window has passed.
	records := []classifier.Record{
		approved(t, "ev-bk-old", "root-old", model.KindBooking,
			`{"room_id": "room-101", "guest_name": "Bob", "check_in": "2026-02-24T14:00:00Z", "check_out": "2026-02-28T12:00:00Z", "rate_per_night": "100000", "nights": 4}`),
		approved(t, "ev-int-old", "root-old", model.KindInterruption,
			`{"booking_id": "ev-bk-old", "interruption_date": "2026-02-26T08:00:00Z", "reason": "burst pipe"}`),
	}

	statuses := engine.DeriveRoomStatuses(engine.Snapshot{Rooms: rooms, Records: records}, now)

	status := statusOf(t, statuses, "room-101")
	assert.Equal(t, engine.StatusAvailable, status.Status)
	assert.False(t, status.Interrupted)
}

func TestDeriveRoomStatuses_PendingResumption(t *testing.T) {
	rooms := []roomModel.Room{room("room-101", "101"), room("room-102", "102")}

	credit := `{"booking_id": "ev-bk-x", "room_id": "room-101", "credit_remaining": "150000", "can_resume": true}`

	t.Run("open credit flags the room", func(t *testing.T) {
		records := []classifier.Record{
			approved(t, "ev-cr", "root-cr", model.KindInterruptionCredit, credit),
		}

		statuses := engine.DeriveRoomStatuses(engine.Snapshot{Rooms: rooms, Records: records}, now)

		assert.True(t, statusOf(t, statuses, "room-101").PendingResumption)
		assert.False(t, statusOf(t, statuses, "room-102").PendingResumption)
	})

	t.Run("credit consumed by a resume booking clears the flag", func(t *testing.T) {
		records := []classifier.Record{
			approved(t, "ev-cr", "root-cr", model.KindInterruptionCredit, credit),
			approved(t, "ev-bk-2", "root-bk-2", model.KindBooking,
				`{"room_id": "room-102", "guest_name": "Alice", "check_in": "2026-03-05T14:00:00Z", "check_out": "2026-03-07T12:00:00Z", "credit_id": "ev-cr"}`),
		}

		statuses := engine.DeriveRoomStatuses(engine.Snapshot{Rooms: rooms, Records: records}, now)

		assert.False(t, statusOf(t, statuses, "room-101").PendingResumption)
	})

	t.Run("credit consumed by a refund clears the flag", func(t *testing.T) {
		records := []classifier.Record{
			approved(t, "ev-cr", "root-cr", model.KindInterruptionCredit, credit),
			approved(t, "ev-rf", "root-rf", model.KindRefund,
				`{"booking_id": "ev-bk-x", "amount": "150000", "credit_id": "ev-cr"}`),
		}

		statuses := engine.DeriveRoomStatuses(engine.Snapshot{Rooms: rooms, Records: records}, now)

		assert.False(t, statusOf(t, statuses, "room-101").PendingResumption)
	})

	t.Run("exhausted credit does not flag", func(t *testing.T) {
		records := []classifier.Record{
			approved(t, "ev-cr", "root-cr", model.KindInterruptionCredit,
				`{"booking_id": "ev-bk-x", "room_id": "room-101", "credit_remaining": "0", "can_resume": true}`),
		}

		statuses := engine.DeriveRoomStatuses(engine.Snapshot{Rooms: rooms, Records: records}, now)

		assert.False(t, statusOf(t, statuses, "room-101").PendingResumption)
	})
}

func TestDeriveRoomStatuses_UpcomingReservation(t *testing.T) {
	rooms := []roomModel.Room{room("room-101", "101")}

	records := []classifier.Record{
		approved(t, "ev-res-2", "root-res-2", model.KindReservation,
			`{"room_id": "room-101", "guest_name": "Carol", "start": "2026-03-10T14:00:00Z", "end": "2026-03-12T12:00:00Z"}`),
		approved(t, "ev-res-1", "root-res-1", model.KindReservation,
			`{"room_id": "room-101", "guest_name": "Bob", "start": "2026-03-05T14:00:00Z", "end": "2026-03-07T12:00:00Z"}`),
	}

	statuses := engine.DeriveRoomStatuses(engine.Snapshot{Rooms: rooms, Records: records}, now)

	status := statusOf(t, statuses, "room-101")
	assert.Equal(t, engine.StatusAvailable, status.Status)
	assert.NotNil(t, status.UpcomingReservation)
	assert.Equal(t, "Bob", status.UpcomingReservation.GuestName)
	assert.Equal(t, "ev-res-1", status.UpcomingReservation.ID)
}

func TestDeriveRoomStatuses_LatestHousekeepingReportWins(t *testing.T) {
	rooms := []roomModel.Room{room("room-101", "101")}

	records := []classifier.Record{
		approved(t, "ev-hk-1", "root-hk-1", model.KindHousekeeping,
			`{"room_id": "room-101", "condition": "dirty", "reported_at": "2026-03-02T08:00:00Z"}`),
		approved(t, "ev-hk-2", "root-hk-2", model.KindHousekeeping,
			`{"room_id": "room-101", "condition": "cleaned", "reported_at": "2026-03-02T12:00:00Z"}`),
	}

	statuses := engine.DeriveRoomStatuses(engine.Snapshot{Rooms: rooms, Records: records}, now)

	status := statusOf(t, statuses, "room-101")
	assert.Equal(t, engine.StatusAvailable, status.Status)
	assert.Equal(t, engine.HousekeepingClean, status.HousekeepingStatus)
}
