package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"frontdesk/internal/domains/event/classifier"
	"frontdesk/internal/domains/event/model"
	"frontdesk/internal/domains/stay/engine"
)

func TestOverlaps(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC) }

	tests := []struct {
		name string
		s1   time.Time
		e1   time.Time
		s2   time.Time
		e2   time.Time
		want bool
	}{
		{name: "nested", s1: day(2), e1: day(3), s2: day(1), e2: day(5), want: true},
		{name: "partial overlap", s1: day(1), e1: day(3), s2: day(2), e2: day(5), want: true},
		{name: "touching boundaries", s1: day(1), e1: day(3), s2: day(3), e2: day(5), want: false},
		{name: "disjoint", s1: day(1), e1: day(2), s2: day(4), e2: day(5), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, engine.Overlaps(tt.s1, tt.e1, tt.s2, tt.e2))
			assert.Equal(t, tt.want, engine.Overlaps(tt.s2, tt.e2, tt.s1, tt.e1))
		})
	}
}

func TestCheckWindow(t *testing.T) {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	booking := makeEvent(t, "ev-1", "root-a", model.KindBooking, model.StatusApproved, 1, base,
		bookingPayload("room-101", "2026-03-01T14:00:00Z", "2026-03-04T12:00:00Z"))
	lineages := engine.BuildLineages([]classifier.Record{booking})

	resRec := makeEvent(t, "ev-2", "root-b", model.KindReservation, model.StatusApproved, 1, base,
		`{"room_id": "room-102", "guest_name": "Bob", "start": "2026-03-05T14:00:00Z", "end": "2026-03-07T12:00:00Z"}`)
	reservations := []classifier.Reservation{resRec.(classifier.Reservation)}

	day := func(d, h int) time.Time { return time.Date(2026, 3, d, h, 0, 0, 0, time.UTC) }

	t.Run("conflicts with occupied segment", func(t *testing.T) {
		conflict := engine.CheckWindow("room-101", day(3, 14), day(6, 12), lineages, reservations, "")

		assert.NotNil(t, conflict)
		assert.Equal(t, model.KindBooking, conflict.Kind)
		assert.Equal(t, "ev-1", conflict.ID)
	})

	t.Run("conflicts with reservation", func(t *testing.T) {
		conflict := engine.CheckWindow("room-102", day(6, 0), day(8, 0), lineages, reservations, "")

		assert.NotNil(t, conflict)
		assert.Equal(t, model.KindReservation, conflict.Kind)
		assert.Equal(t, "ev-2", conflict.ID)
	})

	t.Run("excluded lineage never blocks itself", func(t *testing.T) {
		conflict := engine.CheckWindow("room-101", day(3, 14), day(6, 12), lineages, reservations, "root-a")

		assert.Nil(t, conflict)
	})

	t.Run("checked-out stay releases the room", func(t *testing.T) {
		checkout := makeEvent(t, "ev-3", "root-a", model.KindCheckout, model.StatusApproved, 1, base.Add(time.Hour),
			`{"booking_id": "ev-1", "checked_out_at": "2026-03-02T11:00:00Z"}`)
		closed := engine.BuildLineages([]classifier.Record{booking, checkout})

		conflict := engine.CheckWindow("room-101", day(3, 14), day(6, 12), closed, nil, "")

		assert.Nil(t, conflict)
	})

	t.Run("other room is free", func(t *testing.T) {
		conflict := engine.CheckWindow("room-103", day(1, 14), day(8, 12), lineages, reservations, "")

		assert.Nil(t, conflict)
	})

	t.Run("window touching the segment boundary is free", func(t *testing.T) {
		conflict := engine.CheckWindow("room-101", day(4, 12), day(6, 12), lineages, nil, "")

		assert.Nil(t, conflict)
	})
}

func TestConflict_Failure(t *testing.T) {
	conflict := engine.Conflict{
		Kind:   model.KindBooking,
		ID:     "ev-1",
		RoomID: "room-101",
		Start:  time.Date(2026, 3, 1, 14, 0, 0, 0, time.UTC),
		End:    time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC),
	}

	err := conflict.Failure()

	assert.Error(t, err)
	assert.ErrorContains(t, err, "2026-03-01 to 2026-03-04")
}
