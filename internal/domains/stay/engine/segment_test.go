package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"frontdesk/internal/domains/event/classifier"
	"frontdesk/internal/domains/event/model"
	"frontdesk/internal/domains/stay/engine"
)

func buildLineage(t *testing.T, extras ...classifier.Record) engine.Lineage {
	t.Helper()

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	booking := makeEvent(t, "ev-1", "root-a", model.KindBooking, model.StatusApproved, 1, base,
		bookingPayload("room-101", "2026-03-01T14:00:00Z", "2026-03-04T12:00:00Z"))

	lineages := engine.BuildLineages(append([]classifier.Record{booking}, extras...))
	assert.Len(t, lineages, 1)

	return lineages[0]
}

func TestResolveSegment_OriginalWindow(t *testing.T) {
	seg := engine.ResolveSegment(buildLineage(t))

	assert.Equal(t, "room-101", seg.RoomID)
	assert.Equal(t, time.Date(2026, 3, 1, 14, 0, 0, 0, time.UTC), seg.CheckIn)
	assert.Equal(t, time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC), seg.CheckOut)
}

func TestResolveSegment_LatestExtensionWins(t *testing.T) {
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	first := makeEvent(t, "ev-2", "root-a", model.KindExtension, model.StatusApproved, 1, base,
		`{"booking_id": "ev-1", "new_check_out": "2026-03-06T12:00:00Z"}`)
	second := makeEvent(t, "ev-3", "root-a", model.KindExtension, model.StatusApproved, 1, base.Add(time.Hour),
		`{"booking_id": "ev-1", "new_check_out": "2026-03-08T12:00:00Z"}`)

	seg := engine.ResolveSegment(buildLineage(t, second, first))

	assert.Equal(t, time.Date(2026, 3, 8, 12, 0, 0, 0, time.UTC), seg.CheckOut)
}

func TestResolveSegment_TransferOverridesExtension(t *testing.T) {
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	ext := makeEvent(t, "ev-2", "root-a", model.KindExtension, model.StatusApproved, 1, base,
		`{"booking_id": "ev-1", "new_check_out": "2026-03-08T12:00:00Z"}`)
	transfer := makeEvent(t, "ev-3", "root-a", model.KindTransfer, model.StatusApproved, 1, base,
		`{"booking_id": "ev-1", "from_room_id": "room-101", "to_room_id": "room-102", "transfer_date": "2026-03-03T12:00:00Z"}`)

	seg := engine.ResolveSegment(buildLineage(t, ext, transfer))

	assert.Equal(t, time.Date(2026, 3, 3, 12, 0, 0, 0, time.UTC), seg.CheckOut)
}

func TestResolveSegment_InterruptionOverridesAll(t *testing.T) {
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	ext := makeEvent(t, "ev-2", "root-a", model.KindExtension, model.StatusApproved, 1, base,
		`{"booking_id": "ev-1", "new_check_out": "2026-03-08T12:00:00Z"}`)
	transfer := makeEvent(t, "ev-3", "root-a", model.KindTransfer, model.StatusApproved, 1, base,
		`{"booking_id": "ev-1", "from_room_id": "room-101", "to_room_id": "room-102", "transfer_date": "2026-03-03T12:00:00Z"}`)
	interruption := makeEvent(t, "ev-4", "root-a", model.KindInterruption, model.StatusApproved, 1, base,
		`{"booking_id": "ev-1", "interruption_date": "2026-03-02T12:00:00Z", "reason": "water damage"}`)

	seg := engine.ResolveSegment(buildLineage(t, ext, transfer, interruption))

	assert.Equal(t, time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC), seg.CheckOut)
}

func TestResolveSegment_IgnoresTerminalDatesBeforeCheckIn(t *testing.T) {
	// A transfer dated at the segment's check-in belongs to the superseded
	// pre-transfer booking and must not cap the new segment.
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	transfer := makeEvent(t, "ev-2", "root-a", model.KindTransfer, model.StatusApproved, 1, base,
		`{"booking_id": "ev-1", "from_room_id": "room-100", "to_room_id": "room-101", "transfer_date": "2026-03-01T14:00:00Z"}`)

	seg := engine.ResolveSegment(buildLineage(t, transfer))

	assert.Equal(t, time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC), seg.CheckOut)
}

func TestEffectiveStaySegment_Covers(t *testing.T) {
	seg := engine.EffectiveStaySegment{
		RoomID:   "room-101",
		CheckIn:  time.Date(2026, 3, 1, 14, 0, 0, 0, time.UTC),
		CheckOut: time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC),
	}

	assert.True(t, seg.Covers(seg.CheckIn))
	assert.True(t, seg.Covers(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)))
	assert.False(t, seg.Covers(seg.CheckOut))
	assert.False(t, seg.Covers(seg.CheckIn.Add(-time.Second)))
}
