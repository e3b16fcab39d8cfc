package engine

import (
	"time"
)

// EffectiveStaySegment is the stay window actually in force for one lineage
// after folding its extension, transfer and interruption events.
type EffectiveStaySegment struct {
	RoomID   string    `json:"room_id"`
	CheckIn  time.Time `json:"check_in"`
	CheckOut time.Time `json:"check_out"`
}

// ResolveSegment folds a lineage into its effective stay window. Three maxima
// are computed independently over the lineage; the effective check-out obeys
// the precedence interruption > transfer > extension > original. Transfer and
// interruption terminate the segment (the stay continues elsewhere or pauses),
// so they override rather than sum with a mere extension of the same segment.
// Only the latest date of each kind matters: two extension events landing on
// the same final date resolve to the same window.
func ResolveSegment(l Lineage) EffectiveStaySegment {
	seg := EffectiveStaySegment{
		RoomID:   l.Booking.RoomID,
		CheckIn:  l.Booking.CheckIn,
		CheckOut: l.Booking.CheckOut,
	}

	var latestExtension, latestTransfer, latestInterruption time.Time

	for _, ext := range l.Extensions {
		if ext.NewCheckOut.After(latestExtension) {
			latestExtension = ext.NewCheckOut
		}
	}

	for _, tr := range l.Transfers {
		if tr.TransferDate.After(latestTransfer) {
			latestTransfer = tr.TransferDate
		}
	}

	for _, in := range l.Interruptions {
		if in.InterruptionDate.After(latestInterruption) {
			latestInterruption = in.InterruptionDate
		}
	}

	// A terminal date at or before the segment's check-in belongs to a
	// superseded pre-transfer booking and must not cap the current segment.
	switch {
	case latestInterruption.After(seg.CheckIn):
		seg.CheckOut = latestInterruption
	case latestTransfer.After(seg.CheckIn):
		seg.CheckOut = latestTransfer
	case latestExtension.After(seg.CheckOut):
		seg.CheckOut = latestExtension
	}

	return seg
}

// Covers reports whether the segment window contains the instant, treating the
// window as half-open [check_in, check_out).
func (s EffectiveStaySegment) Covers(at time.Time) bool {
	return !at.Before(s.CheckIn) && at.Before(s.CheckOut)
}
