package engine

import (
	"time"

	"frontdesk/internal/domains/event/classifier"
	"frontdesk/internal/domains/event/model"
	"frontdesk/shared/constant"
	"frontdesk/shared/failure"
)

// Conflict names the record that blocked a candidate window. It is always
// returned in full so callers can tell the user what is in the way.
type Conflict struct {
	Kind   string
	ID     string
	RoomID string
	Start  time.Time
	End    time.Time
}

// Failure converts the conflict into the transport-facing error.
func (c Conflict) Failure() error {
	window := c.Start.Format(constant.DayFormat) + " to " + c.End.Format(constant.DayFormat)

	return failure.ConflictWith(c.Kind, c.ID, window)
}

// Overlaps is the half-open interval test: [s1,e1) and [s2,e2) conflict iff
// s1 < e2 && e1 > s2. Windows that merely touch at a boundary do not overlap.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && e1.After(s2)
}

// CheckWindow tests a candidate room/time window against every approved stay
// segment and reservation for that room. The lineage named by excludeRoot is
// skipped, so a stay never conflicts with itself when being extended or moved.
// This client-side check is an early exit only; the store's own constraints
// remain the final authority at write time.
func CheckWindow(roomID string, start, end time.Time, lineages []Lineage, reservations []classifier.Reservation, excludeRoot string) *Conflict {
	for _, lin := range lineages {
		if lin.Root == excludeRoot || lin.CheckedOut() {
			continue
		}

		seg := ResolveSegment(lin)
		if seg.RoomID != roomID {
			continue
		}

		if Overlaps(start, end, seg.CheckIn, seg.CheckOut) {
			return &Conflict{
				Kind:   model.KindBooking,
				ID:     lin.Booking.Source().ID,
				RoomID: seg.RoomID,
				Start:  seg.CheckIn,
				End:    seg.CheckOut,
			}
		}
	}

	for _, res := range reservations {
		if res.RoomID != roomID {
			continue
		}

		if Overlaps(start, end, res.Start, res.End) {
			return &Conflict{
				Kind:   model.KindReservation,
				ID:     res.Source().ID,
				RoomID: res.RoomID,
				Start:  res.Start,
				End:    res.End,
			}
		}
	}

	return nil
}
