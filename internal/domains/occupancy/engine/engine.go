package engine

import (
	"sort"
	"time"

	"frontdesk/internal/domains/event/classifier"
	"frontdesk/internal/domains/event/model"
	roomModel "frontdesk/internal/domains/room/model"
	stay "frontdesk/internal/domains/stay/engine"
)

const (
	StatusAvailable   = "available"
	StatusOccupied    = "occupied"
	StatusReserved    = "reserved"
	StatusCleaning    = "cleaning"
	StatusMaintenance = "maintenance"
	StatusPending     = "pending"

	HousekeepingNotReported = "not_reported"
	HousekeepingClean       = "clean"
	HousekeepingDirty       = "dirty"
)

// Snapshot is the immutable input of one derivation pass: the room masters and
// every classified event fetched at the same instant. Derivation never reaches
// outside it.
type Snapshot struct {
	Rooms   []roomModel.Room
	Records []classifier.Record
}

type UpcomingReservation struct {
	ID        string    `json:"id"`
	GuestName string    `json:"guest_name"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
}

// RoomStatus is the derived display state of one room. It is rebuilt wholesale
// on every pass; nothing here carries over between derivations.
type RoomStatus struct {
	RoomID              string               `json:"room_id"`
	RoomNumber          string               `json:"room_number"`
	RoomType            string               `json:"room_type"`
	Status              string               `json:"status"`
	CurrentGuest        string               `json:"current_guest,omitempty"`
	CheckOutDate        *time.Time           `json:"check_out_date,omitempty"`
	HousekeepingStatus  string               `json:"housekeeping_status"`
	Interrupted         bool                 `json:"interrupted"`
	PendingResumption   bool                 `json:"pending_resumption"`
	UpcomingReservation *UpcomingReservation `json:"upcoming_reservation,omitempty"`
}

// DeriveRoomStatuses folds the snapshot into one status per room. Per room the
// cascade is: covering stay segment, then reservation containing now, then the
// latest housekeeping report, then available. The function is pure and keeps
// room order aligned with the snapshot's room order.
func DeriveRoomStatuses(snap Snapshot, now time.Time) []RoomStatus {
	lineages := stay.BuildLineages(snap.Records)
	reservations := approvedReservations(snap.Records)
	housekeeping := latestHousekeeping(snap.Records)
	openCredits := openCreditRooms(snap.Records)

	statuses := make([]RoomStatus, 0, len(snap.Rooms))

	for _, room := range snap.Rooms {
		status := RoomStatus{
			RoomID:             room.ID,
			RoomNumber:         room.RoomNumber,
			RoomType:           room.RoomType,
			Status:             StatusAvailable,
			HousekeepingStatus: HousekeepingNotReported,
			PendingResumption:  openCredits[room.ID],
		}

		if report, ok := housekeeping[room.ID]; ok {
			status.HousekeepingStatus = housekeepingSummary(report.Condition)
		}

		status.UpcomingReservation = upcomingReservation(reservations, room.ID, now)

		if occupy(&status, lineages, room.ID, now) {
			statuses = append(statuses, status)

			continue
		}

		if reserve(&status, reservations, room.ID, now) {
			statuses = append(statuses, status)

			continue
		}

		if report, ok := housekeeping[room.ID]; ok {
			switch report.Condition {
			case classifier.ConditionDirty:
				status.Status = StatusCleaning
			case classifier.ConditionMaintenance:
				status.Status = StatusMaintenance
			case classifier.ConditionCleaned, classifier.ConditionInspected:
				status.Status = StatusAvailable
			default:
				status.Status = StatusPending
			}
		}

		statuses = append(statuses, status)
	}

	return statuses
}

// occupy applies the first cascade step: an active, non-checked-out segment
// covering the room marks it occupied, unless the lineage was interrupted
// today or earlier, in which case the room reverts to available with the
// interruption recorded.
func occupy(status *RoomStatus, lineages []stay.Lineage, roomID string, now time.Time) bool {
	for _, lin := range lineages {
		if lin.CheckedOut() {
			continue
		}

		seg := stay.ResolveSegment(lin)
		if seg.RoomID != roomID {
			continue
		}

		// The resolved window is capped at the interruption date, so the
		// paused-stay check takes coverage over the window as it stood
		// before the interruption landed.
		if interruptedByNow(lin, now) {
			if !uninterruptedWindow(lin).Covers(now) {
				continue
			}

			status.Status = StatusAvailable
			status.Interrupted = true

			return true
		}

		if !seg.Covers(now) {
			continue
		}

		checkOut := seg.CheckOut

		status.Status = StatusOccupied
		status.CurrentGuest = lin.Booking.GuestName
		status.CheckOutDate = &checkOut

		return true
	}

	return false
}

func reserve(status *RoomStatus, reservations []classifier.Reservation, roomID string, now time.Time) bool {
	for _, res := range reservations {
		if res.RoomID != roomID {
			continue
		}

		if !now.Before(res.Start) && now.Before(res.End) {
			status.Status = StatusReserved
			status.CurrentGuest = res.GuestName

			return true
		}
	}

	return false
}

// uninterruptedWindow resolves the lineage's segment as if no interruption had
// been recorded, keeping any extension or transfer in force.
func uninterruptedWindow(lin stay.Lineage) stay.EffectiveStaySegment {
	lin.Interruptions = nil

	return stay.ResolveSegment(lin)
}

// interruptedByNow compares at calendar-day granularity: an interruption dated
// today or earlier pauses the stay even though the segment window technically
// still covers now.
func interruptedByNow(lin stay.Lineage, now time.Time) bool {
	for _, in := range lin.Interruptions {
		if !dayOf(in.InterruptionDate, now.Location()).After(dayOf(now, now.Location())) {
			return true
		}
	}

	return false
}

// housekeepingSummary collapses the raw report condition into the coarse
// clean/dirty indicator shown on the board.
func housekeepingSummary(condition string) string {
	switch condition {
	case classifier.ConditionClean, classifier.ConditionCleaned, classifier.ConditionInspected:
		return HousekeepingClean
	case classifier.ConditionDirty, classifier.ConditionMaintenance:
		return HousekeepingDirty
	default:
		return HousekeepingNotReported
	}
}

func dayOf(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)

	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

func upcomingReservation(reservations []classifier.Reservation, roomID string, now time.Time) *UpcomingReservation {
	var next *classifier.Reservation

	for i, res := range reservations {
		if res.RoomID != roomID || !res.Start.After(now) {
			continue
		}

		if next == nil || res.Start.Before(next.Start) {
			next = &reservations[i]
		}
	}

	if next == nil {
		return nil
	}

	return &UpcomingReservation{
		ID:        next.Source().ID,
		GuestName: next.GuestName,
		Start:     next.Start,
		End:       next.End,
	}
}

func approvedReservations(records []classifier.Record) []classifier.Reservation {
	var reservations []classifier.Reservation

	for _, rec := range records {
		res, ok := rec.(classifier.Reservation)
		if !ok || !derivable(rec) {
			continue
		}

		reservations = append(reservations, res)
	}

	sort.Slice(reservations, func(i, j int) bool {
		return reservations[i].Start.Before(reservations[j].Start)
	})

	return reservations
}

// latestHousekeeping keeps the newest report per room, preferring reported_at
// and falling back to the event's created_at when the payload omits it.
func latestHousekeeping(records []classifier.Record) map[string]classifier.Housekeeping {
	latest := map[string]classifier.Housekeeping{}

	for _, rec := range records {
		report, ok := rec.(classifier.Housekeeping)
		if !ok || !derivable(rec) {
			continue
		}

		current, seen := latest[report.RoomID]
		if !seen || reportTime(report).After(reportTime(current)) {
			latest[report.RoomID] = report
		}
	}

	return latest
}

func reportTime(report classifier.Housekeeping) time.Time {
	if !report.ReportedAt.IsZero() {
		return report.ReportedAt
	}

	return report.Source().CreatedAt
}

// openCreditRooms maps rooms that still hold an unresolved interruption
// credit: resumable, positive remaining balance, and not yet consumed by a
// resume booking or a refund referencing it.
func openCreditRooms(records []classifier.Record) map[string]bool {
	referenced := map[string]bool{}

	for _, rec := range records {
		switch r := rec.(type) {
		case classifier.Booking:
			if r.CreditID != "" && rec.Source().Live() {
				referenced[r.CreditID] = true
			}
		case classifier.Refund:
			if r.CreditID != "" && rec.Source().Live() {
				referenced[r.CreditID] = true
			}
		}
	}

	rooms := map[string]bool{}

	for _, rec := range records {
		credit, ok := rec.(classifier.InterruptionCredit)
		if !ok || !derivable(rec) || referenced[rec.Source().ID] {
			continue
		}

		if credit.CanResume && credit.CreditRemaining.IsPositive() {
			rooms[credit.RoomID] = true
		}
	}

	return rooms
}

func derivable(rec classifier.Record) bool {
	ev := rec.Source()

	return ev.Live() && ev.Status == model.StatusApproved
}
