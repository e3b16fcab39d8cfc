package dto

import (
	"time"

	"github.com/shopspring/decimal"

	ledger "frontdesk/internal/domains/ledger/engine"
	stay "frontdesk/internal/domains/stay/engine"
)

type ExtendStayRequest struct {
	NewCheckOut time.Time `json:"new_check_out" validate:"required"`
}

type TransferRoomRequest struct {
	TargetRoomID string    `json:"target_room_id" validate:"required,uuid"`
	TransferDate time.Time `json:"transfer_date"  validate:"required"`
}

type InterruptStayRequest struct {
	InterruptionDate time.Time `json:"interruption_date" validate:"required"`
	Reason           string    `json:"reason"`
}

type ResumeStayRequest struct {
	RoomID   string    `json:"room_id"   validate:"required,uuid"`
	CheckIn  time.Time `json:"check_in"  validate:"required"`
	CheckOut time.Time `json:"check_out" validate:"required"`
}

// StayView is one stay lineage folded down for display: the effective window,
// whether it was interrupted or closed, and the running balance.
type StayView struct {
	BookingID   string          `json:"booking_id"`
	LineageRoot string          `json:"lineage_root"`
	RoomID      string          `json:"room_id"`
	GuestName   string          `json:"guest_name"`
	CheckIn     time.Time       `json:"check_in"`
	CheckOut    time.Time       `json:"check_out"`
	Interrupted bool            `json:"interrupted"`
	CheckedOut  bool            `json:"checked_out"`
	Balance     decimal.Decimal `json:"balance"`
}

func (v *StayView) FromLineage(lin stay.Lineage) {
	seg := stay.ResolveSegment(lin)
	_, summary := ledger.Aggregate(lin)

	v.BookingID = lin.Booking.Source().ID
	v.LineageRoot = lin.Root
	v.RoomID = seg.RoomID
	v.GuestName = lin.Booking.GuestName
	v.CheckIn = seg.CheckIn
	v.CheckOut = seg.CheckOut
	v.Interrupted = len(lin.Interruptions) > 0
	v.CheckedOut = lin.CheckedOut()
	v.Balance = summary.Balance
}

type ResumeStayResponse struct {
	BookingID string `json:"booking_id"`
}

// StayCollectionsResponse splits every stay into the three front-desk views.
type StayCollectionsResponse struct {
	Active         []StayView `json:"active"`
	Past           []StayView `json:"past"`
	TodayCheckouts []StayView `json:"today_checkouts"`
}
