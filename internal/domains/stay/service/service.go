package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"frontdesk/config"
	"frontdesk/infras/otel"
	"frontdesk/internal/domains/event/classifier"
	eventModel "frontdesk/internal/domains/event/model"
	eventDto "frontdesk/internal/domains/event/model/dto"
	eventRepo "frontdesk/internal/domains/event/repository"
	eventService "frontdesk/internal/domains/event/service"
	ledger "frontdesk/internal/domains/ledger/engine"
	occupancyService "frontdesk/internal/domains/occupancy/service"
	roomModel "frontdesk/internal/domains/room/model"
	roomRepo "frontdesk/internal/domains/room/repository"
	stay "frontdesk/internal/domains/stay/engine"
	"frontdesk/internal/domains/stay/model/dto"
	"frontdesk/shared/constant"
	gDto "frontdesk/shared/dto"
	"frontdesk/shared/failure"
	"frontdesk/shared/timezone"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// lineageKinds are the event kinds a stay mutation needs to fold before it can
// re-validate its preconditions against the freshest possible state.
var lineageKinds = []string{
	eventModel.KindBooking,
	eventModel.KindExtension,
	eventModel.KindTransfer,
	eventModel.KindInterruption,
	eventModel.KindInterruptionCredit,
	eventModel.KindCheckout,
	eventModel.KindReservation,
	eventModel.KindHousekeeping,
	eventModel.KindPayment,
	eventModel.KindPenalty,
	eventModel.KindDiscount,
	eventModel.KindRefund,
}

type Stay interface {
	ExtendStay(ctx context.Context, bookingID string, req dto.ExtendStayRequest) error
	TransferRoom(ctx context.Context, bookingID string, req dto.TransferRoomRequest) error
	InterruptStay(ctx context.Context, bookingID string, req dto.InterruptStayRequest) error
	ResumeStay(ctx context.Context, creditID string, req dto.ResumeStayRequest) (string, error)
	RefundCredit(ctx context.Context, creditID string) error
	Checkout(ctx context.Context, bookingID string) error
	Views(ctx context.Context) (dto.StayCollectionsResponse, error)
}

type serviceImpl struct {
	events    eventRepo.Event
	writer    eventService.Event
	rooms     roomRepo.Room
	occupancy occupancyService.Occupancy
	cfg       *config.Config
	otel      otel.Otel
}

func New(events eventRepo.Event, writer eventService.Event, rooms roomRepo.Room, occupancy occupancyService.Occupancy, cfg *config.Config, otel otel.Otel) Stay {
	return &serviceImpl{
		events:    events,
		writer:    writer,
		rooms:     rooms,
		occupancy: occupancy,
		cfg:       cfg,
		otel:      otel,
	}
}

// ExtendStay pushes a stay's effective check-out to a later date. Preconditions
// are re-validated against a fresh fetch immediately before the write; the
// interval between check and insert is an acknowledged race the store's own
// constraints backstop.
func (s *serviceImpl) ExtendStay(ctx context.Context, bookingID string, req dto.ExtendStayRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ExtendStay")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = sessionValid(ctx); err != nil {
		return err
	}

	records, err := s.loadRecords(ctx)
	if err != nil {
		return err
	}

	lineages := stay.BuildLineages(records)

	lin, err := findLineage(lineages, bookingID)
	if err != nil {
		return err
	}

	if lin.CheckedOut() {
		return failure.UnprocessableEntity("stay is already checked out") // nolint:wrapcheck
	}

	seg := stay.ResolveSegment(lin)
	if !req.NewCheckOut.After(seg.CheckIn) {
		return failure.BadRequestFromString("new check-out must be after check-in") // nolint:wrapcheck
	}

	if conflict := stay.CheckWindow(seg.RoomID, seg.CheckIn, req.NewCheckOut, lineages, approvedReservations(records), lin.Root); conflict != nil {
		return conflict.Failure() // nolint:wrapcheck
	}

	payload := struct {
		BookingID   string    `json:"booking_id"`
		NewCheckOut time.Time `json:"new_check_out"`
	}{
		BookingID:   lin.Booking.Source().ID,
		NewCheckOut: req.NewCheckOut,
	}

	_, err = s.appendEvent(ctx, eventModel.KindExtension, lin.Root, payload, decimal.Zero)
	if err != nil {
		return err
	}

	s.refreshBoard(ctx)

	return nil
}

// TransferRoom closes the current segment at the transfer date and opens a new
// one in the target room on the same lineage. The replacement booking carries
// the original rate and night count so the ledger's base charge is unchanged.
func (s *serviceImpl) TransferRoom(ctx context.Context, bookingID string, req dto.TransferRoomRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".TransferRoom")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = sessionValid(ctx); err != nil {
		return err
	}

	records, err := s.loadRecords(ctx)
	if err != nil {
		return err
	}

	lineages := stay.BuildLineages(records)

	lin, err := findLineage(lineages, bookingID)
	if err != nil {
		return err
	}

	if lin.CheckedOut() {
		return failure.UnprocessableEntity("stay is already checked out") // nolint:wrapcheck
	}

	seg := stay.ResolveSegment(lin)
	if !req.TransferDate.Before(seg.CheckOut) || req.TransferDate.Before(seg.CheckIn) {
		return failure.BadRequestFromString("transfer date must fall inside the current stay window") // nolint:wrapcheck
	}

	if err = s.roomReceivable(ctx, req.TargetRoomID, records); err != nil {
		return err
	}

	if conflict := stay.CheckWindow(req.TargetRoomID, req.TransferDate, seg.CheckOut, lineages, approvedReservations(records), lin.Root); conflict != nil {
		return conflict.Failure() // nolint:wrapcheck
	}

	transferPayload := struct {
		BookingID    string    `json:"booking_id"`
		FromRoomID   string    `json:"from_room_id"`
		ToRoomID     string    `json:"to_room_id"`
		TransferDate time.Time `json:"transfer_date"`
	}{
		BookingID:    lin.Booking.Source().ID,
		FromRoomID:   seg.RoomID,
		ToRoomID:     req.TargetRoomID,
		TransferDate: req.TransferDate,
	}

	if _, err = s.appendEvent(ctx, eventModel.KindTransfer, lin.Root, transferPayload, decimal.Zero); err != nil {
		return err
	}

	bookingPayload := struct {
		RoomID       string          `json:"room_id"`
		GuestName    string          `json:"guest_name"`
		CheckIn      time.Time       `json:"check_in"`
		CheckOut     time.Time       `json:"check_out"`
		RatePerNight decimal.Decimal `json:"rate_per_night"`
		Nights       int             `json:"nights"`
	}{
		RoomID:       req.TargetRoomID,
		GuestName:    lin.Booking.GuestName,
		CheckIn:      req.TransferDate,
		CheckOut:     seg.CheckOut,
		RatePerNight: lin.Booking.RatePerNight,
		Nights:       lin.Booking.Nights,
	}

	if _, err = s.appendEvent(ctx, eventModel.KindBooking, lin.Root, bookingPayload, decimal.Zero); err != nil {
		return failure.Partial("room transfer recorded but the replacement booking failed; stay needs manual reconciliation") // nolint:wrapcheck
	}

	s.refreshBoard(ctx)

	return nil
}

// InterruptStay pauses a stay and issues a credit for the unused nights.
func (s *serviceImpl) InterruptStay(ctx context.Context, bookingID string, req dto.InterruptStayRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".InterruptStay")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = sessionValid(ctx); err != nil {
		return err
	}

	records, err := s.loadRecords(ctx)
	if err != nil {
		return err
	}

	lin, err := findLineage(stay.BuildLineages(records), bookingID)
	if err != nil {
		return err
	}

	if lin.CheckedOut() {
		return failure.UnprocessableEntity("stay is already checked out") // nolint:wrapcheck
	}

	seg := stay.ResolveSegment(lin)
	if req.InterruptionDate.Before(seg.CheckIn) || !req.InterruptionDate.Before(seg.CheckOut) {
		return failure.BadRequestFromString("interruption date must fall inside the current stay window") // nolint:wrapcheck
	}

	interruptionPayload := struct {
		BookingID        string    `json:"booking_id"`
		InterruptionDate time.Time `json:"interruption_date"`
		Reason           string    `json:"reason"`
	}{
		BookingID:        lin.Booking.Source().ID,
		InterruptionDate: req.InterruptionDate,
		Reason:           req.Reason,
	}

	if _, err = s.appendEvent(ctx, eventModel.KindInterruption, lin.Root, interruptionPayload, decimal.Zero); err != nil {
		return err
	}

	remaining := unusedNightsCredit(lin.Booking.RatePerNight, req.InterruptionDate, seg.CheckOut)

	creditPayload := struct {
		BookingID       string          `json:"booking_id"`
		RoomID          string          `json:"room_id"`
		CreditRemaining decimal.Decimal `json:"credit_remaining"`
		CanResume       bool            `json:"can_resume"`
	}{
		BookingID:       lin.Booking.Source().ID,
		RoomID:          seg.RoomID,
		CreditRemaining: remaining,
		CanResume:       true,
	}

	if _, err = s.appendEvent(ctx, eventModel.KindInterruptionCredit, lin.Root, creditPayload, remaining); err != nil {
		return failure.Partial("interruption recorded but the credit entry failed; issue the credit manually") // nolint:wrapcheck
	}

	s.refreshBoard(ctx)

	return nil
}

// ResumeStay opens a new stay against an open interruption credit. The credit
// is applied as the opening payment and marked converted so it can never be
// consumed twice.
func (s *serviceImpl) ResumeStay(ctx context.Context, creditID string, req dto.ResumeStayRequest) (bookingID string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ResumeStay")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = sessionValid(ctx); err != nil {
		return "", err
	}

	records, err := s.loadRecords(ctx)
	if err != nil {
		return "", err
	}

	credit, origin, err := openCredit(records, creditID)
	if err != nil {
		return "", err
	}

	if !req.CheckOut.After(req.CheckIn) {
		return "", failure.BadRequestFromString("check-out must be after check-in") // nolint:wrapcheck
	}

	if err = s.roomReceivable(ctx, req.RoomID, records); err != nil {
		return "", err
	}

	lineages := stay.BuildLineages(records)
	if conflict := stay.CheckWindow(req.RoomID, req.CheckIn, req.CheckOut, lineages, approvedReservations(records), ""); conflict != nil {
		return "", conflict.Failure() // nolint:wrapcheck
	}

	nights := nightsBetween(req.CheckIn, req.CheckOut)

	payload := struct {
		RoomID       string          `json:"room_id"`
		GuestName    string          `json:"guest_name"`
		CheckIn      time.Time       `json:"check_in"`
		CheckOut     time.Time       `json:"check_out"`
		RatePerNight decimal.Decimal `json:"rate_per_night"`
		Nights       int             `json:"nights"`
		PaidAmount   decimal.Decimal `json:"paid_amount"`
		CreditID     string          `json:"credit_id"`
	}{
		RoomID:       req.RoomID,
		GuestName:    origin.GuestName,
		CheckIn:      req.CheckIn,
		CheckOut:     req.CheckOut,
		RatePerNight: origin.RatePerNight,
		Nights:       nights,
		PaidAmount:   credit.CreditRemaining,
		CreditID:     creditID,
	}

	bookingID, err = s.appendEvent(ctx, eventModel.KindBooking, "", payload, credit.CreditRemaining)
	if err != nil {
		return "", err
	}

	if err = s.closeCredit(ctx, creditID); err != nil {
		return bookingID, failure.Partial("stay resumed but the credit could not be closed; close it manually") // nolint:wrapcheck
	}

	s.refreshBoard(ctx)

	return bookingID, nil
}

// RefundCredit pays out an open interruption credit and closes it.
func (s *serviceImpl) RefundCredit(ctx context.Context, creditID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RefundCredit")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = sessionValid(ctx); err != nil {
		return err
	}

	records, err := s.loadRecords(ctx)
	if err != nil {
		return err
	}

	credit, _, err := openCredit(records, creditID)
	if err != nil {
		return err
	}

	payload := struct {
		BookingID string          `json:"booking_id"`
		Amount    decimal.Decimal `json:"amount"`
		CreditID  string          `json:"credit_id"`
	}{
		BookingID: credit.BookingID,
		Amount:    credit.CreditRemaining,
		CreditID:  creditID,
	}

	if _, err = s.appendEvent(ctx, eventModel.KindRefund, credit.Source().Root(), payload, credit.CreditRemaining); err != nil {
		return err
	}

	if err = s.closeCredit(ctx, creditID); err != nil {
		return failure.Partial("refund recorded but the credit could not be closed; close it manually") // nolint:wrapcheck
	}

	s.refreshBoard(ctx)

	return nil
}

// Checkout settles and closes a stay. An outstanding balance blocks the close
// unless an admin overrides it.
func (s *serviceImpl) Checkout(ctx context.Context, bookingID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Checkout")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = sessionValid(ctx); err != nil {
		return err
	}

	records, err := s.loadRecords(ctx)
	if err != nil {
		return err
	}

	lin, err := findLineage(stay.BuildLineages(records), bookingID)
	if err != nil {
		return err
	}

	if lin.CheckedOut() {
		return failure.UnprocessableEntity("stay is already checked out") // nolint:wrapcheck
	}

	_, summary := ledger.Aggregate(lin)

	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	if !summary.Balance.IsZero() && role == constant.RoleFrontDesk {
		return failure.UnprocessableEntity(fmt.Sprintf("outstanding balance of %s blocks checkout", summary.Balance.String())) // nolint:wrapcheck
	}

	payload := struct {
		BookingID     string          `json:"booking_id"`
		CheckedOutAt  time.Time       `json:"checked_out_at"`
		TotalCharges  decimal.Decimal `json:"total_charges"`
		TotalPayments decimal.Decimal `json:"total_payments"`
	}{
		BookingID:     lin.Booking.Source().ID,
		CheckedOutAt:  timezone.Now(),
		TotalCharges:  summary.TotalCharges,
		TotalPayments: summary.TotalPayments,
	}

	if _, err = s.appendEvent(ctx, eventModel.KindCheckout, lin.Root, payload, summary.Balance); err != nil {
		return err
	}

	s.refreshBoard(ctx)

	return nil
}

// Views folds every lineage into the three front-desk collections: stays in
// house, closed stays, and stays due to leave today.
func (s *serviceImpl) Views(ctx context.Context) (res dto.StayCollectionsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Views")
	defer scope.End()
	defer scope.TraceIfError(err)

	records, err := s.loadRecords(ctx)
	if err != nil {
		return res, err
	}

	now := timezone.Now()

	res.Active = []dto.StayView{}
	res.Past = []dto.StayView{}
	res.TodayCheckouts = []dto.StayView{}

	for _, lin := range stay.BuildLineages(records) {
		view := dto.StayView{}
		view.FromLineage(lin)

		switch {
		case view.CheckedOut || !view.CheckOut.After(now):
			res.Past = append(res.Past, view)
		case sameDay(view.CheckOut, now):
			res.TodayCheckouts = append(res.TodayCheckouts, view)
		default:
			res.Active = append(res.Active, view)
		}
	}

	return res, nil
}

// appendEvent writes a stay mutation through the event log. Admin roles land
// approved immediately; front desk submissions wait for approval.
func (s *serviceImpl) appendEvent(ctx context.Context, kind, root string, payload any, amount decimal.Decimal) (string, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal %s payload: %w", kind, err)
	}

	id, err := s.writer.Insert(ctx, eventDto.InsertEventRequest{
		EntityKind:      kind,
		Payload:         raw,
		FinancialAmount: amount,
		LineageRootID:   root,
	})
	if err != nil {
		return "", err //nolint:wrapcheck
	}

	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	if role == constant.RoleAdmin || role == constant.RoleSuperAdmin {
		if err = s.writer.Approve(ctx, id); err != nil {
			return id, err //nolint:wrapcheck
		}
	}

	return id, nil
}

func (s *serviceImpl) closeCredit(ctx context.Context, creditID string) error {
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	return s.events.Update(ctx, //nolint:wrapcheck
		map[string]any{
			eventModel.FieldStatus:   eventModel.StatusConverted,
			constant.FieldModifiedAt: timezone.Now(),
			constant.FieldModifiedBy: user,
		},
		gDto.FilterGroup{
			Filters: []any{
				gDto.Filter{
					Field:    eventModel.FieldID,
					Operator: gDto.FilterOperatorEq,
					Value:    creditID,
					Table:    eventModel.TableName,
				},
			},
		},
	)
}

// roomReceivable checks the target room exists, is active and is not flagged
// dirty or under maintenance by its latest housekeeping report.
func (s *serviceImpl) roomReceivable(ctx context.Context, roomID string, records []classifier.Record) error {
	room, err := s.rooms.Get(ctx, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    roomModel.FieldID,
				Operator: gDto.FilterOperatorEq,
				Value:    roomID,
				Table:    roomModel.TableName,
			},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to get target room")

		return fmt.Errorf("failed to get target room: %w", err)
	}

	if room.ID == "" {
		return failure.NotFound("room") // nolint:wrapcheck
	}

	if !room.Active {
		return failure.UnprocessableEntity("target room is not active") // nolint:wrapcheck
	}

	if condition := latestCondition(records, roomID); condition == classifier.ConditionDirty || condition == classifier.ConditionMaintenance {
		return failure.UnprocessableEntity(fmt.Sprintf("target room is %s", condition)) // nolint:wrapcheck
	}

	return nil
}

// refreshBoard re-derives the occupancy display cache after a mutation. Best
// effort; the polling refresher catches up within one interval regardless.
func (s *serviceImpl) refreshBoard(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		if _, err := s.occupancy.Refresh(c); err != nil {
			log.Warn().Err(err).Msg("failed to refresh occupancy board after stay mutation")
		}
	}()
}

func (s *serviceImpl) loadRecords(ctx context.Context) ([]classifier.Record, error) {
	events, err := s.events.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    eventModel.FieldEntityKind,
				Operator: gDto.FilterOperatorIn,
				Value:    lineageKinds,
				Table:    eventModel.TableName,
			},
			gDto.Filter{
				Field:    eventModel.FieldDeletedAt,
				Operator: gDto.FilterIsNull,
				Table:    eventModel.TableName,
			},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch stay events")

		return nil, failure.InternalError(fmt.Errorf("failed to fetch stay events: %w", err)) // nolint:wrapcheck
	}

	records, quarantined := classifier.ClassifyAll(events)
	if len(quarantined) > 0 {
		log.Warn().Int("count", len(quarantined)).Msg("quarantined events excluded from stay derivation")
	}

	return records, nil
}

// sessionValid is the pre-flight probe run before every mutating call: the
// authenticated identity must still be present and its token unexpired. No
// write is attempted after a failed probe.
func sessionValid(ctx context.Context) error {
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if user == "" {
		return failure.SessionExpired() // nolint:wrapcheck
	}

	if expiry, ok := ctx.Value(constant.ContextKeyTokenExpiry).(time.Time); ok && expiry.Before(timezone.Now()) {
		return failure.SessionExpired() // nolint:wrapcheck
	}

	return nil
}

func findLineage(lineages []stay.Lineage, bookingID string) (stay.Lineage, error) {
	for _, lin := range lineages {
		if lin.Root == bookingID || lin.Booking.Source().ID == bookingID {
			return lin, nil
		}
	}

	return stay.Lineage{}, failure.NotFound("booking") // nolint:wrapcheck
}

// openCredit finds a credit that can still be consumed: approved, live, marked
// resumable, positive remaining amount, and not referenced by any resume
// booking or refund. The originating booking rides along for guest and rate.
func openCredit(records []classifier.Record, creditID string) (classifier.InterruptionCredit, classifier.Booking, error) {
	var (
		credit classifier.InterruptionCredit
		origin classifier.Booking
		found  bool
	)

	for _, rec := range records {
		c, ok := rec.(classifier.InterruptionCredit)
		if !ok || c.Source().ID != creditID {
			continue
		}

		credit = c
		found = true

		break
	}

	if !found {
		return credit, origin, failure.NotFound("credit") // nolint:wrapcheck
	}

	ev := credit.Source()
	if !ev.Live() || ev.Status != eventModel.StatusApproved {
		return credit, origin, failure.UnprocessableEntity("credit is no longer open") // nolint:wrapcheck
	}

	if !credit.CanResume || !credit.CreditRemaining.IsPositive() {
		return credit, origin, failure.UnprocessableEntity("credit cannot be resumed") // nolint:wrapcheck
	}

	for _, rec := range records {
		switch r := rec.(type) {
		case classifier.Booking:
			if r.CreditID == creditID && rec.Source().Live() {
				return credit, origin, failure.UnprocessableEntity("credit was already consumed by a resumed stay") // nolint:wrapcheck
			}

			if rec.Source().ID == credit.BookingID {
				origin = r
			}
		case classifier.Refund:
			if r.CreditID == creditID && rec.Source().Live() {
				return credit, origin, failure.UnprocessableEntity("credit was already refunded") // nolint:wrapcheck
			}
		}
	}

	return credit, origin, nil
}

func approvedReservations(records []classifier.Record) []classifier.Reservation {
	var reservations []classifier.Reservation

	for _, rec := range records {
		res, ok := rec.(classifier.Reservation)
		if !ok {
			continue
		}

		ev := rec.Source()
		if !ev.Live() || ev.Status != eventModel.StatusApproved {
			continue
		}

		reservations = append(reservations, res)
	}

	return reservations
}

func latestCondition(records []classifier.Record, roomID string) string {
	var (
		condition string
		reported  time.Time
	)

	for _, rec := range records {
		report, ok := rec.(classifier.Housekeeping)
		if !ok || report.RoomID != roomID {
			continue
		}

		ev := rec.Source()
		if !ev.Live() || ev.Status != eventModel.StatusApproved {
			continue
		}

		at := report.ReportedAt
		if at.IsZero() {
			at = ev.CreatedAt
		}

		if at.After(reported) {
			condition = report.Condition
			reported = at
		}
	}

	return condition
}

// unusedNightsCredit values the nights between the interruption and the
// effective check-out at the booked nightly rate, rounding partial nights up.
func unusedNightsCredit(rate decimal.Decimal, from, until time.Time) decimal.Decimal {
	nights := nightsBetween(from, until)
	if nights <= 0 {
		return decimal.Zero
	}

	return rate.Mul(decimal.NewFromInt(int64(nights)))
}

func nightsBetween(from, until time.Time) int {
	if !until.After(from) {
		return 0
	}

	hours := until.Sub(from).Hours()
	nights := int(hours / 24)

	if hours > float64(nights)*24 {
		nights++
	}

	return nights
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.In(b.Location()).Date()
	by, bm, bd := b.Date()

	return ay == by && am == bm && ad == bd
}
