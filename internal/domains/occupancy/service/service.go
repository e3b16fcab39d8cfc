package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"sync"

	"frontdesk/config"
	"frontdesk/infras/otel"
	"frontdesk/internal/domains/event/classifier"
	eventModel "frontdesk/internal/domains/event/model"
	eventRepo "frontdesk/internal/domains/event/repository"
	"frontdesk/internal/domains/occupancy/engine"
	roomModel "frontdesk/internal/domains/room/model"
	roomRepo "frontdesk/internal/domains/room/repository"
	"frontdesk/shared/cache"
	"frontdesk/shared/constant"
	gDto "frontdesk/shared/dto"
	"frontdesk/shared/failure"
	"frontdesk/shared/timezone"

	"github.com/rs/zerolog/log"
)

const cacheBoard = "occupancy:board"

// primaryKinds feed the lineage and reservation derivations. A fetch failure
// here aborts the pass; the last cached board stays visible.
var primaryKinds = []string{
	eventModel.KindBooking,
	eventModel.KindExtension,
	eventModel.KindTransfer,
	eventModel.KindInterruption,
	eventModel.KindCheckout,
	eventModel.KindReservation,
}

// secondaryKinds only refine the board. A fetch failure degrades them to
// empty instead of aborting the derivation.
var secondaryKinds = []string{
	eventModel.KindHousekeeping,
	eventModel.KindInterruptionCredit,
	eventModel.KindRefund,
}

type Occupancy interface {
	Board(ctx context.Context) ([]engine.RoomStatus, error)
	Refresh(ctx context.Context) ([]engine.RoomStatus, error)
}

type serviceImpl struct {
	events eventRepo.Event
	rooms  roomRepo.Room
	cfg    *config.Config
	cache  cache.RedisCache
	otel   otel.Otel
}

func New(events eventRepo.Event, rooms roomRepo.Room, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Occupancy {
	return &serviceImpl{
		events: events,
		rooms:  rooms,
		cfg:    cfg,
		cache:  cache,
		otel:   otel,
	}
}

// Board returns the current room board, serving the cached derivation when one
// is still fresh.
func (s *serviceImpl) Board(ctx context.Context) (res []engine.RoomStatus, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Board")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = s.cache.Get(ctx, cacheBoard, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheBoard).Msg("cache hit for occupancy board")

		return res, nil
	}

	return s.Refresh(ctx)
}

// Refresh rebuilds the board from a fresh snapshot and replaces the cached
// value wholesale. The cache is never patched in place.
func (s *serviceImpl) Refresh(ctx context.Context) (res []engine.RoomStatus, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Refresh")
	defer scope.End()
	defer scope.TraceIfError(err)

	snap, err := s.fetchSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	res = engine.DeriveRoomStatuses(snap, timezone.Now())

	if err = s.cache.Save(ctx, cacheBoard, res, s.cfg.Occupancy.PollSeconds); err != nil {
		log.Warn().Err(err).Msg("failed to cache occupancy board")
	}

	return res, nil
}

// fetchSnapshot queries room masters and stay events concurrently. Secondary
// event kinds degrade to empty on failure; a primary failure aborts the pass.
func (s *serviceImpl) fetchSnapshot(ctx context.Context) (snap engine.Snapshot, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".fetchSnapshot")
	defer scope.End()
	defer scope.TraceIfError(err)

	var (
		wg sync.WaitGroup

		rooms     []roomModel.Room
		primary   []eventModel.OperationalEvent
		secondary []eventModel.OperationalEvent

		roomsErr, primaryErr, secondaryErr error
	)

	wg.Add(3)

	go func() {
		defer wg.Done()

		rooms, roomsErr = s.rooms.GetAll(ctx, gDto.QueryParams{}, activeRoomFilter())
	}()

	go func() {
		defer wg.Done()

		primary, primaryErr = s.events.GetAll(ctx, gDto.QueryParams{}, liveKindFilter(primaryKinds))
	}()

	go func() {
		defer wg.Done()

		secondary, secondaryErr = s.events.GetAll(ctx, gDto.QueryParams{}, liveKindFilter(secondaryKinds))
	}()

	wg.Wait()

	if roomsErr != nil {
		log.Error().Err(roomsErr).Msg("failed to fetch rooms for occupancy snapshot")

		return snap, failure.InternalError(fmt.Errorf("failed to fetch rooms for occupancy snapshot: %w", roomsErr)) // nolint:wrapcheck
	}

	if primaryErr != nil {
		log.Error().Err(primaryErr).Msg("failed to fetch events for occupancy snapshot")

		return snap, failure.InternalError(fmt.Errorf("failed to fetch events for occupancy snapshot: %w", primaryErr)) // nolint:wrapcheck
	}

	if secondaryErr != nil {
		log.Warn().Err(secondaryErr).Msg("secondary occupancy queries failed, deriving without housekeeping and credits")

		secondary = nil
	}

	records, quarantined := classifier.ClassifyAll(append(primary, secondary...))
	if len(quarantined) > 0 {
		log.Warn().Int("count", len(quarantined)).Msg("quarantined events excluded from occupancy derivation")
	}

	snap.Rooms = rooms
	snap.Records = records

	return snap, nil
}

func activeRoomFilter() gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    roomModel.FieldActive,
				Operator: gDto.FilterOperatorEq,
				Value:    true,
				Table:    roomModel.TableName,
			},
		},
	}
}

func liveKindFilter(kinds []string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    eventModel.FieldEntityKind,
				Operator: gDto.FilterOperatorIn,
				Value:    kinds,
				Table:    eventModel.TableName,
			},
			gDto.Filter{
				Field:    eventModel.FieldDeletedAt,
				Operator: gDto.FilterIsNull,
				Table:    eventModel.TableName,
			},
		},
	}
}
