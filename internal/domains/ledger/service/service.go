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
	"frontdesk/internal/domains/ledger/engine"
	"frontdesk/internal/domains/ledger/model/dto"
	stay "frontdesk/internal/domains/stay/engine"
	"frontdesk/shared"
	"frontdesk/shared/cache"
	"frontdesk/shared/constant"
	gDto "frontdesk/shared/dto"
	"frontdesk/shared/failure"
	"frontdesk/shared/timezone"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const cacheSummary = "ledger:summary"

type Ledger interface {
	Summary(ctx context.Context, lineageRoot string) (engine.LedgerSummary, error)
	Entries(ctx context.Context, lineageRoot string) ([]engine.LedgerEntry, error)
	RecordPayment(ctx context.Context, lineageRoot string, req dto.RecordEntryRequest) error
	RecordPenalty(ctx context.Context, lineageRoot string, req dto.RecordEntryRequest) error
	RecordDiscount(ctx context.Context, lineageRoot string, req dto.RecordEntryRequest) error
	RecordRefund(ctx context.Context, lineageRoot string, req dto.RecordEntryRequest) error
	Revenue(ctx context.Context, bucket string) ([]engine.RevenueBucket, error)
}

type serviceImpl struct {
	events eventRepo.Event
	writer eventService.Event
	cfg    *config.Config
	cache  cache.RedisCache
	otel   otel.Otel
}

func New(events eventRepo.Event, writer eventService.Event, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Ledger {
	return &serviceImpl{
		events: events,
		writer: writer,
		cfg:    cfg,
		cache:  cache,
		otel:   otel,
	}
}

// Summary returns the running balance for a stay lineage, serving the cached
// snapshot when present. The snapshot is only ever produced by a full
// recomputation, never by patching.
func (s *serviceImpl) Summary(ctx context.Context, lineageRoot string) (res engine.LedgerSummary, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Summary")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheSummary, lineageRoot)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for ledger summary")

		return res, nil
	}

	return s.resync(ctx, lineageRoot)
}

func (s *serviceImpl) Entries(ctx context.Context, lineageRoot string) (res []engine.LedgerEntry, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Entries")
	defer scope.End()
	defer scope.TraceIfError(err)

	lin, err := s.loadLineage(ctx, lineageRoot)
	if err != nil {
		return nil, err
	}

	res, _ = engine.Aggregate(lin)

	return res, nil
}

func (s *serviceImpl) RecordPayment(ctx context.Context, lineageRoot string, req dto.RecordEntryRequest) error {
	return s.record(ctx, eventModel.KindPayment, lineageRoot, req)
}

func (s *serviceImpl) RecordPenalty(ctx context.Context, lineageRoot string, req dto.RecordEntryRequest) error {
	return s.record(ctx, eventModel.KindPenalty, lineageRoot, req)
}

func (s *serviceImpl) RecordDiscount(ctx context.Context, lineageRoot string, req dto.RecordEntryRequest) error {
	return s.record(ctx, eventModel.KindDiscount, lineageRoot, req)
}

func (s *serviceImpl) RecordRefund(ctx context.Context, lineageRoot string, req dto.RecordEntryRequest) error {
	return s.record(ctx, eventModel.KindRefund, lineageRoot, req)
}

// Revenue buckets settled checkout revenue by day or month.
func (s *serviceImpl) Revenue(ctx context.Context, bucket string) (res []engine.RevenueBucket, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Revenue")
	defer scope.End()
	defer scope.TraceIfError(err)

	if bucket != engine.BucketDay && bucket != engine.BucketMonth {
		return nil, failure.BadRequestFromString("bucket must be day or month") // nolint:wrapcheck
	}

	events, err := s.events.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    eventModel.FieldEntityKind,
				Operator: gDto.FilterOperatorEq,
				Value:    eventModel.KindCheckout,
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
		log.Error().Err(err).Msg("failed to fetch checkout events")

		return nil, failure.InternalError(fmt.Errorf("failed to fetch checkout events: %w", err)) // nolint:wrapcheck
	}

	records, _ := classifier.ClassifyAll(events)

	return engine.ReduceRevenue(records, bucket), nil
}

// record appends one financial event to the lineage and resyncs the cached
// summary by full recomputation.
func (s *serviceImpl) record(ctx context.Context, kind, lineageRoot string, req dto.RecordEntryRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".record")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = sessionValid(ctx); err != nil {
		return err
	}

	if !req.Amount.IsPositive() {
		return failure.BadRequestFromString("amount must be positive") // nolint:wrapcheck
	}

	lin, err := s.loadLineage(ctx, lineageRoot)
	if err != nil {
		return err
	}

	payload := struct {
		BookingID string          `json:"booking_id"`
		Amount    decimal.Decimal `json:"amount"`
		Method    string          `json:"method,omitempty"`
		Reason    string          `json:"reason,omitempty"`
	}{
		BookingID: lin.Booking.Source().ID,
		Amount:    req.Amount,
		Method:    req.Method,
		Reason:    req.Reason,
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", kind, err)
	}

	id, err := s.writer.Insert(ctx, eventDto.InsertEventRequest{
		EntityKind:      kind,
		Payload:         raw,
		FinancialAmount: req.Amount,
		LineageRootID:   lin.Root,
	})
	if err != nil {
		return err //nolint:wrapcheck
	}

	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	if role == constant.RoleAdmin || role == constant.RoleSuperAdmin {
		if err = s.writer.Approve(ctx, id); err != nil {
			return err //nolint:wrapcheck
		}
	}

	if _, err = s.resync(ctx, lineageRoot); err != nil {
		log.Warn().Err(err).Str("lineageRoot", lineageRoot).Msg("failed to resync ledger summary after write")
	}

	return nil
}

// resync recomputes the summary from the full event set and replaces the
// cached value wholesale.
func (s *serviceImpl) resync(ctx context.Context, lineageRoot string) (engine.LedgerSummary, error) {
	lin, err := s.loadLineage(ctx, lineageRoot)
	if err != nil {
		return engine.LedgerSummary{}, err
	}

	_, summary := engine.Aggregate(lin)

	cacheKey := shared.BuildCacheKey(cacheSummary, lineageRoot)
	if err = s.cache.Save(ctx, cacheKey, summary, s.cfg.Cache.TTL); err != nil {
		log.Warn().Err(err).Str("cacheKey", cacheKey).Msg("failed to cache ledger summary")
	}

	return summary, nil
}

// loadLineage fetches every live event on the lineage root and folds it. The
// root column match catches split events; the id match catches the root
// booking itself, whose lineage_root_id may be empty.
func (s *serviceImpl) loadLineage(ctx context.Context, lineageRoot string) (stay.Lineage, error) {
	events, err := s.events.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.FilterGroup{
				Operator: gDto.FilterGroupOperatorOr,
				Filters: []any{
					gDto.Filter{
						Field:    eventModel.FieldID,
						Operator: gDto.FilterOperatorEq,
						Value:    lineageRoot,
						Table:    eventModel.TableName,
					},
					gDto.Filter{
						ArgName:  "lineage_root",
						Field:    eventModel.FieldLineageRootID,
						Operator: gDto.FilterOperatorEq,
						Value:    lineageRoot,
						Table:    eventModel.TableName,
					},
				},
			},
			gDto.Filter{
				Field:    eventModel.FieldDeletedAt,
				Operator: gDto.FilterIsNull,
				Table:    eventModel.TableName,
			},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch lineage events")

		return stay.Lineage{}, failure.InternalError(fmt.Errorf("failed to fetch lineage events: %w", err)) // nolint:wrapcheck
	}

	records, quarantined := classifier.ClassifyAll(events)
	if len(quarantined) > 0 {
		log.Warn().Int("count", len(quarantined)).Msg("quarantined events excluded from ledger derivation")
	}

	for _, lin := range stay.BuildLineages(records) {
		if lin.Root == lineageRoot {
			return lin, nil
		}
	}

	return stay.Lineage{}, failure.NotFound("booking lineage") // nolint:wrapcheck
}

// sessionValid mirrors the stay service's pre-flight probe: no financial
// write happens on a session that can no longer be vouched for.
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
