package service

import (
	"context"
	"encoding/json"
	"fmt"

	"frontdesk/config"
	"frontdesk/infras/otel"
	"frontdesk/internal/domains/catalog/engine"
	"frontdesk/internal/domains/catalog/model/dto"
	"frontdesk/internal/domains/event/classifier"
	eventModel "frontdesk/internal/domains/event/model"
	eventDto "frontdesk/internal/domains/event/model/dto"
	eventRepo "frontdesk/internal/domains/event/repository"
	eventService "frontdesk/internal/domains/event/service"
	"frontdesk/shared/constant"
	gDto "frontdesk/shared/dto"
	"frontdesk/shared/failure"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var configKinds = []string{
	eventModel.KindCategory,
	eventModel.KindCollection,
	eventModel.KindItem,
}

type Catalog interface {
	Categories(ctx context.Context) ([]dto.CategoryResponse, error)
	Collections(ctx context.Context) ([]dto.CollectionResponse, error)
	Items(ctx context.Context) ([]dto.ItemResponse, error)
	CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (string, error)
	CreateCollection(ctx context.Context, req dto.CreateCollectionRequest) (string, error)
	CreateItem(ctx context.Context, req dto.CreateItemRequest) (string, error)
	UpdateEntity(ctx context.Context, id string, req dto.UpdateEntityRequest) (string, error)
	AdjustStock(ctx context.Context, itemID string, req dto.AdjustStockRequest) error
}

type serviceImpl struct {
	events eventRepo.Event
	writer eventService.Event
	cfg    *config.Config
	otel   otel.Otel
}

func New(events eventRepo.Event, writer eventService.Event, cfg *config.Config, otel otel.Otel) Catalog {
	return &serviceImpl{
		events: events,
		writer: writer,
		cfg:    cfg,
		otel:   otel,
	}
}

// Categories resolves every category chain to its current version.
func (s *serviceImpl) Categories(ctx context.Context) (res []dto.CategoryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Categories")
	defer scope.End()
	defer scope.TraceIfError(err)

	records, err := s.loadRecords(ctx, configKinds)
	if err != nil {
		return nil, err
	}

	res = []dto.CategoryResponse{}

	for _, rec := range engine.ResolveCurrent(records, eventModel.KindCategory) {
		category, ok := rec.(classifier.Category)
		if !ok {
			continue
		}

		item := dto.CategoryResponse{}
		item.FromRecord(category)
		res = append(res, item)
	}

	return res, nil
}

func (s *serviceImpl) Collections(ctx context.Context) (res []dto.CollectionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Collections")
	defer scope.End()
	defer scope.TraceIfError(err)

	records, err := s.loadRecords(ctx, configKinds)
	if err != nil {
		return nil, err
	}

	res = []dto.CollectionResponse{}

	for _, rec := range engine.ResolveCurrent(records, eventModel.KindCollection) {
		collection, ok := rec.(classifier.Collection)
		if !ok {
			continue
		}

		item := dto.CollectionResponse{}
		item.FromRecord(collection)
		res = append(res, item)
	}

	return res, nil
}

// Items resolves item chains and attaches current stock. The stock query is
// secondary: if it fails, items come back with zero levels instead of an
// error.
func (s *serviceImpl) Items(ctx context.Context) (res []dto.ItemResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Items")
	defer scope.End()
	defer scope.TraceIfError(err)

	records, err := s.loadRecords(ctx, configKinds)
	if err != nil {
		return nil, err
	}

	levels := map[string]int{}

	stockRecords, stockErr := s.loadRecords(ctx, []string{eventModel.KindStock})
	if stockErr != nil {
		log.Warn().Err(stockErr).Msg("stock lookup failed, reporting zero levels")
	} else {
		levels = engine.CurrentStock(stockRecords)
	}

	res = []dto.ItemResponse{}

	for _, rec := range engine.ResolveCurrent(records, eventModel.KindItem) {
		item, ok := rec.(classifier.Item)
		if !ok {
			continue
		}

		view := dto.ItemResponse{}
		view.FromRecord(item, levels[item.Source().Root()])
		res = append(res, view)
	}

	return res, nil
}

func (s *serviceImpl) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (id string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateCategory")
	defer scope.End()
	defer scope.TraceIfError(err)

	payload := struct {
		Name string `json:"name"`
	}{Name: req.Name}

	return s.appendEvent(ctx, eventModel.KindCategory, payload)
}

func (s *serviceImpl) CreateCollection(ctx context.Context, req dto.CreateCollectionRequest) (id string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateCollection")
	defer scope.End()
	defer scope.TraceIfError(err)

	payload := struct {
		Name       string `json:"name"`
		CategoryID string `json:"category_id"`
	}{Name: req.Name, CategoryID: req.CategoryID}

	return s.appendEvent(ctx, eventModel.KindCollection, payload)
}

// CreateItem writes the item event and its opening stock entry. When the item
// lands but the stock write fails the caller gets a partial-write failure, not
// a false success: the item exists and the stock entry must be retried.
func (s *serviceImpl) CreateItem(ctx context.Context, req dto.CreateItemRequest) (id string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateItem")
	defer scope.End()
	defer scope.TraceIfError(err)

	payload := struct {
		Name         string          `json:"name"`
		CollectionID string          `json:"collection_id"`
		Price        decimal.Decimal `json:"price"`
	}{Name: req.Name, CollectionID: req.CollectionID, Price: req.Price}

	id, err = s.appendEvent(ctx, eventModel.KindItem, payload)
	if err != nil {
		return "", err
	}

	if req.InitialStock == 0 {
		return id, nil
	}

	stockPayload := struct {
		ItemID   string `json:"item_id"`
		Quantity int    `json:"quantity"`
		Note     string `json:"note"`
	}{ItemID: id, Quantity: req.InitialStock, Note: "initial stock"}

	if _, err = s.appendEvent(ctx, eventModel.KindStock, stockPayload); err != nil {
		return id, failure.Partial("item created but its stock entry failed; record the opening stock manually") // nolint:wrapcheck
	}

	return id, nil
}

// UpdateEntity appends the next version of a config chain. The previous
// version row is never touched.
func (s *serviceImpl) UpdateEntity(ctx context.Context, id string, req dto.UpdateEntityRequest) (newID string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateEntity")
	defer scope.End()
	defer scope.TraceIfError(err)

	payload := struct {
		Name         string          `json:"name"`
		CategoryID   string          `json:"category_id,omitempty"`
		CollectionID string          `json:"collection_id,omitempty"`
		Price        decimal.Decimal `json:"price,omitempty"`
	}{Name: req.Name, CategoryID: req.CategoryID, CollectionID: req.CollectionID, Price: req.Price}

	raw, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal config payload: %w", err)
	}

	return s.writer.EditWithNewVersion(ctx, id, eventDto.EditEventRequest{Payload: raw}) //nolint:wrapcheck
}

func (s *serviceImpl) AdjustStock(ctx context.Context, itemID string, req dto.AdjustStockRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AdjustStock")
	defer scope.End()
	defer scope.TraceIfError(err)

	payload := struct {
		ItemID   string `json:"item_id"`
		Quantity int    `json:"quantity"`
		Note     string `json:"note"`
	}{ItemID: itemID, Quantity: req.Quantity, Note: req.Note}

	_, err = s.appendEvent(ctx, eventModel.KindStock, payload)

	return err
}

func (s *serviceImpl) appendEvent(ctx context.Context, kind string, payload any) (string, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal %s payload: %w", kind, err)
	}

	id, err := s.writer.Insert(ctx, eventDto.InsertEventRequest{
		EntityKind: kind,
		Payload:    raw,
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

func (s *serviceImpl) loadRecords(ctx context.Context, kinds []string) ([]classifier.Record, error) {
	events, err := s.events.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{
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
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch catalog events")

		return nil, failure.InternalError(fmt.Errorf("failed to fetch catalog events: %w", err)) // nolint:wrapcheck
	}

	records, quarantined := classifier.ClassifyAll(events)
	if len(quarantined) > 0 {
		log.Warn().Int("count", len(quarantined)).Msg("quarantined events excluded from catalog resolution")
	}

	return records, nil
}
