package catalog

import (
	"net/http"

	"frontdesk/infras/otel"
	"frontdesk/internal/domains/catalog/model/dto"
	"frontdesk/internal/domains/catalog/service"
	"frontdesk/shared/constant"
	"frontdesk/shared/validator"
	"frontdesk/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Catalog
	otel    otel.Otel
}

func New(service service.Catalog, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/catalog", func(routerGroup chi.Router) {
		routerGroup.Get("/categories", handler.GetCategories)
		routerGroup.Post("/categories", handler.CreateCategory)
		routerGroup.Get("/collections", handler.GetCollections)
		routerGroup.Post("/collections", handler.CreateCollection)
		routerGroup.Get("/items", handler.GetItems)
		routerGroup.Post("/items", handler.CreateItem)
		routerGroup.Patch("/entities/{id}", handler.UpdateEntity)
		routerGroup.Post("/items/{id}/stock-adjustments", handler.AdjustStock)
	})
}

// GetCategories retrieves the current version of every catalog category.
// @Summary Get catalog categories
// @Description Retrieve the resolved current version of every live catalog category.
// @Tags Catalog
// @Accept json
// @Produce json
// @Success 200 {object} response.Data[[]dto.CategoryResponse] "List of categories"
// @Failure 500 {object} response.Error
// @Router /v1/catalog/categories [get]
// @Security BearerAuth
func (handler *Handler) GetCategories(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCategories")
	defer scope.End()

	categories, err := handler.service.Categories(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get categories")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Categories retrieved successfully")

	response.WithJSON(w, http.StatusOK, categories)
}

// CreateCategory appends a new catalog category event.
// @Summary Create a catalog category
// @Description Append a category creation event to the operational log.
// @Tags Catalog
// @Accept json
// @Produce json
// @Param request body dto.CreateCategoryRequest true "Create Category Request"
// @Success 201 {object} response.Data[dto.CreatedResponse] "Category created successfully"
// @Failure 400 {object} response.Error
// @Router /v1/catalog/categories [post]
// @Security BearerAuth
func (handler *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateCategory")
	defer scope.End()

	req := dto.CreateCategoryRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	id, err := handler.service.CreateCategory(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create category")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Category created successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, dto.CreatedResponse{ID: id})
}

// GetCollections retrieves the current version of every catalog collection.
// @Summary Get catalog collections
// @Description Retrieve the resolved current version of every live catalog collection.
// @Tags Catalog
// @Accept json
// @Produce json
// @Success 200 {object} response.Data[[]dto.CollectionResponse] "List of collections"
// @Failure 500 {object} response.Error
// @Router /v1/catalog/collections [get]
// @Security BearerAuth
func (handler *Handler) GetCollections(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCollections")
	defer scope.End()

	collections, err := handler.service.Collections(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get collections")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Collections retrieved successfully")

	response.WithJSON(w, http.StatusOK, collections)
}

// CreateCollection appends a new catalog collection event.
// @Summary Create a catalog collection
// @Description Append a collection creation event to the operational log.
// @Tags Catalog
// @Accept json
// @Produce json
// @Param request body dto.CreateCollectionRequest true "Create Collection Request"
// @Success 201 {object} response.Data[dto.CreatedResponse] "Collection created successfully"
// @Failure 400 {object} response.Error
// @Router /v1/catalog/collections [post]
// @Security BearerAuth
func (handler *Handler) CreateCollection(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateCollection")
	defer scope.End()

	req := dto.CreateCollectionRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	id, err := handler.service.CreateCollection(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create collection")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Collection created successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, dto.CreatedResponse{ID: id})
}

// GetItems retrieves the current version of every catalog item with stock levels.
// @Summary Get catalog items
// @Description Retrieve the resolved current version of every live catalog item, including derived stock levels.
// @Tags Catalog
// @Accept json
// @Produce json
// @Success 200 {object} response.Data[[]dto.ItemResponse] "List of items"
// @Failure 500 {object} response.Error
// @Router /v1/catalog/items [get]
// @Security BearerAuth
func (handler *Handler) GetItems(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetItems")
	defer scope.End()

	items, err := handler.service.Items(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get items")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Items retrieved successfully")

	response.WithJSON(w, http.StatusOK, items)
}

// CreateItem appends a new catalog item event plus its opening stock event.
// @Summary Create a catalog item
// @Description Append an item creation event and, when an initial stock is given, its opening stock event.
// @Tags Catalog
// @Accept json
// @Produce json
// @Param request body dto.CreateItemRequest true "Create Item Request"
// @Success 201 {object} response.Data[dto.CreatedResponse] "Item created successfully"
// @Failure 400 {object} response.Error
// @Router /v1/catalog/items [post]
// @Security BearerAuth
func (handler *Handler) CreateItem(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateItem")
	defer scope.End()

	req := dto.CreateItemRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	id, err := handler.service.CreateItem(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create item")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Item created successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, dto.CreatedResponse{ID: id})
}

// UpdateEntity appends a new version of a catalog entity.
// @Summary Update a catalog entity
// @Description Append a new version of a category, collection or item to its lineage.
// @Tags Catalog
// @Accept json
// @Produce json
// @Param id path string true "Entity lineage root ID"
// @Param request body dto.UpdateEntityRequest true "Update Entity Request"
// @Success 201 {object} response.Data[dto.CreatedResponse] "Entity updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/catalog/entities/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateEntity(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateEntity")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateEntityRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	newID, err := handler.service.UpdateEntity(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update entity")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Entity updated successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, dto.CreatedResponse{ID: newID})
}

// AdjustStock appends a stock adjustment event for an item.
// @Summary Adjust item stock
// @Description Append a stock adjustment event for a catalog item. Negative deltas may not take stock below zero.
// @Tags Catalog
// @Accept json
// @Produce json
// @Param id path string true "Item lineage root ID"
// @Param request body dto.AdjustStockRequest true "Adjust Stock Request"
// @Success 201 {object} response.Message "Stock adjusted successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/catalog/items/{id}/stock-adjustments [post]
// @Security BearerAuth
func (handler *Handler) AdjustStock(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AdjustStock")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.AdjustStockRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.AdjustStock(ctx, id, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to adjust stock")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Stock adjusted successfully by user " + user)

	response.WithMessage(w, http.StatusCreated, "Stock adjusted successfully")
}
