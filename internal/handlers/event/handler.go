package event

import (
	"net/http"

	"frontdesk/infras/otel"
	"frontdesk/internal/domains/event/model"
	"frontdesk/internal/domains/event/model/dto"
	"frontdesk/internal/domains/event/service"
	"frontdesk/shared/constant"
	gDto "frontdesk/shared/dto"
	"frontdesk/shared/validator"
	"frontdesk/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Event
	otel    otel.Otel
}

func New(service service.Event, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/events", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.SubmitEvent)
		routerGroup.Get("/", handler.GetEvents)
		routerGroup.Get("/{id}", handler.GetEventByID)
		routerGroup.Post("/{id}/approve", handler.ApproveEvent)
		routerGroup.Put("/{id}", handler.EditEvent)
		routerGroup.Delete("/{id}", handler.DeleteEvent)
		routerGroup.Delete("/{id}/purge", handler.PurgeLineage)
	})
}

// SubmitEvent appends a new operational event to the log.
// @Summary Submit an operational event
// @Description Append a new operational event. Events from non-admin staff start as pending.
// @Tags Event
// @Accept json
// @Produce json
// @Param request body dto.InsertEventRequest true "Insert Event Request"
// @Success 201 {object} response.Data[dto.CreatedResponse] "Event submitted successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/events [post]
// @Security BearerAuth
func (handler *Handler) SubmitEvent(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SubmitEvent")
	defer scope.End()

	req := dto.InsertEventRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	id, err := handler.service.Insert(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to submit event")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Event submitted successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, dto.CreatedResponse{ID: id})
}

// GetEvents retrieves operational events with optional filtering and pagination.
// @Summary Get operational events
// @Description Retrieve operational events filtered by kind, status or lineage root.
// @Tags Event
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param entity_kind query string false "Filter by entity kind"
// @Param status query string false "Filter by status (pending, approved, rejected, converted)"
// @Param lineage_root_id query string false "Filter by lineage root"
// @Success 200 {object} response.Data[dto.GetEventsResponse] "List of events"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/events [get]
// @Security BearerAuth
func (handler *Handler) GetEvents(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetEvents")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	entityKind := r.URL.Query().Get(model.FieldEntityKind)
	status := r.URL.Query().Get(model.FieldStatus)
	lineageRoot := r.URL.Query().Get(model.FieldLineageRootID)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if entityKind != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldEntityKind,
			Operator: gDto.FilterOperatorEq,
			Value:    entityKind,
			Table:    model.TableName,
		})
	}

	if status != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    status,
			Table:    model.TableName,
		})
	}

	if lineageRoot != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldLineageRootID,
			Operator: gDto.FilterOperatorEq,
			Value:    lineageRoot,
			Table:    model.TableName,
		})
	}

	events, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get events")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Events retrieved successfully")

	response.WithJSON(w, http.StatusOK, events)
}

// GetEventByID retrieves a single operational event.
// @Summary Get an event by ID
// @Description Retrieve an operational event by its unique identifier.
// @Tags Event
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} response.Data[dto.EventResponse] "Event details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/events/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetEventByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetEventByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	event, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get event by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Event retrieved successfully")

	response.WithJSON(w, http.StatusOK, event)
}

// ApproveEvent moves a pending event into the approved state.
// @Summary Approve a pending event
// @Description Approve a pending operational event so it becomes visible to the derivation engines.
// @Tags Event
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} response.Message "Event approved successfully"
// @Failure 404 {object} response.Error
// @Failure 422 {object} response.Error
// @Router /v1/events/{id}/approve [post]
// @Security BearerAuth
func (handler *Handler) ApproveEvent(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ApproveEvent")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Approve(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to approve event")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Event approved successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Event approved successfully")
}

// EditEvent appends a corrected version of an existing event.
// @Summary Edit an event with a new version
// @Description Append a new version of the event to its lineage. The previous version is never mutated.
// @Tags Event
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param request body dto.EditEventRequest true "Edit Event Request"
// @Success 201 {object} response.Data[dto.CreatedResponse] "New version appended successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/events/{id} [put]
// @Security BearerAuth
func (handler *Handler) EditEvent(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".EditEvent")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.EditEventRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	newID, err := handler.service.EditWithNewVersion(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to edit event")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Event version appended successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, dto.CreatedResponse{ID: newID})
}

// DeleteEvent soft-deletes an operational event.
// @Summary Soft-delete an event
// @Description Mark an operational event as deleted. The row stays in the log for audit purposes.
// @Tags Event
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} response.Message "Event deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/events/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteEvent")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.SoftDelete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete event")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Event deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Event deleted successfully")
}

// PurgeLineage permanently removes an event lineage. Superadmin only.
// @Summary Purge an event lineage
// @Description Permanently remove an event and every version that shares its lineage root.
// @Tags Event
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} response.Message "Event lineage purged successfully"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/events/{id}/purge [delete]
// @Security BearerAuth
func (handler *Handler) PurgeLineage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".PurgeLineage")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.HardDelete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to purge event lineage")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Event lineage purged successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Event lineage purged successfully")
}
