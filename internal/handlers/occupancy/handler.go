package occupancy

import (
	"net/http"

	"frontdesk/infras/otel"
	"frontdesk/internal/domains/occupancy/service"
	"frontdesk/shared/constant"
	"frontdesk/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Occupancy
	otel    otel.Otel
}

func New(service service.Occupancy, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/occupancy", func(routerGroup chi.Router) {
		routerGroup.Get("/board", handler.GetBoard)
		routerGroup.Post("/board/refresh", handler.RefreshBoard)
	})
}

// GetBoard returns the derived per-room occupancy board.
// @Summary Get the occupancy board
// @Description Retrieve the derived status of every room. Served from cache when fresh.
// @Tags Occupancy
// @Accept json
// @Produce json
// @Success 200 {object} response.Data[[]engine.RoomStatus] "Occupancy board"
// @Failure 500 {object} response.Error
// @Router /v1/occupancy/board [get]
// @Security BearerAuth
func (handler *Handler) GetBoard(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBoard")
	defer scope.End()

	board, err := handler.service.Board(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get occupancy board")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Occupancy board retrieved successfully")

	response.WithJSON(w, http.StatusOK, board)
}

// RefreshBoard recomputes the occupancy board from the event log.
// @Summary Refresh the occupancy board
// @Description Force a recomputation of the occupancy board, bypassing the cached copy.
// @Tags Occupancy
// @Accept json
// @Produce json
// @Success 200 {object} response.Data[[]engine.RoomStatus] "Refreshed occupancy board"
// @Failure 500 {object} response.Error
// @Router /v1/occupancy/board/refresh [post]
// @Security BearerAuth
func (handler *Handler) RefreshBoard(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RefreshBoard")
	defer scope.End()

	board, err := handler.service.Refresh(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to refresh occupancy board")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Occupancy board refreshed successfully by user " + user)

	response.WithJSON(w, http.StatusOK, board)
}
