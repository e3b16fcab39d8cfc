package stay

import (
	"net/http"

	"frontdesk/infras/otel"
	"frontdesk/internal/domains/stay/model/dto"
	"frontdesk/internal/domains/stay/service"
	"frontdesk/shared/constant"
	"frontdesk/shared/validator"
	"frontdesk/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Stay
	otel    otel.Otel
}

func New(service service.Stay, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/stays", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetStays)
		routerGroup.Post("/{id}/extend", handler.ExtendStay)
		routerGroup.Post("/{id}/transfer", handler.TransferRoom)
		routerGroup.Post("/{id}/interrupt", handler.InterruptStay)
		routerGroup.Post("/{id}/checkout", handler.Checkout)
	})

	router.Route("/credits", func(routerGroup chi.Router) {
		routerGroup.Post("/{id}/resume", handler.ResumeStay)
		routerGroup.Post("/{id}/refund", handler.RefundCredit)
	})
}

// GetStays retrieves the active, past and today-checkout stay collections.
// @Summary Get stay collections
// @Description Retrieve current stays grouped into active, past and checking-out-today collections.
// @Tags Stay
// @Accept json
// @Produce json
// @Success 200 {object} response.Data[dto.StayCollectionsResponse] "Stay collections"
// @Failure 500 {object} response.Error
// @Router /v1/stays [get]
// @Security BearerAuth
func (handler *Handler) GetStays(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetStays")
	defer scope.End()

	stays, err := handler.service.Views(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get stays")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Stays retrieved successfully")

	response.WithJSON(w, http.StatusOK, stays)
}

// ExtendStay pushes the checkout date of a stay forward.
// @Summary Extend a stay
// @Description Extend the checkout date of an active stay. Fails when the extension collides with another reservation.
// @Tags Stay
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.ExtendStayRequest true "Extend Stay Request"
// @Success 200 {object} response.Message "Stay extended successfully"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/stays/{id}/extend [post]
// @Security BearerAuth
func (handler *Handler) ExtendStay(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ExtendStay")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.ExtendStayRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.ExtendStay(ctx, id, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to extend stay")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Stay extended successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Stay extended successfully")
}

// TransferRoom moves an active stay into another room.
// @Summary Transfer a stay to another room
// @Description Close the current segment at the transfer date and open a new one in the target room.
// @Tags Stay
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.TransferRoomRequest true "Transfer Room Request"
// @Success 200 {object} response.Message "Stay transferred successfully"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/stays/{id}/transfer [post]
// @Security BearerAuth
func (handler *Handler) TransferRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".TransferRoom")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.TransferRoomRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.TransferRoom(ctx, id, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to transfer stay")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Stay transferred successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Stay transferred successfully")
}

// InterruptStay cuts a stay short and issues a credit for the unused nights.
// @Summary Interrupt a stay
// @Description End a stay before its checkout date and issue a resumable credit for the unused nights.
// @Tags Stay
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.InterruptStayRequest true "Interrupt Stay Request"
// @Success 200 {object} response.Message "Stay interrupted successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/stays/{id}/interrupt [post]
// @Security BearerAuth
func (handler *Handler) InterruptStay(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".InterruptStay")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.InterruptStayRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.InterruptStay(ctx, id, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to interrupt stay")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Stay interrupted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Stay interrupted successfully")
}

// Checkout settles and closes a stay.
// @Summary Check out a stay
// @Description Close an active stay. Front-desk staff cannot check out a stay with an outstanding balance.
// @Tags Stay
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Message "Stay checked out successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/stays/{id}/checkout [post]
// @Security BearerAuth
func (handler *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Checkout")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Checkout(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to check out stay")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Stay checked out successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Stay checked out successfully")
}

// ResumeStay converts an interruption credit into a new booking.
// @Summary Resume a stay from a credit
// @Description Open a new booking funded by an interruption credit. The credit is closed as converted.
// @Tags Stay
// @Accept json
// @Produce json
// @Param id path string true "Credit ID"
// @Param request body dto.ResumeStayRequest true "Resume Stay Request"
// @Success 201 {object} response.Data[dto.ResumeStayResponse] "Stay resumed successfully"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/credits/{id}/resume [post]
// @Security BearerAuth
func (handler *Handler) ResumeStay(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ResumeStay")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.ResumeStayRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	bookingID, err := handler.service.ResumeStay(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to resume stay")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Stay resumed successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, dto.ResumeStayResponse{BookingID: bookingID})
}

// RefundCredit closes an interruption credit as refunded.
// @Summary Refund an interruption credit
// @Description Record a refund against an open interruption credit and close it.
// @Tags Stay
// @Accept json
// @Produce json
// @Param id path string true "Credit ID"
// @Success 200 {object} response.Message "Credit refunded successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/credits/{id}/refund [post]
// @Security BearerAuth
func (handler *Handler) RefundCredit(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RefundCredit")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.RefundCredit(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to refund credit")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Credit refunded successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Credit refunded successfully")
}
