package ledger

import (
	"context"
	"net/http"

	"frontdesk/infras/otel"
	"frontdesk/internal/domains/ledger/model/dto"
	"frontdesk/internal/domains/ledger/service"
	"frontdesk/shared/constant"
	"frontdesk/shared/validator"
	"frontdesk/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Ledger
	otel    otel.Otel
}

func New(service service.Ledger, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/ledger", func(routerGroup chi.Router) {
		routerGroup.Get("/revenue", handler.GetRevenue)
		routerGroup.Get("/{id}", handler.GetSummary)
		routerGroup.Get("/{id}/entries", handler.GetEntries)
		routerGroup.Post("/{id}/payments", handler.RecordPayment)
		routerGroup.Post("/{id}/penalties", handler.RecordPenalty)
		routerGroup.Post("/{id}/discounts", handler.RecordDiscount)
		routerGroup.Post("/{id}/refunds", handler.RecordRefund)
	})
}

// GetSummary retrieves the financial summary of a booking lineage.
// @Summary Get a ledger summary
// @Description Retrieve the derived charges, payments and balance for a booking lineage.
// @Tags Ledger
// @Accept json
// @Produce json
// @Param id path string true "Booking lineage root ID"
// @Success 200 {object} response.Data[engine.LedgerSummary] "Ledger summary"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/ledger/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSummary")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	summary, err := handler.service.Summary(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get ledger summary")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Ledger summary retrieved successfully")

	response.WithJSON(w, http.StatusOK, summary)
}

// GetEntries retrieves the individual ledger lines of a booking lineage.
// @Summary Get ledger entries
// @Description Retrieve the individual derived ledger entries for a booking lineage.
// @Tags Ledger
// @Accept json
// @Produce json
// @Param id path string true "Booking lineage root ID"
// @Success 200 {object} response.Data[[]engine.LedgerEntry] "Ledger entries"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/ledger/{id}/entries [get]
// @Security BearerAuth
func (handler *Handler) GetEntries(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetEntries")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	entries, err := handler.service.Entries(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get ledger entries")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Ledger entries retrieved successfully")

	response.WithJSON(w, http.StatusOK, entries)
}

// RecordPayment records a payment against a booking lineage.
// @Summary Record a payment
// @Description Append a payment event to the booking lineage and resync its ledger.
// @Tags Ledger
// @Accept json
// @Produce json
// @Param id path string true "Booking lineage root ID"
// @Param request body dto.RecordEntryRequest true "Record Entry Request"
// @Success 201 {object} response.Message "Payment recorded successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/ledger/{id}/payments [post]
// @Security BearerAuth
func (handler *Handler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RecordPayment")
	defer scope.End()

	handler.record(ctx, w, r, "payment", handler.service.RecordPayment)
}

// RecordPenalty records a penalty charge against a booking lineage.
// @Summary Record a penalty
// @Description Append a penalty event to the booking lineage and resync its ledger.
// @Tags Ledger
// @Accept json
// @Produce json
// @Param id path string true "Booking lineage root ID"
// @Param request body dto.RecordEntryRequest true "Record Entry Request"
// @Success 201 {object} response.Message "Penalty recorded successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/ledger/{id}/penalties [post]
// @Security BearerAuth
func (handler *Handler) RecordPenalty(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RecordPenalty")
	defer scope.End()

	handler.record(ctx, w, r, "penalty", handler.service.RecordPenalty)
}

// RecordDiscount records a discount against a booking lineage.
// @Summary Record a discount
// @Description Append a discount event to the booking lineage and resync its ledger.
// @Tags Ledger
// @Accept json
// @Produce json
// @Param id path string true "Booking lineage root ID"
// @Param request body dto.RecordEntryRequest true "Record Entry Request"
// @Success 201 {object} response.Message "Discount recorded successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/ledger/{id}/discounts [post]
// @Security BearerAuth
func (handler *Handler) RecordDiscount(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RecordDiscount")
	defer scope.End()

	handler.record(ctx, w, r, "discount", handler.service.RecordDiscount)
}

// RecordRefund records a refund paid out against a booking lineage.
// @Summary Record a refund
// @Description Append a refund event to the booking lineage and resync its ledger.
// @Tags Ledger
// @Accept json
// @Produce json
// @Param id path string true "Booking lineage root ID"
// @Param request body dto.RecordEntryRequest true "Record Entry Request"
// @Success 201 {object} response.Message "Refund recorded successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/ledger/{id}/refunds [post]
// @Security BearerAuth
func (handler *Handler) RecordRefund(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RecordRefund")
	defer scope.End()

	handler.record(ctx, w, r, "refund", handler.service.RecordRefund)
}

// GetRevenue buckets settled checkout revenue by day or month.
// @Summary Get revenue buckets
// @Description Retrieve settled revenue from checked-out stays, bucketed by day or month.
// @Tags Ledger
// @Accept json
// @Produce json
// @Param bucket query string true "Bucket size (day or month)"
// @Success 200 {object} response.Data[[]engine.RevenueBucket] "Revenue buckets"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/ledger/revenue [get]
// @Security BearerAuth
func (handler *Handler) GetRevenue(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRevenue")
	defer scope.End()

	bucket := r.URL.Query().Get("bucket")

	revenue, err := handler.service.Revenue(ctx, bucket)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get revenue")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Revenue retrieved successfully")

	response.WithJSON(w, http.StatusOK, revenue)
}

type recordFunc func(ctx context.Context, lineageRoot string, req dto.RecordEntryRequest) error

func (handler *Handler) record(ctx context.Context, w http.ResponseWriter, r *http.Request, kind string, fn recordFunc) {
	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.RecordEntryRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := fn(ctx, id, req); err != nil {
		log.Error().Err(err).Str("entry_kind", kind).Msg("failed to record ledger entry")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusCreated, "Entry recorded successfully")
}
