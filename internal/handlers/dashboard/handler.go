package dashboard

import (
	"net/http"

	"lodge/infras/otel"
	"lodge/internal/domains/dashboard/service"
	"lodge/shared/constant"
	"lodge/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Dashboard
	otel    otel.Otel
}

func New(service service.Dashboard, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/dashboard", handler.GetDashboard)
}

// GetDashboard returns occupancy counts and the most recent bookings.
// @Summary Get dashboard statistics
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Data[dto.DashboardResponse] "Dashboard statistics"
// @Failure 500 {object} response.Error
// @Router /v1/dashboard [get]
// @Security BearerAuth
func (handler *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDashboard")
	defer scope.End()

	res, err := handler.service.Get(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get dashboard")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
