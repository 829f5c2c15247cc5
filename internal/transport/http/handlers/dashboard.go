package handlers

import (
	"net/http"

	"github.com/baechuer/helpdesk/internal/transport/http/dto"
	"github.com/baechuer/helpdesk/internal/transport/http/middleware"
	"github.com/baechuer/helpdesk/internal/transport/http/response"
)

type DashboardHandler struct {
	tickets TicketService
}

func NewDashboardHandler(tickets TicketService) *DashboardHandler {
	return &DashboardHandler{tickets: tickets}
}

// Summary serves both /api/dashboard/agent and /api/dashboard/client; the router
// gates each path by role and the stats are scoped by the caller.
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	stats, err := h.tickets.Stats(r.Context(), middleware.ActorFromContext(r.Context()))
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.ToStatsView(stats))
}
