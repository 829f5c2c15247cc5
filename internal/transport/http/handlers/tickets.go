package handlers

import (
	"net/http"

	"github.com/baechuer/helpdesk/internal/application/ticket"
	"github.com/baechuer/helpdesk/internal/transport/http/dto"
	"github.com/baechuer/helpdesk/internal/transport/http/middleware"
	"github.com/baechuer/helpdesk/internal/transport/http/response"
)

type TicketsHandler struct {
	svc TicketService
}

func NewTicketsHandler(svc TicketService) *TicketsHandler {
	return &TicketsHandler{svc: svc}
}

// List handles GET /api/tickets?status=
func (h *TicketsHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context(), middleware.ActorFromContext(r.Context()), ticket.ListFilter{
		Status: r.URL.Query().Get("status"),
	})
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.ToTicketList(items))
}

// Create handles POST /api/tickets
func (h *TicketsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTicketRequest
	if err := response.DecodeJSON(w, r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := dto.Validate(req); err != nil {
		response.WriteError(w, r, err)
		return
	}

	v, err := h.svc.Create(r.Context(), middleware.ActorFromContext(r.Context()), ticket.CreateCmd{
		Title:       req.Title,
		Description: req.Description,
		Name:        req.Name,
		Priority:    req.Priority,
	})
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.Created(w, dto.ToTicketView(v))
}

// Update handles PUT /api/tickets?id=
// The role check runs before decoding so a client is refused whatever it sends.
func (h *TicketsHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	if err := ticket.RequireAgent(actor, "update"); err != nil {
		response.WriteError(w, r, err)
		return
	}

	var req dto.UpdateTicketRequest
	if err := response.DecodeJSON(w, r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}

	v, err := h.svc.Update(r.Context(), actor, ticket.UpdateCmd{
		ID:    r.URL.Query().Get("id"),
		Patch: req.Patch(),
	})
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.ToTicketView(v))
}

// Delete handles DELETE /api/tickets?id=
func (h *TicketsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	t, err := h.svc.Delete(r.Context(), middleware.ActorFromContext(r.Context()), r.URL.Query().Get("id"))
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.ToTicket(t))
}
