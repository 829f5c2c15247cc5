package handlers

import (
	"net/http"

	"github.com/baechuer/helpdesk/internal/application/comment"
	"github.com/baechuer/helpdesk/internal/transport/http/dto"
	"github.com/baechuer/helpdesk/internal/transport/http/middleware"
	"github.com/baechuer/helpdesk/internal/transport/http/response"
)

type CommentsHandler struct {
	svc CommentService
}

func NewCommentsHandler(svc CommentService) *CommentsHandler {
	return &CommentsHandler{svc: svc}
}

// List handles GET /api/comments?ticketId=
func (h *CommentsHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context(), middleware.ActorFromContext(r.Context()), r.URL.Query().Get("ticketId"))
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.ToCommentList(items))
}

// Create handles POST /api/comments
func (h *CommentsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCommentRequest
	if err := response.DecodeJSON(w, r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := dto.Validate(req); err != nil {
		response.WriteError(w, r, err)
		return
	}

	v, err := h.svc.Create(r.Context(), middleware.ActorFromContext(r.Context()), comment.CreateCmd{
		TicketID: req.TicketID,
		Message:  req.Message,
	})
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.Created(w, dto.ToCommentView(v))
}
