package handlers

import (
	"net/http"

	"github.com/baechuer/helpdesk/internal/application/notify"
	"github.com/baechuer/helpdesk/internal/transport/http/dto"
	"github.com/baechuer/helpdesk/internal/transport/http/response"
)

type MailHandler struct {
	relay MailRelay
}

func NewMailHandler(relay MailRelay) *MailHandler {
	return &MailHandler{relay: relay}
}

// Send handles POST /api/userSendMail
func (h *MailHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req dto.SendMailRequest
	if err := response.DecodeJSON(w, r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := dto.Validate(req); err != nil {
		response.WriteError(w, r, err)
		return
	}

	if err := h.relay.Relay(r.Context(), notify.RelayCmd{
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	}); err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.MessageView{Message: "email sent"})
}
