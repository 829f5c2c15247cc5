package ticket

import (
	"fmt"

	"github.com/baechuer/helpdesk/internal/domain"
)

const statusAll = "all"

func cacheKeyList(actor domain.Actor, status domain.TicketStatus) string {
	s := string(status)
	if s == "" {
		s = statusAll
	}
	if actor.IsAgent() {
		return fmt.Sprintf("tickets:list:agent:%s", s)
	}
	return fmt.Sprintf("tickets:list:client:%s:%s", actor.ID, s)
}

// listKeysFor returns every cached listing a write to a ticket owned by ownerID can affect.
func listKeysFor(ownerID string) []string {
	keys := make([]string, 0, 2*(len(domain.AllStatuses)+1))
	agent := domain.Actor{Role: domain.RoleAgent}
	owner := domain.Actor{ID: ownerID, Role: domain.RoleClient}
	keys = append(keys, cacheKeyList(agent, ""), cacheKeyList(owner, ""))
	for _, st := range domain.AllStatuses {
		keys = append(keys, cacheKeyList(agent, st), cacheKeyList(owner, st))
	}
	return keys
}
