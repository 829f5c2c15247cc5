package domain

type Role string

const (
	// RoleClient submits tickets and follows up on its own tickets.
	RoleClient Role = "client"
	// RoleAgent triages, answers, closes and deletes any ticket.
	RoleAgent Role = "agent"
)

func IsValidRole(r string) bool {
	return r == string(RoleClient) || r == string(RoleAgent)
}

// Actor is the authenticated caller of a service operation.
// It is built per request from the session token and passed explicitly.
type Actor struct {
	ID       string
	Role     Role
	IsActive bool
}

func (a Actor) IsAgent() bool  { return a.Role == RoleAgent }
func (a Actor) IsClient() bool { return a.Role == RoleClient }

// Authenticated reports whether the actor carries an identity.
func (a Actor) Authenticated() bool { return a.ID != "" }
