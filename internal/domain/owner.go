package domain

import "github.com/google/uuid"

// Owner identifies the user a trip belongs to. It is issued by the external
// authentication layer and consumed here purely as an authorization key —
// this core never validates credentials.
type Owner struct {
	ID    uuid.UUID
	Email string
}
