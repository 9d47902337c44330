package domain

import "time"

const (
	RoleAdmin  = "admin"
	RoleClient = "client"
)

// ContractType classifies the commercial agreement a client is on.
// It is informational only; no behaviour depends on it.
type ContractType string

const (
	ContractNone     ContractType = "sin_contrato"
	ContractHourPack ContractType = "pack_horas"
	ContractMonthly  ContractType = "mensual"
)

// Valid reports whether t is one of the known contract types.
func (t ContractType) Valid() bool {
	switch t {
	case ContractNone, ContractHourPack, ContractMonthly:
		return true
	}
	return false
}

// Client is a company the portal holds documents for. Clients are created
// either by an administrator or implicitly when an uploaded document is
// attributed to a name with no existing match.
type Client struct {
	ID       string `json:"id" bson:"_id"`
	Name     string `json:"name" bson:"name"`
	Password string `json:"-" bson:"password"`
	// ViewableClientIDs lists other clients whose documents this client may
	// read ("super client" grants). Never contains the client's own id.
	ViewableClientIDs []string     `json:"viewable_client_ids" bson:"viewable_client_ids"`
	ContractType      ContractType `json:"contract_type" bson:"contract_type"`
	LastLogin         *time.Time   `json:"last_login,omitempty" bson:"last_login,omitempty"`
	CreatedAt         time.Time    `json:"created_at" bson:"created_at"`
}
