package handler

import "time"

type createClientRequest struct {
	Name string `json:"name" validate:"required,min=1"`
}

type editClientRequest struct {
	Name         string `json:"name,omitempty"`
	ContractType string `json:"contract_type,omitempty" validate:"omitempty,oneof=sin_contrato pack_horas mensual"`
}

type setPermissionsRequest struct {
	ViewableClientIDs []string `json:"viewable_client_ids"`
}

// clientResponse is the administrator's view of a client. It is the one
// place the generated password is exposed; the admin hands it to the
// client out of band.
type clientResponse struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	Password          string     `json:"password"`
	ContractType      string     `json:"contract_type"`
	ViewableClientIDs []string   `json:"viewable_client_ids"`
	LastLogin         *time.Time `json:"last_login,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

// viewableClientResponse names a client covered by a permission grant.
type viewableClientResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// meResponse is a client's own profile; no password, grants resolved to names.
type meResponse struct {
	ID              string                   `json:"id"`
	Name            string                   `json:"name"`
	ContractType    string                   `json:"contract_type"`
	LastLogin       *time.Time               `json:"last_login,omitempty"`
	ViewableClients []viewableClientResponse `json:"viewable_clients"`
}
