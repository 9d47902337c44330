package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gestordoc/docportal/internal/api/metrics"
	"github.com/gestordoc/docportal/internal/core/domain"
	"github.com/gestordoc/docportal/internal/core/ports"
)

// ClientHandler handles administrative client management plus the
// client-facing profile endpoint.
type ClientHandler struct {
	service ports.ClientService
}

func NewClientHandler(service ports.ClientService) *ClientHandler {
	return &ClientHandler{service: service}
}

// List returns every client, including generated passwords. Admin only.
func (h *ClientHandler) List(c echo.Context) error {
	clients, err := h.service.ListClients(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]clientResponse, 0, len(clients))
	for _, cl := range clients {
		out = append(out, toClientResponse(cl))
	}
	return c.JSON(http.StatusOK, out)
}

// Create creates a client by name. Create is idempotent on
// case-insensitive exact name equality: posting an existing name returns
// the existing record unchanged.
func (h *ClientHandler) Create(c echo.Context) error {
	var req createClientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	client, err := h.service.CreateClient(c.Request().Context(), req.Name)
	if err != nil {
		return err
	}

	metrics.ClientsCreatedTotal.WithLabelValues("manual").Inc()
	return c.JSON(http.StatusCreated, toClientResponse(client))
}

// Edit applies a partial name/contract update. Unknown ids no-op with 204.
func (h *ClientHandler) Edit(c echo.Context) error {
	var req editClientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.EditClient(c.Request().Context(), c.Param("id"), ports.EditClientInput{
		Name:         req.Name,
		ContractType: req.ContractType,
	}); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete removes a client; its documents stay behind as orphans.
func (h *ClientHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteClient(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// SetPermissions replaces a client's grant list.
func (h *ClientHandler) SetPermissions(c echo.Context) error {
	var req setPermissionsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.service.SetPermissions(c.Request().Context(), c.Param("id"), req.ViewableClientIDs); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Me returns the calling client's own profile with grant ids resolved to
// names. Grants pointing at deleted clients are omitted.
func (h *ClientHandler) Me(c echo.Context) error {
	_, clientID, err := ctxClaims(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	client, err := h.service.GetClient(ctx, clientID)
	if err != nil {
		return err
	}

	viewable := make([]viewableClientResponse, 0, len(client.ViewableClientIDs))
	for _, vid := range client.ViewableClientIDs {
		granted, err := h.service.GetClient(ctx, vid)
		if err != nil {
			if errors.Is(err, domain.ErrClientNotFound) {
				continue // dangling grant, resolves to nothing
			}
			return err
		}
		viewable = append(viewable, viewableClientResponse{ID: granted.ID, Name: granted.Name})
	}

	return c.JSON(http.StatusOK, meResponse{
		ID:              client.ID,
		Name:            client.Name,
		ContractType:    string(client.ContractType),
		LastLogin:       client.LastLogin,
		ViewableClients: viewable,
	})
}

func toClientResponse(cl *domain.Client) clientResponse {
	return clientResponse{
		ID:                cl.ID,
		Name:              cl.Name,
		Password:          cl.Password,
		ContractType:      string(cl.ContractType),
		ViewableClientIDs: cl.ViewableClientIDs,
		LastLogin:         cl.LastLogin,
		CreatedAt:         cl.CreatedAt,
	}
}
