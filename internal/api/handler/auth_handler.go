package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gestordoc/docportal/internal/api/metrics"
	"github.com/gestordoc/docportal/internal/core/domain"
	"github.com/gestordoc/docportal/internal/core/ports"
)

// AuthHandler handles the login endpoint.
type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type loginRequest struct {
	// Identifier is either the admin username or a client name.
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password"   validate:"required"`
}

type loginResponse struct {
	Token    string `json:"token"`
	Role     string `json:"role"`
	Name     string `json:"name"`
	ClientID string `json:"client_id,omitempty"`
}

// Login authenticates an admin or client and returns a bearer token.
// Failures are a single generic 401 so callers cannot enumerate clients.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	session, err := h.authService.Login(c.Request().Context(), req.Identifier, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("failure", "unknown").Inc()
		}
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success", session.Role).Inc()

	return c.JSON(http.StatusOK, loginResponse{
		Token:    session.Token,
		Role:     session.Role,
		Name:     session.Name,
		ClientID: session.ClientID,
	})
}
