package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/loopkey/identity-relay/internal/api/metrics"
	"github.com/loopkey/identity-relay/internal/core/domain"
	"github.com/loopkey/identity-relay/internal/core/ports"
)

// AdminHandler exposes the relayed account-management operations. Every route
// it serves sits behind the admin gate middleware.
type AdminHandler struct {
	service ports.AdminService
}

func NewAdminHandler(service ports.AdminService) *AdminHandler {
	return &AdminHandler{service: service}
}

type createUserRequest struct {
	Email    string         `json:"email" validate:"required"`
	Password string         `json:"password" validate:"required"`
	Metadata map[string]any `json:"user_metadata,omitempty"`
}

type createUserResponse struct {
	User *domain.ManagedUser `json:"user"`
}

type listUsersResponse struct {
	Users []domain.ManagedUser `json:"users"`
}

type deleteUserRequest struct {
	ID string `json:"id" validate:"required"`
}

type deleteUserResponse struct {
	Success bool `json:"success"`
}

// CreateUser relays an account creation to the identity provider.
//
// @Summary      Create a user on the identity provider
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body      createUserRequest  true  "New user details"
// @Success      200   {object}  createUserResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /admin/create-user [post]
func (h *AdminHandler) CreateUser(c echo.Context) error {
	if err := requireIdentity(c); err != nil {
		return err
	}

	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		metrics.RelayOperationsTotal.WithLabelValues("create_user", "bad_request").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.service.CreateUser(c.Request().Context(), req.Email, req.Password, req.Metadata)
	if err != nil {
		metrics.RelayOperationsTotal.WithLabelValues("create_user", outcome(err)).Inc()
		return err
	}

	metrics.RelayOperationsTotal.WithLabelValues("create_user", "ok").Inc()
	return c.JSON(http.StatusOK, createUserResponse{User: user})
}

// ListUsers relays a listing of provider accounts.
//
// Pagination is deliberately not exposed: callers receive whatever page the
// provider defaults to.
//
// @Summary      List users from the identity provider
// @Tags         admin
// @Produce      json
// @Success      200  {object}  listUsersResponse
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /admin/list-users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	if err := requireIdentity(c); err != nil {
		return err
	}

	users, err := h.service.ListUsers(c.Request().Context())
	if err != nil {
		metrics.RelayOperationsTotal.WithLabelValues("list_users", outcome(err)).Inc()
		return err
	}

	metrics.RelayOperationsTotal.WithLabelValues("list_users", "ok").Inc()
	return c.JSON(http.StatusOK, listUsersResponse{Users: users})
}

// DeleteUser relays an account deletion by identifier.
//
// @Summary      Delete a user on the identity provider
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body      deleteUserRequest  true  "Identifier of the user to delete"
// @Success      200   {object}  deleteUserResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /admin/delete-user [post]
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	if err := requireIdentity(c); err != nil {
		return err
	}

	var req deleteUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		metrics.RelayOperationsTotal.WithLabelValues("delete_user", "bad_request").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.DeleteUser(c.Request().Context(), req.ID); err != nil {
		metrics.RelayOperationsTotal.WithLabelValues("delete_user", outcome(err)).Inc()
		return err
	}

	metrics.RelayOperationsTotal.WithLabelValues("delete_user", "ok").Inc()
	return c.JSON(http.StatusOK, deleteUserResponse{Success: true})
}

func outcome(err error) string {
	var pe *domain.ProviderError
	if errors.As(err, &pe) {
		return "provider_error"
	}
	return "bad_request"
}
