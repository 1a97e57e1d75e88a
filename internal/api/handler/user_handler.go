package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/asservice/shiftboard/internal/core/domain"
	"github.com/asservice/shiftboard/internal/core/ports"
)

// ListUsers handles GET /v1/users.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        role  query     string  false  "Filter by role (admin, worker)"
// @Success      200   {array}   domain.User
// @Failure      400   {object}  errorResponse
// @Router       /v1/users [get]
func (h *ScheduleHandler) ListUsers(c echo.Context) error {
	role := domain.Role(c.QueryParam("role"))
	if role != "" && !role.Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "role must be one of: admin worker")
	}
	return c.JSON(http.StatusOK, h.service.ListUsers(c.Request().Context(), role))
}

// CreateWorker handles POST /v1/users.
//
// @Summary      Add a worker
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createWorkerRequest  true  "Worker details"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/users [post]
func (h *ScheduleHandler) CreateWorker(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req createWorkerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.service.AddWorker(c.Request().Context(), actor, ports.WorkerInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, user)
}
