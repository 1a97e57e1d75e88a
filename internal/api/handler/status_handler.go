package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/asservice/shiftboard/internal/api/metrics"
	"github.com/asservice/shiftboard/internal/core/domain"
	"github.com/asservice/shiftboard/internal/core/ports"
)

// SetInterest handles PUT /v1/work-items/:id/statuses/:user_id/interest.
//
// @Summary      Declare interest in a work item
// @Tags         statuses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string         true  "Work item id"
// @Param        user_id  path      string         true  "Worker id"
// @Param        body     body      statusRequest  true  "Answer"
// @Success      200      {object}  domain.WorkerStatus
// @Failure      403      {object}  errorResponse
// @Failure      404      {object}  errorResponse
// @Router       /v1/work-items/{id}/statuses/{user_id}/interest [put]
func (h *ScheduleHandler) SetInterest(c echo.Context) error {
	return h.setStatus(c, domain.FieldInterest)
}

// SetAttendance handles PUT /v1/work-items/:id/statuses/:user_id/attendance.
//
// @Summary      Mark attendance
// @Description  Workers may mark themselves on the day of the shift after declaring interest; team leaders may mark their team.
// @Tags         statuses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string         true  "Work item id"
// @Param        user_id  path      string         true  "Worker id"
// @Param        body     body      statusRequest  true  "Answer and optional time"
// @Success      200      {object}  domain.WorkerStatus
// @Failure      403      {object}  errorResponse
// @Failure      404      {object}  errorResponse
// @Failure      422      {object}  errorResponse
// @Router       /v1/work-items/{id}/statuses/{user_id}/attendance [put]
func (h *ScheduleHandler) SetAttendance(c echo.Context) error {
	return h.setStatus(c, domain.FieldAttendance)
}

func (h *ScheduleHandler) setStatus(c echo.Context, field domain.StatusField) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req statusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	input := ports.StatusUpdateInput{
		WorkID: c.Param("id"),
		UserID: c.Param("user_id"),
		Value:  *req.Value,
		Time:   req.Time,
	}

	var st *domain.WorkerStatus
	if field == domain.FieldInterest {
		st, err = h.service.SetInterest(c.Request().Context(), actor, input)
	} else {
		st, err = h.service.SetAttendance(c.Request().Context(), actor, input)
	}
	if err != nil {
		return err
	}

	metrics.StatusUpdatesTotal.WithLabelValues(string(field), domain.TriStateOf(input.Value).String()).Inc()
	return c.JSON(http.StatusOK, st)
}
