package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/asservice/shiftboard/internal/core/domain"
)

const mimeCSV = "text/csv; charset=utf-8"

// JoinCode handles GET /v1/join-code.
//
// @Summary      Current join code
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  joinCodeResponse
// @Router       /v1/join-code [get]
func (h *ScheduleHandler) JoinCode(c echo.Context) error {
	return c.JSON(http.StatusOK, joinCodeResponse{JoinCode: h.service.JoinCode(c.Request().Context())})
}

// RegenerateJoinCode handles POST /v1/join-code/regenerate.
//
// @Summary      Draw a new join code
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  joinCodeResponse
// @Router       /v1/join-code/regenerate [post]
func (h *ScheduleHandler) RegenerateJoinCode(c echo.Context) error {
	code, err := h.service.RegenerateJoinCode(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, joinCodeResponse{JoinCode: code})
}

// DailyInsight handles GET /v1/insights/daily.
//
// @Summary      Today's numbers with a drafted remark
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  insightResponse
// @Router       /v1/insights/daily [get]
func (h *ScheduleHandler) DailyInsight(c echo.Context) error {
	in := h.service.DailyInsight(c.Request().Context())
	return c.JSON(http.StatusOK, insightResponse{Stats: in.Stats, Insight: in.Insight})
}

// ExportWorkers handles GET /v1/exports/workers.csv.
//
// @Summary      Worker roster as CSV
// @Tags         exports
// @Produce      text/csv
// @Security     BearerAuth
// @Success      200  {string}  string
// @Router       /v1/exports/workers.csv [get]
func (h *ScheduleHandler) ExportWorkers(c echo.Context) error {
	var buf bytes.Buffer
	if err := h.service.ExportWorkers(c.Request().Context(), &buf); err != nil {
		return err
	}
	return attachment(c, "workers_list", buf.Bytes())
}

// ExportSchedule handles GET /v1/exports/schedule.csv.
//
// @Summary      Work schedule report as CSV
// @Tags         exports
// @Produce      text/csv
// @Security     BearerAuth
// @Success      200  {string}  string
// @Router       /v1/exports/schedule.csv [get]
func (h *ScheduleHandler) ExportSchedule(c echo.Context) error {
	var buf bytes.Buffer
	if err := h.service.ExportSchedule(c.Request().Context(), &buf); err != nil {
		return err
	}
	return attachment(c, "work_schedule", buf.Bytes())
}

// attachment sends body as a dated CSV download, e.g. workers_list_2026-03-14.csv.
func attachment(c echo.Context, prefix string, body []byte) error {
	name := fmt.Sprintf("%s_%s.csv", prefix, time.Now().Format(domain.DateLayout))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.Blob(http.StatusOK, mimeCSV, body)
}
