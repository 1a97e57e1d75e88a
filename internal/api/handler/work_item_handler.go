package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/asservice/shiftboard/internal/api/metrics"
	"github.com/asservice/shiftboard/internal/core/domain"
	"github.com/asservice/shiftboard/internal/core/schedule"
)

// ListWorkItems handles GET /v1/work-items.
//
// @Summary      Search work items
// @Description  Matches title, place or assigned worker name; ordered by date.
// @Tags         work-items
// @Produce      json
// @Security     BearerAuth
// @Param        q          query     string  false  "Free-text search"
// @Param        time_slot  query     string  false  "Morning, Noon or Night"
// @Param        date       query     string  false  "YYYY-MM-DD"
// @Success      200        {array}   workItemResponse
// @Failure      400        {object}  errorResponse
// @Router       /v1/work-items [get]
func (h *ScheduleHandler) ListWorkItems(c echo.Context) error {
	slot, err := slotParam(c, false)
	if err != nil {
		return err
	}
	details := h.service.SearchWorkItems(c.Request().Context(), schedule.Filter{
		Query: c.QueryParam("q"),
		Slot:  slot,
		Date:  c.QueryParam("date"),
	})

	out := make([]workItemResponse, 0, len(details))
	for _, d := range details {
		out = append(out, toWorkItemResponse(d))
	}
	return c.JSON(http.StatusOK, out)
}

// CreateWorkItem handles POST /v1/work-items.
//
// @Summary      Post a work item
// @Tags         work-items
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      workItemRequest  true  "Work item and assignments"
// @Success      201   {object}  workItemResponse
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/work-items [post]
func (h *ScheduleHandler) CreateWorkItem(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req workItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	detail, err := h.service.CreateWorkItem(c.Request().Context(), actor, req.toInput())
	if err != nil {
		return err
	}
	metrics.WorkItemsCreatedTotal.WithLabelValues(req.TimeSlot).Inc()
	return c.JSON(http.StatusCreated, toWorkItemResponse(*detail))
}

// GetWorkItem handles GET /v1/work-items/:id.
//
// @Summary      Get a work item with its statuses
// @Tags         work-items
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Work item id"
// @Success      200  {object}  workItemResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/work-items/{id} [get]
func (h *ScheduleHandler) GetWorkItem(c echo.Context) error {
	detail, err := h.service.GetWorkItem(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toWorkItemResponse(*detail))
}

// UpdateWorkItem handles PUT /v1/work-items/:id.
//
// @Summary      Edit a work item and its assignments
// @Description  Answers of workers who stay assigned are kept.
// @Tags         work-items
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Work item id"
// @Param        body  body      workItemRequest  true  "Work item and assignments"
// @Success      200   {object}  workItemResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/work-items/{id} [put]
func (h *ScheduleHandler) UpdateWorkItem(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req workItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	detail, err := h.service.UpdateWorkItem(c.Request().Context(), actor, c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toWorkItemResponse(*detail))
}

// SendReminders handles POST /v1/work-items/:id/reminders.
//
// @Summary      Remind every assigned worker
// @Tags         work-items
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Work item id"
// @Success      200  {object}  remindersResponse
// @Failure      404  {object}  errorResponse
// @Failure      429  {object}  errorResponse
// @Router       /v1/work-items/{id}/reminders [post]
func (h *ScheduleHandler) SendReminders(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	n, err := h.service.SendReminders(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	metrics.RemindersSentTotal.Add(float64(n))
	return c.JSON(http.StatusOK, remindersResponse{Sent: n})
}

// DescribeWork handles POST /v1/work-items/describe.
//
// @Summary      Draft a work description
// @Tags         work-items
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      describeRequest  true  "Title, place and slot"
// @Success      200   {object}  describeResponse
// @Failure      400   {object}  errorResponse
// @Router       /v1/work-items/describe [post]
func (h *ScheduleHandler) DescribeWork(c echo.Context) error {
	var req describeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	text := h.service.DescribeWork(c.Request().Context(), req.Title, req.Place, domain.TimeSlot(req.TimeSlot))
	return c.JSON(http.StatusOK, describeResponse{Description: text})
}

// Availability handles GET /v1/availability.
//
// @Summary      Workers already booked on a date and slot
// @Tags         work-items
// @Produce      json
// @Security     BearerAuth
// @Param        date          query     string  true   "YYYY-MM-DD"
// @Param        time_slot     query     string  true   "Morning, Noon or Night"
// @Param        exclude_work  query     string  false  "Work item id to ignore"
// @Success      200           {object}  availabilityResponse
// @Failure      400           {object}  errorResponse
// @Router       /v1/availability [get]
func (h *ScheduleHandler) Availability(c echo.Context) error {
	date := c.QueryParam("date")
	if _, err := time.Parse(domain.DateLayout, date); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "date must match the layout 2006-01-02")
	}
	slot, err := slotParam(c, true)
	if err != nil {
		return err
	}

	busy := h.service.Availability(c.Request().Context(), date, slot, c.QueryParam("exclude_work"))
	return c.JSON(http.StatusOK, availabilityResponse{Date: date, TimeSlot: string(slot), Busy: busy})
}

// Calendar handles GET /v1/calendar.
//
// @Summary      Month grid of work items
// @Tags         work-items
// @Produce      json
// @Security     BearerAuth
// @Param        year   query     int  false  "Defaults to the current year"
// @Param        month  query     int  false  "1-12, defaults to the current month"
// @Success      200    {object}  schedule.Month
// @Failure      400    {object}  errorResponse
// @Router       /v1/calendar [get]
func (h *ScheduleHandler) Calendar(c echo.Context) error {
	now := time.Now()
	year, month := now.Year(), int(now.Month())

	if v := c.QueryParam("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil || y < 1 {
			return echo.NewHTTPError(http.StatusBadRequest, "year must be a positive integer")
		}
		year = y
	}
	if v := c.QueryParam("month"); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil || m < 1 || m > 12 {
			return echo.NewHTTPError(http.StatusBadRequest, "month must be between 1 and 12")
		}
		month = m
	}

	return c.JSON(http.StatusOK, h.service.Calendar(c.Request().Context(), year, time.Month(month)))
}

// slotParam reads the time_slot query parameter.
func slotParam(c echo.Context, required bool) (domain.TimeSlot, error) {
	slot := domain.TimeSlot(c.QueryParam("time_slot"))
	if slot == "" && !required {
		return "", nil
	}
	if !slot.Valid() {
		return "", echo.NewHTTPError(http.StatusBadRequest, "time_slot must be one of: Morning Noon Night")
	}
	return slot, nil
}
