package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// MyWorkItems handles GET /v1/me/work-items.
//
// @Summary      Work items assigned to the caller
// @Tags         me
// @Produce      json
// @Security     BearerAuth
// @Param        time_slot  query     string  false  "Morning, Noon or Night"
// @Success      200        {array}   assignmentResponse
// @Router       /v1/me/work-items [get]
func (h *ScheduleHandler) MyWorkItems(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	slot, err := slotParam(c, false)
	if err != nil {
		return err
	}

	assignments := h.service.MyWorkItems(c.Request().Context(), actor, slot)
	out := make([]assignmentResponse, 0, len(assignments))
	for _, a := range assignments {
		out = append(out, assignmentResponse{WorkItem: a.WorkItem, Status: a.Status, IsLeader: a.IsLeader})
	}
	return c.JSON(http.StatusOK, out)
}

// MyMessages handles GET /v1/me/messages.
//
// @Summary      Messages addressed to the caller, newest first
// @Tags         me
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Message
// @Router       /v1/me/messages [get]
func (h *ScheduleHandler) MyMessages(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	msgs := h.service.MyMessages(c.Request().Context(), actor)
	if msgs == nil {
		return c.JSON(http.StatusOK, []struct{}{})
	}
	return c.JSON(http.StatusOK, msgs)
}
