package handler

import (
	"github.com/asservice/shiftboard/internal/core/ports"
)

// ScheduleHandler serves the scheduling routes: users, work items, statuses,
// the caller's own views and the admin tools.
type ScheduleHandler struct {
	service ports.ScheduleService
}

func NewScheduleHandler(service ports.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{service: service}
}
