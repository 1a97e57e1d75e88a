package handler

import (
	"github.com/asservice/shiftboard/internal/core/domain"
	"github.com/asservice/shiftboard/internal/core/ports"
	"github.com/asservice/shiftboard/internal/core/schedule"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Auth ---

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"     validate:"required,role"`
}

type registerRequest struct {
	JoinCode string `json:"join_code" validate:"required"`
	Name     string `json:"name"      validate:"required"`
	Email    string `json:"email"     validate:"required,email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

type authResponse struct {
	Token string       `json:"token,omitempty"`
	User  *domain.User `json:"user,omitempty"`
}

// --- Users ---

type createWorkerRequest struct {
	Name    string `json:"name"    validate:"required"`
	Email   string `json:"email"   validate:"required,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// --- Work items ---

type workItemRequest struct {
	Title             string   `json:"title"               validate:"required"`
	Description       string   `json:"description"`
	Place             string   `json:"place"               validate:"required"`
	Date              string   `json:"date"                validate:"required,datetime=2006-01-02"`
	TimeSlot          string   `json:"time_slot"           validate:"required,timeslot"`
	StartTime         string   `json:"start_time"          validate:"omitempty,datetime=15:04"`
	EndTime           string   `json:"end_time"            validate:"omitempty,datetime=15:04"`
	TeamLeaderID      string   `json:"team_leader_id"`
	AssignedWorkerIDs []string `json:"assigned_worker_ids" validate:"dive,required"`
}

func (r workItemRequest) toInput() ports.WorkItemInput {
	return ports.WorkItemInput{
		Title:             r.Title,
		Description:       r.Description,
		Place:             r.Place,
		Date:              r.Date,
		TimeSlot:          domain.TimeSlot(r.TimeSlot),
		StartTime:         r.StartTime,
		EndTime:           r.EndTime,
		TeamLeaderID:      r.TeamLeaderID,
		AssignedWorkerIDs: r.AssignedWorkerIDs,
	}
}

type workItemResponse struct {
	domain.WorkItem
	Statuses []domain.WorkerStatus `json:"statuses"`
	Summary  schedule.Summary      `json:"summary"`
}

func toWorkItemResponse(d ports.WorkItemDetail) workItemResponse {
	statuses := d.Statuses
	if statuses == nil {
		statuses = []domain.WorkerStatus{}
	}
	return workItemResponse{WorkItem: d.WorkItem, Statuses: statuses, Summary: d.Summary}
}

type describeRequest struct {
	Title    string `json:"title"     validate:"required"`
	Place    string `json:"place"     validate:"required"`
	TimeSlot string `json:"time_slot" validate:"required,timeslot"`
}

type describeResponse struct {
	Description string `json:"description"`
}

type remindersResponse struct {
	Sent int `json:"sent"`
}

type availabilityResponse struct {
	Date     string            `json:"date"`
	TimeSlot string            `json:"time_slot"`
	Busy     map[string]string `json:"busy"`
}

// --- Statuses ---

type statusRequest struct {
	Value *bool `json:"value" validate:"required"`
	// Time is an optional "03:04 PM" override for attendance.
	Time string `json:"time"`
}

// --- Me ---

type assignmentResponse struct {
	WorkItem domain.WorkItem     `json:"work_item"`
	Status   domain.WorkerStatus `json:"status"`
	IsLeader bool                `json:"is_leader"`
}

// --- Admin ---

type joinCodeResponse struct {
	JoinCode string `json:"join_code"`
}

type insightResponse struct {
	Stats   schedule.DayStats `json:"stats"`
	Insight string            `json:"insight"`
}
