package ports

import (
	"context"
	"io"
	"time"

	"github.com/asservice/shiftboard/internal/core/domain"
	"github.com/asservice/shiftboard/internal/core/schedule"
)

// Actor is the authenticated caller, taken from the token claims.
type Actor struct {
	UserID string
	Role   domain.Role
}

// IsAdmin reports whether the caller holds the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == domain.RoleAdmin
}

// WorkerInput carries an admin-created worker account.
type WorkerInput struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

// WorkItemInput carries the editable fields of a work item plus its
// assignment list.
type WorkItemInput struct {
	Title             string
	Description       string
	Place             string
	Date              string
	TimeSlot          domain.TimeSlot
	StartTime         string
	EndTime           string
	TeamLeaderID      string
	AssignedWorkerIDs []string
}

// WorkItemDetail is a work item with its assignments and answer counts.
type WorkItemDetail struct {
	WorkItem domain.WorkItem
	Statuses []domain.WorkerStatus
	Summary  schedule.Summary
}

// StatusUpdateInput changes one answer on a worker status.
type StatusUpdateInput struct {
	WorkID string
	UserID string
	Value  bool
	// Time overrides the recorded attendance time; empty means now.
	Time string
}

// DailyInsight pairs today's numbers with a drafted remark.
type DailyInsight struct {
	Stats   schedule.DayStats
	Insight string
}

// ScheduleService defines the scheduling use cases.
type ScheduleService interface {
	AddWorker(ctx context.Context, actor Actor, input WorkerInput) (*domain.User, error)
	ListUsers(ctx context.Context, role domain.Role) []domain.User

	CreateWorkItem(ctx context.Context, actor Actor, input WorkItemInput) (*WorkItemDetail, error)
	UpdateWorkItem(ctx context.Context, actor Actor, id string, input WorkItemInput) (*WorkItemDetail, error)
	GetWorkItem(ctx context.Context, id string) (*WorkItemDetail, error)
	SearchWorkItems(ctx context.Context, filter schedule.Filter) []WorkItemDetail
	Availability(ctx context.Context, date string, slot domain.TimeSlot, excludeWorkID string) map[string]string
	Calendar(ctx context.Context, year int, month time.Month) schedule.Month

	SetInterest(ctx context.Context, actor Actor, input StatusUpdateInput) (*domain.WorkerStatus, error)
	SetAttendance(ctx context.Context, actor Actor, input StatusUpdateInput) (*domain.WorkerStatus, error)

	MyWorkItems(ctx context.Context, actor Actor, slot domain.TimeSlot) []schedule.Assignment
	MyMessages(ctx context.Context, actor Actor) []domain.Message
	SendReminders(ctx context.Context, actor Actor, workID string) (int, error)

	JoinCode(ctx context.Context) string
	RegenerateJoinCode(ctx context.Context) (string, error)

	ExportWorkers(ctx context.Context, w io.Writer) error
	ExportSchedule(ctx context.Context, w io.Writer) error

	DescribeWork(ctx context.Context, title, place string, slot domain.TimeSlot) string
	DailyInsight(ctx context.Context) DailyInsight
}
