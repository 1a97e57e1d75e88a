package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/asservice/shiftboard/internal/core/domain"
	"github.com/asservice/shiftboard/internal/core/export"
	"github.com/asservice/shiftboard/internal/core/ports"
	"github.com/asservice/shiftboard/internal/core/schedule"
	"github.com/asservice/shiftboard/internal/core/store"
)

const defaultReminderWindow = time.Hour

var (
	_ ports.ScheduleService   = (*ScheduleService)(nil)
	_ ports.FollowUpProcessor = (*ScheduleService)(nil)
)

// ScheduleOptions configures a ScheduleService.
type ScheduleOptions struct {
	UniqueEmails   bool
	ReminderWindow time.Duration
	// Guard suppresses repeated reminder broadcasts. Nil disables it.
	Guard ports.ReminderGuard
	Now   func() time.Time
}

// ScheduleService applies the role rules on top of the domain store.
type ScheduleService struct {
	store     *store.Store
	gen       ports.TextGenerator
	followUps ports.FollowUpQueue
	opts      ScheduleOptions
	logger    zerolog.Logger
}

func NewScheduleService(st *store.Store, gen ports.TextGenerator, opts ScheduleOptions, logger zerolog.Logger) *ScheduleService {
	if opts.ReminderWindow <= 0 {
		opts.ReminderWindow = defaultReminderWindow
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &ScheduleService{store: st, gen: gen, opts: opts, logger: logger}
}

// UseFollowUpQueue routes interest follow-ups through q. Without a queue no
// follow-up messages are drafted.
func (s *ScheduleService) UseFollowUpQueue(q ports.FollowUpQueue) {
	s.followUps = q
}

func (s *ScheduleService) AddWorker(ctx context.Context, actor ports.Actor, input ports.WorkerInput) (*domain.User, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	user, err := createWorker(ctx, s.store, s.opts.UniqueEmails, input)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", user.ID.String()).Str("admin_id", actor.UserID).Msg("worker added")
	return user, nil
}

// ListUsers returns every user, or only those with role when it is set.
func (s *ScheduleService) ListUsers(_ context.Context, role domain.Role) []domain.User {
	users := s.store.Users()
	if role == "" {
		return users
	}
	out := make([]domain.User, 0, len(users))
	for _, u := range users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out
}

func (s *ScheduleService) CreateWorkItem(ctx context.Context, actor ports.Actor, input ports.WorkItemInput) (*ports.WorkItemDetail, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	ids, err := assignedIDs(input)
	if err != nil {
		return nil, err
	}

	w := workItemFrom(input)
	w.CreatedBy = domain.ID(actor.UserID)

	created, err := s.store.AddWorkItem(ctx, w, ids)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to persist work item")
		return nil, err
	}

	s.logger.Info().Str("work_id", created.ID.String()).Int("assigned", len(ids)).Msg("work item created")
	return s.detail(s.store.Snapshot(), created), nil
}

// UpdateWorkItem replaces the editable fields of id and reconciles its
// assignments. The creator is kept from the stored item.
func (s *ScheduleService) UpdateWorkItem(ctx context.Context, actor ports.Actor, id string, input ports.WorkItemInput) (*ports.WorkItemDetail, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	existing, ok := s.store.WorkItem(domain.ID(id))
	if !ok {
		return nil, domain.ErrWorkItemNotFound
	}
	ids, err := assignedIDs(input)
	if err != nil {
		return nil, err
	}

	w := workItemFrom(input)
	w.ID = existing.ID
	w.CreatedBy = existing.CreatedBy

	found, err := s.store.UpdateWorkItem(ctx, w, ids)
	if err != nil {
		s.logger.Error().Err(err).Str("work_id", id).Msg("failed to persist work item update")
		return nil, err
	}
	if !found {
		return nil, domain.ErrWorkItemNotFound
	}

	s.logger.Info().Str("work_id", id).Int("assigned", len(ids)).Msg("work item updated")
	return s.detail(s.store.Snapshot(), w), nil
}

func (s *ScheduleService) GetWorkItem(_ context.Context, id string) (*ports.WorkItemDetail, error) {
	snap := s.store.Snapshot()
	w, ok := snap.WorkItem(domain.ID(id))
	if !ok {
		return nil, domain.ErrWorkItemNotFound
	}
	return s.detail(snap, w), nil
}

func (s *ScheduleService) SearchWorkItems(_ context.Context, filter schedule.Filter) []ports.WorkItemDetail {
	snap := s.store.Snapshot()
	items := schedule.Search(snap, filter)
	out := make([]ports.WorkItemDetail, 0, len(items))
	for _, w := range items {
		out = append(out, *s.detail(snap, w))
	}
	return out
}

// Availability maps each worker already booked on date and slot to the label
// of the clashing item.
func (s *ScheduleService) Availability(_ context.Context, date string, slot domain.TimeSlot, excludeWorkID string) map[string]string {
	conflicts := schedule.Conflicts(s.store.Snapshot(), date, slot, domain.ID(excludeWorkID))
	out := make(map[string]string, len(conflicts))
	for userID, label := range conflicts {
		out[userID.String()] = label
	}
	return out
}

func (s *ScheduleService) Calendar(_ context.Context, year int, month time.Month) schedule.Month {
	return schedule.CalendarMonth(s.store.Snapshot(), year, month)
}

// SetInterest records a worker's answer. Only the worker or an admin may
// answer. A follow-up is queued after the change is stored.
func (s *ScheduleService) SetInterest(ctx context.Context, actor ports.Actor, input ports.StatusUpdateInput) (*domain.WorkerStatus, error) {
	if !actor.IsAdmin() && actor.UserID != input.UserID {
		return nil, domain.ErrForbidden
	}
	if _, ok := s.store.WorkItem(domain.ID(input.WorkID)); !ok {
		return nil, domain.ErrWorkItemNotFound
	}

	st, err := s.updateStatus(ctx, input, domain.FieldInterest)
	if err != nil {
		return nil, err
	}

	if s.followUps != nil {
		s.followUps.Enqueue(ports.FollowUpRequest{
			WorkID:     input.WorkID,
			WorkerID:   input.UserID,
			Interested: input.Value,
		})
	}
	return st, nil
}

// SetAttendance records a check-in. Admins may mark anyone and the item's
// team leader may mark teammates. Anyone else marking themselves, the
// leader included, must have declared interest and may only do so on the
// day of the shift.
func (s *ScheduleService) SetAttendance(ctx context.Context, actor ports.Actor, input ports.StatusUpdateInput) (*domain.WorkerStatus, error) {
	w, ok := s.store.WorkItem(domain.ID(input.WorkID))
	if !ok {
		return nil, domain.ErrWorkItemNotFound
	}

	self := actor.UserID == input.UserID

	switch {
	case actor.IsAdmin():
	case self:
		current, found := s.store.Status(w.ID, domain.ID(input.UserID))
		if !found {
			return nil, domain.ErrStatusNotFound
		}
		if current.Interest != domain.Yes || w.Date != s.today() {
			return nil, domain.ErrAttendanceClosed
		}
	case w.LedBy(domain.ID(actor.UserID)):
	default:
		return nil, domain.ErrForbidden
	}

	return s.updateStatus(ctx, input, domain.FieldAttendance)
}

func (s *ScheduleService) updateStatus(ctx context.Context, input ports.StatusUpdateInput, field domain.StatusField) (*domain.WorkerStatus, error) {
	st, found, err := s.store.UpdateWorkerStatus(ctx, domain.ID(input.WorkID), domain.ID(input.UserID), field, input.Value, input.Time)
	if err != nil {
		s.logger.Error().Err(err).Str("work_id", input.WorkID).Str("user_id", input.UserID).Msg("failed to persist status")
		return nil, err
	}
	if !found {
		return nil, domain.ErrStatusNotFound
	}

	s.logger.Info().
		Str("work_id", input.WorkID).
		Str("user_id", input.UserID).
		Str("field", string(field)).
		Bool("value", input.Value).
		Msg("status updated")
	return &st, nil
}

func (s *ScheduleService) MyWorkItems(_ context.Context, actor ports.Actor, slot domain.TimeSlot) []schedule.Assignment {
	return schedule.AssignedTo(s.store.Snapshot(), domain.ID(actor.UserID), slot)
}

func (s *ScheduleService) MyMessages(_ context.Context, actor ports.Actor) []domain.Message {
	return schedule.Inbox(s.store.Snapshot(), domain.ID(actor.UserID))
}

// SendReminders messages every worker assigned to workID and returns how
// many messages were sent.
func (s *ScheduleService) SendReminders(ctx context.Context, actor ports.Actor, workID string) (int, error) {
	if !actor.IsAdmin() {
		return 0, domain.ErrForbidden
	}
	snap := s.store.Snapshot()
	w, ok := snap.WorkItem(domain.ID(workID))
	if !ok {
		return 0, domain.ErrWorkItemNotFound
	}

	if s.opts.Guard != nil {
		acquired, err := s.opts.Guard.Acquire(ctx, workID, s.opts.ReminderWindow)
		if err != nil {
			s.logger.Warn().Err(err).Str("work_id", workID).Msg("reminder guard unavailable")
		} else if !acquired {
			return 0, domain.ErrReminderRecentlySent
		}
	}

	content := ReminderText(w)
	sent := 0
	for _, st := range snap.StatusesFor(w.ID) {
		if _, err := s.store.SendMessage(ctx, domain.Message{
			FromAdminID: domain.ID(actor.UserID),
			ToUserID:    st.UserID,
			WorkID:      w.ID,
			Content:     content,
		}); err != nil {
			return sent, err
		}
		sent++
	}

	s.logger.Info().Str("work_id", workID).Int("sent", sent).Msg("reminders sent")
	return sent, nil
}

// ReminderText is the message sent to each assigned worker.
func ReminderText(w domain.WorkItem) string {
	return fmt.Sprintf(`Reminder: You have a shift for "%s" at %s tomorrow (%s %s). Please confirm your attendance.`,
		w.Title, w.Place, w.Date, w.StartTime)
}

func (s *ScheduleService) JoinCode(_ context.Context) string {
	return s.store.JoinCode()
}

func (s *ScheduleService) RegenerateJoinCode(ctx context.Context) (string, error) {
	code, err := s.store.RegenerateJoinCode(ctx)
	if err != nil {
		return "", err
	}
	s.logger.Info().Msg("join code regenerated")
	return code, nil
}

func (s *ScheduleService) ExportWorkers(_ context.Context, w io.Writer) error {
	return export.WriteRosterCSV(w, export.WorkerRoster(s.store.Snapshot()))
}

func (s *ScheduleService) ExportSchedule(_ context.Context, w io.Writer) error {
	return export.WriteScheduleCSV(w, export.Schedule(s.store.Snapshot()))
}

func (s *ScheduleService) DescribeWork(ctx context.Context, title, place string, slot domain.TimeSlot) string {
	return s.gen.Describe(ctx, title, place, slot)
}

func (s *ScheduleService) DailyInsight(ctx context.Context) ports.DailyInsight {
	stats := schedule.DailyStats(s.store.Snapshot(), s.today())
	return ports.DailyInsight{
		Stats:   stats,
		Insight: s.gen.Insight(ctx, stats.ActiveWork, stats.Interested, stats.NotInterested),
	}
}

// ProcessFollowUp drafts a note from the worker to the item's creator. An
// empty draft sends nothing.
func (s *ScheduleService) ProcessFollowUp(ctx context.Context, req ports.FollowUpRequest) error {
	snap := s.store.Snapshot()
	w, ok := snap.WorkItem(domain.ID(req.WorkID))
	if !ok {
		return domain.ErrWorkItemNotFound
	}
	worker, ok := snap.User(domain.ID(req.WorkerID))
	if !ok {
		return domain.ErrUserNotFound
	}

	text := s.gen.FollowUp(ctx, w.Title, worker.Name, req.Interested)
	if text == "" {
		return nil
	}

	_, err := s.store.SendMessage(ctx, domain.Message{
		FromAdminID: worker.ID,
		ToUserID:    w.CreatedBy,
		WorkID:      w.ID,
		Content:     text,
	})
	return err
}

func (s *ScheduleService) today() string {
	return s.opts.Now().Format(domain.DateLayout)
}

func (s *ScheduleService) detail(snap domain.Snapshot, w domain.WorkItem) *ports.WorkItemDetail {
	return &ports.WorkItemDetail{
		WorkItem: w,
		Statuses: snap.StatusesFor(w.ID),
		Summary:  schedule.Summarize(snap, w.ID),
	}
}

func workItemFrom(input ports.WorkItemInput) domain.WorkItem {
	return domain.WorkItem{
		Title:        strings.TrimSpace(input.Title),
		Description:  input.Description,
		Place:        strings.TrimSpace(input.Place),
		Date:         input.Date,
		TimeSlot:     input.TimeSlot,
		StartTime:    input.StartTime,
		EndTime:      input.EndTime,
		TeamLeaderID: domain.ID(input.TeamLeaderID),
	}
}

// assignedIDs converts the input's worker list and checks that a named team
// leader is among them.
func assignedIDs(input ports.WorkItemInput) ([]domain.ID, error) {
	ids := make([]domain.ID, 0, len(input.AssignedWorkerIDs))
	leaderAssigned := input.TeamLeaderID == ""
	for _, id := range input.AssignedWorkerIDs {
		ids = append(ids, domain.ID(id))
		if id == input.TeamLeaderID {
			leaderAssigned = true
		}
	}
	if !leaderAssigned {
		return nil, domain.ErrTeamLeaderNotAssigned
	}
	return ids, nil
}
