package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Vaidy74/Yathashakti-sub001/internal/model"
	"github.com/Vaidy74/Yathashakti-sub001/internal/repository"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
	seq   int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		m.seq++
		user.UserID = fmt.Sprintf("user-%d", m.seq)
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id string, _ string) error {
	if _, ok := m.users[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.users, id)
	return nil
}

func (m *mockUserRepo) List(_ context.Context, offset, limit int) ([]model.User, int64, error) {
	var result []model.User
	for _, u := range m.users {
		result = append(result, *u)
	}
	return result, int64(len(result)), nil
}

// ── Mock GranteeRepository ──

type mockGranteeRepo struct {
	grantees map[string]*model.Grantee
	seq      int
}

func newMockGranteeRepo() *mockGranteeRepo {
	return &mockGranteeRepo{grantees: make(map[string]*model.Grantee)}
}

func (m *mockGranteeRepo) Create(_ context.Context, grantee *model.Grantee) error {
	if grantee.GranteeID == "" {
		m.seq++
		grantee.GranteeID = fmt.Sprintf("grantee-%d", m.seq)
	}
	m.grantees[grantee.GranteeID] = grantee
	return nil
}

func (m *mockGranteeRepo) GetByID(_ context.Context, id string) (*model.Grantee, error) {
	if g, ok := m.grantees[id]; ok {
		return g, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockGranteeRepo) List(_ context.Context, keyword, status string, offset, limit int) ([]model.Grantee, int64, error) {
	var result []model.Grantee
	for _, g := range m.grantees {
		if status != "" && g.Status != status {
			continue
		}
		result = append(result, *g)
	}
	return result, int64(len(result)), nil
}

func (m *mockGranteeRepo) Update(_ context.Context, grantee *model.Grantee) error {
	m.grantees[grantee.GranteeID] = grantee
	return nil
}

func (m *mockGranteeRepo) Delete(_ context.Context, id string, _ string) error {
	if _, ok := m.grantees[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.grantees, id)
	return nil
}

// ── Mock ProgramRepository ──

type mockProgramRepo struct {
	programs map[string]*model.Program
	seq      int
}

func newMockProgramRepo() *mockProgramRepo {
	return &mockProgramRepo{programs: make(map[string]*model.Program)}
}

func (m *mockProgramRepo) Create(_ context.Context, program *model.Program) error {
	if program.ProgramID == "" {
		m.seq++
		program.ProgramID = fmt.Sprintf("program-%d", m.seq)
	}
	m.programs[program.ProgramID] = program
	return nil
}

func (m *mockProgramRepo) GetByID(_ context.Context, id string) (*model.Program, error) {
	if p, ok := m.programs[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProgramRepo) List(_ context.Context, status string, offset, limit int) ([]model.Program, int64, error) {
	var result []model.Program
	for _, p := range m.programs {
		if status != "" && p.Status != status {
			continue
		}
		result = append(result, *p)
	}
	return result, int64(len(result)), nil
}

func (m *mockProgramRepo) Update(_ context.Context, program *model.Program) error {
	m.programs[program.ProgramID] = program
	return nil
}

func (m *mockProgramRepo) Delete(_ context.Context, id string, _ string) error {
	if _, ok := m.programs[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.programs, id)
	return nil
}

// ── Mock ProviderRepository ──

type mockProviderRepo struct {
	providers map[string]*model.ServiceProvider
	seq       int
}

func newMockProviderRepo() *mockProviderRepo {
	return &mockProviderRepo{providers: make(map[string]*model.ServiceProvider)}
}

func (m *mockProviderRepo) Create(_ context.Context, provider *model.ServiceProvider) error {
	if provider.ProviderID == "" {
		m.seq++
		provider.ProviderID = fmt.Sprintf("provider-%d", m.seq)
	}
	m.providers[provider.ProviderID] = provider
	return nil
}

func (m *mockProviderRepo) GetByID(_ context.Context, id string) (*model.ServiceProvider, error) {
	if p, ok := m.providers[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProviderRepo) List(_ context.Context, keyword, category string, offset, limit int) ([]model.ServiceProvider, int64, error) {
	var result []model.ServiceProvider
	for _, p := range m.providers {
		result = append(result, *p)
	}
	return result, int64(len(result)), nil
}

func (m *mockProviderRepo) Update(_ context.Context, provider *model.ServiceProvider) error {
	m.providers[provider.ProviderID] = provider
	return nil
}

func (m *mockProviderRepo) Delete(_ context.Context, id string, _ string) error {
	if _, ok := m.providers[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.providers, id)
	return nil
}

// ── Mock GrantRepository ──

type mockGrantRepo struct {
	grants map[string]*model.Grant
	seq    int
}

func newMockGrantRepo() *mockGrantRepo {
	return &mockGrantRepo{grants: make(map[string]*model.Grant)}
}

func (m *mockGrantRepo) Create(_ context.Context, grant *model.Grant) error {
	if grant.GrantID == "" {
		m.seq++
		grant.GrantID = fmt.Sprintf("grant-%d", m.seq)
	}
	m.grants[grant.GrantID] = grant
	return nil
}

func (m *mockGrantRepo) GetByID(_ context.Context, id string) (*model.Grant, error) {
	if g, ok := m.grants[id]; ok {
		return g, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockGrantRepo) List(_ context.Context, filter *repository.GrantListFilter) ([]model.Grant, int64, error) {
	var result []model.Grant
	for _, g := range m.grants {
		if filter.GranteeID != "" && g.GranteeID != filter.GranteeID {
			continue
		}
		if filter.Status != "" && g.Status != filter.Status {
			continue
		}
		result = append(result, *g)
	}
	return result, int64(len(result)), nil
}

func (m *mockGrantRepo) Update(_ context.Context, grant *model.Grant) error {
	m.grants[grant.GrantID] = grant
	return nil
}

func (m *mockGrantRepo) Delete(_ context.Context, id string, _ string) error {
	if _, ok := m.grants[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.grants, id)
	return nil
}

func (m *mockGrantRepo) ListRepayingWithSchedule(_ context.Context) ([]model.Grant, error) {
	var result []model.Grant
	for _, g := range m.grants {
		if (g.Status == model.GrantStatusDisbursed || g.Status == model.GrantStatusRepaying) && len(g.Schedule) > 0 {
			result = append(result, *g)
		}
	}
	return result, nil
}

// ── Mock RepaymentRepository ──

type mockRepaymentRepo struct {
	repayments map[string]*model.Repayment
	seq        int
}

func newMockRepaymentRepo() *mockRepaymentRepo {
	return &mockRepaymentRepo{repayments: make(map[string]*model.Repayment)}
}

func (m *mockRepaymentRepo) Create(_ context.Context, repayment *model.Repayment) error {
	if repayment.RepaymentID == "" {
		m.seq++
		repayment.RepaymentID = fmt.Sprintf("repayment-%d", m.seq)
	}
	m.repayments[repayment.RepaymentID] = repayment
	return nil
}

func (m *mockRepaymentRepo) GetByID(_ context.Context, id string) (*model.Repayment, error) {
	if r, ok := m.repayments[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRepaymentRepo) ListByGrant(_ context.Context, grantID string) ([]model.Repayment, error) {
	var result []model.Repayment
	for _, r := range m.repayments {
		if r.GrantID == grantID {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockRepaymentRepo) List(_ context.Context, offset, limit int) ([]model.Repayment, int64, error) {
	var result []model.Repayment
	for _, r := range m.repayments {
		result = append(result, *r)
	}
	return result, int64(len(result)), nil
}

func (m *mockRepaymentRepo) Delete(_ context.Context, id string, _ string) error {
	if _, ok := m.repayments[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.repayments, id)
	return nil
}

// ── Mock TaskRepository ──

type mockTaskRepo struct {
	tasks map[string]*model.Task
	seq   int
}

func newMockTaskRepo() *mockTaskRepo {
	return &mockTaskRepo{tasks: make(map[string]*model.Task)}
}

func (m *mockTaskRepo) Create(_ context.Context, task *model.Task) error {
	if task.TaskID == "" {
		m.seq++
		task.TaskID = fmt.Sprintf("task-%d", m.seq)
	}
	m.tasks[task.TaskID] = task
	return nil
}

func (m *mockTaskRepo) GetByID(_ context.Context, id string) (*model.Task, error) {
	if t, ok := m.tasks[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTaskRepo) List(_ context.Context, filter *repository.TaskListFilter) ([]model.Task, int64, error) {
	var result []model.Task
	for _, t := range m.tasks {
		if filter.AssigneeID != "" && (t.AssigneeID == nil || *t.AssigneeID != filter.AssigneeID) {
			continue
		}
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		result = append(result, *t)
	}
	return result, int64(len(result)), nil
}

func (m *mockTaskRepo) Update(_ context.Context, task *model.Task) error {
	m.tasks[task.TaskID] = task
	return nil
}

func (m *mockTaskRepo) Delete(_ context.Context, id string, _ string) error {
	if _, ok := m.tasks[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.tasks, id)
	return nil
}

func (m *mockTaskRepo) ListDueBetween(_ context.Context, assigneeID string, from, to time.Time) ([]model.Task, error) {
	var result []model.Task
	for _, t := range m.tasks {
		if !model.IsOpenTaskStatus(t.Status) || t.DueDate == nil {
			continue
		}
		if t.AssigneeID == nil || *t.AssigneeID != assigneeID {
			continue
		}
		if t.DueDate.Before(from) || t.DueDate.After(to) {
			continue
		}
		result = append(result, *t)
	}
	return result, nil
}

func (m *mockTaskRepo) ListOverdue(_ context.Context, before time.Time) ([]model.Task, error) {
	var result []model.Task
	for _, t := range m.tasks {
		if !model.IsOpenTaskStatus(t.Status) || t.DueDate == nil {
			continue
		}
		if t.DueDate.Before(before) {
			result = append(result, *t)
		}
	}
	return result, nil
}

func (m *mockTaskRepo) ListOpenWithDueDate(_ context.Context) ([]model.Task, error) {
	var result []model.Task
	for _, t := range m.tasks {
		if model.IsOpenTaskStatus(t.Status) && t.DueDate != nil {
			result = append(result, *t)
		}
	}
	return result, nil
}

// ── Mock LedgerRepository ──

type mockLedgerRepo struct {
	entries map[string]*model.LedgerEntry
	seq     int
}

func newMockLedgerRepo() *mockLedgerRepo {
	return &mockLedgerRepo{entries: make(map[string]*model.LedgerEntry)}
}

func (m *mockLedgerRepo) Create(_ context.Context, entry *model.LedgerEntry) error {
	if entry.EntryID == "" {
		m.seq++
		entry.EntryID = fmt.Sprintf("entry-%d", m.seq)
	}
	m.entries[entry.EntryID] = entry
	return nil
}

func (m *mockLedgerRepo) GetByID(_ context.Context, id string) (*model.LedgerEntry, error) {
	if e, ok := m.entries[id]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLedgerRepo) List(_ context.Context, filter *repository.LedgerListFilter) ([]model.LedgerEntry, int64, error) {
	var result []model.LedgerEntry
	for _, e := range m.entries {
		if filter.GrantID != "" && (e.GrantID == nil || *e.GrantID != filter.GrantID) {
			continue
		}
		if filter.Type != "" && e.Type != filter.Type {
			continue
		}
		result = append(result, *e)
	}
	return result, int64(len(result)), nil
}

func (m *mockLedgerRepo) Update(_ context.Context, entry *model.LedgerEntry) error {
	m.entries[entry.EntryID] = entry
	return nil
}

func (m *mockLedgerRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.entries[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.entries, id)
	return nil
}

func (m *mockLedgerRepo) SummarizeByType(_ context.Context, from, to *time.Time) ([]repository.LedgerSummary, error) {
	byType := make(map[string]*repository.LedgerSummary)
	for _, e := range m.entries {
		if from != nil && e.EntryDate.Before(*from) {
			continue
		}
		if to != nil && e.EntryDate.After(*to) {
			continue
		}
		s, ok := byType[e.Type]
		if !ok {
			s = &repository.LedgerSummary{Type: e.Type}
			byType[e.Type] = s
		}
		s.Total += e.Amount
		s.Count++
	}
	var result []repository.LedgerSummary
	for _, s := range byType {
		result = append(result, *s)
	}
	return result, nil
}

func (m *mockLedgerRepo) ListForExport(_ context.Context, from, to *time.Time) ([]model.LedgerEntry, error) {
	var result []model.LedgerEntry
	for _, e := range m.entries {
		if from != nil && e.EntryDate.Before(*from) {
			continue
		}
		if to != nil && e.EntryDate.After(*to) {
			continue
		}
		result = append(result, *e)
	}
	return result, nil
}

// ── Mock NotificationRepository ──

type mockNotificationRepo struct {
	notifications map[string]*model.Notification
	seq           int
	failCreateFor string // 指定接收人时 Create 返回错误，用于故障隔离测试
}

func newMockNotificationRepo() *mockNotificationRepo {
	return &mockNotificationRepo{notifications: make(map[string]*model.Notification)}
}

func (m *mockNotificationRepo) Create(_ context.Context, notification *model.Notification) error {
	if m.failCreateFor != "" && notification.RecipientID == m.failCreateFor {
		return fmt.Errorf("模拟存储故障")
	}
	if notification.NotificationID == "" {
		m.seq++
		notification.NotificationID = fmt.Sprintf("notif-%d", m.seq)
	}
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now()
	}
	m.notifications[notification.NotificationID] = notification
	return nil
}

func (m *mockNotificationRepo) GetByID(_ context.Context, id string) (*model.Notification, error) {
	if n, ok := m.notifications[id]; ok {
		return n, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockNotificationRepo) List(_ context.Context, filter *repository.NotificationListFilter) ([]model.Notification, int64, error) {
	var result []model.Notification
	for _, n := range m.notifications {
		if n.RecipientID != filter.RecipientID {
			continue
		}
		if filter.UnreadOnly && n.IsRead {
			continue
		}
		result = append(result, *n)
	}
	return result, int64(len(result)), nil
}

func (m *mockNotificationRepo) CountUnread(_ context.Context, recipientID string) (int64, error) {
	var count int64
	for _, n := range m.notifications {
		if n.RecipientID == recipientID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (m *mockNotificationRepo) MarkRead(_ context.Context, id string, recipientID string) error {
	n, ok := m.notifications[id]
	if !ok || n.RecipientID != recipientID {
		return gorm.ErrRecordNotFound
	}
	n.IsRead = true
	return nil
}

func (m *mockNotificationRepo) MarkAllRead(_ context.Context, recipientID string) error {
	for _, n := range m.notifications {
		if n.RecipientID == recipientID {
			n.IsRead = true
		}
	}
	return nil
}

func (m *mockNotificationRepo) Delete(_ context.Context, id string, recipientID string) error {
	n, ok := m.notifications[id]
	if !ok || n.RecipientID != recipientID {
		return gorm.ErrRecordNotFound
	}
	delete(m.notifications, id)
	return nil
}

func (m *mockNotificationRepo) CountRecentTaskNotifications(_ context.Context, recipientID, taskID, notifType string, since time.Time) (int64, error) {
	var count int64
	for _, n := range m.notifications {
		if n.RecipientID != recipientID || n.Type != notifType {
			continue
		}
		if n.TaskID == nil || *n.TaskID != taskID {
			continue
		}
		if n.CreatedAt.Before(since) {
			continue
		}
		count++
	}
	return count, nil
}

func (m *mockNotificationRepo) CountRecentRelatedNotifications(_ context.Context, recipientID, relatedType, relatedID, notifType string, since time.Time) (int64, error) {
	var count int64
	for _, n := range m.notifications {
		if n.RecipientID != recipientID || n.Type != notifType {
			continue
		}
		if n.RelatedType == nil || *n.RelatedType != relatedType {
			continue
		}
		if n.RelatedID == nil || *n.RelatedID != relatedID {
			continue
		}
		if n.CreatedAt.Before(since) {
			continue
		}
		count++
	}
	return count, nil
}

func (m *mockNotificationRepo) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	var deleted int64
	for id, n := range m.notifications {
		if n.ExpiresAt != nil && n.ExpiresAt.Before(now) {
			delete(m.notifications, id)
			deleted++
		}
	}
	return deleted, nil
}

// countByType 测试辅助：统计指定接收人某类型通知数
func (m *mockNotificationRepo) countByType(recipientID, notifType string) int {
	count := 0
	for _, n := range m.notifications {
		if n.RecipientID == recipientID && n.Type == notifType {
			count++
		}
	}
	return count
}

// ── Mock NotificationSettingRepository ──

type mockNotificationSettingRepo struct {
	settings map[string]*model.NotificationSetting
}

func newMockNotificationSettingRepo() *mockNotificationSettingRepo {
	return &mockNotificationSettingRepo{settings: make(map[string]*model.NotificationSetting)}
}

func (m *mockNotificationSettingRepo) Get(_ context.Context, userID string) (*model.NotificationSetting, error) {
	if s, ok := m.settings[userID]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockNotificationSettingRepo) CreateIfAbsent(_ context.Context, setting *model.NotificationSetting) error {
	if _, ok := m.settings[setting.UserID]; ok {
		return nil
	}
	m.settings[setting.UserID] = setting
	return nil
}

func (m *mockNotificationSettingRepo) Update(_ context.Context, setting *model.NotificationSetting) error {
	m.settings[setting.UserID] = setting
	return nil
}

func (m *mockNotificationSettingRepo) ListTaskReminderEnabled(_ context.Context) ([]model.NotificationSetting, error) {
	var result []model.NotificationSetting
	for _, s := range m.settings {
		if s.InAppTaskReminders {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockNotificationSettingRepo) ListRepaymentReminderEnabled(_ context.Context) ([]model.NotificationSetting, error) {
	var result []model.NotificationSetting
	for _, s := range m.settings {
		if s.InAppRepaymentReminders {
			result = append(result, *s)
		}
	}
	return result, nil
}

// ── 测试装配辅助 ──

type testRepos struct {
	user     *mockUserRepo
	grantee  *mockGranteeRepo
	program  *mockProgramRepo
	provider *mockProviderRepo
	grant    *mockGrantRepo

	repayment *mockRepaymentRepo
	task      *mockTaskRepo
	ledger    *mockLedgerRepo

	notification        *mockNotificationRepo
	notificationSetting *mockNotificationSettingRepo
}

func newTestRepos() (*repository.Repository, *testRepos) {
	mocks := &testRepos{
		user:                newMockUserRepo(),
		grantee:             newMockGranteeRepo(),
		program:             newMockProgramRepo(),
		provider:            newMockProviderRepo(),
		grant:               newMockGrantRepo(),
		repayment:           newMockRepaymentRepo(),
		task:                newMockTaskRepo(),
		ledger:              newMockLedgerRepo(),
		notification:        newMockNotificationRepo(),
		notificationSetting: newMockNotificationSettingRepo(),
	}

	repo := &repository.Repository{
		User:                mocks.user,
		Grantee:             mocks.grantee,
		Program:             mocks.program,
		Provider:            mocks.provider,
		Grant:               mocks.grant,
		Repayment:           mocks.repayment,
		Task:                mocks.task,
		Ledger:              mocks.ledger,
		Notification:        mocks.notification,
		NotificationSetting: mocks.notificationSetting,
	}
	return repo, mocks
}
