package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Vaidy74/Yathashakti-sub001/internal/dto"
	"github.com/Vaidy74/Yathashakti-sub001/internal/model"
	"github.com/Vaidy74/Yathashakti-sub001/internal/service"
	"github.com/Vaidy74/Yathashakti-sub001/pkg/jwt"
	"github.com/Vaidy74/Yathashakti-sub001/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock AuthService ──

type mockAuthService struct {
	loginResult      *dto.TokenResponse
	loginErr         error
	refreshResult    *dto.TokenResponse
	refreshErr       error
	logoutErr        error
	getCurrentResult *dto.UserResponse
	getCurrentErr    error
	changePassErr    error
}

func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.TokenResponse, error) {
	return m.loginResult, m.loginErr
}
func (m *mockAuthService) RefreshToken(_ context.Context, _ *dto.RefreshRequest) (*dto.TokenResponse, error) {
	return m.refreshResult, m.refreshErr
}
func (m *mockAuthService) Logout(_ context.Context, _ *jwt.Claims) error {
	return m.logoutErr
}
func (m *mockAuthService) GetCurrentUser(_ context.Context, _ string) (*dto.UserResponse, error) {
	return m.getCurrentResult, m.getCurrentErr
}
func (m *mockAuthService) ChangePassword(_ context.Context, _ string, _ *dto.ChangePasswordRequest) error {
	return m.changePassErr
}

// ── Mock GrantService ──

type mockGrantService struct {
	createResult   *dto.GrantResponse
	createErr      error
	getResult      *dto.GrantResponse
	getErr         error
	listResult     []dto.GrantResponse
	listTotal      int64
	listErr        error
	updateResult   *dto.GrantResponse
	updateErr      error
	deleteErr      error
	generateResult *dto.GrantResponse
	generateErr    error
	validateResult *dto.ScheduleValidationResponse
	validateErr    error
}

func (m *mockGrantService) Create(_ context.Context, _ string, _ *dto.CreateGrantRequest) (*dto.GrantResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockGrantService) GetByID(_ context.Context, _ string) (*dto.GrantResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockGrantService) List(_ context.Context, _ *dto.GrantListRequest) ([]dto.GrantResponse, int64, error) {
	return m.listResult, m.listTotal, m.listErr
}
func (m *mockGrantService) Update(_ context.Context, _ string, _ string, _ *dto.UpdateGrantRequest) (*dto.GrantResponse, error) {
	return m.updateResult, m.updateErr
}
func (m *mockGrantService) Delete(_ context.Context, _ string, _ string) error {
	return m.deleteErr
}
func (m *mockGrantService) GenerateSchedule(_ context.Context, _ string, _ string, _ *dto.GenerateScheduleRequest) (*dto.GrantResponse, error) {
	return m.generateResult, m.generateErr
}
func (m *mockGrantService) ValidateSchedule(_ context.Context, _ string) (*dto.ScheduleValidationResponse, error) {
	return m.validateResult, m.validateErr
}

// ── Mock TaskService ──

type mockTaskService struct {
	createResult *dto.TaskResponse
	createErr    error
	getResult    *dto.TaskResponse
	getErr       error
	listResult   []dto.TaskResponse
	listTotal    int64
	listErr      error
	updateResult *dto.TaskResponse
	updateErr    error
	deleteErr    error
	calResult    string
	calErr       error
}

func (m *mockTaskService) Create(_ context.Context, _ string, _ *dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockTaskService) GetByID(_ context.Context, _ string) (*dto.TaskResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockTaskService) List(_ context.Context, _ *dto.TaskListRequest) ([]dto.TaskResponse, int64, error) {
	return m.listResult, m.listTotal, m.listErr
}
func (m *mockTaskService) Update(_ context.Context, _ string, _ string, _ *dto.UpdateTaskRequest) (*dto.TaskResponse, error) {
	return m.updateResult, m.updateErr
}
func (m *mockTaskService) Delete(_ context.Context, _ string, _ string) error {
	return m.deleteErr
}
func (m *mockTaskService) ExportCalendar(_ context.Context, _ string) (string, error) {
	return m.calResult, m.calErr
}

// ── Mock LedgerService / ExportService ──

type mockLedgerService struct {
	createResult  *dto.LedgerEntryResponse
	createErr     error
	getResult     *dto.LedgerEntryResponse
	getErr        error
	listResult    []dto.LedgerEntryResponse
	listTotal     int64
	listErr       error
	summaryResult *dto.LedgerSummaryResponse
	summaryErr    error
	deleteErr     error
}

func (m *mockLedgerService) Create(_ context.Context, _ string, _ *dto.CreateLedgerEntryRequest) (*dto.LedgerEntryResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockLedgerService) GetByID(_ context.Context, _ string) (*dto.LedgerEntryResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockLedgerService) List(_ context.Context, _ *dto.LedgerListRequest) ([]dto.LedgerEntryResponse, int64, error) {
	return m.listResult, m.listTotal, m.listErr
}
func (m *mockLedgerService) Summary(_ context.Context, _, _ string) (*dto.LedgerSummaryResponse, error) {
	return m.summaryResult, m.summaryErr
}
func (m *mockLedgerService) Delete(_ context.Context, _ string) error {
	return m.deleteErr
}

type mockExportService struct {
	buf      *bytes.Buffer
	filename string
	err      error
}

func (m *mockExportService) ExportLedger(_ context.Context, _ *dto.LedgerExportRequest) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}

// ── Mock ReminderService / NotificationService ──

type mockReminderService struct {
	taskResult      *service.SweepResult
	taskErr         error
	overdueResult   *service.SweepResult
	overdueErr      error
	repaymentResult *service.SweepResult
	repaymentErr    error
}

func (m *mockReminderService) CheckAndSendTaskReminders(_ context.Context) (*service.SweepResult, error) {
	return m.taskResult, m.taskErr
}
func (m *mockReminderService) SendOverdueTaskReminders(_ context.Context) (*service.SweepResult, error) {
	return m.overdueResult, m.overdueErr
}
func (m *mockReminderService) SendRepaymentReminders(_ context.Context) (*service.SweepResult, error) {
	return m.repaymentResult, m.repaymentErr
}

type mockNotificationService struct {
	settingsResult       *model.NotificationSetting
	settingsErr          error
	updateSettingsResult *dto.NotificationSettingResponse
	updateSettingsErr    error
	listResult           []dto.NotificationResponse
	listTotal            int64
	listErr              error
	unreadCount          int64
	unreadErr            error
	markReadErr          error
	markAllReadErr       error
	deleteErr            error
	deletedExpired       int64
	deleteExpiredErr     error
}

func (m *mockNotificationService) Create(_ context.Context, _ *service.CreateNotificationParams) (*model.Notification, error) {
	return nil, nil
}
func (m *mockNotificationService) GetUserSettings(_ context.Context, _ string) (*model.NotificationSetting, error) {
	return m.settingsResult, m.settingsErr
}
func (m *mockNotificationService) UpdateUserSettings(_ context.Context, _ string, _ *dto.UpdateNotificationSettingRequest) (*dto.NotificationSettingResponse, error) {
	return m.updateSettingsResult, m.updateSettingsErr
}
func (m *mockNotificationService) SendTaskReminder(_ context.Context, _ string, _ *model.Task) (*model.Notification, error) {
	return nil, nil
}
func (m *mockNotificationService) SendTaskAssigned(_ context.Context, _, _ string, _ *model.Task) (*model.Notification, error) {
	return nil, nil
}
func (m *mockNotificationService) SendTaskCompleted(_ context.Context, _, _ string, _ *model.Task) (*model.Notification, error) {
	return nil, nil
}
func (m *mockNotificationService) SendGrantStatusUpdate(_ context.Context, _ string, _ *model.Grant, _ string) (*model.Notification, error) {
	return nil, nil
}
func (m *mockNotificationService) SendProgramUpdate(_ context.Context, _ string, _ *model.Program) (*model.Notification, error) {
	return nil, nil
}
func (m *mockNotificationService) List(_ context.Context, _ string, _ *dto.NotificationListRequest) ([]dto.NotificationResponse, int64, error) {
	return m.listResult, m.listTotal, m.listErr
}
func (m *mockNotificationService) UnreadCount(_ context.Context, _ string) (int64, error) {
	return m.unreadCount, m.unreadErr
}
func (m *mockNotificationService) MarkRead(_ context.Context, _ string, _ string) error {
	return m.markReadErr
}
func (m *mockNotificationService) MarkAllRead(_ context.Context, _ string) error {
	return m.markAllReadErr
}
func (m *mockNotificationService) Delete(_ context.Context, _ string, _ string) error {
	return m.deleteErr
}
func (m *mockNotificationService) DeleteExpired(_ context.Context) (int64, error) {
	return m.deletedExpired, m.deleteExpiredErr
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

func setupGin() (*gin.Engine, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	return gin.New(), w
}

func setAuth(c *gin.Context) {
	c.Set("user_id", "test-user-id")
	c.Set("role", "admin")
	c.Set("claims", &jwt.Claims{
		UserID:    "test-user-id",
		Role:      "admin",
		TokenType: "access",
	})
}

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

// ═══════════════════════════════════════════════════════════
// AuthHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAuthHandler_Login_Success(t *testing.T) {
	mock := &mockAuthService{
		loginResult: &dto.TokenResponse{
			AccessToken:  "test-access-token",
			RefreshToken: "test-refresh-token",
			ExpiresIn:    900,
		},
	}
	h := NewAuthHandler(mock)

	r, w := setupGin()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Email:    "admin@yathashakti.org",
		Password: "Test1234",
	}))
	req.Header.Set("Content-Type", "application/json")

	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestAuthHandler_Login_BadJSON(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	r, w := setupGin()
	req := httptest.NewRequest("POST", "/auth/login", bytes.NewReader([]byte("invalid json")))
	req.Header.Set("Content-Type", "application/json")

	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{loginErr: service.ErrInvalidCredentials})

	r, w := setupGin()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Email:    "admin@yathashakti.org",
		Password: "wrong-password",
	}))
	req.Header.Set("Content-Type", "application/json")

	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 11001 {
		t.Errorf("expected error code 11001, got %d", resp.Code)
	}
}

func TestAuthHandler_RefreshToken_InvalidToken(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{refreshErr: service.ErrInvalidRefresh})

	r, w := setupGin()
	req := httptest.NewRequest("POST", "/auth/refresh", jsonBody(dto.RefreshRequest{
		RefreshToken: "stale-token",
	}))
	req.Header.Set("Content-Type", "application/json")

	r.POST("/auth/refresh", h.RefreshToken)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 11003 {
		t.Errorf("expected error code 11003, got %d", resp.Code)
	}
}

func TestAuthHandler_Logout_Success(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	r, w := setupGin()
	req := httptest.NewRequest("POST", "/auth/logout", nil)

	r.POST("/auth/logout", func(c *gin.Context) {
		setAuth(c)
		h.Logout(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestAuthHandler_Logout_Unauthenticated(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	r, w := setupGin()
	req := httptest.NewRequest("POST", "/auth/logout", nil)

	r.POST("/auth/logout", h.Logout)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAuthHandler_ChangePassword_WrongOld(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{changePassErr: service.ErrOldPasswordWrong})

	r, w := setupGin()
	req := httptest.NewRequest("POST", "/auth/change-password", jsonBody(dto.ChangePasswordRequest{
		OldPassword: "WrongOld1",
		NewPassword: "NewPass123",
	}))
	req.Header.Set("Content-Type", "application/json")

	r.POST("/auth/change-password", func(c *gin.Context) {
		setAuth(c)
		h.ChangePassword(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 11004 {
		t.Errorf("expected error code 11004, got %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// GrantHandler Tests
// ═══════════════════════════════════════════════════════════

func TestGrantHandler_Create_Success(t *testing.T) {
	mock := &mockGrantService{
		createResult: &dto.GrantResponse{
			ID:     "grant-1",
			Status: "PENDING",
			Amount: 100000,
		},
	}
	h := NewGrantHandler(mock)

	r, w := setupGin()
	req := httptest.NewRequest("POST", "/grants", jsonBody(dto.CreateGrantRequest{
		GranteeID: "11111111-1111-1111-1111-111111111111",
		ProgramID: "22222222-2222-2222-2222-222222222222",
		Amount:    100000,
	}))
	req.Header.Set("Content-Type", "application/json")

	r.POST("/grants", func(c *gin.Context) {
		setAuth(c)
		h.Create(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
}

func TestGrantHandler_Update_InvalidTransition(t *testing.T) {
	h := NewGrantHandler(&mockGrantService{updateErr: service.ErrInvalidStatusTransfer})

	status := "DISBURSED"
	r, w := setupGin()
	req := httptest.NewRequest("PUT", "/grants/grant-1", jsonBody(dto.UpdateGrantRequest{
		Status: &status,
	}))
	req.Header.Set("Content-Type", "application/json")

	r.PUT("/grants/:id", func(c *gin.Context) {
		setAuth(c)
		h.Update(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 40002 {
		t.Errorf("expected error code 40002, got %d", resp.Code)
	}
}

func TestGrantHandler_GenerateSchedule_Unapproved(t *testing.T) {
	h := NewGrantHandler(&mockGrantService{generateErr: service.ErrScheduleOnUnapproved})

	r, w := setupGin()
	req := httptest.NewRequest("POST", "/grants/grant-1/generate-schedule", jsonBody(dto.GenerateScheduleRequest{
		NumberOfInstallments: 3,
		StartDate:            "2026-09-01",
		IntervalMonths:       1,
	}))
	req.Header.Set("Content-Type", "application/json")

	r.POST("/grants/:id/generate-schedule", func(c *gin.Context) {
		setAuth(c)
		h.GenerateSchedule(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 40004 {
		t.Errorf("expected error code 40004, got %d", resp.Code)
	}
}

func TestGrantHandler_ValidateSchedule_Success(t *testing.T) {
	mock := &mockGrantService{
		validateResult: &dto.ScheduleValidationResponse{
			TotalAmount:       100000,
			ScheduledAmount:   60000,
			UnscheduledAmount: 40000,
		},
	}
	h := NewGrantHandler(mock)

	r, w := setupGin()
	req := httptest.NewRequest("GET", "/grants/grant-1/validate-schedule", nil)

	r.GET("/grants/:id/validate-schedule", h.ValidateSchedule)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestGrantHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   int
	}{
		{"NotFound", service.ErrGrantNotFound, 404, 40001},
		{"InvalidTransition", service.ErrInvalidStatusTransfer, 409, 40002},
		{"Terminal", service.ErrGrantTerminal, 409, 40003},
		{"AmountLocked", service.ErrAmountLockedBySchedule, 409, 40005},
		{"InternalError", errors.New("unknown"), 500, 50000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewGrantHandler(&mockGrantService{updateErr: tt.err})

			r, w := setupGin()
			req := httptest.NewRequest("PUT", "/grants/grant-1", jsonBody(dto.UpdateGrantRequest{}))
			req.Header.Set("Content-Type", "application/json")

			r.PUT("/grants/:id", func(c *gin.Context) {
				setAuth(c)
				h.Update(c)
			})
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			resp := parseResponse(w)
			if resp.Code != tt.wantCode {
				t.Errorf("expected code %d, got %d", tt.wantCode, resp.Code)
			}
		})
	}
}

// ═══════════════════════════════════════════════════════════
// TaskHandler Tests
// ═══════════════════════════════════════════════════════════

func TestTaskHandler_ExportCalendar_Success(t *testing.T) {
	mock := &mockTaskService{
		calResult: "BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n",
	}
	h := NewTaskHandler(mock)

	r, w := setupGin()
	req := httptest.NewRequest("GET", "/tasks/calendar", nil)

	r.GET("/tasks/calendar", func(c *gin.Context) {
		setAuth(c)
		h.ExportCalendar(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	ct := w.Header().Get("Content-Type")
	if !strings.HasPrefix(ct, "text/calendar") {
		t.Errorf("unexpected content type: %s", ct)
	}
	if !strings.Contains(w.Body.String(), "BEGIN:VCALENDAR") {
		t.Error("expected iCalendar body")
	}
}

func TestTaskHandler_Create_InvalidDueDate(t *testing.T) {
	h := NewTaskHandler(&mockTaskService{createErr: service.ErrInvalidDueDate})

	due := "2026/09/01"
	r, w := setupGin()
	req := httptest.NewRequest("POST", "/tasks", jsonBody(dto.CreateTaskRequest{
		Title:   "走访受助人",
		DueDate: &due,
	}))
	req.Header.Set("Content-Type", "application/json")

	r.POST("/tasks", func(c *gin.Context) {
		setAuth(c)
		h.Create(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 42002 {
		t.Errorf("expected error code 42002, got %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// LedgerHandler Tests
// ═══════════════════════════════════════════════════════════

func TestLedgerHandler_Summary_Success(t *testing.T) {
	mock := &mockLedgerService{
		summaryResult: &dto.LedgerSummaryResponse{
			Disbursed: 100000,
			Repaid:    30000,
			Adjusted:  5000,
			Balance:   -65000,
		},
	}
	h := NewLedgerHandler(mock, &mockExportService{})

	r, w := setupGin()
	req := httptest.NewRequest("GET", "/ledger/summary", nil)

	r.GET("/ledger/summary", h.Summary)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestLedgerHandler_Export_Success(t *testing.T) {
	buf := bytes.NewBufferString("excel content")
	mock := &mockExportService{
		buf:      buf,
		filename: "资金台账_20260829.xlsx",
	}
	h := NewLedgerHandler(&mockLedgerService{}, mock)

	r, w := setupGin()
	req := httptest.NewRequest("GET", "/ledger/export", nil)

	r.GET("/ledger/export", h.Export)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	ct := w.Header().Get("Content-Type")
	if ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("unexpected content type: %s", ct)
	}
	if w.Header().Get("Content-Disposition") == "" {
		t.Error("expected Content-Disposition header")
	}
}

func TestLedgerHandler_Export_Fail(t *testing.T) {
	h := NewLedgerHandler(&mockLedgerService{}, &mockExportService{err: service.ErrExportGenerateFail})

	r, w := setupGin()
	req := httptest.NewRequest("GET", "/ledger/export", nil)

	r.GET("/ledger/export", h.Export)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// NotificationHandler Tests
// ═══════════════════════════════════════════════════════════

func TestNotificationHandler_UnreadCount_Success(t *testing.T) {
	h := NewNotificationHandler(&mockNotificationService{unreadCount: 7})

	r, w := setupGin()
	req := httptest.NewRequest("GET", "/notifications/unread-count", nil)

	r.GET("/notifications/unread-count", func(c *gin.Context) {
		setAuth(c)
		h.UnreadCount(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"count":7`) {
		t.Errorf("expected count 7 in body, got %s", w.Body.String())
	}
}

func TestNotificationHandler_MarkRead_NotFound(t *testing.T) {
	h := NewNotificationHandler(&mockNotificationService{markReadErr: service.ErrNotificationNotFound})

	r, w := setupGin()
	req := httptest.NewRequest("POST", "/notifications/n-1/read", nil)

	r.POST("/notifications/:id/read", func(c *gin.Context) {
		setAuth(c)
		h.MarkRead(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestNotificationHandler_GetSettings_Success(t *testing.T) {
	h := NewNotificationHandler(&mockNotificationService{
		settingsResult: model.DefaultNotificationSetting("test-user-id"),
	})

	r, w := setupGin()
	req := httptest.NewRequest("GET", "/notifications/settings", nil)

	r.GET("/notifications/settings", func(c *gin.Context) {
		setAuth(c)
		h.GetSettings(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"reminder_lead_time":24`) {
		t.Errorf("expected default lead time in body, got %s", w.Body.String())
	}
}

// ═══════════════════════════════════════════════════════════
// JobHandler Tests
// ═══════════════════════════════════════════════════════════

func TestJobHandler_CheckReminders_Success(t *testing.T) {
	mock := &mockReminderService{
		taskResult: &service.SweepResult{Scanned: 5, Sent: 3, Skipped: 2},
	}
	h := NewJobHandler(mock, &mockNotificationService{})

	r, w := setupGin()
	req := httptest.NewRequest("POST", "/jobs/check-reminders", nil)

	r.POST("/jobs/check-reminders", func(c *gin.Context) {
		setAuth(c)
		h.CheckReminders(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, `"scanned":5`) || !strings.Contains(body, `"sent":3`) {
		t.Errorf("unexpected sweep result body: %s", body)
	}
}

func TestJobHandler_RepaymentReminders_Error(t *testing.T) {
	h := NewJobHandler(&mockReminderService{repaymentErr: errors.New("db down")}, &mockNotificationService{})

	r, w := setupGin()
	req := httptest.NewRequest("POST", "/jobs/repayment-reminders", nil)

	r.POST("/jobs/repayment-reminders", func(c *gin.Context) {
		setAuth(c)
		h.RepaymentReminders(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", w.Code)
	}
}

func TestJobHandler_Cleanup_Success(t *testing.T) {
	h := NewJobHandler(&mockReminderService{}, &mockNotificationService{deletedExpired: 12})

	r, w := setupGin()
	req := httptest.NewRequest("POST", "/jobs/cleanup", nil)

	r.POST("/jobs/cleanup", func(c *gin.Context) {
		setAuth(c)
		h.Cleanup(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"deleted":12`) {
		t.Errorf("expected deleted count in body, got %s", w.Body.String())
	}
}
