package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Vaidy74/Yathashakti-sub001/internal/dto"
	"github.com/Vaidy74/Yathashakti-sub001/internal/model"
)

func setupRepaymentService() (RepaymentService, *testRepos) {
	repo, mocks := newTestRepos()
	svc := NewRepaymentService(repo, zap.NewNop())
	return svc, mocks
}

func seedGrantWithSchedule(mocks *testRepos, status string) *model.Grant {
	grant := &model.Grant{
		GrantID:   "grant-1",
		GranteeID: "grantee-1",
		ProgramID: "program-1",
		Amount:    100000,
		Status:    status,
		Schedule: model.InstallmentList{
			{ID: "inst-1", DueDate: time.Now().AddDate(0, 1, 0), Amount: 50000, Status: model.InstallmentStatusPending},
			{ID: "inst-2", DueDate: time.Now().AddDate(0, 2, 0), Amount: 50000, Status: model.InstallmentStatusPending},
		},
	}
	mocks.grant.grants[grant.GrantID] = grant
	return grant
}

func TestRepaymentCreate_FullSettle(t *testing.T) {
	svc, mocks := setupRepaymentService()
	grant := seedGrantWithSchedule(mocks, model.GrantStatusDisbursed)

	resp, err := svc.Create(context.Background(), "operator-1", &dto.CreateRepaymentRequest{
		GrantID:       grant.GrantID,
		InstallmentID: "inst-1",
		Amount:        50000,
		PaidAt:        "2026-10-05",
	})
	if err != nil {
		t.Fatalf("登记还款应成功: %v", err)
	}
	if resp.Method != model.RepaymentMethodCash {
		t.Errorf("缺省还款方式应为 CASH，实际=%s", resp.Method)
	}

	inst := grant.Schedule[0]
	if inst.Status != model.InstallmentStatusPaid {
		t.Errorf("足额还款后分期应为 paid，实际=%s", inst.Status)
	}
	if inst.PaidAmount == nil || *inst.PaidAmount != 50000 {
		t.Error("应累计已还金额")
	}
	if grant.Status != model.GrantStatusRepaying {
		t.Errorf("首笔还款后资助金应为 REPAYING，实际=%s", grant.Status)
	}
}

func TestRepaymentCreate_PartialThenSettle(t *testing.T) {
	svc, mocks := setupRepaymentService()
	grant := seedGrantWithSchedule(mocks, model.GrantStatusRepaying)

	svc.Create(context.Background(), "operator-1", &dto.CreateRepaymentRequest{
		GrantID: grant.GrantID, InstallmentID: "inst-1", Amount: 20000, PaidAt: "2026-10-05",
	})
	if grant.Schedule[0].Status != model.InstallmentStatusPartiallyPaid {
		t.Errorf("部分还款后应为 partially_paid，实际=%s", grant.Schedule[0].Status)
	}

	// 补齐差额
	if _, err := svc.Create(context.Background(), "operator-1", &dto.CreateRepaymentRequest{
		GrantID: grant.GrantID, InstallmentID: "inst-1", Amount: 30000, PaidAt: "2026-10-20",
	}); err != nil {
		t.Fatalf("第二笔还款应成功: %v", err)
	}
	if grant.Schedule[0].Status != model.InstallmentStatusPaid {
		t.Errorf("补齐后应为 paid，实际=%s", grant.Schedule[0].Status)
	}
	if *grant.Schedule[0].PaidAmount != 50000 {
		t.Errorf("已还金额应累计为50000，实际=%d", *grant.Schedule[0].PaidAmount)
	}
}

func TestRepaymentCreate_AllSettledCompletesGrant(t *testing.T) {
	svc, mocks := setupRepaymentService()
	grant := seedGrantWithSchedule(mocks, model.GrantStatusRepaying)

	svc.Create(context.Background(), "operator-1", &dto.CreateRepaymentRequest{
		GrantID: grant.GrantID, InstallmentID: "inst-1", Amount: 50000, PaidAt: "2026-10-05",
	})
	svc.Create(context.Background(), "operator-1", &dto.CreateRepaymentRequest{
		GrantID: grant.GrantID, InstallmentID: "inst-2", Amount: 50000, PaidAt: "2026-11-05",
	})

	if grant.Status != model.GrantStatusCompleted {
		t.Errorf("全部分期结清后应为 COMPLETED，实际=%s", grant.Status)
	}
}

func TestRepaymentCreate_WritesLedgerEntry(t *testing.T) {
	svc, mocks := setupRepaymentService()
	grant := seedGrantWithSchedule(mocks, model.GrantStatusRepaying)

	svc.Create(context.Background(), "operator-1", &dto.CreateRepaymentRequest{
		GrantID: grant.GrantID, InstallmentID: "inst-1", Amount: 50000, PaidAt: "2026-10-05",
	})

	found := false
	for _, e := range mocks.ledger.entries {
		if e.Type == model.LedgerTypeRepayment && e.GrantID != nil && *e.GrantID == grant.GrantID && e.Amount == 50000 {
			found = true
		}
	}
	if !found {
		t.Error("还款应写入台账 REPAYMENT 条目")
	}
}

func TestRepaymentCreate_InstallmentNotFound(t *testing.T) {
	svc, mocks := setupRepaymentService()
	grant := seedGrantWithSchedule(mocks, model.GrantStatusRepaying)

	_, err := svc.Create(context.Background(), "operator-1", &dto.CreateRepaymentRequest{
		GrantID: grant.GrantID, InstallmentID: "ghost", Amount: 50000, PaidAt: "2026-10-05",
	})
	if !errors.Is(err, ErrInstallmentNotFound) {
		t.Errorf("期望 ErrInstallmentNotFound，实际: %v", err)
	}
}

func TestRepaymentCreate_SettledInstallmentRejected(t *testing.T) {
	svc, mocks := setupRepaymentService()
	grant := seedGrantWithSchedule(mocks, model.GrantStatusRepaying)
	grant.Schedule[0].Status = model.InstallmentStatusPaid

	_, err := svc.Create(context.Background(), "operator-1", &dto.CreateRepaymentRequest{
		GrantID: grant.GrantID, InstallmentID: "inst-1", Amount: 10000, PaidAt: "2026-10-05",
	})
	if !errors.Is(err, ErrInstallmentSettled) {
		t.Errorf("期望 ErrInstallmentSettled，实际: %v", err)
	}
}

func TestRepaymentCreate_WrongGrantStatus(t *testing.T) {
	svc, mocks := setupRepaymentService()
	grant := seedGrantWithSchedule(mocks, model.GrantStatusPending)

	_, err := svc.Create(context.Background(), "operator-1", &dto.CreateRepaymentRequest{
		GrantID: grant.GrantID, InstallmentID: "inst-1", Amount: 10000, PaidAt: "2026-10-05",
	})
	if !errors.Is(err, ErrGrantNotRepayable) {
		t.Errorf("未拨付的资助金期望 ErrGrantNotRepayable，实际: %v", err)
	}
}
