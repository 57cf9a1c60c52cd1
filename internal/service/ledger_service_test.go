package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Vaidy74/Yathashakti-sub001/internal/dto"
	"github.com/Vaidy74/Yathashakti-sub001/internal/model"
)

func setupLedgerService() (LedgerService, ExportService, *testRepos) {
	repo, mocks := newTestRepos()
	return NewLedgerService(repo, zap.NewNop()), NewExportService(repo, zap.NewNop()), mocks
}

func seedLedgerEntries(mocks *testRepos) {
	grantID := "grant-1"
	mocks.ledger.entries["e1"] = &model.LedgerEntry{
		EntryID: "e1", GrantID: &grantID, Type: model.LedgerTypeDisbursement,
		Amount: 100000, EntryDate: time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
	}
	mocks.ledger.entries["e2"] = &model.LedgerEntry{
		EntryID: "e2", GrantID: &grantID, Type: model.LedgerTypeRepayment,
		Amount: 30000, EntryDate: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
	}
	mocks.ledger.entries["e3"] = &model.LedgerEntry{
		EntryID: "e3", Type: model.LedgerTypeAdjustment,
		Amount: 5000, EntryDate: time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC),
	}
}

func TestLedgerSummary_Balance(t *testing.T) {
	svc, _, mocks := setupLedgerService()
	seedLedgerEntries(mocks)

	resp, err := svc.Summary(context.Background(), "", "")
	if err != nil {
		t.Fatalf("汇总应成功: %v", err)
	}
	if resp.Disbursed != 100000 || resp.Repaid != 30000 || resp.Adjusted != 5000 {
		t.Errorf("按类型汇总不符: %+v", resp)
	}
	// 净流量 = 还款 + 调整 − 拨付
	if resp.Balance != -65000 {
		t.Errorf("期望 Balance=-65000，实际=%d", resp.Balance)
	}
}

func TestLedgerSummary_PeriodFilter(t *testing.T) {
	svc, _, mocks := setupLedgerService()
	seedLedgerEntries(mocks)

	resp, err := svc.Summary(context.Background(), "2026-03-01", "2026-12-31")
	if err != nil {
		t.Fatalf("汇总应成功: %v", err)
	}
	if resp.Disbursed != 0 {
		t.Errorf("期间外的拨付不应计入，实际=%d", resp.Disbursed)
	}
	if resp.Repaid != 30000 || resp.Adjusted != 5000 {
		t.Errorf("期间内汇总不符: %+v", resp)
	}
}

func TestLedgerCreate_AdjustmentEntry(t *testing.T) {
	svc, _, _ := setupLedgerService()

	resp, err := svc.Create(context.Background(), "operator-1", &dto.CreateLedgerEntryRequest{
		Type:        model.LedgerTypeAdjustment,
		Amount:      12345,
		EntryDate:   "2026-05-01",
		Description: "期初差额调整",
	})
	if err != nil {
		t.Fatalf("创建调整条目应成功: %v", err)
	}
	if resp.EntryDate != "2026-05-01" {
		t.Errorf("期望日期=2026-05-01，实际=%s", resp.EntryDate)
	}
}

func TestExportLedger_ProducesWorkbook(t *testing.T) {
	_, exportSvc, mocks := setupLedgerService()
	seedLedgerEntries(mocks)

	buf, filename, err := exportSvc.ExportLedger(context.Background(), &dto.LedgerExportRequest{})
	if err != nil {
		t.Fatalf("导出应成功: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("导出内容不应为空")
	}
	if !contains(filename, ".xlsx") {
		t.Errorf("文件名应为 xlsx，实际=%s", filename)
	}
}
