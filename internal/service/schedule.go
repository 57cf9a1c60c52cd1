package service

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Vaidy74/Yathashakti-sub001/internal/model"
)

// ── 还款计划生成 ──

var (
	ErrInvalidTotalAmount      = errors.New("资助总额必须为正数")
	ErrInvalidInstallmentCount = errors.New("分期数必须不小于1")
	ErrInvalidInterval         = errors.New("分期间隔必须不小于1个月")
)

// GenerateEqualInstallments 等额模式生成还款计划
//
// 每期金额为 floor(totalAmount / n)，余数全部计入最后一期，保证合计与总额严格相等；
// 到期日自 startDate 起按 intervalMonths 逐期后推（首期到期日即 startDate）。
// 重新生成时调用方应整体替换旧计划，而非追加。
func GenerateEqualInstallments(totalAmount int64, n int, startDate time.Time, intervalMonths int) ([]model.Installment, error) {
	if totalAmount <= 0 {
		return nil, ErrInvalidTotalAmount
	}
	if n < 1 {
		return nil, ErrInvalidInstallmentCount
	}
	if intervalMonths < 1 {
		return nil, ErrInvalidInterval
	}

	per := totalAmount / int64(n)
	installments := make([]model.Installment, 0, n)

	for i := 0; i < n; i++ {
		amount := per
		if i == n-1 {
			// 最后一期吸收取整余数
			amount = totalAmount - per*int64(n-1)
		}
		installments = append(installments, model.Installment{
			ID:      uuid.New().String(),
			DueDate: startDate.AddDate(0, intervalMonths*i, 0),
			Amount:  amount,
			Status:  model.InstallmentStatusPending,
		})
	}

	return installments, nil
}

// UnscheduledAmount 计算未排入计划的金额（提示性校验）
// 为正表示尚有金额未排期，为负表示计划超出资助总额
func UnscheduledAmount(totalAmount int64, installments []model.Installment) int64 {
	var scheduled int64
	for _, inst := range installments {
		scheduled += inst.Amount
	}
	return totalAmount - scheduled
}
