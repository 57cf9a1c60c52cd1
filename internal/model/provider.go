package model

// 服务机构状态
const (
	ProviderStatusActive   = "ACTIVE"
	ProviderStatusInactive = "INACTIVE"
)

// ServiceProvider 服务机构表 — 对应 service_providers
// 为受助人提供培训、采购、技术支持等服务的外部机构
type ServiceProvider struct {
	ProviderID  string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"provider_id"`
	Name        string  `gorm:"type:varchar(200);not null"                     json:"name"`
	Category    string  `gorm:"type:varchar(50)"                               json:"category,omitempty"`
	ContactName string  `gorm:"type:varchar(100)"                              json:"contact_name,omitempty"`
	Phone       string  `gorm:"type:varchar(20)"                               json:"phone,omitempty"`
	Email       string  `gorm:"type:varchar(255)"                              json:"email,omitempty"`
	Location    string  `gorm:"type:varchar(200)"                              json:"location,omitempty"`
	Rating      float64 `gorm:"not null;default:0"                             json:"rating"`
	Status      string  `gorm:"type:varchar(20);not null;default:'ACTIVE'"     json:"status"`
	SoftDeleteModel
}

// TableName 指定表名
func (ServiceProvider) TableName() string { return "service_providers" }

// [自证通过] internal/model/provider.go
