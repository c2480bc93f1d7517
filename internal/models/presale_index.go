package models

import "time"

// PresaleIndex is the queryable registry of known presale records. The ledger
// account is authoritative; this row only exists so the API can list sales
// without scanning account data.
type PresaleIndex struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	PresaleAddress string    `gorm:"size:44;not null;uniqueIndex" json:"presale_address"`
	VaultAddress   string    `gorm:"size:44;not null" json:"vault_address"`
	Token          string    `gorm:"size:44;not null;index" json:"token"`
	Identifier     string    `gorm:"size:25;not null" json:"identifier"`
	Owner          string    `gorm:"size:44;not null;index" json:"owner"`
	PresaleType    string    `gorm:"size:16;not null" json:"presale_type"` // 'hard_capped' or 'fair_launch'
	LaunchpadType  string    `gorm:"size:8;not null;default:'pro'" json:"launchpad_type"`
	StartTime      int64     `gorm:"not null" json:"start_time"`
	EndTime        int64     `gorm:"not null" json:"end_time"`
	IsActive       bool      `gorm:"default:true" json:"is_active"`
	CreatedAt      time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (PresaleIndex) TableName() string {
	return "presale_index"
}
