package models

import "time"

// LedgerAccount mirrors one on-ledger account row.
type LedgerAccount struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Address   string    `gorm:"size:44;not null;uniqueIndex" json:"address"`
	Owner     string    `gorm:"size:44;not null" json:"owner"`
	Lamports  uint64    `gorm:"not null;default:0" json:"lamports"`
	Data      []byte    `gorm:"type:bytea" json:"data"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (LedgerAccount) TableName() string {
	return "ledger_account"
}
