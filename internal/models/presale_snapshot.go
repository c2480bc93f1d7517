package models

import "time"

// PresaleSnapshot is a periodic stat row written by the worker so dashboards
// can chart raise progress without decoding ledger records.
type PresaleSnapshot struct {
	ID              uint      `gorm:"primarykey" json:"id"`
	PresaleAddress  string    `gorm:"size:44;not null;index" json:"presale_address"`
	Token           string    `gorm:"size:44;not null" json:"token"`
	Identifier      string    `gorm:"size:25" json:"identifier"`
	TotalRaised     uint64    `gorm:"not null;default:0" json:"total_raised"`
	TotalTokensSold uint64    `gorm:"not null;default:0" json:"total_tokens_sold"`
	TotalRefAmount  uint64    `gorm:"not null;default:0" json:"total_ref_amount"`
	TotalRefCount   uint64    `gorm:"not null;default:0" json:"total_ref_count"`
	PresaleEnded    bool      `gorm:"default:false" json:"presale_ended"`
	PresaleCanceled bool      `gorm:"default:false" json:"presale_canceled"`
	PresaleRefund   bool      `gorm:"default:false" json:"presale_refund"`
	VaultLamports   uint64    `gorm:"not null;default:0" json:"vault_lamports"`
	VaultTokens     uint64    `gorm:"not null;default:0" json:"vault_tokens"`
	CreatedAt       time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (PresaleSnapshot) TableName() string {
	return "presale_snapshot"
}
