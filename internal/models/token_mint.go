package models

import "time"

// TokenMint stores mint metadata including the optional transfer fee
// extension.
type TokenMint struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	Address        string    `gorm:"size:44;not null;uniqueIndex" json:"address"`
	Decimals       uint8     `gorm:"not null;default:9" json:"decimals"`
	Supply         uint64    `gorm:"not null;default:0" json:"supply"`
	HasTransferFee bool      `gorm:"default:false" json:"has_transfer_fee"`
	TransferFeeBp  uint16    `gorm:"default:0" json:"transfer_fee_bp"`
	MaximumFee     uint64    `gorm:"default:0" json:"maximum_fee"`
	CreatedAt      time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (TokenMint) TableName() string {
	return "token_mint"
}
