package models

import "time"

// TokenBalance is one holder's balance of one mint.
type TokenBalance struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Mint      string    `gorm:"size:44;not null;uniqueIndex:idx_token_balance_mint_holder" json:"mint"`
	Holder    string    `gorm:"size:44;not null;uniqueIndex:idx_token_balance_mint_holder" json:"holder"`
	Amount    uint64    `gorm:"not null;default:0" json:"amount"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (TokenBalance) TableName() string {
	return "token_balance"
}
