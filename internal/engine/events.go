package engine

import "time"

const presaleEventQueue = "presale_events"

// Event is the envelope published to the presale event queue.
type Event struct {
	Type      string      `json:"type"`
	Timestamp int64       `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

func newEvent(eventType string, payload interface{}) *Event {
	return &Event{
		Type:      eventType,
		Timestamp: time.Now().Unix(),
		Payload:   payload,
	}
}

const (
	EventPresaleCreated    = "presale_created"
	EventVaultsInitialized = "vaults_initialized"
	EventContribution      = "contribution"
	EventPresaleFinalized  = "presale_finalized"
	EventPresaleCanceled   = "presale_canceled"
	EventTokensClaimed     = "tokens_claimed"
	EventContributorRefund = "contributor_refunded"
	EventCommissionPaid    = "commission_paid"
	EventOwnerRewardPaid   = "owner_reward_paid"
	EventUnsoldWithdrawn   = "unsold_tokens_withdrawn"
	EventLiquiditySeeded   = "liquidity_seeded"
	EventLiquidityBurned   = "liquidity_burned"
	EventLiquidityLocked   = "liquidity_locked"
	EventLiquidityUnlocked = "liquidity_unlocked"
	EventWhitelistChanged  = "whitelist_changed"
)

// ContributionEvent is emitted after every accepted contribution.
type ContributionEvent struct {
	Presale     string `json:"presale"`
	Contributor string `json:"contributor"`
	Amount      uint64 `json:"amount"`
	Tokens      uint64 `json:"tokens"`
	TotalRaised uint64 `json:"total_raised"`
	Referrer    string `json:"referrer,omitempty"`
}

// SettlementEvent is emitted on finalize, cancel and the payout operations.
type SettlementEvent struct {
	Presale string `json:"presale"`
	Signer  string `json:"signer"`
	Amount  uint64 `json:"amount,omitempty"`
}

// LiquidityEvent is emitted when the pool reserves are seeded or disposed.
type LiquidityEvent struct {
	Presale      string `json:"presale"`
	Pool         string `json:"pool"`
	SolReserve   uint64 `json:"sol_reserve"`
	TokenReserve uint64 `json:"token_reserve"`
	LpAmount     uint64 `json:"lp_amount,omitempty"`
}
