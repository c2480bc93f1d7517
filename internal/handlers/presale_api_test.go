package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"launchcontrol/internal/engine"
	"launchcontrol/internal/handlers"
	"launchcontrol/internal/ledger"
	"launchcontrol/internal/routes"

	"github.com/gagliardetto/solana-go"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiEnv struct {
	router *gin.Engine
	eng    *engine.Engine
	now    int64

	owner        solana.PublicKey
	token        solana.PublicKey
	feeCollector solana.PublicKey
}

func newAPIEnv(t *testing.T) *apiEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("RATE_LIMIT_RPS", "10000")

	env := &apiEnv{
		now:          1_700_000_000,
		owner:        solana.NewWallet().PublicKey(),
		token:        solana.NewWallet().PublicKey(),
		feeCollector: solana.NewWallet().PublicKey(),
	}
	store := ledger.NewMemStore()
	factory, err := engine.NewFactory(
		solana.NewWallet().PublicKey(),
		solana.NewWallet().PublicKey(),
		env.feeCollector,
		1_000_000_000, 500,
	)
	require.NoError(t, err)
	env.eng = engine.New(store, factory, nil)
	env.eng.Now = func() time.Time { return time.Unix(env.now, 0) }
	handlers.Init(env.eng, store)
	env.router = routes.SetupRouter()

	env.post(t, "/api/accounts", gin.H{"address": env.feeCollector.String(), "lamports": 1_000_000_000}, http.StatusCreated)
	env.post(t, "/api/accounts", gin.H{"address": env.owner.String(), "lamports": 50_000_000_000}, http.StatusCreated)
	env.post(t, "/api/tokens/mints", gin.H{"address": env.token.String(), "decimals": 9, "supply": uint64(1) << 62}, http.StatusCreated)
	env.post(t, "/api/tokens/balances", gin.H{"mint": env.token.String(), "holder": env.owner.String(), "amount": uint64(200_000_000_000_000)}, http.StatusOK)
	return env
}

func (env *apiEnv) do(t *testing.T, method, path string, body interface{}, wantStatus int) map[string]interface{} {
	t.Helper()
	var reader *bytes.Buffer
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(payload)
	} else {
		reader = bytes.NewBuffer(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	require.Equal(t, wantStatus, rec.Code, "unexpected status for %s %s: %s", method, path, rec.Body.String())

	out := map[string]interface{}{}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	}
	return out
}

func (env *apiEnv) post(t *testing.T, path string, body interface{}, wantStatus int) map[string]interface{} {
	t.Helper()
	return env.do(t, http.MethodPost, path, body, wantStatus)
}

func (env *apiEnv) get(t *testing.T, path string, wantStatus int) map[string]interface{} {
	t.Helper()
	return env.do(t, http.MethodGet, path, nil, wantStatus)
}

func TestPresaleAPI(t *testing.T) {
	env := newAPIEnv(t)
	alice := solana.NewWallet().PublicKey()
	env.post(t, "/api/accounts", gin.H{"address": alice.String(), "lamports": 40_000_000_000}, http.StatusCreated)

	var presalePath string
	endTime := env.now + 1_000

	t.Run("Create Presale", func(t *testing.T) {
		resp := env.post(t, "/api/presales", gin.H{
			"owner":            env.owner.String(),
			"token":            env.token.String(),
			"identifier":       "api-launch",
			"presale_type":     "hard_capped",
			"token_price":      1_000_000,
			"hard_cap":         100_000_000_000,
			"soft_cap":         10_000_000_000,
			"min_contribution": 1_000_000_000,
			"max_contribution": 50_000_000_000,
			"start_time":       env.now,
			"end_time":         endTime,
			"listing_rate":     2_000_000,
			"liquidity_bp":     1_000,
			"refund_type":      "return",
		}, http.StatusCreated)

		address, _ := resp["address"].(string)
		require.NotEmpty(t, address)
		presalePath = "/api/presales/" + address
		assert.Equal(t, "hard_capped", resp["presale_type"])
		assert.Equal(t, false, resp["is_init"])
		assert.NotEmpty(t, resp["vault_address"])
		assert.NotEmpty(t, resp["lp_vault_address"])
	})

	t.Run("Rejected Presale Params", func(t *testing.T) {
		env.post(t, "/api/presales", gin.H{
			"owner":        env.owner.String(),
			"token":        env.token.String(),
			"identifier":   "bad-launch",
			"presale_type": "hard_capped",
		}, http.StatusBadRequest)
	})

	t.Run("Init Vaults", func(t *testing.T) {
		resp := env.post(t, presalePath+"/vaults", gin.H{"signer": env.owner.String()}, http.StatusOK)
		assert.Equal(t, true, resp["is_init"])
		assert.Equal(t, float64(100_000_000_000_000), resp["vault_tokens"])
		assert.Equal(t, float64(4_750_000_000_000), resp["lp_vault_tokens"])

		// funding twice conflicts
		env.post(t, presalePath+"/vaults", gin.H{"signer": env.owner.String()}, http.StatusConflict)
	})

	t.Run("Contribute", func(t *testing.T) {
		resp := env.post(t, presalePath+"/contribute", gin.H{
			"contributor": alice.String(),
			"amount":      30_000_000_000,
		}, http.StatusOK)
		assert.Equal(t, float64(30_000_000_000), resp["accepted_amount"])
		assert.Equal(t, float64(30_000_000_000_000), resp["tokens_purchased"])

		// below the configured minimum
		env.post(t, presalePath+"/contribute", gin.H{
			"contributor": alice.String(),
			"amount":      1_000,
		}, http.StatusBadRequest)

		resp = env.get(t, presalePath, http.StatusOK)
		assert.Equal(t, float64(30_000_000_000), resp["total_raised"])
	})

	t.Run("Finalize And Claim", func(t *testing.T) {
		// not finalizable by a stranger
		env.post(t, presalePath+"/finalize", gin.H{"signer": alice.String()}, http.StatusForbidden)

		env.now = endTime + 1
		resp := env.post(t, presalePath+"/finalize", gin.H{"signer": env.owner.String()}, http.StatusOK)
		assert.Equal(t, true, resp["presale_ended"])
		assert.Equal(t, true, resp["owner_reward_withdrawn"])

		// replay conflicts
		env.post(t, presalePath+"/finalize", gin.H{"signer": env.owner.String()}, http.StatusConflict)

		resp = env.post(t, presalePath+"/claim", gin.H{"signer": alice.String()}, http.StatusOK)
		assert.Equal(t, float64(30_000_000_000_000), resp["tokens"])
		env.post(t, presalePath+"/claim", gin.H{"signer": alice.String()}, http.StatusConflict)
	})

	t.Run("Seed And Dispose Liquidity", func(t *testing.T) {
		// amm_config is mandatory
		env.post(t, presalePath+"/liquidity/seed", gin.H{"signer": env.owner.String()}, http.StatusBadRequest)

		resp := env.post(t, presalePath+"/liquidity/seed", gin.H{
			"signer":     env.owner.String(),
			"amm_config": solana.NewWallet().PublicKey().String(),
		}, http.StatusOK)
		assert.Equal(t, float64(4_750_000_000), resp["sol_pool_reserve"])

		env.post(t, presalePath+"/liquidity/dispose", gin.H{"signer": env.owner.String()}, http.StatusOK)
	})

	t.Run("Unknown Presale", func(t *testing.T) {
		env.get(t, "/api/presales/"+solana.NewWallet().PublicKey().String(), http.StatusNotFound)
		env.get(t, "/api/presales/not-a-key", http.StatusBadRequest)
	})
}

func TestSignerAPI(t *testing.T) {
	env := newAPIEnv(t)
	t.Setenv("KEYSTORE_DIR", t.TempDir())

	resp := env.post(t, "/api/signers", gin.H{"password": "hunter22"}, http.StatusCreated)
	address, _ := resp["address"].(string)
	require.NotEmpty(t, address)

	env.post(t, "/api/signers", gin.H{}, http.StatusBadRequest)

	resp = env.post(t, "/api/signers/"+address+"/unlock", gin.H{"password": "hunter22"}, http.StatusOK)
	assert.Equal(t, true, resp["unlocked"])
	assert.Equal(t, address, resp["address"])

	env.post(t, "/api/signers/"+address+"/unlock", gin.H{"password": "wrong"}, http.StatusForbidden)
}

func TestWhitelistAPI(t *testing.T) {
	env := newAPIEnv(t)
	alice := solana.NewWallet().PublicKey()
	env.post(t, "/api/accounts", gin.H{"address": alice.String(), "lamports": 10_000_000_000}, http.StatusCreated)

	resp := env.post(t, "/api/presales", gin.H{
		"owner":             env.owner.String(),
		"token":             env.token.String(),
		"identifier":        "wl-launch",
		"presale_type":      "hard_capped",
		"token_price":       1_000_000,
		"hard_cap":          100_000_000_000,
		"soft_cap":          10_000_000_000,
		"min_contribution":  1_000_000_000,
		"max_contribution":  50_000_000_000,
		"start_time":        env.now,
		"end_time":          env.now + 1_000,
		"listing_rate":      2_000_000,
		"liquidity_bp":      1_000,
		"whitelist_enabled": true,
	}, http.StatusCreated)
	presalePath := "/api/presales/" + resp["address"].(string)
	env.post(t, presalePath+"/vaults", gin.H{"signer": env.owner.String()}, http.StatusOK)

	// gated until listed
	env.post(t, presalePath+"/contribute", gin.H{"contributor": alice.String(), "amount": 2_000_000_000}, http.StatusForbidden)

	env.post(t, presalePath+"/whitelist", gin.H{"signer": env.owner.String(), "users": []string{alice.String()}}, http.StatusOK)
	check := env.get(t, presalePath+"/whitelist/"+alice.String(), http.StatusOK)
	assert.Equal(t, true, check["whitelisted"])

	env.post(t, presalePath+"/contribute", gin.H{"contributor": alice.String(), "amount": 2_000_000_000}, http.StatusOK)

	env.do(t, http.MethodDelete, presalePath+"/whitelist", gin.H{"signer": env.owner.String(), "users": []string{alice.String()}}, http.StatusOK)
	check = env.get(t, presalePath+"/whitelist/"+alice.String(), http.StatusOK)
	assert.Equal(t, false, check["whitelisted"])
}
