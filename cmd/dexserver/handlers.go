package main

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"zlkdex/core"
)

// poolView mirrors the teacher's poolView (cmd/dexserver/main.go): a
// public, JSON-friendly projection of a pool plus its live reserves.
type poolView struct {
	ID              core.PoolID  `json:"id"`
	TokenID         core.AssetID `json:"token_id"`
	LiquidityID     core.AssetID `json:"liquidity_id"`
	Account         string       `json:"account"`
	TokenReserve    uint64       `json:"token_reserve"`
	CurrencyReserve uint64       `json:"currency_reserve"`
	LPSupply        uint64       `json:"lp_supply"`
}

func poolToView(pool core.Pool) poolView {
	return poolView{
		ID:              pool.ID,
		TokenID:         pool.TokenID,
		LiquidityID:     pool.LiquidityID,
		Account:         pool.Account.String(),
		TokenReserve:    appEnv.Ledger.BalanceOf(pool.TokenID, pool.Account),
		CurrencyReserve: appEnv.Currency.FreeBalance(pool.Account),
		LPSupply:        appEnv.Ledger.TotalSupply(pool.LiquidityID),
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func handlePoolsList(w http.ResponseWriter, r *http.Request) {
	pools := appEnv.Pools.AllPools()
	out := make([]poolView, 0, len(pools))
	for _, p := range pools {
		out = append(out, poolToView(p))
	}
	writeJSON(w, http.StatusOK, out)
}

func handlePoolByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid pool id")
		return
	}
	pool, ok := appEnv.Pools.PoolByID(core.PoolID(id))
	if !ok {
		writeError(w, http.StatusNotFound, "pool not found")
		return
	}
	writeJSON(w, http.StatusOK, poolToView(pool))
}

type assetView struct {
	ID          core.AssetID `json:"id"`
	Name        string       `json:"name"`
	Symbol      string       `json:"symbol"`
	Decimals    uint8        `json:"decimals"`
	TotalSupply uint64       `json:"total_supply"`
}

func handleAssetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid asset id")
		return
	}
	assetID := core.AssetID(id)
	info, ok := appEnv.Ledger.AssetInfo(assetID)
	if !ok {
		writeError(w, http.StatusNotFound, "asset not found")
		return
	}
	writeJSON(w, http.StatusOK, assetView{
		ID:          assetID,
		Name:        info.NameString(),
		Symbol:      info.SymbolString(),
		Decimals:    info.Decimals,
		TotalSupply: appEnv.Ledger.TotalSupply(assetID),
	})
}

func handleBalance(w http.ResponseWriter, r *http.Request) {
	assetNum, err := strconv.ParseUint(chi.URLParam(r, "asset"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid asset id")
		return
	}
	acct, err := core.AddressFromString(chi.URLParam(r, "account"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid account")
		return
	}
	writeJSON(w, http.StatusOK, map[string]uint64{
		"balance": appEnv.Ledger.BalanceOf(core.AssetID(assetNum), acct),
	})
}

func handleQuote(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	poolNum, err := strconv.ParseUint(q.Get("pool"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid pool")
		return
	}
	currencyIn, err := strconv.ParseBool(q.Get("currency_in"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid currency_in")
		return
	}
	amountIn, err := strconv.ParseUint(q.Get("amount_in"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid amount_in")
		return
	}
	out, err := appEnv.Engine.Quote(core.PoolID(poolNum), currencyIn, amountIn)
	if err != nil {
		if kind, ok := core.KindOf(err); ok {
			writeError(w, http.StatusBadRequest, kind.String())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]uint64{"amount_out": out})
}

func handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
