package core

import (
	log "github.com/sirupsen/logrus"
)

// Event is the sum type of every observable output listed in spec.md §6.
// Exactly one concrete field is populated, matching which event fired.
type Event struct {
	Issued           *IssuedEvent
	Transferred      *TransferredEvent
	Approval         *ApprovalEvent
	ExchangeCreated  *ExchangeCreatedEvent
	LiquidityAdded   *LiquidityAddedEvent
	LiquidityRemoved *LiquidityRemovedEvent
	TokenPurchase    *TokenPurchaseEvent
	CurrencyPurchase *CurrencyPurchaseEvent
	OtherTokenPurchase *OtherTokenPurchaseEvent
}

type IssuedEvent struct {
	Asset  AssetID
	Issuer Address
	Total  uint64
}

type TransferredEvent struct {
	Asset  AssetID
	From   Address
	To     Address
	Amount uint64
}

type ApprovalEvent struct {
	Asset   AssetID
	Owner   Address
	Spender Address
	Amount  uint64
}

type ExchangeCreatedEvent struct {
	Pool    PoolID
	Account Address
}

type LiquidityAddedEvent struct {
	Pool     PoolID
	Caller   Address
	Currency uint64
	Tokens   uint64
}

type LiquidityRemovedEvent struct {
	Pool     PoolID
	Caller   Address
	Currency uint64
	Tokens   uint64
}

// TokenPurchaseEvent fires for currency->token swaps.
type TokenPurchaseEvent struct {
	Pool         PoolID
	Buyer        Address
	Recipient    Address
	CurrencySold uint64
	TokensBought uint64
}

// CurrencyPurchaseEvent fires for token->currency swaps.
type CurrencyPurchaseEvent struct {
	Pool           PoolID
	Seller         Address
	Recipient      Address
	TokensSold     uint64
	CurrencyBought uint64
}

type OtherTokenPurchaseEvent struct {
	Pool           PoolID
	OtherPool      PoolID
	Trader         Address
	Recipient      Address
	TokensSold     uint64
	OtherBought    uint64
	IntermediateCy uint64
}

// EventSink is the host capability that observes dispatchable outputs.
// Only called once a dispatchable can no longer fail (spec.md §7: no
// partial writes, no events on revert): after its Transaction closure
// returns nil, or, for ExchangeCreated, as the last step of that closure.
type EventSink interface {
	Emit(Event)
}

// LogEventSink logs every event via logrus and keeps the last N in an
// in-memory ring buffer, readable through Recent; cmd/dexserver has no
// route that serves it. It is the stand-in for the chain runtime's real
// event bus (out of scope per spec.md §1).
type LogEventSink struct {
	logger *log.Logger
	buf    []Event
	cap    int
	next   int
	filled bool
}

// NewLogEventSink builds a sink retaining the last capacity events.
func NewLogEventSink(logger *log.Logger, capacity int) *LogEventSink {
	if logger == nil {
		logger = log.StandardLogger()
	}
	if capacity <= 0 {
		capacity = 256
	}
	return &LogEventSink{logger: logger, buf: make([]Event, capacity), cap: capacity}
}

func (s *LogEventSink) Emit(e Event) {
	s.logEvent(e)
	s.buf[s.next] = e
	s.next = (s.next + 1) % s.cap
	if s.next == 0 {
		s.filled = true
	}
}

// Recent returns up to the last n events, most recent last.
func (s *LogEventSink) Recent(n int) []Event {
	total := s.next
	if s.filled {
		total = s.cap
	}
	if n <= 0 || n > total {
		n = total
	}
	out := make([]Event, 0, n)
	start := (s.next - n + s.cap) % s.cap
	for i := 0; i < n; i++ {
		out = append(out, s.buf[(start+i)%s.cap])
	}
	return out
}

func (s *LogEventSink) logEvent(e Event) {
	switch {
	case e.Issued != nil:
		s.logger.WithFields(log.Fields{"asset": e.Issued.Asset, "issuer": e.Issued.Issuer, "total": e.Issued.Total}).Info("asset issued")
	case e.Transferred != nil:
		s.logger.WithFields(log.Fields{"asset": e.Transferred.Asset, "from": e.Transferred.From, "to": e.Transferred.To, "amount": e.Transferred.Amount}).Info("transfer")
	case e.Approval != nil:
		s.logger.WithFields(log.Fields{"asset": e.Approval.Asset, "owner": e.Approval.Owner, "spender": e.Approval.Spender, "amount": e.Approval.Amount}).Info("approval")
	case e.ExchangeCreated != nil:
		s.logger.WithFields(log.Fields{"pool": e.ExchangeCreated.Pool, "account": e.ExchangeCreated.Account}).Info("exchange created")
	case e.LiquidityAdded != nil:
		s.logger.WithFields(log.Fields{"pool": e.LiquidityAdded.Pool, "caller": e.LiquidityAdded.Caller, "currency": e.LiquidityAdded.Currency, "tokens": e.LiquidityAdded.Tokens}).Info("liquidity added")
	case e.LiquidityRemoved != nil:
		s.logger.WithFields(log.Fields{"pool": e.LiquidityRemoved.Pool, "caller": e.LiquidityRemoved.Caller, "currency": e.LiquidityRemoved.Currency, "tokens": e.LiquidityRemoved.Tokens}).Info("liquidity removed")
	case e.TokenPurchase != nil:
		s.logger.WithFields(log.Fields{"pool": e.TokenPurchase.Pool, "buyer": e.TokenPurchase.Buyer, "currency_sold": e.TokenPurchase.CurrencySold, "tokens_bought": e.TokenPurchase.TokensBought}).Info("token purchase")
	case e.CurrencyPurchase != nil:
		s.logger.WithFields(log.Fields{"pool": e.CurrencyPurchase.Pool, "seller": e.CurrencyPurchase.Seller, "tokens_sold": e.CurrencyPurchase.TokensSold, "currency_bought": e.CurrencyPurchase.CurrencyBought}).Info("currency purchase")
	case e.OtherTokenPurchase != nil:
		s.logger.WithFields(log.Fields{"pool": e.OtherTokenPurchase.Pool, "other_pool": e.OtherTokenPurchase.OtherPool, "trader": e.OtherTokenPurchase.Trader, "tokens_sold": e.OtherTokenPurchase.TokensSold, "other_bought": e.OtherTokenPurchase.OtherBought}).Info("other token purchase")
	}
}
