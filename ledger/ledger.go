package ledger

import (
	"errors"
	"fmt"
	"sync"

	"github.com/holiman/uint256"
	"github.com/nspcc-dev/neo-go/pkg/core/storage"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"go.uber.org/zap"
)

// Token groups descriptive token parameters fixed at ledger creation.
type Token struct {
	// Display name.
	Name string
	// Ticker symbol.
	Symbol string
	// Display precision, doesn't affect amount arithmetic.
	Decimals uint8
}

// Ledger is a token ledger over a key-value store. All operations are safe
// for concurrent use and are applied one at a time.
//
// Ledger doesn't own the store, it's up to the caller to close it after the
// Ledger is no longer used.
type Ledger struct {
	log     *zap.Logger
	metrics *Metrics

	// mtx serializes all store access, including reads.
	mtx   sync.Mutex
	store storage.Store

	token  Token
	supply uint256.Int
}

// Option configures optional Ledger parameters.
type Option func(*Ledger)

// WithLogger sets the logger used to report committed and rejected
// operations. Nop logger is used by default.
func WithLogger(log *zap.Logger) Option {
	return func(l *Ledger) {
		l.log = log
	}
}

// WithMetrics makes Ledger count its operations in m.
func WithMetrics(m *Metrics) Option {
	return func(l *Ledger) {
		l.metrics = m
	}
}

func newLedger(st storage.Store, opts []Option) *Ledger {
	l := &Ledger{
		log:   zap.NewNop(),
		store: st,
	}

	for _, o := range opts {
		o(l)
	}

	return l
}

// New creates a ledger in st assigning the whole supply to holder. holder is
// the identity of whoever performs the creation. st must not contain another
// ledger, use Open for that.
func New(st storage.Store, holder util.Uint160, tok Token, supply *uint256.Int, opts ...Option) (*Ledger, error) {
	_, err := st.Get([]byte{decimalsKey})
	if err == nil {
		return nil, ErrAlreadyInitialized
	}
	if !errors.Is(err, storage.ErrKeyNotFound) {
		return nil, fmt.Errorf("check ledger presence: %w", err)
	}

	l := newLedger(st, opts)
	l.token = tok
	l.supply.Set(supply)

	batch := storage.NewMemCachedStore(st)
	batch.Put([]byte{nameKey}, []byte(tok.Name))
	batch.Put([]byte{symbolKey}, []byte(tok.Symbol))
	batch.Put([]byte{decimalsKey}, []byte{tok.Decimals})
	batch.Put([]byte{supplyKey}, encodeAmount(supply))
	putAmount(batch, accountKey(holder), supply)

	if _, err = batch.Persist(); err != nil {
		return nil, fmt.Errorf("persist ledger: %w", err)
	}

	l.log.Info("ledger created",
		zap.String("name", tok.Name),
		zap.String("symbol", tok.Symbol),
		zap.Uint8("decimals", tok.Decimals),
		zap.Stringer("supply", supply),
		zap.Stringer("holder", holder))

	return l, nil
}

// Open loads a ledger previously created in st by New. It returns
// ErrNotInitialized if there is none.
func Open(st storage.Store, opts ...Option) (*Ledger, error) {
	dec, err := st.Get([]byte{decimalsKey})
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return nil, ErrNotInitialized
		}
		return nil, fmt.Errorf("read decimals: %w", err)
	}
	if len(dec) != 1 {
		return nil, fmt.Errorf("invalid decimals record length %d", len(dec))
	}

	l := newLedger(st, opts)
	l.token.Decimals = dec[0]

	if l.token.Name, err = getString(st, []byte{nameKey}); err != nil {
		return nil, fmt.Errorf("read name: %w", err)
	}

	if l.token.Symbol, err = getString(st, []byte{symbolKey}); err != nil {
		return nil, fmt.Errorf("read symbol: %w", err)
	}

	supply, err := getAmount(st, []byte{supplyKey})
	if err != nil {
		return nil, fmt.Errorf("read total supply: %w", err)
	}
	l.supply.Set(supply)

	return l, nil
}

func getString(st getter, key []byte) (string, error) {
	data, err := st.Get(key)
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return "", nil
		}
		return "", err
	}

	return string(data), nil
}

// Name returns display name of the token.
func (l *Ledger) Name() string {
	return l.token.Name
}

// Symbol returns ticker symbol of the token.
func (l *Ledger) Symbol() string {
	return l.token.Symbol
}

// Decimals returns display precision of the token.
func (l *Ledger) Decimals() uint8 {
	return l.token.Decimals
}

// TotalSupply returns the amount of tokens held by all accounts together.
func (l *Ledger) TotalSupply() *uint256.Int {
	return l.supply.Clone()
}

// BalanceOf returns the balance of acc, zero for unknown accounts. The error
// is only returned when the store can't be read.
func (l *Ledger) BalanceOf(acc util.Uint160) (*uint256.Int, error) {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	return getAmount(l.store, accountKey(acc))
}

// ForEachBalance calls f for every account holding a non-zero balance until f
// returns false. f must not call Ledger methods.
func (l *Ledger) ForEachBalance(f func(acc util.Uint160, balance *uint256.Int) bool) error {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	var iterErr error

	l.store.Seek(storage.SeekRange{Prefix: []byte{accPrefix}}, func(k, v []byte) bool {
		acc, err := util.Uint160DecodeBytesBE(k[1:])
		if err != nil {
			iterErr = fmt.Errorf("invalid account key %x: %w", k, err)
			return false
		}

		balance, err := decodeAmount(v)
		if err != nil {
			iterErr = fmt.Errorf("balance of %s: %w", acc.StringLE(), err)
			return false
		}

		return f(acc, balance)
	})

	return iterErr
}

// apply runs f against a fresh overlay of the store and persists the overlay
// only if f succeeds, so a failed operation leaves no writes behind.
func (l *Ledger) apply(op string, f func(kvStore) error, fields ...zap.Field) error {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	batch := storage.NewMemCachedStore(l.store)

	err := f(batch)
	if err == nil {
		if _, err = batch.Persist(); err != nil {
			err = fmt.Errorf("persist %s: %w", op, err)
		}
	}

	l.metrics.observe(op, err)

	switch {
	case err == nil:
		l.log.Debug(op+" committed", fields...)
	case isRejection(err):
		l.log.Debug(op+" rejected", append(fields, zap.Error(err))...)
	default:
		l.log.Error(op+" failed", append(fields, zap.Error(err))...)
	}

	return err
}

func isRejection(err error) bool {
	return errors.Is(err, ErrInsufficientBalance) ||
		errors.Is(err, ErrAllowanceExceeded) ||
		errors.Is(err, ErrOverflow)
}
