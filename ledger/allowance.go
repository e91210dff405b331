package ledger

import (
	"github.com/holiman/uint256"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"go.uber.org/zap"
)

// Approve sets the amount spender may move out of the caller's account to
// amount. The previous allowance is replaced, not increased. See package
// documentation for the implications.
func (l *Ledger) Approve(caller, spender util.Uint160, amount *uint256.Int) error {
	return l.apply(opApprove, func(st kvStore) error {
		putAmount(st, allowanceKey(caller, spender), amount)
		return nil
	},
		zap.Stringer("owner", caller),
		zap.Stringer("spender", spender),
		zap.Stringer("amount", amount))
}

// Allowance returns the amount spender may move out of the owner account,
// zero if nothing was approved. The error is only returned when the store
// can't be read.
func (l *Ledger) Allowance(owner, spender util.Uint160) (*uint256.Int, error) {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	return getAmount(l.store, allowanceKey(owner, spender))
}
