package ledger

import (
	"fmt"

	"github.com/holiman/uint256"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"go.uber.org/zap"
)

// Transfer moves amount from the caller's account to the to account.
//
// It fails with ErrInsufficientBalance if the caller holds less than amount
// and with ErrOverflow if the recipient can't be credited. Transfer to self
// only checks the balance.
func (l *Ledger) Transfer(caller, to util.Uint160, amount *uint256.Int) error {
	return l.apply(opTransfer, func(st kvStore) error {
		return move(st, caller, to, amount)
	},
		zap.Stringer("from", caller),
		zap.Stringer("to", to),
		zap.Stringer("amount", amount))
}

// TransferFrom moves amount from the from account to the to account on
// behalf of the caller, consuming the allowance given to the caller by
// the owner of from.
//
// It fails with ErrAllowanceExceeded if the allowance is less than amount,
// otherwise it fails the same way Transfer does. Nothing is consumed on
// failure.
func (l *Ledger) TransferFrom(caller, from, to util.Uint160, amount *uint256.Int) error {
	return l.apply(opTransferFrom, func(st kvStore) error {
		key := allowanceKey(from, caller)

		allowed, err := getAmount(st, key)
		if err != nil {
			return err
		}

		if allowed.Lt(amount) {
			return fmt.Errorf("%w: %s allowed, %s requested", ErrAllowanceExceeded, allowed, amount)
		}

		putAmount(st, key, new(uint256.Int).Sub(allowed, amount))

		return move(st, from, to, amount)
	},
		zap.Stringer("spender", caller),
		zap.Stringer("from", from),
		zap.Stringer("to", to),
		zap.Stringer("amount", amount))
}

// move is the balance movement shared by Transfer and TransferFrom. Both
// balances are read before anything is written.
func move(st kvStore, from, to util.Uint160, amount *uint256.Int) error {
	fromKey := accountKey(from)

	fromBalance, err := getAmount(st, fromKey)
	if err != nil {
		return err
	}

	if fromBalance.Lt(amount) {
		return fmt.Errorf("%w: %s available, %s requested", ErrInsufficientBalance, fromBalance, amount)
	}

	if from.Equals(to) {
		return nil
	}

	toKey := accountKey(to)

	toBalance, err := getAmount(st, toKey)
	if err != nil {
		return err
	}

	credited, overflow := new(uint256.Int).AddOverflow(toBalance, amount)
	if overflow {
		return fmt.Errorf("%w: %s + %s", ErrOverflow, toBalance, amount)
	}

	putAmount(st, fromKey, new(uint256.Int).Sub(fromBalance, amount))
	putAmount(st, toKey, credited)

	return nil
}
