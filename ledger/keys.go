package ledger

import (
	"errors"
	"fmt"

	"github.com/holiman/uint256"
	"github.com/nspcc-dev/neo-go/pkg/core/storage"
	"github.com/nspcc-dev/neo-go/pkg/encoding/bigint"
	"github.com/nspcc-dev/neo-go/pkg/util"
)

const (
	nameKey     = 'n'
	symbolKey   = 's'
	decimalsKey = 'd'
	supplyKey   = 't'

	accPrefix       = 'a'
	allowancePrefix = 'p'
)

type getter interface {
	Get([]byte) ([]byte, error)
}

// kvStore is the part of storage.MemCachedStore the ledger writes through.
type kvStore interface {
	getter
	Put(key, value []byte)
	Delete(key []byte)
}

func accountKey(acc util.Uint160) []byte {
	return append([]byte{accPrefix}, acc.BytesBE()...)
}

func allowanceKey(owner, spender util.Uint160) []byte {
	k := make([]byte, 0, 1+2*util.Uint160Size)
	k = append(k, allowancePrefix)
	k = append(k, owner.BytesBE()...)
	return append(k, spender.BytesBE()...)
}

func encodeAmount(v *uint256.Int) []byte {
	data := bigint.ToBytes(v.ToBig())
	if len(data) == 0 {
		// Some backends can't tell empty values from missing ones.
		return []byte{0}
	}
	return data
}

func decodeAmount(data []byte) (*uint256.Int, error) {
	b := bigint.FromBytes(data)
	if b.Sign() < 0 {
		return nil, fmt.Errorf("%w: negative value %s", errInvalidAmount, b)
	}

	v, overflow := uint256.FromBig(b)
	if overflow {
		return nil, fmt.Errorf("%w: %d-bit value", errInvalidAmount, b.BitLen())
	}

	return v, nil
}

// getAmount reads an amount stored under key, absent key means zero.
func getAmount(st getter, key []byte) (*uint256.Int, error) {
	data, err := st.Get(key)
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return new(uint256.Int), nil
		}
		return nil, fmt.Errorf("read key %x: %w", key, err)
	}

	return decodeAmount(data)
}

// putAmount stores v under key, zero amounts are deleted.
func putAmount(st kvStore, key []byte, v *uint256.Int) {
	if v.IsZero() {
		st.Delete(key)
		return
	}

	st.Put(key, encodeAmount(v))
}
