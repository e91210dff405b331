package ledger

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/holiman/uint256"
	"github.com/nspcc-dev/neo-go/pkg/core/storage"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/stretchr/testify/require"
)

func TestLedger_Transfer(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		l, _ := newTestLedger(t, 1000)

		require.NoError(t, l.Transfer(accA, accB, uint256.NewInt(300)))

		requireBalance(t, l, accA, 700)
		requireBalance(t, l, accB, 300)
		requireConservation(t, l)
	})

	t.Run("whole balance", func(t *testing.T) {
		l, st := newTestLedger(t, 1000)

		require.NoError(t, l.Transfer(accA, accB, uint256.NewInt(1000)))

		requireBalance(t, l, accA, 0)
		requireBalance(t, l, accB, 1000)

		_, err := st.Get(accountKey(accA))
		require.ErrorIs(t, err, storage.ErrKeyNotFound)
	})

	t.Run("insufficient balance", func(t *testing.T) {
		l, _ := newTestLedger(t, 100)

		err := l.Transfer(accA, accB, uint256.NewInt(101))
		require.ErrorIs(t, err, ErrInsufficientBalance)

		requireBalance(t, l, accA, 100)
		requireBalance(t, l, accB, 0)
	})

	t.Run("unknown sender", func(t *testing.T) {
		l, _ := newTestLedger(t, 100)

		err := l.Transfer(accB, accC, uint256.NewInt(1))
		require.ErrorIs(t, err, ErrInsufficientBalance)

		require.NoError(t, l.Transfer(accB, accC, new(uint256.Int)))
		requireBalance(t, l, accB, 0)
		requireBalance(t, l, accC, 0)
	})

	t.Run("to self", func(t *testing.T) {
		l, _ := newTestLedger(t, 400)

		require.NoError(t, l.Transfer(accA, accA, uint256.NewInt(400)))
		requireBalance(t, l, accA, 400)

		require.NoError(t, l.Transfer(accA, accA, uint256.NewInt(1)))
		requireBalance(t, l, accA, 400)

		err := l.Transfer(accA, accA, uint256.NewInt(401))
		require.ErrorIs(t, err, ErrInsufficientBalance)
		requireBalance(t, l, accA, 400)
		requireConservation(t, l)
	})

	t.Run("overflow", func(t *testing.T) {
		l, st := newTestLedger(t, 10)

		// Conservation makes overflow unreachable through the API, so
		// the recipient balance is forged directly.
		maxAmount := new(uint256.Int).SetAllOne()
		batch := storage.NewMemCachedStore(st)
		batch.Put(accountKey(accB), encodeAmount(maxAmount))
		_, err := batch.Persist()
		require.NoError(t, err)

		err = l.Transfer(accA, accB, uint256.NewInt(1))
		require.ErrorIs(t, err, ErrOverflow)

		requireBalance(t, l, accA, 10)
		b, err := l.BalanceOf(accB)
		require.NoError(t, err)
		require.Equal(t, maxAmount, b)

		require.NoError(t, l.Transfer(accA, accB, new(uint256.Int)))
	})
}

func TestLedger_Conservation(t *testing.T) {
	const supply = 1_000_000

	l, _ := newTestLedger(t, supply)
	accounts := []util.Uint160{accA, accB, accC, {0xd}, {0xe}}

	r := rand.New(rand.NewSource(42))

	for j := 0; j < 500; j++ {
		var (
			caller = accounts[r.Intn(len(accounts))]
			from   = accounts[r.Intn(len(accounts))]
			to     = accounts[r.Intn(len(accounts))]
			amount = uint256.NewInt(uint64(r.Intn(supply / 4)))
			err    error
		)

		switch r.Intn(3) {
		case 0:
			err = l.Transfer(caller, to, amount)
		case 1:
			err = l.Approve(caller, from, amount)
		case 2:
			err = l.TransferFrom(caller, from, to, amount)
		}
		if err != nil {
			require.True(t, isRejection(err), err)
		}
	}

	requireConservation(t, l)
}

func TestLedger_ConcurrentTransfers(t *testing.T) {
	const (
		workers   = 8
		transfers = 50
	)

	l, _ := newTestLedger(t, workers*transfers)

	var (
		wg   sync.WaitGroup
		errs = make(chan error, workers*transfers)
	)
	for i := 0; i < workers; i++ {
		acc := util.Uint160{0x10, byte(i)}
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < transfers; j++ {
				errs <- l.Transfer(accA, acc, uint256.NewInt(1))
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	requireBalance(t, l, accA, 0)
	for i := 0; i < workers; i++ {
		requireBalance(t, l, util.Uint160{0x10, byte(i)}, transfers)
	}
	requireConservation(t, l)
}
