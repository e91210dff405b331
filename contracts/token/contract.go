package token

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/nspcc-dev/token-ledger/common"
)

const (
	nameKey     = "n"
	symbolKey   = "s"
	decimalsKey = "d"
	supplyKey   = "t"

	accPrefix       = 'a'
	allowancePrefix = 'p'
)

// nolint:deadcode,unused
func _deploy(data any, isUpdate bool) {
	args := data.([]any)
	if isUpdate {
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	if len(args) != 4 {
		panic("invalid deploy arguments")
	}

	var (
		name     = args[0].(string)
		symbol   = args[1].(string)
		decimals = args[2].(int)
		supply   = args[3].(int)
		holder   = runtime.GetScriptContainer().Sender
	)

	if decimals < 0 || decimals > 255 {
		panic("invalid decimals")
	}
	if supply < 0 {
		panic("negative supply")
	}

	ctx := storage.GetContext()
	storage.Put(ctx, nameKey, name)
	storage.Put(ctx, symbolKey, symbol)
	storage.Put(ctx, decimalsKey, decimals)
	storage.Put(ctx, supplyKey, supply)
	if supply > 0 {
		storage.Put(ctx, accountKey(holder), supply)
	}

	var from interop.Hash160
	runtime.Notify("Transfer", from, holder, supply)

	runtime.Log("token contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by committee.
func Update(nefFile, manifest []byte, data any) {
	if !common.HasUpdateAccess() {
		panic("only committee can update contract")
	}

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, nefFile, manifest, common.AppendVersion(data))
	runtime.Log("token contract updated")
}

// Name returns display name of the token.
func Name() string {
	return storage.Get(storage.GetReadOnlyContext(), nameKey).(string)
}

// Symbol is a NEP-17 standard method that returns ticker symbol of the token.
func Symbol() string {
	return storage.Get(storage.GetReadOnlyContext(), symbolKey).(string)
}

// Decimals is a NEP-17 standard method that returns display precision of
// the token.
func Decimals() int {
	return getInt(storage.GetReadOnlyContext(), decimalsKey)
}

// TotalSupply is a NEP-17 standard method that returns amount of tokens held
// by all accounts together. It never changes after deployment.
func TotalSupply() int {
	return getInt(storage.GetReadOnlyContext(), supplyKey)
}

// BalanceOf is a NEP-17 standard method that returns token balance of the
// specified account.
func BalanceOf(account interop.Hash160) int {
	if len(account) != interop.Hash160Len {
		panic("invalid account")
	}

	return getInt(storage.GetReadOnlyContext(), accountKey(account))
}

// Allowance returns the amount spender may transfer from the owner account
// using TransferFrom.
func Allowance(owner, spender interop.Hash160) int {
	if len(owner) != interop.Hash160Len || len(spender) != interop.Hash160Len {
		panic("invalid account")
	}

	return getInt(storage.GetReadOnlyContext(), allowanceKey(owner, spender))
}

// Transfer is a NEP-17 standard method that transfers tokens from one
// account to another. It can be invoked only by the account owner.
//
// It produces Transfer notification. If the recipient is a deployed contract,
// its onNEP17Payment method is called with data.
func Transfer(from, to interop.Hash160, amount int, data any) bool {
	checkTransferArgs(from, to, amount)

	if !common.IsUsableAddress(from) {
		runtime.Log("bad script hashes")
		return false
	}

	if !move(storage.GetContext(), from, to, amount) {
		return false
	}

	postTransfer(from, to, amount, data)
	return true
}

// Approve sets the amount spender may transfer from the owner account using
// TransferFrom. The previous allowance is replaced, not increased. It can be
// invoked only by the owner.
//
// It produces Approval notification.
func Approve(owner, spender interop.Hash160, amount int) bool {
	if len(spender) != interop.Hash160Len {
		panic("invalid spender")
	}
	if amount < 0 {
		panic("negative amount")
	}

	common.CheckOwnerWitness(owner)

	ctx := storage.GetContext()
	key := allowanceKey(owner, spender)
	if amount == 0 {
		storage.Delete(ctx, key)
	} else {
		storage.Put(ctx, key, amount)
	}

	runtime.Notify("Approval", owner, spender, amount)
	return true
}

// TransferFrom transfers tokens from one account to another on behalf of the
// spender, consuming the allowance given to the spender by the owner of
// from. It can be invoked only by the spender.
//
// It returns false without consuming anything if the allowance or the balance
// is not enough. It produces Transfer notification the same way Transfer
// does.
func TransferFrom(spender, from, to interop.Hash160, amount int, data any) bool {
	checkTransferArgs(from, to, amount)

	common.CheckSpenderWitness(spender)

	ctx := storage.GetContext()
	key := allowanceKey(from, spender)

	allowed := getInt(ctx, key)
	if allowed < amount {
		runtime.Log("allowance exceeded")
		return false
	}

	if !move(ctx, from, to, amount) {
		return false
	}

	if allowed == amount {
		storage.Delete(ctx, key)
	} else {
		storage.Put(ctx, key, allowed-amount)
	}

	postTransfer(from, to, amount, data)
	return true
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func checkTransferArgs(from, to interop.Hash160, amount int) {
	if len(from) != interop.Hash160Len || len(to) != interop.Hash160Len {
		panic("invalid account")
	}
	if amount < 0 {
		panic("negative amount")
	}
}

// move checks the sender balance and moves amount to the recipient. Both
// balances are read before anything is written.
func move(ctx storage.Context, from, to interop.Hash160, amount int) bool {
	fromKey := accountKey(from)

	fromBalance := getInt(ctx, fromKey)
	if fromBalance < amount {
		runtime.Log("insufficient balance")
		return false
	}

	if from.Equals(to) || amount == 0 {
		return true
	}

	toKey := accountKey(to)
	toBalance := getInt(ctx, toKey)

	if fromBalance == amount {
		storage.Delete(ctx, fromKey)
	} else {
		storage.Put(ctx, fromKey, fromBalance-amount)
	}
	storage.Put(ctx, toKey, toBalance+amount)

	return true
}

func postTransfer(from, to interop.Hash160, amount int, data any) {
	runtime.Notify("Transfer", from, to, amount)

	if management.GetContract(to) != nil {
		contract.Call(to, "onNEP17Payment", contract.All, from, amount, data)
	}
}

func accountKey(acc interop.Hash160) []byte {
	return append([]byte{accPrefix}, acc...)
}

func allowanceKey(owner, spender interop.Hash160) []byte {
	return append(append([]byte{allowancePrefix}, owner...), spender...)
}

func getInt(ctx storage.Context, key any) int {
	v := storage.Get(ctx, key)
	if v != nil {
		return v.(int)
	}

	return 0
}
