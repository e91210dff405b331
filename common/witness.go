package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
)

var (
	// ErrOwnerWitnessFailed appears when the method must be called by an
	// owner of some assets but was not.
	ErrOwnerWitnessFailed = "owner witness check failed"
	// ErrSpenderWitnessFailed appears when the method must be called by a
	// spender of somebody else's assets but was not.
	ErrSpenderWitnessFailed = "spender witness check failed"
)

// CheckOwnerWitness checks witness of the passed owner.
// It panics with ErrOwnerWitnessFailed message on fail.
func CheckOwnerWitness(owner interop.Hash160) {
	if !IsUsableAddress(owner) {
		panic(ErrOwnerWitnessFailed)
	}
}

// CheckSpenderWitness checks witness of the passed spender.
// It panics with ErrSpenderWitnessFailed message on fail.
func CheckSpenderWitness(spender interop.Hash160) {
	if !IsUsableAddress(spender) {
		panic(ErrSpenderWitnessFailed)
	}
}

// IsUsableAddress checks if the address either witnessed the transaction or
// is the contract calling the current one.
func IsUsableAddress(addr interop.Hash160) bool {
	if len(addr) != interop.Hash160Len {
		return false
	}

	if runtime.CheckWitness(addr) {
		return true
	}

	return runtime.GetCallingScriptHash().Equals(addr)
}
