/*
Package ledger implements the accounting core of a fungible token.

Ledger tracks per-account balances and per-owner/per-spender allowances over a
key-value store and keeps the total of all balances equal to the total supply
fixed at creation. There is no mint or burn. Every mutating operation takes the
caller identity explicitly, commits all of its writes or none of them and is
serialized with every other operation on the same Ledger.

Approvals overwrite the previous allowance rather than adjusting it. A spender
that observes a pending approval change can spend the old allowance first and
then the new one. Owners lowering a non-zero allowance should approve zero,
check that it was not spent, and only then approve the new value.

# Rejections

Transfers fail with [ErrInsufficientBalance] when the source holds less than
requested, [ErrAllowanceExceeded] when a spender moves more than it was
allowed to and [ErrOverflow] when a credit would not fit into the amount type.
Rejected operations leave the ledger untouched.
*/
package ledger

/*
Ledger storage model.

# Summary
Key-value storage format:
  - 'n' -> string
    token name
  - 's' -> string
    token symbol
  - 'd' -> single byte
    display precision
  - 't' -> NeoVM integer
    total supply
  - a<util.Uint160 BE> -> NeoVM integer
    balance of the account, absent for zero
  - p<owner util.Uint160 BE><spender util.Uint160 BE> -> NeoVM integer
    allowance of the spender, absent for zero

Account and allowance records use the same encoding as the token contract
storage, so both can be read with the same tools.
*/
