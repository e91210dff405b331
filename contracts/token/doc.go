/*
Package token implements a NEP-17 token contract with spending allowances.

The whole supply is assigned to the sender of the deployment transaction and
never changes afterwards. Besides standard NEP-17 methods the contract lets
owners approve spenders that can transfer tokens on their behalf. Approvals
replace the previous allowance, so owners changing a non-zero allowance should
first set it to zero and check it wasn't spent.

Deployment data is an array of name (string), symbol (string), decimals
(integer in [0, 255]) and initial supply (non-negative integer).

# Contract notifications

Transfer notification. This is a NEP-17 standard notification. It is also
produced once on deployment with a null sender.

	Transfer:
	  - name: from
	    type: Hash160
	  - name: to
	    type: Hash160
	  - name: amount
	    type: Integer

Approval notification. It is produced on every allowance change made with
approve method.

	Approval:
	  - name: owner
	    type: Hash160
	  - name: spender
	    type: Hash160
	  - name: amount
	    type: Integer
*/
package token

/*
Contract storage model.

# Summary
Key-value storage format:
  - 'n' -> string
    token name
  - 's' -> string
    token symbol
  - 'd' -> int
    token decimals
  - 't' -> int
    total supply
  - a<interop.Hash160> -> int
    balance of the account, absent for zero
  - p<owner interop.Hash160><spender interop.Hash160> -> int
    allowance of the spender, absent for zero
*/
