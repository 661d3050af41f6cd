// Package multisig implements N of M signature wallets over shared funds.
//
// A wallet is a set of owner addresses and a required approval count. Any
// owner can submit a transaction, which is either a transfer of wallet
// funds, a forwarded message executed with the wallet authority, or both.
// The submission counts as the first approval. Once the approval count
// reaches the wallet requirement the transaction executes.
//
// Execution failures never fail the approving transaction: the payload
// writes are rolled back, a failure event is emitted and the collected
// approvals stay. Execution can then be retried with an explicit execute
// message once the cause, for example a temporarily insufficient balance,
// is resolved. An executed transaction is final and cannot be replayed.
package multisig
