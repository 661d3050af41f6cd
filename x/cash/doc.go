// Package cash defines a simple implementation of sending coins between
// wallets. A wallet is identified by an address and stores a normalized set
// of coins. The Controller interface exposes the funds movement to other
// packages, so they can settle balances without going through messages.
package cash
