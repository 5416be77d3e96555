// Package snowball keeps an investment portfolio as an ordered log of
// transactions and derives everything else from it.
//
// The core functionalities include:
//   - Transaction Log: buys, sells, dividends, splits, deposits, withdrawals
//     and fees, kept newest first in a Store.
//   - Derivation Engine: positions, cost basis (average cost or FIFO),
//     realized and unrealized gains, cash and dividend income, recomputed from
//     the log on every read.
//   - Reference Data: prices, names, sectors and dividend rates that cannot be
//     derived from transactions, supplied through ReferenceData.
//   - Tax Classification: dividend income split into qualified, non-qualified,
//     return of capital and foreign buckets.
//   - Import and Export: a generic CSV format and brokerage activity exports.
//   - Persistence: the portfolio state saved under three keys of any
//     KeyValue store (see the kv package).
//
// This package serves as the foundational logic for the `snowball`
// command-line tool.
package snowball
