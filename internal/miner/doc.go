// Package miner implements the thread acquisition pipeline: building and
// parsing page addresses, discovering a thread's last page from the
// server redirect, and fetching page markup into numbered snapshot files.
//
// # Components
//
//   - Address helpers: AddressForPage / PageFromAddress
//   - Fetcher: one HTTP GET per page, redirect-aware
//   - Miner: orchestrates full, ranged, and resume fetches in linear or
//     bounded-parallel mode
//
// # Snapshot contract
//
// Pages are persisted verbatim as page_NNNN.html (zero-padded to at least
// four digits) so that lexicographic and numeric filename order agree.
// The extraction side relies on directory iteration order matching page
// order.
package miner
