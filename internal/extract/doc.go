// Package extract turns one raw thread page into structured message
// records.
//
// # Extraction order
//
// Per message block, fields that must reflect the original markup (raw
// snapshot, author, timestamp, edit marker, quotes, mentions, spoilers,
// emoji) are derived first. Only then does a destructive cleanup pass
// run, on a cloned subtree, removing presentation-only markup before the
// text metrics (content, word count, compliance) are computed. The order
// matters: cleanup removes the very elements the snapshot fields
// inspect, and emoji replacement must happen before the identifier
// attribute is discarded.
//
// All selectors, attribute names, and tag lists come from config.Rules,
// so the engine is testable against synthetic fixtures.
package extract
