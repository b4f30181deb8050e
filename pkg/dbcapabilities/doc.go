// Package dbcapabilities records, per store technology, which parts of
// the conventional relational surface the store actually provides.
//
// Capability flags drive translation decisions: a translator for a store
// without server-generated identifiers must allocate keys client-side, a
// store without DEFAULT clauses must reject rows that rely on them, and so
// on. Keeping the flags in one table keeps those decisions out of the
// translation code paths.
package dbcapabilities
