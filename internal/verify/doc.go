// Package verify re-walks the input and output trees after a run and confirms
// a 1:1 mapping between them, plus a sanity bound on per-file compression
// rates. It trusts nothing the pipeline reported; both trees are enumerated
// fresh.
package verify
