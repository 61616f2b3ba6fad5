// Package store persists vocabulary sets, speaking suggestion sets, the
// active selection of each, and the user-entered API key in a local
// key-value store.
//
// Collections are always read and written whole. Values that fail to parse
// are logged and treated as empty so that corrupt data never prevents the
// application from starting.
package store
