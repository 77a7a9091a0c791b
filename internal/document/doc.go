// Package document implements the document model: a line-based text store
// with lazy per-line tokenization, an id-keyed decoration store, and
// synchronous change notification.
//
// The model is the source of truth for document-space state. View-space
// consumers (the view layout and the view-model decoration resolver) read
// from it and subscribe to its change events; they never mutate it.
//
// Columns in this package are 1-based (see package textrange); token offsets
// are 0-based byte offsets, so column c corresponds to offset c-1.
package document
