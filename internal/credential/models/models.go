package models

import (
	"time"
)

// Document is an arbitrary JSON credential document as submitted by the
// caller. No semantic meaning is assumed beyond unique identification.
type Document map[string]any

// IDField is the document key carrying the credential identifier.
const IDField = "id"

// ID returns the document's identifier and whether it is usable.
// A missing id or an empty string means "generate one"; a present value of
// any other type is malformed and cannot be silently coerced.
func (d Document) ID() (id string, present bool, malformed bool) {
	raw, ok := d[IDField]
	if !ok {
		return "", false, false
	}
	s, ok := raw.(string)
	if !ok {
		return "", true, true
	}
	if s == "" {
		return "", false, false
	}
	return s, true, false
}

// WithID returns a shallow copy of the document with the identifier set.
// The original document is never mutated.
func (d Document) WithID(id string) Document {
	out := make(Document, len(d)+1)
	for k, v := range d {
		out[k] = v
	}
	out[IDField] = id
	return out
}

// Record is the persisted issuance envelope: the submitted document plus the
// identity of the worker that issued it and the issuance timestamp. Records
// are created exactly once and never mutated.
type Record struct {
	Credential Document  `json:"credential"`
	Worker     string    `json:"worker"`
	Timestamp  time.Time `json:"timestamp"`
}

// Receipt confirms a successful issuance.
type Receipt struct {
	CredentialID string
	Worker       string
	IssuedAt     time.Time
}
