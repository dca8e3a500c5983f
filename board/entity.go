package board

import (
	"crypto/md5" //nolint:gosec // content hash is an equality fingerprint, not a security digest.
	"encoding/hex"
	"sort"
)

// EntityMeta holds the three fields every entity carries that are excluded
// from its own content hash: the stable kiid, the display-only ID, and the
// hash itself (invariant I2).
type EntityMeta struct {
	KIID string `json:"kiid"`
	ID   int    `json:"ID"`
	Hash string `json:"hash"`
}

// ProvisionalPrefix marks a kiid minted on the Peer side before the Host
// has assigned a permanent one (spec.md §3, "Identifiers").
const ProvisionalPrefix = "added-in-peer_"

// IsProvisional reports whether kiid still carries the Peer-side placeholder
// prefix. Invariant I6 requires this to be false for every entity in a
// BoardModel once the reply step of a sync cycle has completed.
func IsProvisional(kiid string) bool {
	return len(kiid) >= len(ProvisionalPrefix) && kiid[:len(ProvisionalPrefix)] == ProvisionalPrefix
}

// Entity is anything the Differ, Updater, and BoardModel operate on
// generically: drawings, footprints, and vias all satisfy it.
type Entity interface {
	Kiid() string
	SetKiid(kiid string)
	GetID() int
	SetID(id int)
	GetHash() string
	SetHash(hash string)
	// HashableFields returns the entity's content excluding hash, ID, and
	// kiid — the exact input to ComputeHash (spec.md §3, invariant I2).
	HashableFields() map[string]any
}

// ComputeHash returns the md5-width hex digest of an entity's hashable
// content. Field order inside the map does not affect the digest: jsoniter
// (configured compatible with encoding/json) serializes map keys in sorted
// order, giving a deterministic byte stream across repeated calls and
// across the two replicas (spec.md §9, "deterministic serialization").
func ComputeHash(e Entity) string {
	return hashFields(e.HashableFields())
}

func hashBytes(b []byte) string {
	sum := md5.Sum(b) //nolint:gosec // see ComputeHash doc.
	return hex.EncodeToString(sum[:])
}

func hashFields(fields map[string]any) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	ordered := make([]any, 0, len(keys)*2)
	for _, k := range keys {
		ordered = append(ordered, k, fields[k])
	}

	b, err := jsonAPI.Marshal(ordered)
	if err != nil {
		panic("board: content is not JSON-serializable: " + err.Error())
	}

	return hashBytes(b)
}

// Rehash recomputes and stores an entity's content hash, returning it.
// The Updater calls this after applying every property in a changed
// entry (spec.md §4.8).
func Rehash(e Entity) string {
	h := ComputeHash(e)
	e.SetHash(h)
	return h
}
