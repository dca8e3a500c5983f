package board

// Via is a plated through-hole connecting copper layers (spec.md §3).
// The core tracks its placement only; electrical connectivity is out of
// scope (spec.md §1).
type Via struct {
	EntityMeta
	Center Point `json:"center"`
	Radius int   `json:"radius"`
}

func (v *Via) Kiid() string     { return v.KIID }
func (v *Via) SetKiid(k string) { v.KIID = k }
func (v *Via) GetID() int       { return v.ID }
func (v *Via) SetID(id int)     { v.ID = id }
func (v *Via) GetHash() string  { return v.Hash }
func (v *Via) SetHash(h string) { v.Hash = h }

// HashableFields excludes kiid/ID/hash per invariant I2.
func (v *Via) HashableFields() map[string]any {
	return map[string]any{
		"center": v.Center,
		"radius": v.Radius,
	}
}
