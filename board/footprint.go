package board

// Layer is the board side a footprint is placed on.
type Layer string

const (
	LayerTop Layer = "Top"
	LayerBot Layer = "Bot"
)

// Pad is a through-hole pad belonging to a footprint. Its position is a
// delta from the footprint's own pos (spec.md §3).
type Pad struct {
	KIID     string `json:"kiid"`
	Hash     string `json:"hash"`
	PosDelta Point  `json:"pos_delta"`
	// HoleSize is [major, minor] axis sizes of the plated hole.
	HoleSize [2]int `json:"hole_size"`
}

func (p *Pad) Kiid() string     { return p.KIID }
func (p *Pad) SetKiid(k string) { p.KIID = k }
func (p *Pad) GetID() int       { return 0 }
func (p *Pad) SetID(int)        {}
func (p *Pad) GetHash() string  { return p.Hash }
func (p *Pad) SetHash(h string) { p.Hash = h }

// HashableFields excludes kiid/hash, same contract as Entity.
func (p *Pad) HashableFields() map[string]any {
	return map[string]any{
		"pos_delta": p.PosDelta,
		"hole_size": p.HoleSize,
	}
}

// Model is a 3D step-model placement attached to a footprint.
type Model struct {
	ModelID      string  `json:"model_id"`
	Filename     string  `json:"filename"`
	Offset       Point3  `json:"offset"`
	Scale        Point3  `json:"scale"`
	Rot          Point3  `json:"rot"`
	AbsolutePath *string `json:"absolute_path,omitempty"`
}

// Footprint is a placed component: reference designator, position,
// rotation, layer, optional through-hole pads, and optional 3D models
// (spec.md §3).
type Footprint struct {
	EntityMeta
	Ref       string  `json:"ref"`
	Pos       Point   `json:"pos"`
	Rot       float64 `json:"rot"`
	Layer     Layer   `json:"layer"`
	PadsPTH   []*Pad  `json:"pads_pth,omitempty"`
	Models3D  []*Model `json:"3d_models,omitempty"`
}

func (f *Footprint) Kiid() string     { return f.KIID }
func (f *Footprint) SetKiid(k string) { f.KIID = k }
func (f *Footprint) GetID() int       { return f.ID }
func (f *Footprint) SetID(id int)     { f.ID = id }
func (f *Footprint) GetHash() string  { return f.Hash }
func (f *Footprint) SetHash(h string) { f.Hash = h }

// HashableFields excludes kiid/ID/hash per invariant I2. Rotation is
// normalized to (-180, 180] before hashing (invariant I4) so a Host value
// of 180 and a Peer value of -180 never produce different hashes.
func (f *Footprint) HashableFields() map[string]any {
	fields := map[string]any{
		"ref":   f.Ref,
		"pos":   f.Pos,
		"rot":   NormalizeRotation(f.Rot),
		"layer": string(f.Layer),
	}
	if len(f.PadsPTH) > 0 {
		fields["pads_pth"] = f.PadsPTH
	}
	if len(f.Models3D) > 0 {
		fields["3d_models"] = f.Models3D
	}
	return fields
}

// SingleModel returns the footprint's one 3D model and true if it has
// exactly one, per the footprint-moved-via-model-offset rule (spec.md
// §4.5). Any other count returns (nil, false).
func (f *Footprint) SingleModel() (*Model, bool) {
	if len(f.Models3D) != 1 {
		return nil, false
	}
	return f.Models3D[0], true
}

// SinglePTHPad returns the footprint's one through-hole pad and true if
// it has exactly one, per the footprint-moved-via-pad-hole rule.
func (f *Footprint) SinglePTHPad() (*Pad, bool) {
	if len(f.PadsPTH) != 1 {
		return nil, false
	}
	return f.PadsPTH[0], true
}
