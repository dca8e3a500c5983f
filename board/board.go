package board

// Board is the canonical in-memory representation of one PCB design:
// general metadata plus the three diffed collections (spec.md §3).
type Board struct {
	General    General
	Drawings   *Collection[*Drawing]
	Footprints *Collection[*Footprint]
	Vias       *Collection[*Via]
}

// NewBoard returns an empty Board ready to be populated by a scan.
func NewBoard() *Board {
	return &Board{
		Drawings:   NewCollection[*Drawing](),
		Footprints: NewCollection[*Footprint](),
		Vias:       NewCollection[*Via](),
	}
}

// wireBoard is the flat shape Board is marshaled to/from on the wire
// (spec.md §3: "a mapping with four top-level keys").
type wireBoard struct {
	General    General      `json:"general"`
	Drawings   []*Drawing   `json:"drawings"`
	Footprints []*Footprint `json:"footprints"`
	Vias       []*Via       `json:"vias"`
}

// MarshalJSON flattens the Board into the four-key wire shape, with each
// collection's entities ordered by kiid for determinism.
func (b *Board) MarshalJSON() ([]byte, error) {
	return jsonAPI.Marshal(wireBoard{
		General:    b.General,
		Drawings:   b.Drawings.All(),
		Footprints: b.Footprints.All(),
		Vias:       b.Vias.All(),
	})
}

// UnmarshalJSON rebuilds a Board's collections from the four-key wire
// shape.
func (b *Board) UnmarshalJSON(data []byte) error {
	var w wireBoard
	if err := jsonAPI.Unmarshal(data, &w); err != nil {
		return err
	}

	b.General = w.General
	b.Drawings = NewCollection[*Drawing]()
	for _, d := range w.Drawings {
		b.Drawings.Upsert(d)
	}
	b.Footprints = NewCollection[*Footprint]()
	for _, f := range w.Footprints {
		b.Footprints.Upsert(f)
	}
	b.Vias = NewCollection[*Via]()
	for _, v := range w.Vias {
		b.Vias.Upsert(v)
	}
	return nil
}

// HashBoard returns a deterministic hex digest of the whole board,
// used by the post-sync consistency check (spec.md §4.4, property P6).
// Determinism across the two replicas relies on Collection.All()'s
// kiid-sorted iteration and jsoniter's sorted-map-key encoding.
func (b *Board) HashBoard() string {
	encoded, err := jsonAPI.Marshal(b)
	if err != nil {
		panic("board: board is not JSON-serializable: " + err.Error())
	}
	return hashBytes(encoded)
}
