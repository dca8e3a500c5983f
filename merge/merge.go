// Package merge implements the Merger (spec.md §4.7, component C7): it
// resolves the conflict between a Host Diff and a Peer Diff presented in
// the same sync cycle into one merged Diff.
package merge

import (
	"sort"

	"github.com/boardbridge/sync/board"
	"github.com/boardbridge/sync/diff"
)

// Merge resolves host and peer into one Diff per the rules of spec.md
// §4.7:
//   - drawings.added / footprints.added / vias.added: if both sides added
//     entities, the Peer's additions win and the Host's are scheduled for
//     removal (Open Question 4, SPEC_FULL.md §6, mirrors drawings for
//     footprints; vias follow the same rule); otherwise whichever side
//     added something is used unconditionally.
//   - footprints.changed: merged by kiid; on a same-property conflict the
//     Host's value wins, but distinct properties from both sides survive
//     (scenario S4).
//   - vias / drawings.changed and any other collection: the same by-kiid
//     merge, with Host winning same-property conflicts as the one
//     concretely specified precedent (footprints).
//   - removed: the union of both sides' kiids, deduplicated.
func Merge(host, peer *diff.Diff) *diff.Diff {
	host, peer = nonNilDiff(host), nonNilDiff(peer)

	return &diff.Diff{
		Drawings:        mergeCollection(host.Drawings, peer.Drawings, true),
		Footprints:      mergeCollection(host.Footprints, peer.Footprints, true),
		Vias:            mergeCollection(host.Vias, peer.Vias, true),
		SkippedEntities: append(append([]diff.SkipRecord{}, host.SkippedEntities...), peer.SkippedEntities...),
	}
}

func nonNilDiff(d *diff.Diff) *diff.Diff {
	if d == nil {
		return &diff.Diff{}
	}
	return d
}

// mergeCollection applies the added/changed/removed conflict rules to
// one collection's Host and Peer CollectionDiff, either of which may be
// nil. hostWinsChangedTies selects the winner for a same-property
// conflict in Changed (true everywhere per the doc comment on Merge).
func mergeCollection[T board.Entity](host, peer *diff.CollectionDiff[T], hostWinsChangedTies bool) *diff.CollectionDiff[T] {
	if host.IsEmpty() && peer.IsEmpty() {
		return nil
	}

	hostCD, peerCD := nilSliceSafe(host), nilSliceSafe(peer)
	added, scheduledRemoval := mergeAddedConflict(hostCD.Added, peerCD.Added)

	changed := mergeChangedByKiid(hostCD.Changed, peerCD.Changed, hostWinsChangedTies)

	removed := dedupeStrings(append(append(append([]string{}, hostCD.Removed...), peerCD.Removed...), scheduledRemoval...))

	out := &diff.CollectionDiff[T]{Added: added, Changed: changed, Removed: removed}
	if out.IsEmpty() {
		return nil
	}
	return out
}

func nilSliceSafe[T board.Entity](cd *diff.CollectionDiff[T]) *diff.CollectionDiff[T] {
	if cd == nil {
		return &diff.CollectionDiff[T]{}
	}
	return cd
}

// mergeAddedConflict implements the added rule for every collection:
// when both sides added entities, the Peer's win and the Host's kiids
// are returned as entries to schedule for removal.
func mergeAddedConflict[T board.Entity](hostAdded, peerAdded []T) (added []T, scheduledRemoval []string) {
	if len(hostAdded) > 0 && len(peerAdded) > 0 {
		for _, e := range hostAdded {
			scheduledRemoval = append(scheduledRemoval, e.Kiid())
		}
		return peerAdded, scheduledRemoval
	}
	if len(peerAdded) > 0 {
		return peerAdded, nil
	}
	return hostAdded, nil
}

// mergeChangedByKiid unions host's and peer's changed entries by kiid.
// Within one kiid, properties from both sides are unioned; on a
// same-property conflict the priority side (host, when hostWinsTies) is
// applied last and so wins (scenario S4: distinct properties from each
// side both survive).
func mergeChangedByKiid(host, peer []diff.ChangedEntry, hostWinsTies bool) []diff.ChangedEntry {
	index := make(map[string]int)
	var merged []diff.ChangedEntry

	apply := func(e diff.ChangedEntry, winsTies bool) {
		i, ok := index[e.KIID]
		if !ok {
			props := make(map[string]any, len(e.Props))
			for k, v := range e.Props {
				props[k] = v
			}
			index[e.KIID] = len(merged)
			merged = append(merged, diff.ChangedEntry{KIID: e.KIID, Props: props})
			return
		}
		for k, v := range e.Props {
			if _, exists := merged[i].Props[k]; !exists || winsTies {
				merged[i].Props[k] = v
			}
		}
	}

	if hostWinsTies {
		for _, e := range peer {
			apply(e, false)
		}
		for _, e := range host {
			apply(e, true)
		}
	} else {
		for _, e := range host {
			apply(e, false)
		}
		for _, e := range peer {
			apply(e, true)
		}
	}

	sort.Slice(merged, func(i, j int) bool { return merged[i].KIID < merged[j].KIID })
	return merged
}

func dedupeStrings(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
