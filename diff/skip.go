package diff

// SkipRecord names one entity a scan or update step silently dropped
// after an AdapterFailure (spec.md §7: "logged; the containing
// scan/update step skips that entity but continues"). SPEC_FULL.md §4
// adds this so an out-of-scope UI layer has something concrete to show
// the user, without changing the added/changed/removed shape spec.md
// §4.5 specifies.
type SkipRecord struct {
	Collection string
	KIID       string
	Reason     string
}
