package traits

import "sort"

// SizeClassRef points a trait record at the size class it was measured
// for. Range keeps the verbatim free-text range; Min/Max are nil when
// the range could not be parsed (compound forms like "3x5-8x12" stay
// text-only on purpose).
type SizeClassRef struct {
	ClassNo int
	Range   string
	Min     *float64
	Max     *float64
}

// Record is one element of a trait bundle: a trait, its value, and the
// optional size class the value belongs to.
type Record struct {
	TraitName  string
	Category   string
	Unit       string
	Value      Value
	Confidence *float64
	Source     string
	SizeClass  *SizeClassRef
}

// Bundle is the list of trait records known for one species. A species
// with five traits over five size classes yields up to 25 records.
type Bundle []Record

// ByCategory groups the bundle's records by category name.
func (b Bundle) ByCategory() map[string]Bundle {
	res := make(map[string]Bundle)
	for _, rec := range b {
		cat := rec.Category
		if cat == "" {
			cat = "other"
		}
		res[cat] = append(res[cat], rec)
	}
	return res
}

// Trait returns all records for one trait name, ordered by size class.
func (b Bundle) Trait(name string) Bundle {
	var res Bundle
	for _, rec := range b {
		if rec.TraitName == name {
			res = append(res, rec)
		}
	}
	sort.SliceStable(res, func(i, j int) bool {
		var ni, nj int
		if res[i].SizeClass != nil {
			ni = res[i].SizeClass.ClassNo
		}
		if res[j].SizeClass != nil {
			nj = res[j].SizeClass.ClassNo
		}
		return ni < nj
	})
	return res
}

// First returns the first record for a trait name, or a zero Record.
func (b Bundle) First(name string) (Record, bool) {
	for _, rec := range b {
		if rec.TraitName == name {
			return rec, true
		}
	}
	return Record{}, false
}
