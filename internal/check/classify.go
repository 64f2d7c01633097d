package check

// Miss is an object present in the source only.
type Miss struct {
	Key    Key
	SrcSQL string
}

// Diff is an object present on both sides with different DDL.
type Diff struct {
	Key    Key
	SrcSQL string
	DstSQL string
}

// Extra is an object present in the destination only.
type Extra struct {
	Key    Key
	DstSQL string
}

// Outcome holds the three disjoint result lists of one comparison.
type Outcome struct {
	Misses []Miss
	Diffs  []Diff
	Extras []Extra
}

// Clean reports whether source and destination matched completely.
func (o *Outcome) Clean() bool {
	return len(o.Misses) == 0 && len(o.Diffs) == 0 && len(o.Extras) == 0
}

// Append adds other's results after o's, keeping their order.
func (o *Outcome) Append(other *Outcome) {
	o.Misses = append(o.Misses, other.Misses...)
	o.Diffs = append(o.Diffs, other.Diffs...)
	o.Extras = append(o.Extras, other.Extras...)
}

// Classify compares src against dst by key. DDL strings are compared
// verbatim; both sides are expected to be normalized already.
func Classify(src, dst *Set) *Outcome {
	out := &Outcome{}
	for _, k := range src.keys {
		srcSQL := src.sqls[k]
		dstSQL, ok := dst.sqls[k]
		switch {
		case !ok:
			out.Misses = append(out.Misses, Miss{Key: k, SrcSQL: srcSQL})
		case srcSQL != dstSQL:
			out.Diffs = append(out.Diffs, Diff{Key: k, SrcSQL: srcSQL, DstSQL: dstSQL})
		}
	}
	for _, k := range dst.keys {
		if _, ok := src.sqls[k]; !ok {
			out.Extras = append(out.Extras, Extra{Key: k, DstSQL: dst.sqls[k]})
		}
	}
	return out
}
