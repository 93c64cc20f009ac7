package model

// Dataset is an ordered, read-only collection of records. The zero value is
// an empty dataset.
type Dataset struct {
	records []Record
}

// NewDataset copies recs into a new Dataset.
func NewDataset(recs []Record) Dataset {
	if len(recs) == 0 {
		return Dataset{}
	}
	out := make([]Record, len(recs))
	copy(out, recs)
	return Dataset{records: out}
}

// Len returns the number of records.
func (d Dataset) Len() int { return len(d.records) }

// IsEmpty reports whether the dataset has no records.
func (d Dataset) IsEmpty() bool { return len(d.records) == 0 }

// At returns the i-th record. It panics when i is out of range, like a slice.
func (d Dataset) At(i int) Record { return d.records[i] }

// Records returns a copy of the underlying records.
func (d Dataset) Records() []Record {
	out := make([]Record, len(d.records))
	copy(out, d.records)
	return out
}

// Each calls fn for every record in order until fn returns false.
func (d Dataset) Each(fn func(i int, r Record) bool) {
	for i, r := range d.records {
		if !fn(i, r) {
			return
		}
	}
}

// Equal reports whether both datasets hold the same records in the same order.
func (d Dataset) Equal(o Dataset) bool {
	if len(d.records) != len(o.records) {
		return false
	}
	for i := range d.records {
		if !d.records[i].Equal(o.records[i]) {
			return false
		}
	}
	return true
}
