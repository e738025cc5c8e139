package frame

import "stim/simd"

// record is the measurement result table: one row per measurement
// produced so far, one bit per shot. Rows are reserved up front in
// circuit order (matching circuit.Circuit.CountMeasurements()) so a
// lookback target can always resolve to a row that already exists.
// Grounded on MeasureRecord in
// original_source/src/stim/io/measure_record.h (reserve/lookback/xor
// shape), collapsed into a single preallocated simd.BitTable since
// this module always knows the total measurement count in advance.
type record struct {
	table  simd.BitTable
	cursor int
}

func newRecord(numMeasurements, batch int) record {
	return record{table: simd.NewBitTable(numMeasurements, batch)}
}

// reserve allocates the next row and returns its index.
func (r *record) reserve() int {
	i := r.cursor
	r.cursor++
	return i
}

// row returns the bit row at absolute index i.
func (r *record) row(i int) simd.BitVec {
	return r.table.Row(i)
}

// lookback returns the row k measurements before the current cursor
// (k=1 is the most recently reserved row), the convention rec[-k]
// targets use.
func (r *record) lookback(k int) simd.BitVec {
	return r.table.Row(r.cursor - k)
}
