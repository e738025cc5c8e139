package dem

import "fmt"

// Target is a 64-bit tagged value referenced by DEM instructions: a
// relative detector id, a logical observable id, or the separator
// sentinel marking sub-component boundaries within a single error.
// Grounded on DemTarget in
// original_source/src/stim/dem/detector_error_model.h; the header
// documents the accessor surface (observable_id, relative_detector_id,
// separator, is_observable_id, is_separator, shift_if_detector_id) but
// not the bit layout, so the encoding below (top bit tags observable
// ids, all-ones is the separator) is this package's own choice.
type Target uint64

const separatorValue = ^uint64(0)
const observableBit = uint64(1) << 63

// Separator returns the distinguished sentinel used to split a single
// error instruction's targets into decomposable sub-components.
func Separator() Target { return Target(separatorValue) }

// RelativeDetectorID wraps a detector id (relative to the current
// shift_detectors offset) as a target.
func RelativeDetectorID(id uint64) Target { return Target(id) }

// ObservableID wraps a logical observable index as a target.
func ObservableID(id uint64) Target { return Target(id | observableBit) }

// IsSeparator reports whether t is the sub-component separator.
func (t Target) IsSeparator() bool { return uint64(t) == separatorValue }

// IsObservableID reports whether t names a logical observable.
func (t Target) IsObservableID() bool {
	return !t.IsSeparator() && uint64(t)&observableBit != 0
}

// IsRelativeDetectorID reports whether t names a detector.
func (t Target) IsRelativeDetectorID() bool {
	return !t.IsSeparator() && uint64(t)&observableBit == 0
}

// Value returns the numeric id carried by t (meaningless for a
// separator).
func (t Target) Value() uint64 { return uint64(t) &^ observableBit }

// ShiftDetectorID adds offset to t's id if t is a detector id, leaving
// observable ids and the separator untouched. Mirrors
// DemTarget::shift_if_detector_id, used when folding a repeat block's
// detector ids across iterations.
func (t Target) ShiftDetectorID(offset int64) Target {
	if !t.IsRelativeDetectorID() {
		return t
	}
	return Target(uint64(int64(t) + offset))
}

// String renders t the way the DEM text format does: D<k>, L<k>, or
// "^" for the separator.
func (t Target) String() string {
	switch {
	case t.IsSeparator():
		return "^"
	case t.IsObservableID():
		return fmt.Sprintf("L%d", t.Value())
	default:
		return fmt.Sprintf("D%d", t.Value())
	}
}
