package analyze

import "stim/dem"

// scope accumulates one contiguous stretch of the walk (the whole
// circuit, or a single representative iteration of a folded loop
// body) into a finished *dem.Model. Detector ids are assigned locally
// to the scope (0-based, counting the detectors this scope itself
// produces) rather than globally, so a folded body's ids are relative
// to its own start the same way a real repeat block's body is -- the
// surrounding repeat instruction's implicit per-iteration id advance
// (a trailing shift_detectors) is what makes repeating the same body
// text refer to different detectors each time.
//
// Because the walk moves backward, items are appended in
// last-produced-first order and the local detector counter also
// climbs from 0 upward as we walk backward (the count of detectors
// processed so far in this scope). finish reverses both: it replays
// items in true forward order, and remaps each detector id k (counted
// from the end) to total-1-k (counted from the start).
type scope struct {
	base       uint64 // a.tr.NumDetectorsInPast when this scope was entered
	items      []pendingItem
	localCount uint64 // number of DETECTOR instructions seen so far in this scope
}

type pendingKind byte

const (
	pendError pendingKind = iota
	pendShiftDetectors
	pendDetector
	pendObservable
	pendRepeat
)

type pendingItem struct {
	kind    pendingKind
	p       float64
	targets []dem.Target
	coords  []float64
	shift   uint64
	repeat  uint64
	body    *dem.Model
}

func newScope(base uint64) *scope {
	return &scope{base: base}
}

func (sc *scope) appendError(p float64, targets []dem.Target) {
	if p <= 0 || len(targets) == 0 {
		return
	}
	sc.items = append(sc.items, pendingItem{kind: pendError, p: p, targets: targets})
}

func (sc *scope) appendDetector(coords []float64, localID uint64) {
	sc.items = append(sc.items, pendingItem{kind: pendDetector, coords: coords, targets: []dem.Target{dem.RelativeDetectorID(localID)}})
	sc.localCount++
}

func (sc *scope) appendObservable(id uint64) {
	sc.items = append(sc.items, pendingItem{kind: pendObservable, targets: []dem.Target{dem.ObservableID(id)}})
}

func (sc *scope) appendShiftDetectors(coords []float64, shift uint64) {
	sc.items = append(sc.items, pendingItem{kind: pendShiftDetectors, coords: coords, shift: shift})
}

func (sc *scope) appendRepeat(count uint64, body *dem.Model) {
	sc.items = append(sc.items, pendingItem{kind: pendRepeat, repeat: count, body: body})
}

// finish replays the scope's items in forward order into a fresh
// model, remapping every detector-id target from "counted from the
// end" to "counted from the start of this scope".
func (sc *scope) finish() *dem.Model {
	total := sc.localCount
	m := dem.NewModel()
	for i := len(sc.items) - 1; i >= 0; i-- {
		it := sc.items[i]
		switch it.kind {
		case pendError:
			m.AppendError(it.p, remapTargets(it.targets, total))
		case pendDetector:
			m.AppendDetector(it.coords, remapTargets(it.targets, total)[0])
		case pendObservable:
			m.AppendLogicalObservable(it.targets[0])
		case pendShiftDetectors:
			m.AppendShiftDetectors(it.coords, it.shift)
		case pendRepeat:
			m.AppendRepeatBlock(it.repeat, it.body)
		}
	}
	return m
}

func remapTargets(ts []dem.Target, total uint64) []dem.Target {
	out := make([]dem.Target, len(ts))
	for i, t := range ts {
		if t.IsRelativeDetectorID() {
			out[i] = dem.RelativeDetectorID(total - 1 - t.Value())
		} else {
			out[i] = t
		}
	}
	return out
}

// nextLocalDetectorID assigns the next detector id local to sc (0 for
// the first detector this scope sees, walking backward, which is the
// scope's last detector in true time) and advances the tracker's
// absolute counter.
func (a *analyzer) nextLocalDetectorID(sc *scope) uint64 {
	id := a.tr.NumDetectorsInPast - sc.base
	a.tr.NumDetectorsInPast++
	return id
}
