package nfa

// SearchMode selects how many capture slots a SlotTable-backed search
// tracks. Tracking fewer slots lets the epsilon closure skip capture
// bookkeeping entirely when callers only need a boolean or a match span.
type SearchMode int

const (
	// SearchModeIsMatch tracks no slots; only whether a match exists.
	SearchModeIsMatch SearchMode = iota

	// SearchModeFind tracks the two slots for the overall match span.
	SearchModeFind

	// SearchModeCaptures tracks every slot, including named sub-groups.
	SearchModeCaptures
)

// SlotsNeeded returns how many of totalSlots this mode should track.
func (m SearchMode) SlotsNeeded(totalSlots int) int {
	switch m {
	case SearchModeFind:
		if totalSlots < 2 {
			return 0
		}
		return 2
	case SearchModeCaptures:
		return totalSlots
	default:
		return 0
	}
}

// searchThread is the lightweight thread used by the SlotTable search path.
// It carries no capture data of its own: the captures for a thread sitting
// at state live in table.ForState(state), which is safe because a
// generation's visited set admits at most one thread per state.
type searchThread struct {
	state    StateID
	startPos int
	priority uint32
}

// SearchWithSlotTable runs an unanchored search over haystack, tracking the
// number of capture slots mode calls for, and returns the match span.
func (p *PikeVM) SearchWithSlotTable(haystack []byte, mode SearchMode) (int, int, bool) {
	return p.SearchWithSlotTableAt(haystack, 0, mode)
}

// SearchWithSlotTableAt is like SearchWithSlotTable but starts scanning for
// an unanchored match at byte offset at instead of 0.
func (p *PikeVM) SearchWithSlotTableAt(haystack []byte, at int, mode SearchMode) (int, int, bool) {
	if at < 0 || at > len(haystack) {
		return -1, -1, false
	}
	table := p.newSlotTableForMode(mode)
	start, end, _, matched := p.runSlotTable(haystack, at, table)
	if !matched {
		return -1, -1, false
	}
	return start, end, true
}

// SearchWithSlotTableCaptures runs an unanchored search tracking every
// capture slot and returns the full group breakdown, or nil on no match.
func (p *PikeVM) SearchWithSlotTableCaptures(haystack []byte) *MatchWithCaptures {
	table := p.newSlotTableForMode(SearchModeCaptures)
	start, end, slots, matched := p.runSlotTable(haystack, 0, table)
	if !matched {
		return nil
	}
	return &MatchWithCaptures{
		Start:    start,
		End:      end,
		Captures: p.buildCapturesResult(slots, start, end),
	}
}

func (p *PikeVM) newSlotTableForMode(mode SearchMode) *SlotTable {
	totalSlots := p.nfa.CaptureCount() * 2
	stride := totalSlots
	if stride < 2 {
		stride = 2
	}
	table := NewSlotTable(p.nfa.States(), stride)
	table.SetActiveSlots(mode.SlotsNeeded(totalSlots))
	return table
}

// runSlotTable is the SlotTable-backed counterpart of searchUnanchoredWithCaptures.
// It follows the same leftmost/longest-for-that-start heuristic as the legacy
// cowCaptures path, restarting a thread at every position until a match is
// found so unanchored search stays O(n) for acceptable patterns.
func (p *PikeVM) runSlotTable(haystack []byte, at int, table *SlotTable) (start, end int, slots []int, matched bool) {
	stQueue := p.stQueue[:0]
	stNext := p.stNext[:0]
	p.visited.Clear()

	bestStart, bestEnd := -1, -1
	var bestSlots []int
	var priority uint32

	for pos := at; pos <= len(haystack); pos++ {
		if bestStart == -1 {
			p.visited.Clear()
			table.ResetState(p.nfa.Start())
			stQueue = p.addSearchThread(stQueue, table, haystack, p.nfa.Start(), pos, pos, priority)
			priority++
		}

		for _, t := range stQueue {
			if p.nfa.IsMatch(t.state) {
				if bestStart == -1 || t.startPos < bestStart ||
					(t.startPos == bestStart && pos > bestEnd) {
					bestStart = t.startPos
					bestEnd = pos
					bestSlots = append(bestSlots[:0], table.ForState(t.state)...)
				}
			}
		}

		if pos >= len(haystack) {
			break
		}

		if bestStart != -1 {
			hasLeftmostCandidate := false
			for _, t := range stQueue {
				if t.startPos <= bestStart {
					hasLeftmostCandidate = true
					break
				}
			}
			if !hasLeftmostCandidate {
				break
			}
		}

		if len(stQueue) == 0 {
			continue
		}

		b := haystack[pos]
		p.visited.Clear()
		for _, t := range stQueue {
			stNext = p.stepSearchThread(stNext, table, haystack, t, b, pos+1)
		}

		stQueue, stNext = stNext, stQueue[:0]
	}

	p.stQueue, p.stNext = stQueue[:0], stNext[:0]

	if bestStart == -1 {
		return -1, -1, nil, false
	}
	return bestStart, bestEnd, bestSlots, true
}

// addSearchThread follows epsilon transitions from st, copying slot rows
// forward, and appends any reachable consuming or match state to queue.
func (p *PikeVM) addSearchThread(queue []searchThread, table *SlotTable, haystack []byte, st StateID, startPos, pos int, priority uint32) []searchThread {
	if p.visited.Contains(uint32(st)) {
		return queue
	}
	p.visited.Insert(uint32(st))

	state := p.nfa.State(st)
	if state == nil {
		return queue
	}

	switch state.Kind() {
	case StateMatch, StateByteRange, StateSparse, StateRuneAny, StateRuneAnyNotNL:
		return append(queue, searchThread{state: st, startPos: startPos, priority: priority})

	case StateEpsilon:
		if next := state.Epsilon(); next != InvalidState {
			table.CopySlots(next, st)
			queue = p.addSearchThread(queue, table, haystack, next, startPos, pos, priority)
		}

	case StateSplit:
		left, right := state.Split()
		if left != InvalidState {
			table.CopySlots(left, st)
			queue = p.addSearchThread(queue, table, haystack, left, startPos, pos, priority)
		}
		if right != InvalidState {
			table.CopySlots(right, st)
			queue = p.addSearchThread(queue, table, haystack, right, startPos, pos, priority)
		}

	case StateCapture:
		groupIndex, isStart, next := state.Capture()
		if next != InvalidState {
			table.CopySlots(next, st)
			setCaptureSlot(table, next, groupIndex, isStart, pos)
			queue = p.addSearchThread(queue, table, haystack, next, startPos, pos, priority)
		}

	case StateLook:
		look, next := state.Look()
		if next != InvalidState && checkLookAssertion(look, haystack, pos) {
			table.CopySlots(next, st)
			queue = p.addSearchThread(queue, table, haystack, next, startPos, pos, priority)
		}

	case StateFail:
	}

	return queue
}

// stepSearchThread consumes byte b from thread t and closes epsilons for
// whatever state it reaches, appending newly reachable threads to next.
func (p *PikeVM) stepSearchThread(next []searchThread, table *SlotTable, haystack []byte, t searchThread, b byte, pos int) []searchThread {
	state := p.nfa.State(t.state)
	if state == nil {
		return next
	}

	switch state.Kind() {
	case StateByteRange:
		lo, hi, target := state.ByteRange()
		if b >= lo && b <= hi {
			table.CopySlots(target, t.state)
			next = p.addSearchThreadToNext(next, table, haystack, target, t.startPos, pos, t.priority)
		}

	case StateSparse:
		for _, tr := range state.Transitions() {
			if b >= tr.Lo && b <= tr.Hi {
				table.CopySlots(tr.Next, t.state)
				next = p.addSearchThreadToNext(next, table, haystack, tr.Next, t.startPos, pos, t.priority)
			}
		}

	case StateRuneAny:
		target := state.RuneAny()
		table.CopySlots(target, t.state)
		next = p.addSearchThreadToNext(next, table, haystack, target, t.startPos, pos, t.priority)

	case StateRuneAnyNotNL:
		if b != '\n' {
			target := state.RuneAnyNotNL()
			table.CopySlots(target, t.state)
			next = p.addSearchThreadToNext(next, table, haystack, target, t.startPos, pos, t.priority)
		}
	}

	return next
}

// addSearchThreadToNext is addSearchThread's counterpart for the next
// generation's queue; it shares the visited set cleared by the caller
// between the two passes of a single step.
func (p *PikeVM) addSearchThreadToNext(next []searchThread, table *SlotTable, haystack []byte, st StateID, startPos, pos int, priority uint32) []searchThread {
	if p.visited.Contains(uint32(st)) {
		return next
	}
	p.visited.Insert(uint32(st))

	state := p.nfa.State(st)
	if state == nil {
		return next
	}

	switch state.Kind() {
	case StateEpsilon:
		if target := state.Epsilon(); target != InvalidState {
			table.CopySlots(target, st)
			next = p.addSearchThreadToNext(next, table, haystack, target, startPos, pos, priority)
		}
		return next

	case StateSplit:
		left, right := state.Split()
		if left != InvalidState {
			table.CopySlots(left, st)
			next = p.addSearchThreadToNext(next, table, haystack, left, startPos, pos, priority)
		}
		if right != InvalidState {
			table.CopySlots(right, st)
			next = p.addSearchThreadToNext(next, table, haystack, right, startPos, pos, priority)
		}
		return next

	case StateCapture:
		groupIndex, isStart, target := state.Capture()
		if target != InvalidState {
			table.CopySlots(target, st)
			setCaptureSlot(table, target, groupIndex, isStart, pos)
			next = p.addSearchThreadToNext(next, table, haystack, target, startPos, pos, priority)
		}
		return next

	case StateLook:
		look, target := state.Look()
		if target != InvalidState && checkLookAssertion(look, haystack, pos) {
			table.CopySlots(target, st)
			next = p.addSearchThreadToNext(next, table, haystack, target, startPos, pos, priority)
		}
		return next
	}

	return append(next, searchThread{state: st, startPos: startPos, priority: priority})
}

func setCaptureSlot(table *SlotTable, sid StateID, groupIndex uint32, isStart bool, pos int) {
	slotIndex := int(groupIndex) * 2
	if !isStart {
		slotIndex++
	}
	table.SetSlot(sid, slotIndex, pos)
}
