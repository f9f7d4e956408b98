package onepass

// Search runs an anchored match against input starting at offset 0 and
// fills cache with capture positions, returning cache's slot slice on
// success or nil on failure.
//
//	dfa, _ := Build(compiled)
//	cache := NewCache(dfa.NumCaptures())
//	if slots := dfa.Search(line, cache); slots != nil {
//		whole := line[slots[0]:slots[1]]
//	}
func (d *DFA) Search(input []byte, cache *Cache) []int {
	cache.Reset()
	if len(cache.slots) >= 2 {
		cache.slots[0] = 0
	}

	state := d.startState
	for pos := 0; pos < len(input); {
		trans := d.step(state, input[pos])
		if trans.IsDead() {
			return nil
		}
		pos++
		trans.UpdateSlots(cache.slots, pos)

		next := trans.NextState()
		if trans.IsMatchWins() && d.isMatchState(next) {
			return d.finish(cache, pos)
		}
		state = next
	}

	if d.isMatchState(state) {
		return d.finish(cache, len(input))
	}
	return nil
}

// finish stamps the overall match's end position and returns the filled
// slot slice. Factored out because Search has two places a match can end:
// mid-input on a match-wins transition, or by running off the end of input.
func (d *DFA) finish(cache *Cache, end int) []int {
	if len(cache.slots) >= 2 {
		cache.slots[1] = end
	}
	return cache.slots
}

// SearchAt is Search anchored at input[start:] instead of input[0:],
// translating the returned slot positions back into input's coordinates.
func (d *DFA) SearchAt(input []byte, start int, cache *Cache) []int {
	if start < 0 || start > len(input) {
		return nil
	}
	slots := d.Search(input[start:], cache)
	if slots == nil {
		return nil
	}
	for i, s := range slots {
		if s >= 0 {
			slots[i] = s + start
		}
	}
	return slots
}
