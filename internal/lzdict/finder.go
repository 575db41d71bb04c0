package lzdict

import "math/bits"

// Find parses buf once and returns an ordered sequence of Literal and
// Match events whose total encoded bit cost, as scored against the
// packet encoding's bit widths, is near-minimal.
func Find(buf []byte) []Event {
	n := len(buf)
	if n == 0 {
		return nil
	}

	m := newOffsetMap(n)
	var events []Event
	var ring [4]uint32
	literalStart := -1
	pos := 0

	flushLiteral := func(end int) {
		if literalStart >= 0 && end > literalStart {
			events = append(events, Literal(literalStart, end-literalStart))
		}
		literalStart = -1
	}

	takeLiteral := func() {
		insertPair(buf, pos, m)
		if literalStart < 0 {
			literalStart = pos
		}
		pos++
	}

	for pos < n {
		if pos+1 >= n {
			if literalStart < 0 {
				literalStart = pos
			}
			pos++
			continue
		}

		best, ok := findBest(buf, pos, m, &ring)
		if !ok {
			takeLiteral()
			continue
		}

		// The peek uses the ring as it stands now, not as it would be
		// after this match: a LONGREP/SHORTREP at pos+1 can only reuse
		// a distance that was already in the ring before this
		// decision, never the one this match would just be
		// introducing.
		if pos+1 < n-1 {
			if next, ok2 := findBestRing(buf, pos+1, &ring); ok2 && next.score > best.score {
				takeLiteral()
				continue
			}
		}

		flushLiteral(pos)
		events = append(events, Match(best.distance, best.length, best.lastIndex))
		applyRing(&ring, best.distance)

		for i := 0; i < best.length; i++ {
			if pos+1 < n {
				insertPair(buf, pos, m)
			}
			pos++
		}
	}

	flushLiteral(pos)
	return events
}

// insertPair records the byte pair at pos, applying the tombstone
// rule: if it is identical to the pair immediately before it (three
// equal bytes in a row), skip the insertion since the earlier entry
// already anchors the run.
func insertPair(buf []byte, pos int, m *offsetMap) {
	if pos+1 >= len(buf) {
		return
	}
	if pos > 0 && pos+1 < len(buf) && pairIndex(buf, pos) == pairIndex(buf, pos-1) {
		return
	}
	m.insert(buf, pos)
}

// applyRing moves distance to slot 0, collapsing its previous slot if
// present and otherwise evicting the oldest entry.
func applyRing(ring *[4]uint32, distance uint32) {
	idx := 3
	for i, d := range ring {
		if d == distance {
			idx = i
			break
		}
	}
	for i := idx; i > 0; i-- {
		ring[i] = ring[i-1]
	}
	ring[0] = distance
}

// occurrence is a scored match candidate, fresh or from the last-four
// ring, considered at one position.
type occurrence struct {
	distance  uint32
	length    int
	lastIndex int // -1: fresh; 0..3: ring slot
	score     int
	followed  bool
}

func findBest(buf []byte, pos int, m *offsetMap, ring *[4]uint32) (occurrence, bool) {
	n := len(buf)
	var best occurrence
	haveBest := false

	consider := func(o occurrence) {
		if !haveBest || better(o, best) {
			best = o
			haveBest = true
		}
	}

	m.forEachCandidate(buf, pos, func(c candidate) {
		length := c.length
		if pos+length > n {
			length = n - pos
		}
		if length < 2 {
			return
		}
		distance := uint32(pos - c.oldPos)
		if distance == 0 {
			return
		}
		if length == 2 && distance > 1<<6 {
			return
		}
		if length == 3 && distance > 1<<11 {
			return
		}
		if length == 4 && distance > 1<<13 {
			return
		}
		cost := 2 + lengthBits(length) + distanceBits(distance)
		consider(occurrence{
			distance:  distance,
			length:    length,
			lastIndex: -1,
			score:     literalCost(length) - cost,
			followed:  followedByMatch(buf, pos, length, distance),
		})
	})

	if ringBest, ok := findBestRing(buf, pos, ring); ok {
		consider(ringBest)
	}

	return best, haveBest
}

// findBestRing scores only the last-four-ring candidates at pos: the
// LONGREP/SHORTREP alternatives, as opposed to a fresh MATCH. Used on
// its own for the lazy-match peek, since a LONGREP/SHORTREP at pos+1
// can only reuse a distance already present in ring.
func findBestRing(buf []byte, pos int, ring *[4]uint32) (occurrence, bool) {
	var best occurrence
	haveBest := false

	for i, d := range ring {
		if d == 0 || uint32(pos) < d {
			continue
		}
		length := extendMatch(buf, pos, int(d))
		if length == 0 {
			continue
		}
		if length == 1 && i != 0 {
			continue
		}

		var cost int
		switch {
		case length == 1:
			cost = 4 // SHORTREP
		case i <= 1:
			cost = 4 + lengthBits(length) // LONGREP0/LONGREP1
		default:
			cost = 5 + lengthBits(length) // LONGREP2/LONGREP3
		}

		o := occurrence{
			distance:  d,
			length:    length,
			lastIndex: i,
			score:     literalCost(length) - cost,
			followed:  followedByMatch(buf, pos, length, d),
		}
		if !haveBest || better(o, best) {
			best = o
			haveBest = true
		}
	}

	return best, haveBest
}

// better reports whether a should be preferred over the current best
// b, applying the tie-break order: score, then whether the match is
// immediately followed by a byte that would extend it (making a
// subsequent SHORTREP viable), then shorter distance, then smaller
// ring slot.
func better(a, b occurrence) bool {
	if a.score != b.score {
		return a.score > b.score
	}
	if a.followed != b.followed {
		return a.followed
	}
	if a.distance != b.distance {
		return a.distance < b.distance
	}
	if a.lastIndex >= 0 && b.lastIndex >= 0 && a.lastIndex != b.lastIndex {
		return a.lastIndex < b.lastIndex
	}
	return false
}

func extendMatch(buf []byte, pos, distance int) int {
	n := len(buf)
	length := 0
	for length < maxMatchLength && pos+length < n && buf[pos-distance+length] == buf[pos+length] {
		length++
	}
	return length
}

func followedByMatch(buf []byte, pos, length int, distance uint32) bool {
	end := pos + length
	if end >= len(buf) {
		return false
	}
	src := end - int(distance)
	if src < 0 {
		return false
	}
	return buf[end] == buf[src]
}

func literalCost(length int) int {
	return 9 * length
}

func lengthBits(length int) int {
	switch {
	case length <= 9:
		return 4
	case length <= 17:
		return 5
	default:
		return 10
	}
}

func distanceBits(distance uint32) int {
	if distance < 2 {
		return 6
	}
	return 36 - bits.LeadingZeros32(distance)
}
