package lzdict

import "testing"

func literalEvent(start, length int) Event { return Literal(start, length) }
func matchEvent(distance uint32, length, lastIndex int) Event {
	return Match(distance, length, lastIndex)
}

func assertEvents(t *testing.T, input string, want []Event) {
	t.Helper()
	got := Find([]byte(input))
	if len(got) != len(want) {
		t.Fatalf("%q: got %d events %v, want %d %v", input, len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("%q: event %d = %+v, want %+v\nfull got: %+v", input, i, got[i], want[i], got)
		}
	}
}

func TestFindLiteralOnly(t *testing.T) {
	assertEvents(t, "abc", []Event{
		literalEvent(0, 3),
	})
}

func TestFindRepeatedByteRun(t *testing.T) {
	assertEvents(t, "abbbbc", []Event{
		literalEvent(0, 2),
		matchEvent(1, 3, -1),
		literalEvent(5, 1),
	})
}

func TestFindShortOverlappingMatch(t *testing.T) {
	assertEvents(t, "abcbc", []Event{
		literalEvent(0, 3),
		matchEvent(2, 2, -1),
	})
}

func TestFindChainedMatches(t *testing.T) {
	assertEvents(t, "0bcd1cd2bc3bcd", []Event{
		literalEvent(0, 5),
		matchEvent(3, 2, -1),
		literalEvent(7, 1),
		matchEvent(7, 2, -1),
		literalEvent(10, 1),
		matchEvent(10, 3, -1),
	})
}

func TestFindRepeatedWord(t *testing.T) {
	assertEvents(t, "abc abcabc", []Event{
		literalEvent(0, 4),
		matchEvent(4, 3, -1),
		matchEvent(3, 3, -1),
	})
}

func TestFindPrefersRingSlotZero(t *testing.T) {
	assertEvents(t, "dexabc abcdeyabc", []Event{
		literalEvent(0, 7),
		matchEvent(4, 3, -1),
		matchEvent(10, 2, -1),
		literalEvent(12, 1),
		matchEvent(10, 3, 0),
	})
}

func TestFindThreeIdenticalBytes(t *testing.T) {
	assertEvents(t, "aaa", []Event{
		literalEvent(0, 1),
		matchEvent(1, 2, -1),
	})
}

func TestFindEmptyInput(t *testing.T) {
	if got := Find(nil); got != nil {
		t.Fatalf("Find(nil) = %v, want nil", got)
	}
}

func TestFindRingUniqueness(t *testing.T) {
	got := Find([]byte("abcabcabcxyzxyzabcxyz abcabcxyz abcxyz"))
	var ring [4]uint32
	for _, ev := range got {
		if ev.Kind != EventMatch {
			continue
		}
		applyRing(&ring, ev.Distance)
		seen := map[uint32]int{}
		for _, d := range ring {
			if d == 0 {
				continue
			}
			seen[d]++
			if seen[d] > 1 {
				t.Fatalf("ring has duplicate non-zero entry %d: %v", d, ring)
			}
		}
	}
}
