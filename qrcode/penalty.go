package qrcode

import "github.com/halvarsson/qrencode/internal/bits"

// getPenaltyScore scores the symbol's current module colors under all four
// ISO/IEC 18004 masking penalty rules. Used by the automatic mask selector
// to find the pattern with the lowest score.
func (s *Symbol) getPenaltyScore() int32 {
	var result int32
	size := s.size

	// N1 + N3: same-color runs and finder-like patterns, by row.
	for y := int32(0); y < size; y++ {
		var runColor bool
		var runLen int32
		fp := newFinderPenalty(size)
		for x := int32(0); x < size; x++ {
			if s.module(x, y) == runColor {
				runLen++
				if runLen == 5 {
					result += penaltyN1
				} else if runLen > 5 {
					result++
				}
			} else {
				fp.addHistory(runLen)
				if !runColor {
					result += fp.countPatterns() * penaltyN3
				}
				runColor = s.module(x, y)
				runLen = 1
			}
		}
		result += fp.terminateAndCount(runColor, runLen) * penaltyN3
	}

	// N1 + N3: same-color runs and finder-like patterns, by column.
	for x := int32(0); x < size; x++ {
		var runColor bool
		var runLen int32
		fp := newFinderPenalty(size)
		for y := int32(0); y < size; y++ {
			if s.module(x, y) == runColor {
				runLen++
				if runLen == 5 {
					result += penaltyN1
				} else if runLen > 5 {
					result++
				}
			} else {
				fp.addHistory(runLen)
				if !runColor {
					result += fp.countPatterns() * penaltyN3
				}
				runColor = s.module(x, y)
				runLen = 1
			}
		}
		result += fp.terminateAndCount(runColor, runLen) * penaltyN3
	}

	// N2: 2x2 blocks of a single color.
	for y := int32(0); y < size-1; y++ {
		for x := int32(0); x < size-1; x++ {
			c := s.module(x, y)
			if c == s.module(x+1, y) && c == s.module(x, y+1) && c == s.module(x+1, y+1) {
				result += penaltyN2
			}
		}
	}

	// N4: overall dark/light balance.
	var dark int32
	for _, mod := range s.modules {
		dark += bits.BoolToInt32(mod)
	}
	total := size * size
	k := (bits.AbsInt32(dark*20-total*10)+total-1)/total - 1
	result += k * penaltyN4

	return result
}

// finderPenalty tracks the last 7 run lengths of one row or column, used to
// count occurrences of the 1:1:3:1:1 finder-like pattern for rule N3.
type finderPenalty struct {
	size    int32
	history [7]int32
}

func newFinderPenalty(size int32) *finderPenalty {
	return &finderPenalty{size: size}
}

// addHistory pushes a new run length to the front, dropping the oldest.
func (p *finderPenalty) addHistory(runLen int32) {
	if p.history[0] == 0 {
		runLen += p.size // count the light border before the first run
	}
	for i := len(p.history) - 2; i >= 0; i-- {
		p.history[i+1] = p.history[i]
	}
	p.history[0] = runLen
}

// countPatterns returns how many of the two possible finder-like patterns
// (light border on one side or the other) match the current history. Must
// be called immediately after a light run's length is pushed.
func (p *finderPenalty) countPatterns() int32 {
	n := p.history[1]
	if n > p.size*3 {
		panic("finder penalty run length exceeds three symbol widths")
	}
	core := n > 0 && p.history[2] == n && p.history[3] == n*3 && p.history[4] == n && p.history[5] == n
	return bits.BoolToInt32(core && p.history[0] >= n*4 && p.history[6] >= n) +
		bits.BoolToInt32(core && p.history[6] >= n*4 && p.history[0] >= n)
}

// terminateAndCount must be called once at the end of a row or column, after
// its final run. It accounts for the light border past the last run and
// returns the resulting pattern count.
func (p *finderPenalty) terminateAndCount(runColor bool, runLen int32) int32 {
	if runColor {
		p.addHistory(runLen)
		runLen = 0
	}
	runLen += p.size
	p.addHistory(runLen)
	return p.countPatterns()
}
