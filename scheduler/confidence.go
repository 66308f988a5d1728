package scheduler

import (
	"sort"
	"strconv"
	"strings"

	"github.com/andrewpaige1/lexideck-api/apperr"
)

// Confidence is the learner's self-assessed recall strength, 0 through 5.
type Confidence int

const (
	MinConfidence Confidence = 0
	MaxConfidence Confidence = 5
)

// Buttons offered at the end of a card in a study session.
const (
	Again Confidence = 1
	Hard  Confidence = 3
	Easy  Confidence = 5
)

func (c Confidence) IsValid() bool {
	return c >= MinConfidence && c <= MaxConfidence
}

// Validate returns a validation error for values outside [0,5].
func (c Confidence) Validate() error {
	if !c.IsValid() {
		return apperr.Validation("confidence level %d must be between %d and %d", int(c), MinConfidence, MaxConfidence)
	}
	return nil
}

// ConfidenceSet is a set of confidence levels used to filter cards.
// Callers treat the empty set as "no filter".
type ConfidenceSet uint8

func NewConfidenceSet(levels ...Confidence) (ConfidenceSet, error) {
	var s ConfidenceSet
	for _, c := range levels {
		if err := c.Validate(); err != nil {
			return 0, err
		}
		s |= 1 << uint(c)
	}
	return s, nil
}

// ParseConfidenceSet parses a comma separated query value such as "0,1,2".
// Blank input yields the empty set.
func ParseConfidenceSet(raw string) (ConfidenceSet, error) {
	var levels []Confidence
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return 0, apperr.Validation("confidence level %q is not a number", part)
		}
		levels = append(levels, Confidence(n))
	}
	return NewConfidenceSet(levels...)
}

func (s ConfidenceSet) IsEmpty() bool { return s == 0 }

func (s ConfidenceSet) Contains(c Confidence) bool {
	return c.IsValid() && s&(1<<uint(c)) != 0
}

// Levels returns the members in ascending order.
func (s ConfidenceSet) Levels() []Confidence {
	var out []Confidence
	for c := MinConfidence; c <= MaxConfidence; c++ {
		if s.Contains(c) {
			out = append(out, c)
		}
	}
	return out
}

// Ints is Levels as plain ints, ready for an IN clause.
func (s ConfidenceSet) Ints() []int {
	levels := s.Levels()
	out := make([]int, len(levels))
	for i, c := range levels {
		out[i] = int(c)
	}
	return out
}

func (s ConfidenceSet) String() string {
	parts := make([]string, 0, 6)
	for _, n := range s.Ints() {
		parts = append(parts, strconv.Itoa(n))
	}
	return strings.Join(parts, ",")
}

// StudyMode names the filtered study sessions a learner can start.
type StudyMode string

const (
	ModeAll       StudyMode = "all"
	ModeAgainHard StudyMode = "again-hard"
	ModeHardOnly  StudyMode = "hard"
)

var studyModes = map[StudyMode]ConfidenceSet{
	ModeAll:       0,
	ModeAgainHard: 1<<0 | 1<<1 | 1<<2,
	ModeHardOnly:  1 << 3,
}

// ModeFilter returns the confidence filter for a study mode. ModeAll and the
// empty mode return the empty set, meaning no filter.
func ModeFilter(mode StudyMode) (ConfidenceSet, error) {
	if mode == "" {
		return 0, nil
	}
	set, ok := studyModes[mode]
	if !ok {
		modes := make([]string, 0, len(studyModes))
		for m := range studyModes {
			modes = append(modes, string(m))
		}
		sort.Strings(modes)
		return 0, apperr.Validation("unknown study mode %q (want one of %s)", mode, strings.Join(modes, ", "))
	}
	return set, nil
}
