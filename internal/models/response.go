package models

// Selection is the answer to one question. Dichotomous questions use OptionID,
// ranked questions use Ranks (slot -> rank in 1..3).
type Selection struct {
	OptionID string       `json:"option_id,omitempty" yaml:"option_id,omitempty"`
	Ranks    map[Slot]int `json:"ranks,omitempty" yaml:"ranks,omitempty"`
}

// IsCompleteRanking reports whether every slot holds a distinct rank from {1,2,3}.
func (s Selection) IsCompleteRanking() bool {
	if len(s.Ranks) != len(RankedSlots) {
		return false
	}
	seen := make(map[int]bool, len(RankedSlots))
	for _, slot := range RankedSlots {
		v, ok := s.Ranks[slot]
		if !ok || v < 1 || v > 3 || seen[v] {
			return false
		}
		seen[v] = true
	}
	return true
}

func (s Selection) Clone() Selection {
	out := Selection{OptionID: s.OptionID}
	if s.Ranks != nil {
		out.Ranks = make(map[Slot]int, len(s.Ranks))
		for k, v := range s.Ranks {
			out.Ranks[k] = v
		}
	}
	return out
}

// ResponseSet maps question id to selection. A missing key means unanswered.
type ResponseSet map[string]Selection

func (rs ResponseSet) Clone() ResponseSet {
	out := make(ResponseSet, len(rs))
	for k, v := range rs {
		out[k] = v.Clone()
	}
	return out
}

// DefaultRanking is the legacy pre-filled ranking for untouched ranked questions.
func DefaultRanking() Selection {
	return Selection{Ranks: map[Slot]int{SlotA: 3, SlotB: 2, SlotC: 1}}
}
