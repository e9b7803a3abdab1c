package models

// Band is the orientation strength shown next to a percentage.
type Band string

const (
	BandVeryStrong Band = "very_strong"
	BandStrong     Band = "strong"
	BandModerate   Band = "moderate"
	BandWeak       Band = "weak"
	BandVeryWeak   Band = "very_weak"
)

var bandLabels = map[Band]string{
	BandVeryStrong: "ميل قوي جداً",
	BandStrong:     "ميل قوي",
	BandModerate:   "ميل متوسط",
	BandWeak:       "ميل ضعيف",
	BandVeryWeak:   "ميل ضعيف جداً",
}

func BandFor(percentage int) Band {
	switch {
	case percentage >= 80:
		return BandVeryStrong
	case percentage >= 60:
		return BandStrong
	case percentage >= 40:
		return BandModerate
	case percentage >= 20:
		return BandWeak
	default:
		return BandVeryWeak
	}
}

// Label returns the Arabic label used in counselor reports.
func (b Band) Label() string {
	return bandLabels[b]
}
