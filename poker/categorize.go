package poker

// HoleCardCategory is a coarse preflop strength bucket.
type HoleCardCategory string

const (
	CategoryPremium HoleCardCategory = "Premium"
	CategoryStrong  HoleCardCategory = "Strong"
	CategoryMedium  HoleCardCategory = "Medium"
	CategoryWeak    HoleCardCategory = "Weak"
	CategoryTrash   HoleCardCategory = "Trash"
	CategoryUnknown HoleCardCategory = "Unknown"
)

// Playable reports whether the category is worth entering a pot with for a
// tight strategy.
func (c HoleCardCategory) Playable() bool {
	return c == CategoryPremium || c == CategoryStrong || c == CategoryMedium
}

// CategorizeHoleCards buckets two hole cards.
// Premium: JJ+, AK. Strong: TT, AQ, AJ. Medium: 77-99, suited broadway.
// Weak: 22-66, suited connectors and one-gappers. Trash: everything else.
func CategorizeHoleCards(c1, c2 Card) HoleCardCategory {
	if !c1.Valid() || !c2.Valid() || c1 == c2 {
		return CategoryUnknown
	}

	small, big := c1.Value(), c2.Value()
	if small > big {
		small, big = big, small
	}
	suited := c1.Suit() == c2.Suit()
	pair := small == big

	switch {
	case pair && small >= 11, small == 13 && big == 14:
		return CategoryPremium
	case pair && small == 10, big == 14 && (small == 12 || small == 11):
		return CategoryStrong
	case pair && small >= 7, suited && small >= 10:
		return CategoryMedium
	case pair, suited && big-small <= 2:
		return CategoryWeak
	}
	return CategoryTrash
}
