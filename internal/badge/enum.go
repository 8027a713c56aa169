package badge

type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// rank orders rarities from most to least common.
func (r Rarity) rank() int {
	switch r {
	case RarityCommon:
		return 0
	case RarityRare:
		return 1
	case RarityEpic:
		return 2
	case RarityLegendary:
		return 3
	}
	return 4
}

const (
	CriteriaFirstGoal       = "first_goal"
	CriteriaCompleteGoal    = "complete_goal"
	CriteriaComplete5Goals  = "complete_5_goals"
	CriteriaComplete10Goals = "complete_10_goals"
	CriteriaComplete25Goals = "complete_25_goals"
	CriteriaStreak7         = "streak_7"
	CriteriaStreak30        = "streak_30"
	CriteriaStreak100       = "streak_100"
)
