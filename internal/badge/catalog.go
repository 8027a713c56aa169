package badge

import "github.com/google/uuid"

var catalogNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("streaker/badges"))

func newBadge(name, description, icon, criteria string, rarity Rarity) Badge {
	return Badge{
		ID:          uuid.NewSHA1(catalogNamespace, []byte(criteria)),
		Name:        name,
		Description: description,
		Icon:        icon,
		Criteria:    criteria,
		Rarity:      rarity,
	}
}

// DefaultCatalog is the seeded badge catalog, one badge per criteria.
func DefaultCatalog() []Badge {
	return []Badge{
		newBadge("First Goal", "Created your first goal. The journey of a thousand miles begins with a single step!", "flag", CriteriaFirstGoal, RarityCommon),
		newBadge("Goal Crusher", "Completed your first goal. You proved you can finish what you start!", "trophy", CriteriaCompleteGoal, RarityCommon),
		newBadge("High Achiever", "Completed 5 goals. You are on a roll!", "star", CriteriaComplete5Goals, RarityRare),
		newBadge("Goal Machine", "Completed 10 goals. Your dedication is inspiring!", "zap", CriteriaComplete10Goals, RarityRare),
		newBadge("Legendary Achiever", "Completed 25 goals. You are a true champion of consistency!", "crown", CriteriaComplete25Goals, RarityLegendary),
		newBadge("Week Warrior", "Maintained a 7-day streak. A full week of dedication!", "flame", CriteriaStreak7, RarityCommon),
		newBadge("Streak Master", "Maintained a 30-day streak. A whole month of consistency!", "fire", CriteriaStreak30, RarityEpic),
		newBadge("Unstoppable", "Maintained a 100-day streak. You are truly unstoppable!", "rocket", CriteriaStreak100, RarityLegendary),
	}
}
