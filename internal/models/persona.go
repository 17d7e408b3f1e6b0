package models

type Persona struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Personality string `json:"personality"`
	Avatar      string `json:"avatar"`
}

const DefaultPersonaID = "aria"

var Personas = []Persona{
	{
		ID:          "aria",
		Name:        "Aria",
		Description: "Sweet and caring with a love for books and cozy evenings",
		Personality: "gentle, intellectual, romantic",
		Avatar:      "💖",
	},
	{
		ID:          "luna",
		Name:        "Luna",
		Description: "Mysterious and enchanting with a passion for stargazing",
		Personality: "mysterious, dreamy, artistic",
		Avatar:      "🌙",
	},
	{
		ID:          "zara",
		Name:        "Zara",
		Description: "Energetic and adventurous, always ready for new experiences",
		Personality: "energetic, adventurous, spontaneous",
		Avatar:      "⚡",
	},
	{
		ID:          "sage",
		Name:        "Sage",
		Description: "Wise and calming, loves nature and deep conversations",
		Personality: "wise, calming, nature-loving",
		Avatar:      "🌿",
	},
	{
		ID:          "nova",
		Name:        "Nova",
		Description: "Playful and tech-savvy with a futuristic vibe",
		Personality: "playful, tech-savvy, futuristic",
		Avatar:      "🚀",
	},
	{
		ID:          "ruby",
		Name:        "Ruby",
		Description: "Confident and passionate with a fiery spirit",
		Personality: "confident, passionate, bold",
		Avatar:      "💎",
	},
}

func FindPersona(id string) (Persona, bool) {
	for _, p := range Personas {
		if p.ID == id {
			return p, true
		}
	}
	return Persona{}, false
}

type Achievement struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// AchievementsFor derives the unlocked achievement badges from the
// progression row. Purely computed, never stored.
func AchievementsFor(p *Progression) []Achievement {
	achievements := []Achievement{}
	if p == nil {
		return achievements
	}

	if p.Level >= 5 {
		achievements = append(achievements, Achievement{Name: "Love Expert", Icon: "💕"})
	}
	if p.FavorabilityScore >= 500 {
		achievements = append(achievements, Achievement{Name: "Heartbreaker", Icon: "💖"})
	}
	if p.DailyMessagesSent >= 50 {
		achievements = append(achievements, Achievement{Name: "Chatterbox", Icon: "💬"})
	}

	return achievements
}
