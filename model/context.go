package model

// LeagueContext is the user-authored qualitative tuning data for a league:
// inside jokes, personality notes, the punishment for last place, general
// culture. It feeds roast generation verbatim.
type LeagueContext struct {
	LeagueID      string        `json:"league_id"`
	Jokes         []InsideJoke  `json:"jokes,omitempty"`
	Personalities []Personality `json:"personalities,omitempty"`
	Punishment    string        `json:"punishment,omitempty"`
	CultureNotes  string        `json:"culture_notes,omitempty"`
}

type InsideJoke struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type Personality struct {
	ID       string `json:"id"`
	TeamName string `json:"team_name"`
	Notes    string `json:"notes"`
}

// Equal compares context content only. The record ids on jokes and
// personalities are carried for storage but do not make two contexts differ.
func (c *LeagueContext) Equal(o *LeagueContext) bool {
	if c == nil || o == nil {
		return c == o
	}
	if c.Punishment != o.Punishment || c.CultureNotes != o.CultureNotes {
		return false
	}
	if len(c.Jokes) != len(o.Jokes) || len(c.Personalities) != len(o.Personalities) {
		return false
	}
	for i := range c.Jokes {
		if c.Jokes[i].Text != o.Jokes[i].Text {
			return false
		}
	}
	for i := range c.Personalities {
		if c.Personalities[i].TeamName != o.Personalities[i].TeamName ||
			c.Personalities[i].Notes != o.Personalities[i].Notes {
			return false
		}
	}
	return true
}
