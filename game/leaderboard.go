package game

import "sort"

// Standing is one leaderboard row.
type Standing struct {
	PlayerID   string   `json:"playerId"`
	PlayerName string   `json:"playerName"`
	Score      int      `json:"score"`
	Guesses    []string `json:"guesses"`
	HasWon     bool     `json:"hasWon"`
	IsCreator  bool     `json:"isCreator"`
}

// computeLeaderboard projects the current players into ranked standings:
// winners first, fewest guesses ranking higher, then everyone else by
// ascending guess count. The input must already be in join order so that
// the stable sort breaks ties by who joined first. Recomputed from scratch
// on every call since player state changes between reads.
func computeLeaderboard(players []Player) []Standing {
	standings := make([]Standing, 0, len(players))
	for _, p := range players {
		guesses := make([]string, len(p.Guesses))
		copy(guesses, p.Guesses)
		standings = append(standings, Standing{
			PlayerID:   p.ID,
			PlayerName: p.Name,
			Score:      p.Score,
			Guesses:    guesses,
			HasWon:     p.HasWon,
			IsCreator:  p.IsCreator,
		})
	}

	sort.SliceStable(standings, func(i, j int) bool {
		a, b := standings[i], standings[j]
		if a.HasWon != b.HasWon {
			return a.HasWon
		}
		return a.Score < b.Score
	})
	return standings
}
