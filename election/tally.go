// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"math"
	"sort"

	"github.com/danielhkuo/campus-elections/models"
)

// Tally ranks the candidates of one position from raw vote rows. Votes for
// other positions or for candidates outside the slate are ignored. It never
// fails; an empty slate yields an empty result.
func Tally(position models.Position, candidates []models.Candidate, votes []models.Vote) models.PositionResult {
	counts := make(map[string]int, len(candidates))
	for _, c := range candidates {
		counts[c.ID] = 0
	}

	total := 0
	for _, v := range votes {
		if v.PositionID != position.ID {
			continue
		}
		if _, ok := counts[v.CandidateID]; !ok {
			continue
		}
		counts[v.CandidateID]++
		total++
	}

	results := make([]models.CandidateResult, 0, len(candidates))
	for _, c := range candidates {
		results = append(results, models.CandidateResult{
			CandidateID: c.ID,
			DisplayName: c.DisplayName,
			VoteCount:   counts[c.ID],
			Percentage:  percentage(counts[c.ID], total),
		})
	}

	// Votes descending, then display name, then id for a total order
	sort.Slice(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.VoteCount != b.VoteCount {
			return a.VoteCount > b.VoteCount
		}
		if a.DisplayName != b.DisplayName {
			return a.DisplayName < b.DisplayName
		}
		return a.CandidateID < b.CandidateID
	})

	// Competition ranking: 1, 1, 3, 4
	winners := 0
	for i := range results {
		if i > 0 && results[i].VoteCount == results[i-1].VoteCount {
			results[i].Rank = results[i-1].Rank
		} else {
			results[i].Rank = i + 1
		}
		results[i].IsWinner = results[i].Rank == 1 && results[i].VoteCount > 0
		if results[i].IsWinner {
			winners++
		}
	}

	return models.PositionResult{
		Position:    position,
		TotalVotes:  total,
		Candidates:  results,
		WinnerCount: winners,
		Tied:        winners > 1,
	}
}

// ComputeTurnout derives election turnout from distinct voters and the
// eligible (verified, active) student count.
func ComputeTurnout(totalVoters, eligibleVoters int) models.Turnout {
	return models.Turnout{
		TotalVoters:       totalVoters,
		EligibleVoters:    eligibleVoters,
		TurnoutPercentage: percentage(totalVoters, eligibleVoters),
	}
}

// percentage returns part/whole*100 rounded to two decimals, 0 when whole is 0
func percentage(part, whole int) float64 {
	if whole <= 0 {
		return 0
	}
	return math.Round(float64(part)/float64(whole)*10000) / 100
}
