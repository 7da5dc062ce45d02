// Package election derives an election's lifecycle status from its timestamps
// and ranks its candidates by vote count.
package election

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/moznion/go-optional"
)

// Status is the derived lifecycle stage of an election
type Status int

const (
	NotStarted Status = iota
	Active
	Ended
)

// String returns the display label for the status
func (s Status) String() string {
	switch s {
	case Active:
		return "Active"
	case Ended:
		return "Ended"
	default:
		return "Not Started"
	}
}

// MarshalText encodes the status as its display label
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a display label produced by MarshalText
func (s *Status) UnmarshalText(text []byte) error {
	switch string(text) {
	case "Not Started":
		*s = NotStarted
	case "Active":
		*s = Active
	case "Ended":
		*s = Ended
	default:
		return fmt.Errorf("unknown election status %q", text)
	}
	return nil
}

// Candidate is the read-only view of a candidate the ranker works on
type Candidate struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Party string `json:"party"`
	Votes int    `json:"votes"`
}

// RankedResult is the display-ready outcome of ranking an election
type RankedResult struct {
	Status     Status
	Candidates []Candidate
	Winner     optional.Option[Candidate]
}

// Classify derives the status from optional start and end times.
// An end time wins over a start time; a zero time counts as absent.
func Classify(start, end optional.Option[time.Time]) Status {
	if present(end) {
		return Ended
	}
	if present(start) {
		return Active
	}
	return NotStarted
}

// ClassifyTimes is Classify for nullable timestamps as they come out of storage
func ClassifyTimes(start, end *time.Time) Status {
	return Classify(optional.FromNillable(start), optional.FromNillable(end))
}

func present(t optional.Option[time.Time]) bool {
	return t.IsSome() && !t.Unwrap().IsZero()
}

// Rank orders candidates by votes, highest first, keeping input order for
// equal counts. The winner is set only for an ended election with at least
// one candidate. The input slice is left untouched.
func Rank(candidates []Candidate, status Status) RankedResult {
	ordered := make([]Candidate, len(candidates))
	copy(ordered, candidates)

	slices.SortStableFunc(ordered, func(a, b Candidate) int {
		return cmp.Compare(b.Votes, a.Votes)
	})

	result := RankedResult{
		Status:     status,
		Candidates: ordered,
		Winner:     optional.None[Candidate](),
	}
	if status == Ended && len(ordered) > 0 {
		result.Winner = optional.Some(ordered[0])
	}
	return result
}

// Ties returns the candidates sharing the top vote count, or nil when the
// leader is alone at the top.
func Ties(result RankedResult) []Candidate {
	c := result.Candidates
	if len(c) < 2 || c[0].Votes != c[1].Votes {
		return nil
	}

	top := c[0].Votes
	var tied []Candidate
	for _, cand := range c {
		if cand.Votes != top {
			break
		}
		tied = append(tied, cand)
	}
	return tied
}
