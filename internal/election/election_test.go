package election_test

import (
	"math/rand"
	"slices"
	"sort"
	"testing"
	"time"

	"github.com/moznion/go-optional"

	"github.com/abrezinsky/evote/internal/election"
)

func ts(s string) optional.Option[time.Time] {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return optional.Some(t)
}

func none() optional.Option[time.Time] {
	return optional.None[time.Time]()
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		start    optional.Option[time.Time]
		end      optional.Option[time.Time]
		expected election.Status
	}{
		{"no timestamps", none(), none(), election.NotStarted},
		{"start only", ts("2024-01-01"), none(), election.Active},
		{"start and end", ts("2024-01-01"), ts("2024-02-01"), election.Ended},
		{"end without start", none(), ts("2024-02-01"), election.Ended},
		{"end before start still ended", ts("2024-03-01"), ts("2024-02-01"), election.Ended},
		{"zero start counts as absent", optional.Some(time.Time{}), none(), election.NotStarted},
		{"zero end falls back to start", ts("2024-01-01"), optional.Some(time.Time{}), election.Active},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := election.Classify(tt.start, tt.end)
			if got != tt.expected {
				t.Errorf("Classify() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestClassifyTimes(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	if got := election.ClassifyTimes(nil, nil); got != election.NotStarted {
		t.Errorf("expected NotStarted, got %v", got)
	}
	if got := election.ClassifyTimes(&start, nil); got != election.Active {
		t.Errorf("expected Active, got %v", got)
	}
	if got := election.ClassifyTimes(&start, &end); got != election.Ended {
		t.Errorf("expected Ended, got %v", got)
	}
	if got := election.ClassifyTimes(nil, &end); got != election.Ended {
		t.Errorf("expected Ended, got %v", got)
	}
}

func TestStatus_String(t *testing.T) {
	tests := []struct {
		status   election.Status
		expected string
	}{
		{election.NotStarted, "Not Started"},
		{election.Active, "Active"},
		{election.Ended, "Ended"},
		{election.Status(42), "Not Started"},
	}

	for _, tt := range tests {
		if got := tt.status.String(); got != tt.expected {
			t.Errorf("String() = %q, want %q", got, tt.expected)
		}
		text, err := tt.status.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText failed: %v", err)
		}
		if string(text) != tt.expected {
			t.Errorf("MarshalText() = %q, want %q", text, tt.expected)
		}
	}
}

func TestStatus_UnmarshalText(t *testing.T) {
	for _, want := range []election.Status{election.NotStarted, election.Active, election.Ended} {
		text, _ := want.MarshalText()
		var got election.Status
		if err := got.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q) failed: %v", text, err)
		}
		if got != want {
			t.Errorf("UnmarshalText(%q) = %v, want %v", text, got, want)
		}
	}

	var s election.Status
	if err := s.UnmarshalText([]byte("Paused")); err == nil {
		t.Error("expected error for unknown label")
	}
}

func ids(cands []election.Candidate) []string {
	out := make([]string, len(cands))
	for i, c := range cands {
		out[i] = c.ID
	}
	return out
}

func TestRank_OrdersByVotesWithStableTies(t *testing.T) {
	input := []election.Candidate{
		{ID: "a", Votes: 5},
		{ID: "b", Votes: 9},
		{ID: "c", Votes: 9},
	}

	result := election.Rank(input, election.Ended)

	if got := ids(result.Candidates); !slices.Equal(got, []string{"b", "c", "a"}) {
		t.Errorf("expected order [b c a], got %v", got)
	}
	if result.Winner.IsNone() {
		t.Fatal("expected a winner")
	}
	if result.Winner.Unwrap().ID != "b" {
		t.Errorf("expected winner b, got %s", result.Winner.Unwrap().ID)
	}
	if result.Status != election.Ended {
		t.Errorf("expected status to be carried through, got %v", result.Status)
	}
}

func TestRank_NoWinnerUnlessEnded(t *testing.T) {
	input := []election.Candidate{
		{ID: "a", Votes: 100},
		{ID: "b", Votes: 1},
	}

	for _, status := range []election.Status{election.NotStarted, election.Active} {
		result := election.Rank(input, status)
		if result.Winner.IsSome() {
			t.Errorf("status %v: expected no winner, got %v", status, result.Winner.Unwrap())
		}
		if len(result.Candidates) != 2 {
			t.Errorf("status %v: expected candidates to still be ranked", status)
		}
	}
}

func TestRank_EmptyEndedHasNoWinner(t *testing.T) {
	result := election.Rank(nil, election.Ended)

	if result.Winner.IsSome() {
		t.Error("expected no winner for empty candidate list")
	}
	if result.Candidates == nil {
		t.Error("expected empty, non-nil candidate list")
	}
	if len(result.Candidates) != 0 {
		t.Errorf("expected 0 candidates, got %d", len(result.Candidates))
	}
}

func TestRank_DoesNotMutateInput(t *testing.T) {
	input := []election.Candidate{
		{ID: "a", Name: "Alice", Votes: 1},
		{ID: "b", Name: "Bob", Votes: 3},
		{ID: "c", Name: "Cara", Votes: 2},
	}
	snapshot := slices.Clone(input)

	result := election.Rank(input, election.Ended)
	result.Candidates[0].Votes = 999

	if !slices.Equal(input, snapshot) {
		t.Errorf("input was mutated: %v", input)
	}
}

func TestRank_EndToEnd(t *testing.T) {
	status := election.Classify(ts("2024-01-01"), ts("2024-02-01"))
	result := election.Rank([]election.Candidate{
		{ID: "1", Name: "Alice", Votes: 10},
		{ID: "2", Name: "Bob", Votes: 15},
	}, status)

	if result.Status != election.Ended {
		t.Fatalf("expected Ended, got %v", result.Status)
	}
	if result.Winner.IsNone() || result.Winner.Unwrap().Name != "Bob" {
		t.Errorf("expected Bob to win")
	}
}

// TestRank_Properties checks ordering, stability and id preservation on random inputs
func TestRank_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for iter := 0; iter < 200; iter++ {
		n := rng.Intn(12)
		input := make([]election.Candidate, n)
		position := make(map[string]int, n)
		for i := range input {
			id := string(rune('A' + i))
			input[i] = election.Candidate{ID: id, Votes: rng.Intn(4)}
			position[id] = i
		}

		result := election.Rank(input, election.Ended)
		out := result.Candidates

		if len(out) != len(input) {
			t.Fatalf("length changed: %d -> %d", len(input), len(out))
		}

		in, got := ids(input), ids(out)
		sort.Strings(in)
		sort.Strings(got)
		if !slices.Equal(in, got) {
			t.Fatalf("ids changed: %v -> %v", in, got)
		}

		for i := 0; i+1 < len(out); i++ {
			if out[i].Votes < out[i+1].Votes {
				t.Fatalf("not descending at %d: %v", i, out)
			}
			if out[i].Votes == out[i+1].Votes && position[out[i].ID] > position[out[i+1].ID] {
				t.Fatalf("unstable tie at %d: %v", i, out)
			}
		}

		if n == 0 && result.Winner.IsSome() {
			t.Fatal("winner on empty input")
		}
		if n > 0 && result.Winner.Unwrap().ID != out[0].ID {
			t.Fatalf("winner %s is not first ranked %s", result.Winner.Unwrap().ID, out[0].ID)
		}
	}
}

func TestTies(t *testing.T) {
	tests := []struct {
		name     string
		input    []election.Candidate
		expected []string
	}{
		{"empty", nil, nil},
		{"single", []election.Candidate{{ID: "a", Votes: 3}}, nil},
		{"clear leader", []election.Candidate{{ID: "a", Votes: 3}, {ID: "b", Votes: 2}}, nil},
		{"two way tie", []election.Candidate{{ID: "a", Votes: 1}, {ID: "b", Votes: 4}, {ID: "c", Votes: 4}}, []string{"b", "c"}},
		{"all zero", []election.Candidate{{ID: "a"}, {ID: "b"}, {ID: "c"}}, []string{"a", "b", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tied := election.Ties(election.Rank(tt.input, election.Ended))
			if tt.expected == nil {
				if tied != nil {
					t.Errorf("expected no tie, got %v", ids(tied))
				}
				return
			}
			if got := ids(tied); !slices.Equal(got, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}
