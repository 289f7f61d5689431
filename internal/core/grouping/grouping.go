// Package grouping partitions records into category buckets split by status
package grouping

import (
	"slices"
	"strings"

	"oasis/internal/core/record"
	"oasis/internal/core/status"
)

// FallbackName is used for records with an empty category
const FallbackName = "Unknown League"

// Group is a named, status tagged bucket of items sharing a category
// groups are rebuilt on every pass and never mutated afterwards
type Group[T any] struct {
	Key     string        `json:"key"`
	Name    string        `json:"name"`
	Status  status.Status `json:"status"`
	Members []T           `json:"members"`
}

// By groups items by category and derived status
// key is category + "_" + status with the category kept verbatim (a blank one
// falls back to FallbackName), groups are created on first sight and then
// ordered by status rank and name (byte-wise ascending), ties keep first-seen order
func By[T any](items []T, category func(T) string, state func(T) int) []Group[T] {
	out := make([]Group[T], 0)
	if len(items) == 0 {
		return out
	}

	index := make(map[string]int)
	for _, it := range items {
		name := category(it)
		if strings.TrimSpace(name) == "" {
			name = FallbackName
		}
		st := status.Of(state(it))
		key := name + "_" + string(st)

		i, ok := index[key]
		if !ok {
			i = len(out)
			index[key] = i
			out = append(out, Group[T]{Key: key, Name: name, Status: st})
		}
		out[i].Members = append(out[i].Members, it)
	}

	slices.SortStableFunc(out, func(a, b Group[T]) int {
		if ra, rb := status.Rank(a.Status), status.Rank(b.Status); ra != rb {
			return ra - rb
		}
		return strings.Compare(a.Name, b.Name)
	})
	return out
}

// Records groups feed records by their category key and state code
func Records(rs []record.Record) []Group[record.Record] {
	return By(rs, record.Category, record.State)
}

// Summary counts members per status across groups
type Summary struct {
	Live     int `json:"live"`
	Upcoming int `json:"upcoming"`
	Other    int `json:"other"`
	Groups   int `json:"groups"`
	Total    int `json:"total"`
}

// Summarize counts members per status, unknown members count as other
func Summarize[T any](groups []Group[T]) Summary {
	s := Summary{Groups: len(groups)}
	for _, g := range groups {
		n := len(g.Members)
		s.Total += n
		switch g.Status {
		case status.Live:
			s.Live += n
		case status.Upcoming:
			s.Upcoming += n
		default:
			s.Other += n
		}
	}
	return s
}

// Preview returns at most n leading members of g
func Preview[T any](g Group[T], n int) []T {
	if n < 0 {
		n = 0
	}
	if n > len(g.Members) {
		n = len(g.Members)
	}
	return g.Members[:n:n]
}
