// Package pipeline derives displayed lists from full collections. It is a
// pure function of its inputs: the same collection and criteria always
// produce the same output, and the input slice is never mutated.
package pipeline

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"cleancity/internal/domain"
)

// Direction selects the chronological ordering of a list.
type Direction string

const (
	// LatestFirst orders by createdAt descending.
	LatestFirst Direction = "desc"
	// OldestFirst orders by createdAt ascending.
	OldestFirst Direction = "asc"
)

// ParseDirection maps a query-string value onto a Direction, defaulting to
// LatestFirst for anything unrecognized.
func ParseDirection(s string) Direction {
	if strings.EqualFold(strings.TrimSpace(s), string(OldestFirst)) {
		return OldestFirst
	}
	return LatestFirst
}

// Criteria are the three independent inputs of the issue pipeline.
type Criteria struct {
	Query    string
	Category string
	Sort     Direction
}

var folder = cases.Fold()

func fold(s string) string {
	return folder.String(s)
}

// Issues filters by free text, then by category, then sorts the surviving
// subset chronologically. The two filters commute; the sort is applied last
// and is stable, so records with equal timestamps keep their input order.
func Issues(issues []domain.Issue, c Criteria) []domain.Issue {
	query := fold(strings.TrimSpace(c.Query))
	category := strings.TrimSpace(c.Category)

	out := make([]domain.Issue, 0, len(issues))
	for _, issue := range issues {
		if query != "" && !matchesQuery(issue, query) {
			continue
		}
		if category != "" && fold(string(issue.Category)) != fold(category) {
			continue
		}
		out = append(out, issue)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if c.Sort == OldestFirst {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[j].CreatedAt.Before(out[i].CreatedAt)
	})
	return out
}

// matchesQuery reports whether any of title, description, or location
// contains the folded query.
func matchesQuery(issue domain.Issue, foldedQuery string) bool {
	return strings.Contains(fold(issue.Title), foldedQuery) ||
		strings.Contains(fold(issue.Description), foldedQuery) ||
		strings.Contains(fold(issue.Location), foldedQuery)
}

// Contributions narrows a member's contribution list by free text across the
// issue-title snapshot, contributor name, email, and address. An empty query
// returns a copy of the input.
func Contributions(contributions []domain.Contribution, query string) []domain.Contribution {
	q := fold(strings.TrimSpace(query))
	out := make([]domain.Contribution, 0, len(contributions))
	for _, c := range contributions {
		if q != "" &&
			!strings.Contains(fold(c.IssueTitle), q) &&
			!strings.Contains(fold(c.Name), q) &&
			!strings.Contains(fold(c.Email), q) &&
			!strings.Contains(fold(c.Address), q) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// CategoriesOf returns the distinct categories present in the collection,
// in first-seen order, for populating filter controls.
func CategoriesOf(issues []domain.Issue) []domain.Category {
	seen := make(map[string]struct{}, len(issues))
	out := make([]domain.Category, 0, len(domain.Categories))
	for _, issue := range issues {
		if issue.Category == "" {
			continue
		}
		key := fold(string(issue.Category))
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, issue.Category)
	}
	return out
}
