// Package similarity ranks projects by relatedness for the "related
// projects" section. Scoring is additive over category, tag overlap,
// shared title/description keywords and matching timeline/team metadata.
package similarity

import (
	"sort"
	"strings"

	"github.com/rpupo63/portfolio-site-backend/models"
)

// Category classifies a project by its technology tags.
type Category string

const (
	WebDevelopment Category = "Web Development"
	FullStack      Category = "Full Stack"
	AppDevelopment Category = "App Development"
	Blockchain     Category = "Blockchain"
	AIML           Category = "AI/ML"
	IoT            Category = "IoT"
	Development    Category = "Development"
)

// categoryRule maps marker substrings to a category. Rules are evaluated
// top to bottom and the first match wins, so order is load-bearing: a MERN
// stack carrying ReactJS classifies as Web Development, not Full Stack.
type categoryRule struct {
	category Category
	markers  []string
}

var categoryRules = []categoryRule{
	{WebDevelopment, []string{"reactjs", "react.js", "nextjs", "next.js", "vue", "angular", "node", "express", "html", "css", "tailwind"}},
	{FullStack, []string{"mern", "mean stack", "full stack", "fullstack", "mongodb", "django", "spring"}},
	{AppDevelopment, []string{"react native", "flutter", "android", "ios", "swift", "kotlin", "dart"}},
	{Blockchain, []string{"blockchain", "solidity", "web3", "ethereum", "smart contract"}},
	{AIML, []string{"machine learning", "deep learning", "tensorflow", "pytorch", "openai", "llm", "nlp", "artificial intelligence"}},
	{IoT, []string{"iot", "arduino", "raspberry pi", "embedded", "esp32"}},
}

// CategoryOf classifies a technology-tag list. Matching is case-insensitive
// substring membership against the marker tags; tags are treated as an
// unordered set. Tag lists matching no rule fall back to Development.
func CategoryOf(tags []string) Category {
	lowered := make([]string, len(tags))
	for i, tag := range tags {
		lowered[i] = strings.ToLower(strings.TrimSpace(tag))
	}

	for _, rule := range categoryRules {
		for _, marker := range rule.markers {
			for _, tag := range lowered {
				if strings.Contains(tag, marker) {
					return rule.category
				}
			}
		}
	}
	return Development
}

// Score computes the relatedness of candidate to reference.
//
// Weights: +10 matching category, +3 per reference tag with a fuzzy
// (substring either way) match among candidate tags, +5 more per exact tag
// match, +2 per shared keyword longer than three characters from title and
// description, +2 for identical timeline strings, +1 for identical team
// size. An exact tag match earns both the fuzzy +3 and the exact +5; that
// double count is the weighting the site has always ranked with, so it is
// kept even though it looks accidental. Because tag overlap is counted
// against the reference's own tag list, Score(a, b) and Score(b, a)
// generally differ.
func Score(reference, candidate *models.Project) int {
	score := 0

	refTags := lowerAll(reference.TagValues())
	candTags := lowerAll(candidate.TagValues())

	if CategoryOf(reference.TagValues()) == CategoryOf(candidate.TagValues()) {
		score += 10
	}

	for _, rt := range refTags {
		for _, ct := range candTags {
			if strings.Contains(rt, ct) || strings.Contains(ct, rt) {
				score += 3
				break
			}
		}
	}

	for _, rt := range refTags {
		for _, ct := range candTags {
			if rt == ct {
				score += 5
				break
			}
		}
	}

	refWords := keywordSet(reference.Title + " " + reference.Description)
	candWords := keywordSet(candidate.Title + " " + candidate.Description)
	for word := range refWords {
		if candWords[word] {
			score += 2
		}
	}

	if reference.Timeline != nil && candidate.Timeline != nil && *reference.Timeline == *candidate.Timeline {
		score += 2
	}
	if reference.TeamSize != nil && candidate.TeamSize != nil && *reference.TeamSize == *candidate.TeamSize {
		score += 1
	}

	return score
}

// Related returns up to limit projects from catalog ranked by descending
// Score against reference. The reference itself is excluded, ties keep
// catalog order, and when the ranked picks run short the remainder is
// backfilled in catalog order. Never returns more than limit entries and
// never pads with duplicates.
func Related(reference *models.Project, catalog []*models.Project, limit int) []*models.Project {
	if limit <= 0 {
		return nil
	}

	type scored struct {
		project *models.Project
		score   int
		pos     int
	}

	var candidates []scored
	for i, candidate := range catalog {
		if candidate.ID == reference.ID {
			continue
		}
		candidates = append(candidates, scored{candidate, Score(reference, candidate), i})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	selected := make([]*models.Project, 0, limit)
	picked := make(map[string]bool, limit)
	for _, c := range candidates {
		if len(selected) == limit {
			break
		}
		selected = append(selected, c.project)
		picked[c.project.ID.String()] = true
	}

	// Backfill from catalog order if the ranked picks ran short
	for _, candidate := range catalog {
		if len(selected) == limit {
			break
		}
		if candidate.ID == reference.ID || picked[candidate.ID.String()] {
			continue
		}
		selected = append(selected, candidate)
		picked[candidate.ID.String()] = true
	}

	return selected
}

// Label describes a score band for display.
type Label struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// LabelFor maps a relatedness score to one of four fixed bands.
func LabelFor(score int) Label {
	switch {
	case score >= 15:
		return Label{"Highly Related", "Shares category, tech stack and scope"}
	case score >= 8:
		return Label{"Related", "Shares category or significant tech overlap"}
	case score >= 3:
		return Label{"Somewhat Related", "Some overlapping technologies or themes"}
	default:
		return Label{"Suggested", "Another project worth a look"}
	}
}

func lowerAll(values []string) []string {
	lowered := make([]string, len(values))
	for i, v := range values {
		lowered[i] = strings.ToLower(strings.TrimSpace(v))
	}
	return lowered
}

// keywordSet extracts unique lowercase words longer than three characters.
func keywordSet(text string) map[string]bool {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	})
	set := make(map[string]bool, len(words))
	for _, word := range words {
		if len(word) > 3 {
			set[word] = true
		}
	}
	return set
}
