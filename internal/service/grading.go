package service

import (
	"strings"

	"reading_edu_backend/internal/model"
)

// Decision thresholds per question type. Boundaries are inclusive.
const (
	shortAnswerThreshold  = 0.9
	freeResponseThreshold = 0.7
	substringSimilarity   = 0.7
)

// Similarity scores a student submission against one accepted answer,
// in [0,1]. Comparison is case-insensitive and whitespace-trimmed:
// exact match scores 1.0, a substring match either way scores 0.7,
// otherwise the score is the shared-token count over the longer token
// list (0 when no tokens are shared).
func Similarity(submitted, accepted string) float64 {
	a := strings.ToLower(strings.TrimSpace(submitted))
	c := strings.ToLower(strings.TrimSpace(accepted))

	if a == c {
		return 1.0
	}
	if a == "" || c == "" {
		return 0
	}
	if strings.Contains(a, c) || strings.Contains(c, a) {
		return substringSimilarity
	}

	aTokens := strings.Fields(a)
	cTokens := strings.Fields(c)
	cSet := make(map[string]bool, len(cTokens))
	for _, t := range cTokens {
		cSet[t] = true
	}

	matchCount := 0
	for _, t := range aTokens {
		if cSet[t] {
			matchCount++
		}
	}
	if matchCount == 0 {
		return 0
	}

	longest := len(aTokens)
	if len(cTokens) > longest {
		longest = len(cTokens)
	}
	return float64(matchCount) / float64(longest)
}

// MaxSimilarity scores a submission against every accepted answer and
// keeps the best.
func MaxSimilarity(submitted string, answers []string) float64 {
	best := 0.0
	for _, ans := range answers {
		if s := Similarity(submitted, ans); s > best {
			best = s
		}
	}
	return best
}

// JudgeAnswer decides correctness for one submission. Multiple choice
// requires the submission to equal the single accepted answer; short
// answers pass at similarity >= 0.9 against any accepted answer; free
// responses pass when the best similarity reaches 0.7.
func JudgeAnswer(qType model.QuestionType, submitted string, answers []string) (bool, float64) {
	switch qType {
	case model.QuestionChoice:
		if len(answers) == 0 {
			return false, 0
		}
		if strings.TrimSpace(submitted) == strings.TrimSpace(answers[0]) {
			return true, 1.0
		}
		return false, 0
	case model.QuestionShort:
		best := MaxSimilarity(submitted, answers)
		return best >= shortAnswerThreshold, best
	default:
		best := MaxSimilarity(submitted, answers)
		return best >= freeResponseThreshold, best
	}
}

// RoundScore converts a correct/total pair to a 0-100 score.
func RoundScore(correct, total int) int {
	if total == 0 {
		return 0
	}
	return int(float64(correct)/float64(total)*100 + 0.5)
}

// joinAnswers renders the accepted-answer list the way wrong-answer
// records store it; splitAnswers is its inverse for review regrading.
func joinAnswers(answers []string) string {
	return strings.Join(answers, ", ")
}

func splitAnswers(joined string) []string {
	parts := strings.Split(joined, ", ")
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
