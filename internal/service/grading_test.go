package service

import (
	"testing"

	"reading_edu_backend/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestSimilarityExact(t *testing.T) {
	assert.Equal(t, 1.0, Similarity("Photosynthesis", "photosynthesis"))
	assert.Equal(t, 1.0, Similarity("  the main idea  ", "the main idea"))
	assert.Equal(t, 1.0, Similarity("", ""))
}

func TestSimilaritySubstring(t *testing.T) {
	assert.Equal(t, 0.7, Similarity("the water cycle", "water cycle"))
	assert.Equal(t, 0.7, Similarity("cycle", "the water cycle"))
}

func TestSimilarityEmptySubmission(t *testing.T) {
	// an empty submission must not trip the substring rule
	assert.Equal(t, 0.0, Similarity("", "water cycle"))
	assert.Equal(t, 0.0, Similarity("   ", "water cycle"))
}

func TestSimilarityTokenOverlap(t *testing.T) {
	// 2 shared tokens over the longer list of 3
	assert.InDelta(t, 2.0/3.0, Similarity("quick brown fox", "slow brown fox"), 1e-9)
	assert.Equal(t, 0.0, Similarity("alpha beta", "gamma delta"))
}

func TestMaxSimilarity(t *testing.T) {
	answers := []string{"gamma delta", "quick brown fox"}
	assert.Equal(t, 1.0, MaxSimilarity("quick brown fox", answers))
	assert.Equal(t, 0.0, MaxSimilarity("nothing shared", nil))
}

func TestJudgeAnswerChoice(t *testing.T) {
	correct, sim := JudgeAnswer(model.QuestionChoice, "B", []string{"B"})
	assert.True(t, correct)
	assert.Equal(t, 1.0, sim)

	correct, sim = JudgeAnswer(model.QuestionChoice, " B ", []string{"B"})
	assert.True(t, correct)
	assert.Equal(t, 1.0, sim)

	correct, sim = JudgeAnswer(model.QuestionChoice, "A", []string{"B"})
	assert.False(t, correct)
	assert.Equal(t, 0.0, sim)

	correct, _ = JudgeAnswer(model.QuestionChoice, "A", nil)
	assert.False(t, correct)
}

func TestJudgeAnswerShortThresholdInclusive(t *testing.T) {
	// 9 of 10 tokens shared, neither string contains the other: exactly 0.9
	accepted := "a b c d e f g h i j"
	submitted := "a b c d e f g h i z"

	correct, sim := JudgeAnswer(model.QuestionShort, submitted, []string{accepted})
	assert.True(t, correct)
	assert.InDelta(t, 0.9, sim, 1e-9)

	// 8 of 10 is below the bar
	correct, _ = JudgeAnswer(model.QuestionShort, "a b c d e f g h y z", []string{accepted})
	assert.False(t, correct)
}

func TestJudgeAnswerEssayThresholdInclusive(t *testing.T) {
	// substring similarity of 0.7 passes a free response
	correct, sim := JudgeAnswer(model.QuestionEssay, "the water cycle", []string{"the water cycle repeats forever"})
	assert.True(t, correct)
	assert.Equal(t, 0.7, sim)

	// 6 of 10 shared tokens stays below 0.7
	correct, _ = JudgeAnswer(model.QuestionEssay, "a b c d e f u v w x", []string{"a b c d e f g h i j"})
	assert.False(t, correct)
}

func TestRoundScore(t *testing.T) {
	assert.Equal(t, 0, RoundScore(0, 0))
	assert.Equal(t, 0, RoundScore(0, 3))
	assert.Equal(t, 33, RoundScore(1, 3))
	assert.Equal(t, 67, RoundScore(2, 3))
	assert.Equal(t, 100, RoundScore(3, 3))
	assert.Equal(t, 50, RoundScore(1, 2))
}

func TestJoinSplitAnswers(t *testing.T) {
	answers := []string{"water cycle", "hydrologic cycle"}
	assert.Equal(t, "water cycle, hydrologic cycle", joinAnswers(answers))
	assert.Equal(t, answers, splitAnswers(joinAnswers(answers)))
	assert.Empty(t, splitAnswers(""))
}
