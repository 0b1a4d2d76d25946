package votescot

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderLeaderboardWithTiesAndNegativeScore(t *testing.T) {
	entries := []scoreEntry{
		{username: "@bob", points: 3},
		{username: "@alice", points: 3},
		{username: "@carol", points: -1},
	}

	report := renderLeaderboard(entries)

	expected := "█▁\n" +
		"```" +
		"1. @alice: 3 points 👑\n" +
		"   @bob: 3 points\n" +
		"2. @carol: -1 point\n" +
		"```"
	assert.Equal(t, expected, report)
}

func TestRenderLeaderboardSingleScore(t *testing.T) {
	report := renderLeaderboard([]scoreEntry{{username: "@alice", points: 1}})

	expected := "▁\n" +
		"```" +
		"1. @alice: 1 point 👑\n" +
		"```"
	assert.Equal(t, expected, report)
}

func TestRenderLeaderboardTruncatesAfterTenDistinctScores(t *testing.T) {
	entries := make([]scoreEntry, 0, 12)
	for points := 1; points <= 12; points++ {
		entries = append(entries, scoreEntry{username: fmt.Sprintf("@user%d", points), points: points})
	}

	report := renderLeaderboard(entries)

	assert.Contains(t, report, "1. @user12: 12 points 👑\n")
	assert.Contains(t, report, "10. @user3: 3 points\n")
	assert.NotContains(t, report, "@user2")
	assert.NotContains(t, report, "@user1:")
	assert.Equal(t, 10, strings.Count(report, "@user"))
}

func TestSparkline(t *testing.T) {
	assert.Equal(t, "█▁", sparkline([]int{3, -1}))
	assert.Equal(t, "▁", sparkline([]int{5}))
	assert.Equal(t, "█▄▁", sparkline([]int{10, 5, 0}))
	assert.Equal(t, "", sparkline([]int{}))
}

func TestPointsUnit(t *testing.T) {
	assert.Equal(t, "point", pointsUnit(1))
	assert.Equal(t, "point", pointsUnit(-1))
	assert.Equal(t, "points", pointsUnit(0))
	assert.Equal(t, "points", pointsUnit(2))
	assert.Equal(t, "points", pointsUnit(-3))
}
