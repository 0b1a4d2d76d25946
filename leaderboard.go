package votescot

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/alexandre-normand/votescot/brain"
	"golang.org/x/sync/errgroup"
)

const (
	noScoresMessage = "No scores yet"
	// placeholder name for scored users missing from the cached roster
	mysteryUser = "mystery"
	// distinct score values beyond this rank are cut from the report
	maxRankedScores = 10
	crownMark       = " 👑"
)

// sparks is the ramp used for the score distribution line, lowest to highest
var sparks = []rune("▁▂▃▄▅▆▇█")

// scoreEntry is one user's row on the leaderboard
type scoreEntry struct {
	username string
	points   int
}

// leaderboardReport renders the ranked report of all nonzero scores: a
// sparkline of the distinct score values followed by a monospaced numbered
// table. Negative totals stay on the board; untouched (zero) ones don't
func (d *Dispatcher) leaderboardReport(ctx context.Context) (report string, err error) {
	var scores map[string]int
	var users []brain.User

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		scores, err = d.brain.GetUserScores(gctx)
		return err
	})
	g.Go(func() (err error) {
		users, err = d.brain.GetUsers(gctx)
		return err
	})

	if err = g.Wait(); err != nil {
		return "", err
	}

	entries := make([]scoreEntry, 0, len(scores))
	for userID, points := range scores {
		if points == 0 {
			continue
		}

		username := mysteryUser
		if u := findUserByID(users, userID); u != nil {
			username = "@" + u.Name
		}

		entries = append(entries, scoreEntry{username: username, points: points})
	}

	if len(entries) == 0 {
		return noScoresMessage, nil
	}

	return renderLeaderboard(entries), nil
}

// renderLeaderboard groups entries into tie-groups by score, ranks the
// distinct scores descending and renders the report string
func renderLeaderboard(entries []scoreEntry) (report string) {
	tieGroups := make(map[int][]string)
	for _, e := range entries {
		tieGroups[e.points] = append(tieGroups[e.points], e.username)
	}

	points := make([]int, 0, len(tieGroups))
	for p, usernames := range tieGroups {
		// deterministic order within a tie-group
		sort.Strings(usernames)
		points = append(points, p)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(points)))

	if len(points) > maxRankedScores {
		points = points[:maxRankedScores]
	}

	var buffer bytes.Buffer
	buffer.WriteString(sparkline(points))
	buffer.WriteString("\n```")

	for i, p := range points {
		rank := fmt.Sprintf("%d.", i+1)

		for j, username := range tieGroups[p] {
			prefix := rank
			if j > 0 {
				prefix = strings.Repeat(" ", len(rank))
			}

			crown := ""
			if i == 0 && j == 0 {
				crown = crownMark
			}

			buffer.WriteString(fmt.Sprintf("%s %s: %d %s%s\n", prefix, username, p, pointsUnit(p), crown))
		}
	}

	buffer.WriteString("```")

	return buffer.String()
}

// sparkline renders the distribution of values on the 8-rune ramp, scaled
// between the minimum and maximum value
func sparkline(values []int) (line string) {
	if len(values) == 0 {
		return ""
	}

	min, max := values[0], values[0]
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	var b strings.Builder
	for _, v := range values {
		idx := 0
		if max > min {
			idx = (v - min) * (len(sparks) - 1) / (max - min)
		}

		b.WriteRune(sparks[idx])
	}

	return b.String()
}

// pointsUnit pluralizes based on magnitude: 1 and -1 read "point"
func pointsUnit(points int) (unit string) {
	if points == 1 || points == -1 {
		return "point"
	}

	return "points"
}
