// Package votescot implements a slack bot that lets team members vote each
// other's reputation up or down ("bob++"), query scores, render a leaderboard
// and search curated library lists. The pipeline resolves raw slack events
// into validated commands, caches slack rosters in a persistent brain with
// on-demand refresh and keeps score updates race-free.
package votescot
