// Package timeline buckets session summaries into named recency groups
// for the chronological listing: Today, Last Week, This Month, then one
// group per earlier calendar month.
package timeline

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"retrace/internal/types"
)

const (
	LabelToday     = "Today"
	LabelLastWeek  = "Last Week"
	LabelThisMonth = "This Month"
)

// monthKeyOffset keeps month groups ordered most-recent-first after the
// three fixed buckets; it only has to exceed year*12+month for any real
// date.
const monthKeyOffset = 100000

// Group is one recency bucket. Sessions keep the caller's input order.
type Group struct {
	Label    string
	Sessions []types.SessionSummary
}

// Label assigns the group label for a session updated at the given time.
// All boundaries compare calendar dates, not elapsed hours; weeks start
// on Monday. Future timestamps fall through to their own month bucket.
func Label(now, updated time.Time) string {
	today := midnight(now)
	day := midnight(updated.In(now.Location()))
	// Round rather than truncate: a DST transition makes the gap between
	// two midnights 23 or 25 hours.
	diffDays := int(math.Round(today.Sub(day).Hours() / 24))

	if diffDays == 0 {
		return LabelToday
	}

	mondayThisWeek := today.AddDate(0, 0, -(weekdayFromMonday(today) - 1))
	mondayLastWeek := mondayThisWeek.AddDate(0, 0, -7)
	if !day.Before(mondayLastWeek) && day.Before(mondayThisWeek) {
		return LabelLastWeek
	}

	firstOfMonth := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
	if !day.Before(firstOfMonth) && day.Before(mondayLastWeek) {
		return LabelThisMonth
	}

	return monthLabel(day.Year(), int(day.Month()))
}

// SortKey orders group labels for display: the three fixed buckets first,
// then month groups most recent first.
func SortKey(label string) int {
	switch label {
	case LabelToday:
		return 0
	case LabelLastWeek:
		return 1
	case LabelThisMonth:
		return 2
	}
	if year, month, ok := parseMonthLabel(label); ok {
		return monthKeyOffset - (year*12 + month)
	}
	return monthKeyOffset * 10
}

// GroupSessions buckets sessions by Label and returns groups in display
// order. Within a group, input order is preserved; callers pre-sort by
// recency when they want newest first.
func GroupSessions(now time.Time, sessions []types.SessionSummary) []Group {
	byLabel := map[string]int{}
	var groups []Group
	for _, session := range sessions {
		label := Label(now, session.UpdatedAt)
		idx, ok := byLabel[label]
		if !ok {
			idx = len(groups)
			byLabel[label] = idx
			groups = append(groups, Group{Label: label})
		}
		groups[idx].Sessions = append(groups[idx].Sessions, session)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return SortKey(groups[i].Label) < SortKey(groups[j].Label)
	})
	return groups
}

func monthLabel(year, month int) string {
	return fmt.Sprintf("%d-%d", year, month)
}

func parseMonthLabel(label string) (year, month int, ok bool) {
	dash := strings.IndexByte(label, '-')
	if dash <= 0 || dash+1 >= len(label) {
		return 0, 0, false
	}
	year, err := strconv.Atoi(label[:dash])
	if err != nil {
		return 0, 0, false
	}
	month, err = strconv.Atoi(label[dash+1:])
	if err != nil || month < 1 || month > 12 {
		return 0, 0, false
	}
	return year, month, true
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// weekdayFromMonday maps Monday..Sunday to 1..7.
func weekdayFromMonday(t time.Time) int {
	weekday := int(t.Weekday())
	if weekday == 0 {
		return 7
	}
	return weekday
}
