package utils

import (
	"sort"
	"time"

	"github.com/petrepopa00/gurmaio/models"
)

const dateLayout = "2006-01-02"

// CalculateStreak derives streak info from an unordered DayProgress
// collection. Adjacency uses calendar-date arithmetic, so runs crossing
// month or year boundaries count. The current streak is only reported while
// the streak is still going: if the last completed date is older than
// yesterday (relative to now), current is 0 even though a historical run
// exists.
func CalculateStreak(progress []models.DayProgress, now time.Time) models.StreakInfo {
	info := models.StreakInfo{}
	if len(progress) == 0 {
		return info
	}

	seen := make(map[string]struct{}, len(progress))
	dates := make([]time.Time, 0, len(progress))
	for _, p := range progress {
		if _, dup := seen[p.Date]; dup {
			continue
		}
		d, err := time.Parse(dateLayout, p.Date)
		if err != nil {
			continue
		}
		seen[p.Date] = struct{}{}
		dates = append(dates, d)
	}
	if len(dates) == 0 {
		return info
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	longest, run := 1, 1
	for i := 1; i < len(dates); i++ {
		if dates[i-1].AddDate(0, 0, 1).Equal(dates[i]) {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}

	last := dates[len(dates)-1]
	lastStr := last.Format(dateLayout)
	info.LongestStreak = longest
	info.LastCompletedDate = &lastStr

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	yesterday := today.AddDate(0, 0, -1)
	info.StreakActive = last.Equal(today) || last.Equal(yesterday)
	if info.StreakActive {
		// run is the length of the run ending at the max date
		info.CurrentStreak = run
	}
	return info
}
