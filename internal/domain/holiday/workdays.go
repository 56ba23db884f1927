package holiday

import (
	"time"

	"github.com/rickar/cal/v2"

	"github.com/deskhub/deskhub/internal/shared/biztime"
)

// WorkingDays counts the days in [start, end] that are neither weekend days
// nor listed days off. A day off falling on a weekend is not counted twice.
func WorkingDays(start, end time.Time, daysoff []*Daysoff) int {
	c := cal.NewBusinessCalendar()
	for _, d := range daysoff {
		date, err := biztime.ParseDate(d.Date())
		if err != nil {
			continue
		}
		c.AddHoliday(&cal.Holiday{
			Name:      d.Name(),
			Type:      cal.ObservancePublic,
			Month:     date.Month(),
			Day:       date.Day(),
			StartYear: date.Year(),
			EndYear:   date.Year(),
			Func:      cal.CalcDayOfMonth,
		})
	}

	start = biztime.StartOfDay(start)
	end = biztime.StartOfDay(end)

	days := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if c.IsWorkday(d) {
			days++
		}
	}
	return days
}
