package models

import "time"

// HourSlot is one business hour on one calendar date, the unit of demand
// simulation.
type HourSlot struct {
	Date        time.Time
	Hour        int
	Weekday     time.Weekday
	IsWeekend   bool
	Weather     string
	Temperature float64
	Season      string
}

func NewHourSlot(date time.Time, hour int, weather string, temperature float64) HourSlot {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return HourSlot{
		Date:        day,
		Hour:        hour,
		Weekday:     day.Weekday(),
		IsWeekend:   IsWeekend(day),
		Weather:     weather,
		Temperature: temperature,
		Season:      SeasonOf(day.Month()),
	}
}

func (s HourSlot) Start() time.Time {
	return s.Date.Add(time.Duration(s.Hour) * time.Hour)
}

func (s HourSlot) DayType() string {
	if s.IsWeekend {
		return DayTypeWeekend
	}
	return DayTypeWeekday
}
