package game

import (
	"math/rand"
	"strconv"

	"github.com/whalegame/whalegame/internal/news"
)

// CalendarEvent is a scheduled macro release. Direction is rolled when
// the event is placed on the calendar, not when it fires, so a peek at
// the calendar state is a genuine forecast.
type CalendarEvent struct {
	ID        string
	Day       int
	Title     string
	Impact    news.Impact
	Direction news.Sentiment
	Applied   bool
}

// Calendar schedules the recurring macro events: weekly SEC data,
// biweekly rate expectations, monthly Fed decisions. It extends itself
// as game days approach the scheduled horizon.
type Calendar struct {
	events  []CalendarEvent
	lastDay int
	rng     *rand.Rand
}

const calendarHorizonDays = 60

// NewCalendar seeds the schedule from day 1.
func NewCalendar(rng *rand.Rand) *Calendar {
	c := &Calendar{rng: rng}
	c.generate(1)
	return c
}

// Upcoming returns the pending schedule, soonest first.
func (c *Calendar) Upcoming() []CalendarEvent {
	out := make([]CalendarEvent, len(c.events))
	copy(out, c.events)
	return out
}

// Due pops every event whose day has arrived, extending the schedule
// when the horizon runs short.
func (c *Calendar) Due(currentDay int) []CalendarEvent {
	if currentDay > c.lastDay-30 {
		c.generate(c.lastDay + 1)
	}

	var due []CalendarEvent
	kept := c.events[:0]
	for _, ev := range c.events {
		if currentDay >= ev.Day {
			if !ev.Applied {
				ev.Applied = true
				due = append(due, ev)
			}
			continue
		}
		kept = append(kept, ev)
	}
	c.events = kept
	return due
}

func (c *Calendar) generate(fromDay int) {
	roll := func() news.Sentiment {
		if c.rng.Float64() > 0.5 {
			return news.SentimentBullish
		}
		return news.SentimentBearish
	}

	for d := fromDay; d <= fromDay+calendarHorizonDays; d++ {
		if d%7 == 0 {
			c.events = append(c.events, CalendarEvent{
				ID: eventID("sec", d), Day: d,
				Title: "SEC Regulatory Data Release", Impact: news.ImpactLow, Direction: roll(),
			})
		}
		if d%14 == 0 {
			c.events = append(c.events, CalendarEvent{
				ID: eventID("rates", d), Day: d,
				Title: "Interest Rate Expectation Data", Impact: news.ImpactMedium, Direction: roll(),
			})
		}
		if d%30 == 0 {
			c.events = append(c.events, CalendarEvent{
				ID: eventID("fed", d), Day: d,
				Title: "Fed Interest Rate Decision", Impact: news.ImpactHigh, Direction: roll(),
			})
		}
	}
	c.lastDay = fromDay + calendarHorizonDays
}

func eventID(kind string, day int) string {
	return kind + "-" + strconv.Itoa(day)
}
