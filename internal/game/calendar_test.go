package game

import (
	"math/rand"
	"testing"

	"github.com/whalegame/whalegame/internal/news"
)

func TestNewCalendarSchedulesRecurringEvents(t *testing.T) {
	c := NewCalendar(rand.New(rand.NewSource(1)))

	counts := map[news.Impact]int{}
	for _, ev := range c.Upcoming() {
		counts[ev.Impact]++
		if ev.Day < 1 || ev.Day > 1+calendarHorizonDays {
			t.Errorf("event %q scheduled on day %d, outside the horizon", ev.Title, ev.Day)
		}
		if ev.Direction != news.SentimentBullish && ev.Direction != news.SentimentBearish {
			t.Errorf("event %q has no rolled direction", ev.Title)
		}
	}
	// 60-day horizon: weekly, biweekly and monthly cadences.
	if counts[news.ImpactLow] < 8 {
		t.Errorf("weekly events = %d, want at least 8", counts[news.ImpactLow])
	}
	if counts[news.ImpactMedium] < 4 {
		t.Errorf("biweekly events = %d, want at least 4", counts[news.ImpactMedium])
	}
	if counts[news.ImpactHigh] < 2 {
		t.Errorf("monthly events = %d, want at least 2", counts[news.ImpactHigh])
	}
}

func TestDuePopsOnlyArrivedEvents(t *testing.T) {
	c := NewCalendar(rand.New(rand.NewSource(2)))

	if due := c.Due(6); len(due) != 0 {
		t.Fatalf("Due(6) = %d events, want 0", len(due))
	}
	due := c.Due(7)
	if len(due) != 1 || due[0].Day != 7 {
		t.Fatalf("Due(7) = %+v, want the single day-7 release", due)
	}
	if again := c.Due(7); len(again) != 0 {
		t.Error("day-7 event delivered twice")
	}
}

func TestDueExtendsTheHorizon(t *testing.T) {
	c := NewCalendar(rand.New(rand.NewSource(3)))
	first := c.lastDay

	c.Due(first - 10)
	if c.lastDay <= first {
		t.Fatalf("horizon not extended: lastDay still %d", c.lastDay)
	}
}

func TestDirectionIsRolledAtScheduling(t *testing.T) {
	c := NewCalendar(rand.New(rand.NewSource(4)))

	before := map[string]news.Sentiment{}
	for _, ev := range c.Upcoming() {
		before[ev.ID] = ev.Direction
	}
	for _, ev := range c.Due(30) {
		if before[ev.ID] != ev.Direction {
			t.Errorf("event %s changed direction between scheduling and firing", ev.ID)
		}
	}
}
