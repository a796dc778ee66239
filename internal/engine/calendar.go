package engine

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/go-addressbook/internal/config"
)

// CalendarWriter renders the book's birthdays as an iCalendar feed.
type CalendarWriter struct {
	Clock Clock

	// ReminderTrigger is an ISO8601 duration (e.g. "-P1D"). Empty disables alarms.
	ReminderTrigger string

	// FormatSummary lets the caller localise event titles.
	FormatSummary func(name string) string
}

// Write encodes one all-day event per contact for the previous, current and
// next year and returns the number of contacts with a birthday.
func (c *CalendarWriter) Write(w io.Writer, book *AddressBook) (int, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	now := c.Clock.Now()
	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(now.UTC())

	withBday := 0
	for _, rec := range book.Records() {
		bday, ok := rec.Birthday()
		if !ok {
			continue
		}
		withBday++

		for _, e := range c.createEvents(rec, bday.Date(), now) {
			e.Props.Set(dtStampProp)
			cal.Children = append(cal.Children, e.Component)
		}
	}

	// An empty VCALENDAR is rejected by the encoder; emit the stub instead.
	if len(cal.Children) == 0 {
		if _, err := io.WriteString(w, config.StubVCalendar); err != nil {
			return 0, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
		}
		return 0, nil
	}

	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return 0, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	slog.Info(config.MsgCalendarGen,
		config.LogKeyComponent, config.CompCalendar,
		config.LogKeyCount, withBday)
	return withBday, nil
}

// createEvents generates events for CurrentYear-1, CurrentYear and CurrentYear+1,
// skipping years before the person was born.
func (c *CalendarWriter) createEvents(rec *Record, birthDate, now time.Time) []*ical.Event {
	currentYear := now.Year()
	targetYears := []int{currentYear - 1, currentYear, currentYear + 1}
	uidBase := recordUID(rec)

	summary := fmt.Sprintf(config.SummaryFormat, rec.Name())
	if c.FormatSummary != nil {
		summary = c.FormatSummary(rec.Name())
	}

	var events []*ical.Event
	for _, y := range targetYears {
		if y < birthDate.Year() {
			continue
		}

		event := ical.NewEvent()
		event.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatUID, uidBase, y, config.ICalDomain))
		event.Props.SetText(config.PropSummary, summary)

		// Feb 29 lands on March 1 in non-leap years, as in the birthday window.
		eventDate := time.Date(y, birthDate.Month(), birthDate.Day(), 0, 0, 0, 0, time.UTC)
		dtStartProp := ical.NewProp(config.PropDTStart)
		dtStartProp.SetDate(eventDate)
		event.Props.Set(dtStartProp)

		if c.ReminderTrigger != "" {
			addAlarm(event, c.ReminderTrigger, summary)
		}
		events = append(events, event)
	}
	return events
}

// addAlarm appends a DISPLAY alarm (notification) to the event.
func addAlarm(event *ical.Event, trigger, description string) {
	alarm := ical.NewComponent(config.ICalComponent)
	alarm.Props.SetText(config.PropAction, config.ICalAction)
	alarm.Props.SetText(config.PropDescription, description)

	// Set trigger manually to avoid a "VALUE=TEXT" param.
	triggerProp := ical.NewProp(config.PropTrigger)
	triggerProp.Value = trigger
	alarm.Props.Set(triggerProp)

	event.Children = append(event.Children, alarm)
}
