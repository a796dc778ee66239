package engine

import (
	"log/slog"
	"slices"
	"time"

	"github.com/tartampluch/go-addressbook/internal/config"
)

const hoursPerDay = 24

// AddressBook maps contact names to records and remembers insertion order.
// It is owned by a single goroutine and is not safe for concurrent use.
type AddressBook struct {
	records map[string]*Record
	order   []string
}

// NewAddressBook returns an empty book.
func NewAddressBook() *AddressBook {
	return &AddressBook{records: make(map[string]*Record)}
}

// AddRecord inserts r, replacing any record with the same name.
// A replaced record keeps its position in the listing order.
func (b *AddressBook) AddRecord(r *Record) {
	name := r.Name()
	if _, exists := b.records[name]; !exists {
		b.order = append(b.order, name)
	}
	b.records[name] = r
}

// Find returns the record for name. A missing name is not an error.
func (b *AddressBook) Find(name string) (*Record, bool) {
	r, ok := b.records[name]
	return r, ok
}

// Delete removes name if present.
func (b *AddressBook) Delete(name string) {
	if _, ok := b.records[name]; !ok {
		return
	}
	delete(b.records, name)
	b.order = slices.DeleteFunc(b.order, func(n string) bool { return n == name })
}

// Len returns the number of records.
func (b *AddressBook) Len() int { return len(b.order) }

// Records returns the records in insertion order.
func (b *AddressBook) Records() []*Record {
	out := make([]*Record, 0, len(b.order))
	for _, name := range b.order {
		out = append(out, b.records[name])
	}
	return out
}

// UpcomingBirthdays returns the greetings due within the next config.DefaultWindowDays days.
func (b *AddressBook) UpcomingBirthdays(today time.Time) []Greeting {
	return b.UpcomingBirthdaysWithin(today, config.DefaultWindowDays)
}

// UpcomingBirthdaysWithin lists every contact whose next birthday is between
// today and today+days inclusive, in insertion order. Weekend birthdays are
// greeted on the following Monday.
func (b *AddressBook) UpcomingBirthdaysWithin(today time.Time, days int) []Greeting {
	start := dateOnly(today)
	var out []Greeting

	for _, r := range b.Records() {
		bday, ok := r.Birthday()
		if !ok {
			continue
		}

		occurrence := nextOccurrence(start, bday.Date())
		until := int(occurrence.Sub(start).Hours() / hoursPerDay)
		if until < 0 || until > days {
			continue
		}

		out = append(out, Greeting{Name: r.Name(), Date: greetingDate(occurrence)})
	}
	return out
}

// nextOccurrence returns the birthday in today's year, or next year if it already passed.
// time.Date normalizes Feb 29 to March 1 in non-leap years.
func nextOccurrence(today, birthDate time.Time) time.Time {
	candidate := time.Date(today.Year(), birthDate.Month(), birthDate.Day(), 0, 0, 0, 0, time.UTC)
	if candidate.Before(today) {
		candidate = time.Date(today.Year()+1, birthDate.Month(), birthDate.Day(), 0, 0, 0, 0, time.UTC)
	}

	if candidate.Day() != birthDate.Day() {
		slog.Debug(config.MsgLeapDay,
			config.LogKeyComponent, config.CompEngine,
			config.LogKeyDOB, birthDate.Format(config.DateFormatBirthday))
	}
	return candidate
}

// greetingDate moves Saturday and Sunday to the following Monday.
func greetingDate(d time.Time) time.Time {
	switch d.Weekday() {
	case time.Saturday:
		return d.AddDate(0, 0, 2)
	case time.Sunday:
		return d.AddDate(0, 0, 1)
	default:
		return d
	}
}

// dateOnly drops the clock part of t, keeping its calendar date.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
