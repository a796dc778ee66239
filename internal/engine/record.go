package engine

import (
	"fmt"
	"slices"
	"strings"

	"github.com/tartampluch/go-addressbook/internal/config"
)

// Record is one contact: a name, an ordered phone list and an optional birthday.
// Duplicate phones are kept.
type Record struct {
	name     Name
	phones   []Phone
	birthday *Birthday
}

// NewRecord creates a Record with no phones and no birthday.
func NewRecord(name string) (*Record, error) {
	n, err := NewName(name)
	if err != nil {
		return nil, err
	}
	return &Record{name: n}, nil
}

// Name returns the contact name.
func (r *Record) Name() string { return r.name.String() }

// Phones returns a copy of the phone list.
func (r *Record) Phones() []Phone { return slices.Clone(r.phones) }

// Birthday returns the birthday and whether it is set.
func (r *Record) Birthday() (Birthday, bool) {
	if r.birthday == nil {
		return Birthday{}, false
	}
	return *r.birthday, true
}

// AddPhone appends p.
func (r *Record) AddPhone(p Phone) {
	r.phones = append(r.phones, p)
}

// RemovePhone drops every phone equal to value. Missing values are ignored.
func (r *Record) RemovePhone(value string) {
	r.phones = slices.DeleteFunc(r.phones, func(p Phone) bool {
		return p.String() == value
	})
}

// EditPhone replaces old with newValue.
// newValue is validated first; on failure the record is unchanged.
// When old is not present the new phone is still appended.
func (r *Record) EditPhone(old, newValue string) error {
	p, err := NewPhone(newValue)
	if err != nil {
		return err
	}
	r.RemovePhone(old)
	r.AddPhone(p)
	return nil
}

// FindPhone returns the first phone equal to value.
func (r *Record) FindPhone(value string) (Phone, bool) {
	for _, p := range r.phones {
		if p.String() == value {
			return p, true
		}
	}
	return Phone{}, false
}

// AddBirthday sets the birthday, replacing any previous one.
func (r *Record) AddBirthday(b Birthday) {
	r.birthday = &b
}

// PhoneList joins the phone values with config.PhoneSeparator.
func (r *Record) PhoneList() string {
	values := make([]string, len(r.phones))
	for i, p := range r.phones {
		values[i] = p.String()
	}
	return strings.Join(values, config.PhoneSeparator)
}

// String renders the record on one line.
func (r *Record) String() string {
	bday := config.BirthdayNotSet
	if b, ok := r.Birthday(); ok {
		bday = b.String()
	}
	return fmt.Sprintf(config.RecordFormat, r.Name(), r.PhoneList(), bday)
}
