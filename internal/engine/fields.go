package engine

import (
	"strings"
	"time"

	"github.com/tartampluch/go-addressbook/internal/config"
)

// Field is implemented by every validated value stored on a Record.
type Field interface {
	String() string
}

// Name identifies a contact and keys the AddressBook.
type Name struct {
	value string
}

// NewName rejects empty or blank names.
func NewName(s string) (Name, error) {
	if strings.TrimSpace(s) == "" {
		return Name{}, &ValidationError{Field: "name", Value: s, MessageID: config.TKeyErrName}
	}
	return Name{value: s}, nil
}

func (n Name) String() string { return n.value }

// Phone is a number made of exactly config.PhoneDigits decimal digits.
type Phone struct {
	value string
}

// NewPhone validates s. Letters, punctuation and wrong lengths are rejected.
func NewPhone(s string) (Phone, error) {
	if len(s) != config.PhoneDigits || strings.IndexFunc(s, notDigit) >= 0 {
		return Phone{}, &ValidationError{Field: "phone", Value: s, MessageID: config.TKeyErrPhone}
	}
	return Phone{value: s}, nil
}

func (p Phone) String() string { return p.value }

func notDigit(r rune) bool {
	return r < '0' || r > '9'
}

// Birthday is a calendar date entered as DD.MM.YYYY.
type Birthday struct {
	date time.Time
}

// NewBirthday parses DD.MM.YYYY and rejects impossible dates such as 31.02.2020.
func NewBirthday(s string) (Birthday, error) {
	t, err := time.Parse(config.DateFormatBirthday, s)
	if err != nil {
		return Birthday{}, &ValidationError{Field: "birthday", Value: s, MessageID: config.TKeyErrBirthday}
	}
	return Birthday{date: t}, nil
}

// BirthdayFromDate keeps only the calendar date of t.
func BirthdayFromDate(t time.Time) Birthday {
	return Birthday{date: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// Date returns the birth date at midnight UTC.
func (b Birthday) Date() time.Time { return b.date }

func (b Birthday) String() string { return b.date.Format(config.DateFormatBirthday) }
