package engine

import (
	"time"

	"github.com/tartampluch/go-addressbook/internal/config"
)

// Greeting is one entry of the upcoming-birthday list.
type Greeting struct {
	// Name is the contact the greeting is for.
	Name string

	// Date is the day to congratulate: the birthday occurrence itself, or the
	// following Monday when the occurrence falls on a weekend.
	Date time.Time
}

// DateString formats Date as DD.MM.YYYY.
func (g Greeting) DateString() string {
	return g.Date.Format(config.DateFormatBirthday)
}
