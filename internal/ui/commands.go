package ui

import (
	"github.com/tartampluch/go-addressbook/internal/config"
	"github.com/tartampluch/go-addressbook/internal/engine"
)

type handlerFunc func(args []string) error

// commands maps every command name except close/exit to its handler.
func (app *AddressBookApp) commands() map[string]handlerFunc {
	if app.handlers == nil {
		app.handlers = map[string]handlerFunc{
			config.CmdHello:        app.handleHello,
			config.CmdAdd:          app.handleAdd,
			config.CmdAddPhone:     app.handleAddPhone,
			config.CmdRemovePhone:  app.handleRemovePhone,
			config.CmdChangePhone:  app.handleChangePhone,
			config.CmdPhone:        app.handlePhone,
			config.CmdAll:          app.handleAll,
			config.CmdAddBirthday:  app.handleAddBirthday,
			config.CmdShowBirthday: app.handleShowBirthday,
			config.CmdBirthdays:    app.handleBirthdays,
			config.CmdDelete:       app.handleDelete,
			config.CmdHelp:         app.handleHelp,
		}
	}
	return app.handlers
}

func (app *AddressBookApp) find(name string) (*engine.Record, error) {
	rec, ok := app.Book.Find(name)
	if !ok {
		return nil, &engine.NotFoundError{Name: name}
	}
	return rec, nil
}

func (app *AddressBookApp) handleHello(_ []string) error {
	app.say(config.TKeyHello, nil)
	return nil
}

// handleAdd creates (or replaces) a contact with a single phone.
func (app *AddressBookApp) handleAdd(args []string) error {
	if len(args) != 2 {
		return engine.NewUsageError(config.TKeyUsageAdd)
	}
	name, phone := args[0], args[1]

	rec, err := engine.NewRecord(name)
	if err != nil {
		return err
	}
	p, err := engine.NewPhone(phone)
	if err != nil {
		return err
	}
	rec.AddPhone(p)
	app.Book.AddRecord(rec)

	app.say(config.TKeyContactAdded, map[string]any{"Name": name, "Phone": phone})
	return nil
}

func (app *AddressBookApp) handleAddPhone(args []string) error {
	if len(args) != 2 {
		return engine.NewUsageError(config.TKeyUsageAddPhone)
	}
	name, phone := args[0], args[1]

	rec, err := app.find(name)
	if err != nil {
		return err
	}
	p, err := engine.NewPhone(phone)
	if err != nil {
		return err
	}
	rec.AddPhone(p)

	app.say(config.TKeyPhoneAdded, map[string]any{"Name": name, "Phone": phone})
	return nil
}

func (app *AddressBookApp) handleRemovePhone(args []string) error {
	if len(args) != 2 {
		return engine.NewUsageError(config.TKeyUsageRemovePhone)
	}
	name, phone := args[0], args[1]

	rec, err := app.find(name)
	if err != nil {
		return err
	}
	rec.RemovePhone(phone)

	app.say(config.TKeyPhoneRemoved, map[string]any{"Name": name, "Phone": phone})
	return nil
}

// handleChangePhone replaces the contact's first phone with a new one.
func (app *AddressBookApp) handleChangePhone(args []string) error {
	if len(args) != 2 {
		return engine.NewUsageError(config.TKeyUsageChangePhone)
	}
	name, newPhone := args[0], args[1]

	rec, err := app.find(name)
	if err != nil {
		return err
	}
	phones := rec.Phones()
	if len(phones) == 0 {
		app.say(config.TKeyNoPhone, map[string]any{"Name": name})
		return nil
	}
	oldPhone := phones[0].String()
	if err := rec.EditPhone(oldPhone, newPhone); err != nil {
		return err
	}

	app.say(config.TKeyPhoneChanged, map[string]any{"Name": name, "Old": oldPhone, "New": newPhone})
	return nil
}

func (app *AddressBookApp) handlePhone(args []string) error {
	if len(args) != 1 {
		return engine.NewUsageError(config.TKeyUsagePhone)
	}
	name := args[0]

	rec, err := app.find(name)
	if err != nil {
		return err
	}
	if len(rec.Phones()) == 0 {
		app.say(config.TKeyNoPhone, map[string]any{"Name": name})
		return nil
	}

	app.say(config.TKeyPhoneIs, map[string]any{"Name": name, "Phones": rec.PhoneList()})
	return nil
}

func (app *AddressBookApp) handleAll(_ []string) error {
	records := app.Book.Records()
	if len(records) == 0 {
		app.say(config.TKeyAllEmpty, nil)
		return nil
	}

	app.say(config.TKeyAllHeader, nil)
	for _, rec := range records {
		app.say(config.TKeyRecordLine, app.recordData(rec))
	}
	return nil
}

func (app *AddressBookApp) recordData(rec *engine.Record) map[string]any {
	birthday := app.Tr.Msg(config.TKeyBirthdayNotSet)
	if b, ok := rec.Birthday(); ok {
		birthday = b.String()
	}
	return map[string]any{
		"Name":     rec.Name(),
		"Phones":   rec.PhoneList(),
		"Birthday": birthday,
	}
}

func (app *AddressBookApp) handleAddBirthday(args []string) error {
	if len(args) != 2 {
		return engine.NewUsageError(config.TKeyUsageAddBirthday)
	}
	name, date := args[0], args[1]

	rec, err := app.find(name)
	if err != nil {
		return err
	}
	b, err := engine.NewBirthday(date)
	if err != nil {
		return err
	}
	rec.AddBirthday(b)

	app.say(config.TKeyBirthdayAdded, map[string]any{"Name": name})
	return nil
}

func (app *AddressBookApp) handleShowBirthday(args []string) error {
	if len(args) != 1 {
		return engine.NewUsageError(config.TKeyUsageShowBirthday)
	}
	name := args[0]

	rec, err := app.find(name)
	if err != nil {
		return err
	}
	b, ok := rec.Birthday()
	if !ok {
		app.say(config.TKeyNoBirthday, map[string]any{"Name": name})
		return nil
	}

	app.say(config.TKeyBirthdayIs, map[string]any{"Name": name, "Date": b.String()})
	return nil
}

// handleBirthdays lists greeting dates inside the configured window.
func (app *AddressBookApp) handleBirthdays(_ []string) error {
	greetings := app.Book.UpcomingBirthdaysWithin(app.Clock.Now(), app.WindowDays)
	if len(greetings) == 0 {
		app.say(config.TKeyUpcomingNone, nil)
		return nil
	}

	app.say(config.TKeyUpcomingHeader, nil)
	for _, g := range greetings {
		app.say(config.TKeyBirthdayIs, map[string]any{"Name": g.Name, "Date": g.DateString()})
	}
	return nil
}

func (app *AddressBookApp) handleDelete(args []string) error {
	if len(args) != 1 {
		return engine.NewUsageError(config.TKeyUsageDelete)
	}
	name := args[0]

	if _, err := app.find(name); err != nil {
		return err
	}
	app.Book.Delete(name)

	app.say(config.TKeyContactDeleted, map[string]any{"Name": name})
	return nil
}

func (app *AddressBookApp) handleHelp(_ []string) error {
	for _, key := range config.HelpKeys {
		app.say(key, nil)
	}
	return nil
}
