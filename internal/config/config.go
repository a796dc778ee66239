package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName         = "Address Book"
	AppCommand      = "addressbook"
	AppID           = "com.github.tartampluch.go-addressbook"
	LogFileName     = "app.log"
	SettingsFile    = "addressbook.yaml"
	DefaultDataFile = "addressbook.db"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	// Used for the data snapshot and logs.
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	// StoreOpenTimeout bounds how long bbolt waits for the file lock.
	StoreOpenTimeout = 1 * time.Second
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion = "version"
	FlagDebug   = "debug"
	FlagConfig  = "config"
	FlagData    = "data"
	FlagDriver  = "driver"
	FlagLang    = "lang"
	FlagDays    = "days"

	FlagDescVersion = "Show application version and exit"
	FlagDescDebug   = "Enable debug logging to stderr"
	FlagDescConfig  = "Path to the YAML settings file"
	FlagDescData    = "Path to the address book data file"
	FlagDescDriver  = "Storage driver (bolt or sqlite)"
	FlagDescLang    = "Console language (en, fr)"
	FlagDescDays    = "Size of the upcoming birthday window in days"

	CmdUseExport   = "export <file.vcf>"
	CmdUseImport   = "import <file.vcf>"
	CmdUseCalendar = "calendar <file.ics>"
	CmdUseUpcoming = "upcoming"

	CmdShortRoot     = "Interactive contact manager with birthday reminders"
	CmdShortExport   = "Export all contacts to a vCard file"
	CmdShortImport   = "Import contacts from a vCard file"
	CmdShortCalendar = "Write an iCalendar file with every known birthday"
	CmdShortUpcoming = "Print birthdays in the coming window and exit"

	MsgVersionOutput = "%s version %s (%s) built %s (%s/%s)\n"
	MsgExported      = "Exported %d contacts to %s\n"
	MsgImported      = "Imported %d contacts from %s\n"
	MsgCalendarDone  = "Wrote %d birthdays to %s\n"
)

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	DriverBolt   = "bolt"
	DriverSQLite = "sqlite"

	DefaultDriver     = DriverBolt
	DefaultLanguage   = "en"
	DefaultWindowDays = 7
	MaxWindowDays     = 366

	// PhoneDigits is the exact length of a valid phone number.
	PhoneDigits = 10

	// DefaultLeapYear is used for vCard birthdays without a year (--MM-DD).
	DefaultLeapYear = 2000

	UIDSalt = "go-addressbook-v1-"
)

// SupportedLanguages defines the list of available console languages (ISO 639-1).
var SupportedLanguages = []string{"en", "fr"}

// -----------------------------------------------------------------------------
// Environment Overrides
// -----------------------------------------------------------------------------

const (
	EnvData       = "ADDRESSBOOK_DATA"
	EnvDriver     = "ADDRESSBOOK_DRIVER"
	EnvLang       = "ADDRESSBOOK_LANG"
	EnvWindowDays = "ADDRESSBOOK_WINDOW_DAYS"
)

// -----------------------------------------------------------------------------
// Data Formats
// -----------------------------------------------------------------------------

const (
	// DateFormatBirthday is the user-facing DD.MM.YYYY layout.
	DateFormatBirthday = "02.01.2006"

	// Date layouts used for parsing vCard BDAY fields
	DateFormatFullDash  = "2006-01-02"
	DateFormatFullBasic = "20060102"
	DateFormatRFC3339   = time.RFC3339
	DateFormatFullT     = "2006-01-02T15:04:05Z"
	DateFormatNoYearD   = "--01-02"
	DateFormatNoYearB   = "--0102"

	// RecordFormat renders a Record: name, phones, birthday.
	RecordFormat   = "Contact name: %s, phones: %s, birthday: %s"
	PhoneSeparator = "; "
	BirthdayNotSet = "Not Set"

	// UID Generation
	UIDHashLength   = 16
	FormatHashInput = "%s|%s|%s"
	FormatUID       = "%s-%d@%s"
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	ICalVersion   = "2.0"
	ICalProdid    = "-//Go Address Book//Engine//EN"
	ICalCalName   = "Birthdays"
	ICalMethod    = "PUBLISH"
	ICalScale     = "GREGORIAN"
	ICalComponent = "VALARM"
	ICalAction    = "DISPLAY"
	ICalDomain    = "goaddressbook"

	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDTStart     = "DTSTART"
	PropDTStamp     = "DTSTAMP"
	PropAction      = "ACTION"
	PropDescription = "DESCRIPTION"
	PropTrigger     = "TRIGGER"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"

	VCardVersion = "4.0"

	SummaryFormat = "Birthday: %s"

	// StubVCalendar is the minimal valid iCalendar object used when no birthdays are known.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"
)

// -----------------------------------------------------------------------------
// Storage
// -----------------------------------------------------------------------------

const (
	BoltBucketContacts = "contacts"

	SQLiteDriverName  = "sqlite"
	SQLiteCreateTable = `CREATE TABLE IF NOT EXISTS contacts (
	position INTEGER PRIMARY KEY,
	name     TEXT NOT NULL UNIQUE,
	phones   TEXT NOT NULL,
	birthday TEXT NOT NULL DEFAULT ''
)`
	SQLiteDeleteAll = `DELETE FROM contacts`
	SQLiteInsert    = `INSERT INTO contacts (position, name, phones, birthday) VALUES (?, ?, ?, ?)`
	SQLiteSelectAll = `SELECT name, phones, birthday FROM contacts ORDER BY position`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrValidation      = "validation failed"
	ErrNotFound        = "contact not found"
	ErrStoreOpen       = "failed to open data file"
	ErrStoreLoad       = "failed to load address book"
	ErrStoreSave       = "failed to save address book"
	ErrStoreDecode     = "corrupt contact entry"
	ErrDriverUnsupport = "configuration error: unsupported storage driver"
	ErrSettingsRead    = "failed to read settings"
	ErrSettingsParse   = "failed to parse settings"
	ErrSettingsInvalid = "invalid settings"
	ErrVCardParse      = "failed to parse vCard stream"
	ErrVCardEncode     = "failed to encode vCard data"
	ErrICalEncode      = "failed to encode iCalendar data"
	ErrDateParse       = "unable to parse date"
	ErrLogFile         = "failed to open log file"
	ErrCacheDir        = "could not determine user cache dir"
	ErrCreateDir       = "could not create app cache dir"
	ErrAppFailed       = "application failed unexpectedly"
	ErrConsoleRead     = "failed to read console input"
	ErrLocalesAccess   = "failed to access embedded locales"
	ErrLocaleLoad      = "failed to load locale file"
	ErrHandlerFailed   = "command handler failed"
)

// -----------------------------------------------------------------------------
// Log Messages
// -----------------------------------------------------------------------------

const (
	MsgAppStarting   = "Starting application"
	MsgAppStop       = "Application stopped gracefully"
	MsgBookLoaded    = "Address book loaded"
	MsgBookSaved     = "Address book saved"
	MsgBookMissing   = "No data file found, starting empty"
	MsgCommand       = "Command dispatched"
	MsgCtxCancel     = "Context cancelled, saving and leaving"
	MsgSkippedCard   = "Skipping malformed vCard"
	MsgSkippedDate   = "Skipping invalid date format"
	MsgSkippedPhone  = "Skipping invalid phone number"
	MsgImportDone    = "vCard import finished"
	MsgExportDone    = "vCard export finished"
	MsgCalendarGen   = "Calendar generation successful"
	MsgLocaleSkip    = "Skipping non-locale file"
	MsgLocaleBadName = "Skipping malformed locale filename"
	MsgLocaleLoaded  = "Locale loaded successfully"
	MsgTransMissing  = "Missing translation key"
	MsgLogWarning    = "Warning: %s at %s: %v\n"
	MsgLeapDay       = "Leap-day birthday observed on March 1"
	MsgSettings      = "Settings resolved"
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyWelcome      = "welcome"
	TKeyPrompt       = "prompt"
	TKeyGoodbye      = "goodbye"
	TKeyHello        = "hello"
	TKeyInvalidCmd   = "invalid_command"
	TKeyGenericError = "generic_error"

	// Usage lines (argument count errors)
	TKeyUsageAdd          = "usage_add"
	TKeyUsageAddBirthday  = "usage_add_birthday"
	TKeyUsageShowBirthday = "usage_show_birthday"
	TKeyUsageChangePhone  = "usage_change_phone"
	TKeyUsagePhone        = "usage_phone"
	TKeyUsageAddPhone     = "usage_add_phone"
	TKeyUsageRemovePhone  = "usage_remove_phone"
	TKeyUsageDelete       = "usage_delete"

	// Command results
	TKeyContactAdded    = "contact_added"     // Requires Name, Phone
	TKeyContactNotFound = "contact_not_found" // Requires Name
	TKeyContactDeleted  = "contact_deleted"   // Requires Name
	TKeyBirthdayAdded   = "birthday_added"    // Requires Name
	TKeyBirthdayIs      = "birthday_is"       // Requires Name, Date
	TKeyNoBirthday      = "no_birthday"       // Requires Name
	TKeyUpcomingHeader  = "upcoming_header"
	TKeyUpcomingNone    = "upcoming_none"
	TKeyPhoneChanged    = "phone_changed" // Requires Name, Old, New
	TKeyPhoneIs         = "phone_is"      // Requires Name, Phones
	TKeyNoPhone         = "no_phone"      // Requires Name
	TKeyPhoneAdded      = "phone_added"   // Requires Name, Phone
	TKeyPhoneRemoved    = "phone_removed" // Requires Name, Phone
	TKeyAllHeader       = "all_header"
	TKeyAllEmpty        = "all_empty"
	TKeyRecordLine      = "record_line" // Requires Name, Phones, Birthday
	TKeyBirthdayNotSet  = "birthday_not_set"
	TKeyEventSummary    = "event_summary" // Requires Name

	// Validation errors
	TKeyErrPhone    = "err_phone"
	TKeyErrBirthday = "err_birthday"
	TKeyErrName     = "err_name"

	// Help
	TKeyHelpHeader       = "help_header"
	TKeyHelpHello        = "help_hello"
	TKeyHelpAdd          = "help_add"
	TKeyHelpAddPhone     = "help_add_phone"
	TKeyHelpRemovePhone  = "help_remove_phone"
	TKeyHelpChangePhone  = "help_change_phone"
	TKeyHelpPhone        = "help_phone"
	TKeyHelpAll          = "help_all"
	TKeyHelpAddBirthday  = "help_add_birthday"
	TKeyHelpShowBirthday = "help_show_birthday"
	TKeyHelpBirthdays    = "help_birthdays"
	TKeyHelpDelete       = "help_delete"
	TKeyHelpExit         = "help_exit"
)

// HelpKeys lists the help lines in display order.
var HelpKeys = []string{
	TKeyHelpHeader,
	TKeyHelpHello,
	TKeyHelpAdd,
	TKeyHelpAddPhone,
	TKeyHelpRemovePhone,
	TKeyHelpChangePhone,
	TKeyHelpPhone,
	TKeyHelpAll,
	TKeyHelpAddBirthday,
	TKeyHelpShowBirthday,
	TKeyHelpBirthdays,
	TKeyHelpDelete,
	TKeyHelpExit,
}

// -----------------------------------------------------------------------------
// Console Commands
// -----------------------------------------------------------------------------

const (
	CmdHello         = "hello"
	CmdAdd           = "add"
	CmdAddBirthday   = "add birthday"
	CmdAddPhone      = "add phone"
	CmdRemovePhone   = "remove phone"
	CmdChangePhone   = "change phone"
	CmdPhone         = "phone"
	CmdAll           = "all"
	CmdShowBirthday  = "show birthday"
	CmdBirthdays     = "birthdays"
	CmdDelete        = "delete"
	CmdHelp          = "help"
	CmdClose         = "close"
	CmdExit          = "exit"
	CommandSeparator = " "
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyDriver    = "driver"
	LogKeyCommand   = "command"
	LogKeyArgs      = "args"
	LogKeyValue     = "value"
	LogKeyCount     = "count"
	LogKeyName      = "name"
	LogKeyDOB       = "date_of_birth"
	LogKeyDuration  = "duration_ms"
	LogKeyStats     = "stats"
	LogKeyTotal     = "total_cards"
	LogKeyFound     = "contacts_found"
	LogKeySkipped   = "skipped"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompUI       = "ui"
	CompEngine   = "engine"
	CompStore    = "store"
	CompVCard    = "vcard"
	CompCalendar = "calendar"
	CompMain     = "main"
	CompI18n     = "i18n"
	CompSettings = "settings"
)
