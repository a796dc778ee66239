package ui

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-addressbook/internal/config"
	"github.com/tartampluch/go-addressbook/internal/engine"
)

// -----------------------------------------------------------------------------
// Mocks
// -----------------------------------------------------------------------------

// ScriptedConsole replays input lines and records every printed message.
type ScriptedConsole struct {
	Lines  []string
	Output []string
	Err    error // returned once Lines are exhausted; defaults to io.EOF
}

func (c *ScriptedConsole) PrintMessage(msg string) {
	c.Output = append(c.Output, msg)
}

func (c *ScriptedConsole) ReadLine() (string, error) {
	if len(c.Lines) == 0 {
		if c.Err != nil {
			return "", c.Err
		}
		return "", io.EOF
	}
	line := c.Lines[0]
	c.Lines = c.Lines[1:]
	return line, nil
}

// MockStore simulates store.Store using testify/mock.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Load(ctx context.Context) (*engine.AddressBook, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*engine.AddressBook), args.Error(1)
}

func (m *MockStore) Save(ctx context.Context, book *engine.AddressBook) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

// MockClock controls time for deterministic testing.
type MockClock struct {
	CurrentTime time.Time
}

func (m MockClock) Now() time.Time {
	return m.CurrentTime
}

// -----------------------------------------------------------------------------
// Test Setup Helper
// -----------------------------------------------------------------------------

// Monday June 10th, 2024.
var testToday = time.Date(2024, time.June, 10, 9, 0, 0, 0, time.UTC)

func setupTestApp(t *testing.T, lang string, lines ...string) (*AddressBookApp, *ScriptedConsole) {
	t.Helper()
	console := &ScriptedConsole{Lines: lines}
	app := NewAddressBookApp(engine.NewAddressBook(), console, NewTranslator(lang), nil)
	app.Clock = MockClock{CurrentTime: testToday}
	return app, console
}

// runSession executes the script and returns the output between welcome and goodbye.
func runSession(t *testing.T, lines ...string) ([]string, *AddressBookApp) {
	t.Helper()
	app, console := setupTestApp(t, config.DefaultLanguage, lines...)
	require.NoError(t, app.Run(context.Background()))

	require.GreaterOrEqual(t, len(console.Output), 2)
	assert.Equal(t, "Welcome to the assistant bot!", console.Output[0])
	assert.Equal(t, "Good bye!", console.Output[len(console.Output)-1])
	return console.Output[1 : len(console.Output)-1], app
}

// -----------------------------------------------------------------------------
// Tests
// -----------------------------------------------------------------------------

func TestParseInput(t *testing.T) {
	tests := []struct {
		line     string
		wantCmd  string
		wantArgs []string
	}{
		{"", "", nil},
		{"   ", "", nil},
		{"hello", "hello", []string{}},
		{"HELLO", "hello", []string{}},
		{"add John 1234567890", "add", []string{"John", "1234567890"}},
		{"add birthday John 01.01.1990", "add birthday", []string{"John", "01.01.1990"}},
		{"Add Birthday John 01.01.1990", "add birthday", []string{"John", "01.01.1990"}},
		{"change phone John 1234567890", "change phone", []string{"John", "1234567890"}},
		{"show birthday John", "show birthday", []string{"John"}},
		{"add phone John 1234567890", "add phone", []string{"John", "1234567890"}},
		{"remove phone John 1234567890", "remove phone", []string{"John", "1234567890"}},
		{"change birthday John", "change", []string{"birthday", "John"}},
		{"  phone   John  ", "phone", []string{"John"}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			cmd, args := parseInput(tt.line)
			assert.Equal(t, tt.wantCmd, cmd)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestRun_Transcripts(t *testing.T) {
	tests := []struct {
		name   string
		script []string
		want   []string
	}{
		{
			name:   "hello",
			script: []string{"hello"},
			want:   []string{"How can I help you"},
		},
		{
			name:   "blank lines are ignored",
			script: []string{"", "   ", "hello"},
			want:   []string{"How can I help you"},
		},
		{
			name:   "unknown command",
			script: []string{"dance", "change birthday John 01.01.1990"},
			want:   []string{"Invalid command.", "Invalid command."},
		},
		{
			name:   "add and show phone",
			script: []string{"add John 1234567890", "phone John"},
			want: []string{
				"Contact John with phone 1234567890 added.",
				"Phone number for John: 1234567890",
			},
		},
		{
			name:   "add usage",
			script: []string{"add John"},
			want:   []string{"Usage: add [name] [phone number]"},
		},
		{
			name:   "add rejects bad phone",
			script: []string{"add John 12345"},
			want:   []string{"Phone number must contain 10 digits."},
		},
		{
			name:   "phone usage and not found",
			script: []string{"phone", "phone Ghost"},
			want:   []string{"Usage: phone [name]", "Contact Ghost not found."},
		},
		{
			name: "change phone",
			script: []string{
				"add John 1111111111",
				"change phone John 2222222222",
				"phone John",
			},
			want: []string{
				"Contact John with phone 1111111111 added.",
				"Phone number for John changed from 1111111111 to 2222222222.",
				"Phone number for John: 2222222222",
			},
		},
		{
			name: "change phone errors",
			script: []string{
				"change phone John",
				"change phone Ghost 2222222222",
				"add John 1111111111",
				"change phone John abc",
			},
			want: []string{
				"Usage: change phone [name] [new phone number]",
				"Contact Ghost not found.",
				"Contact John with phone 1111111111 added.",
				"Phone number must contain 10 digits.",
			},
		},
		{
			name: "change phone without phones",
			script: []string{
				"add John 1111111111",
				"remove phone John 1111111111",
				"change phone John 2222222222",
				"phone John",
			},
			want: []string{
				"Contact John with phone 1111111111 added.",
				"Phone 1111111111 removed for John.",
				"No phone number found for John.",
				"No phone number found for John.",
			},
		},
		{
			name: "add phone lists all numbers",
			script: []string{
				"add John 1111111111",
				"add phone John 2222222222",
				"add phone John 12",
				"phone John",
			},
			want: []string{
				"Contact John with phone 1111111111 added.",
				"Phone 2222222222 added for John.",
				"Phone number must contain 10 digits.",
				"Phone number for John: 1111111111; 2222222222",
			},
		},
		{
			name: "birthday lifecycle",
			script: []string{
				"add John 1111111111",
				"show birthday John",
				"add birthday John 31.02.1990",
				"add birthday John 12.06.1990",
				"show birthday John",
			},
			want: []string{
				"Contact John with phone 1111111111 added.",
				"No birthday set for John.",
				"Invalid date format. Use DD.MM.YYYY",
				"Birthday added for John.",
				"John birthday is on 12.06.1990.",
			},
		},
		{
			name: "birthday usage and not found",
			script: []string{
				"add birthday John",
				"add birthday Ghost 12.06.1990",
				"show birthday",
				"show birthday Ghost",
			},
			want: []string{
				"Usage: add birthday [name] [birthdaydate]",
				"Contact Ghost not found.",
				"Usage: show birthday [name]",
				"Contact Ghost not found.",
			},
		},
		{
			name:   "all on empty book",
			script: []string{"all"},
			want:   []string{"No contacts found."},
		},
		{
			name: "all lists in insertion order",
			script: []string{
				"add Zed 1111111111",
				"add Amy 2222222222",
				"add birthday Amy 01.01.1990",
				"all",
			},
			want: []string{
				"Contact Zed with phone 1111111111 added.",
				"Contact Amy with phone 2222222222 added.",
				"Birthday added for Amy.",
				"All contacts:",
				"Contact name: Zed, phones: 1111111111, birthday: Not Set",
				"Contact name: Amy, phones: 2222222222, birthday: 01.01.1990",
			},
		},
		{
			name: "upcoming birthdays",
			script: []string{
				"add Sat 1111111111",
				"add birthday Sat 15.06.1990",
				"add Far 2222222222",
				"add birthday Far 30.06.1990",
				"birthdays",
			},
			want: []string{
				"Contact Sat with phone 1111111111 added.",
				"Birthday added for Sat.",
				"Contact Far with phone 2222222222 added.",
				"Birthday added for Far.",
				"Upcoming birthdays for next week:",
				"Sat birthday is on 17.06.2024.",
			},
		},
		{
			name:   "no upcoming birthdays",
			script: []string{"birthdays"},
			want:   []string{"No upcoming birthdays for next week."},
		},
		{
			name: "delete",
			script: []string{
				"add John 1111111111",
				"delete John",
				"delete John",
				"delete",
				"all",
			},
			want: []string{
				"Contact John with phone 1111111111 added.",
				"Contact John deleted.",
				"Contact John not found.",
				"Usage: delete [name]",
				"No contacts found.",
			},
		},
		{
			name:   "commands after exit are not read",
			script: []string{"hello", "exit", "hello"},
			want:   []string{"How can I help you"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := runSession(t, tt.script...)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRun_Help(t *testing.T) {
	got, _ := runSession(t, "help")

	require.Len(t, got, len(config.HelpKeys))
	assert.Equal(t, "List of available commands:", got[0])
	assert.Contains(t, got, "exit: Save data and exit the application.")
}

func TestRun_AddOverwritesContact(t *testing.T) {
	_, app := runSession(t, "add John 1111111111", "add John 2222222222")

	rec, ok := app.Book.Find("John")
	require.True(t, ok)
	assert.Equal(t, "2222222222", rec.PhoneList())
	assert.Equal(t, 1, app.Book.Len())
}

func TestRun_SavesOnExit(t *testing.T) {
	for _, cmd := range []string{"exit", "close", "EXIT"} {
		t.Run(cmd, func(t *testing.T) {
			app, _ := setupTestApp(t, config.DefaultLanguage, "add John 1111111111", cmd)
			st := new(MockStore)
			st.On("Save", mock.Anything, app.Book).Return(nil).Once()
			app.Store = st

			require.NoError(t, app.Run(context.Background()))
			st.AssertExpectations(t)
			assert.Equal(t, 1, app.Book.Len())
		})
	}
}

func TestRun_SavesOnEOF(t *testing.T) {
	app, console := setupTestApp(t, config.DefaultLanguage, "hello")
	st := new(MockStore)
	st.On("Save", mock.Anything, app.Book).Return(nil).Once()
	app.Store = st

	require.NoError(t, app.Run(context.Background()))
	st.AssertExpectations(t)
	assert.Equal(t, "Good bye!", console.Output[len(console.Output)-1])
}

func TestRun_SaveErrorPropagates(t *testing.T) {
	app, _ := setupTestApp(t, config.DefaultLanguage, "exit")
	st := new(MockStore)
	saveErr := errors.New("disk full")
	st.On("Save", mock.Anything, app.Book).Return(saveErr)
	app.Store = st

	assert.ErrorIs(t, app.Run(context.Background()), saveErr)
}

func TestRun_ConsoleErrorSavesAndReturns(t *testing.T) {
	app, console := setupTestApp(t, config.DefaultLanguage)
	readErr := errors.New("broken pipe")
	console.Err = readErr
	st := new(MockStore)
	st.On("Save", mock.Anything, app.Book).Return(nil).Once()
	app.Store = st

	assert.ErrorIs(t, app.Run(context.Background()), readErr)
	st.AssertExpectations(t)
}

func TestRun_CancelledContextStillSaves(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	app, _ := setupTestApp(t, config.DefaultLanguage, "hello")
	st := new(MockStore)
	st.On("Save", mock.MatchedBy(func(c context.Context) bool { return c.Err() == nil }), app.Book).Return(nil).Once()
	app.Store = st

	require.NoError(t, app.Run(ctx))
	st.AssertExpectations(t)
}

func TestGuard_UnknownErrorIsGeneric(t *testing.T) {
	app, console := setupTestApp(t, config.DefaultLanguage)

	app.guard("boom", func([]string) error { return errors.New("unexpected") }, nil)
	assert.Equal(t, []string{"An error occurred. Please try again."}, console.Output)
}

func TestGuard_WrappedErrors(t *testing.T) {
	app, console := setupTestApp(t, config.DefaultLanguage)

	app.guard("x", func([]string) error {
		return errors.Join(errors.New("context"), &engine.NotFoundError{Name: "Ann"})
	}, nil)
	app.guard("x", func([]string) error {
		return errors.Join(errors.New("context"), engine.NewUsageError(config.TKeyUsagePhone))
	}, nil)

	assert.Equal(t, []string{"Contact Ann not found.", "Usage: phone [name]"}, console.Output)
}

func TestRun_FrenchLocale(t *testing.T) {
	app, console := setupTestApp(t, "fr", "hello", "phone Ghost", "dance")
	require.NoError(t, app.Run(context.Background()))

	assert.Equal(t, []string{
		"Bienvenue dans l'assistant !",
		"Comment puis-je vous aider ?",
		"Contact Ghost introuvable.",
		"Commande invalide.",
		"Au revoir !",
	}, console.Output)
}
