package ui

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/tartampluch/go-addressbook/internal/config"
	"github.com/tartampluch/go-addressbook/internal/engine"
	"github.com/tartampluch/go-addressbook/internal/store"
)

// AddressBookApp owns the in-memory book for the lifetime of a REPL session.
type AddressBookApp struct {
	Book       *engine.AddressBook
	Console    Console
	Tr         *Translator
	Clock      engine.Clock // Injected clock for testability
	Store      store.Store  // Saved to on exit; nil disables persistence
	WindowDays int

	handlers map[string]handlerFunc
}

// NewAddressBookApp wires the session dependencies with production defaults.
func NewAddressBookApp(book *engine.AddressBook, console Console, tr *Translator, st store.Store) *AddressBookApp {
	return &AddressBookApp{
		Book:       book,
		Console:    console,
		Tr:         tr,
		Clock:      engine.RealClock{},
		Store:      st,
		WindowDays: config.DefaultWindowDays,
	}
}

type lineResult struct {
	line string
	err  error
}

// Run reads commands until close/exit, end of input, or ctx cancellation,
// then saves the book. Handler failures are reported and never end the loop.
func (app *AddressBookApp) Run(ctx context.Context) error {
	app.say(config.TKeyWelcome, nil)

	for {
		line, err := app.readLine(ctx)
		if err != nil {
			if ctx.Err() != nil {
				slog.Info(config.MsgCtxCancel, config.LogKeyComponent, config.CompUI)
				return app.shutdown(ctx)
			}
			if errors.Is(err, io.EOF) {
				return app.shutdown(ctx)
			}
			if saveErr := app.shutdown(ctx); saveErr != nil {
				return errors.Join(err, saveErr)
			}
			return err
		}

		cmd, args := parseInput(line)
		switch cmd {
		case "":
			continue
		case config.CmdClose, config.CmdExit:
			return app.shutdown(ctx)
		}
		app.dispatch(cmd, args)
	}
}

// readLine waits for one console line without blocking ctx cancellation.
func (app *AddressBookApp) readLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ch := make(chan lineResult, 1)
	go func() {
		line, err := app.Console.ReadLine()
		ch <- lineResult{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		return res.line, res.err
	}
}

func (app *AddressBookApp) shutdown(ctx context.Context) error {
	app.say(config.TKeyGoodbye, nil)
	if app.Store == nil {
		return nil
	}
	// The save must complete even when the session was interrupted.
	return app.Store.Save(context.WithoutCancel(ctx), app.Book)
}

func (app *AddressBookApp) dispatch(cmd string, args []string) {
	h, ok := app.commands()[cmd]
	if !ok {
		app.say(config.TKeyInvalidCmd, nil)
		return
	}

	slog.Debug(config.MsgCommand,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyCommand, cmd,
		config.LogKeyArgs, len(args),
	)
	app.guard(cmd, h, args)
}

// guard runs h and turns its error into a console message.
func (app *AddressBookApp) guard(cmd string, h handlerFunc, args []string) {
	err := h(args)
	if err == nil {
		return
	}

	var vErr *engine.ValidationError
	var nfErr *engine.NotFoundError
	switch {
	case errors.As(err, &vErr):
		app.say(vErr.MessageID, nil)
	case errors.As(err, &nfErr):
		app.say(config.TKeyContactNotFound, map[string]any{"Name": nfErr.Name})
	default:
		slog.Error(config.ErrHandlerFailed,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyCommand, cmd,
			config.LogKeyError, err,
		)
		app.say(config.TKeyGenericError, nil)
	}
}

func (app *AddressBookApp) say(key string, data map[string]any) {
	app.Console.PrintMessage(app.Tr.Msgf(key, data))
}

// twoWordCommands are recognised when their second word follows the first.
var twoWordCommands = map[string]bool{
	config.CmdAddBirthday:  true,
	config.CmdAddPhone:     true,
	config.CmdRemovePhone:  true,
	config.CmdChangePhone:  true,
	config.CmdShowBirthday: true,
}

// parseInput splits a line into a lower-cased command and its arguments.
// "add birthday John 01.01.1990" yields ("add birthday", ["John", "01.01.1990"]).
func parseInput(line string) (string, []string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}

	cmd := strings.ToLower(fields[0])
	args := fields[1:]
	if len(args) > 0 {
		joined := cmd + config.CommandSeparator + strings.ToLower(args[0])
		if twoWordCommands[joined] {
			return joined, args[1:]
		}
	}
	return cmd, args
}
