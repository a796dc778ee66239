package engine

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-addressbook/internal/config"
)

// ImportStats summarises a vCard import.
type ImportStats struct {
	Processed int // cards decoded
	Imported  int // records added to the book
	Skipped   int // cards without a usable name
}

// phoneSeparators are stripped from TEL values before validation.
var phoneSeparators = strings.NewReplacer(" ", "", "-", "", ".", "", "(", "", ")", "")

// ImportVCards decodes every card in r and adds it to book.
// A card with an existing name replaces that record. Unnamed cards and
// invalid phones or dates are logged and skipped; a stream that cannot be
// decoded stops the import with an error.
func ImportVCards(ctx context.Context, r io.Reader, book *AddressBook) (ImportStats, error) {
	var stats ImportStats
	log := slog.With(config.LogKeyComponent, config.CompVCard)
	decoder := vcard.NewDecoder(r)

	for {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// A broken stream cannot be resynchronised; keep what was read.
			log.Warn(config.MsgSkippedCard, config.LogKeyError, err)
			return stats, fmt.Errorf("%s: %w", config.ErrVCardParse, err)
		}
		stats.Processed++

		rec, err := recordFromCard(card, log)
		if err != nil {
			log.Warn(config.MsgSkippedCard, config.LogKeyError, err)
			stats.Skipped++
			continue
		}
		book.AddRecord(rec)
		stats.Imported++
	}

	log.Info(config.MsgImportDone,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyTotal, stats.Processed),
			slog.Int(config.LogKeyFound, stats.Imported),
			slog.Int(config.LogKeySkipped, stats.Skipped),
		),
	)
	return stats, nil
}

// recordFromCard builds a Record from FN (or N), every TEL and BDAY.
func recordFromCard(card vcard.Card, log *slog.Logger) (*Record, error) {
	name := card.Value(vcard.FieldFormattedName)
	if name == "" {
		if n := card.Name(); n != nil {
			name = strings.TrimSpace(n.GivenName + " " + n.FamilyName)
		}
	}

	rec, err := NewRecord(name)
	if err != nil {
		return nil, err
	}

	for _, raw := range card.Values(vcard.FieldTelephone) {
		value := phoneSeparators.Replace(strings.TrimPrefix(raw, "tel:"))
		p, err := NewPhone(value)
		if err != nil {
			log.Debug(config.MsgSkippedPhone, config.LogKeyName, name, config.LogKeyValue, raw)
			continue
		}
		rec.AddPhone(p)
	}

	if bday := card.Value(vcard.FieldBirthday); bday != "" {
		date, err := parseDate(bday)
		if err != nil {
			log.Debug(config.MsgSkippedDate, config.LogKeyName, name, config.LogKeyValue, bday)
		} else {
			rec.AddBirthday(BirthdayFromDate(date))
		}
	}
	return rec, nil
}

// ExportVCards writes one vCard 4.0 per record, in insertion order.
func ExportVCards(w io.Writer, book *AddressBook) (int, error) {
	enc := vcard.NewEncoder(w)
	count := 0

	for _, rec := range book.Records() {
		card := make(vcard.Card)
		card.SetValue(vcard.FieldVersion, config.VCardVersion)
		card.SetValue(vcard.FieldFormattedName, rec.Name())
		card.SetValue(vcard.FieldUID, recordUID(rec))
		for _, p := range rec.Phones() {
			card.AddValue(vcard.FieldTelephone, p.String())
		}
		if b, ok := rec.Birthday(); ok {
			card.SetValue(vcard.FieldBirthday, b.Date().Format(config.DateFormatFullBasic))
		}

		if err := enc.Encode(card); err != nil {
			return count, fmt.Errorf("%s: %w", config.ErrVCardEncode, err)
		}
		count++
	}

	slog.Info(config.MsgExportDone,
		config.LogKeyComponent, config.CompVCard,
		config.LogKeyCount, count)
	return count, nil
}

// recordUID derives a stable identifier from the name and birthday so that
// repeated exports produce the same UIDs.
func recordUID(rec *Record) string {
	bday := ""
	if b, ok := rec.Birthday(); ok {
		bday = b.Date().Format(time.RFC3339)
	}
	input := fmt.Sprintf(config.FormatHashInput, rec.Name(), bday, config.UIDSalt)
	hash := sha256.Sum256([]byte(input))
	return fmt.Sprintf("%x", hash[:config.UIDHashLength])
}

// parseDate handles the vCard date layouts plus DD.MM.YYYY.
func parseDate(value string) (time.Time, error) {
	formatsWithYear := []string{
		config.DateFormatFullDash,
		config.DateFormatFullBasic,
		config.DateFormatRFC3339,
		config.DateFormatFullT,
		config.DateFormatBirthday,
	}

	for _, f := range formatsWithYear {
		if t, err := time.Parse(f, value); err == nil {
			return t, nil
		}
	}

	// Truncated dates (year unknown) get a leap year so --02-29 survives.
	formatsWithoutYear := []string{config.DateFormatNoYearD, config.DateFormatNoYearB}
	for _, f := range formatsWithoutYear {
		if t, err := time.Parse(f, value); err == nil {
			return time.Date(config.DefaultLeapYear, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}

	return time.Time{}, errors.New(config.ErrDateParse)
}
