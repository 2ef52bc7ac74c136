package importer

import (
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-anniversary/internal/config"
	"github.com/tartampluch/go-anniversary/internal/engine"
)

// ParseVCard reads people from a vCard stream: FN (or N) gives the name and
// ANNIVERSARY the start date. Cards without a usable anniversary are skipped,
// and so are malformed cards, so one broken contact does not sink an address book.
func ParseVCard(r io.Reader) ([]engine.Person, error) {
	log := slog.With(config.LogKeyComponent, config.CompImporter)
	decoder := vcard.NewDecoder(r)

	var people []engine.Person
	stats := struct{ processed, skipped int }{}
	consecutiveErrs := 0

	for {
		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// The decoder resynchronises on the next BEGIN line; a reader that
			// keeps failing never does.
			consecutiveErrs++
			if consecutiveErrs > config.MaxConsecutiveCardErrs {
				return nil, importFailure(config.ErrVCardRead, err)
			}
			log.Warn(config.MsgSkippedCard, config.LogKeyError, err)
			stats.skipped++
			continue
		}
		consecutiveErrs = 0
		stats.processed++

		field := card.Get(config.VCardAnniversary)
		if field == nil || field.Value == "" {
			stats.skipped++
			continue
		}

		start, err := engine.ParseDate(field.Value)
		if err != nil {
			log.Debug(config.MsgSkippedDate, config.LogKeyValue, field.Value)
			stats.skipped++
			continue
		}

		p, err := engine.NewPerson(cardName(card), start)
		if err != nil {
			log.Debug(config.MsgSkippedCard, config.LogKeyError, err)
			stats.skipped++
			continue
		}
		people = append(people, p)
	}

	log.Info(config.MsgImported,
		config.LogKeySource, config.VCardAnniversary,
		slog.Group(config.LogKeyStats,
			slog.Int("cards", stats.processed),
			slog.Int(config.LogKeyPeople, len(people)),
			slog.Int("skipped", stats.skipped),
		),
	)
	return people, nil
}

// cardName applies FN (formatted) > N (structured) > fallback.
func cardName(card vcard.Card) string {
	if fn := card.Get(config.VCardFN); fn != nil && strings.TrimSpace(fn.Value) != "" {
		return fn.Value
	}
	if n := card.Name(); n != nil {
		parts := []string{n.GivenName, n.AdditionalName, n.FamilyName}
		var nonEmpty []string
		for _, p := range parts {
			if p != "" {
				nonEmpty = append(nonEmpty, p)
			}
		}
		if len(nonEmpty) > 0 {
			return strings.Join(nonEmpty, " ")
		}
	}
	return config.FallbackName
}
