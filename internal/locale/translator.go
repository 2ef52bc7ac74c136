// Package locale renders user-facing text (milestone labels, event summaries,
// report headings) from the embedded message catalogs.
package locale

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-anniversary/internal/config"
	"github.com/tartampluch/go-anniversary/internal/engine"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

const (
	localeDir    = "locales"
	localePrefix = "active."
	localeSuffix = ".json"
)

// Translator localizes messages for one language, falling back to English.
// The zero value and a nil *Translator are usable and return the English fallbacks.
type Translator struct {
	lang      string
	languages []string
	localizer *i18n.Localizer
}

// New loads the embedded catalogs and binds a localizer to lang.
// An empty lang means config.DefaultLanguage.
func New(lang string) *Translator {
	if lang == "" {
		lang = config.DefaultLanguage
	}

	bundle, detected := loadBundle()
	return &Translator{
		lang:      lang,
		languages: detected,
		localizer: i18n.NewLocalizer(bundle, lang, config.DefaultLanguage),
	}
}

func loadBundle() (*i18n.Bundle, []string) {
	log := slog.With(config.LogKeyComponent, config.CompI18n)

	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir(localeDir)
	if err != nil {
		log.Error(config.ErrLocalesAccess, config.LogKeyError, err)
		return bundle, nil
	}

	var detected []string
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, localePrefix) || !strings.HasSuffix(name, localeSuffix) {
			log.Debug(config.MsgLocaleSkip, config.LogKeyFile, name)
			continue
		}

		code := strings.TrimSuffix(strings.TrimPrefix(name, localePrefix), localeSuffix)
		if code == "" {
			log.Warn(config.MsgLocaleBadName, config.LogKeyFile, name)
			continue
		}

		if _, err := bundle.LoadMessageFileFS(localeFS, localeDir+"/"+name); err != nil {
			log.Error(config.ErrLocaleLoad, config.LogKeyFile, name, config.LogKeyError, err)
			continue
		}
		detected = append(detected, code)
		log.Debug(config.MsgLocaleLoaded, config.LogKeyLang, code, config.LogKeyFile, name)
	}
	return bundle, detected
}

// Language returns the requested language code.
func (t *Translator) Language() string {
	if t == nil || t.lang == "" {
		return config.DefaultLanguage
	}
	return t.lang
}

// Languages lists the catalogs found in the embedded filesystem.
func (t *Translator) Languages() []string {
	if t == nil {
		return nil
	}
	return append([]string(nil), t.languages...)
}

// Msg translates key, returning fallback when the key is missing or
// the translator is not initialized.
func (t *Translator) Msg(key, fallback string) string {
	return t.localize(&i18n.LocalizeConfig{MessageID: key}, fallback)
}

// MilestoneLabel renders "1 Year", "5 Years" with the language's plural rules.
func (t *Translator) MilestoneLabel(years int) string {
	return t.localize(&i18n.LocalizeConfig{
		MessageID:    config.TKeyMilestoneLabel,
		PluralCount:  years,
		TemplateData: map[string]any{"Count": years},
	}, engine.EnglishLabel(years))
}

// Summary renders the calendar event title for one anniversary.
func (t *Translator) Summary(name, label string) string {
	return t.localize(&i18n.LocalizeConfig{
		MessageID:    config.TKeyEvtSummary,
		TemplateData: map[string]any{"Name": name, "Label": label},
	}, fmt.Sprintf(config.FallbackSummary, name, label))
}

// ReportTitle renders the report heading for a period shown as display text.
func (t *Translator) ReportTitle(period string) string {
	return t.localize(&i18n.LocalizeConfig{
		MessageID:    config.TKeyReportTitle,
		TemplateData: map[string]any{"Period": period},
	}, fmt.Sprintf(config.FallbackReportTitle, period))
}

func (t *Translator) localize(lc *i18n.LocalizeConfig, fallback string) string {
	if t == nil || t.localizer == nil {
		return fallback
	}
	msg, err := t.localizer.Localize(lc)
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, lc.MessageID,
			config.LogKeyError, err,
		)
		return fallback
	}
	return msg
}
