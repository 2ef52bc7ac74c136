package locale_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-anniversary/internal/config"
	"github.com/tartampluch/go-anniversary/internal/locale"
)

// TestI18nIntegrity ensures that every translation key defined in config.go
// exists in every locale file shipped in the binary.
func TestI18nIntegrity(t *testing.T) {
	keys := []string{
		config.TKeyMilestoneLabel,
		config.TKeyEvtSummary,
		config.TKeyReportTitle,
		config.TKeyReportEmpty,
		config.TKeyReportNoPeople,
		config.TKeyColName,
		config.TKeyColDate,
		config.TKeyColType,
		config.TKeyColYears,
		config.TKeyCalName,
	}

	for _, lang := range config.SupportedLanguages {
		t.Run(lang, func(t *testing.T) {
			content, err := os.ReadFile(filepath.Join("locales", "active."+lang+".json"))
			require.NoError(t, err, "Must load locale file for %s", lang)

			var catalog map[string]any
			require.NoError(t, json.Unmarshal(content, &catalog), "JSON must be valid")

			for _, k := range keys {
				assert.Containsf(t, catalog, k, "Key '%s' defined in config.go is missing in %s", k, lang)
			}
		})
	}
}

func TestTranslator_Languages(t *testing.T) {
	tr := locale.New("")
	assert.Equal(t, config.DefaultLanguage, tr.Language())
	assert.ElementsMatch(t, config.SupportedLanguages, tr.Languages())
}

func TestTranslator_English(t *testing.T) {
	tr := locale.New("en")

	assert.Equal(t, "1 Year", tr.MilestoneLabel(1))
	assert.Equal(t, "5 Years", tr.MilestoneLabel(5))
	assert.Equal(t, "Ada: 10 Years", tr.Summary("Ada", "10 Years"))
	assert.Equal(t, "Showing anniversaries for: March 2025", tr.ReportTitle("March 2025"))
	assert.Equal(t, "Name", tr.Msg(config.TKeyColName, "fallback"))
}

func TestTranslator_French(t *testing.T) {
	tr := locale.New("fr")

	assert.Equal(t, "1 an", tr.MilestoneLabel(1))
	assert.Equal(t, "25 ans", tr.MilestoneLabel(25))
	assert.Equal(t, "Ada : 1 an", tr.Summary("Ada", "1 an"))
	assert.Equal(t, "Nom", tr.Msg(config.TKeyColName, "fallback"))
}

func TestTranslator_UnknownLanguageFallsBackToEnglish(t *testing.T) {
	tr := locale.New("xx")
	assert.Equal(t, "5 Years", tr.MilestoneLabel(5))
}

func TestTranslator_Fallbacks(t *testing.T) {
	tr := locale.New("en")
	assert.Equal(t, "fallback", tr.Msg("no_such_key", "fallback"))

	var nilTr *locale.Translator
	assert.Equal(t, "5 Years", nilTr.MilestoneLabel(5))
	assert.Equal(t, "1 Year", nilTr.MilestoneLabel(1))
	assert.Equal(t, "Ada: 5 Years", nilTr.Summary("Ada", "5 Years"))
	assert.Equal(t, config.FallbackReportEmpty, nilTr.Msg(config.TKeyReportEmpty, config.FallbackReportEmpty))
	assert.Equal(t, config.DefaultLanguage, nilTr.Language())
}
