// Package i18n wraps the translation bundle behind a small Translator the
// rest of the application uses for every user-facing string: roster lines,
// alert messages, calendar event summaries and localized long dates.
package i18n

import (
	"embed"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-planty/internal/config"
	"github.com/tartampluch/go-planty/internal/dateutil"
	"github.com/tartampluch/go-planty/internal/model"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

var (
	bundleOnce     sync.Once
	sharedBundle   *goi18n.Bundle
	availableLangs []string
)

// loadBundle scans the embedded locales directory once and loads every
// active.<lang>.json file. Malformed filenames are skipped, not fatal.
func loadBundle() {
	log := slog.With(config.LogKeyComponent, config.CompI18n)

	bundle := goi18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		log.Error(config.ErrLocalesAccess, config.LogKeyError, err)
		sharedBundle = bundle
		return
	}

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "active.") || !strings.HasSuffix(name, ".json") {
			log.Debug(config.MsgLocaleSkip, config.LogKeyFile, name)
			continue
		}

		langCode := strings.TrimSuffix(strings.TrimPrefix(name, "active."), ".json")
		if langCode == "" {
			log.Warn(config.MsgLocaleBadName, config.LogKeyFile, name)
			continue
		}

		if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+name); err != nil {
			log.Error(config.ErrLocaleLoad,
				config.LogKeyFile, name,
				config.LogKeyError, err)
			continue
		}

		availableLangs = append(availableLangs, langCode)
		log.Debug(config.MsgLocaleLoaded,
			config.LogKeyLang, langCode,
			config.LogKeyFile, name)
	}

	sharedBundle = bundle
}

// SupportedLanguages lists the language codes detected in the embedded
// locale files.
func SupportedLanguages() []string {
	bundleOnce.Do(loadBundle)
	return availableLangs
}

// Translator localizes messages for one language. The zero value is not
// usable; construct with New.
type Translator struct {
	lang      string
	localizer *goi18n.Localizer
}

// New builds a Translator for the given language code, falling back to the
// default language chain for missing messages.
func New(lang string) *Translator {
	bundleOnce.Do(loadBundle)
	if lang == "" {
		lang = config.DefaultLanguage
	}
	return &Translator{
		lang:      lang,
		localizer: goi18n.NewLocalizer(sharedBundle, lang, config.DefaultLanguage),
	}
}

// Lang returns the language code this translator was built for.
func (t *Translator) Lang() string {
	return t.lang
}

// Msg translates a key without template data. A missing key returns the key
// itself so the UI degrades readably instead of erroring.
func (t *Translator) Msg(key string) string {
	return t.MsgData(key, nil)
}

// MsgData translates a key with template data.
func (t *Translator) MsgData(key string, data map[string]any) string {
	msg, err := t.localizer.Localize(&goi18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
	})
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, key,
			config.LogKeyError, err)
		return key
	}
	return msg
}

// MsgCount translates a key with a plural count, exposed to the template as
// {{.Count}}.
func (t *Translator) MsgCount(key string, n int) string {
	msg, err := t.localizer.Localize(&goi18n.LocalizeConfig{
		MessageID:    key,
		PluralCount:  n,
		TemplateData: map[string]any{"Count": n},
	})
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, key,
			config.LogKeyError, err)
		return key
	}
	return msg
}

// FormatLongDate renders a calendar date in the locale's long form, e.g.
// "June 10, 2024" or "2024年6月10日".
func (t *Translator) FormatLongDate(d dateutil.CalendarDate) string {
	return t.MsgData(config.TKeyDateLong, map[string]any{
		"Year":      d.Year,
		"Month":     int(d.Month),
		"MonthName": d.Month.String(),
		"Day":       d.Day,
	})
}

// WaterTypeLabel returns the localized label of a watering type.
func (t *Translator) WaterTypeLabel(wt model.WaterType) string {
	return t.Msg(wt.TranslationKey())
}

// WaterSummary renders the calendar event summary for a watering.
func (t *Translator) WaterSummary(plantName string) string {
	return t.MsgData(config.TKeyEvtWaterSummary, map[string]any{"Name": plantName})
}

// RepotSummary renders the calendar event summary for a repotting reminder.
func (t *Translator) RepotSummary(plantName string) string {
	return t.MsgData(config.TKeyEvtRepotSummary, map[string]any{"Name": plantName})
}
