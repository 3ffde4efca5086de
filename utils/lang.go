package utils

import (
	"embed"
	"path"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v2"
)

//go:embed i18n/*.yaml
var messageFiles embed.FS

var (
	bundle     *i18n.Bundle
	bundleOnce sync.Once

	log *logrus.Entry
)

func init() {
	log = logrus.WithField("prefix", "i18n")
}

// InitI18NBundle loads the embedded message files. It is safe to call more
// than once.
func InitI18NBundle() {
	bundleOnce.Do(func() {
		bundle = i18n.NewBundle(language.English)
		bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)

		entries, err := messageFiles.ReadDir("i18n")
		if err != nil {
			panic(err)
		}
		for _, e := range entries {
			p := path.Join("i18n", e.Name())
			buf, err := messageFiles.ReadFile(p)
			if err != nil {
				panic(err)
			}
			if _, err := bundle.ParseMessageFileBytes(buf, p); err != nil {
				panic(err)
			}
		}
	})
}

// NewLocalizer accepts language tags or raw Accept-Language values
func NewLocalizer(langs ...string) *i18n.Localizer {
	InitI18NBundle()
	return i18n.NewLocalizer(bundle, langs...)
}

func localize(loc *i18n.Localizer, messageID string, data map[string]interface{}) string {
	msg, err := loc.Localize(&i18n.LocalizeConfig{
		MessageID:    messageID,
		TemplateData: data,
	})
	if err != nil {
		log.WithError(err).WithField("message_id", messageID).Warn("localize message")
		return messageID
	}
	return msg
}

// SafetyNote summarises the danger pins around a route. onRoute is the number
// of danger zones the route passes through and nearby is how many danger
// pins were considered.
func SafetyNote(loc *i18n.Localizer, onRoute, nearby int) string {
	switch {
	case onRoute > 0:
		return localize(loc, "safety_note_danger", map[string]interface{}{"OnRoute": onRoute})
	case nearby > 0:
		return localize(loc, "safety_note_clear", map[string]interface{}{"Nearby": nearby})
	default:
		return localize(loc, "safety_note_no_reports", nil)
	}
}

func Disclaimer(loc *i18n.Localizer) string {
	return localize(loc, "disclaimer", nil)
}
