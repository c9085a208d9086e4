package i18n

import (
	"embed"
	"encoding/json"
	"fmt"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

var bundle *goi18n.Bundle

// Init loads the embedded locale files. Korean is the default language,
// matching the store frontend; English is the fallback for API consumers.
func Init() error {
	b := goi18n.NewBundle(language.Korean)
	b.RegisterUnmarshalFunc("json", json.Unmarshal)

	for _, name := range []string{"locales/active.ko.json", "locales/active.en.json"} {
		data, err := localeFS.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read locale %s: %w", name, err)
		}
		if _, err := b.ParseMessageFileBytes(data, name); err != nil {
			return fmt.Errorf("parse locale %s: %w", name, err)
		}
	}

	bundle = b
	return nil
}

// T resolves a message ID for the given language tags, most preferred first.
// Unknown IDs come back unchanged so a missing translation never breaks a
// response.
func T(messageID string, langs ...string) string {
	if bundle == nil {
		return messageID
	}
	localizer := goi18n.NewLocalizer(bundle, langs...)
	msg, err := localizer.Localize(&goi18n.LocalizeConfig{MessageID: messageID})
	if err != nil {
		return messageID
	}
	return msg
}
