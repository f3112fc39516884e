// Package translate renders user-facing messages in the caller's locale.
package translate

import (
	"log"
	"sync/atomic"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const fallbackLanguage = "en-US"

var printer atomic.Pointer[message.Printer]

func init() {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("regmach: locale: %v", err)
	}

	SetLanguage(locales...)
}

// SetLanguage selects the message language by BCP 47 tags, in preference
// order. The first tag that parses wins; with none, en-US is used.
// Messages have no translations, so the language only selects how numbers
// are formatted.
func SetLanguage(langs ...string) {
	tag := language.MustParse(fallbackLanguage)
	for _, lang := range langs {
		t, err := language.Parse(lang)
		if err == nil {
			tag = t
			break
		}
	}

	printer.Store(message.NewPrinter(tag))
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer.Load().Sprintf(key, args...)
}
