// Package translate formats user-facing messages for the SMC tools in the
// language of the current user.
package translate

import (
	"log"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/message"
)

var printer *message.Printer

func init() {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("smc: locale: %v", err)
	}

	if len(locales) == 0 {
		locales = []string{"en-US"}
	}

	printer = message.NewPrinter(message.MatchLanguage(locales...))
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}

// Errorf translates an en-US Sprintf() format into an error.
func Errorf(key message.Reference, args ...any) error {
	return &translated{text: From(key, args...)}
}

type translated struct {
	text string
}

func (err *translated) Error() string {
	return err.text
}
