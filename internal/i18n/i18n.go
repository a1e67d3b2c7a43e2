// Package i18n holds the operator-facing text in Traditional Chinese and
// English.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	TraditionalChinese = language.MustParse("zh-TW")
	English            = language.MustParse("en-US")
)

var supportedTags = []language.Tag{
	TraditionalChinese,
	English,
}

var tagMatcher = language.NewMatcher(supportedTags)

// Supported returns the list of supported language tags.
func Supported() []language.Tag {
	tags := make([]language.Tag, len(supportedTags))
	copy(tags, supportedTags)
	return tags
}

// Default returns the default language tag.
func Default() language.Tag {
	return TraditionalChinese
}

// Resolve maps a locale string such as "en", "zh-Hant" or "en_GB" onto a
// supported tag. Unknown or empty values resolve to the default.
func Resolve(locale string) language.Tag {
	locale = strings.ReplaceAll(strings.TrimSpace(locale), "_", "-")
	if locale == "" {
		return Default()
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return Default()
	}
	_, idx, conf := tagMatcher.Match(tag)
	if conf == language.No {
		return Default()
	}
	return supportedTags[idx]
}

// Printer returns a message printer for locale.
func Printer(locale string) *message.Printer {
	return message.NewPrinter(Resolve(locale))
}
