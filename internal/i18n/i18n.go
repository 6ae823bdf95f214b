// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package i18n

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"sync"

	"codeberg.org/oliverandrich/go-storefront/internal/models"
	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed translations/*.toml
var translationFS embed.FS

var bundle *i18n.Bundle

// supported lists the bundled locales; the first one is the fallback.
var supported = []language.Tag{
	language.English,
	language.Russian,
}

type localeContextKey struct{}
type localizerContextKey struct{}

var (
	initOnce sync.Once
	initErr  error
)

var translationFiles = []string{
	"translations/active.en.toml",
	"translations/active.ru.toml",
}

// Init initializes the i18n bundle with embedded translations. Calling it
// more than once is harmless. When the translations cannot be loaded the
// error is logged once and every lookup falls back to the message ID.
func Init() error {
	initOnce.Do(func() {
		bundle, initErr = newBundle(translationFS, translationFiles...)
		if initErr != nil {
			slog.Error("i18n_load_failed", "error", initErr)
			bundle = i18n.NewBundle(language.English)
		}
	})
	return initErr
}

func newBundle(fsys fs.FS, files ...string) (*i18n.Bundle, error) {
	b := i18n.NewBundle(language.English)
	b.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	for _, file := range files {
		if _, err := b.LoadMessageFileFS(fsys, file); err != nil {
			return nil, fmt.Errorf("loading %s: %w", file, err)
		}
	}

	return b, nil
}

// WithLocale adds the locale to the context.
func WithLocale(ctx context.Context, lang language.Tag) context.Context {
	_ = Init() // load errors are logged by Init
	locale := lang.String()
	ctx = context.WithValue(ctx, localeContextKey{}, locale)
	localizer := i18n.NewLocalizer(bundle, locale)
	return context.WithValue(ctx, localizerContextKey{}, localizer)
}

// GetLocale returns the current locale from context.
func GetLocale(ctx context.Context) string {
	if locale, ok := ctx.Value(localeContextKey{}).(string); ok {
		return locale
	}
	return "en"
}

// T translates a message by ID.
func T(ctx context.Context, messageID string) string {
	localizer := getLocalizer(ctx)
	msg, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID: messageID,
	})
	if err != nil {
		return messageID
	}
	return msg
}

// TData translates a message with template data.
func TData(ctx context.Context, messageID string, data map[string]any) string {
	localizer := getLocalizer(ctx)
	msg, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    messageID,
		TemplateData: data,
	})
	if err != nil {
		return messageID
	}
	return msg
}

// TPlural translates a message with plural support.
func TPlural(ctx context.Context, messageID string, count int) string {
	localizer := getLocalizer(ctx)
	msg, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    messageID,
		PluralCount:  count,
		TemplateData: map[string]any{"Count": count},
	})
	if err != nil {
		return messageID
	}
	return msg
}

// FormatPrice renders an amount in cents with the locale's decimal separator.
func FormatPrice(ctx context.Context, cents int64) string {
	return TData(ctx, "price", map[string]any{"Amount": models.FormatPrice(cents)})
}

// MatchLanguage matches the best language from Accept-Language header.
func MatchLanguage(acceptLanguage string) language.Tag {
	matcher := language.NewMatcher(supported)
	_, idx, _ := matcher.Match(parseAccept(acceptLanguage)...)
	return supported[idx]
}

func parseAccept(acceptLanguage string) []language.Tag {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil {
		return nil
	}
	return tags
}

func getLocalizer(ctx context.Context) *i18n.Localizer {
	if localizer, ok := ctx.Value(localizerContextKey{}).(*i18n.Localizer); ok {
		return localizer
	}
	_ = Init() // load errors are logged by Init
	return i18n.NewLocalizer(bundle, "en")
}
