// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package i18n

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBundle_Embedded(t *testing.T) {
	b, err := newBundle(translationFS, translationFiles...)
	require.NoError(t, err)

	for _, locale := range []string{"en", "ru"} {
		localizer := i18n.NewLocalizer(b, locale)
		for _, id := range []string{"title_home", "verification_success", "error_503"} {
			_, err := localizer.Localize(&i18n.LocalizeConfig{MessageID: id})
			assert.NoError(t, err, "%s/%s", locale, id)
		}
	}
}

func TestNewBundle_PluralTableBeforePlainKeys(t *testing.T) {
	fsys := fstest.MapFS{
		"active.en.toml": {Data: []byte("greeting = \"Hi\"\n\n[apples]\none = \"one apple\"\nother = \"many apples\"\n\nfarewell = \"Bye\"\n")},
	}

	_, err := newBundle(fsys, "active.en.toml")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "active.en.toml")
}

func TestNewBundle_PluralTableLast(t *testing.T) {
	fsys := fstest.MapFS{
		"active.en.toml": {Data: []byte("greeting = \"Hi\"\nfarewell = \"Bye\"\n\n[apples]\none = \"one apple\"\nother = \"many apples\"\n")},
	}

	b, err := newBundle(fsys, "active.en.toml")
	require.NoError(t, err)

	localizer := i18n.NewLocalizer(b, "en")
	msg, err := localizer.Localize(&i18n.LocalizeConfig{MessageID: "apples", PluralCount: 2})
	require.NoError(t, err)
	assert.Equal(t, "many apples", msg)
	msg, err = localizer.Localize(&i18n.LocalizeConfig{MessageID: "farewell"})
	require.NoError(t, err)
	assert.Equal(t, "Bye", msg)
}

func TestNewBundle_MissingFile(t *testing.T) {
	_, err := newBundle(fstest.MapFS{}, "translations/active.de.toml")

	assert.Error(t, err)
}

func TestGetLocalizer_WithoutLocale(t *testing.T) {
	require.NoError(t, Init())

	assert.Equal(t, "Products", T(context.Background(), "title_home"))
}
