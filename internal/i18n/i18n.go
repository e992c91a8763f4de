// Package i18n holds the static translation tables of the back-office and
// picks the language of each request.
package i18n

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"path"
	"strings"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

const Fallback = "en"

type Language struct {
	Code string `json:"code"`
	Name string `json:"name"`
	Dir  string `json:"dir"`
}

var Languages = []Language{
	{Code: "en", Name: "English", Dir: "ltr"},
	{Code: "fr", Name: "Français", Dir: "ltr"},
	{Code: "ar", Name: "العربية", Dir: "rtl"},
	{Code: "zh", Name: "中文", Dir: "ltr"},
}

var (
	bundle     *goi18n.Bundle
	localizers = map[string]*goi18n.Localizer{}
	// keys holds the message ids each locale file defines itself.
	keys    = map[string]map[string]struct{}{}
	matcher language.Matcher
)

func init() {
	bundle = goi18n.NewBundle(language.Make(Fallback))
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	var tags []language.Tag
	for _, l := range Languages {
		file, err := bundle.LoadMessageFileFS(localeFS, path.Join("locales", l.Code+".json"))
		if err != nil {
			log.Fatalf("[FATAL] %s çeviri dosyası yüklenemedi: %v", l.Code, err)
		}
		ids := make(map[string]struct{}, len(file.Messages))
		for _, m := range file.Messages {
			ids[m.ID] = struct{}{}
		}
		keys[l.Code] = ids
		localizers[l.Code] = goi18n.NewLocalizer(bundle, l.Code)
		tags = append(tags, language.Make(l.Code))
	}
	matcher = language.NewMatcher(tags)
}

func Supported(lang string) bool {
	_, ok := localizers[lang]
	return ok
}

// T returns the translation of key in lang, then in English, then the key
// itself. args are applied with fmt.Sprintf.
func T(lang, key string, args ...any) string {
	loc, ok := localizers[lang]
	if !ok {
		loc = localizers[Fallback]
	}
	s, err := loc.Localize(&goi18n.LocalizeConfig{MessageID: key})
	if s == "" {
		if err != nil {
			var nf *goi18n.MessageNotFoundErr
			if !errors.As(err, &nf) {
				log.Printf("[WARN] %s çevirisi üretilemedi (%s): %v", key, lang, err)
			}
		}
		return key
	}
	if len(args) > 0 {
		return fmt.Sprintf(s, args...)
	}
	return s
}

// Has reports whether lang has its own entry for key.
func Has(lang, key string) bool {
	_, ok := keys[lang][key]
	return ok
}

// Resolve picks the request language: cookie, then Accept-Language, then def.
func Resolve(cookie, acceptLanguage, def string) string {
	if Supported(cookie) {
		return cookie
	}
	if strings.TrimSpace(acceptLanguage) != "" {
		prefs, _, err := language.ParseAcceptLanguage(acceptLanguage)
		if err == nil && len(prefs) > 0 {
			_, idx, conf := matcher.Match(prefs...)
			if conf != language.No {
				return Languages[idx].Code
			}
		}
	}
	if Supported(def) {
		return def
	}
	return Fallback
}

// Dir is the text direction of lang.
func Dir(lang string) string {
	for _, l := range Languages {
		if l.Code == lang {
			return l.Dir
		}
	}
	return "ltr"
}
