// Package i18n resolves message keys to Arabic or English text.
//
// Catalogs are embedded JSON files (locales/ar.json, locales/en.json) whose
// nested objects are flattened into dot keys: {"auth": {"adminOnly": ".."}}
// becomes "auth.adminOnly". Arabic is the default language.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"
	"sync"
)

//go:embed locales/*.json
var embeddedLocales embed.FS

var SupportedLanguages = []string{"ar", "en"}

const DefaultLanguage = "ar"

var (
	mu           sync.RWMutex
	translations map[string]map[string]string
	loadOnce     sync.Once
)

// Load replaces the catalogs with the ones found in localesFS (one <lang>.json
// per supported language).
func Load(localesFS fs.FS) error {
	loaded := make(map[string]map[string]string, len(SupportedLanguages))

	for _, lang := range SupportedLanguages {
		fileName := lang + ".json"
		data, err := fs.ReadFile(localesFS, fileName)
		if err != nil {
			return fmt.Errorf("failed to read translation file %s: %w", fileName, err)
		}

		var nested map[string]any
		if err := json.Unmarshal(data, &nested); err != nil {
			return fmt.Errorf("failed to parse translation file %s: %w", fileName, err)
		}

		flat := make(map[string]string)
		flattenMap("", nested, flat)
		loaded[lang] = flat
	}

	mu.Lock()
	translations = loaded
	mu.Unlock()
	return nil
}

// LoadEmbedded loads the catalogs compiled into the binary.
func LoadEmbedded() error {
	sub, err := fs.Sub(embeddedLocales, "locales")
	if err != nil {
		return err
	}
	return Load(sub)
}

func ensureLoaded() {
	loadOnce.Do(func() {
		mu.RLock()
		ready := translations != nil
		mu.RUnlock()
		if !ready {
			_ = LoadEmbedded()
		}
	})
}

type Localizer struct {
	lang string
}

// NewLocalizer falls back to the default language for unsupported codes.
func NewLocalizer(lang string) *Localizer {
	if !IsSupported(lang) {
		lang = DefaultLanguage
	}
	return &Localizer{lang: lang}
}

func (l *Localizer) Lang() string {
	return l.lang
}

// T returns the text for key in the localizer's language, then Arabic, then
// the key itself.
func (l *Localizer) T(key string) string {
	ensureLoaded()

	mu.RLock()
	defer mu.RUnlock()

	if msg, ok := translations[l.lang][key]; ok {
		return msg
	}
	if msg, ok := translations[DefaultLanguage][key]; ok {
		return msg
	}
	return key
}

// TWithParams replaces {{name}} placeholders after lookup.
func (l *Localizer) TWithParams(key string, params map[string]string) string {
	msg := l.T(key)
	for k, v := range params {
		msg = strings.ReplaceAll(msg, "{{"+k+"}}", v)
	}
	return msg
}

// DetectLanguage picks the first supported language of an Accept-Language
// header such as "en-US,en;q=0.9,ar;q=0.8".
func DetectLanguage(acceptLanguage string) string {
	if acceptLanguage == "" {
		return DefaultLanguage
	}

	for _, part := range strings.Split(acceptLanguage, ",") {
		lang := strings.TrimSpace(strings.Split(part, ";")[0])
		lang = strings.ToLower(strings.Split(lang, "-")[0])
		if IsSupported(lang) {
			return lang
		}
	}
	return DefaultLanguage
}

// IsSupported reports whether lang has a catalog.
func IsSupported(lang string) bool {
	for _, l := range SupportedLanguages {
		if l == lang {
			return true
		}
	}
	return false
}

func flattenMap(prefix string, src map[string]any, dst map[string]string) {
	for k, v := range src {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}

		switch val := v.(type) {
		case string:
			dst[key] = val
		case map[string]any:
			flattenMap(key, val, dst)
		}
	}
}
