// Copyright (c) 2026 Rafaela Botelho
// SPDX-License-Identifier: MIT

// Package i18n provides the user-facing API message catalog. The site's
// audience is Portuguese-speaking, so pt is the default; en is served
// when the Accept-Language header asks for it.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/text/language"
)

//go:embed locales
var localesFS embed.FS

// Message represents a single translatable message.
type Message struct {
	ID          string `json:"id"`
	Translation string `json:"translation"`
}

// MessageFile is the structure of a locales/<lang>/messages.json file.
type MessageFile struct {
	Language string    `json:"language"`
	Messages []Message `json:"messages"`
}

// SupportedLanguages lists the catalog languages, default first.
var SupportedLanguages = []string{"pt", "en"}

type catalogData struct {
	mu           sync.RWMutex
	translations map[string]map[string]string
	matcher      language.Matcher
	defaultLang  string
}

var catalog *catalogData

// Init loads the embedded catalogs and builds the language matcher.
func Init(logger *slog.Logger) error {
	c := &catalogData{
		translations: make(map[string]map[string]string),
		defaultLang:  SupportedLanguages[0],
	}

	tags := make([]language.Tag, 0, len(SupportedLanguages))
	for _, lang := range SupportedLanguages {
		tags = append(tags, language.MustParse(lang))
	}
	c.matcher = language.NewMatcher(tags)

	for _, lang := range SupportedLanguages {
		if err := c.loadLanguage(lang); err != nil {
			return fmt.Errorf("loading language %s: %w", lang, err)
		}
	}

	catalog = c
	if logger != nil {
		logger.Info("i18n initialized", "languages", SupportedLanguages)
	}
	return nil
}

func (c *catalogData) loadLanguage(lang string) error {
	path := fmt.Sprintf("locales/%s/messages.json", lang)
	data, err := localesFS.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	var file MessageFile
	if err := json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	m := make(map[string]string, len(file.Messages))
	for _, msg := range file.Messages {
		m[msg.ID] = msg.Translation
	}
	c.translations[lang] = m
	return nil
}

// T returns the translation for key in lang, falling back to the
// default language and finally to the key itself.
func T(lang, key string) string {
	if catalog == nil {
		return key
	}
	catalog.mu.RLock()
	defer catalog.mu.RUnlock()

	if m, ok := catalog.translations[lang]; ok {
		if t, ok := m[key]; ok {
			return t
		}
	}
	if m, ok := catalog.translations[catalog.defaultLang]; ok {
		if t, ok := m[key]; ok {
			return t
		}
	}
	return key
}

// DefaultLanguage returns the catalog's default language.
func DefaultLanguage() string {
	return SupportedLanguages[0]
}

// Match negotiates a supported language from an Accept-Language header.
func Match(acceptLanguage string) string {
	if catalog == nil || acceptLanguage == "" {
		return SupportedLanguages[0]
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return catalog.defaultLang
	}
	_, idx, _ := catalog.matcher.Match(tags...)
	return SupportedLanguages[idx]
}
