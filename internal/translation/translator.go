package translation

import (
	"embed"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

//go:embed lang/*.yml
var langFS embed.FS

const defaultLanguage = "en"

// Translator resolve chaves de tradução para textos no idioma configurado
type Translator interface {
	Translate(key string, args ...any) string
}

type translator struct {
	messages map[string]string
	fallback map[string]string
}

// New carrega o idioma informado, usando inglês para chaves ausentes
func New(language string) (Translator, error) {
	fallback, err := load(defaultLanguage)
	if err != nil {
		return nil, err
	}

	if language == "" || language == defaultLanguage {
		return &translator{messages: fallback, fallback: fallback}, nil
	}

	messages, err := load(language)
	if err != nil {
		logrus.WithError(err).Warnf("translation: idioma %s indisponível, usando %s", language, defaultLanguage)
		messages = fallback
	}

	return &translator{messages: messages, fallback: fallback}, nil
}

func load(language string) (map[string]string, error) {
	raw, err := langFS.ReadFile(fmt.Sprintf("lang/%s.yml", strings.ToLower(language)))
	if err != nil {
		return nil, fmt.Errorf("erro ao ler traduções %s: %w", language, err)
	}

	messages := map[string]string{}
	if err := yaml.Unmarshal(raw, &messages); err != nil {
		return nil, fmt.Errorf("erro ao decodificar traduções %s: %w", language, err)
	}
	return messages, nil
}

func (t *translator) Translate(key string, args ...any) string {
	msg, ok := t.messages[key]
	if !ok {
		msg, ok = t.fallback[key]
	}
	if !ok {
		return key
	}
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}

// LowerFirst deixa a primeira letra minúscula, como em "unknown"
func LowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
