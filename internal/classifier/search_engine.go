package classifier

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

type searchEngineDefinition struct {
	Sources []string `yaml:"sources"`
	Domains []string `yaml:"domains"`
}

// SearchEngineMapper traduz origens do GA para nomes de buscadores
type SearchEngineMapper struct {
	bySource map[string]string
	names    []string
	domains  map[string][]string
}

func NewSearchEngineMapper() (*SearchEngineMapper, error) {
	definitions := map[string]searchEngineDefinition{}
	if err := yaml.Unmarshal(searchEnginesYAML, &definitions); err != nil {
		return nil, fmt.Errorf("erro ao carregar buscadores: %w", err)
	}

	m := &SearchEngineMapper{
		bySource: map[string]string{},
		domains:  map[string][]string{},
	}
	for name, def := range definitions {
		m.names = append(m.names, name)
		m.domains[name] = def.Domains
		for _, source := range def.Sources {
			m.bySource[strings.ToLower(source)] = name
		}
	}
	sort.Strings(m.names)

	return m, nil
}

// MapSourceToSearchEngine converte a origem de tráfego orgânico no nome do
// buscador. Origens desconhecidas são usadas como nome.
func (m *SearchEngineMapper) MapSourceToSearchEngine(source string) string {
	if name, ok := m.bySource[strings.ToLower(source)]; ok {
		return name
	}
	return source
}

// MapReferralToSearchEngine identifica o buscador de uma origem de referência
// (domínio do site que enviou a visita).
func (m *SearchEngineMapper) MapReferralToSearchEngine(source string) (string, bool) {
	host := hostOf(source)
	if host == "" {
		return "", false
	}

	for _, name := range m.names {
		for _, domain := range m.domains[name] {
			if matchesDomain(host, domain) {
				return name, true
			}
		}
	}
	return "", false
}
