// Package classifier identifica redes sociais e buscadores a partir das
// origens de tráfego reportadas pelo GA.
package classifier

import (
	_ "embed"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed data/socials.yml
var socialsYAML []byte

//go:embed data/search_engines.yml
var searchEnginesYAML []byte

type socialNetwork struct {
	name    string
	domains []string
}

// Social classifica URLs de referência em redes sociais
type Social struct {
	networks     []socialNetwork
	unknownLabel string
}

// NewSocial carrega as definições embutidas; unknownLabel é retornado quando
// a URL não pertence a nenhuma rede conhecida.
func NewSocial(unknownLabel string) (*Social, error) {
	definitions := map[string][]string{}
	if err := yaml.Unmarshal(socialsYAML, &definitions); err != nil {
		return nil, fmt.Errorf("erro ao carregar redes sociais: %w", err)
	}

	names := make([]string, 0, len(definitions))
	for name := range definitions {
		names = append(names, name)
	}
	sort.Strings(names)

	networks := make([]socialNetwork, 0, len(names))
	for _, name := range names {
		networks = append(networks, socialNetwork{name: name, domains: definitions[name]})
	}

	return &Social{networks: networks, unknownLabel: unknownLabel}, nil
}

func (s *Social) UnknownLabel() string {
	return s.unknownLabel
}

// NetworkFromURL retorna o nome da rede social do host da URL ou o rótulo de desconhecido
func (s *Social) NetworkFromURL(rawURL string) string {
	host := hostOf(rawURL)
	if host == "" {
		return s.unknownLabel
	}

	for _, network := range s.networks {
		for _, domain := range network.domains {
			if matchesDomain(host, domain) {
				return network.name
			}
		}
	}

	return s.unknownLabel
}

func hostOf(rawURL string) string {
	if !strings.Contains(rawURL, "://") {
		rawURL = "http://" + rawURL
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(parsed.Hostname()), "www.")
}

func matchesDomain(host, domain string) bool {
	return host == domain || strings.HasSuffix(host, "."+domain)
}
