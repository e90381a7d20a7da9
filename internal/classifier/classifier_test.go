package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSocial_NetworkFromURL(t *testing.T) {
	social, err := NewSocial("Unknown")
	require.NoError(t, err)

	tests := []struct {
		url      string
		expected string
	}{
		{url: "http://facebook.com/", expected: "Facebook"},
		{url: "http://m.facebook.com/groups/", expected: "Facebook"},
		{url: "http://www.linkedin.com/feed/", expected: "LinkedIn"},
		{url: "t.co/abc/", expected: "Twitter"},
		{url: "http://example.com/", expected: "Unknown"},
		{url: "http://notfacebook.com/", expected: "Unknown"},
		{url: "", expected: "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.expected, social.NetworkFromURL(tt.url))
		})
	}
}

func TestSearchEngineMapper(t *testing.T) {
	mapper, err := NewSearchEngineMapper()
	require.NoError(t, err)

	assert.Equal(t, "Google", mapper.MapSourceToSearchEngine("google"))
	assert.Equal(t, "Bing", mapper.MapSourceToSearchEngine("BING"))
	assert.Equal(t, "mojeek", mapper.MapSourceToSearchEngine("mojeek"))

	name, ok := mapper.MapReferralToSearchEngine("images.google.com")
	assert.True(t, ok)
	assert.Equal(t, "Google", name)

	name, ok = mapper.MapReferralToSearchEngine("duckduckgo.com")
	assert.True(t, ok)
	assert.Equal(t, "DuckDuckGo", name)

	_, ok = mapper.MapReferralToSearchEngine("example.com")
	assert.False(t, ok)
}
