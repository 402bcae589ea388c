package translation_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/snonux/gtranslate/internal/translation"
)

func TestEncode_ParameterOrder(t *testing.T) {
	req := translation.NewRequest(translation.Classic).
		WithSourceLang("nl").
		WithTargetLang("tr").
		WithQuery("hallo ik ga vandaag hardlopen")

	target, err := translation.Encode(translation.Classic.Endpoint(), req)
	require.NoError(t, err)

	assert.Equal(t,
		"https://translate.google.com/translate_a/single?client=gtx&sl=nl&tl=tr&dt=t&q=hallo+ik+ga+vandaag+hardlopen",
		target.URL)
}

func TestEncode_EscapesOnce(t *testing.T) {
	query := `a&b=c "d" 100% ü`
	req := translation.NewRequest(translation.Compact).
		WithSourceLang("auto").
		WithTargetLang("de").
		WithQuery(query)

	target, err := translation.Encode(translation.Compact.Endpoint(), req)
	require.NoError(t, err)

	u, err := url.Parse(target.URL)
	require.NoError(t, err)

	values := u.Query()
	assert.Equal(t, query, values.Get("q"))
	assert.Equal(t, "p", values.Get("client"))
	assert.Equal(t, "auto", values.Get("sl"))
	assert.Equal(t, "de", values.Get("tl"))
	assert.Equal(t, "t", values.Get("dt"))
	assert.Equal(t, "/translate_a/t", u.Path)
}

func TestEncode_Headers(t *testing.T) {
	target, err := translation.Encode(translation.Classic.Endpoint(), translation.NewRequest(translation.Classic))
	require.NoError(t, err)

	assert.Equal(t, "https://translate.google.com/", target.Header.Get("Referer"))
	assert.Contains(t, target.Header.Get("User-Agent"), "Mobile Safari")
}

func TestEncode_LanguageCodesPassThrough(t *testing.T) {
	req := translation.NewRequest(translation.Classic).WithSourceLang("xx-NOPE").WithTargetLang("")

	target, err := translation.Encode(translation.Classic.Endpoint(), req)
	require.NoError(t, err)
	assert.Contains(t, target.URL, "sl=xx-NOPE&tl=&")
}

func TestEncode_InvalidEndpoint(t *testing.T) {
	for _, base := range []string{"", "/relative/path", "://broken"} {
		t.Run(base, func(t *testing.T) {
			_, err := translation.Encode(base, translation.NewRequest(translation.Classic))
			assert.Error(t, err)
		})
	}
}
