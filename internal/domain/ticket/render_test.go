package ticket

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullView() View {
	return View{
		Filter:        "sunset",
		TextStyle:     map[string]string{"color": "#222", "fontSize": "12px"},
		AIText:        "오늘은 행운의 날",
		UserInfo:      &UserInfo{Name: "mina", Content: "first ticket"},
		DateTime:      DateTime{DayOfWeek: "SAT", Month: "OCT", Day: "18", Year: "2026", Time: "14:05"},
		TicketLogoImg: "https://cdn.example.com/logo.png",
		LayoutColor:   "#ff0000",
	}
}

func renderString(t *testing.T, v View) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, v))
	return buf.String()
}

func TestRenderFullView(t *testing.T) {
	out := renderString(t, fullView())

	for _, want := range []string{
		"Lucky Ticket",
		"TOPPER",
		"concept.sunset",
		"오늘은 행운의 날",
		"mina",
		"first ticket",
		"SAT", "OCT", ">18<", "2026", "14:05",
		`data-filter="sunset"`,
		`style="color: #ff0000"`,
		`style="color: #222; font-size: 12px"`,
		`src="https://cdn.example.com/logo.png"`,
		"rotate(90deg)",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, PlaceholderText)
}

func TestRenderWithoutUserInfoShowsPlaceholder(t *testing.T) {
	v := fullView()
	v.UserInfo = nil

	out := renderString(t, v)
	assert.Equal(t, 2, bytes.Count([]byte(out), []byte(PlaceholderText)))
}

func TestRenderEmptyView(t *testing.T) {
	out := renderString(t, View{})
	assert.Contains(t, out, "Lucky Ticket")
	assert.Contains(t, out, "concept.")
	assert.Contains(t, out, PlaceholderText)
}

func TestRenderEscapesText(t *testing.T) {
	v := fullView()
	v.AIText = "<script>alert(1)</script>"
	v.Filter = `"><img src=x>`

	out := renderString(t, v)
	assert.NotContains(t, out, "<script>")
	assert.NotContains(t, out, "<img src=x>")
	assert.Contains(t, out, "&lt;script&gt;")
}

func TestRenderLogoSources(t *testing.T) {
	cases := map[string]struct {
		logo string
		want string
	}{
		"https":        {logo: "https://cdn.example.com/logo.png", want: `src="https://cdn.example.com/logo.png"`},
		"relative":     {logo: "/uploads/logo.png", want: `src="/uploads/logo.png"`},
		"data image":   {logo: "data:image/png;base64,aGVsbG8=", want: `src="data:image/png;base64,aGVsbG8="`},
		"javascript":   {logo: "javascript:alert(1)", want: `src="#ZgotmplZ"`},
		"data non-img": {logo: "data:text/html;base64,PGI+", want: `src="#ZgotmplZ"`},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			v := fullView()
			v.TicketLogoImg = Text(tc.logo)
			assert.Contains(t, renderString(t, v), tc.want)
		})
	}
}

func TestRenderPage(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderPage(&buf, fullView()))
	out := buf.String()
	assert.Contains(t, out, "<!DOCTYPE html>")
	assert.Contains(t, out, "concept.sunset")
}

func TestStyleCSS(t *testing.T) {
	cases := map[string]struct {
		style map[string]string
		want  string
	}{
		"empty":          {style: nil, want: ""},
		"camel case":     {style: map[string]string{"fontSize": "12px", "color": "red"}, want: "color: red; font-size: 12px"},
		"color function": {style: map[string]string{"color": "rgba(0, 0, 0, 0.5)"}, want: "color: rgba(0, 0, 0, 0.5)"},
		"url dropped":    {style: map[string]string{"background": "url(javascript:x)", "color": "red"}, want: "color: red"},
		"injection":      {style: map[string]string{"color": "red; position: fixed"}, want: ""},
		"bad property":   {style: map[string]string{"col;or": "red"}, want: ""},
		"blank value":    {style: map[string]string{"color": "  "}, want: ""},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, string(StyleCSS(tc.style)))
		})
	}
}

func TestLayoutColorRejectsUnsafeValue(t *testing.T) {
	v := fullView()
	v.LayoutColor = "red; background: url(x)"
	out := renderString(t, v)
	assert.Contains(t, out, `data-filter="sunset" style=""`)
}

func TestRenderPartialUserInfoFallsBackPerField(t *testing.T) {
	cases := map[string]struct {
		body         string
		placeholders int
		contains     string
	}{
		"content only": {body: `{"filter":"x","userInfo":{"content":"hi"}}`, placeholders: 1, contains: `gam-user-content-text" style="">hi</div>`},
		"name only":    {body: `{"filter":"x","userInfo":{"name":"mina"}}`, placeholders: 1, contains: `gam-user-name" style="">mina</div>`},
		"empty object": {body: `{"filter":"x","userInfo":{}}`, placeholders: 2, contains: `gam-user-name" style="">` + PlaceholderText + `</div>`},
		"null fields":  {body: `{"filter":"x","userInfo":{"name":null,"content":""}}`, placeholders: 2},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			v, err := DecodeView([]byte(tc.body))
			require.NoError(t, err)

			out := renderString(t, v)
			assert.Equal(t, tc.placeholders, bytes.Count([]byte(out), []byte(PlaceholderText)))
			if tc.contains != "" {
				assert.Contains(t, out, tc.contains)
			}
		})
	}
}
