package ticket

import (
	"embed"
	"html/template"
	"io"
	"regexp"
	"sort"
	"strings"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Templates holds the "ticket" fragment and the "ticket_page" document.
var Templates = template.Must(template.New("ticket.html.tmpl").ParseFS(templateFS, "templates/*.tmpl"))

type renderData struct {
	Filter      string
	AIText      string
	UserName    string
	UserContent string
	DateTime    DateTime
	LogoSrc     any
	TextStyle   template.CSS
	LayoutStyle template.CSS
}

var (
	cssPropertyRe = regexp.MustCompile(`^-?[a-z][a-z0-9-]*$`)
	cssPlainRe    = regexp.MustCompile(`^[#a-zA-Z0-9%., -]+$`)
	cssColorFnRe  = regexp.MustCompile(`^(rgba?|hsla?)\(\s*[0-9.,%\s/]+\)$`)
	dataImageRe   = regexp.MustCompile(`^data:image/\w+;base64,[A-Za-z0-9+/=_-]+$`)
)

// cssProperty converts fontSize to font-size. Invalid names return "".
func cssProperty(name string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(name) {
		if r >= 'A' && r <= 'Z' {
			b.WriteByte('-')
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	p := b.String()
	if !cssPropertyRe.MatchString(p) {
		return ""
	}
	return p
}

func cssValue(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	if cssPlainRe.MatchString(v) || cssColorFnRe.MatchString(v) {
		return v
	}
	return ""
}

// StyleCSS renders a style map as a declaration list. Entries with names or
// values outside the safe subset are dropped.
func StyleCSS(style map[string]string) template.CSS {
	keys := make([]string, 0, len(style))
	for k := range style {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var decls []string
	for _, k := range keys {
		prop, val := cssProperty(k), cssValue(style[k])
		if prop == "" || val == "" {
			continue
		}
		decls = append(decls, prop+": "+val)
	}
	return template.CSS(strings.Join(decls, "; "))
}

func logoSrc(raw string) any {
	raw = strings.TrimSpace(raw)
	if dataImageRe.MatchString(raw) {
		return template.URL(raw)
	}
	// html/template filters unsafe schemes in src attributes.
	return raw
}

func newRenderData(v View) renderData {
	d := renderData{
		Filter:      string(v.Filter),
		AIText:      string(v.AIText),
		UserName:    PlaceholderText,
		UserContent: PlaceholderText,
		DateTime:    v.DateTime,
		LogoSrc:     logoSrc(string(v.TicketLogoImg)),
		TextStyle:   StyleCSS(v.TextStyle),
	}
	if v.UserInfo != nil {
		if n := string(v.UserInfo.Name); n != "" {
			d.UserName = n
		}
		if c := string(v.UserInfo.Content); c != "" {
			d.UserContent = c
		}
	}
	if c := cssValue(string(v.LayoutColor)); c != "" {
		d.LayoutStyle = template.CSS("color: " + c)
	}
	return d
}

// Render writes the ticket card fragment.
func Render(w io.Writer, v View) error {
	return Templates.ExecuteTemplate(w, "ticket", newRenderData(v))
}

// RenderPage writes the card wrapped in a standalone HTML document.
func RenderPage(w io.Writer, v View) error {
	return Templates.ExecuteTemplate(w, "ticket_page", newRenderData(v))
}
