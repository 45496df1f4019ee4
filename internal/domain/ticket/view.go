package ticket

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// PlaceholderText stands in for user info that has not arrived yet.
const PlaceholderText = "로딩 중..."

// Text decodes from a JSON string, number or bool; anything else is empty.
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		*t = ""
		return nil
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			*t = ""
			return nil
		}
		*t = Text(s)
	case 't', 'f':
		*t = Text(b)
	case 'n', '{', '[':
		*t = ""
	default:
		*t = Text(b)
	}
	return nil
}

type UserInfo struct {
	Name    Text `json:"name"`
	Content Text `json:"content"`
}

type DateTime struct {
	DayOfWeek Text `json:"dayOfWeek"`
	Month     Text `json:"month"`
	Day       Text `json:"day"`
	Year      Text `json:"year"`
	Time      Text `json:"time"`
}

// View is everything the ticket card displays. It is assembled by the caller;
// rendering never fails on missing or mistyped optional parts.
type View struct {
	Filter        Text
	TextStyle     map[string]string
	AIText        Text
	UserInfo      *UserInfo
	DateTime      DateTime
	TicketLogoImg Text
	LayoutColor   Text
}

// DecodeView reads a JSON object leniently: each field that does not have the
// expected shape is dropped instead of failing the whole document.
func DecodeView(body []byte) (View, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return View{}, fmt.Errorf("ticket view must be a JSON object: %w", err)
	}

	var v View
	_ = json.Unmarshal(raw["filter"], &v.Filter)
	_ = json.Unmarshal(raw["aiText"], &v.AIText)
	_ = json.Unmarshal(raw["ticketLogoImg"], &v.TicketLogoImg)
	_ = json.Unmarshal(raw["layoutColor"], &v.LayoutColor)

	if b, ok := raw["userInfo"]; ok && isObject(b) {
		var ui UserInfo
		if json.Unmarshal(b, &ui) == nil {
			v.UserInfo = &ui
		}
	}
	if b, ok := raw["dateTime"]; ok && isObject(b) {
		_ = json.Unmarshal(b, &v.DateTime)
	}
	if b, ok := raw["textStyle"]; ok && isObject(b) {
		v.TextStyle = decodeStyle(b)
	}
	return v, nil
}

func isObject(b json.RawMessage) bool {
	b = bytes.TrimSpace(b)
	return len(b) > 0 && b[0] == '{'
}

// decodeStyle turns a style object into property -> value strings. Numbers get
// a px unit unless the property is unitless.
func decodeStyle(b json.RawMessage) map[string]string {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(b, &obj); err != nil {
		return nil
	}
	out := make(map[string]string, len(obj))
	for k, rv := range obj {
		var s string
		if json.Unmarshal(rv, &s) == nil {
			out[k] = s
			continue
		}
		var f float64
		if json.Unmarshal(rv, &f) == nil {
			num := strconv.FormatFloat(f, 'f', -1, 64)
			if f != 0 && !unitless[strings.ToLower(k)] {
				num += "px"
			}
			out[k] = num
		}
	}
	return out
}

var unitless = map[string]bool{
	"opacity":     true,
	"zindex":      true,
	"z-index":     true,
	"fontweight":  true,
	"font-weight": true,
	"lineheight":  true,
	"line-height": true,
	"flex":        true,
	"flexgrow":    true,
	"flex-grow":   true,
	"order":       true,
}
