package ticket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeView(t *testing.T) {
	body := `{
		"filter": "sunset",
		"textStyle": {"fontSize": 14, "opacity": 0.5, "color": "#333", "bogus": true},
		"aiText": "good luck",
		"userInfo": {"name": "mina", "content": "hi"},
		"dateTime": {"dayOfWeek": "SAT", "month": "OCT", "day": 18, "year": 2026, "time": "14:05"},
		"ticketLogoImg": "/logo.png",
		"layoutColor": "#fff"
	}`

	v, err := DecodeView([]byte(body))
	require.NoError(t, err)

	assert.Equal(t, Text("sunset"), v.Filter)
	assert.Equal(t, map[string]string{"fontSize": "14px", "opacity": "0.5", "color": "#333"}, v.TextStyle)
	assert.Equal(t, Text("good luck"), v.AIText)
	require.NotNil(t, v.UserInfo)
	assert.Equal(t, Text("mina"), v.UserInfo.Name)
	assert.Equal(t, Text("18"), v.DateTime.Day)
	assert.Equal(t, Text("2026"), v.DateTime.Year)
	assert.Equal(t, Text("/logo.png"), v.TicketLogoImg)
	assert.Equal(t, Text("#fff"), v.LayoutColor)
}

func TestDecodeViewDegradesMistypedFields(t *testing.T) {
	body := `{"filter": 3, "userInfo": "mina", "dateTime": [1], "textStyle": "red", "aiText": null}`

	v, err := DecodeView([]byte(body))
	require.NoError(t, err)

	assert.Equal(t, Text("3"), v.Filter)
	assert.Nil(t, v.UserInfo)
	assert.Equal(t, DateTime{}, v.DateTime)
	assert.Nil(t, v.TextStyle)
	assert.Equal(t, Text(""), v.AIText)
}

func TestDecodeViewRejectsNonObject(t *testing.T) {
	for _, body := range []string{"", "not json", "[1,2]", `"text"`} {
		_, err := DecodeView([]byte(body))
		assert.Error(t, err, body)
	}
}

func TestDecodeStyleZeroHasNoUnit(t *testing.T) {
	v, err := DecodeView([]byte(`{"textStyle": {"margin": 0, "zIndex": 2}}`))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"margin": "0", "zIndex": "2"}, v.TextStyle)
}
