package image

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDataURI(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		subtype string
		data    string
	}{
		{name: "png", in: "data:image/png;base64,aGVsbG8=", subtype: "png", data: "hello"},
		{name: "jpeg", in: "data:image/jpeg;base64,aGVsbG8=", subtype: "jpeg", data: "hello"},
		{name: "no prefix", in: "aGVsbG8=", subtype: "png", data: "hello"},
		{name: "unrecognised subtype", in: "data:image/svg+xml;base64,PHN2Zz4=", subtype: "png", data: "<svg>"},
		{name: "not an image", in: "data:text/plain;base64,aGVsbG8=", subtype: "png", data: "hello"},
		{name: "missing padding", in: "data:image/gif;base64,aGVsbG8", subtype: "gif", data: "hello"},
		{name: "line wrapped", in: "data:image/webp;base64,aGVs\nbG8=", subtype: "webp", data: "hello"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseDataURI(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.subtype, got.Subtype)
			assert.Equal(t, tc.data, string(got.Data))
		})
	}
}

func TestParseDataURIErrors(t *testing.T) {
	_, err := ParseDataURI("data:image/png;base64,")
	assert.ErrorIs(t, err, ErrImageRequired)

	_, err = ParseDataURI("   ")
	assert.ErrorIs(t, err, ErrImageRequired)

	_, err = ParseDataURI("data:image/png;base64,@@not-base64@@")
	assert.ErrorIs(t, err, ErrInvalidImage)
}

func TestParseUserID(t *testing.T) {
	valid := map[string]int64{
		"1":     1,
		" 42 ":  42,
		"0":     0,
		"3.0":   3,
		"1e2":   100,
		"+7":    7,
		"90071": 90071,
	}
	for in, want := range valid {
		got, err := ParseUserID(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"", "  ", "abc", "-1", "1.5", "NaN", "Inf", "1a", "{}", "true"} {
		_, err := ParseUserID(in)
		assert.ErrorIs(t, err, ErrInvalidUserID, in)
	}
}
