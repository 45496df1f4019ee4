package image

import (
	"encoding/base64"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// DefaultSubtype is used when the payload carries no data:image/<subtype> prefix.
const DefaultSubtype = "png"

var dataURIPrefix = regexp.MustCompile(`^data:image/(\w+);base64,`)

// DataURI is a decoded data:image/<subtype>;base64,<payload> string.
type DataURI struct {
	Subtype string
	Data    []byte
}

// ParseDataURI extracts the subtype and decodes the payload. A missing or
// non-matching prefix falls back to png.
func ParseDataURI(s string) (DataURI, error) {
	subtype, payload := splitDataURI(s)
	out := DataURI{Subtype: subtype}
	if payload == "" {
		return out, ErrImageRequired
	}

	data, err := decodeBase64(payload)
	if err != nil {
		return out, ErrInvalidImage
	}
	if len(data) == 0 {
		return out, ErrImageRequired
	}
	out.Data = data
	return out, nil
}

// splitDataURI strips the data URI prefix and whitespace without decoding.
func splitDataURI(s string) (subtype, payload string) {
	subtype, payload = DefaultSubtype, s
	if m := dataURIPrefix.FindStringSubmatchIndex(s); m != nil {
		subtype = s[m[2]:m[3]]
		payload = s[m[1]:]
	} else if strings.HasPrefix(s, "data:") {
		// Unrecognised media type: keep the png default, decode what follows.
		if i := strings.Index(s, ";base64,"); i >= 0 {
			payload = s[i+len(";base64,"):]
		}
	}
	return subtype, strings.Join(strings.Fields(payload), "")
}

func decodeBase64(s string) ([]byte, error) {
	if data, err := base64.StdEncoding.DecodeString(s); err == nil {
		return data, nil
	}
	if data, err := base64.URLEncoding.DecodeString(s); err == nil {
		return data, nil
	}
	trimmed := strings.TrimRight(s, "=")
	if data, err := base64.RawStdEncoding.DecodeString(trimmed); err == nil {
		return data, nil
	}
	return base64.RawURLEncoding.DecodeString(trimmed)
}

// ParseUserID accepts a decimal integer, optionally written as an integral
// float ("3.0", "1e2"). Negative, fractional and empty values are rejected.
func ParseUserID(raw string) (int64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, ErrInvalidUserID
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		if n < 0 {
			return 0, ErrInvalidUserID
		}
		return n, nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, ErrInvalidUserID
	}
	if f < 0 || f != math.Trunc(f) || f > math.MaxInt64/2 {
		return 0, ErrInvalidUserID
	}
	return int64(f), nil
}
