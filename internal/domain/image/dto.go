package image

import (
	"bytes"
	"encoding/json"
	"time"
)

// UserIDField keeps the raw userId text so a JSON number and a numeric string
// are validated the same way.
type UserIDField string

func (f *UserIDField) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = UserIDField(s)
		return nil
	}
	*f = UserIDField(b)
	return nil
}

type UploadRequest struct {
	UserID UserIDField `json:"userId"`
	Image  string      `json:"image"`
}

type FilterRequest struct {
	FilterStr *string `json:"filterStr"`
}

type UploadResponse struct {
	ID       int64  `json:"id"`
	Img      string `json:"img"`
	ImageURL string `json:"imageUrl"`
}

type UserImageResponse struct {
	ImageID  int64  `json:"imageId"`
	UserID   int64  `json:"userId"`
	ImageURL string `json:"imageUrl"`
}

type ImageItem struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	ImageURL  string    `json:"imageUrl"`
	CreatedAt time.Time `json:"createdAt"`
}

type FilterImageItem struct {
	ID        int64  `json:"id"`
	FilterStr string `json:"filterStr"`
	ImageURL  string `json:"imageUrl"`
}
