// Package flash carries one-time notifications across a redirect in a short-lived cookie.
package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
)

const cookieName = "ma_flash"

// maxMessages bounds the cookie size
const maxMessages = 5

// Kinds of notification
const (
	Success = "success"
	Error   = "error"
	Info    = "info"
)

// Message is one notification
type Message struct {
	Type    string `json:"t"`
	Message string `json:"m"`
}

// Add queues a message for the next rendered page. Messages already queued on this
// request (incoming cookie or earlier Add calls) are kept.
func Add(w http.ResponseWriter, r *http.Request, kind, text string) {
	pending := read(r)
	pending = append(pending, Message{Type: kind, Message: text})
	if len(pending) > maxMessages {
		pending = pending[len(pending)-maxMessages:]
	}

	data, err := json.Marshal(pending)
	if err != nil {
		return
	}
	value := base64.RawURLEncoding.EncodeToString(data)

	// later Add calls on the same request must see this message
	r.AddCookie(&http.Cookie{Name: cookieName, Value: value})
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Pop returns the queued messages and clears the cookie
func Pop(w http.ResponseWriter, r *http.Request) []Message {
	messages := read(r)
	if len(messages) == 0 {
		return nil
	}
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return messages
}

func read(r *http.Request) []Message {
	var latest string
	for _, c := range r.Cookies() {
		if c.Name == cookieName {
			latest = c.Value
		}
	}
	if latest == "" {
		return nil
	}

	data, err := base64.RawURLEncoding.DecodeString(latest)
	if err != nil {
		return nil
	}
	var messages []Message
	if err := json.Unmarshal(data, &messages); err != nil {
		return nil
	}
	return messages
}
