package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"ratehub/internal/database"
	"ratehub/internal/exceptions"
)

// The user comes from a header for now; the console gateway injects it.
const userIDHeader = "X-User-ID"

func userID(r *http.Request) (string, error) {
	id := r.Header.Get(userIDHeader)
	if id == "" {
		return "", errors.New("missing " + userIDHeader + " header")
	}
	return id, nil
}

type shortcutsPayload struct {
	Shortcuts []string `json:"shortcuts"`
}

func GetShortcutsHandler(store *database.PreferenceStore) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := userID(r)
		if err != nil {
			exceptions.RequestErrorHandler(w, err)
			return
		}
		keys, err := store.GetShortcuts(id)
		if err != nil {
			exceptions.InternalErrorHandler(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(shortcutsPayload{Shortcuts: keys})
	})
}

func SaveShortcutsHandler(store *database.PreferenceStore) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := userID(r)
		if err != nil {
			exceptions.RequestErrorHandler(w, err)
			return
		}
		var payload shortcutsPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			exceptions.RequestErrorHandler(w, err)
			return
		}
		if err := store.SaveShortcuts(id, payload.Shortcuts); err != nil {
			exceptions.RequestErrorHandler(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(shortcutsPayload{Shortcuts: payload.Shortcuts})
	})
}

type welcomePayload struct {
	Seen bool `json:"seen"`
}

func GetWelcomeHandler(store *database.PreferenceStore) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := userID(r)
		if err != nil {
			exceptions.RequestErrorHandler(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(welcomePayload{Seen: store.WelcomeSeen(id)})
	})
}

func MarkWelcomeHandler(store *database.PreferenceStore) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := userID(r)
		if err != nil {
			exceptions.RequestErrorHandler(w, err)
			return
		}
		if err := store.MarkWelcomeSeen(id); err != nil {
			exceptions.InternalErrorHandler(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(welcomePayload{Seen: true})
	})
}
