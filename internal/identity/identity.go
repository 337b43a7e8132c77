// Package identity достаёт пользователя мини-приложения из контекста хоста
// и превращает его в заголовки запросов к backend.
package identity

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const DefaultID = "1"

const (
	HeaderID        = "x-telegram-id"
	HeaderUsername  = "x-telegram-username"
	HeaderFirstName = "x-telegram-first-name"
	HeaderLastName  = "x-telegram-last-name"
)

type Identity struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type Provider interface {
	Current() Identity
}

type staticProvider struct {
	id Identity
}

func (p staticProvider) Current() Identity {
	return p.id
}

// Static возвращает провайдер с фиксированной личностью; пустой id заменяется на DefaultID.
func Static(id Identity) Provider {
	if id.ID == "" {
		id.ID = DefaultID
	}
	return staticProvider{id: id}
}

type hostUser struct {
	ID        json.Number `json:"id"`
	Username  string      `json:"username"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
}

// FromInitData разбирает init data хоста (urlencoded строка с полем user=<json>).
// Без контекста или при битых данных отдаёт личность по умолчанию.
func FromInitData(raw string) Provider {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Static(Identity{})
	}
	q, err := url.ParseQuery(raw)
	if err != nil {
		return Static(Identity{})
	}
	userJSON := q.Get("user")
	if userJSON == "" {
		return Static(Identity{})
	}
	var u hostUser
	if err := json.Unmarshal([]byte(userJSON), &u); err != nil {
		return Static(Identity{})
	}
	id := u.ID.String()
	if _, err := strconv.ParseInt(id, 10, 64); err != nil {
		id = ""
	}
	return Static(Identity{
		ID:        id,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	})
}

// Headers собирает заголовки личности. Имена могут быть не-ASCII, поэтому
// кодируются как URI-компонент.
func Headers(id Identity) http.Header {
	if id.ID == "" {
		id.ID = DefaultID
	}
	h := http.Header{}
	h.Set(HeaderID, id.ID)
	h.Set(HeaderUsername, encodeComponent(id.Username))
	h.Set(HeaderFirstName, encodeComponent(id.FirstName))
	h.Set(HeaderLastName, encodeComponent(id.LastName))
	return h
}

func encodeComponent(s string) string {
	if s == "" {
		return ""
	}
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
