// Package auth содержит контекст учётных данных клиента витрины и события
// внешнего провайдера аутентификации.
package auth

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/oauth2"
)

// ErrNoToken возвращается, если bearer-токен не установлен.
var ErrNoToken = errors.New("no bearer token")

// Credentials хранит текущий bearer-токен и отдаёт его транспорту.
// Каждый запрос читает токен в момент отправки.
type Credentials struct {
	mu    sync.RWMutex
	token *oauth2.Token
}

var _ oauth2.TokenSource = (*Credentials)(nil)

// NewCredentials создаёт пустой контекст учётных данных.
func NewCredentials() *Credentials {
	return &Credentials{}
}

// Set устанавливает bearer-токен. Пустая строка равносильна Clear.
func (c *Credentials) Set(accessToken string) {
	if accessToken == "" {
		c.Clear()
		return
	}
	c.SetToken(&oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"})
}

// SetToken устанавливает токен целиком.
func (c *Credentials) SetToken(t *oauth2.Token) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = t
}

// Clear удаляет токен; последующие запросы уходят анонимно.
func (c *Credentials) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = nil
}

// Token реализует oauth2.TokenSource.
func (c *Credentials) Token() (*oauth2.Token, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.token == nil || c.token.AccessToken == "" {
		return nil, ErrNoToken
	}
	t := *c.token
	return &t, nil
}

// TokenFunc асинхронно получает bearer-токен у провайдера аутентификации.
type TokenFunc func(ctx context.Context) (string, error)

// StaticToken возвращает TokenFunc, всегда отдающую указанный токен.
func StaticToken(token string) TokenFunc {
	return func(context.Context) (string, error) {
		if token == "" {
			return "", ErrNoToken
		}
		return token, nil
	}
}

// Event описывает смену статуса аутентификации у внешнего провайдера.
type Event struct {
	SignedIn bool
	Identity string
	Token    TokenFunc
}

// SignedIn строит событие входа пользователя.
func SignedIn(identity string, token TokenFunc) Event {
	return Event{SignedIn: true, Identity: identity, Token: token}
}

// SignedOut строит событие выхода пользователя.
func SignedOut() Event {
	return Event{}
}
