package mocks

import (
	"net/http"

	"github.com/stretchr/testify/mock"
)

type SessionStore struct{ mock.Mock }

func (m *SessionStore) GetUserID(r *http.Request) string {
	return m.Called(r).String(0)
}

func (m *SessionStore) SetUserID(w http.ResponseWriter, r *http.Request, userID string) error {
	return m.Called(w, r, userID).Error(0)
}

func (m *SessionStore) ClearSession(w http.ResponseWriter, r *http.Request) error {
	return m.Called(w, r).Error(0)
}
