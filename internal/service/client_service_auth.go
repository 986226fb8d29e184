package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/nvoronin/inkwell/internal/adapter"
	"github.com/nvoronin/inkwell/models"
)

type clientAuthService struct {
	adapter adapter.ServerAdapter

	mu   sync.RWMutex
	user models.User
	ok   bool
}

func NewClientAuthService(serverAdapter adapter.ServerAdapter) ClientAuthService {
	return &clientAuthService{adapter: serverAdapter}
}

func (a *clientAuthService) Register(ctx context.Context, user models.User) (models.User, error) {
	registered, err := a.adapter.Register(ctx, user)
	if err != nil {
		return models.User{}, fmt.Errorf("register on server: %w", err)
	}

	a.setUser(registered)
	return registered, nil
}

func (a *clientAuthService) Login(ctx context.Context, login, password string) (models.User, error) {
	user, err := a.adapter.Login(ctx, login, password)
	if err != nil {
		return models.User{}, fmt.Errorf("login on server: %w", err)
	}

	a.setUser(user)
	return user, nil
}

func (a *clientAuthService) Logout(ctx context.Context) error {
	err := a.adapter.Logout(ctx)

	a.mu.Lock()
	a.user = models.User{}
	a.ok = false
	a.mu.Unlock()

	if err != nil {
		return fmt.Errorf("logout on server: %w", err)
	}
	return nil
}

func (a *clientAuthService) CurrentUser() (models.User, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.user, a.ok
}

func (a *clientAuthService) setUser(user models.User) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.user = user
	a.ok = true
}
