package service

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/Flasky06/unify-pos/internal/core/domain"
	"github.com/Flasky06/unify-pos/internal/core/ports"
)

type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Email]; exists {
		return nil, domain.ErrUserExists
	}
	r.nextID++
	copy := cloneUser(user)
	copy.ID = "u" + strconv.Itoa(r.nextID)
	r.users[copy.Email] = cloneUser(copy)
	return copy, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if u, ok := r.users[email]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

type stubSessionStore struct {
	sessions map[string]*domain.Session
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: make(map[string]*domain.Session)}
}

func (s *stubSessionStore) Save(_ context.Context, sess *domain.Session) error {
	s.sessions[sess.ID] = sess
	return nil
}

func (s *stubSessionStore) Find(_ context.Context, id string) (*domain.Session, error) {
	if sess, ok := s.sessions[id]; ok {
		return sess, nil
	}
	return nil, domain.ErrSessionNotFound
}

func (s *stubSessionStore) Delete(_ context.Context, id string) error {
	delete(s.sessions, id)
	return nil
}

func newTestAuthService() (*AuthService, *stubUserRepo, *stubSessionStore) {
	repo := newStubUserRepo()
	store := newStubSessionStore()
	return NewAuthService(repo, store, "secret", time.Hour, zerolog.Nop()), repo, store
}

func registerInput(email string, role domain.Role) ports.RegisterInput {
	return ports.RegisterInput{
		Name:     "Test User",
		Email:    email,
		Password: "pass1234",
		Role:     string(role),
	}
}

func TestAuthService_Register_HashesPassword(t *testing.T) {
	svc, _, _ := newTestAuthService()

	user, err := svc.Register(context.Background(), registerInput("alice@example.com", domain.RoleCashier))
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.PasswordHash == "pass1234" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass1234")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.Role != domain.RoleCashier {
		t.Fatalf("unexpected role: %s", user.Role)
	}
}

func TestAuthService_Register_RejectsUnknownRole(t *testing.T) {
	svc, _, _ := newTestAuthService()

	in := registerInput("bob@example.com", "ADMIN")
	if _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	svc, _, _ := newTestAuthService()

	if _, err := svc.Register(context.Background(), registerInput("bob@example.com", domain.RoleCashier)); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), registerInput("bob@example.com", domain.RoleCashier)); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Login_CreatesSessionAndToken(t *testing.T) {
	svc, _, store := newTestAuthService()

	in := registerInput("carol@example.com", domain.RoleShopManager)
	in.ShopID = "shop_9"
	if _, err := svc.Register(context.Background(), in); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "carol@example.com", "pass1234")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" || user == nil {
		t.Fatalf("expected token and user")
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	sid, _ := claims["sid"].(string)
	if sid == "" {
		t.Fatalf("token missing sid claim")
	}
	if claims["role"] != string(domain.RoleShopManager) {
		t.Fatalf("unexpected role claim: %v", claims["role"])
	}
	if claims["shop_id"] != "shop_9" {
		t.Fatalf("unexpected shop_id claim: %v", claims["shop_id"])
	}

	session, err := store.Find(context.Background(), sid)
	if err != nil {
		t.Fatalf("session not stored: %v", err)
	}
	if session.UserID != user.ID {
		t.Fatalf("session bound to wrong user: %s", session.UserID)
	}
	if len(session.Permissions) == 0 {
		t.Fatalf("session missing permission set")
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	svc, _, _ := newTestAuthService()

	_, _ = svc.Register(context.Background(), registerInput("dave@example.com", domain.RoleCashier))
	if _, _, err := svc.Login(context.Background(), "dave@example.com", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Logout_DeletesSession(t *testing.T) {
	svc, _, store := newTestAuthService()

	_, _ = svc.Register(context.Background(), registerInput("erin@example.com", domain.RoleCashier))
	token, _, err := svc.Login(context.Background(), "erin@example.com", "pass1234")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	claims := jwt.MapClaims{}
	if _, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	}); err != nil {
		t.Fatalf("parse token: %v", err)
	}
	sid := claims["sid"].(string)

	if err := svc.Logout(context.Background(), sid); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if _, err := store.Find(context.Background(), sid); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("session should be gone, got %v", err)
	}
}
