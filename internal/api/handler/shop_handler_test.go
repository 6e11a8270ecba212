package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/Flasky06/unify-pos/internal/core/domain"
	"github.com/Flasky06/unify-pos/internal/core/ports"
)

type stubShopService struct {
	shops   map[string]*domain.Shop
	updated string
	deleted string
}

func newStubShopService(shops ...*domain.Shop) *stubShopService {
	s := &stubShopService{shops: make(map[string]*domain.Shop)}
	for _, shop := range shops {
		s.shops[shop.ID] = shop
	}
	return s
}

func (s *stubShopService) CreateShop(_ context.Context, in ports.CreateShopInput) (*domain.Shop, error) {
	shop := &domain.Shop{ID: "shop_new", Name: in.Name, Location: in.Location, OwnerID: in.OwnerID}
	s.shops[shop.ID] = shop
	return shop, nil
}

func (s *stubShopService) GetShop(_ context.Context, id string) (*domain.Shop, error) {
	if shop, ok := s.shops[id]; ok {
		return shop, nil
	}
	return nil, domain.ErrShopNotFound
}

func (s *stubShopService) ListShops(_ context.Context, ownerID string) ([]*domain.Shop, error) {
	var out []*domain.Shop
	for _, shop := range s.shops {
		if ownerID == "" || shop.OwnerID == ownerID {
			out = append(out, shop)
		}
	}
	return out, nil
}

func (s *stubShopService) UpdateShop(_ context.Context, id string, in ports.UpdateShopInput) (*domain.Shop, error) {
	shop, ok := s.shops[id]
	if !ok {
		return nil, domain.ErrShopNotFound
	}
	shop.Name = in.Name
	shop.Location = in.Location
	s.updated = id
	return shop, nil
}

func (s *stubShopService) DeleteShop(_ context.Context, id string) error {
	if _, ok := s.shops[id]; !ok {
		return domain.ErrShopNotFound
	}
	delete(s.shops, id)
	s.deleted = id
	return nil
}

func ownerSession(userID string) *domain.Session {
	return &domain.Session{
		ID:          "SES-2",
		UserID:      userID,
		Role:        domain.RoleBusinessOwner,
		Permissions: domain.RoleBusinessOwner.Permissions(),
	}
}

func TestShopHandler_Update_OwnerAllowed(t *testing.T) {
	svc := newStubShopService(&domain.Shop{ID: "shop_1", Name: "Main", OwnerID: "owner_1"})
	h := NewShopHandler(svc)

	c, rec := newTestContext(t, http.MethodPut, "/v1/shops/shop_1", `{"name":"Main Branch"}`)
	c.Set("session", ownerSession("owner_1"))
	c.SetParamNames("id")
	c.SetParamValues("shop_1")

	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.updated != "shop_1" {
		t.Fatalf("service not called: %q", svc.updated)
	}
}

// An owner may not mutate another owner's shop even though both hold the
// MANAGE_SHOPS permission.
func TestShopHandler_Update_ForbiddenForOtherOwner(t *testing.T) {
	svc := newStubShopService(&domain.Shop{ID: "shop_1", Name: "Main", OwnerID: "owner_2"})
	h := NewShopHandler(svc)

	c, _ := newTestContext(t, http.MethodPut, "/v1/shops/shop_1", `{"name":"Hijacked"}`)
	c.Set("session", ownerSession("owner_1"))
	c.SetParamNames("id")
	c.SetParamValues("shop_1")

	if err := h.Update(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if svc.updated != "" {
		t.Fatalf("service must not be called on denial")
	}
}

func TestShopHandler_Delete_ForbiddenForOtherOwner(t *testing.T) {
	svc := newStubShopService(&domain.Shop{ID: "shop_1", Name: "Main", OwnerID: "owner_2"})
	h := NewShopHandler(svc)

	c, _ := newTestContext(t, http.MethodDelete, "/v1/shops/shop_1", "")
	c.Set("session", ownerSession("owner_1"))
	c.SetParamNames("id")
	c.SetParamValues("shop_1")

	if err := h.Delete(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if svc.deleted != "" {
		t.Fatalf("service must not be called on denial")
	}
}

func TestShopHandler_Get_SuperAdminAllowed(t *testing.T) {
	svc := newStubShopService(&domain.Shop{ID: "shop_1", Name: "Main", OwnerID: "owner_2"})
	h := NewShopHandler(svc)

	c, rec := newTestContext(t, http.MethodGet, "/v1/shops/shop_1", "")
	c.Set("session", &domain.Session{
		ID:          "SES-3",
		UserID:      "admin_1",
		Role:        domain.RoleSuperAdmin,
		Permissions: domain.RoleSuperAdmin.Permissions(),
	})
	c.SetParamNames("id")
	c.SetParamValues("shop_1")

	if err := h.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
