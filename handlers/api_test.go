package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"food-ordering-api/auth"
	"food-ordering-api/config"
	"food-ordering-api/handlers"
	"food-ordering-api/models"
	"food-ordering-api/routes"
	"food-ordering-api/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func newTestServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := config.OpenDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	codec, err := auth.NewCodec("test-secret", time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	r := gin.New()
	routes.SetupRoutes(r, routes.Handlers{
		Resolver: auth.NewResolver(db, codec),
		Auth:     handlers.NewAuthHandler(db, codec),
		Cart:     handlers.NewCartHandler(services.NewCartService(db, 0)),
		Catalog:  handlers.NewCatalogHandler(services.NewCatalogService(db, nil, 0)),
		Order:    handlers.NewOrderHandler(services.NewOrderService(db, nil, 0)),
	})
	return r, db
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	parsed := map[string]any{}
	_ = json.Unmarshal(w.Body.Bytes(), &parsed)
	return w, parsed
}

func register(t *testing.T, r *gin.Engine, name string, role models.Role, country, phone string) string {
	t.Helper()
	body := map[string]any{
		"name":     name,
		"email":    name + "@example.com",
		"password": "password123",
		"role":     role,
		"country":  country,
	}
	if phone != "" {
		body["phone"] = phone
	}
	w, resp := doJSON(t, r, http.MethodPost, "/api/auth/register", "", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("register %s: status %d body %s", name, w.Code, w.Body.String())
	}
	token, _ := resp["token"].(string)
	if token == "" {
		t.Fatalf("register %s: no token in %v", name, resp)
	}
	return token
}

func seedRestaurant(t *testing.T, db *gorm.DB, country string, price float64) *models.Restaurant {
	t.Helper()
	r := &models.Restaurant{
		Name: "Test Kitchen", Country: country, Location: "1 Test St", Cuisine: "Fusion",
		Items: []models.Item{{Name: "Special", Price: price}},
	}
	if err := db.Create(r).Error; err != nil {
		t.Fatal(err)
	}
	return r
}

func TestAuthRequired(t *testing.T) {
	r, _ := newTestServer(t)

	w, _ := doJSON(t, r, http.MethodGet, "/api/cart/fetch", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("no token: status %d, want 401", w.Code)
	}

	w, _ = doJSON(t, r, http.MethodGet, "/api/cart/fetch", "bogus-token", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("bad token: status %d, want 401", w.Code)
	}
}

func TestLogin(t *testing.T) {
	r, _ := newTestServer(t)
	register(t, r, "alice", models.RoleMember, "IN", "")

	w, resp := doJSON(t, r, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": "alice@example.com", "password": "password123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login: status %d body %s", w.Code, w.Body.String())
	}
	if resp["token"] == "" {
		t.Fatal("login: missing token")
	}

	w, _ = doJSON(t, r, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": "alice@example.com", "password": "wrong-password",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("bad password: status %d, want 401", w.Code)
	}
}

func TestCartAndOrderFlow(t *testing.T) {
	r, db := newTestServer(t)
	member := register(t, r, "bob", models.RoleMember, "IN", "")
	manager := register(t, r, "carol", models.RoleManager, "IN", "+911234500101")
	rest := seedRestaurant(t, db, "IN", 250)
	itemID := rest.Items[0].ID

	add := func(kind string) (*httptest.ResponseRecorder, map[string]any) {
		return doJSON(t, r, http.MethodPost, "/api/cart/add", member, map[string]any{
			"itemId": itemID, "restaurantId": rest.ID, "type": kind,
		})
	}

	w, resp := add("increment")
	if w.Code != http.StatusOK {
		t.Fatalf("add: status %d body %s", w.Code, w.Body.String())
	}
	cart := resp["cart"].(map[string]any)
	if cart["total_price"].(float64) != 250 {
		t.Fatalf("total = %v, want 250", cart["total_price"])
	}
	cartID := cart["cart_id"].(string)

	if w, _ = add("increment"); w.Code != http.StatusOK {
		t.Fatalf("second add: status %d", w.Code)
	}

	w, resp = doJSON(t, r, http.MethodGet, "/api/cart/fetch", member, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("fetch: status %d", w.Code)
	}
	lines := resp["formattedItems"].([]any)
	if len(lines) != 1 {
		t.Fatalf("fetch lines = %d, want 1", len(lines))
	}
	if qty := lines[0].(map[string]any)["quantity"].(float64); qty != 2 {
		t.Fatalf("quantity = %v, want 2", qty)
	}

	// unknown action is rejected by binding
	if w, _ = add("replace"); w.Code != http.StatusBadRequest {
		t.Fatalf("bad action: status %d, want 400", w.Code)
	}

	// place the order
	w, _ = doJSON(t, r, http.MethodPost, "/api/order/create", member, map[string]any{})
	if w.Code != http.StatusOK {
		t.Fatalf("order create: status %d body %s", w.Code, w.Body.String())
	}

	// members cannot reach the cancel route at all
	w, _ = doJSON(t, r, http.MethodPost, "/api/order/cancel", member, map[string]any{"cartId": cartID})
	if w.Code != http.StatusForbidden {
		t.Fatalf("member cancel: status %d, want 403", w.Code)
	}

	w, _ = doJSON(t, r, http.MethodPost, "/api/order/cancel", manager, map[string]any{"cartId": cartID})
	if w.Code != http.StatusOK {
		t.Fatalf("manager cancel: status %d body %s", w.Code, w.Body.String())
	}

	// already cancelled
	w, _ = doJSON(t, r, http.MethodPost, "/api/order/cancel", manager, map[string]any{"cartId": cartID})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("double cancel: status %d, want 422", w.Code)
	}
}

func TestCatalogEndpoints(t *testing.T) {
	r, db := newTestServer(t)
	member := register(t, r, "dave", models.RoleMember, "IN", "")
	rest := seedRestaurant(t, db, "IN", 100)
	seedRestaurant(t, db, "SG", 12)

	w, resp := doJSON(t, r, http.MethodGet, "/api/catalog/restaurants", member, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("restaurants: status %d", w.Code)
	}
	if count := resp["count"].(float64); count != 1 {
		t.Fatalf("member restaurant count = %v, want 1", count)
	}

	w, resp = doJSON(t, r, http.MethodGet, "/api/catalog/restaurants/"+rest.ID+"/menu", member, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("menu: status %d", w.Code)
	}
	if count := resp["count"].(float64); count != 1 {
		t.Fatalf("menu count = %v, want 1", count)
	}

	w, _ = doJSON(t, r, http.MethodGet, "/api/catalog/restaurants/missing/menu", member, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("missing restaurant: status %d, want 404", w.Code)
	}
}

func TestRegisterDuplicates(t *testing.T) {
	r, _ := newTestServer(t)
	register(t, r, "frank", models.RoleMember, "IN", "+911234500301")

	w, _ := doJSON(t, r, http.MethodPost, "/api/auth/register", "", map[string]any{
		"name": "frank2", "email": "frank@example.com", "password": "password123",
		"role": models.RoleMember, "country": "IN",
	})
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate email: status %d, want 409", w.Code)
	}

	// a different email with the same phone bypasses the email pre-check
	// and must surface the unique index violation as a conflict, not a 500
	w, _ = doJSON(t, r, http.MethodPost, "/api/auth/register", "", map[string]any{
		"name": "grace", "email": "grace@example.com", "password": "password123",
		"role": models.RoleMember, "country": "IN", "phone": "+911234500301",
	})
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate phone: status %d body %s, want 409", w.Code, w.Body.String())
	}
}

func TestStaffActOnCustomerByPhone(t *testing.T) {
	r, db := newTestServer(t)
	customer := register(t, r, "heidi", models.RoleMember, "IN", "+911234500401")
	manager := register(t, r, "ivan", models.RoleManager, "IN", "+911234500402")
	admin := register(t, r, "judy", models.RoleAdmin, "IN", "+911234500403")
	rest := seedRestaurant(t, db, "IN", 180)

	w, resp := doJSON(t, r, http.MethodPost, "/api/cart/add", customer, map[string]any{
		"itemId": rest.Items[0].ID, "restaurantId": rest.ID, "type": "increment",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("add: status %d body %s", w.Code, w.Body.String())
	}
	cartID := resp["cart"].(map[string]any)["cart_id"].(string)

	w, _ = doJSON(t, r, http.MethodPost, "/api/order/create", customer, map[string]any{})
	if w.Code != http.StatusOK {
		t.Fatalf("order create: status %d body %s", w.Code, w.Body.String())
	}

	// manager inspects the customer's orders by phone
	w, resp = doJSON(t, r, http.MethodGet, "/api/order/fetch?phoneNo=%2B911234500401", manager, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("order fetch: status %d body %s", w.Code, w.Body.String())
	}
	if lines := resp["formattedItems"].([]any); len(lines) != 1 {
		t.Fatalf("fetched lines = %d, want 1", len(lines))
	}

	w, resp = doJSON(t, r, http.MethodGet, "/api/order/fetch/latest?phoneNo=%2B911234500401", manager, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("latest fetch: status %d body %s", w.Code, w.Body.String())
	}
	if lines := resp["formattedItems"].([]any); len(lines) != 1 {
		t.Fatalf("latest lines = %d, want 1", len(lines))
	}

	// admin settles the customer's payment by phone, completing the order
	w, _ = doJSON(t, r, http.MethodPost, "/api/order/payment/modify", admin, map[string]any{
		"cartId": cartID, "payment_method": "UPI", "phoneNo": "+911234500401",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("payment modify: status %d body %s", w.Code, w.Body.String())
	}

	var stored models.Cart
	if err := db.First(&stored, "id = ?", cartID).Error; err != nil {
		t.Fatal(err)
	}
	if stored.Status != models.StatusCompleted {
		t.Fatalf("status = %s, want COMPLETED", stored.Status)
	}
}

func TestPaymentModifyRouteGate(t *testing.T) {
	r, _ := newTestServer(t)
	manager := register(t, r, "erin", models.RoleManager, "IN", "+911234500201")

	w, _ := doJSON(t, r, http.MethodPost, "/api/order/payment/modify", manager, map[string]any{
		"cartId": "whatever", "payment_method": "UPI",
	})
	if w.Code != http.StatusForbidden {
		t.Fatalf("manager payment modify: status %d, want 403", w.Code)
	}
}
