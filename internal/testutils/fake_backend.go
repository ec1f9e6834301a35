package testutils

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/storefront-console/internal/backend"
	"github.com/aaravmahajanofficial/storefront-console/internal/config"
	"github.com/aaravmahajanofficial/storefront-console/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type fakeAccount struct {
	password string
	user     models.User
}

// FakeBackend is an in-memory stand-in for the storefront REST API. It speaks the same
// cookie session and csrf protocol, so a real backend.Client can be pointed at it.
type FakeBackend struct {
	Server *httptest.Server

	mu        sync.Mutex
	accounts  map[string]*fakeAccount
	sessions  map[string]string
	products  map[int64]models.Product
	carts     map[string]*models.Cart
	orders    []models.Order
	owners    map[int64]string
	refunds   []models.RefundRequest
	nextID    int64
	calls     map[string]int
	created   []models.CreateOrderRequest
	failClear bool
	failOrder bool
}

func NewFakeBackend(t *testing.T) *FakeBackend {
	t.Helper()

	f := &FakeBackend{
		accounts: make(map[string]*fakeAccount),
		sessions: make(map[string]string),
		products: make(map[int64]models.Product),
		carts:    make(map[string]*models.Cart),
		owners:   make(map[int64]string),
		calls:    make(map[string]int),
		nextID:   100,
	}

	f.Server = httptest.NewServer(f.routes())
	t.Cleanup(f.Server.Close)

	return f
}

// Client returns a backend client for the fake and a context carrying a fresh cookie jar.
func (f *FakeBackend) Client(t *testing.T) (*backend.Client, context.Context) {
	t.Helper()

	client, err := backend.NewClient(config.Backend{
		BaseURL:    f.Server.URL,
		MediaURL:   f.Server.URL + "/media",
		Timeout:    5 * time.Second,
		CSRFCookie: "csrftoken",
		CSRFHeader: "X-CSRFToken",
	})
	require.NoError(t, err)

	return client, backend.WithJar(t.Context(), backend.NewJar())
}

func (f *FakeBackend) AddUser(username, password string, staff bool, role models.Role) models.User {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	user := models.User{ID: f.nextID, Username: username, Email: username + "@example.com", IsStaff: staff, Role: role}
	f.accounts[username] = &fakeAccount{password: password, user: user}

	return user
}

func (f *FakeBackend) AddProduct(name string, price models.Money, stock int) models.Product {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	product := models.Product{ID: f.nextID, Name: name, Price: price, StockQuantity: stock, IsVisible: true}
	f.products[product.ID] = product

	return product
}

// SetOrderStatus moves an order without going through the API, e.g. to mark it delivered.
func (f *FakeBackend) SetOrderStatus(orderID int64, status models.OrderStatus) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.orders {
		if f.orders[i].ID == orderID {
			f.orders[i].Status = status
		}
	}
}

func (f *FakeBackend) FailClearCart(fail bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.failClear = fail
}

func (f *FakeBackend) FailOrders(fail bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.failOrder = fail
}

// Calls counts requests by "METHOD /path/".
func (f *FakeBackend) Calls(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.calls[key]
}

// CreatedOrders returns the decoded bodies of every order creation request.
func (f *FakeBackend) CreatedOrders() []models.CreateOrderRequest {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]models.CreateOrderRequest(nil), f.created...)
}

func (f *FakeBackend) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /auth/csrf/{$}", f.csrf)
	mux.HandleFunc("GET /auth/session/{$}", f.session)
	mux.HandleFunc("POST /auth/login/{$}", f.login)
	mux.HandleFunc("GET /auth/user/{$}", f.authed(f.currentUser))
	mux.HandleFunc("POST /auth/logout/{$}", f.logout)
	mux.HandleFunc("POST /auth/register/{$}", f.register)

	mux.HandleFunc("GET /api/carts/{$}", f.authed(f.getCart))
	mux.HandleFunc("POST /api/carts/{$}", f.authed(f.addCartItem))
	mux.HandleFunc("PATCH /api/carts/{id}/{$}", f.authed(f.updateCartItem))
	mux.HandleFunc("DELETE /api/carts/{id}/{$}", f.authed(f.removeCartItem))
	mux.HandleFunc("POST /api/carts/clear_cart/{$}", f.authed(f.clearCart))

	mux.HandleFunc("GET /api/products/{id}/{$}", f.getProduct)

	mux.HandleFunc("GET /api/orders/{$}", f.authed(f.listOrders))
	mux.HandleFunc("POST /api/orders/{$}", f.authed(f.createOrder))
	mux.HandleFunc("GET /api/orders/{id}/{$}", f.authed(f.getOrder))

	mux.HandleFunc("GET /api/refunds/my_refunds/{$}", f.authed(f.myRefunds))
	mux.HandleFunc("GET /api/refunds/pending_refunds/{$}", f.staff(f.pendingRefunds))
	mux.HandleFunc("POST /api/refunds/{$}", f.authed(f.createRefund))
	mux.HandleFunc("POST /api/refunds/{id}/approve/{$}", f.staff(f.approveRefund))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.calls[r.Method+" "+r.URL.Path]++
		f.mu.Unlock()

		if r.Method != http.MethodGet && !f.csrfValid(r) {
			writeFake(w, http.StatusForbidden, map[string]string{"detail": "CSRF Failed: CSRF token missing or incorrect."})
			return
		}

		mux.ServeHTTP(w, r)
	})
}

func writeFake(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func (f *FakeBackend) csrfValid(r *http.Request) bool {
	cookie, err := r.Cookie("csrftoken")
	return err == nil && cookie.Value != "" && r.Header.Get("X-CSRFToken") == cookie.Value
}

// username of the request's session, "" when anonymous. Caller holds f.mu.
func (f *FakeBackend) usernameLocked(r *http.Request) string {
	cookie, err := r.Cookie("sessionid")
	if err != nil {
		return ""
	}

	return f.sessions[cookie.Value]
}

type fakeHandler func(w http.ResponseWriter, r *http.Request, account *fakeAccount)

func (f *FakeBackend) authed(next fakeHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		account := f.accounts[f.usernameLocked(r)]
		if account == nil {
			writeFake(w, http.StatusForbidden, map[string]string{"detail": "Authentication credentials were not provided."})
			return
		}

		next(w, r, account)
	}
}

func (f *FakeBackend) staff(next fakeHandler) http.HandlerFunc {
	return f.authed(func(w http.ResponseWriter, r *http.Request, account *fakeAccount) {
		if !account.user.IsStaff {
			writeFake(w, http.StatusForbidden, map[string]string{"detail": "You do not have permission to perform this action."})
			return
		}

		next(w, r, account)
	})
}

func (f *FakeBackend) csrf(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{Name: "csrftoken", Value: uuid.NewString(), Path: "/"})
	writeFake(w, http.StatusOK, map[string]string{"detail": "CSRF cookie set"})
}

func (f *FakeBackend) session(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	writeFake(w, http.StatusOK, map[string]bool{"is_authenticated": f.usernameLocked(r) != ""})
}

func (f *FakeBackend) login(w http.ResponseWriter, r *http.Request) {
	var creds models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeFake(w, http.StatusBadRequest, map[string]string{"detail": "Malformed request"})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	account := f.accounts[creds.Username]
	if account == nil || account.password != creds.Password {
		writeFake(w, http.StatusBadRequest, map[string][]string{"non_field_errors": {"Invalid credentials"}})
		return
	}

	sid := uuid.NewString()
	f.sessions[sid] = creds.Username
	http.SetCookie(w, &http.Cookie{Name: "sessionid", Value: sid, Path: "/"})

	writeFake(w, http.StatusOK, map[string]any{"user": account.user})
}

func (f *FakeBackend) currentUser(w http.ResponseWriter, r *http.Request, account *fakeAccount) {
	writeFake(w, http.StatusOK, account.user)
}

func (f *FakeBackend) logout(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if cookie, err := r.Cookie("sessionid"); err == nil {
		delete(f.sessions, cookie.Value)
	}

	http.SetCookie(w, &http.Cookie{Name: "sessionid", Value: "", Path: "/", MaxAge: -1})
	w.WriteHeader(http.StatusNoContent)
}

func (f *FakeBackend) register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFake(w, http.StatusBadRequest, map[string]string{"detail": "Malformed request"})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, exists := f.accounts[req.Username]; exists {
		writeFake(w, http.StatusBadRequest, map[string]string{"error": "Username already taken"})
		return
	}

	f.nextID++
	user := models.User{ID: f.nextID, Username: req.Username, Email: req.Email, Role: models.RoleCustomer}
	f.accounts[req.Username] = &fakeAccount{password: req.Password, user: user}

	writeFake(w, http.StatusCreated, user)
}

func (f *FakeBackend) cartLocked(username string) *models.Cart {
	cart, ok := f.carts[username]
	if !ok {
		f.nextID++
		cart = &models.Cart{ID: f.nextID, Items: []models.CartItem{}}
		f.carts[username] = cart
	}

	return cart
}

func (f *FakeBackend) getCart(w http.ResponseWriter, r *http.Request, account *fakeAccount) {
	cart := f.cartLocked(account.user.Username)

	// refresh product data the way the real serializer does
	for i := range cart.Items {
		cart.Items[i].Product = f.products[cart.Items[i].Product.ID]
	}

	writeFake(w, http.StatusOK, []models.Cart{*cart})
}

func (f *FakeBackend) addCartItem(w http.ResponseWriter, r *http.Request, account *fakeAccount) {
	var req models.AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFake(w, http.StatusBadRequest, map[string]string{"detail": "Malformed request"})
		return
	}

	product, ok := f.products[req.ProductID]
	if !ok {
		writeFake(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
		return
	}

	cart := f.cartLocked(account.user.Username)
	for i := range cart.Items {
		if cart.Items[i].Product.ID == req.ProductID {
			if cart.Items[i].Quantity+req.Quantity > product.StockQuantity {
				writeFake(w, http.StatusBadRequest, map[string]string{"error": "Not enough stock"})
				return
			}
			cart.Items[i].Quantity += req.Quantity
			writeFake(w, http.StatusOK, cart.Items[i])
			return
		}
	}

	if req.Quantity > product.StockQuantity {
		writeFake(w, http.StatusBadRequest, map[string]string{"error": "Not enough stock"})
		return
	}

	f.nextID++
	item := models.CartItem{ID: f.nextID, Product: product, Quantity: req.Quantity}
	cart.Items = append(cart.Items, item)

	writeFake(w, http.StatusCreated, item)
}

func (f *FakeBackend) updateCartItem(w http.ResponseWriter, r *http.Request, account *fakeAccount) {
	id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)

	var req models.UpdateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFake(w, http.StatusBadRequest, map[string]string{"detail": "Malformed request"})
		return
	}

	cart := f.cartLocked(account.user.Username)
	for i := range cart.Items {
		if cart.Items[i].ID == id {
			cart.Items[i].Quantity = req.Quantity
			writeFake(w, http.StatusOK, cart.Items[i])
			return
		}
	}

	writeFake(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
}

func (f *FakeBackend) removeCartItem(w http.ResponseWriter, r *http.Request, account *fakeAccount) {
	id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)

	cart := f.cartLocked(account.user.Username)
	for i := range cart.Items {
		if cart.Items[i].ID == id {
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}

	writeFake(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
}

func (f *FakeBackend) clearCart(w http.ResponseWriter, r *http.Request, account *fakeAccount) {
	if f.failClear {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	f.cartLocked(account.user.Username).Items = []models.CartItem{}
	writeFake(w, http.StatusOK, map[string]string{"message": "Cart cleared"})
}

func (f *FakeBackend) getProduct(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)

	f.mu.Lock()
	defer f.mu.Unlock()

	product, ok := f.products[id]
	if !ok {
		writeFake(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
		return
	}

	writeFake(w, http.StatusOK, product)
}

func (f *FakeBackend) listOrders(w http.ResponseWriter, r *http.Request, account *fakeAccount) {
	mine := []models.Order{}
	for _, o := range f.orders {
		if f.owners[o.ID] == account.user.Username {
			mine = append(mine, o)
		}
	}

	writeFake(w, http.StatusOK, map[string]any{"count": len(mine), "next": nil, "previous": nil, "results": mine})
}

func (f *FakeBackend) createOrder(w http.ResponseWriter, r *http.Request, account *fakeAccount) {
	var req models.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFake(w, http.StatusBadRequest, map[string]string{"detail": "Malformed request"})
		return
	}

	f.created = append(f.created, req)

	if f.failOrder {
		writeFake(w, http.StatusBadRequest, map[string]string{"error": "Payment declined"})
		return
	}

	f.nextID++
	order := models.Order{
		ID:              f.nextID,
		User:            account.user.Username,
		Status:          models.OrderStatusProcessing,
		TotalAmount:     req.TotalAmount,
		ShippingAddress: req.ShippingAddress,
		CreatedAt:       time.Now(),
	}

	for _, line := range req.Items {
		f.nextID++
		product := f.products[line.ProductID]
		order.Items = append(order.Items, models.OrderItem{
			ID:          f.nextID,
			ProductID:   line.ProductID,
			ProductName: product.Name,
			Quantity:    line.Quantity,
			Price:       product.Price,
		})
	}

	f.orders = append(f.orders, order)
	f.owners[order.ID] = account.user.Username

	writeFake(w, http.StatusCreated, order)
}

func (f *FakeBackend) getOrder(w http.ResponseWriter, r *http.Request, account *fakeAccount) {
	id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)

	for _, o := range f.orders {
		if o.ID == id && (f.owners[id] == account.user.Username || account.user.IsStaff) {
			writeFake(w, http.StatusOK, o)
			return
		}
	}

	writeFake(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
}

func (f *FakeBackend) myRefunds(w http.ResponseWriter, r *http.Request, account *fakeAccount) {
	mine := []models.RefundRequest{}
	for _, rr := range f.refunds {
		if rr.Requester == account.user.Username {
			mine = append(mine, rr)
		}
	}

	writeFake(w, http.StatusOK, mine)
}

func (f *FakeBackend) pendingRefunds(w http.ResponseWriter, r *http.Request, account *fakeAccount) {
	pending := []models.RefundRequest{}
	for _, rr := range f.refunds {
		if rr.Status == models.RefundStatusPending {
			pending = append(pending, rr)
		}
	}

	writeFake(w, http.StatusOK, map[string]any{"count": len(pending), "results": pending})
}

func (f *FakeBackend) createRefund(w http.ResponseWriter, r *http.Request, account *fakeAccount) {
	var req struct {
		OrderItem int64  `json:"order_item"`
		Reason    string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFake(w, http.StatusBadRequest, map[string]string{"detail": "Malformed request"})
		return
	}

	f.nextID++
	refund := models.RefundRequest{
		ID:        f.nextID,
		OrderItem: req.OrderItem,
		Requester: account.user.Username,
		Reason:    req.Reason,
		Status:    models.RefundStatusPending,
		CreatedAt: time.Now(),
	}
	f.refunds = append(f.refunds, refund)

	writeFake(w, http.StatusCreated, refund)
}

func (f *FakeBackend) approveRefund(w http.ResponseWriter, r *http.Request, account *fakeAccount) {
	id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)

	for i := range f.refunds {
		if f.refunds[i].ID != id {
			continue
		}

		if f.refunds[i].Status != models.RefundStatusPending {
			writeFake(w, http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("Refund already %s", f.refunds[i].Status)})
			return
		}

		f.refunds[i].Status = models.RefundStatusApproved
		f.refunds[i].Approver = account.user.Username
		writeFake(w, http.StatusOK, f.refunds[i])
		return
	}

	writeFake(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
}
