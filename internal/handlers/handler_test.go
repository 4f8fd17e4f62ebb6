package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"marketadmin/internal/adminapi"
	"marketadmin/internal/middleware"
	"marketadmin/internal/models"
	"marketadmin/internal/session"
	"marketadmin/internal/viewstate"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeAPI is an in-memory stand-in for the marketplace admin API
type fakeAPI struct {
	mu      sync.Mutex
	users   map[string]*models.User
	sellers map[string]*models.Seller
	orders  map[string]*models.Order
	stats   models.DashboardStats

	// failures maps "METHOD path" to a status the next matching call returns
	failures map[string]int
	calls    []string
	bodies   map[string]map[string]any
	tokens   []string
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		users: map[string]*models.User{
			"u1": {ID: "u1", Name: "Asha Rao", Email: "asha@example.com"},
			"u2": {ID: "u2", Name: "Vikram Shah", Email: "vikram@example.com", IsBanned: true},
		},
		sellers: map[string]*models.Seller{
			"s1": {ID: "s1", Name: "Meera", StoreName: "Meera Crafts", Email: "meera@example.com"},
			"s2": {ID: "s2", Name: "Kabir", StoreName: "Kabir Tools", Email: "kabir@example.com", IsApproved: true},
		},
		orders: map[string]*models.Order{
			"o1": {
				ID:          "o1",
				OrderNumber: "ORD-1001",
				Customer:    models.PartyRef{ID: "u1", Name: "Asha Rao"},
				TotalAmount: 1299.6,
				Status:      models.OrderStatusPending,
				ChildOrders: []models.ChildOrder{
					{ID: "c1", Seller: models.PartyRef{ID: "s2", StoreName: "Kabir Tools"}, TotalAmount: 1299.6, Status: models.OrderStatusPending},
				},
			},
		},
		stats:    models.DashboardStats{Users: 2, Sellers: 2, Orders: 1, PendingDeliveries: 0},
		failures: map[string]int{},
		bodies:   map[string]map[string]any{},
	}
}

func (f *fakeAPI) fail(method, path string, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[method+" "+path] = status
}

func (f *fakeAPI) called(method, path string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.calls {
		if c == method+" "+path {
			return true
		}
	}
	return false
}

func (f *fakeAPI) body(method, path string) map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bodies[method+" "+path]
}

func (f *fakeAPI) lastToken() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.tokens) == 0 {
		return ""
	}
	return f.tokens[len(f.tokens)-1]
}

func (f *fakeAPI) setUserCount(n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stats.Users = n
}

func (f *fakeAPI) writeCalls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var writes []string
	for _, c := range f.calls {
		if !strings.HasPrefix(c, http.MethodGet) {
			writes = append(writes, c)
		}
	}
	return writes
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := r.Method + " " + r.URL.Path
	f.calls = append(f.calls, key)
	f.tokens = append(f.tokens, r.Header.Get("Authorization"))

	var body map[string]any
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&body)
	}
	f.bodies[key] = body

	if status, ok := f.failures[key]; ok {
		delete(f.failures, key)
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "upstream says no"})
		return
	}

	reply := func(v any) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(v)
	}
	notFound := func() {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "not found"})
	}

	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	switch {
	case key == "POST /auth/login":
		reply(map[string]any{
			"token": testToken(),
			"admin": models.AdminProfile{ID: "a1", Name: "Root", Email: body["email"].(string), Role: "admin"},
		})
	case key == "POST /auth/send-reset-otp", key == "POST /auth/verify-reset-otp":
		reply(map[string]string{"message": "ok"})
	case key == "GET /admin/dashboard":
		reply(map[string]any{"stats": f.stats})
	case key == "GET /admin/users":
		list := []models.User{}
		for _, id := range []string{"u1", "u2"} {
			if u, ok := f.users[id]; ok {
				list = append(list, *u)
			}
		}
		reply(map[string]any{"users": list})
	case r.Method == http.MethodGet && len(parts) == 3 && parts[1] == "users":
		u, ok := f.users[parts[2]]
		if !ok {
			notFound()
			return
		}
		reply(map[string]any{"user": u})
	case r.Method == http.MethodPatch && len(parts) == 4 && parts[1] == "users":
		u, ok := f.users[parts[3]]
		if !ok {
			notFound()
			return
		}
		u.IsBanned = parts[2] == "ban"
		reply(map[string]string{"message": "updated"})
	case r.Method == http.MethodDelete && len(parts) == 3 && parts[1] == "users":
		delete(f.users, parts[2])
		reply(map[string]string{"message": "deleted"})
	case key == "GET /admin/sellers":
		list := []models.Seller{}
		for _, id := range []string{"s1", "s2"} {
			list = append(list, *f.sellers[id])
		}
		reply(map[string]any{"sellers": list})
	case r.Method == http.MethodGet && len(parts) == 3 && parts[1] == "sellers":
		s, ok := f.sellers[parts[2]]
		if !ok {
			notFound()
			return
		}
		reply(map[string]any{"seller": s})
	case r.Method == http.MethodPatch && len(parts) == 4 && parts[1] == "sellers":
		s, ok := f.sellers[parts[3]]
		if !ok {
			notFound()
			return
		}
		switch parts[2] {
		case "approve":
			s.IsApproved = true
		case "ban":
			s.IsBanned = true
		case "unban":
			s.IsBanned = false
		}
		reply(map[string]string{"message": "updated"})
	case key == "GET /admin/orders":
		reply(map[string]any{"orders": []models.Order{*f.orders["o1"]}})
	case r.Method == http.MethodGet && len(parts) == 3 && parts[1] == "orders":
		o, ok := f.orders[parts[2]]
		if !ok {
			notFound()
			return
		}
		reply(map[string]any{"order": o})
	case r.Method == http.MethodPatch && len(parts) == 4 && parts[1] == "orders":
		reply(map[string]string{"message": "updated"})
	case key == "GET /admin/profile":
		reply(map[string]any{"admin": models.AdminProfile{ID: "a1", Name: "Root", Email: "root@example.com", Role: "admin"}})
	case key == "PUT /admin/profile":
		reply(map[string]any{"admin": models.AdminProfile{ID: "a1", Name: body["name"].(string), Email: body["email"].(string)}})
	default:
		notFound()
	}
}

func testToken() string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, session.Claims{
		Role: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "a1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, _ := token.SignedString([]byte("fake-api-key"))
	return signed
}

// console is a fully wired echo server talking to a fakeAPI
type console struct {
	e        *echo.Echo
	api      *fakeAPI
	store    *session.MemoryStore
	sessions *session.Manager
	tracker  *viewstate.Tracker
}

func newConsole(t *testing.T) *console {
	t.Helper()

	api := newFakeAPI()
	upstream := httptest.NewServer(api)
	t.Cleanup(upstream.Close)

	logger := zap.NewNop()
	store := session.NewMemoryStore()
	manager := session.NewManager(store, session.NewTokenDecoder(nil), time.Hour, false)
	tracker := viewstate.NewTracker(nil)
	client := adminapi.NewClient(adminapi.Config{BaseURL: upstream.URL}, session.TokenFromContext, logger, nil)

	renderer, err := NewRenderer()
	require.NoError(t, err)

	e := echo.New()
	e.Renderer = renderer
	e.HTTPErrorHandler = ErrorHandler(logger)
	e.Use(middleware.SessionLoader(manager, logger))

	h := New(NewBase(tracker, manager, logger), client, map[string]HealthCheck{
		"sessions": func(context.Context) error { return nil },
	})
	RegisterRoutes(e, h, middleware.RequireRoles("admin"), middleware.AuditActions(logger))

	return &console{e: e, api: api, store: store, sessions: manager, tracker: tracker}
}

// signIn stores a session directly and returns its cookie
func (c *console) signIn(t *testing.T, roles ...string) *http.Cookie {
	t.Helper()
	if len(roles) == 0 {
		roles = []string{"admin"}
	}
	s := &session.Session{
		ID:        "test-session-" + strings.Join(roles, "-"),
		Token:     "admin-token",
		AdminID:   "a1",
		Name:      "Root",
		Email:     "root@example.com",
		Roles:     roles,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, c.store.Save(context.Background(), s))
	return &http.Cookie{Name: session.CookieName, Value: s.ID}
}

func (c *console) do(method, target string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	c.e.ServeHTTP(rec, req)
	return rec
}

// flashCookie returns the flash cookie set on rec, if any
func flashCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	var found *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == "ma_flash" && ck.Value != "" {
			found = ck
		}
	}
	return found
}
