package api

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/karan-lumetium/portfolio-website/internal/domain/blog"
	"github.com/karan-lumetium/portfolio-website/internal/domain/category"
	"github.com/karan-lumetium/portfolio-website/internal/domain/tag"
	"github.com/karan-lumetium/portfolio-website/internal/domain/user"
	"github.com/karan-lumetium/portfolio-website/internal/platform/password"
	"github.com/karan-lumetium/portfolio-website/internal/platform/token"
	"github.com/karan-lumetium/portfolio-website/internal/worker"
)

const (
	testAccessSecret  = "test-access-secret"
	testRefreshSecret = "test-refresh-secret"
)

// ---- in-memory repositories ----

type fakeUserRepo struct {
	users  map[string]*user.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*user.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, u *user.User) error {
	for _, e := range r.users {
		if e.Email == u.Email || e.Username == u.Username {
			return user.ErrAlreadyExists
		}
	}
	r.nextID++
	u.ID = fmt.Sprintf("u%d", r.nextID)
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*user.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *fakeUserRepo) GetByEmailOrUsername(_ context.Context, email, username string) (*user.User, error) {
	for _, u := range r.users {
		if u.Email == email || u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) UpdateProfile(_ context.Context, id string, upd user.ProfileUpdate) (*user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	if upd.FirstName != nil {
		u.FirstName = upd.FirstName
	}
	if upd.LastName != nil {
		u.LastName = upd.LastName
	}
	if upd.Bio != nil {
		u.Bio = upd.Bio
	}
	cp := *u
	return &cp, nil
}

type fakePostRepo struct {
	posts  map[string]*blog.Post
	nextID int
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: make(map[string]*blog.Post)}
}

func (r *fakePostRepo) Create(_ context.Context, p *blog.Post, _ []string) error {
	r.nextID++
	p.ID = fmt.Sprintf("p%d", r.nextID)
	cp := *p
	r.posts[p.ID] = &cp
	return nil
}

func (r *fakePostRepo) GetByID(_ context.Context, id string) (*blog.Post, error) {
	p, ok := r.posts[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *p
	return &cp, nil
}

func (r *fakePostRepo) GetBySlug(_ context.Context, slug string) (*blog.Post, error) {
	for _, p := range r.posts {
		if p.Slug == slug {
			cp := *p
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *fakePostRepo) List(_ context.Context, _ blog.ListFilter) ([]blog.Post, int64, error) {
	var out []blog.Post
	for _, p := range r.posts {
		if p.Published {
			out = append(out, *p)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakePostRepo) Update(_ context.Context, id string, in blog.UpdateInput) error {
	p, ok := r.posts[id]
	if !ok {
		return sql.ErrNoRows
	}
	if in.Title != nil {
		p.Title = *in.Title
	}
	if in.Content != nil {
		p.Content = *in.Content
	}
	if in.Published != nil {
		p.Published = *in.Published
	}
	if in.PublishedAt != nil {
		p.PublishedAt = in.PublishedAt
	}
	return nil
}

func (r *fakePostRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.posts[id]; !ok {
		return sql.ErrNoRows
	}
	delete(r.posts, id)
	return nil
}

func (r *fakePostRepo) SlugExists(_ context.Context, slug string) (bool, error) {
	for _, p := range r.posts {
		if p.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakePostRepo) IncrementViewCount(_ context.Context, id string) error {
	if p, ok := r.posts[id]; ok {
		p.ViewCount++
	}
	return nil
}

type fakeCategoryRepo struct {
	categories []category.Category
	nextID     int
}

func (r *fakeCategoryRepo) Create(_ context.Context, c *category.Category) error {
	r.nextID++
	c.ID = fmt.Sprintf("c%d", r.nextID)
	r.categories = append(r.categories, *c)
	return nil
}

func (r *fakeCategoryRepo) List(_ context.Context) ([]category.Category, error) {
	return r.categories, nil
}

func (r *fakeCategoryRepo) SlugExists(_ context.Context, slug string) (bool, error) {
	for _, c := range r.categories {
		if c.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

type fakeTagRepo struct {
	tags   []tag.Tag
	nextID int
}

func (r *fakeTagRepo) Create(_ context.Context, t *tag.Tag) error {
	r.nextID++
	t.ID = fmt.Sprintf("t%d", r.nextID)
	r.tags = append(r.tags, *t)
	return nil
}

func (r *fakeTagRepo) List(_ context.Context) ([]tag.Tag, error) {
	return r.tags, nil
}

func (r *fakeTagRepo) SlugExists(_ context.Context, slug string) (bool, error) {
	for _, t := range r.tags {
		if t.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

// ---- test server plumbing ----

type testServer struct {
	router   http.Handler
	userRepo *fakeUserRepo
	postRepo *fakePostRepo
	tokens   *token.Manager
	viewCh   chan worker.PostView
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	userRepo := newFakeUserRepo()
	postRepo := newFakePostRepo()
	tokens := token.NewManager(testAccessSecret, testRefreshSecret, "")
	viewCh := make(chan worker.PostView, 10)

	router := NewRouter(
		user.NewService(userRepo),
		blog.NewService(postRepo),
		category.NewService(&fakeCategoryRepo{}),
		tag.NewService(&fakeTagRepo{}),
		tokens,
		viewCh,
		nil,
	)

	return &testServer{
		router:   router,
		userRepo: userRepo,
		postRepo: postRepo,
		tokens:   tokens,
		viewCh:   viewCh,
	}
}

type envelope struct {
	Success bool                       `json:"success"`
	Message string                     `json:"message"`
	Data    map[string]json.RawMessage `json:"data"`
}

func (ts *testServer) do(t *testing.T, method, path, bearer string, body any) (int, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("%s %s: bad JSON %q: %v", method, path, rec.Body.String(), err)
	}
	return rec.Code, env
}

func (ts *testServer) register(t *testing.T, email, username, pass string) (userID, access, refresh string) {
	t.Helper()

	code, env := ts.do(t, http.MethodPost, "/api/auth/register", "", map[string]any{
		"email":    email,
		"username": username,
		"password": pass,
	})
	if code != http.StatusCreated {
		t.Fatalf("register = %d, message %q", code, env.Message)
	}

	var u user.Account
	mustUnmarshal(t, env.Data["user"], &u)
	mustUnmarshal(t, env.Data["accessToken"], &access)
	mustUnmarshal(t, env.Data["refreshToken"], &refresh)
	return u.ID, access, refresh
}

// seedAdmin puts an admin straight into the repo, since the API itself has no
// path that grants the role.
func (ts *testServer) seedAdmin(t *testing.T) (userID, access string) {
	t.Helper()

	hash, err := password.Hash("adminpass")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	admin := &user.User{
		Email:        "admin@example.com",
		Username:     "admin",
		PasswordHash: hash,
		Role:         user.RoleAdmin,
		IsActive:     true,
	}
	if err := ts.userRepo.Create(context.Background(), admin); err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	access, err = ts.tokens.IssueAccess(admin.ID, admin.Email, admin.Role)
	if err != nil {
		t.Fatalf("issue admin token: %v", err)
	}
	return admin.ID, access
}

func mustUnmarshal(t *testing.T, raw json.RawMessage, v any) {
	t.Helper()
	if raw == nil {
		t.Fatal("expected field missing from response data")
	}
	if err := json.Unmarshal(raw, v); err != nil {
		t.Fatalf("unmarshal %q: %v", raw, err)
	}
}

// ---- auth endpoints ----

func TestRegisterEndpoint(t *testing.T) {
	ts := newTestServer(t)

	code, env := ts.do(t, http.MethodPost, "/api/auth/register", "", map[string]any{
		"email":    "New@Example.com",
		"username": "NewUser",
		"password": "pw123456",
	})
	if code != http.StatusCreated {
		t.Fatalf("status = %d", code)
	}
	if env.Message != "Registration successful" {
		t.Errorf("message = %q", env.Message)
	}

	var u user.Account
	mustUnmarshal(t, env.Data["user"], &u)
	if u.Email != "new@example.com" {
		t.Errorf("email = %q", u.Email)
	}
	if u.Role != user.RoleUser {
		t.Errorf("role = %q, want USER", u.Role)
	}

	var access, refresh string
	mustUnmarshal(t, env.Data["accessToken"], &access)
	mustUnmarshal(t, env.Data["refreshToken"], &refresh)
	if access == "" || refresh == "" || access == refresh {
		t.Error("expected two distinct non-empty tokens")
	}
}

func TestRegisterValidation(t *testing.T) {
	ts := newTestServer(t)

	code, env := ts.do(t, http.MethodPost, "/api/auth/register", "", map[string]any{
		"email": "only@example.com",
	})
	if code != http.StatusBadRequest {
		t.Errorf("status = %d", code)
	}
	if env.Message != "Email, username, and password are required" {
		t.Errorf("message = %q", env.Message)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "a@b.com", "alice", "pw123")

	code, env := ts.do(t, http.MethodPost, "/api/auth/register", "", map[string]any{
		"email":    "A@B.COM",
		"username": "someone",
		"password": "pw123",
	})
	if code != http.StatusBadRequest {
		t.Errorf("status = %d", code)
	}
	if env.Message != "User with this email or username already exists" {
		t.Errorf("message = %q", env.Message)
	}
}

func TestLoginEndpoint(t *testing.T) {
	ts := newTestServer(t)
	id, _, _ := ts.register(t, "a@b.com", "alice", "pw123")

	// Uppercased email resolves to the same account.
	code, env := ts.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "A@B.com",
		"password": "pw123",
	})
	if code != http.StatusOK {
		t.Fatalf("status = %d, message %q", code, env.Message)
	}
	if env.Message != "Login successful" {
		t.Errorf("message = %q", env.Message)
	}

	var u user.Account
	mustUnmarshal(t, env.Data["user"], &u)
	if u.ID != id {
		t.Errorf("logged in as %q, registered as %q", u.ID, id)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "a@b.com", "alice", "pw123")

	code, env := ts.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "a@b.com",
		"password": "nope",
	})
	if code != http.StatusUnauthorized {
		t.Errorf("status = %d", code)
	}
	if env.Message != "Invalid email or password" {
		t.Errorf("message = %q", env.Message)
	}
}

func TestLoginDeactivated(t *testing.T) {
	ts := newTestServer(t)
	id, _, _ := ts.register(t, "a@b.com", "alice", "pw123")
	ts.userRepo.users[id].IsActive = false

	code, env := ts.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "a@b.com",
		"password": "pw123",
	})
	if code != http.StatusUnauthorized {
		t.Errorf("status = %d", code)
	}
	if env.Message != "Account is deactivated" {
		t.Errorf("message = %q", env.Message)
	}
}

func TestRefreshEndpoint(t *testing.T) {
	ts := newTestServer(t)
	_, access, refresh := ts.register(t, "a@b.com", "alice", "pw123")

	code, env := ts.do(t, http.MethodPost, "/api/auth/refresh", "", map[string]any{
		"refreshToken": refresh,
	})
	if code != http.StatusOK {
		t.Fatalf("status = %d, message %q", code, env.Message)
	}

	var newAccess string
	mustUnmarshal(t, env.Data["accessToken"], &newAccess)
	if newAccess == "" {
		t.Error("no access token issued")
	}
	if _, ok := env.Data["refreshToken"]; ok {
		t.Error("refresh endpoint rotated the refresh token")
	}

	// An access token is not accepted in place of a refresh token.
	code, env = ts.do(t, http.MethodPost, "/api/auth/refresh", "", map[string]any{
		"refreshToken": access,
	})
	if code != http.StatusUnauthorized {
		t.Errorf("access-as-refresh status = %d", code)
	}
	if env.Message != "Invalid or expired refresh token" {
		t.Errorf("message = %q", env.Message)
	}
}

func TestRefreshMissingToken(t *testing.T) {
	ts := newTestServer(t)

	code, env := ts.do(t, http.MethodPost, "/api/auth/refresh", "", map[string]any{})
	if code != http.StatusBadRequest {
		t.Errorf("status = %d", code)
	}
	if env.Message != "Refresh token is required" {
		t.Errorf("message = %q", env.Message)
	}
}

func TestGetProfile(t *testing.T) {
	ts := newTestServer(t)
	id, access, _ := ts.register(t, "a@b.com", "alice", "pw123")

	code, env := ts.do(t, http.MethodGet, "/api/auth/profile", access, nil)
	if code != http.StatusOK {
		t.Fatalf("status = %d, message %q", code, env.Message)
	}

	var p user.Profile
	mustUnmarshal(t, env.Data["user"], &p)
	if p.ID != id || p.Email != "a@b.com" {
		t.Errorf("profile = %+v", p)
	}

	// The password hash must not leak into the payload.
	if bytes.Contains(env.Data["user"], []byte("password")) {
		t.Errorf("profile payload mentions password: %s", env.Data["user"])
	}
}

func TestGetProfileUnauthenticated(t *testing.T) {
	ts := newTestServer(t)

	code, env := ts.do(t, http.MethodGet, "/api/auth/profile", "", nil)
	if code != http.StatusUnauthorized {
		t.Errorf("status = %d", code)
	}
	if env.Message != "No token provided" {
		t.Errorf("message = %q", env.Message)
	}
}

func TestGetProfileExpiredToken(t *testing.T) {
	ts := newTestServer(t)
	id, _, _ := ts.register(t, "a@b.com", "alice", "pw123")

	expired := signTestToken(t, id, "a@b.com", user.RoleUser, -time.Minute)
	code, env := ts.do(t, http.MethodGet, "/api/auth/profile", expired, nil)
	if code != http.StatusUnauthorized {
		t.Errorf("status = %d", code)
	}
	if env.Message != "Invalid or expired token" {
		t.Errorf("message = %q", env.Message)
	}
}

func TestProfileOfDeactivatedUser(t *testing.T) {
	ts := newTestServer(t)
	id, access, _ := ts.register(t, "a@b.com", "alice", "pw123")
	ts.userRepo.users[id].IsActive = false

	// The still-valid token is refused because of the live account check.
	code, env := ts.do(t, http.MethodGet, "/api/auth/profile", access, nil)
	if code != http.StatusUnauthorized {
		t.Errorf("status = %d", code)
	}
	if env.Message != "User not found or inactive" {
		t.Errorf("message = %q", env.Message)
	}
}

func TestUpdateProfileIgnoresIdentityFields(t *testing.T) {
	ts := newTestServer(t)
	_, access, _ := ts.register(t, "a@b.com", "alice", "pw123")

	code, env := ts.do(t, http.MethodPut, "/api/auth/profile", access, map[string]any{
		"firstName": "Alice",
		"bio":       "hi there",
		"role":      "ADMIN",
		"email":     "stolen@example.com",
		"username":  "hacker",
	})
	if code != http.StatusOK {
		t.Fatalf("status = %d, message %q", code, env.Message)
	}
	if env.Message != "Profile updated successfully" {
		t.Errorf("message = %q", env.Message)
	}

	var p user.Profile
	mustUnmarshal(t, env.Data["user"], &p)
	if p.FirstName == nil || *p.FirstName != "Alice" {
		t.Errorf("firstName = %v", p.FirstName)
	}
	if p.Bio == nil || *p.Bio != "hi there" {
		t.Errorf("bio = %v", p.Bio)
	}
	if p.Role != user.RoleUser || p.Email != "a@b.com" || p.Username != "alice" {
		t.Errorf("identity fields changed: %+v", p)
	}
}

// signTestToken produces an access token directly, bypassing the manager, so
// tests can control the expiry.
func signTestToken(t *testing.T, id, email, role string, ttl time.Duration) string {
	t.Helper()

	claims := token.Claims{
		UserID: id,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			Issuer:    "portfolio-website",
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testAccessSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return signed
}

// ---- blog endpoints ----

func TestCreatePostRequiresAdmin(t *testing.T) {
	ts := newTestServer(t)
	_, access, _ := ts.register(t, "a@b.com", "alice", "pw123")

	code, env := ts.do(t, http.MethodPost, "/api/blog/posts", access, map[string]any{
		"title":   "Nope",
		"content": "body",
	})
	if code != http.StatusForbidden {
		t.Errorf("status = %d", code)
	}
	if env.Message != "Admin access required" {
		t.Errorf("message = %q", env.Message)
	}
}

func TestPostLifecycle(t *testing.T) {
	ts := newTestServer(t)
	adminID, adminTok := ts.seedAdmin(t)

	code, env := ts.do(t, http.MethodPost, "/api/blog/posts", adminTok, map[string]any{
		"title":     "Hello World",
		"content":   "first post",
		"published": true,
	})
	if code != http.StatusCreated {
		t.Fatalf("create = %d, message %q", code, env.Message)
	}
	if env.Message != "Post created successfully" {
		t.Errorf("message = %q", env.Message)
	}

	var p blog.Post
	mustUnmarshal(t, env.Data["post"], &p)
	if p.Slug != "hello-world" || p.AuthorID != adminID {
		t.Errorf("post = %+v", p)
	}

	// Public read by slug, no token.
	code, env = ts.do(t, http.MethodGet, "/api/blog/posts/hello-world", "", nil)
	if code != http.StatusOK {
		t.Fatalf("get = %d, message %q", code, env.Message)
	}

	// The view event lands on the channel without blocking the request.
	select {
	case ev := <-ts.viewCh:
		if ev.PostID != p.ID {
			t.Errorf("view event for %q, want %q", ev.PostID, p.ID)
		}
	default:
		t.Error("no view event emitted")
	}

	// Public listing includes the post with pagination info.
	code, env = ts.do(t, http.MethodGet, "/api/blog/posts", "", nil)
	if code != http.StatusOK {
		t.Fatalf("list = %d", code)
	}
	var pg pagination
	mustUnmarshal(t, env.Data["pagination"], &pg)
	if pg.Page != 1 || pg.Limit != 10 || pg.Total != 1 || pg.Pages != 1 {
		t.Errorf("pagination = %+v", pg)
	}

	// Update.
	code, env = ts.do(t, http.MethodPut, "/api/blog/posts/"+p.ID, adminTok, map[string]any{
		"title": "Hello Again",
	})
	if code != http.StatusOK {
		t.Fatalf("update = %d, message %q", code, env.Message)
	}
	mustUnmarshal(t, env.Data["post"], &p)
	if p.Title != "Hello Again" {
		t.Errorf("title = %q", p.Title)
	}

	// Delete, then the slug is gone.
	code, env = ts.do(t, http.MethodDelete, "/api/blog/posts/"+p.ID, adminTok, nil)
	if code != http.StatusOK || env.Message != "Post deleted successfully" {
		t.Fatalf("delete = %d, message %q", code, env.Message)
	}
	code, env = ts.do(t, http.MethodGet, "/api/blog/posts/hello-world", "", nil)
	if code != http.StatusNotFound {
		t.Errorf("get after delete = %d", code)
	}
	if env.Message != "Post not found" {
		t.Errorf("message = %q", env.Message)
	}
}

func TestCreatePostValidation(t *testing.T) {
	ts := newTestServer(t)
	_, adminTok := ts.seedAdmin(t)

	code, env := ts.do(t, http.MethodPost, "/api/blog/posts", adminTok, map[string]any{
		"title": "only a title",
	})
	if code != http.StatusBadRequest {
		t.Errorf("status = %d", code)
	}
	if env.Message != "Title and content are required" {
		t.Errorf("message = %q", env.Message)
	}
}

func TestListPostsAnonymous(t *testing.T) {
	ts := newTestServer(t)

	code, env := ts.do(t, http.MethodGet, "/api/blog/posts", "", nil)
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}

	var posts []blog.Post
	mustUnmarshal(t, env.Data["posts"], &posts)
	if len(posts) != 0 {
		t.Errorf("posts = %v", posts)
	}
}

// ---- category and tag endpoints ----

func TestCategoryEndpoints(t *testing.T) {
	ts := newTestServer(t)
	_, adminTok := ts.seedAdmin(t)

	// Creation is admin-only.
	code, env := ts.do(t, http.MethodPost, "/api/categories", "", map[string]any{"name": "DevOps"})
	if code != http.StatusUnauthorized {
		t.Errorf("anonymous create = %d", code)
	}

	code, env = ts.do(t, http.MethodPost, "/api/categories", adminTok, map[string]any{
		"name":        "DevOps",
		"description": "infra posts",
	})
	if code != http.StatusCreated {
		t.Fatalf("create = %d, message %q", code, env.Message)
	}
	if env.Message != "Category created successfully" {
		t.Errorf("message = %q", env.Message)
	}

	code, env = ts.do(t, http.MethodPost, "/api/categories", adminTok, map[string]any{"name": "devops"})
	if code != http.StatusBadRequest {
		t.Errorf("duplicate = %d", code)
	}
	if env.Message != "Category already exists" {
		t.Errorf("message = %q", env.Message)
	}

	code, env = ts.do(t, http.MethodGet, "/api/categories", "", nil)
	if code != http.StatusOK {
		t.Fatalf("list = %d", code)
	}
	var categories []category.Category
	mustUnmarshal(t, env.Data["categories"], &categories)
	if len(categories) != 1 || categories[0].Slug != "devops" {
		t.Errorf("categories = %+v", categories)
	}
}

func TestTagEndpoints(t *testing.T) {
	ts := newTestServer(t)
	_, adminTok := ts.seedAdmin(t)

	code, env := ts.do(t, http.MethodPost, "/api/tags", adminTok, map[string]any{"name": "Go"})
	if code != http.StatusCreated {
		t.Fatalf("create = %d, message %q", code, env.Message)
	}
	if env.Message != "Tag created successfully" {
		t.Errorf("message = %q", env.Message)
	}

	code, env = ts.do(t, http.MethodPost, "/api/tags", adminTok, map[string]any{"name": "go"})
	if code != http.StatusBadRequest || env.Message != "Tag already exists" {
		t.Errorf("duplicate = %d, message %q", code, env.Message)
	}

	code, env = ts.do(t, http.MethodGet, "/api/tags", "", nil)
	if code != http.StatusOK {
		t.Fatalf("list = %d", code)
	}
	var tags []tag.Tag
	mustUnmarshal(t, env.Data["tags"], &tags)
	if len(tags) != 1 || tags[0].Slug != "go" {
		t.Errorf("tags = %+v", tags)
	}
}

// ---- ops endpoints ----

func TestHealthWithoutDatabase(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d", rec.Code)
	}

	var status map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &status); err != nil {
		t.Fatalf("bad JSON: %v", err)
	}
	if status["status"] != "ERROR" || status["database"] != "Disconnected" {
		t.Errorf("health = %v", status)
	}
}
