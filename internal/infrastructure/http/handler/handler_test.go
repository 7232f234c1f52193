package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezkam/taskpad/internal/application/auth"
	"github.com/rezkam/taskpad/internal/application/task"
	"github.com/rezkam/taskpad/internal/application/taxonomy"
	"github.com/rezkam/taskpad/internal/domain"
	"github.com/rezkam/taskpad/internal/infrastructure/http/handler"
	"github.com/rezkam/taskpad/internal/storage"
)

// memStore is an in-memory implementation of all three repository
// interfaces, mirroring the database constraints the handlers rely on.
type memStore struct {
	mu         sync.Mutex
	nextID     int64
	users      []domain.User
	priorities []domain.Priority
	statuses   []domain.Status
	categories []domain.Category
	values     []domain.CategoryValue
	tasks      map[int64]*domain.Task
}

func newMemStore() *memStore {
	return &memStore{nextID: 1, tasks: make(map[int64]*domain.Task)}
}

func (m *memStore) id() int64 {
	id := m.nextID
	m.nextID++
	return id
}

// --- auth.Repository ---

func (m *memStore) CreateUser(ctx context.Context, user *domain.User) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == user.Username || u.Email == user.Email {
			return 0, domain.ErrUserExists
		}
	}
	user.ID = m.id()
	m.users = append(m.users, *user)
	return user.ID, nil
}

func (m *memStore) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			copied := u
			return &copied, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *memStore) FindUserByID(ctx context.Context, id int64) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ID == id {
			copied := u
			return &copied, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *memStore) UpdateProfile(ctx context.Context, userID int64, params domain.UpdateProfileParams) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.users {
		if m.users[i].ID == userID {
			u := &m.users[i]
			if params.FirstName != nil {
				u.FirstName = *params.FirstName
			}
			if params.LastName != nil {
				u.LastName = *params.LastName
			}
			if params.Email != nil {
				u.Email = *params.Email
			}
			if params.ContactNumber != nil {
				u.ContactNumber = *params.ContactNumber
			}
			if params.Position != nil {
				u.Position = *params.Position
			}
			return nil
		}
	}
	return domain.ErrUserNotFound
}

func (m *memStore) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.users {
		if m.users[i].ID == userID {
			m.users[i].PasswordHash = passwordHash
			return nil
		}
	}
	return domain.ErrUserNotFound
}

func (m *memStore) UpdateProfilePicture(ctx context.Context, userID int64, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.users {
		if m.users[i].ID == userID {
			m.users[i].ProfilePicture = &path
			return nil
		}
	}
	return domain.ErrUserNotFound
}

func (m *memStore) CountPriorities(ctx context.Context, userID int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, p := range m.priorities {
		if p.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (m *memStore) CountStatuses(ctx context.Context, userID int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, s := range m.statuses {
		if s.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (m *memStore) SeedDefaultPriorities(ctx context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range domain.DefaultPriorities() {
		p.ID = m.id()
		p.UserID = userID
		m.priorities = append(m.priorities, p)
	}
	return nil
}

func (m *memStore) SeedDefaultStatuses(ctx context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range domain.DefaultStatuses() {
		s.ID = m.id()
		s.UserID = userID
		m.statuses = append(m.statuses, s)
	}
	return nil
}

// --- taxonomy.Repository ---

func (m *memStore) ListPriorities(ctx context.Context, userID int64) ([]domain.Priority, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Priority
	for _, p := range m.priorities {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memStore) CreatePriority(ctx context.Context, priority *domain.Priority) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.priorities {
		if p.UserID == priority.UserID && p.Name == priority.Name {
			return domain.ErrDuplicateName
		}
	}
	priority.ID = m.id()
	m.priorities = append(m.priorities, *priority)
	return nil
}

func (m *memStore) UpdatePriority(ctx context.Context, userID, id int64, name, color string, level int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, p := range m.priorities {
		if p.ID == id && p.UserID == userID {
			m.priorities[i].Name, m.priorities[i].Color, m.priorities[i].Level = name, color, level
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *memStore) DeletePriority(ctx context.Context, userID, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, p := range m.priorities {
		if p.ID == id && p.UserID == userID {
			m.priorities = append(m.priorities[:i], m.priorities[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *memStore) ListStatuses(ctx context.Context, userID int64) ([]domain.Status, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Status
	for _, s := range m.statuses {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memStore) CreateStatus(ctx context.Context, status *domain.Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.statuses {
		if s.UserID == status.UserID && s.Name == status.Name {
			return domain.ErrDuplicateName
		}
	}
	status.ID = m.id()
	m.statuses = append(m.statuses, *status)
	return nil
}

func (m *memStore) UpdateStatus(ctx context.Context, userID, id int64, name, color string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, s := range m.statuses {
		if s.ID == id && s.UserID == userID {
			m.statuses[i].Name, m.statuses[i].Color = name, color
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *memStore) DeleteStatus(ctx context.Context, userID, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, s := range m.statuses {
		if s.ID == id && s.UserID == userID {
			m.statuses = append(m.statuses[:i], m.statuses[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *memStore) ListCategories(ctx context.Context, userID int64) ([]domain.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Category
	for _, c := range m.categories {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memStore) CreateCategory(ctx context.Context, category *domain.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.categories {
		if c.UserID == category.UserID && c.Name == category.Name {
			return domain.ErrDuplicateName
		}
	}
	category.ID = m.id()
	m.categories = append(m.categories, *category)
	return nil
}

func (m *memStore) DeleteCategory(ctx context.Context, userID, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, c := range m.categories {
		if c.ID == id && c.UserID == userID {
			m.categories = append(m.categories[:i], m.categories[i+1:]...)
			kept := m.values[:0]
			for _, v := range m.values {
				if v.CategoryID != id {
					kept = append(kept, v)
				}
			}
			m.values = kept
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *memStore) ListCategoryValues(ctx context.Context, userID int64) ([]domain.CategoryValue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	owned := map[int64]bool{}
	for _, c := range m.categories {
		if c.UserID == userID {
			owned[c.ID] = true
		}
	}
	var out []domain.CategoryValue
	for _, v := range m.values {
		if owned[v.CategoryID] {
			out = append(out, v)
		}
	}
	return out, nil
}

func (m *memStore) CreateCategoryValue(ctx context.Context, userID int64, value *domain.CategoryValue) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ownsParent := false
	for _, c := range m.categories {
		if c.ID == value.CategoryID && c.UserID == userID {
			ownsParent = true
		}
	}
	if !ownsParent {
		return domain.ErrNotFound
	}
	for _, v := range m.values {
		if v.CategoryID == value.CategoryID && v.Name == value.Name {
			return domain.ErrDuplicateName
		}
	}
	value.ID = m.id()
	m.values = append(m.values, *value)
	return nil
}

func (m *memStore) UpdateCategoryValue(ctx context.Context, userID, id int64, name, color string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, v := range m.values {
		if v.ID == id {
			m.values[i].Name, m.values[i].Color = name, color
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *memStore) DeleteCategoryValue(ctx context.Context, userID, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, v := range m.values {
		if v.ID == id {
			m.values = append(m.values[:i], m.values[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// --- task.Repository ---

func (m *memStore) ListTasks(ctx context.Context, userID int64) ([]domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Task
	for _, t := range m.tasks {
		if t.UserID == userID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (m *memStore) FindTaskByID(ctx context.Context, userID, id int64) (*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tasks[id]
	if !ok || t.UserID != userID {
		return nil, domain.ErrNotFound
	}
	copied := *t
	return &copied, nil
}

func (m *memStore) CreateTask(ctx context.Context, t *domain.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.tasks {
		if existing.UserID == t.UserID && existing.Title == t.Title {
			return domain.ErrDuplicateTitle
		}
	}
	t.ID = m.id()
	for i := range t.Tags {
		t.Tags[i].ID = m.id()
	}
	copied := *t
	m.tasks[t.ID] = &copied
	return nil
}

func (m *memStore) UpdateTask(ctx context.Context, t *domain.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.tasks[t.ID]
	if !ok || existing.UserID != t.UserID {
		return domain.ErrNotFound
	}
	if t.Image == nil {
		t.Image = existing.Image
	}
	for i := range t.Tags {
		t.Tags[i].ID = m.id()
	}
	copied := *t
	m.tasks[t.ID] = &copied
	return nil
}

func (m *memStore) DeleteTask(ctx context.Context, userID, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tasks[id]
	if !ok || t.UserID != userID {
		return domain.ErrNotFound
	}
	delete(m.tasks, id)
	return nil
}

func (m *memStore) FindStatusByName(ctx context.Context, userID int64, name string) (*domain.Status, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.statuses {
		if s.UserID == userID && strings.EqualFold(strings.TrimSpace(s.Name), strings.TrimSpace(name)) {
			copied := s
			return &copied, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memStore) FindStatusByID(ctx context.Context, userID, id int64) (*domain.Status, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.statuses {
		if s.UserID == userID && s.ID == id {
			copied := s
			return &copied, nil
		}
	}
	return nil, domain.ErrNotFound
}

// memBlobs is an in-memory BlobStore.
type memBlobs struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func newMemBlobs() *memBlobs {
	return &memBlobs{blobs: make(map[string][]byte)}
}

func (m *memBlobs) Save(ctx context.Context, name string, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[name] = data
	return nil
}

func (m *memBlobs) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.blobs[name]
	if !ok {
		return nil, storage.ErrBlobNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *memBlobs) Delete(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.blobs[name]; !ok {
		return storage.ErrBlobNotFound
	}
	delete(m.blobs, name)
	return nil
}

// --- test harness ---

type testEnv struct {
	ts    *httptest.Server
	store *memStore
	blobs *memBlobs
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := newMemStore()
	blobs := newMemBlobs()
	authn := auth.NewAuthenticator(store, auth.Config{JWTSecret: []byte("test-secret")})
	limiter := auth.NewLoginLimiter(5, 15*time.Minute)

	srv := handler.New(authn, taxonomy.NewService(store), task.NewService(store), blobs, limiter)

	r := chi.NewRouter()
	r.Mount("/auth", srv.Routes())

	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)

	return &testEnv{ts: ts, store: store, blobs: blobs}
}

func (e *testEnv) doJSON(t *testing.T, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, e.ts.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var decoded map[string]any
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(data) > 0 && data[0] == '{' {
		require.NoError(t, json.Unmarshal(data, &decoded))
	}
	return resp, decoded
}

func (e *testEnv) doJSONList(t *testing.T, path, token string) (*http.Response, []map[string]any) {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, e.ts.URL+path, nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var decoded []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

// listTasks unwraps the {"tasks": [...]} envelope of the task list endpoint.
func (e *testEnv) listTasks(t *testing.T, token string) []map[string]any {
	t.Helper()

	resp, body := e.doJSON(t, http.MethodGet, "/auth/tasks", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	raw, ok := body["tasks"].([]any)
	require.True(t, ok, "task list must be wrapped in a tasks key")

	out := make([]map[string]any, 0, len(raw))
	for _, item := range raw {
		m, ok := item.(map[string]any)
		require.True(t, ok)
		out = append(out, m)
	}
	return out
}

func (e *testEnv) registerAndLogin(t *testing.T, username string) string {
	t.Helper()

	resp, _ := e.doJSON(t, http.MethodPost, "/auth/register", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "hunter22",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := e.doJSON(t, http.MethodPost, "/auth/login", "", map[string]string{
		"username": username,
		"password": "hunter22",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func (e *testEnv) doMultipart(t *testing.T, method, path, token string, fields map[string]string, fileField, fileName string, fileContent []byte) (*http.Response, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	mp := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mp.WriteField(k, v))
	}
	if fileField != "" {
		fw, err := mp.CreateFormFile(fileField, fileName)
		require.NoError(t, err)
		_, err = fw.Write(fileContent)
		require.NoError(t, err)
	}
	require.NoError(t, mp.Close())

	req, err := http.NewRequest(method, e.ts.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mp.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var decoded map[string]any
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(data) > 0 && data[0] == '{' {
		require.NoError(t, json.Unmarshal(data, &decoded))
	}
	return resp, decoded
}

// --- tests ---

func TestRegister_DuplicateUsername(t *testing.T) {
	env := newTestEnv(t)

	resp, _ := env.doJSON(t, http.MethodPost, "/auth/register", "", map[string]string{
		"username": "sam", "email": "sam@example.com", "password": "pw",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = env.doJSON(t, http.MethodPost, "/auth/register", "", map[string]string{
		"username": "sam", "email": "other@example.com", "password": "pw",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestLogin_ErrorStatuses(t *testing.T) {
	env := newTestEnv(t)
	env.registerAndLogin(t, "sam")

	resp, _ := env.doJSON(t, http.MethodPost, "/auth/login", "", map[string]string{
		"username": "nobody", "password": "pw",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = env.doJSON(t, http.MethodPost, "/auth/login", "", map[string]string{
		"username": "sam", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLogin_RateLimited(t *testing.T) {
	env := newTestEnv(t)

	// The address budget is 5 attempts per window, successful or not.
	for i := 0; i < 5; i++ {
		resp, _ := env.doJSON(t, http.MethodPost, "/auth/login", "", map[string]string{
			"username": "ghost", "password": "pw",
		})
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
	}

	resp, _ := env.doJSON(t, http.MethodPost, "/auth/login", "", map[string]string{
		"username": "ghost", "password": "pw",
	})
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}

func TestDashboard_RequiresToken(t *testing.T) {
	env := newTestEnv(t)

	req, err := http.NewRequest(http.MethodGet, env.ts.URL+"/auth/dashboard", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestDashboard_ReturnsProfile(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerAndLogin(t, "sam")

	resp, body := env.doJSON(t, http.MethodGet, "/auth/dashboard", token, nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "sam", body["username"])
	assert.Equal(t, "sam@example.com", body["email"])
}

func TestLogin_SeedsDefaults(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerAndLogin(t, "sam")

	resp, priorities := env.doJSONList(t, "/auth/priorities", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, priorities, 3)

	resp, statuses := env.doJSONList(t, "/auth/statuses", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, statuses, 3)

	names := make([]string, 0, 3)
	for _, s := range statuses {
		names = append(names, s["status_name"].(string))
	}
	assert.ElementsMatch(t, []string{"Completed", "In Progress", "Not Started"}, names)
}

func TestUpdateProfile_NoFields(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerAndLogin(t, "sam")

	resp, _ := env.doJSON(t, http.MethodPut, "/auth/update", token, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = env.doJSON(t, http.MethodPut, "/auth/update", token, map[string]string{
		"position": "engineer", "contactnumber": "555-0100",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	_, body := env.doJSON(t, http.MethodGet, "/auth/dashboard", token, nil)
	assert.Equal(t, "engineer", body["position"])
	assert.Equal(t, "555-0100", body["contactnumber"])
}

func TestAddTask_ForcesNotStartedAndParsesTags(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerAndLogin(t, "sam")

	resp, body := env.doMultipart(t, http.MethodPost, "/auth/add-task", token, map[string]string{
		"task_title":       "Ship release",
		"date":             "2026-09-01",
		"priority_id":      "1",
		"task_description": "cut and tag",
		"extra_categories": `[{"category_name":"Project","value_name":"Backend","value_color":"#0000FF"}]`,
	}, "", "", nil)

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Nil(t, body["completedOn"])

	tags, ok := body["category_values"].([]any)
	require.True(t, ok)
	require.Len(t, tags, 1)

	// The forced initial status is the user's "Not Started".
	var notStartedID int64
	for _, s := range env.store.statuses {
		if s.Name == domain.StatusNameNotStarted {
			notStartedID = s.ID
		}
	}
	assert.EqualValues(t, notStartedID, body["status_id"])
}

func TestAddTask_UnparseableExtraCategoriesIgnored(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerAndLogin(t, "sam")

	resp, body := env.doMultipart(t, http.MethodPost, "/auth/add-task", token, map[string]string{
		"task_title":       "Ship release",
		"date":             "2026-09-01",
		"priority_id":      "1",
		"task_description": "cut and tag",
		"extra_categories": "{not json",
	}, "", "", nil)

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	tags, ok := body["category_values"].([]any)
	require.True(t, ok)
	assert.Empty(t, tags)
}

func TestAddTask_MissingTitle(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerAndLogin(t, "sam")

	resp, _ := env.doMultipart(t, http.MethodPost, "/auth/add-task", token, map[string]string{
		"date":             "2026-09-01",
		"priority_id":      "1",
		"task_description": "no title",
	}, "", "", nil)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestEditTask_CompletedOnSet(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerAndLogin(t, "sam")

	resp, created := env.doMultipart(t, http.MethodPost, "/auth/add-task", token, map[string]string{
		"task_title":       "Ship release",
		"date":             "2026-09-01",
		"priority_id":      "1",
		"task_description": "cut and tag",
	}, "", "", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var completedID int64
	for _, s := range env.store.statuses {
		if s.Name == domain.StatusNameCompleted {
			completedID = s.ID
		}
	}

	taskID := int64(created["id"].(float64))
	resp, _ = env.doMultipart(t, http.MethodPut, fmt.Sprintf("/auth/edit-tasks/%d", taskID), token, map[string]string{
		"task_title":       "Ship release",
		"date":             "2026-09-01",
		"priority_id":      "1",
		"status_id":        fmt.Sprintf("%d", completedID),
		"task_description": "cut and tag",
	}, "", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	tasks := env.listTasks(t, token)
	require.Len(t, tasks, 1)
	assert.NotNil(t, tasks[0]["completedOn"])
}

func TestListTasks_EnvelopeAndEmpty(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerAndLogin(t, "sam")

	assert.Empty(t, env.listTasks(t, token))

	resp, _ := env.doMultipart(t, http.MethodPost, "/auth/add-task", token, map[string]string{
		"task_title":       "Ship release",
		"date":             "2026-09-01",
		"priority_id":      "1",
		"task_description": "cut and tag",
	}, "", "", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	tasks := env.listTasks(t, token)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Ship release", tasks[0]["task_title"])
}

func TestDeleteTask_OwnershipScoped(t *testing.T) {
	env := newTestEnv(t)
	samToken := env.registerAndLogin(t, "sam")
	kimToken := env.registerAndLogin(t, "kim")

	resp, created := env.doMultipart(t, http.MethodPost, "/auth/add-task", samToken, map[string]string{
		"task_title":       "Private task",
		"date":             "2026-09-01",
		"priority_id":      "1",
		"task_description": "mine",
	}, "", "", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	taskID := int64(created["id"].(float64))

	resp, _ = env.doJSON(t, http.MethodDelete, fmt.Sprintf("/auth/tasks/%d", taskID), kimToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = env.doJSON(t, http.MethodDelete, fmt.Sprintf("/auth/tasks/%d", taskID), samToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestUploadProfilePicture(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerAndLogin(t, "sam")

	resp, body := env.doMultipart(t, http.MethodPut, "/auth/upload-profile-picture", token,
		nil, "profile_picture", "me.png", []byte("png-bytes"))

	require.Equal(t, http.StatusOK, resp.StatusCode)
	path, _ := body["imagePath"].(string)
	require.True(t, strings.HasPrefix(path, "/uploads/"))
	assert.True(t, strings.HasSuffix(path, ".png"))

	// The blob is stored under the generated name.
	name := strings.TrimPrefix(path, "/uploads/")
	rc, err := env.blobs.Open(context.Background(), name)
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)

	// And persisted on the profile.
	_, dash := env.doJSON(t, http.MethodGet, "/auth/dashboard", token, nil)
	assert.Equal(t, path, dash["profile_picture"])
}

func TestAddTask_StoresUploadedImage(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerAndLogin(t, "sam")

	// The client sends the file under the task_image field.
	resp, body := env.doMultipart(t, http.MethodPost, "/auth/add-task", token, map[string]string{
		"task_title":       "Ship release",
		"date":             "2026-09-01",
		"priority_id":      "1",
		"task_description": "cut and tag",
	}, "task_image", "shot.png", []byte("png-bytes"))

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	path, ok := body["task_image"].(string)
	require.True(t, ok, "task_image must be set when a file is uploaded")
	require.True(t, strings.HasPrefix(path, "/uploads/"))
	assert.True(t, strings.HasSuffix(path, ".png"))

	rc, err := env.blobs.Open(context.Background(), strings.TrimPrefix(path, "/uploads/"))
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)
}

func TestUploadProfilePicture_MissingFile(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerAndLogin(t, "sam")

	resp, _ := env.doMultipart(t, http.MethodPut, "/auth/upload-profile-picture", token,
		map[string]string{"unrelated": "field"}, "", "", nil)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAddCategory_ConcurrentDuplicate(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerAndLogin(t, "sam")

	payload, err := json.Marshal(map[string]string{"category_name": "Project"})
	require.NoError(t, err)

	const attempts = 8
	statuses := make(chan int, attempts)
	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start

			req, err := http.NewRequest(http.MethodPost, env.ts.URL+"/auth/add-category", bytes.NewReader(payload))
			if err != nil {
				statuses <- 0
				return
			}
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Authorization", "Bearer "+token)

			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				statuses <- 0
				return
			}
			resp.Body.Close()
			statuses <- resp.StatusCode
		}()
	}
	close(start)
	wg.Wait()
	close(statuses)

	created, conflicts := 0, 0
	for code := range statuses {
		switch code {
		case http.StatusCreated:
			created++
		case http.StatusConflict:
			conflicts++
		default:
			t.Fatalf("unexpected status %d", code)
		}
	}
	assert.Equal(t, 1, created, "exactly one concurrent create may win")
	assert.Equal(t, attempts-1, conflicts)

	_, categories := env.doJSONList(t, "/auth/categories", token)
	assert.Len(t, categories, 1)
}

func TestCategoryValueLifecycle(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerAndLogin(t, "sam")

	resp, _ := env.doJSON(t, http.MethodPost, "/auth/add-category", token, map[string]string{
		"category_name": "Project",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	_, categories := env.doJSONList(t, "/auth/categories", token)
	require.Len(t, categories, 1)
	catID := int64(categories[0]["id"].(float64))

	resp, _ = env.doJSON(t, http.MethodPost, "/auth/add-category_values", token, map[string]any{
		"category_id": catID, "value_name": "Backend", "value_color": "#0000FF",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, values := env.doJSONList(t, "/auth/category_values", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, values, 1)
	assert.Equal(t, "Backend", values[0]["value_name"])

	// Deleting the category cascades to its values.
	resp, _ = env.doJSON(t, http.MethodDelete, fmt.Sprintf("/auth/categories/%d", catID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	_, values = env.doJSONList(t, "/auth/category_values", token)
	assert.Empty(t, values)
}
