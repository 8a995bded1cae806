package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/skill-matcher/internal/config"
	"github.com/jonathan/skill-matcher/internal/db"
	"github.com/jonathan/skill-matcher/internal/server/ratelimit"
	"github.com/jonathan/skill-matcher/internal/types"
)

const testSecret = "test-secret-key-for-handlers"

// mockStore is an in-memory Store
type mockStore struct {
	mu      sync.Mutex
	resumes map[uuid.UUID]*types.StoredResume
	jobs    []types.JobRecord
	err     error // returned by every call when set
}

func newMockStore() *mockStore {
	return &mockStore{resumes: make(map[uuid.UUID]*types.StoredResume)}
}

func (m *mockStore) addResume(owner uuid.UUID, skills ...string) *types.StoredResume {
	m.mu.Lock()
	defer m.mu.Unlock()
	r := &types.StoredResume{
		ID:           uuid.New(),
		OwnerID:      owner,
		Filename:     "stored.txt",
		OriginalName: "resume.txt",
		UploadedAt:   time.Now().UTC(),
		Profile:      &types.ExtractedProfile{Skills: skills},
	}
	m.resumes[r.ID] = r
	return r
}

func (m *mockStore) addJob(title, company string, skills ...string) types.JobRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	j := types.JobRecord{ID: uuid.New(), Title: title, Company: company, RequiredSkills: skills}
	m.jobs = append(m.jobs, j)
	return j
}

func (m *mockStore) GetResume(_ context.Context, id uuid.UUID) (*types.StoredResume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.resumes[id], nil
}

func (m *mockStore) GetResumeByOwner(_ context.Context, ownerID uuid.UUID) (*types.StoredResume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, r := range m.resumes {
		if r.OwnerID == ownerID {
			return r, nil
		}
	}
	return nil, nil
}

func (m *mockStore) CreateResume(_ context.Context, input *db.ResumeCreateInput) (*types.StoredResume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, r := range m.resumes {
		if r.OwnerID == input.OwnerID {
			return nil, db.ErrResumeExists
		}
	}
	r := &types.StoredResume{
		ID:           uuid.New(),
		OwnerID:      input.OwnerID,
		Filename:     input.Filename,
		OriginalName: input.OriginalName,
		UploadedAt:   time.Now().UTC(),
		Profile:      input.Profile,
	}
	m.resumes[r.ID] = r
	return r, nil
}

func (m *mockStore) ListResumesByOwner(_ context.Context, ownerID uuid.UUID) ([]types.ResumeSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := []types.ResumeSummary{}
	for _, r := range m.resumes {
		if r.OwnerID == ownerID {
			out = append(out, db.Summarize(r))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UploadedAt.After(out[j].UploadedAt) })
	return out, nil
}

func (m *mockStore) DeleteResume(_ context.Context, id, ownerID uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	r, ok := m.resumes[id]
	if !ok || r.OwnerID != ownerID {
		return false, nil
	}
	delete(m.resumes, id)
	return true, nil
}

func (m *mockStore) GetJob(_ context.Context, id uuid.UUID) (*types.JobRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.jobs {
		if m.jobs[i].ID == id {
			j := m.jobs[i]
			return &j, nil
		}
	}
	return nil, nil
}

func (m *mockStore) ListJobs(_ context.Context, q types.JobListQuery) ([]types.JobRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := []types.JobRecord{}
	for _, j := range m.jobs {
		if q.Company != "" && !strings.Contains(strings.ToLower(j.Company), strings.ToLower(q.Company)) {
			continue
		}
		out = append(out, j)
		if q.Limit > 0 && len(out) == q.Limit {
			break
		}
	}
	return out, nil
}

func (m *mockStore) Ping(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.err
}

var errStoreDown = errors.New("connection refused")

// newTestServer builds a server over a mock store with rate limiting disabled.
func newTestServer(t *testing.T, cfg config.Config) (*Server, *mockStore) {
	t.Helper()
	store := newMockStore()
	jwtService := NewJWTService(&config.JWTConfig{Secret: testSecret, Leeway: time.Second})
	s, err := NewWithStore(cfg, store, jwtService.AsTokenValidator(), &ratelimit.Config{Enabled: false})
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s, store
}

// signToken issues an HS256 token the way the account service does.
func signToken(t *testing.T, secret string, userID uuid.UUID, expiresIn time.Duration) string {
	t.Helper()
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

// do sends a request through the full handler chain.
func do(s *Server, req *http.Request, token string) *httptest.ResponseRecorder {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}
