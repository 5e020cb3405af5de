package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"social-server/internal/config"
	"social-server/internal/interfaces/mocks"
	"social-server/internal/models"
)

// --- Service mocks ---

type mockUserDirectory struct {
	mock.Mock
}

func (m *mockUserDirectory) Create(ctx context.Context, username string) (string, string, error) {
	args := m.Called(ctx, username)
	return args.String(0), args.String(1), args.Error(2)
}
func (m *mockUserDirectory) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}
func (m *mockUserDirectory) GetByHashedID(ctx context.Context, hashed string) (*models.User, error) {
	args := m.Called(ctx, hashed)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}
func (m *mockUserDirectory) GetByUnhashedID(ctx context.Context, unhashed string) (*models.User, error) {
	args := m.Called(ctx, unhashed)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}
func (m *mockUserDirectory) GetBySecondaryToken(ctx context.Context, token string) (*models.User, error) {
	args := m.Called(ctx, token)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}
func (m *mockUserDirectory) EditMetadata(ctx context.Context, username string, metadata models.UserMetadata) error {
	args := m.Called(ctx, username, metadata)
	return args.Error(0)
}
func (m *mockUserDirectory) Ban(ctx context.Context, username string) error {
	args := m.Called(ctx, username)
	return args.Error(0)
}

type mockFollowGraph struct {
	mock.Mock
}

func (m *mockFollowGraph) Toggle(ctx context.Context, user, target string) (bool, error) {
	args := m.Called(ctx, user, target)
	return args.Bool(0), args.Error(1)
}
func (m *mockFollowGraph) GetEdge(ctx context.Context, user, target string) (*models.Log, error) {
	args := m.Called(ctx, user, target)
	log, _ := args.Get(0).(*models.Log)
	return log, args.Error(1)
}
func (m *mockFollowGraph) ListFollowers(ctx context.Context, username string, offset int) ([]models.Log, error) {
	args := m.Called(ctx, username, offset)
	logs, _ := args.Get(0).([]models.Log)
	return logs, args.Error(1)
}
func (m *mockFollowGraph) ListFollowing(ctx context.Context, username string, offset int) ([]models.Log, error) {
	args := m.Called(ctx, username, offset)
	logs, _ := args.Get(0).([]models.Log)
	return logs, args.Error(1)
}
func (m *mockFollowGraph) CountFollowers(ctx context.Context, username string) (int, error) {
	args := m.Called(ctx, username)
	return args.Int(0), args.Error(1)
}
func (m *mockFollowGraph) CountFollowing(ctx context.Context, username string) (int, error) {
	args := m.Called(ctx, username)
	return args.Int(0), args.Error(1)
}

type handlerFixture struct {
	directory *mockUserDirectory
	follows   *mockFollowGraph
	hasher    *mocks.IdentityHasher
	router    *gin.Engine
}

func newHandlerForTest(t *testing.T) *handlerFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	f := &handlerFixture{
		directory: new(mockUserDirectory),
		follows:   new(mockFollowGraph),
		hasher:    new(mocks.IdentityHasher),
	}
	h := NewHandler(f.directory, f.follows, f.hasher, &config.Config{}, zap.NewNop())
	f.router = gin.New()
	h.RegisterRoutes(f.router)
	return f
}

func (f *handlerFixture) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Register(t *testing.T) {
	t.Run("Created", func(t *testing.T) {
		f := newHandlerForTest(t)

		f.directory.On("Create", mock.Anything, "alice").Return("raw-id", "hashed-id", nil).Once()

		rec := f.do(http.MethodPost, "/api/auth/register", gin.H{"username": "alice"})

		require.Equal(t, http.StatusCreated, rec.Code)
		var resp registerResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "alice", resp.Username)
		assert.Equal(t, "raw-id", resp.ID)
		assert.Equal(t, "hashed-id", resp.HashedID)
	})

	t.Run("InvalidUsername", func(t *testing.T) {
		f := newHandlerForTest(t)

		f.directory.On("Create", mock.Anything, "a").Return("", "", models.ErrInvalidUsername).Once()

		rec := f.do(http.MethodPost, "/api/auth/register", gin.H{"username": "a"})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Duplicate", func(t *testing.T) {
		f := newHandlerForTest(t)

		f.directory.On("Create", mock.Anything, "alice").Return("", "", models.ErrUserAlreadyExists).Once()

		rec := f.do(http.MethodPost, "/api/auth/register", gin.H{"username": "alice"})

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("MissingBody", func(t *testing.T) {
		f := newHandlerForTest(t)

		rec := f.do(http.MethodPost, "/api/auth/register", gin.H{})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		f.directory.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestHandler_GetUser(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		f := newHandlerForTest(t)

		nickname := "Alice"
		token := "stored-hash"
		f.directory.On("GetByUsername", mock.Anything, "alice").Return(&models.User{
			Username:  "alice",
			HashedID:  "h1",
			Role:      models.RoleMember,
			CreatedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
			Metadata:  models.UserMetadata{About: "hi", Nickname: &nickname, SecondaryToken: &token},
		}, nil).Once()

		rec := f.do(http.MethodGet, "/api/auth/users/alice", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "alice", resp["username"])
		assert.Equal(t, "member", resp["role"])
		// the stored token hash never leaves the service
		metadata := resp["metadata"].(map[string]any)
		assert.NotContains(t, metadata, "secondary_token")
	})

	t.Run("NotFound", func(t *testing.T) {
		f := newHandlerForTest(t)

		f.directory.On("GetByUsername", mock.Anything, "ghost").Return(nil, models.ErrUserNotFound).Once()

		rec := f.do(http.MethodGet, "/api/auth/users/ghost", nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestHandler_EditMetadata(t *testing.T) {
	t.Run("SecondaryTokenHashedBeforeStorage", func(t *testing.T) {
		f := newHandlerForTest(t)

		f.hasher.On("Hash", "raw-token").Return("hashed-token").Once()
		f.directory.On("EditMetadata", mock.Anything, "alice", mock.MatchedBy(func(m models.UserMetadata) bool {
			return m.SecondaryToken != nil && *m.SecondaryToken == "hashed-token" && m.About == "hi"
		})).Return(nil).Once()

		rec := f.do(http.MethodPost, "/api/auth/users/alice/metadata", gin.H{
			"about":           "hi",
			"secondary_token": "raw-token",
		})

		assert.Equal(t, http.StatusOK, rec.Code)
		f.hasher.AssertExpectations(t)
		f.directory.AssertExpectations(t)
	})

	t.Run("NoTokenNoHashing", func(t *testing.T) {
		f := newHandlerForTest(t)

		f.directory.On("EditMetadata", mock.Anything, "alice", mock.MatchedBy(func(m models.UserMetadata) bool {
			return m.SecondaryToken == nil
		})).Return(nil).Once()

		rec := f.do(http.MethodPost, "/api/auth/users/alice/metadata", gin.H{"about": "hi"})

		assert.Equal(t, http.StatusOK, rec.Code)
		f.hasher.AssertNotCalled(t, "Hash", mock.Anything)
	})

	t.Run("NotFound", func(t *testing.T) {
		f := newHandlerForTest(t)

		f.directory.On("EditMetadata", mock.Anything, "ghost", mock.Anything).Return(models.ErrUserNotFound).Once()

		rec := f.do(http.MethodPost, "/api/auth/users/ghost/metadata", gin.H{"about": "hi"})

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestHandler_BanUser(t *testing.T) {
	t.Run("Banned", func(t *testing.T) {
		f := newHandlerForTest(t)

		f.directory.On("Ban", mock.Anything, "alice").Return(nil).Once()

		rec := f.do(http.MethodPost, "/api/auth/users/alice/ban", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("ElevatedForbidden", func(t *testing.T) {
		f := newHandlerForTest(t)

		f.directory.On("Ban", mock.Anything, "root").Return(models.ErrForbidden).Once()

		rec := f.do(http.MethodPost, "/api/auth/users/root/ban", nil)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestHandler_ToggleFollow(t *testing.T) {
	t.Run("Following", func(t *testing.T) {
		f := newHandlerForTest(t)

		f.follows.On("Toggle", mock.Anything, "alice", "bob").Return(true, nil).Once()

		rec := f.do(http.MethodPost, "/api/auth/follow", gin.H{"user": "alice", "is_following": "bob"})

		require.Equal(t, http.StatusOK, rec.Code)
		var resp followResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "following", resp.Status)
	})

	t.Run("NotFollowing", func(t *testing.T) {
		f := newHandlerForTest(t)

		f.follows.On("Toggle", mock.Anything, "alice", "bob").Return(false, nil).Once()

		rec := f.do(http.MethodPost, "/api/auth/follow", gin.H{"user": "alice", "is_following": "bob"})

		require.Equal(t, http.StatusOK, rec.Code)
		var resp followResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "not_following", resp.Status)
	})

	t.Run("SelfFollow", func(t *testing.T) {
		f := newHandlerForTest(t)

		f.follows.On("Toggle", mock.Anything, "alice", "alice").Return(false, models.ErrSelfFollow).Once()

		rec := f.do(http.MethodPost, "/api/auth/follow", gin.H{"user": "alice", "is_following": "alice"})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("UnknownUser", func(t *testing.T) {
		f := newHandlerForTest(t)

		f.follows.On("Toggle", mock.Anything, "alice", "ghost").Return(false, models.ErrUserNotFound).Once()

		rec := f.do(http.MethodPost, "/api/auth/follow", gin.H{"user": "alice", "is_following": "ghost"})

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestHandler_FollowPages(t *testing.T) {
	t.Run("FollowersWithCount", func(t *testing.T) {
		f := newHandlerForTest(t)

		edges := []models.Log{
			{ID: "log-1", LogType: models.LogTypeFollow, Timestamp: 1700000001000, Content: models.UserFollow{User: "bob", IsFollowing: "alice"}},
		}
		f.follows.On("ListFollowers", mock.Anything, "alice", 0).Return(edges, nil).Once()
		f.follows.On("CountFollowers", mock.Anything, "alice").Return(51, nil).Once()

		rec := f.do(http.MethodGet, "/api/auth/users/alice/followers", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp followPageResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Len(t, resp.Edges, 1)
		assert.Equal(t, 51, resp.Count)
		assert.Equal(t, 0, resp.Offset)
	})

	t.Run("FollowingWithOffset", func(t *testing.T) {
		f := newHandlerForTest(t)

		f.follows.On("ListFollowing", mock.Anything, "alice", 50).Return([]models.Log{}, nil).Once()
		f.follows.On("CountFollowing", mock.Anything, "alice").Return(50, nil).Once()

		rec := f.do(http.MethodGet, "/api/auth/users/alice/following?offset=50", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		f.follows.AssertExpectations(t)
	})

	t.Run("MalformedOffsetTreatedAsZero", func(t *testing.T) {
		f := newHandlerForTest(t)

		f.follows.On("ListFollowers", mock.Anything, "alice", 0).Return([]models.Log{}, nil).Once()
		f.follows.On("CountFollowers", mock.Anything, "alice").Return(0, nil).Once()

		rec := f.do(http.MethodGet, "/api/auth/users/alice/followers?offset=abc", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
