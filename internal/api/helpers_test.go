package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mediahub/mediahub-api/internal/api"
	"github.com/mediahub/mediahub-api/internal/config"
	"github.com/mediahub/mediahub-api/internal/domain"
	"github.com/mediahub/mediahub-api/internal/mocks"
	"github.com/mediahub/mediahub-api/internal/service"
	"github.com/mediahub/mediahub-api/internal/service/auth"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-that-is-at-least-32-characters"

var (
	alice = domain.User{ID: 1, Username: "alice", Email: "alice@example.com", Role: domain.RoleUser, HashedPassword: "hashed:alicepass1"}
	bob   = domain.User{ID: 2, Username: "bob", Email: "bob@example.com", Role: domain.RoleUser, HashedPassword: "hashed:bobpass12"}
	admin = domain.User{ID: 3, Username: "root", Email: "root@example.com", Role: domain.RoleAdmin, HashedPassword: "hashed:rootpass1"}
)

// pngBytes is a PNG signature followed by filler; enough for content sniffing.
var pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), bytes.Repeat([]byte{0}, 64)...)

// testEnv is a router wired to in-memory stores and a real JWT service.
type testEnv struct {
	users   *mocks.MockUserStore
	media   *mocks.MockMediaStore
	objects *mocks.MockObjectStore
	items   *mocks.MockItemStore
	jwt     auth.JWTService
	handler http.Handler
}

type envOption func(*api.Dependencies)

func withMaxUpload(n int64) envOption {
	return func(d *api.Dependencies) { d.MaxUploadBytes = n }
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()

	env := &testEnv{
		users: mocks.NewMockUserStore(alice, bob, admin),
		media: mocks.NewMockMediaStore(domain.Media{
			ID:            1,
			Filename:      "a1b2.png",
			Filesize:      int64(len(pngBytes)),
			MediaType:     "image/png",
			Title:         "Sunset",
			Description:   "over the bay",
			OwnerID:       alice.ID,
			OwnerUsername: alice.Username,
		}),
		objects: mocks.NewMockObjectStore(),
		items:   mocks.NewMockItemStore(domain.Item{ID: 1, Name: "First"}),
	}
	require.NoError(t, env.objects.Put(context.Background(), "a1b2.png", "image/png", bytes.NewReader(pngBytes), int64(len(pngBytes))))

	jwtService, err := auth.NewJWTService(config.AuthConfig{JWTSecret: testSecret, TokenLifetimeMinutes: 60})
	require.NoError(t, err)
	env.jwt = jwtService

	hasher := &mocks.MockPasswordHasher{}
	verifier := &mocks.MockPasswordVerifier{
		CompareFn: func(hashedPassword, password string) error {
			if hashedPassword == "hashed:"+password {
				return nil
			}
			return errors.New("mismatch")
		},
	}
	authenticator, err := auth.NewAuthenticator(env.users, hasher, verifier, jwtService)
	require.NoError(t, err)

	logger := testLogger()
	deps := api.Dependencies{
		Logger:         logger,
		JWTService:     jwtService,
		Authenticator:  authenticator,
		UserService:    service.NewUserService(env.users, env.media, env.objects, hasher, logger),
		MediaService:   service.NewMediaService(env.media, env.objects, logger),
		ItemStore:      env.items,
		MaxUploadBytes: 1 << 20,
	}
	for _, opt := range opts {
		opt(&deps)
	}
	env.handler = api.NewRouter(deps)
	return env
}

// tokenFor mints a valid bearer token for user.
func (e *testEnv) tokenFor(t *testing.T, user domain.User) string {
	t.Helper()
	token, _, err := e.jwt.GenerateToken(context.Background(), domain.Identity{SubjectID: user.ID, Role: user.Role})
	require.NoError(t, err)
	return token
}

// do sends a request through the router. A non-nil body that is not an
// io.Reader is encoded as JSON.
func (e *testEnv) do(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	contentType := ""
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
		contentType = "application/json"
	case io.Reader:
		reader = b
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
		contentType = "application/json"
	}

	req := httptest.NewRequest(method, path, reader)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	e.handler.ServeHTTP(rr, req)
	return rr
}

// upload sends a multipart POST /api/media. A nil file omits the file part.
func (e *testEnv) upload(t *testing.T, fields map[string]string, file []byte, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if file != nil {
		part, err := mw.CreateFormFile("file", "holiday.png")
		require.NoError(t, err)
		_, err = part.Write(file)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/media", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	e.handler.ServeHTTP(rr, req)
	return rr
}

// decodeBody decodes a JSON response into a generic map.
func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body), "body: %s", rr.Body.String())
	return body
}

// fieldRules returns field -> rule for every failure in an error body.
func fieldRules(t *testing.T, body map[string]interface{}) map[string]string {
	t.Helper()
	raw, ok := body["errors"].([]interface{})
	require.True(t, ok, "response has no errors list: %v", body)

	rules := make(map[string]string, len(raw))
	for _, entry := range raw {
		fe := entry.(map[string]interface{})
		rules[fe["field"].(string)] = fe["rule"].(string)
	}
	return rules
}

func serve(e *testEnv, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	e.handler.ServeHTTP(rr, req)
	return rr
}

func jsonUnmarshal(rr *httptest.ResponseRecorder, v interface{}) error {
	return json.Unmarshal(rr.Body.Bytes(), v)
}
