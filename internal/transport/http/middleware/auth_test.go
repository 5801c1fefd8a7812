package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Chakraaaa/taskflow/internal/infra/security"
	"github.com/Chakraaaa/taskflow/internal/usecase"
)

type fakeTokenParser struct {
	claims    *security.AccessClaims
	err       error
	lastToken string
}

func (f *fakeTokenParser) ParseAccessToken(ctx context.Context, token string) (*security.AccessClaims, error) {
	f.lastToken = token
	if f.err != nil {
		return nil, f.err
	}
	return f.claims, nil
}

func newAuthRouter(parser TokenParser) *gin.Engine {
	router := gin.New()
	router.GET("/protected", RequireAuth(parser), func(c *gin.Context) {
		userID, ok := GetAuthenticatedUserID(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, userID)
	})
	return router
}

func decodeAuthError(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if body.Success {
		t.Fatalf("expected success false, got true")
	}
	return body.Message
}

func TestRequireAuthAcceptsValidToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	parser := &fakeTokenParser{claims: &security.AccessClaims{UserID: "user-123"}}
	router := newAuthRouter(parser)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if rr.Body.String() != "user-123" {
		t.Fatalf("expected handler to see user-123, got %q", rr.Body.String())
	}
	if parser.lastToken != "valid-token" {
		t.Fatalf("expected parser to receive stripped token, got %q", parser.lastToken)
	}
}

func TestRequireAuthRejectsMissingHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)

	parser := &fakeTokenParser{claims: &security.AccessClaims{UserID: "user-123"}}
	router := newAuthRouter(parser)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
	if msg := decodeAuthError(t, rr); msg != "authorization required" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestRequireAuthRejectsMalformedHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name   string
		header string
	}{
		{name: "NoScheme", header: "valid-token"},
		{name: "WrongScheme", header: "Basic dXNlcjpwYXNz"},
		{name: "EmptyToken", header: "Bearer  "},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			parser := &fakeTokenParser{claims: &security.AccessClaims{UserID: "user-123"}}
			router := newAuthRouter(parser)

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set("Authorization", tc.header)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			if rr.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rr.Code)
			}
			if msg := decodeAuthError(t, rr); msg != "invalid authorization header" {
				t.Fatalf("unexpected message %q", msg)
			}
			if parser.lastToken != "" {
				t.Fatalf("expected parser not to be called, got token %q", parser.lastToken)
			}
		})
	}
}

func TestRequireAuthDistinguishesExpiredToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name    string
		err     error
		message string
	}{
		{name: "Expired", err: usecase.ErrExpiredAccessToken, message: "access token expired"},
		{name: "Invalid", err: usecase.ErrInvalidAccessToken, message: "invalid access token"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			parser := &fakeTokenParser{err: tc.err}
			router := newAuthRouter(parser)

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set("Authorization", "Bearer stale-token")
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			if rr.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rr.Code)
			}
			if msg := decodeAuthError(t, rr); msg != tc.message {
				t.Fatalf("unexpected message %q", msg)
			}
		})
	}
}

func TestGetAuthenticatedUserIDWithoutAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if _, ok := GetAuthenticatedUserID(c); ok {
		t.Fatalf("expected no user ID on bare context")
	}
}
