package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	"credforge/internal/credential/models"
	"credforge/internal/credential/service"
	"credforge/internal/credential/store"
	"credforge/pkg/platform/middleware/request"
)

const workerID = "worker-test1234"

// HandlerSuite exercises both handlers against one shared in-memory store,
// mirroring a deployment where issuance and verification point at the same
// database.
type HandlerSuite struct {
	suite.Suite
	store  *store.InMemory
	router http.Handler
}

func (s *HandlerSuite) SetupTest() {
	s.store = store.NewInMemory()
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	issuer := service.NewIssuer(s.store, workerID)
	verifier := service.NewVerifier(s.store)

	r := chi.NewRouter()
	r.Use(request.RequestID)
	NewIssue(issuer, logger).Register(r)
	NewVerify(verifier, logger).Register(r)
	s.router = r
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) post(path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *HandlerSuite) get(path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *HandlerSuite) decode(rec *httptest.ResponseRecorder) map[string]any {
	var body map[string]any
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func (s *HandlerSuite) TestIssueWithoutIDGeneratesDistinctIDs() {
	first := s.post("/issue", `{"name":"John Doe","role":"Developer"}`)
	s.Require().Equal(http.StatusCreated, first.Code)
	firstBody := s.decode(first)
	s.NotEmpty(firstBody["credentialId"])
	s.Equal(workerID, firstBody["worker"])
	s.Equal("Credential issued by "+workerID, firstBody["message"])

	// Same document again: a fresh id is generated, so no conflict.
	second := s.post("/issue", `{"name":"John Doe","role":"Developer"}`)
	s.Require().Equal(http.StatusCreated, second.Code)
	s.NotEqual(firstBody["credentialId"], s.decode(second)["credentialId"])
}

func (s *HandlerSuite) TestIssueExplicitIDThenConflict() {
	first := s.post("/issue", `{"id":"CRED-1","name":"Alice"}`)
	s.Require().Equal(http.StatusCreated, first.Code)
	s.Equal("CRED-1", s.decode(first)["credentialId"])

	second := s.post("/issue", `{"id":"CRED-1","name":"Alice"}`)
	s.Require().Equal(http.StatusConflict, second.Code)
	s.Equal("Credential already issued", s.decode(second)["message"])
	s.Equal(1, s.store.Len())
}

func (s *HandlerSuite) TestVerifyIssuedCredential() {
	issued := s.post("/issue", `{"id":"CRED-1","name":"Alice"}`)
	s.Require().Equal(http.StatusCreated, issued.Code)
	issuedBody := s.decode(issued)

	verified := s.post("/verify", `{"id":"CRED-1"}`)
	s.Require().Equal(http.StatusOK, verified.Code)

	body := s.decode(verified)
	s.Equal("valid", body["status"])
	s.Equal(workerID, body["worker"])
	s.Equal(issuedBody["timestamp"], body["timestamp"])

	credential, ok := body["credential"].(map[string]any)
	s.Require().True(ok)
	s.Equal("CRED-1", credential["id"])
	s.Equal("Alice", credential["name"])
}

func (s *HandlerSuite) TestVerifyUnknownCredential() {
	rec := s.post("/verify", `{"id":"CRED-UNKNOWN"}`)
	s.Require().Equal(http.StatusNotFound, rec.Code)

	body := s.decode(rec)
	s.Equal("invalid", body["status"])
	s.Equal("Credential not found", body["message"])
}

func (s *HandlerSuite) TestVerifyByPathID() {
	s.post("/issue", `{"id":"CRED-1","name":"Alice"}`)

	rec := s.get("/verify/CRED-1")
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Equal("valid", s.decode(rec)["status"])
}

func (s *HandlerSuite) TestIssueMalformedBody() {
	cases := []struct {
		name string
		body string
	}{
		{"json array", `[1,2,3]`},
		{"json string", `"hello"`},
		{"json null", `null`},
		{"truncated", `{"name":`},
		{"non-string id", `{"id":42}`},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			rec := s.post("/issue", tc.body)
			s.Equal(http.StatusBadRequest, rec.Code)
			s.Equal("Invalid credential format", s.decode(rec)["message"])
		})
	}
	s.Equal(0, s.store.Len(), "malformed input must not mutate the store")
}

func (s *HandlerSuite) TestVerifyMalformedBody() {
	rec := s.post("/verify", `null`)
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal("Invalid credential format", s.decode(rec)["message"])
}

func (s *HandlerSuite) TestVerifyMissingID() {
	cases := []struct {
		name string
		body string
	}{
		{"absent id", `{"name":"Alice"}`},
		{"empty id", `{"id":""}`},
		{"non-string id", `{"id":42}`},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			rec := s.post("/verify", tc.body)
			s.Equal(http.StatusBadRequest, rec.Code)
			s.Equal("Credential ID is required", s.decode(rec)["message"])
		})
	}
}

// faultyStore simulates persistence failures at the handler boundary.
type faultyStore struct{}

func (faultyStore) Exists(context.Context, string) (bool, error) {
	return false, errors.New("disk I/O error")
}
func (faultyStore) Save(context.Context, string, *models.Record) error {
	return errors.New("disk I/O error")
}
func (faultyStore) Get(context.Context, string) (*models.Record, error) {
	return nil, errors.New("disk I/O error")
}

func TestHandlersStorageFailure(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	r := chi.NewRouter()
	NewIssue(service.NewIssuer(faultyStore{}, workerID), logger).Register(r)
	NewVerify(service.NewVerifier(faultyStore{}), logger).Register(r)

	t.Run("issue returns opaque 500", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/issue", strings.NewReader(`{"id":"CRED-1"}`))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "Internal server error") {
			t.Fatalf("expected opaque message, got %s", rec.Body.String())
		}
		if strings.Contains(rec.Body.String(), "disk") {
			t.Fatalf("driver detail leaked to caller: %s", rec.Body.String())
		}
	})

	t.Run("verify returns opaque 500", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/verify", strings.NewReader(`{"id":"CRED-1"}`))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
		if strings.Contains(rec.Body.String(), "disk") {
			t.Fatalf("driver detail leaked to caller: %s", rec.Body.String())
		}
	})
}
