package chi

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/YellowKidokc/CloudFlarevector/internal/domain"
	healthuc "github.com/YellowKidokc/CloudFlarevector/internal/usecase/health"
)

// stubVault implements VaultService with scripted results.
type stubVault struct {
	status     domain.VaultStatus
	statusErr  error
	setupErr   error
	resetErr   error
	setupCalls int
	resetCalls int
	lastRecord domain.VaultRecord
}

func (s *stubVault) Setup(_ context.Context, rec domain.VaultRecord) (domain.VaultStatus, error) {
	s.setupCalls++
	s.lastRecord = rec
	if s.setupErr != nil {
		return domain.VaultStatus{}, s.setupErr
	}
	return domain.StatusFor(rec), nil
}

func (s *stubVault) Status(_ context.Context) (domain.VaultStatus, error) {
	return s.status, s.statusErr
}

func (s *stubVault) Reset(_ context.Context) error {
	s.resetCalls++
	return s.resetErr
}

// stubIngest implements IngestService.
type stubIngest struct {
	outcome      domain.UploadOutcome
	err          error
	calls        int
	lastFilename string
	lastData     []byte
}

func (s *stubIngest) Upload(_ context.Context, data []byte, filename string) (domain.UploadOutcome, error) {
	s.calls++
	s.lastFilename = filename
	s.lastData = data
	if s.err != nil {
		return domain.UploadOutcome{}, s.err
	}
	return s.outcome, nil
}

// stubHealth implements HealthService.
type stubHealth struct {
	report healthuc.Report
}

func (s *stubHealth) Check(_ context.Context) healthuc.Report {
	return s.report
}

func newTestServer(vault *stubVault, ingest *stubIngest, health *stubHealth) *Server {
	if health == nil {
		health = &stubHealth{report: healthuc.Report{
			Status: healthuc.Healthy,
			Checks: map[string]healthuc.CheckResult{"database": healthuc.CheckOK},
		}}
	}
	return NewServer(vault, ingest, health, 1<<20, zap.NewNop())
}

// multipartBody builds a multipart form with one file field.
func multipartBody(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func doUpload(t *testing.T, s *Server, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := multipartBody(t, filename, content)
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()
	s.Upload(rr, req)
	return rr
}
