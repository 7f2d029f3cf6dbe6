package handlers

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kozaktomas/face-attendance/internal/attendance"
	"github.com/kozaktomas/face-attendance/internal/facematch"
)

// jsonRequest creates a request with body marshalled as JSON
func jsonRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal request body: %v", err)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// gradientDataURI returns a small PNG as a data URI
func gradientDataURI(t *testing.T) string {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 32, 32))
	for y := range 32 {
		for x := range 32 {
			img.SetGray(x, y, color.Gray{Y: uint8(x * 8)})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

// parseJSONResponse parses a JSON response body into the target type
func parseJSONResponse(t *testing.T, recorder *httptest.ResponseRecorder, target any) {
	t.Helper()
	if err := json.Unmarshal(recorder.Body.Bytes(), target); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nBody: %s", err, recorder.Body.String())
	}
}

// assertStatusCode checks if the response has the expected status code
func assertStatusCode(t *testing.T, recorder *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if recorder.Code != expected {
		t.Errorf("expected status %d, got %d\nBody: %s", expected, recorder.Code, recorder.Body.String())
	}
}

// assertContentType checks if the response has the expected content type
func assertContentType(t *testing.T, recorder *httptest.ResponseRecorder, expected string) {
	t.Helper()
	ct := recorder.Header().Get("Content-Type")
	if ct != expected {
		t.Errorf("expected Content-Type '%s', got '%s'", expected, ct)
	}
}

// assertFailure checks that the response is {success:false, message:expected}
func assertFailure(t *testing.T, recorder *httptest.ResponseRecorder, expected string) {
	t.Helper()
	var resp Response
	parseJSONResponse(t, recorder, &resp)
	if resp.Success {
		t.Error("expected success false")
	}
	if resp.Message != expected {
		t.Errorf("expected message '%s', got '%s'", expected, resp.Message)
	}
}

type fakeRecognizer struct {
	result facematch.Result
	err    error
	calls  int
	photo  []byte
}

func (f *fakeRecognizer) Recognize(_ context.Context, photo []byte) (facematch.Result, error) {
	f.calls++
	f.photo = photo
	return f.result, f.err
}

type fakeRecorder struct {
	err     error
	entries []attendance.Entry
}

func (f *fakeRecorder) Record(_ context.Context, name, status string) (attendance.Entry, error) {
	entry := attendance.Entry{Name: name, Status: status}
	if f.err != nil {
		return entry, f.err
	}
	f.entries = append(f.entries, entry)
	return entry, nil
}
