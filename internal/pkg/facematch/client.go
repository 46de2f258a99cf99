package facematch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"strings"

	"github.com/absensia/absensi-backend-go/internal/config"
)

// Client calls the face-recognition service. Identification is consumed as
// an opaque "image in, name + confidence out" operation; enrollment and
// matching accuracy are the service's problem.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(cfg config.FaceAPIConfig) *Client {
	transport := &http.Transport{
		DialContext: (&net.Dialer{Timeout: cfg.ConnectTimeout}).DialContext,
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
		},
	}
}

// Result is the identification payload returned by the service.
type Result struct {
	Success  bool     `json:"success"`
	User     string   `json:"user"`
	Message  string   `json:"message"`
	Distance *float64 `json:"distance"`
	Gap      *float64 `json:"gap"`
}

// UpstreamError carries the service's diagnostic payload back to the
// caller. Nothing is persisted when it fires.
type UpstreamError struct {
	StatusCode int
	Message    string
	Raw        string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("face service error [%d]: %s", e.StatusCode, e.Message)
}

// Verify streams the image to the service and returns the identification.
// Transport failures, non-2xx responses, malformed bodies, and explicit
// rejections all surface as errors; a nil error means a confident match.
func (c *Client) Verify(ctx context.Context, image io.Reader, filename, contentType string) (Result, error) {
	if contentType == "" {
		contentType = "image/jpeg"
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	header := make(map[string][]string)
	header["Content-Disposition"] = []string{
		fmt.Sprintf(`form-data; name="image"; filename=%q`, filename),
	}
	header["Content-Type"] = []string{contentType}

	part, err := writer.CreatePart(header)
	if err != nil {
		return Result{}, fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := io.Copy(part, image); err != nil {
		return Result{}, fmt.Errorf("failed to copy image into request: %w", err)
	}
	if err := writer.Close(); err != nil {
		return Result{}, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/verify-face", &body)
	if err != nil {
		return Result{}, fmt.Errorf("failed to build verify request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("face service unreachable: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Result{}, fmt.Errorf("failed to read face service response: %w", err)
	}

	var result Result
	if err := json.Unmarshal(raw, &result); err != nil {
		return Result{}, &UpstreamError{
			StatusCode: resp.StatusCode,
			Message:    "malformed face service response",
			Raw:        string(raw),
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !result.Success {
		message := result.Message
		if message == "" {
			message = "face not recognized"
		}
		return Result{}, &UpstreamError{
			StatusCode: resp.StatusCode,
			Message:    message,
			Raw:        string(raw),
		}
	}

	return result, nil
}
