// Package upload pushes receipt and wallet images to an external
// image CDN through its unsigned upload endpoint and hands back the
// durable URL.
package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

type Service struct {
	client *http.Client
	url    string
	preset string
}

func NewService(uploadURL, preset string) *Service {
	return &Service{
		client: &http.Client{Timeout: 30 * time.Second},
		url:    uploadURL,
		preset: preset,
	}
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Upload sends the image content as multipart form data and returns the
// hosted URL. folder groups assets on the CDN side ("transactions",
// "wallets").
func (s *Service) Upload(ctx context.Context, content io.Reader, filename, folder string) (string, error) {
	var body bytes.Buffer

	form := multipart.NewWriter(&body)

	part, err := form.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("creating form file: %w", err)
	}

	if _, err := io.Copy(part, content); err != nil {
		return "", fmt.Errorf("copying image content: %w", err)
	}

	if err := form.WriteField("upload_preset", s.preset); err != nil {
		return "", fmt.Errorf("writing preset field: %w", err)
	}

	if err := form.WriteField("folder", folder); err != nil {
		return "", fmt.Errorf("writing folder field: %w", err)
	}

	if err := form.Close(); err != nil {
		return "", fmt.Errorf("closing form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, &body)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	var parsed uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if parsed.Error.Message != "" {
			return "", fmt.Errorf("upload rejected: %s", parsed.Error.Message)
		}

		return "", fmt.Errorf("unexpected status code %d", resp.StatusCode)
	}

	if parsed.SecureURL == "" {
		return "", fmt.Errorf("upload response missing url")
	}

	return parsed.SecureURL, nil
}
