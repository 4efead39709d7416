package render

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"gastroposter/pkg/metrics"
)

const upstreamName = "gotenberg"

// GotenbergClient конвертирует HTML постера в PDF через Gotenberg (Chromium)
type GotenbergClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewGotenbergClient создает клиент Gotenberg
func NewGotenbergClient(baseURL string, timeout time.Duration) *GotenbergClient {
	return &GotenbergClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Ping проверяет доступность Gotenberg
func (c *GotenbergClient) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("gotenberg returned status %d", resp.StatusCode)
	}
	return nil
}

// RenderHTML отправляет HTML как index.html и возвращает PDF (формат A4 задаётся в @page)
func (c *GotenbergClient) RenderHTML(ctx context.Context, html string) ([]byte, error) {
	timer := metrics.NewUpstreamTimer(upstreamName, "/forms/chromium/convert/html")

	pdf, err := c.renderHTML(ctx, html)
	if err != nil {
		timer.Done("error")
		return nil, err
	}
	timer.Done("ok")
	return pdf, nil
}

func (c *GotenbergClient) renderHTML(ctx context.Context, html string) ([]byte, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	// Gotenberg требует, чтобы главный файл назывался index.html
	part, err := writer.CreateFormFile("files", "index.html")
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.WriteString(part, html); err != nil {
		return nil, fmt.Errorf("failed to write html: %w", err)
	}
	if err := writer.WriteField("preferCssPageSize", "true"); err != nil {
		return nil, fmt.Errorf("failed to write form field: %w", err)
	}
	if err := writer.WriteField("printBackground", "true"); err != nil {
		return nil, fmt.Errorf("failed to write form field: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/forms/chromium/convert/html", body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("render failed with status %d: %s", resp.StatusCode, string(msg))
	}

	pdf, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read pdf: %w", err)
	}
	return pdf, nil
}
