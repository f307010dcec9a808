package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// envelope is the backend's uniform response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type backend struct {
	baseURL string
	http    *http.Client
}

func newBackend(baseURL string) backend {
	return backend{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 60 * time.Second},
	}
}

// Upload references a file already staged on local disk. The client streams
// it into the multipart body; it never buffers the whole file in memory.
type Upload struct {
	FileName string
	Path     string
}

func (b backend) doJSON(ctx context.Context, method, path, token string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, b.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return b.send(req, token, out)
}

// doMultipart writes fields plus optional file parts. List-valued fields are
// already JSON-encoded by the caller. The body is produced through a pipe so
// a large video upload streams straight from disk to the socket.
func (b backend) doMultipart(ctx context.Context, method, path, token string, fields map[string]string, files map[string]Upload, out interface{}) error {
	pr, pw := io.Pipe()
	w := multipart.NewWriter(pw)

	go func() {
		err := writeParts(w, fields, files)
		if cerr := w.Close(); err == nil {
			err = cerr
		}
		pw.CloseWithError(err)
	}()

	req, err := http.NewRequestWithContext(ctx, method, b.baseURL+path, pr)
	if err != nil {
		pr.CloseWithError(err)
		return err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	return b.send(req, token, out)
}

func writeParts(w *multipart.Writer, fields map[string]string, files map[string]Upload) error {
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return err
		}
	}
	for field, up := range files {
		name := up.FileName
		if name == "" {
			name = filepath.Base(up.Path)
		}
		part, err := w.CreateFormFile(field, name)
		if err != nil {
			return err
		}
		f, err := os.Open(up.Path)
		if err != nil {
			return err
		}
		_, err = io.Copy(part, f)
		f.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

func (b backend) send(req *http.Request, token string, out interface{}) error {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := b.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("%w: %v", ErrBadResponse, err)
	}

	if resp.StatusCode >= 400 || !env.Success {
		return &BackendError{Status: resp.StatusCode, Message: env.Message}
	}

	if out == nil {
		return nil
	}
	if len(env.Data) == 0 {
		return fmt.Errorf("%w: missing data field", ErrBadResponse)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	return nil
}

func requireToken(token string) error {
	if token == "" {
		return ErrNoToken
	}
	return nil
}
