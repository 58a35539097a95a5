package storage

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bytedance/sonic"
)

// FileKV keeps all keys in a single JSON document. Writes go through a
// temp file and rename so a crash never leaves a half-written document.
type FileKV struct {
	mu   sync.Mutex
	path string
}

type fileDocument struct {
	Entries map[string]string `json:"entries"`
}

func NewFileKV(path string) (*FileKV, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("storage: file path is empty")
	}
	return &FileKV{path: path}, nil
}

func (f *FileKV) Get(_ context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, err := f.read()
	if err != nil {
		return nil, err
	}
	encoded, ok := doc.Entries[key]
	if !ok {
		return nil, ErrNotFound
	}
	value, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return value, nil
}

func (f *FileKV) Set(_ context.Context, key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, err := f.read()
	if err != nil {
		return err
	}
	doc.Entries[key] = base64.StdEncoding.EncodeToString(value)
	return f.write(doc)
}

func (f *FileKV) Delete(_ context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, err := f.read()
	if err != nil {
		return err
	}
	changed := false
	for _, k := range keys {
		if _, ok := doc.Entries[k]; ok {
			delete(doc.Entries, k)
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return f.write(doc)
}

func (f *FileKV) Close() error { return nil }

func (f *FileKV) read() (fileDocument, error) {
	doc := fileDocument{Entries: map[string]string{}}
	raw, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return doc, nil
		}
		return doc, err
	}
	if strings.TrimSpace(string(raw)) == "" {
		return doc, nil
	}
	if err := sonic.ConfigStd.Unmarshal(raw, &doc); err != nil {
		return doc, fmt.Errorf("parse %s: %w", f.path, err)
	}
	if doc.Entries == nil {
		doc.Entries = map[string]string{}
	}
	return doc, nil
}

func (f *FileKV) write(doc fileDocument) error {
	if dir := filepath.Dir(f.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	payload, err := sonic.ConfigStd.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, append(payload, '\n'), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}
