// Package imagestore persists post images in Google Cloud Storage, applying
// the size normalization policy before upload. Deletion handles are the GCS
// object keys.
package imagestore

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"path"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"
)

// ErrNotInline is returned when the payload is not a data URI.
var ErrNotInline = errors.New("not an inline image payload")

const jpegQuality = 85

// Uploaded describes a stored image: a public URL and the object key used
// to delete it later.
type Uploaded struct {
	URL       string
	ObjectKey string
}

// Store uploads post images to a GCS bucket.
type Store struct {
	Client *storage.Client
	Bucket string
	Folder string
}

// NewClient creates a Google Cloud Storage client. If credsPath is empty,
// Application Default Credentials are used.
func NewClient(ctx context.Context, credsPath string) (*storage.Client, error) {
	if credsPath == "" {
		return storage.NewClient(ctx)
	}
	return storage.NewClient(ctx, option.WithCredentialsFile(credsPath))
}

func New(client *storage.Client, bucket string) *Store {
	return &Store{Client: client, Bucket: bucket, Folder: "posts"}
}

// IsInline reports whether s is an inline-encoded image payload.
func IsInline(s string) bool {
	return strings.HasPrefix(s, "data:image")
}

// UploadInline decodes a data:image/...;base64 payload, normalizes it to the
// bounded size, re-encodes as JPEG and uploads it under the owner's prefix.
func (s *Store) UploadInline(ctx context.Context, ownerID, dataURI string) (Uploaded, error) {
	if s.Client == nil || s.Bucket == "" {
		return Uploaded{}, errors.New("image storage not configured")
	}
	img, err := decodeDataURI(dataURI)
	if err != nil {
		return Uploaded{}, err
	}
	img = Normalize(img)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return Uploaded{}, err
	}

	key := path.Join(s.Folder, ownerID, uuid.NewString()+".jpg")
	if err := s.put(ctx, key, "image/jpeg", &buf); err != nil {
		return Uploaded{}, err
	}
	return Uploaded{URL: s.publicURL(key), ObjectKey: key}, nil
}

// Delete removes a previously uploaded object.
func (s *Store) Delete(ctx context.Context, objectKey string) error {
	if s.Client == nil || s.Bucket == "" {
		return errors.New("image storage not configured")
	}
	return s.Client.Bucket(s.Bucket).Object(objectKey).Delete(ctx)
}

func (s *Store) put(ctx context.Context, key, contentType string, r io.Reader) error {
	wc := s.Client.Bucket(s.Bucket).Object(key).NewWriter(ctx)
	wc.ContentType = contentType
	wc.ChunkSize = 0 // disable chunking for small files
	if _, err := io.Copy(wc, r); err != nil {
		_ = wc.Close()
		return err
	}
	return wc.Close()
}

func (s *Store) publicURL(key string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.Bucket, key)
}

// decodeDataURI parses "data:image/<fmt>;base64,<payload>" into an image.
func decodeDataURI(s string) (image.Image, error) {
	if !IsInline(s) {
		return nil, ErrNotInline
	}
	idx := strings.Index(s, ",")
	if idx < 0 || !strings.Contains(s[:idx], ";base64") {
		return nil, errors.New("malformed image data URI")
	}
	raw, err := base64.StdEncoding.DecodeString(s[idx+1:])
	if err != nil {
		return nil, fmt.Errorf("decode image payload: %w", err)
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}
