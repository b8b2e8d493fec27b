// Package storage puts uploaded photos into the site's buckets.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"restaurant_site/constants"

	"github.com/disintegration/imaging"
	"github.com/gosimple/slug"
)

var (
	ErrUnknownBucket = errors.New("unknown bucket")
	ErrNotImage      = errors.New("file is not a supported image")
)

// Object is a stored file. PublicID is needed to delete it.
type Object struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}

// Backend is the object store itself.
type Backend interface {
	Put(ctx context.Context, bucket, publicID string, r io.Reader) (Object, error)
	Delete(ctx context.Context, publicID string) error
}

type Service struct {
	backend  Backend
	maxWidth int
	now      func() time.Time
}

func NewService(backend Backend, maxWidth int) *Service {
	return &Service{backend: backend, maxWidth: maxWidth, now: time.Now}
}

// Upload normalizes the image and stores it in bucket under a name derived
// from filename.
func (s *Service) Upload(ctx context.Context, bucket, filename string, r io.Reader) (Object, error) {
	if !slices.Contains(constants.Buckets, bucket) {
		return Object{}, fmt.Errorf("%w: %s", ErrUnknownBucket, bucket)
	}
	body, err := Normalize(r, s.maxWidth)
	if err != nil {
		return Object{}, err
	}
	obj, err := s.backend.Put(ctx, bucket, s.publicID(filename), body)
	if err != nil {
		return Object{}, fmt.Errorf("upload to %s: %w", bucket, err)
	}
	return obj, nil
}

// Discard deletes an object that ended up unused. Failures are logged.
func (s *Service) Discard(ctx context.Context, publicID string) {
	if publicID == "" {
		return
	}
	if err := s.backend.Delete(ctx, publicID); err != nil {
		log.Printf("[storage] failed to delete %s: %v", publicID, err)
	}
}

func (s *Service) publicID(filename string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	name := slug.Make(base)
	if name == "" {
		name = "image"
	}
	return name + "-" + strconv.FormatInt(s.now().UnixNano(), 36)
}

// Normalize decodes an image, applies its EXIF orientation, shrinks it to
// maxWidth and re-encodes it as JPEG.
func Normalize(r io.Reader, maxWidth int) (*bytes.Buffer, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotImage, err)
	}
	if maxWidth > 0 && img.Bounds().Dx() > maxWidth {
		img = imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
	}
	buf := new(bytes.Buffer)
	if err := imaging.Encode(buf, img, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return nil, err
	}
	return buf, nil
}
