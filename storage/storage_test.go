package storage

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/disintegration/imaging"
)

type fakeBackend struct {
	puts    map[string][]byte
	deleted []string
	err     error
}

func (f *fakeBackend) Put(_ context.Context, bucket, publicID string, r io.Reader) (Object, error) {
	if f.err != nil {
		return Object{}, f.err
	}
	b, _ := io.ReadAll(r)
	if f.puts == nil {
		f.puts = map[string][]byte{}
	}
	id := bucket + "/" + publicID
	f.puts[id] = b
	return Object{URL: "https://cdn.test/" + id + ".jpg", PublicID: id}, nil
}

func (f *fakeBackend) Delete(_ context.Context, publicID string) error {
	f.deleted = append(f.deleted, publicID)
	return nil
}

func pngOf(w, h int) *bytes.Buffer {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.NRGBA{R: 200, A: 255})
	}
	buf := new(bytes.Buffer)
	_ = png.Encode(buf, img)
	return buf
}

func TestUploadResizesAndNames(t *testing.T) {
	backend := &fakeBackend{}
	svc := NewService(backend, 100)
	svc.now = func() time.Time { return time.Unix(0, 42) }

	obj, err := svc.Upload(context.Background(), "event_images", "Soirée Jazz.png", pngOf(400, 200))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(obj.PublicID, "event_images/soiree-jazz-") {
		t.Errorf("public id = %q", obj.PublicID)
	}
	img, err := imaging.Decode(bytes.NewReader(backend.puts[obj.PublicID]))
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 100 || img.Bounds().Dy() != 50 {
		t.Errorf("stored size = %v", img.Bounds())
	}
}

func TestUploadKeepsSmallImages(t *testing.T) {
	backend := &fakeBackend{}
	obj, err := NewService(backend, 1920).Upload(context.Background(), "site_images", "logo.png", pngOf(40, 20))
	if err != nil {
		t.Fatal(err)
	}
	img, _ := imaging.Decode(bytes.NewReader(backend.puts[obj.PublicID]))
	if img.Bounds().Dx() != 40 {
		t.Errorf("width = %d", img.Bounds().Dx())
	}
}

func TestUploadRejects(t *testing.T) {
	svc := NewService(&fakeBackend{}, 100)
	ctx := context.Background()
	if _, err := svc.Upload(ctx, "avatars", "a.png", pngOf(10, 10)); !errors.Is(err, ErrUnknownBucket) {
		t.Errorf("bucket: %v", err)
	}
	if _, err := svc.Upload(ctx, "site_images", "a.png", strings.NewReader("not an image")); !errors.Is(err, ErrNotImage) {
		t.Errorf("content: %v", err)
	}
	failing := NewService(&fakeBackend{err: errors.New("quota")}, 100)
	if _, err := failing.Upload(ctx, "homepage-images", "a.png", pngOf(10, 10)); err == nil {
		t.Error("backend error swallowed")
	}
}

func TestDiscard(t *testing.T) {
	backend := &fakeBackend{}
	svc := NewService(backend, 100)
	svc.Discard(context.Background(), "")
	svc.Discard(context.Background(), "site_images/x")
	if len(backend.deleted) != 1 || backend.deleted[0] != "site_images/x" {
		t.Errorf("deleted = %v", backend.deleted)
	}
}
