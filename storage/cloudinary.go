package storage

import (
	"context"
	"errors"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Cloudinary maps each bucket to a folder of the same name.
type Cloudinary struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinary(cloud, key, secret string) (*Cloudinary, error) {
	if cloud == "" || key == "" || secret == "" {
		return nil, errors.New("cloudinary credentials are not configured")
	}
	cld, err := cloudinary.NewFromParams(cloud, key, secret)
	if err != nil {
		return nil, err
	}
	return &Cloudinary{cld: cld}, nil
}

func (c *Cloudinary) Put(ctx context.Context, bucket, publicID string, r io.Reader) (Object, error) {
	res, err := c.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		Folder:       bucket,
		PublicID:     publicID,
		ResourceType: "image",
	})
	if err != nil {
		return Object{}, err
	}
	if res.Error.Message != "" {
		return Object{}, errors.New(res.Error.Message)
	}
	return Object{URL: res.SecureURL, PublicID: res.PublicID}, nil
}

func (c *Cloudinary) Delete(ctx context.Context, publicID string) error {
	res, err := c.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return err
	}
	if res.Error.Message != "" {
		return errors.New(res.Error.Message)
	}
	return nil
}
