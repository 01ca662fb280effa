// Package cloudstorage wraps the external media storage provider
// (Cloudinary). Binary assets never touch local disk; uploads stream
// through to the provider and reads serve the provider's URLs.
package cloudstorage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// UploadResult is the subset of provider metadata the media store keeps.
type UploadResult struct {
	PublicID     string
	URL          string
	Bytes        int64
	Width        int
	Height       int
	ResourceType string
	Format       string
}

// Client talks to the storage provider.
type Client struct {
	cld *cloudinary.Cloudinary
}

// New builds a provider client from cloud name/key/secret.
func New(cloudName, apiKey, apiSecret string) (*Client, error) {
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, errors.New("storage provider cloud name, api key and api secret are required")
	}
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("storage provider init: %w", err)
	}
	return &Client{cld: cld}, nil
}

// Upload pushes a binary stream to the provider under the given folder.
func (c *Client) Upload(ctx context.Context, r io.Reader, folder string) (*UploadResult, error) {
	return c.upload(ctx, r, folder)
}

// UploadBase64 pushes a base64 data URI (`data:<mime>;base64,...`) to
// the provider.
func (c *Client) UploadBase64(ctx context.Context, dataURI, folder string) (*UploadResult, error) {
	if !strings.HasPrefix(dataURI, "data:") {
		return nil, errors.New("expected a base64 data URI")
	}
	return c.upload(ctx, dataURI, folder)
}

func (c *Client) upload(ctx context.Context, file interface{}, folder string) (*UploadResult, error) {
	res, err := c.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:       folder,
		ResourceType: "auto",
	})
	if err != nil {
		return nil, err
	}
	if res.Error.Message != "" {
		return nil, errors.New(res.Error.Message)
	}

	return &UploadResult{
		PublicID:     res.PublicID,
		URL:          res.SecureURL,
		Bytes:        int64(res.Bytes),
		Width:        res.Width,
		Height:       res.Height,
		ResourceType: res.ResourceType,
		Format:       res.Format,
	}, nil
}

// Destroy removes the remote object. Callers treat failure as
// best-effort; the local record is already gone.
func (c *Client) Destroy(ctx context.Context, publicID string) error {
	res, err := c.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return err
	}
	if res.Result != "" && res.Result != "ok" && res.Result != "not found" {
		return fmt.Errorf("destroy %s: %s", publicID, res.Result)
	}
	return nil
}

// TransformURL builds a delivery URL applying the given transformation
// string (e.g. "w_300,h_200,c_fill").
func (c *Client) TransformURL(publicID, transformation string) (string, error) {
	img, err := c.cld.Image(publicID)
	if err != nil {
		return "", err
	}
	img.Transformation = transformation
	return img.String()
}
