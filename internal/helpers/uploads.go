package helpers

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	storage_go "github.com/supabase-community/storage-go"
	"github.com/supabase-community/supabase-go"
)

const QRFolder = "qrcodes"

// ImageUploader stores a PNG under folder/name.png and returns its public URL.
type ImageUploader interface {
	UploadPNG(ctx context.Context, folder, name string, data []byte) (string, error)
}

type CloudinaryUploader struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryUploader(cld *cloudinary.Cloudinary) *CloudinaryUploader {
	return &CloudinaryUploader{cld: cld}
}

func (u *CloudinaryUploader) UploadPNG(ctx context.Context, folder, name string, data []byte) (string, error) {
	if u.cld == nil {
		return "", fmt.Errorf("cloudinary client is not initialized")
	}
	res, err := u.cld.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		PublicID: name,
		Folder:   folder,
		Tags:     []string{"enquiry-qr"},
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image %s: %w", name, err)
	}
	if res.Error.Message != "" {
		return "", fmt.Errorf("failed to upload image %s: %s", name, res.Error.Message)
	}
	return res.SecureURL, nil
}

// SupabaseUploader writes into a Supabase storage bucket. The object key is
// folder/name.png inside the bucket.
type SupabaseUploader struct {
	client *supabase.Client
	bucket string
}

func NewSupabaseUploader(client *supabase.Client, bucket string) *SupabaseUploader {
	return &SupabaseUploader{client: client, bucket: bucket}
}

func (u *SupabaseUploader) UploadPNG(ctx context.Context, folder, name string, data []byte) (string, error) {
	if u.client == nil || u.client.Storage == nil {
		return "", fmt.Errorf("supabase storage is not initialized")
	}
	key := path.Join(folder, name+".png")
	contentType := "image/png"
	upsert := true
	_, err := u.client.Storage.UploadFile(u.bucket, key, bytes.NewReader(data), storage_go.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return u.client.Storage.GetPublicUrl(u.bucket, key).SignedURL, nil
}
