package board

import (
	"context"
	"fmt"
	"io"

	"github.com/CrestNiraj12/boardterm/domain"
)

type uploadService struct {
	client *Client
}

// NewUploadService returns an UploadService using presigned URLs.
func NewUploadService(client *Client) *uploadService {
	return &uploadService{client: client}
}

type presignRequest struct {
	FileName string `json:"file_name"`
}

// UploadImage validates the file, asks the API for a presigned target, then
// sends the bytes straight to object storage.
func (s *uploadService) UploadImage(ctx context.Context, fileName, contentType string, size int64, r io.Reader) (string, error) {
	if err := domain.ValidateUpload(size, contentType); err != nil {
		return "", err
	}

	var target domain.PresignedUpload
	if err := s.client.Put(ctx, apiPrefix+"/questions/presigned-url", presignRequest{FileName: fileName}, &target); err != nil {
		return "", fmt.Errorf("requesting upload url: %w", err)
	}
	if target.PresignedURL == "" || target.ImgURL == "" {
		return "", fmt.Errorf("requesting upload url: empty response")
	}

	if err := s.client.putObject(ctx, target.PresignedURL, contentType, size, r); err != nil {
		return "", err
	}
	return target.ImgURL, nil
}
