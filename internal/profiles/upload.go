// internal/profiles/upload.go
// CV storage. Production uploads go to S3; development falls back to a
// local directory so onboarding works without AWS credentials.

package profiles

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/google/uuid"
)

// MaxCVSize bounds a CV upload to 10 MB.
const MaxCVSize = 10 << 20

var allowedCVExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

// Uploader stores one CV file and returns its public URL.
type Uploader interface {
	SaveCV(ctx context.Context, filename string, contentType string, body io.Reader) (string, error)
}

// CVKey builds a collision-free storage key keeping the original
// extension.
func CVKey(filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedCVExtensions[ext] {
		return "", fmt.Errorf("unsupported CV file type %q", ext)
	}
	return fmt.Sprintf("cvs/%s%s", uuid.New().String(), ext), nil
}

// S3

type s3Uploader struct {
	uploader *s3manager.Uploader
	bucket   string
}

func NewS3Uploader(region, accessKeyID, secretAccessKey, bucket string) (Uploader, error) {
	sess, err := session.NewSession(&aws.Config{
		Region:      aws.String(region),
		Credentials: credentials.NewStaticCredentials(accessKeyID, secretAccessKey, ""),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize AWS session: %w", err)
	}
	return &s3Uploader{
		uploader: s3manager.NewUploader(sess),
		bucket:   bucket,
	}, nil
}

func (u *s3Uploader) SaveCV(ctx context.Context, filename, contentType string, body io.Reader) (string, error) {
	key, err := CVKey(filename)
	if err != nil {
		return "", err
	}

	out, err := u.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("S3 upload failed: %w", err)
	}
	return out.Location, nil
}

// Local filesystem

type localUploader struct {
	dir     string
	baseURL string
}

func NewLocalUploader(dir, baseURL string) Uploader {
	return &localUploader{dir: dir, baseURL: baseURL}
}

func (u *localUploader) SaveCV(_ context.Context, filename, _ string, body io.Reader) (string, error) {
	key, err := CVKey(filename)
	if err != nil {
		return "", err
	}

	path := filepath.Join(u.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, body); err != nil {
		return "", fmt.Errorf("failed to write upload: %w", err)
	}
	return fmt.Sprintf("%s/uploads/%s", u.baseURL, key), nil
}
