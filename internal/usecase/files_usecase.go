package usecase

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"

	"github.com/google/uuid"

	"go-jobportal-backend/internal/domain"
	"go-jobportal-backend/pkg/apperror"
)

// maxPhotoWidth is the downscale bound for profile photos. Wider uploads are
// resized to this width preserving aspect ratio and re-encoded as JPEG.
const maxPhotoWidth = 800

func (u *candidateUsecase) UploadResume(ctx context.Context, userID uuid.UUID, filename string, data []byte) (*domain.ProfileEnvelope, error) {
	profile, err := u.getProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("resumes/%s/%s", profile.ID, sanitizeFilename(filename))
	if err := u.storage.Upload(ctx, key, contentTypeOf(filename), bytes.NewReader(data)); err != nil {
		return nil, apperror.Internal("RESUME_UPLOAD_ERROR", "Unable to upload resume.", err)
	}
	if err := u.repo.UpdateResumeKey(ctx, profile.ID, key); err != nil {
		return nil, apperror.Internal("RESUME_UPLOAD_ERROR", "Unable to upload resume.", err)
	}

	env, err := u.loadEnvelope(ctx, userID)
	if err != nil {
		return nil, apperror.Internal("RESUME_UPLOAD_ERROR", "Unable to upload resume.", err)
	}
	return env, nil
}

func (u *candidateUsecase) DeleteResume(ctx context.Context, userID uuid.UUID) (*domain.ProfileEnvelope, error) {
	profile, err := u.getProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if profile.ResumeKey != "" {
		if err := u.storage.Delete(ctx, profile.ResumeKey); err != nil {
			return nil, apperror.Internal("RESUME_DELETE_ERROR", "Unable to delete resume.", err)
		}
	}
	if err := u.repo.UpdateResumeKey(ctx, profile.ID, ""); err != nil {
		return nil, apperror.Internal("RESUME_DELETE_ERROR", "Unable to delete resume.", err)
	}

	env, err := u.loadEnvelope(ctx, userID)
	if err != nil {
		return nil, apperror.Internal("RESUME_DELETE_ERROR", "Unable to delete resume.", err)
	}
	return env, nil
}

func (u *candidateUsecase) UploadPhoto(ctx context.Context, userID uuid.UUID, filename, contentType string, data []byte) (string, error) {
	profile, err := u.getProfile(ctx, userID)
	if err != nil {
		return "", err
	}

	body, outName, outType := downscalePhoto(data, filename, contentType)
	key := fmt.Sprintf("profile-photos/%s/%s", profile.ID, sanitizeFilename(outName))
	if err := u.storage.Upload(ctx, key, outType, bytes.NewReader(body)); err != nil {
		return "", apperror.Internal("PHOTO_UPLOAD_ERROR", "Unable to upload photo.", err)
	}
	if err := u.repo.UpdatePhotoKey(ctx, profile.ID, key); err != nil {
		return "", apperror.Internal("PHOTO_UPLOAD_ERROR", "Unable to upload photo.", err)
	}
	return u.storage.URL(key), nil
}

// downscalePhoto shrinks oversized images to maxPhotoWidth and normalizes
// them to JPEG. Undecodable payloads pass through untouched.
func downscalePhoto(data []byte, filename, contentType string) ([]byte, string, string) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return data, filename, contentType
	}
	bounds := src.Bounds()
	if bounds.Dx() <= maxPhotoWidth {
		return data, filename, contentType
	}

	height := bounds.Dy() * maxPhotoWidth / bounds.Dx()
	dst := image.NewRGBA(image.Rect(0, 0, maxPhotoWidth, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: 85}); err != nil {
		return data, filename, contentType
	}
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	return buf.Bytes(), base + ".jpg", "image/jpeg"
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-' || r == '_':
			return r
		default:
			return '_'
		}
	}, name)
	if name == "" || name == "." {
		name = "upload"
	}
	return name
}

func contentTypeOf(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return "application/pdf"
	case ".doc":
		return "application/msword"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".txt":
		return "text/plain"
	default:
		return "application/octet-stream"
	}
}
