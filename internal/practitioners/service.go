package practitioners

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/harborlight/portal/internal/storage"
	"github.com/harborlight/portal/pkg/logger"
)

// FileUpload is a photo attached to a create or update request.
type FileUpload struct {
	Name        string
	Reader      io.Reader
	Size        int64
	ContentType string
}

type Service struct {
	repo  Repository
	store storage.ObjectStore
}

func NewService(repo Repository, store storage.ObjectStore) *Service {
	return &Service{repo: repo, store: store}
}

func (s *Service) List(ctx context.Context) ([]*Practitioner, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, id string) (*Practitioner, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

// Create uploads the photo first, then inserts the record. When the insert
// fails the uploaded object is removed so no orphan is left behind.
func (s *Service) Create(ctx context.Context, p *Practitioner, photo *FileUpload) (*Practitioner, error) {
	if photo != nil {
		url, key, err := s.uploadPhoto(ctx, photo)
		if err != nil {
			return nil, err
		}
		p.PhotoURL = url
		p.PhotoKey = key
	}
	created, err := s.repo.Create(ctx, p)
	if err != nil {
		if p.PhotoKey != "" {
			if rerr := s.store.Remove(ctx, p.PhotoKey); rerr != nil {
				logger.Warnf("failed to remove orphaned photo %s: %v", p.PhotoKey, rerr)
			}
		}
		return nil, err
	}
	return created, nil
}

// Update merges the given fields into the stored record. A new photo
// replaces the old object; the stale object is removed best-effort.
func (s *Service) Update(ctx context.Context, id string, fields map[string]any, photo *FileUpload) error {
	var oldKey string
	if photo != nil {
		existing, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		oldKey = existing.PhotoKey
		url, key, err := s.uploadPhoto(ctx, photo)
		if err != nil {
			return err
		}
		fields["photoUrl"] = url
		fields["photoKey"] = key
	}
	if err := s.repo.Update(ctx, id, fields); err != nil {
		return err
	}
	if oldKey != "" {
		if rerr := s.store.Remove(ctx, oldKey); rerr != nil {
			logger.Warnf("failed to remove replaced photo %s: %v", oldKey, rerr)
		}
	}
	return nil
}

// Delete removes the record, then its photo object best-effort.
func (s *Service) Delete(ctx context.Context, id string) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if existing.PhotoKey != "" {
		if rerr := s.store.Remove(ctx, existing.PhotoKey); rerr != nil {
			logger.Warnf("failed to remove photo %s: %v", existing.PhotoKey, rerr)
		}
	}
	return nil
}

func (s *Service) uploadPhoto(ctx context.Context, photo *FileUpload) (url, key string, err error) {
	if s.store == nil {
		return "", "", fmt.Errorf("photo upload not available")
	}
	key = fmt.Sprintf("practitioners/%d_%s", time.Now().UnixMilli(), path.Base(photo.Name))
	url, err = s.store.Upload(ctx, key, photo.Reader, photo.Size, photo.ContentType)
	if err != nil {
		return "", "", fmt.Errorf("photo upload: %w", err)
	}
	return url, key, nil
}
