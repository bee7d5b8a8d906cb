package blog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/harborlight/portal/internal/storage"
	"github.com/harborlight/portal/pkg/logger"
)

var (
	ErrSlugTaken = errors.New("slug already in use")
	ErrNoTitle   = errors.New("post title is required")
)

// FileUpload is a cover image attached to a create or update request.
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

func (s *Service) ListPublished(ctx context.Context) ([]*Post, error) {
	return s.repo.ListPublished(ctx)
}

func (s *Service) ListAll(ctx context.Context) ([]*Post, error) {
	return s.repo.ListAll(ctx)
}

func (s *Service) GetByID(ctx context.Context, id string) (*Post, error) {
	return s.repo.GetByID(ctx, id)
}

// GetPublishedBySlug is the public single-post lookup. Unpublished posts
// are invisible here.
func (s *Service) GetPublishedBySlug(ctx context.Context, slug string) (*Post, error) {
	p, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !p.Published {
		return nil, ErrNotFound
	}
	return p, nil
}

func (s *Service) CountPublished(ctx context.Context) (int64, error) {
	return s.repo.CountPublished(ctx)
}

// Create inserts a post. The slug is derived from the title unless the
// author supplied one; either way it must be unique. Publishing at create
// time stamps publishedAt.
func (s *Service) Create(ctx context.Context, p *Post, cover *FileUpload) (*Post, error) {
	if p.Slug == "" {
		p.Slug = Slugify(p.Title)
	} else {
		p.Slug = Slugify(p.Slug)
	}
	if p.Slug == "" {
		return nil, ErrNoTitle
	}
	taken, err := s.repo.SlugInUse(ctx, p.Slug, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrSlugTaken
	}
	if p.Published && p.PublishedAt == nil {
		now := time.Now().UTC()
		p.PublishedAt = &now
	}
	if cover != nil {
		url, key, err := s.uploadCover(ctx, cover)
		if err != nil {
			return nil, err
		}
		p.CoverURL = url
		p.CoverKey = key
	}
	created, err := s.repo.Create(ctx, p)
	if err != nil {
		if p.CoverKey != "" {
			if rerr := s.store.Remove(ctx, p.CoverKey); rerr != nil {
				logger.Warnf("failed to remove orphaned cover %s: %v", p.CoverKey, rerr)
			}
		}
		return nil, err
	}
	return created, nil
}

// Update merges fields into the stored post. Flipping published to true
// stamps publishedAt (an existing stamp is kept); flipping it to false
// clears the stamp. A changed slug must stay unique.
func (s *Service) Update(ctx context.Context, id string, fields map[string]any, cover *FileUpload) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if raw, ok := fields["slug"]; ok {
		slug := Slugify(raw.(string))
		if slug == "" {
			return ErrNoTitle
		}
		taken, err := s.repo.SlugInUse(ctx, slug, id)
		if err != nil {
			return err
		}
		if taken {
			return ErrSlugTaken
		}
		fields["slug"] = slug
	}
	if raw, ok := fields["published"]; ok {
		published := raw.(bool)
		switch {
		case published && existing.PublishedAt == nil:
			fields["publishedAt"] = time.Now().UTC()
		case !published:
			fields["publishedAt"] = nil
		}
	}
	var oldKey string
	if cover != nil {
		oldKey = existing.CoverKey
		url, key, err := s.uploadCover(ctx, cover)
		if err != nil {
			return err
		}
		fields["coverUrl"] = url
		fields["coverKey"] = key
	}
	if err := s.repo.Update(ctx, id, fields); err != nil {
		return err
	}
	if oldKey != "" {
		if rerr := s.store.Remove(ctx, oldKey); rerr != nil {
			logger.Warnf("failed to remove replaced cover %s: %v", oldKey, rerr)
		}
	}
	return nil
}

// Delete removes the post, then its cover object best-effort.
func (s *Service) Delete(ctx context.Context, id string) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if existing.CoverKey != "" {
		if rerr := s.store.Remove(ctx, existing.CoverKey); rerr != nil {
			logger.Warnf("failed to remove cover %s: %v", existing.CoverKey, rerr)
		}
	}
	return nil
}

func (s *Service) uploadCover(ctx context.Context, cover *FileUpload) (url, key string, err error) {
	if s.store == nil {
		return "", "", fmt.Errorf("cover upload not available")
	}
	key = fmt.Sprintf("blog/%d_%s", time.Now().UnixMilli(), path.Base(cover.Name))
	url, err = s.store.Upload(ctx, key, cover.Reader, cover.Size, cover.ContentType)
	if err != nil {
		return "", "", fmt.Errorf("cover upload: %w", err)
	}
	return url, key, nil
}
