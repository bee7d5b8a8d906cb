package appointments

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
	"time"

	"github.com/harborlight/portal/internal/storage"
	"github.com/harborlight/portal/pkg/logger"
)

var (
	ErrUnknownStatus = errors.New("unknown status")
	ErrBadTransition = errors.New("status transition not allowed")
)

// FileUpload describes an optional document attached to a booking.
type FileUpload struct {
	Name        string
	Reader      io.Reader
	Size        int64
	ContentType string
}

// BookInput carries the booking form fields. The caller is responsible for
// ensuring an authenticated owner before invoking the layer.
type BookInput struct {
	UserID      string
	UserEmail   string
	ServiceType string
	Date        string
	Time        string
	Notes       string
	File        *FileUpload
}

// Service is the CRUD boundary for appointments plus the admin moderation
// operations.
type Service struct {
	repo   Repository
	store  storage.ObjectStore
	broker *Broker
}

func NewService(repo Repository, store storage.ObjectStore, broker *Broker) *Service {
	return &Service{repo: repo, store: store, broker: broker}
}

// Book creates a new appointment. Status is always pending on creation,
// whatever the caller supplied. A document, when present, is uploaded first;
// if the metadata insert then fails the uploaded object is removed so no
// orphan is left behind.
func (s *Service) Book(ctx context.Context, in BookInput) (*Appointment, error) {
	a := &Appointment{
		UserID:      in.UserID,
		UserEmail:   in.UserEmail,
		ServiceType: in.ServiceType,
		Date:        in.Date,
		Time:        in.Time,
		Notes:       in.Notes,
		Status:      StatusPending,
	}
	if in.File != nil {
		if s.store == nil {
			return nil, errors.New("document upload not available")
		}
		key := fmt.Sprintf("appointments/%s/%d_%s", in.UserID, time.Now().UnixMilli(), path.Base(in.File.Name))
		url, err := s.store.Upload(ctx, key, in.File.Reader, in.File.Size, in.File.ContentType)
		if err != nil {
			return nil, fmt.Errorf("document upload: %w", err)
		}
		a.DocumentURL = url
		a.DocumentKey = key
	}
	created, err := s.repo.Create(ctx, a)
	if err != nil {
		if a.DocumentKey != "" {
			if rerr := s.store.Remove(ctx, a.DocumentKey); rerr != nil {
				logger.Warnf("failed to remove orphaned upload %s: %v", a.DocumentKey, rerr)
			}
		}
		return nil, err
	}
	s.notify(ctx)
	return created, nil
}

// ListForUser returns the owner's appointments, newest date first.
func (s *Service) ListForUser(ctx context.Context, userID string) ([]*Appointment, error) {
	list, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	sortByDateDesc(list)
	return list, nil
}

// ListAll returns every appointment for admin views, newest date first.
func (s *Service) ListAll(ctx context.Context) ([]*Appointment, error) {
	list, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	sortByDateDesc(list)
	return list, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*Appointment, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateStatus applies an admin status change. Transitions follow the
// allowed table; re-setting the current value is an accepted no-op that
// touches nothing and notifies nobody.
func (s *Service) UpdateStatus(ctx context.Context, id, status string) error {
	if !ValidStatus(status) {
		return ErrUnknownStatus
	}
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if current.Status == status {
		return nil
	}
	if !CanTransition(current.Status, status) {
		return fmt.Errorf("%w: %s -> %s", ErrBadTransition, current.Status, status)
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	s.notify(ctx)
	return nil
}

// Assign overwrites the assigned staff label and notes. The label is free
// text; no cross-check against the practitioner collection is performed.
func (s *Service) Assign(ctx context.Context, id, assignedMember, notes string) error {
	if err := s.repo.UpdateAssignment(ctx, id, assignedMember, notes); err != nil {
		return err
	}
	s.notify(ctx)
	return nil
}

// Watch opens a live subscription scoped to userID ("" for all) and primes
// it with the current snapshot.
func (s *Service) Watch(ctx context.Context, userID string) (*Subscription, error) {
	var snapshot []*Appointment
	var err error
	if userID == "" {
		snapshot, err = s.ListAll(ctx)
	} else {
		snapshot, err = s.ListForUser(ctx, userID)
	}
	if err != nil {
		return nil, err
	}
	return s.broker.SubscribeWith(userID, snapshot), nil
}

// Unwatch tears down a live subscription.
func (s *Service) Unwatch(sub *Subscription) {
	s.broker.Unsubscribe(sub)
}

// notify pushes a fresh full snapshot to every live subscriber. Failures
// only cost liveness, never correctness, so they are logged and swallowed.
func (s *Service) notify(ctx context.Context) {
	if s.broker == nil {
		return
	}
	snapshot, err := s.ListAll(ctx)
	if err != nil {
		logger.Errorf("failed to load appointment snapshot: %v", err)
		return
	}
	s.broker.Publish(snapshot)
}

// sortByDateDesc orders by calendar date, newest first. Dates are the
// booking form's "2006-01-02" strings; anything unparsable sorts last.
func sortByDateDesc(list []*Appointment) {
	sort.SliceStable(list, func(i, j int) bool {
		di, ei := time.Parse("2006-01-02", list[i].Date)
		dj, ej := time.Parse("2006-01-02", list[j].Date)
		if ei != nil || ej != nil {
			if ei == nil {
				return true
			}
			return false
		}
		return di.After(dj)
	})
}
