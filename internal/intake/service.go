package intake

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

const (
	inquiryStatusNew   = "new"
	formStatusUploaded = "uploaded"
)

// FormUpload is a patient document handed to SubmitPatientForm.
type FormUpload struct {
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

// SubmitInquiry records a contact form submission with status "new".
func (s *Service) SubmitInquiry(ctx context.Context, inq *Inquiry) (*Inquiry, error) {
	inq.Status = inquiryStatusNew
	return s.repo.CreateInquiry(ctx, inq)
}

// SubmitPatientForm uploads the document, then writes its metadata record.
// uploadedBy is nil for anonymous submissions. When the metadata insert
// fails the uploaded object is removed.
func (s *Service) SubmitPatientForm(ctx context.Context, patientName, documentType string, uploadedBy *string, file *FormUpload) (*PatientForm, error) {
	if s.store == nil {
		return nil, errors.New("document upload not available")
	}
	key := fmt.Sprintf("patient-forms/%d_%s", time.Now().Unix(), path.Base(file.Name))
	url, err := s.store.Upload(ctx, key, file.Reader, file.Size, file.ContentType)
	if err != nil {
		return nil, fmt.Errorf("form upload: %w", err)
	}
	pf := &PatientForm{
		PatientName:  patientName,
		DocumentType: documentType,
		UploadedBy:   uploadedBy,
		FileName:     path.Base(file.Name),
		FileURL:      url,
		StoragePath:  key,
		Status:       formStatusUploaded,
	}
	created, err := s.repo.CreatePatientForm(ctx, pf)
	if err != nil {
		if rerr := s.store.Remove(ctx, key); rerr != nil {
			logger.Warnf("failed to remove orphaned form %s: %v", key, rerr)
		}
		return nil, err
	}
	return created, nil
}

// Subscribe adds the email to the newsletter list. Duplicates are accepted
// silently.
func (s *Service) Subscribe(ctx context.Context, email string) error {
	_, err := s.repo.Subscribe(ctx, email)
	return err
}
