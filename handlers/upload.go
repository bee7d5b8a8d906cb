package handlers

import (
	"mime/multipart"

	"github.com/gin-gonic/gin"
)

// upload is an open multipart file part. Callers convert it into the
// service-specific upload struct and must call close when done.
type upload struct {
	name        string
	f           multipart.File
	size        int64
	contentType string
}

// formUpload opens the named file part. A missing part (or a request that
// is not multipart at all) is not an error; both return values are nil.
func formUpload(c *gin.Context, field string) (*upload, error) {
	fh, err := c.FormFile(field)
	if err != nil || fh == nil {
		return nil, nil
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	return &upload{
		name:        fh.Filename,
		f:           f,
		size:        fh.Size,
		contentType: fh.Header.Get("Content-Type"),
	}, nil
}

func (u *upload) close() {
	_ = u.f.Close()
}
