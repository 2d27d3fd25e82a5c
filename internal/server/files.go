package server

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	sessiondomain "github.com/strongslime/atelier/internal/session/domain"
)

// maxUploadBytes caps a single reference file.
const maxUploadBytes = 20 << 20

// UploadFiles attaches reference files. The optional last_modified
// form values align by index with the uploaded files and carry the
// client-side modification timestamps used for deduplication.
func (s *Server) UploadFiles(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		AbortWithError(c, invalidRequestError())
		return
	}
	modified := form.Value["last_modified"]

	uploads := make([]sessiondomain.FileUpload, 0, len(files))
	for i, header := range files {
		if header.Size > maxUploadBytes {
			AbortWithError(c, &ValidationErrors{Errors: []ValidationError{{
				Field:   "files",
				Code:    "file_too_large",
				Message: header.Filename + " exceeds the upload limit",
			}}})
			return
		}

		f, err := header.Open()
		if err != nil {
			AbortWithError(c, err)
			return
		}
		content, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			AbortWithError(c, err)
			return
		}

		var lastModified int64
		if i < len(modified) {
			lastModified, _ = strconv.ParseInt(strings.TrimSpace(modified[i]), 10, 64)
		}

		uploads = append(uploads, sessiondomain.FileUpload{
			Name:         header.Filename,
			Size:         header.Size,
			LastModified: lastModified,
			ContentType:  header.Header.Get("Content-Type"),
			Content:      content,
		})
	}

	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.sessions.AttachFiles(c.Request.Context(), id, uploads)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) RemoveFile(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	handle := strings.TrimSpace(c.Param("handle"))

	resp, err := s.sessions.RemoveFile(c.Request.Context(), id, handle)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
