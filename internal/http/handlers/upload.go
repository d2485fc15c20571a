package handlers

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
)

// saveImage writes an uploaded image under uploadDir/subdir with a
// timestamp-prefixed name to avoid collisions, returning the public
// URL path it will be served from.
func saveImage(c *gin.Context, file *multipart.FileHeader, uploadDir, subdir string) (string, error) {
	name := fmt.Sprintf("%d_%s", time.Now().UnixNano(), filepath.Base(file.Filename))
	dst := filepath.Join(uploadDir, subdir, name)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		return "", err
	}
	return "/uploads/" + subdir + "/" + name, nil
}
