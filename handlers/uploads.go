package handlers

import (
	"fmt"
	"mime/multipart"
	"path/filepath"

	"study-guild-system/utils"
)

// storeImage pushes an uploaded file to R2 when configured, otherwise
// to the local uploads directory, and returns the URL/path to persist.
func storeImage(fileHeader *multipart.FileHeader, key string) (string, error) {
	key = key + filepath.Ext(fileHeader.Filename)
	if utils.R2Enabled() {
		return utils.UploadFileToR2(fileHeader, key)
	}

	destPath := utils.GetUploadPath(key)
	if err := utils.SaveFile(fileHeader, destPath); err != nil {
		return "", fmt.Errorf("failed to save upload: %w", err)
	}
	return "/" + filepath.ToSlash(destPath), nil
}
