package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/myhome/myhome-backend/internal/errors"
	"github.com/myhome/myhome-backend/internal/middleware"
	"github.com/myhome/myhome-backend/internal/storage"
)

// UploadController serves property photo uploads. Local disk is the
// default path; presigned S3 uploads are offered when a bucket is
// configured.
type UploadController struct {
	local *storage.LocalStorage
	s3    *storage.S3Storage
}

func NewUploadController(local *storage.LocalStorage, s3 *storage.S3Storage) *UploadController {
	return &UploadController{
		local: local,
		s3:    s3,
	}
}

type GeneratePresignedURLRequest struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
	Folder      string `json:"folder"`
}

// UploadImage receives a multipart image and stores it on local disk
// POST /api/v1/upload/image
func (ctrl *UploadController) UploadImage(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized upload attempt", nil)
		apperrors.Unauthorized(c, "로그인이 필요합니다")
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		log.Warn("Missing image file in upload", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationRequired, "업로드할 이미지를 선택해주세요")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Error("Failed to open uploaded file", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "파일 처리 중 오류가 발생했습니다")
		return
	}
	defer file.Close()

	fileURL, err := ctrl.local.Save(file, fileHeader.Filename)
	if err != nil {
		if errors.Is(err, storage.ErrFileTooLarge) {
			log.Warn("Uploaded file too large", map[string]interface{}{
				"user_id":  userID,
				"filename": fileHeader.Filename,
				"size":     fileHeader.Size,
			})
			apperrors.BadRequest(c, apperrors.UploadFileTooLarge, "파일 크기가 너무 큽니다 (최대 10MB)")
			return
		}
		if errors.Is(err, storage.ErrUnsupportedFormat) {
			log.Warn("Unsupported upload format", map[string]interface{}{
				"user_id":  userID,
				"filename": fileHeader.Filename,
			})
			apperrors.BadRequest(c, apperrors.UploadInvalidFileType, "JPG, PNG, GIF 형식만 업로드할 수 있습니다")
			return
		}
		log.Error("Failed to store uploaded image", err, map[string]interface{}{
			"user_id":  userID,
			"filename": fileHeader.Filename,
		})
		apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.UploadFailed, "업로드 중 오류가 발생했습니다")
		return
	}

	log.Info("Image uploaded successfully", map[string]interface{}{
		"user_id":  userID,
		"file_url": fileURL,
	})

	c.JSON(http.StatusCreated, gin.H{
		"file_url": fileURL,
	})
}

// GeneratePresignedURL issues a presigned S3 upload URL for clients
// POST /api/v1/upload/presigned-url
func (ctrl *UploadController) GeneratePresignedURL(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	if ctrl.s3 == nil {
		apperrors.RespondWithError(c, http.StatusServiceUnavailable, apperrors.InternalConfigError, "S3 업로드가 설정되지 않았습니다")
		return
	}

	var req GeneratePresignedURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid presigned URL request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "입력 정보가 올바르지 않습니다")
		return
	}

	allowedTypes := []string{
		"image/jpeg",
		"image/jpg",
		"image/png",
		"image/gif",
		"image/webp",
	}
	if err := ctrl.s3.ValidateContentType(req.ContentType, allowedTypes); err != nil {
		log.Warn("Invalid content type", map[string]interface{}{
			"content_type": req.ContentType,
		})
		apperrors.BadRequest(c, apperrors.UploadInvalidFileType, "이미지 파일만 업로드할 수 있습니다 (JPEG, PNG, GIF, WEBP)")
		return
	}

	folder := req.Folder
	if folder == "" {
		folder = "properties"
	}

	response, err := ctrl.s3.GeneratePresignedURL(req.Filename, req.ContentType, folder)
	if err != nil {
		log.Error("Failed to generate presigned URL", err, map[string]interface{}{
			"filename":     req.Filename,
			"content_type": req.ContentType,
			"folder":       folder,
		})
		apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.UploadFailed, "업로드 URL 생성에 실패했습니다")
		return
	}

	log.Info("Presigned URL generated successfully", map[string]interface{}{
		"filename": req.Filename,
		"folder":   folder,
		"key":      response.Key,
	})

	c.JSON(http.StatusOK, gin.H{
		"upload_url": response.UploadURL,
		"file_url":   response.FileURL,
		"key":        response.Key,
	})
}

// DeleteFile removes an uploaded file from local disk. Deleting a
// file that no longer exists is not an error.
// DELETE /api/v1/upload/:filename
func (ctrl *UploadController) DeleteFile(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized file delete attempt", nil)
		apperrors.Unauthorized(c, "로그인이 필요합니다")
		return
	}

	filename := c.Param("filename")
	if filename == "" {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "삭제할 파일명을 입력해주세요")
		return
	}

	if err := ctrl.local.Delete(filename); err != nil {
		log.Error("Failed to delete uploaded file", err, map[string]interface{}{
			"user_id":  userID,
			"filename": filename,
		})
		apperrors.InternalError(c, "파일 삭제에 실패했습니다")
		return
	}

	log.Info("Uploaded file deleted", map[string]interface{}{
		"user_id":  userID,
		"filename": filename,
	})
	c.Status(http.StatusNoContent)
}
