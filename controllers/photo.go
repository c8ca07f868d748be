// controllers/photo.go
package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"fieldserve-backend/config"
	"fieldserve-backend/models"
	"fieldserve-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var uploadDir = filepath.Join("uploads", "reports")

// PhotoUploadResult reports the outcome for one file in a batch
type PhotoUploadResult struct {
	Filename string `json:"filename"`
	Error    string `json:"error"`
}

// UpdatePhotoInput defines the expected JSON structure for updating a photo
type UpdatePhotoInput struct {
	Caption    *string `json:"caption"`
	OrderIndex *int    `json:"orderIndex"`
}

func publicBaseURL() string {
	if base := os.Getenv("PUBLIC_BASE_URL"); base != "" {
		return base
	}
	return "http://localhost:8080"
}

// UploadReportPhotos stores a multipart batch of photos for a report.
// Each file succeeds or fails on its own; one bad file does not abort
// the batch, and only successes get a row.
func UploadReportPhotos(c *gin.Context) {
	reportUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid report ID format")
		return
	}

	var report models.ServiceReport
	if err := config.DB.First(&report, "id = ?", reportUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Report not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid multipart form: "+err.Error())
		return
	}
	files := form.File["photos"]
	if len(files) == 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "No photos provided")
		return
	}

	// Continue numbering after the report's current highest index
	var maxIndex int
	config.DB.Model(&models.ReportPhoto{}).
		Where("report_id = ?", reportUUID).
		Select("COALESCE(MAX(order_index), -1)").Scan(&maxIndex)
	nextIndex := maxIndex + 1

	var uploaded []models.ReportPhoto
	var failed []PhotoUploadResult

	for _, file := range files {
		key := fmt.Sprintf("report_%s_%d%s", reportUUID, time.Now().UnixNano(), filepath.Ext(file.Filename))
		savePath := filepath.Join(uploadDir, key)

		if err := c.SaveUploadedFile(file, savePath); err != nil {
			failed = append(failed, PhotoUploadResult{Filename: file.Filename, Error: "cannot save file"})
			continue
		}

		photo := models.ReportPhoto{
			ReportID:   reportUUID,
			PhotoURL:   fmt.Sprintf("%s/uploads/reports/%s", publicBaseURL(), key),
			StorageKey: key,
			OrderIndex: nextIndex,
		}
		if err := config.DB.Create(&photo).Error; err != nil {
			os.Remove(savePath)
			failed = append(failed, PhotoUploadResult{Filename: file.Filename, Error: "cannot record photo"})
			continue
		}

		nextIndex++
		uploaded = append(uploaded, photo)
	}

	c.JSON(http.StatusCreated, gin.H{
		"uploaded": uploaded,
		"failed":   failed,
	})
}

// GetReportPhotos lists a report's photos in display order
func GetReportPhotos(c *gin.Context) {
	reportUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid report ID format")
		return
	}

	var photos []models.ReportPhoto
	if err := config.DB.Where("report_id = ?", reportUUID).
		Order("order_index ASC").Find(&photos).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve photos")
		return
	}

	c.JSON(http.StatusOK, photos)
}

// UpdatePhoto updates a photo's caption or display position
func UpdatePhoto(c *gin.Context) {
	photoUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid photo ID format")
		return
	}

	var input UpdatePhotoInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var photo models.ReportPhoto
	if err := config.DB.First(&photo, "id = ?", photoUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Photo not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Caption != nil {
		photo.Caption = *input.Caption
	}
	if input.OrderIndex != nil {
		photo.OrderIndex = *input.OrderIndex
	}

	if err := config.DB.Save(&photo).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update photo")
		return
	}

	c.JSON(http.StatusOK, photo)
}

// DeletePhoto removes a photo row and its stored file
func DeletePhoto(c *gin.Context) {
	photoUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid photo ID format")
		return
	}

	var photo models.ReportPhoto
	if err := config.DB.First(&photo, "id = ?", photoUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Photo not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if err := config.DB.Delete(&photo).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete photo")
		return
	}

	if photo.StorageKey != "" {
		os.Remove(filepath.Join(uploadDir, photo.StorageKey))
	}

	c.JSON(http.StatusOK, gin.H{"message": "Photo deleted successfully"})
}
