package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/siriassis-creator/Sit-logistics-app/internal/models"
	"github.com/siriassis-creator/Sit-logistics-app/internal/store"
)

type CourseHandler struct {
	Store store.Store
}

type CoursePayload struct {
	Name string `json:"name" binding:"required"`
}

// CreateCourse adds a training course to the picklist. Driver documents
// reference courses by name, so renaming or deleting one here does not
// touch historical training records.
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	var payload CoursePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	course := models.TrainingCourse{Name: payload.Name, CreatedAt: time.Now()}
	id, err := h.Store.Create(context.Background(), "training_courses", course)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create course"})
		return
	}
	course.ID = id

	c.JSON(http.StatusCreated, course)
}

// GetAllCourses lists the picklist.
func (h *CourseHandler) GetAllCourses(c *gin.Context) {
	var courses []models.TrainingCourse
	if err := h.Store.List(context.Background(), "training_courses", &courses); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query courses"})
		return
	}
	if courses == nil {
		courses = []models.TrainingCourse{}
	}
	c.JSON(http.StatusOK, courses)
}

// DeleteCourse removes a course from the picklist.
func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	if err := h.Store.Delete(context.Background(), "training_courses", c.Param("id")); err != nil {
		if err == store.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete course"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Course deleted successfully"})
}
