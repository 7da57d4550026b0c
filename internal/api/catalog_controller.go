package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/opencampus/doctrack/internal/service"
	"github.com/opencampus/doctrack/internal/utils"
)

// CatalogController handles designation and category administration.
type CatalogController struct {
	catalog service.CatalogService
}

// NewCatalogController creates a catalog controller.
func NewCatalogController(catalog service.CatalogService) *CatalogController {
	return &CatalogController{catalog: catalog}
}

// CreateDesignationRequest names a new organizational unit.
type CreateDesignationRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateDesignation handles POST /designations.
func (cc *CatalogController) CreateDesignation(c *gin.Context) {
	var req CreateDesignationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	designation, err := cc.catalog.CreateDesignation(req.Name)
	if err != nil {
		HandleError(c, err)
		return
	}

	Success(c, designation)
}

// ListDesignations handles GET /designations.
func (cc *CatalogController) ListDesignations(c *gin.Context) {
	designations, err := cc.catalog.ListDesignations()
	if err != nil {
		HandleError(c, err)
		return
	}

	Success(c, designations)
}

// DeleteDesignation handles DELETE /designations/:id.
func (cc *CatalogController) DeleteDesignation(c *gin.Context) {
	id := c.Param("id")
	if err := utils.ValidateID(id); err != nil {
		Error(c, http.StatusBadRequest, "invalid designation ID", err.Error())
		return
	}

	if err := cc.catalog.DeleteDesignation(id); err != nil {
		HandleError(c, err)
		return
	}

	Success(c, gin.H{"id": id})
}

// CreateCategoryRequest describes a new document category.
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Kind        string `json:"kind" binding:"required"`
	TemplateURI string `json:"template_uri"`
}

// CreateCategory handles POST /categories.
func (cc *CatalogController) CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	category, err := cc.catalog.CreateCategory(req.Name, req.Kind, req.TemplateURI)
	if err != nil {
		HandleError(c, err)
		return
	}

	Success(c, category)
}

// ListCategories handles GET /categories.
func (cc *CatalogController) ListCategories(c *gin.Context) {
	categories, err := cc.catalog.ListCategories()
	if err != nil {
		HandleError(c, err)
		return
	}

	Success(c, categories)
}

// DeleteCategory handles DELETE /categories/:id.
func (cc *CatalogController) DeleteCategory(c *gin.Context) {
	id := c.Param("id")
	if err := utils.ValidateID(id); err != nil {
		Error(c, http.StatusBadRequest, "invalid category ID", err.Error())
		return
	}

	if err := cc.catalog.DeleteCategory(id); err != nil {
		HandleError(c, err)
		return
	}

	Success(c, gin.H{"id": id})
}
