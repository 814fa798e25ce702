package handlers

import (
	"encoding/json"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/Shoury7/EzyStayBackend/internal/http/middleware"
	"github.com/Shoury7/EzyStayBackend/internal/http/validation"
	"github.com/Shoury7/EzyStayBackend/internal/modules/listings"
	"github.com/Shoury7/EzyStayBackend/internal/shared/apperr"
	"github.com/Shoury7/EzyStayBackend/internal/storage"
)

const maxListingImages = 5

type ListingsHandler struct {
	Repo    *listings.Repo
	Storage storage.Storage
}

func NewListingsHandler(repo *listings.Repo, st storage.Storage) *ListingsHandler {
	return &ListingsHandler{Repo: repo, Storage: st}
}

func listingJSON(l *listings.Listing) gin.H {
	return gin.H{
		"id":           l.ID,
		"title":        l.Title,
		"description":  l.Description,
		"price_minor":  l.PriceMinor,
		"location":     l.Location,
		"country":      l.Country,
		"is_available": l.IsAvailable,
		"geometry":     json.RawMessage(l.Geometry),
		"images":       json.RawMessage(l.Images),
		"created_by":   l.CreatedBy,
		"created_at":   l.CreatedAt,
	}
}

func (h *ListingsHandler) List(c *gin.Context) {
	items, err := h.Repo.List(c.Request.Context())
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	out := make([]gin.H, len(items))
	for i := range items {
		out[i] = listingJSON(&items[i])
	}
	c.JSON(http.StatusOK, out)
}

func (h *ListingsHandler) Get(c *gin.Context) {
	l, err := h.Repo.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	if l == nil {
		middleware.Fail(c, apperr.NotFoundErr("Listing not found."))
		return
	}
	c.JSON(http.StatusOK, listingJSON(l))
}

type createListingInput struct {
	Title       string   `form:"title" binding:"required,max=200"`
	Description string   `form:"description" binding:"required"`
	PriceMinor  int64    `form:"price_minor" binding:"required,gt=0"`
	Location    string   `form:"location" binding:"required,max=200"`
	Country     string   `form:"country" binding:"required,max=100"`
	Longitude   *float64 `form:"longitude"`
	Latitude    *float64 `form:"latitude"`
}

func (h *ListingsHandler) Create(c *gin.Context) {
	var in createListingInput
	if err := c.ShouldBind(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Listing data is invalid.", validation.FromBindError(err, &in)))
		return
	}

	u, _ := middleware.CurrentUser(c)

	images, err := h.uploadImages(c)
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	geometry := listings.GeoPoint{Type: "Point", Coordinates: []float64{0, 0}}
	if in.Longitude != nil && in.Latitude != nil {
		geometry.Coordinates = []float64{*in.Longitude, *in.Latitude}
	}
	geomJSON, _ := json.Marshal(geometry)
	imagesJSON, _ := json.Marshal(images)

	now := time.Now()
	l := &listings.Listing{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		PriceMinor:  in.PriceMinor,
		Location:    in.Location,
		Country:     in.Country,
		IsAvailable: true,
		Geometry:    datatypes.JSON(geomJSON),
		Images:      datatypes.JSON(imagesJSON),
		CreatedBy:   u.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := h.Repo.Create(c.Request.Context(), l); err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	c.JSON(http.StatusCreated, listingJSON(l))
}

type updateListingInput struct {
	Title       *string `form:"title" binding:"omitempty,max=200"`
	Description *string `form:"description"`
	PriceMinor  *int64  `form:"price_minor" binding:"omitempty,gt=0"`
	Location    *string `form:"location" binding:"omitempty,max=200"`
	Country     *string `form:"country" binding:"omitempty,max=100"`
	IsAvailable *bool   `form:"is_available"`
}

func (h *ListingsHandler) Update(c *gin.Context) {
	var in updateListingInput
	if err := c.ShouldBind(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Listing data is invalid.", validation.FromBindError(err, &in)))
		return
	}

	fields := map[string]any{}
	if in.Title != nil {
		fields["title"] = *in.Title
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.PriceMinor != nil {
		fields["price_minor"] = *in.PriceMinor
	}
	if in.Location != nil {
		fields["location"] = *in.Location
	}
	if in.Country != nil {
		fields["country"] = *in.Country
	}
	if in.IsAvailable != nil {
		fields["is_available"] = *in.IsAvailable
	}

	if files := formFiles(c); len(files) > 0 {
		images, err := h.uploadImages(c)
		if err != nil {
			middleware.Fail(c, err)
			return
		}
		imagesJSON, _ := json.Marshal(images)
		fields["images"] = datatypes.JSON(imagesJSON)
	}

	if len(fields) == 0 {
		middleware.Fail(c, apperr.InvalidErr("Nothing to update.", nil))
		return
	}

	l, err := h.Repo.Update(c.Request.Context(), c.Param("id"), fields)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	if l == nil {
		middleware.Fail(c, apperr.NotFoundErr("Listing not found."))
		return
	}
	c.JSON(http.StatusOK, listingJSON(l))
}

func (h *ListingsHandler) Delete(c *gin.Context) {
	ok, err := h.Repo.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	if !ok {
		middleware.Fail(c, apperr.NotFoundErr("Listing not found."))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Listing deleted successfully"})
}

func formFiles(c *gin.Context) []*multipart.FileHeader {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil
	}
	return form.File["images"]
}

func (h *ListingsHandler) uploadImages(c *gin.Context) ([]listings.Image, error) {
	files := formFiles(c)
	if len(files) > maxListingImages {
		return nil, apperr.InvalidErr("At most "+strconv.Itoa(maxListingImages)+" images are allowed.", nil)
	}

	images := make([]listings.Image, 0, len(files))
	for _, fh := range files {
		if ct := fh.Header.Get("Content-Type"); !storage.AllowedImageType(ct) {
			return nil, apperr.InvalidErr("Unsupported image type.", map[string]string{"images": fh.Filename})
		}
		f, err := fh.Open()
		if err != nil {
			return nil, apperr.Wrap(err)
		}
		res, err := h.Storage.Put(c.Request.Context(), f, storage.PutInput{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
		})
		f.Close()
		if err != nil {
			return nil, apperr.Wrap(err)
		}
		images = append(images, listings.Image{URL: res.URL, Key: res.Key})
	}
	return images, nil
}
