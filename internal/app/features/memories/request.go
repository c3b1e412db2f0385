// internal/app/features/memories/request.go
package memories

import (
	"strconv"
	"strings"

	memorystore "github.com/dalemusser/alumnihub/internal/app/store/memories"
	"github.com/dalemusser/alumnihub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/alumnihub/internal/app/system/inputval"
	"github.com/dalemusser/alumnihub/internal/domain/models"
)

var tooManyImages = "A memory can have at most " + strconv.Itoa(models.MaxMemoryImages) + " images."

type memoryRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Date        *string  `json:"date"`
	Batch       *string  `json:"batch"`
	ImageURL    *string  `json:"imageUrl"`
	Images      []string `json:"images"`
	Color       *string  `json:"color"`
}

func (req *memoryRequest) normalize() {
	for _, p := range []*string{req.Title, req.Description} {
		if p != nil {
			*p = htmlsanitize.StripTags(*p)
		}
	}
	for _, p := range []*string{req.Date, req.Batch, req.ImageURL, req.Color} {
		if p != nil {
			*p = strings.TrimSpace(*p)
		}
	}
	if req.Images != nil {
		imgs := make([]string, 0, len(req.Images))
		for _, s := range req.Images {
			if s = strings.TrimSpace(s); s != "" {
				imgs = append(imgs, s)
			}
		}
		req.Images = imgs
	}
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func (req *memoryRequest) check(creating bool) *inputval.Error {
	c := inputval.New()
	if creating {
		c.Required("title", str(req.Title)).
			Required("description", str(req.Description))
	} else {
		if req.Title != nil {
			c.Required("title", *req.Title)
		}
		if req.Description != nil {
			c.Required("description", *req.Description)
		}
	}
	return c.Check(len(req.Images) <= models.MaxMemoryImages, tooManyImages).Err()
}

// model builds a new memory. Without an explicit cover image the first
// gallery image is used.
func (req *memoryRequest) model() models.Memory {
	m := models.Memory{
		Title:       str(req.Title),
		Description: str(req.Description),
		Date:        str(req.Date),
		Batch:       str(req.Batch),
		ImageURL:    str(req.ImageURL),
		Images:      req.Images,
		Color:       str(req.Color),
	}
	if m.ImageURL == "" && len(m.Images) > 0 {
		m.ImageURL = m.Images[0]
	}
	return m
}

func (req *memoryRequest) update() memorystore.Update {
	return memorystore.Update{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Batch:       req.Batch,
		ImageURL:    req.ImageURL,
		Images:      req.Images,
		Color:       req.Color,
	}
}
