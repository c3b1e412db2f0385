// internal/app/features/posts/request.go
package posts

import (
	"strings"

	poststore "github.com/dalemusser/alumnihub/internal/app/store/posts"
	"github.com/dalemusser/alumnihub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/alumnihub/internal/app/system/inputval"
	"github.com/dalemusser/alumnihub/internal/domain/models"
)

// postRequest is shared by create and update. Content is rich text and
// keeps the formatting markup the sanitizer allows.
type postRequest struct {
	Title       *string `json:"title"`
	Content     *string `json:"content"`
	Excerpt     *string `json:"excerpt"`
	CoverImage  *string `json:"coverImage"`
	Category    *string `json:"category"`
	IsPublished *bool   `json:"isPublished"`
}

func (req *postRequest) normalize() {
	if req.Title != nil {
		*req.Title = htmlsanitize.StripTags(*req.Title)
	}
	if req.Excerpt != nil {
		*req.Excerpt = htmlsanitize.StripTags(*req.Excerpt)
	}
	if req.Content != nil {
		*req.Content = htmlsanitize.Sanitize(strings.TrimSpace(*req.Content))
	}
	if req.CoverImage != nil {
		*req.CoverImage = strings.TrimSpace(*req.CoverImage)
	}
	if req.Category != nil {
		*req.Category = strings.ToLower(strings.TrimSpace(*req.Category))
	}
}

func (req *postRequest) check(creating bool) *inputval.Error {
	c := inputval.New()
	if creating || req.Title != nil {
		c.Required("title", str(req.Title))
	}
	if creating || req.Content != nil {
		c.Required("content", str(req.Content))
	}
	return c.Err()
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func (req *postRequest) model() models.Post {
	p := models.Post{
		Title:      str(req.Title),
		Content:    str(req.Content),
		Excerpt:    str(req.Excerpt),
		CoverImage: str(req.CoverImage),
		Category:   str(req.Category),
	}
	if req.IsPublished != nil {
		p.IsPublished = *req.IsPublished
	}
	return p
}

func (req *postRequest) update() poststore.Update {
	return poststore.Update{
		Title:       req.Title,
		Content:     req.Content,
		Excerpt:     req.Excerpt,
		CoverImage:  req.CoverImage,
		Category:    req.Category,
		IsPublished: req.IsPublished,
	}
}
