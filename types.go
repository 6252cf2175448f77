package clinicfolio

import (
	"encoding/json"

	"github.com/clinicfolio/clinicfolio/markdown"
)

// AdminUser is the single dashboard account. Created by cmd/seed; the
// password hash never leaves the server.
type AdminUser struct {
	ID           int64  `json:"id" db:"id"`
	Username     string `json:"username" db:"username"`
	PasswordHash string `json:"-" db:"password_hash"`
}

// Session is a server-side login session. A session is valid only while
// now < ExpiresAt; expired rows are swept hourly.
type Session struct {
	Token     string `json:"-" db:"token"`
	UserID    int64  `json:"user_id" db:"user_id"`
	ExpiresAt int64  `json:"expires_at" db:"expires_at"` // unix seconds
}

// Profile is the single-row practice profile shown on the public hero section.
type Profile struct {
	ID          int64  `json:"id" db:"id"`
	FullName    string `json:"full_name" db:"full_name"`
	Title       string `json:"title" db:"title"`
	Tagline     string `json:"tagline" db:"tagline"`
	Bio         string `json:"bio" db:"bio"`
	PhotoBase64 string `json:"photo_base64" db:"photo_base64"`
	Email       string `json:"email" db:"email"`
	Phone       string `json:"phone" db:"phone"`
	Location    string `json:"location" db:"location"`
}

// Service is one offered treatment or consultation type.
type Service struct {
	ID           int64  `json:"id" db:"id"`
	Title        string `json:"title" db:"title"`
	Description  string `json:"description" db:"description"`
	Icon         string `json:"icon" db:"icon"`
	DisplayOrder int    `json:"display_order" db:"display_order"`
}

// Education is one degree or training entry.
type Education struct {
	ID           int64  `json:"id" db:"id"`
	Degree       string `json:"degree" db:"degree"`
	Institution  string `json:"institution" db:"institution"`
	Years        string `json:"years" db:"years"`
	Description  string `json:"description" db:"description"`
	DisplayOrder int    `json:"display_order" db:"display_order"`
}

// Experience is one position held.
type Experience struct {
	ID           int64  `json:"id" db:"id"`
	Role         string `json:"role" db:"role"`
	Organization string `json:"organization" db:"organization"`
	Years        string `json:"years" db:"years"`
	Description  string `json:"description" db:"description"`
	DisplayOrder int    `json:"display_order" db:"display_order"`
}

// Skill is one competency with a 0-100 proficiency level.
type Skill struct {
	ID           int64  `json:"id" db:"id"`
	Name         string `json:"name" db:"name"`
	Level        int    `json:"level" db:"level"`
	DisplayOrder int    `json:"display_order" db:"display_order"`
}

// Award is one recognition entry.
type Award struct {
	ID           int64  `json:"id" db:"id"`
	Title        string `json:"title" db:"title"`
	Issuer       string `json:"issuer" db:"issuer"`
	Year         string `json:"year" db:"year"`
	Description  string `json:"description" db:"description"`
	DisplayOrder int    `json:"display_order" db:"display_order"`
}

// PortfolioItem is one case study or gallery entry.
type PortfolioItem struct {
	ID           int64  `json:"id" db:"id"`
	Title        string `json:"title" db:"title"`
	Description  string `json:"description" db:"description"`
	ImageBase64  string `json:"image_base64" db:"image_base64"`
	Link         string `json:"link" db:"link"`
	Category     string `json:"category" db:"category"`
	DisplayOrder int    `json:"display_order" db:"display_order"`
}

// ContactInfo is the single-row contact block for the public site.
type ContactInfo struct {
	ID          int64  `json:"id" db:"id"`
	Email       string `json:"email" db:"email"`
	Phone       string `json:"phone" db:"phone"`
	Address     string `json:"address" db:"address"`
	MapEmbedURL string `json:"map_embed_url" db:"map_embed_url"`
	Hours       string `json:"hours" db:"hours"`
}

// SocialLink is one external profile link.
type SocialLink struct {
	ID           int64  `json:"id" db:"id"`
	Platform     string `json:"platform" db:"platform"`
	URL          string `json:"url" db:"url"`
	DisplayOrder int    `json:"display_order" db:"display_order"`
}

// Appointment is a booking request submitted from the public site.
// FullName and Email are required; everything else is optional.
type Appointment struct {
	ID            int64  `json:"id" db:"id"`
	FullName      string `json:"full_name" db:"full_name"`
	Email         string `json:"email" db:"email"`
	Phone         string `json:"phone" db:"phone"`
	Message       string `json:"message" db:"message"`
	PreferredDate string `json:"preferred_date" db:"preferred_date"`
	Status        string `json:"status" db:"status"`
	CreatedAt     string `json:"created_at" db:"created_at"`
}

// InlineImage is an image embedded in blog content via a {{image:<id>}}
// placeholder, resolved by the markdown package at render time.
type InlineImage = markdown.InlineImage

// BlogPost is the full content type behind the public blog and the admin
// editor. Content is markdown-like text; ReadingTime is derived from it on
// every write.
type BlogPost struct {
	ID              int64           `json:"id"`
	Title           string          `json:"title"`
	Slug            string          `json:"slug"`
	Excerpt         string          `json:"excerpt"`
	Content         string          `json:"content"`
	ImageBase64     string          `json:"image_base64"`
	Published       bool            `json:"published"`
	Theme           json.RawMessage `json:"theme"`
	MetaTitle       string          `json:"meta_title"`
	MetaDescription string          `json:"meta_description"`
	MetaKeywords    string          `json:"meta_keywords"`
	Tags            []string        `json:"tags"`
	Category        string          `json:"category"`
	Author          string          `json:"author"`
	ReadingTime     int             `json:"reading_time"`
	InlineImages    []InlineImage   `json:"inline_images"`
	CreatedAt       string          `json:"created_at"`
	UpdatedAt       string          `json:"updated_at"`
}

// BlogPostPatch is a partial update to a blog post. Every field is a pointer:
// nil means "keep the stored value". The merge happens server-side so a PUT
// that omits fields never nulls them out.
type BlogPostPatch struct {
	Title           *string          `json:"title"`
	Slug            *string          `json:"slug"`
	Excerpt         *string          `json:"excerpt"`
	Content         *string          `json:"content"`
	ImageBase64     *string          `json:"image_base64"`
	Published       *bool            `json:"published"`
	Theme           *json.RawMessage `json:"theme"`
	MetaTitle       *string          `json:"meta_title"`
	MetaDescription *string          `json:"meta_description"`
	MetaKeywords    *string          `json:"meta_keywords"`
	Tags            *[]string        `json:"tags"`
	Category        *string          `json:"category"`
	Author          *string          `json:"author"`
	InlineImages    *[]InlineImage   `json:"inline_images"`
}

// Apply folds the patch over current, returning the merged post. Derived
// fields (ReadingTime, UpdatedAt) are recomputed by the store on save.
func (p BlogPostPatch) Apply(current BlogPost) BlogPost {
	merged := current
	if p.Title != nil {
		merged.Title = *p.Title
	}
	if p.Slug != nil {
		merged.Slug = *p.Slug
	}
	if p.Excerpt != nil {
		merged.Excerpt = *p.Excerpt
	}
	if p.Content != nil {
		merged.Content = *p.Content
	}
	if p.ImageBase64 != nil {
		merged.ImageBase64 = *p.ImageBase64
	}
	if p.Published != nil {
		merged.Published = *p.Published
	}
	if p.Theme != nil {
		merged.Theme = *p.Theme
	}
	if p.MetaTitle != nil {
		merged.MetaTitle = *p.MetaTitle
	}
	if p.MetaDescription != nil {
		merged.MetaDescription = *p.MetaDescription
	}
	if p.MetaKeywords != nil {
		merged.MetaKeywords = *p.MetaKeywords
	}
	if p.Tags != nil {
		merged.Tags = *p.Tags
	}
	if p.Category != nil {
		merged.Category = *p.Category
	}
	if p.Author != nil {
		merged.Author = *p.Author
	}
	if p.InlineImages != nil {
		merged.InlineImages = *p.InlineImages
	}
	return merged
}

// Upload records metadata for an image stored under the uploads directory.
type Upload struct {
	Filename     string `json:"filename" db:"filename"`
	OriginalName string `json:"original_name" db:"original_name"`
	Path         string `json:"path" db:"path"`
	Width        int    `json:"width" db:"width"`
	Height       int    `json:"height" db:"height"`
	Size         int    `json:"size" db:"size"`
	UploadedAt   string `json:"uploaded_at" db:"uploaded_at"`
}
