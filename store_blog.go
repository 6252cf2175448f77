package clinicfolio

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/clinicfolio/clinicfolio/markdown"
)

// blogRow mirrors the blog_posts table. Tags are stored comma-delimited with
// sentinels (",go,web,") so a single tag can be matched with instr(); theme
// and inline_images are JSON text columns.
type blogRow struct {
	ID              int64  `db:"id"`
	Title           string `db:"title"`
	Slug            string `db:"slug"`
	Excerpt         string `db:"excerpt"`
	Content         string `db:"content"`
	ImageBase64     string `db:"image_base64"`
	Published       int    `db:"published"`
	Theme           string `db:"theme"`
	MetaTitle       string `db:"meta_title"`
	MetaDescription string `db:"meta_description"`
	MetaKeywords    string `db:"meta_keywords"`
	Tags            string `db:"tags"`
	Category        string `db:"category"`
	Author          string `db:"author"`
	ReadingTime     int    `db:"reading_time"`
	InlineImages    string `db:"inline_images"`
	CreatedAt       string `db:"created_at"`
	UpdatedAt       string `db:"updated_at"`
}

func (r blogRow) toPost() BlogPost {
	post := BlogPost{
		ID:              r.ID,
		Title:           r.Title,
		Slug:            r.Slug,
		Excerpt:         r.Excerpt,
		Content:         r.Content,
		ImageBase64:     r.ImageBase64,
		Published:       r.Published == 1,
		MetaTitle:       r.MetaTitle,
		MetaDescription: r.MetaDescription,
		MetaKeywords:    r.MetaKeywords,
		Tags:            ParseTags(r.Tags),
		Category:        r.Category,
		Author:          r.Author,
		ReadingTime:     r.ReadingTime,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
	if r.Theme != "" {
		post.Theme = json.RawMessage(r.Theme)
	}
	// A corrupt inline_images column degrades to "no inline images" rather
	// than failing the whole read.
	var images []InlineImage
	if err := json.Unmarshal([]byte(r.InlineImages), &images); err == nil {
		post.InlineImages = images
	}
	return post
}

func fromPost(p BlogPost) (blogRow, error) {
	published := 0
	if p.Published {
		published = 1
	}
	theme := string(p.Theme)
	if theme == "" {
		theme = "{}"
	}
	images := p.InlineImages
	if images == nil {
		images = []InlineImage{}
	}
	imagesJSON, err := json.Marshal(images)
	if err != nil {
		return blogRow{}, err
	}
	return blogRow{
		ID:              p.ID,
		Title:           p.Title,
		Slug:            p.Slug,
		Excerpt:         p.Excerpt,
		Content:         p.Content,
		ImageBase64:     p.ImageBase64,
		Published:       published,
		Theme:           theme,
		MetaTitle:       p.MetaTitle,
		MetaDescription: p.MetaDescription,
		MetaKeywords:    p.MetaKeywords,
		Tags:            tagString(p.Tags),
		Category:        p.Category,
		Author:          p.Author,
		ReadingTime:     markdown.CalculateReadingTime(p.Content),
		InlineImages:    string(imagesJSON),
	}, nil
}

// ListPublishedPosts returns published posts newest first. If tag is
// non-empty, results are filtered to posts carrying that tag.
func (s *Store) ListPublishedPosts(tag string) ([]BlogPost, error) {
	rows := []blogRow{}
	var err error
	if tag == "" {
		err = s.db.Select(&rows, `SELECT * FROM blog_posts WHERE published = 1 ORDER BY created_at DESC, id DESC`)
	} else {
		normalized := strings.ToLower(strings.TrimSpace(tag))
		err = s.db.Select(&rows, `SELECT * FROM blog_posts WHERE published = 1
			AND instr(lower(tags), ',' || ? || ',') > 0 ORDER BY created_at DESC, id DESC`, normalized)
	}
	if err != nil {
		return nil, err
	}
	posts := make([]BlogPost, 0, len(rows))
	for _, r := range rows {
		posts = append(posts, r.toPost())
	}
	return posts, nil
}

// ListAllPosts returns every post including drafts, newest first (admin view).
func (s *Store) ListAllPosts() ([]BlogPost, error) {
	rows := []blogRow{}
	if err := s.db.Select(&rows, `SELECT * FROM blog_posts ORDER BY created_at DESC, id DESC`); err != nil {
		return nil, err
	}
	posts := make([]BlogPost, 0, len(rows))
	for _, r := range rows {
		posts = append(posts, r.toPost())
	}
	return posts, nil
}

// ListBlogTags returns a sorted, deduplicated slice of tags from published posts.
func (s *Store) ListBlogTags() ([]string, error) {
	var tagCols []string
	if err := s.db.Select(&tagCols, `SELECT tags FROM blog_posts WHERE published = 1`); err != nil {
		return nil, err
	}
	return dedupeTags(tagCols), nil
}

// GetPublishedPost returns a published post by slug (public site).
func (s *Store) GetPublishedPost(slug string) (BlogPost, error) {
	var r blogRow
	err := s.db.Get(&r, `SELECT * FROM blog_posts WHERE slug = ? AND published = 1`, slug)
	if err != nil {
		return BlogPost{}, err
	}
	return r.toPost(), nil
}

// GetPost returns a post by id regardless of published status (admin).
func (s *Store) GetPost(id int64) (BlogPost, error) {
	var r blogRow
	err := s.db.Get(&r, `SELECT * FROM blog_posts WHERE id = ?`, id)
	if err != nil {
		return BlogPost{}, err
	}
	return r.toPost(), nil
}

// CreatePost inserts a post, stamping timestamps and the derived reading time.
func (s *Store) CreatePost(p BlogPost) (int64, error) {
	row, err := fromPost(p)
	if err != nil {
		return 0, err
	}
	row.CreatedAt = nowStamp()
	row.UpdatedAt = row.CreatedAt
	res, err := s.db.NamedExec(`INSERT INTO blog_posts
		(title, slug, excerpt, content, image_base64, published, theme,
		 meta_title, meta_description, meta_keywords, tags, category, author,
		 reading_time, inline_images, created_at, updated_at)
		VALUES (:title, :slug, :excerpt, :content, :image_base64, :published, :theme,
		 :meta_title, :meta_description, :meta_keywords, :tags, :category, :author,
		 :reading_time, :inline_images, :created_at, :updated_at)`, row)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// UpdatePost overwrites a post row. Callers merge partial input against the
// stored row first (BlogPostPatch.Apply), so this always receives a complete
// post. created_at is preserved; updated_at and reading_time are recomputed.
func (s *Store) UpdatePost(p BlogPost) error {
	row, err := fromPost(p)
	if err != nil {
		return err
	}
	row.UpdatedAt = nowStamp()
	_, err = s.db.NamedExec(`UPDATE blog_posts SET
		title = :title, slug = :slug, excerpt = :excerpt, content = :content,
		image_base64 = :image_base64, published = :published, theme = :theme,
		meta_title = :meta_title, meta_description = :meta_description,
		meta_keywords = :meta_keywords, tags = :tags, category = :category,
		author = :author, reading_time = :reading_time,
		inline_images = :inline_images, updated_at = :updated_at
		WHERE id = :id`, row)
	return err
}

// DeletePost removes a post by id.
func (s *Store) DeletePost(id int64) error {
	_, err := s.db.Exec(`DELETE FROM blog_posts WHERE id = ?`, id)
	return err
}

// tagString normalizes tags to lowercase and joins them with sentinel commas.
func tagString(tags []string) string {
	normalized := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			normalized = append(normalized, t)
		}
	}
	return "," + strings.Join(normalized, ",") + ","
}

// ParseTags splits a comma-delimited tag string (e.g. ",go,web,") into a slice.
func ParseTags(tagString string) []string {
	tagString = strings.Trim(tagString, ",")
	if tagString == "" {
		return nil
	}
	parts := strings.Split(tagString, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func dedupeTags(tagCols []string) []string {
	set := make(map[string]struct{})
	for _, col := range tagCols {
		for _, t := range ParseTags(col) {
			set[strings.ToLower(t)] = struct{}{}
		}
	}
	result := make([]string, 0, len(set))
	for t := range set {
		result = append(result, t)
	}
	sort.Strings(result)
	return result
}
