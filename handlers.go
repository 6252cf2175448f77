package clinicfolio

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/clinicfolio/clinicfolio/markdown"
)

// Public read handlers. Every endpoint returns the standard envelope; list
// endpoints are ordered by display_order (created_at for appointments).

func (a *App) handleProfile(c echo.Context) error {
	p, err := a.Store.GetProfile()
	if err != nil {
		return FailInternal(c, err)
	}
	return OK(c, p)
}

func (a *App) handleServices(c echo.Context) error {
	items, err := a.Store.ListServices()
	if err != nil {
		return FailInternal(c, err)
	}
	return OK(c, items)
}

func (a *App) handleEducation(c echo.Context) error {
	items, err := a.Store.ListEducation()
	if err != nil {
		return FailInternal(c, err)
	}
	return OK(c, items)
}

func (a *App) handleExperience(c echo.Context) error {
	items, err := a.Store.ListExperience()
	if err != nil {
		return FailInternal(c, err)
	}
	return OK(c, items)
}

func (a *App) handleSkills(c echo.Context) error {
	items, err := a.Store.ListSkills()
	if err != nil {
		return FailInternal(c, err)
	}
	return OK(c, items)
}

func (a *App) handleAwards(c echo.Context) error {
	items, err := a.Store.ListAwards()
	if err != nil {
		return FailInternal(c, err)
	}
	return OK(c, items)
}

func (a *App) handlePortfolio(c echo.Context) error {
	items, err := a.Store.ListPortfolio()
	if err != nil {
		return FailInternal(c, err)
	}
	return OK(c, items)
}

func (a *App) handleContact(c echo.Context) error {
	info, err := a.Store.GetContactInfo()
	if err != nil {
		return FailInternal(c, err)
	}
	return OK(c, info)
}

func (a *App) handleSocialLinks(c echo.Context) error {
	items, err := a.Store.ListSocialLinks()
	if err != nil {
		return FailInternal(c, err)
	}
	return OK(c, items)
}

// handleBlogList serves published posts, optionally filtered by ?tag=.
func (a *App) handleBlogList(c echo.Context) error {
	posts, err := a.Cache.ListPosts(c.QueryParam("tag"))
	if err != nil {
		return FailInternal(c, err)
	}
	if posts == nil {
		posts = []BlogPost{}
	}
	return OK(c, posts)
}

// handleBlogTags serves the deduplicated tags across published posts, for
// building the tag filter on the blog index.
func (a *App) handleBlogTags(c echo.Context) error {
	tags, err := a.Cache.ListTags()
	if err != nil {
		return FailInternal(c, err)
	}
	if tags == nil {
		tags = []string{}
	}
	return OK(c, tags)
}

// publicPost is a published post plus its rendered HTML.
type publicPost struct {
	BlogPost
	ContentHTML string `json:"content_html"`
}

// handleBlogPost serves a single published post by slug with the content
// rendered to HTML.
func (a *App) handleBlogPost(c echo.Context) error {
	slug := c.Param("slug")
	post, err := a.Cache.GetPost(slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Fail(c, http.StatusNotFound, "Post not found")
		}
		return FailInternal(c, err)
	}
	return OK(c, publicPost{
		BlogPost:    post,
		ContentHTML: markdown.RenderContent(post.Content, post.InlineImages),
	})
}

// handleCreateAppointment accepts a booking request from the public site.
// Only full_name and email are required; status always starts as "pending".
func (a *App) handleCreateAppointment(c echo.Context) error {
	var appt Appointment
	if err := c.Bind(&appt); err != nil {
		return Fail(c, http.StatusBadRequest, "Invalid request body")
	}
	appt.ID = 0
	appt.Status = ""
	appt.FullName = strings.TrimSpace(appt.FullName)
	appt.Email = strings.TrimSpace(appt.Email)
	if appt.FullName == "" || appt.Email == "" {
		return Fail(c, http.StatusBadRequest, "Full name and email are required")
	}
	id, err := a.Store.CreateAppointment(appt)
	if err != nil {
		return FailInternal(c, err)
	}
	return OKMessage(c, map[string]int64{"id": id}, "Appointment requested")
}
