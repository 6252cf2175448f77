package clinicfolio

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/clinicfolio/clinicfolio/markdown"
)

// Admin handlers. All routes here sit behind requireSession. Updates follow
// the merge-before-write contract: the current row is re-read and request
// fields are overlaid on it, so a partial body never nulls out stored values.

func idParam(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

func notFoundOr(c echo.Context, err error, msg string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return Fail(c, http.StatusNotFound, msg)
	}
	return FailInternal(c, err)
}

// --- Profile / contact (single-row) ---

func (a *App) handleUpdateProfile(c echo.Context) error {
	current, err := a.Store.GetProfile()
	if err != nil {
		return FailInternal(c, err)
	}
	if err := c.Bind(&current); err != nil {
		return Fail(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := a.Store.SaveProfile(current); err != nil {
		return FailInternal(c, err)
	}
	return OKMessage(c, current, "Profile updated")
}

func (a *App) handleUpdateContact(c echo.Context) error {
	current, err := a.Store.GetContactInfo()
	if err != nil {
		return FailInternal(c, err)
	}
	if err := c.Bind(&current); err != nil {
		return Fail(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := a.Store.SaveContactInfo(current); err != nil {
		return FailInternal(c, err)
	}
	return OKMessage(c, current, "Contact info updated")
}

// --- Services ---

func (a *App) handleCreateService(c echo.Context) error {
	var v Service
	if err := c.Bind(&v); err != nil {
		return Fail(c, http.StatusBadRequest, "Invalid request body")
	}
	id, err := a.Store.CreateService(v)
	if err != nil {
		return FailInternal(c, err)
	}
	return OKMessage(c, map[string]int64{"id": id}, "Service created")
}

func (a *App) handleUpdateService(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return Fail(c, http.StatusBadRequest, "Invalid id")
	}
	current, err := a.Store.GetService(id)
	if err != nil {
		return notFoundOr(c, err, "Service not found")
	}
	if err := c.Bind(&current); err != nil {
		return Fail(c, http.StatusBadRequest, "Invalid request body")
	}
	current.ID = id
	if err := a.Store.UpdateService(current); err != nil {
		return FailInternal(c, err)
	}
	return OKMessage(c, current, "Service updated")
}

func (a *App) handleDeleteService(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return Fail(c, http.StatusBadRequest, "Invalid id")
	}
	if err := a.Store.DeleteService(id); err != nil {
		return FailInternal(c, err)
	}
	return OKMessage(c, nil, "Service deleted")
}

// --- Education ---

func (a *App) handleCreateEducation(c echo.Context) error {
	var v Education
	if err := c.Bind(&v); err != nil {
		return Fail(c, http.StatusBadRequest, "Invalid request body")
	}
	id, err := a.Store.CreateEducation(v)
	if err != nil {
		return FailInternal(c, err)
	}
	return OKMessage(c, map[string]int64{"id": id}, "Education entry created")
}

func (a *App) handleUpdateEducation(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return Fail(c, http.StatusBadRequest, "Invalid id")
	}
	current, err := a.Store.GetEducation(id)
	if err != nil {
		return notFoundOr(c, err, "Education entry not found")
	}
	if err := c.Bind(&current); err != nil {
		return Fail(c, http.StatusBadRequest, "Invalid request body")
	}
	current.ID = id
	if err := a.Store.UpdateEducation(current); err != nil {
		return FailInternal(c, err)
	}
	return OKMessage(c, current, "Education entry updated")
}

func (a *App) handleDeleteEducation(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return Fail(c, http.StatusBadRequest, "Invalid id")
	}
	if err := a.Store.DeleteEducation(id); err != nil {
		return FailInternal(c, err)
	}
	return OKMessage(c, nil, "Education entry deleted")
}

// --- Experience ---

func (a *App) handleCreateExperience(c echo.Context) error {
	var v Experience
	if err := c.Bind(&v); err != nil {
		return Fail(c, http.StatusBadRequest, "Invalid request body")
	}
	id, err := a.Store.CreateExperience(v)
	if err != nil {
		return FailInternal(c, err)
	}
	return OKMessage(c, map[string]int64{"id": id}, "Experience entry created")
}

func (a *App) handleUpdateExperience(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return Fail(c, http.StatusBadRequest, "Invalid id")
	}
	current, err := a.Store.GetExperience(id)
	if err != nil {
		return notFoundOr(c, err, "Experience entry not found")
	}
	if err := c.Bind(&current); err != nil {
		return Fail(c, http.StatusBadRequest, "Invalid request body")
	}
	current.ID = id
	if err := a.Store.UpdateExperience(current); err != nil {
		return FailInternal(c, err)
	}
	return OKMessage(c, current, "Experience entry updated")
}

func (a *App) handleDeleteExperience(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return Fail(c, http.StatusBadRequest, "Invalid id")
	}
	if err := a.Store.DeleteExperience(id); err != nil {
		return FailInternal(c, err)
	}
	return OKMessage(c, nil, "Experience entry deleted")
}

// --- Skills ---

func (a *App) handleCreateSkill(c echo.Context) error {
	var v Skill
	if err := c.Bind(&v); err != nil {
		return Fail(c, http.StatusBadRequest, "Invalid request body")
	}
	id, err := a.Store.CreateSkill(v)
	if err != nil {
		return FailInternal(c, err)
	}
	return OKMessage(c, map[string]int64{"id": id}, "Skill created")
}

func (a *App) handleUpdateSkill(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return Fail(c, http.StatusBadRequest, "Invalid id")
	}
	current, err := a.Store.GetSkill(id)
	if err != nil {
		return notFoundOr(c, err, "Skill not found")
	}
	if err := c.Bind(&current); err != nil {
		return Fail(c, http.StatusBadRequest, "Invalid request body")
	}
	current.ID = id
	if err := a.Store.UpdateSkill(current); err != nil {
		return FailInternal(c, err)
	}
	return OKMessage(c, current, "Skill updated")
}

func (a *App) handleDeleteSkill(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return Fail(c, http.StatusBadRequest, "Invalid id")
	}
	if err := a.Store.DeleteSkill(id); err != nil {
		return FailInternal(c, err)
	}
	return OKMessage(c, nil, "Skill deleted")
}

// --- Awards ---

func (a *App) handleCreateAward(c echo.Context) error {
	var v Award
	if err := c.Bind(&v); err != nil {
		return Fail(c, http.StatusBadRequest, "Invalid request body")
	}
	id, err := a.Store.CreateAward(v)
	if err != nil {
		return FailInternal(c, err)
	}
	return OKMessage(c, map[string]int64{"id": id}, "Award created")
}

func (a *App) handleUpdateAward(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return Fail(c, http.StatusBadRequest, "Invalid id")
	}
	current, err := a.Store.GetAward(id)
	if err != nil {
		return notFoundOr(c, err, "Award not found")
	}
	if err := c.Bind(&current); err != nil {
		return Fail(c, http.StatusBadRequest, "Invalid request body")
	}
	current.ID = id
	if err := a.Store.UpdateAward(current); err != nil {
		return FailInternal(c, err)
	}
	return OKMessage(c, current, "Award updated")
}

func (a *App) handleDeleteAward(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return Fail(c, http.StatusBadRequest, "Invalid id")
	}
	if err := a.Store.DeleteAward(id); err != nil {
		return FailInternal(c, err)
	}
	return OKMessage(c, nil, "Award deleted")
}

// --- Portfolio ---

func (a *App) handleCreatePortfolioItem(c echo.Context) error {
	var v PortfolioItem
	if err := c.Bind(&v); err != nil {
		return Fail(c, http.StatusBadRequest, "Invalid request body")
	}
	id, err := a.Store.CreatePortfolioItem(v)
	if err != nil {
		return FailInternal(c, err)
	}
	return OKMessage(c, map[string]int64{"id": id}, "Portfolio item created")
}

func (a *App) handleUpdatePortfolioItem(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return Fail(c, http.StatusBadRequest, "Invalid id")
	}
	current, err := a.Store.GetPortfolioItem(id)
	if err != nil {
		return notFoundOr(c, err, "Portfolio item not found")
	}
	if err := c.Bind(&current); err != nil {
		return Fail(c, http.StatusBadRequest, "Invalid request body")
	}
	current.ID = id
	if err := a.Store.UpdatePortfolioItem(current); err != nil {
		return FailInternal(c, err)
	}
	return OKMessage(c, current, "Portfolio item updated")
}

func (a *App) handleDeletePortfolioItem(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return Fail(c, http.StatusBadRequest, "Invalid id")
	}
	if err := a.Store.DeletePortfolioItem(id); err != nil {
		return FailInternal(c, err)
	}
	return OKMessage(c, nil, "Portfolio item deleted")
}

// --- Social links ---

func (a *App) handleCreateSocialLink(c echo.Context) error {
	var v SocialLink
	if err := c.Bind(&v); err != nil {
		return Fail(c, http.StatusBadRequest, "Invalid request body")
	}
	id, err := a.Store.CreateSocialLink(v)
	if err != nil {
		return FailInternal(c, err)
	}
	return OKMessage(c, map[string]int64{"id": id}, "Social link created")
}

func (a *App) handleUpdateSocialLink(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return Fail(c, http.StatusBadRequest, "Invalid id")
	}
	current, err := a.Store.GetSocialLink(id)
	if err != nil {
		return notFoundOr(c, err, "Social link not found")
	}
	if err := c.Bind(&current); err != nil {
		return Fail(c, http.StatusBadRequest, "Invalid request body")
	}
	current.ID = id
	if err := a.Store.UpdateSocialLink(current); err != nil {
		return FailInternal(c, err)
	}
	return OKMessage(c, current, "Social link updated")
}

func (a *App) handleDeleteSocialLink(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return Fail(c, http.StatusBadRequest, "Invalid id")
	}
	if err := a.Store.DeleteSocialLink(id); err != nil {
		return FailInternal(c, err)
	}
	return OKMessage(c, nil, "Social link deleted")
}

// --- Appointments ---

func (a *App) handleListAppointments(c echo.Context) error {
	items, err := a.Store.ListAppointments()
	if err != nil {
		return FailInternal(c, err)
	}
	return OK(c, items)
}

func (a *App) handleUpdateAppointment(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return Fail(c, http.StatusBadRequest, "Invalid id")
	}
	current, err := a.Store.GetAppointment(id)
	if err != nil {
		return notFoundOr(c, err, "Appointment not found")
	}
	if err := c.Bind(&current); err != nil {
		return Fail(c, http.StatusBadRequest, "Invalid request body")
	}
	current.ID = id
	if err := a.Store.UpdateAppointment(current); err != nil {
		return FailInternal(c, err)
	}
	return OKMessage(c, current, "Appointment updated")
}

func (a *App) handleDeleteAppointment(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return Fail(c, http.StatusBadRequest, "Invalid id")
	}
	if err := a.Store.DeleteAppointment(id); err != nil {
		return FailInternal(c, err)
	}
	return OKMessage(c, nil, "Appointment deleted")
}

// --- Blog ---

func (a *App) handleAdminBlogList(c echo.Context) error {
	posts, err := a.Store.ListAllPosts()
	if err != nil {
		return FailInternal(c, err)
	}
	if posts == nil {
		posts = []BlogPost{}
	}
	return OK(c, posts)
}

func (a *App) handleAdminBlogGet(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return Fail(c, http.StatusBadRequest, "Invalid id")
	}
	post, err := a.Store.GetPost(id)
	if err != nil {
		return notFoundOr(c, err, "Post not found")
	}
	return OK(c, post)
}

func (a *App) handleCreateBlogPost(c echo.Context) error {
	var post BlogPost
	if err := c.Bind(&post); err != nil {
		return Fail(c, http.StatusBadRequest, "Invalid request body")
	}
	if post.Title == "" {
		return Fail(c, http.StatusBadRequest, "Title is required")
	}
	if post.Slug == "" {
		post.Slug = Slugify(post.Title)
	}
	if post.Slug == "" {
		return Fail(c, http.StatusBadRequest, "Slug is required")
	}
	id, err := a.Store.CreatePost(post)
	if err != nil {
		return FailInternal(c, err)
	}
	a.Cache.Invalidate()
	return OKMessage(c, map[string]int64{"id": id}, "Post created")
}

// handleUpdateBlogPost merges a partial body over the stored row using a
// typed patch, so `{"published": true}` flips publication without touching
// any other field.
func (a *App) handleUpdateBlogPost(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return Fail(c, http.StatusBadRequest, "Invalid id")
	}
	current, err := a.Store.GetPost(id)
	if err != nil {
		return notFoundOr(c, err, "Post not found")
	}
	var patch BlogPostPatch
	if err := c.Bind(&patch); err != nil {
		return Fail(c, http.StatusBadRequest, "Invalid request body")
	}
	merged := patch.Apply(current)
	if err := a.Store.UpdatePost(merged); err != nil {
		return FailInternal(c, err)
	}
	a.Cache.Invalidate()
	updated, err := a.Store.GetPost(id)
	if err != nil {
		return FailInternal(c, err)
	}
	return OKMessage(c, updated, "Post updated")
}

func (a *App) handleDeleteBlogPost(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return Fail(c, http.StatusBadRequest, "Invalid id")
	}
	if err := a.Store.DeletePost(id); err != nil {
		return FailInternal(c, err)
	}
	a.Cache.Invalidate()
	return OKMessage(c, nil, "Post deleted")
}

// handleBlogPreview renders a post's content to HTML for the editor preview
// pane. This is the one admin endpoint that returns HTML instead of JSON.
func (a *App) handleBlogPreview(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return Fail(c, http.StatusBadRequest, "Invalid id")
	}
	post, err := a.Store.GetPost(id)
	if err != nil {
		return notFoundOr(c, err, "Post not found")
	}
	return Render(c, markdown.Component(post.Content, post.InlineImages))
}

// --- Password ---

type passwordChangeRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (a *App) handleChangePassword(c echo.Context) error {
	user, ok := c.Get(userContextKey).(AdminUser)
	if !ok {
		return Fail(c, http.StatusUnauthorized, "Unauthorized")
	}
	var req passwordChangeRequest
	if err := c.Bind(&req); err != nil {
		return Fail(c, http.StatusBadRequest, "Invalid request body")
	}
	if len(req.NewPassword) < 8 {
		return Fail(c, http.StatusBadRequest, "New password must be at least 8 characters")
	}
	if err := compareAndRehash(a.Store, user, req.CurrentPassword, req.NewPassword); err != nil {
		if errors.Is(err, errWrongPassword) {
			return Fail(c, http.StatusUnauthorized, "Current password is incorrect")
		}
		return FailInternal(c, err)
	}
	return OKMessage(c, nil, "Password changed")
}
