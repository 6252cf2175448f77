package clinicfolio

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestNewStore(t *testing.T) {
	s := setupTestStore(t)
	if s.db == nil {
		t.Fatal("db should not be nil")
	}
}

func TestProfileSingleRow(t *testing.T) {
	s := setupTestStore(t)

	// First read creates the empty row.
	p, err := s.GetProfile()
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	if p.ID != 1 {
		t.Errorf("profile id = %d, want 1", p.ID)
	}

	p.FullName = "Dr. Jane Doe"
	p.Title = "Dermatologist"
	if err := s.SaveProfile(p); err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}

	got, err := s.GetProfile()
	if err != nil {
		t.Fatalf("GetProfile after save failed: %v", err)
	}
	if got.FullName != "Dr. Jane Doe" || got.Title != "Dermatologist" {
		t.Errorf("profile not persisted: %+v", got)
	}
}

func TestServicesOrderedByDisplayOrder(t *testing.T) {
	s := setupTestStore(t)

	for _, svc := range []Service{
		{Title: "Consultation", DisplayOrder: 2},
		{Title: "Laser Therapy", DisplayOrder: 1},
		{Title: "Surgery", DisplayOrder: 3},
	} {
		if _, err := s.CreateService(svc); err != nil {
			t.Fatalf("CreateService failed: %v", err)
		}
	}

	items, err := s.ListServices()
	if err != nil {
		t.Fatalf("ListServices failed: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("got %d services, want 3", len(items))
	}
	want := []string{"Laser Therapy", "Consultation", "Surgery"}
	for i, w := range want {
		if items[i].Title != w {
			t.Errorf("items[%d].Title = %q, want %q", i, items[i].Title, w)
		}
	}
}

func TestServiceUpdateAndDelete(t *testing.T) {
	s := setupTestStore(t)

	id, err := s.CreateService(Service{Title: "Old", Description: "keep me"})
	if err != nil {
		t.Fatalf("CreateService failed: %v", err)
	}

	svc, err := s.GetService(id)
	if err != nil {
		t.Fatalf("GetService failed: %v", err)
	}
	svc.Title = "New"
	if err := s.UpdateService(svc); err != nil {
		t.Fatalf("UpdateService failed: %v", err)
	}

	got, err := s.GetService(id)
	if err != nil {
		t.Fatalf("GetService after update failed: %v", err)
	}
	if got.Title != "New" || got.Description != "keep me" {
		t.Errorf("update lost fields: %+v", got)
	}

	// Hard delete, idempotent.
	if err := s.DeleteService(id); err != nil {
		t.Fatalf("DeleteService failed: %v", err)
	}
	if err := s.DeleteService(id); err != nil {
		t.Fatalf("second DeleteService should be a no-op, got: %v", err)
	}
	items, err := s.ListServices()
	if err != nil {
		t.Fatalf("ListServices failed: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("deleted service still listed: %+v", items)
	}
}

func TestAppointmentDefaults(t *testing.T) {
	s := setupTestStore(t)

	id, err := s.CreateAppointment(Appointment{FullName: "Jane Doe", Email: "jane@example.com"})
	if err != nil {
		t.Fatalf("CreateAppointment failed: %v", err)
	}

	got, err := s.GetAppointment(id)
	if err != nil {
		t.Fatalf("GetAppointment failed: %v", err)
	}
	if got.Status != "pending" {
		t.Errorf("status = %q, want %q", got.Status, "pending")
	}
	if got.CreatedAt == "" {
		t.Error("created_at not stamped")
	}
}

func TestAppointmentsNewestFirst(t *testing.T) {
	s := setupTestStore(t)

	first, _ := s.CreateAppointment(Appointment{FullName: "A", Email: "a@x.com"})
	second, _ := s.CreateAppointment(Appointment{FullName: "B", Email: "b@x.com"})

	items, err := s.ListAppointments()
	if err != nil {
		t.Fatalf("ListAppointments failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d appointments, want 2", len(items))
	}
	if items[0].ID != second || items[1].ID != first {
		t.Errorf("not newest first: %+v", items)
	}
}

func TestBlogPostRoundTrip(t *testing.T) {
	s := setupTestStore(t)

	post := BlogPost{
		Title:     "Skin Care Basics",
		Slug:      "skin-care-basics",
		Excerpt:   "The essentials.",
		Content:   strings.Repeat("word ", 450),
		Published: true,
		Theme:     json.RawMessage(`{"mode":"dark"}`),
		MetaTitle: "Skin Care",
		Tags:      []string{"Skin", "care"},
		Category:  "advice",
		Author:    "Dr. Doe",
		InlineImages: []InlineImage{
			{ID: "img1", Name: "before.jpg", Base64: "Zm9v", Alt: "before", Caption: "Before"},
		},
	}
	id, err := s.CreatePost(post)
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	got, err := s.GetPost(id)
	if err != nil {
		t.Fatalf("GetPost failed: %v", err)
	}
	if got.Title != post.Title || got.Slug != post.Slug || got.Excerpt != post.Excerpt {
		t.Errorf("fields lost: %+v", got)
	}
	if !got.Published {
		t.Error("published flag lost")
	}
	if string(got.Theme) != `{"mode":"dark"}` {
		t.Errorf("theme = %s", got.Theme)
	}
	// Tags normalize to lowercase.
	if len(got.Tags) != 2 || got.Tags[0] != "skin" || got.Tags[1] != "care" {
		t.Errorf("tags = %v", got.Tags)
	}
	// 450 words at 200 wpm rounds up to 3 minutes.
	if got.ReadingTime != 3 {
		t.Errorf("reading_time = %d, want 3", got.ReadingTime)
	}
	if len(got.InlineImages) != 1 || got.InlineImages[0].ID != "img1" {
		t.Errorf("inline images = %+v", got.InlineImages)
	}
	if got.CreatedAt == "" || got.UpdatedAt == "" {
		t.Error("timestamps not stamped")
	}
}

func TestListPublishedExcludesDrafts(t *testing.T) {
	s := setupTestStore(t)

	if _, err := s.CreatePost(BlogPost{Title: "Live", Slug: "live", Published: true}); err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}
	if _, err := s.CreatePost(BlogPost{Title: "Draft", Slug: "draft"}); err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	published, err := s.ListPublishedPosts("")
	if err != nil {
		t.Fatalf("ListPublishedPosts failed: %v", err)
	}
	if len(published) != 1 || published[0].Slug != "live" {
		t.Errorf("published = %+v", published)
	}

	all, err := s.ListAllPosts()
	if err != nil {
		t.Fatalf("ListAllPosts failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("got %d posts in admin list, want 2", len(all))
	}

	if _, err := s.GetPublishedPost("draft"); err == nil {
		t.Error("draft should not resolve on the public lookup")
	}
}

func TestListPublishedPostsByTag(t *testing.T) {
	s := setupTestStore(t)

	s.CreatePost(BlogPost{Title: "A", Slug: "a", Published: true, Tags: []string{"acne"}})
	s.CreatePost(BlogPost{Title: "B", Slug: "b", Published: true, Tags: []string{"laser"}})

	posts, err := s.ListPublishedPosts("Acne")
	if err != nil {
		t.Fatalf("ListPublishedPosts failed: %v", err)
	}
	if len(posts) != 1 || posts[0].Slug != "a" {
		t.Errorf("tag filter = %+v", posts)
	}
}

func TestUpdatePostPreservesCreatedAt(t *testing.T) {
	s := setupTestStore(t)

	id, err := s.CreatePost(BlogPost{Title: "T", Slug: "t", Content: "hello"})
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}
	before, _ := s.GetPost(id)

	merged := before
	merged.Published = true
	if err := s.UpdatePost(merged); err != nil {
		t.Fatalf("UpdatePost failed: %v", err)
	}

	after, _ := s.GetPost(id)
	if after.CreatedAt != before.CreatedAt {
		t.Errorf("created_at changed: %q -> %q", before.CreatedAt, after.CreatedAt)
	}
	if !after.Published {
		t.Error("update not applied")
	}
}

func TestBlogPostPatchApply(t *testing.T) {
	current := BlogPost{
		Title:     "Original",
		Slug:      "original",
		Excerpt:   "keep",
		Content:   "keep too",
		Tags:      []string{"a"},
		Published: false,
	}
	published := true
	merged := BlogPostPatch{Published: &published}.Apply(current)

	if !merged.Published {
		t.Error("patch field not applied")
	}
	if merged.Title != "Original" || merged.Excerpt != "keep" || merged.Content != "keep too" {
		t.Errorf("patch nulled out unrelated fields: %+v", merged)
	}
	if len(merged.Tags) != 1 || merged.Tags[0] != "a" {
		t.Errorf("tags lost: %v", merged.Tags)
	}
}
