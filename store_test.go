package reelsite

import (
	"path/filepath"
	"testing"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "test_site.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestCreateItemAssignsID(t *testing.T) {
	s := setupTestStore(t)

	before, err := s.ListItems("")
	if err != nil {
		t.Fatalf("ListItems failed: %v", err)
	}

	id, err := s.CreateItem(PortfolioItem{Title: "Wedding Reel", Category: CategoryVideo, Image: "https://example.com/a.jpg"})
	if err != nil {
		t.Fatalf("CreateItem failed: %v", err)
	}
	if id == "" {
		t.Fatal("CreateItem returned empty id")
	}

	after, err := s.ListItems("")
	if err != nil {
		t.Fatalf("ListItems failed: %v", err)
	}
	if len(after) != len(before)+1 {
		t.Errorf("item count = %d, want %d", len(after), len(before)+1)
	}

	got, err := s.GetItem(id)
	if err != nil {
		t.Fatalf("GetItem failed: %v", err)
	}
	if got.Title != "Wedding Reel" {
		t.Errorf("Title = %q, want %q", got.Title, "Wedding Reel")
	}
	if got.CreatedAt == "" {
		t.Error("CreatedAt should be set by the store")
	}

	// A second create must mint a distinct id.
	id2, err := s.CreateItem(PortfolioItem{Title: "Second", Category: CategoryPhoto, Image: "x.jpg"})
	if err != nil {
		t.Fatalf("CreateItem failed: %v", err)
	}
	if id2 == id {
		t.Error("two creates returned the same id")
	}
}

func TestUpdateItemOverwrites(t *testing.T) {
	s := setupTestStore(t)

	id, err := s.CreateItem(PortfolioItem{Title: "Original", Category: CategoryVideo, Image: "a.jpg", Description: "desc", YouTubeURL: "https://youtu.be/abc123DEF45"})
	if err != nil {
		t.Fatalf("CreateItem failed: %v", err)
	}

	// Full overwrite: fields left empty in the update clear the stored value.
	if err := s.UpdateItem(id, PortfolioItem{Title: "Updated", Category: CategoryPhoto, Image: "b.jpg"}); err != nil {
		t.Fatalf("UpdateItem failed: %v", err)
	}

	got, err := s.GetItem(id)
	if err != nil {
		t.Fatalf("GetItem failed: %v", err)
	}
	if got.Title != "Updated" || got.Category != CategoryPhoto || got.Image != "b.jpg" {
		t.Errorf("item = %+v, want updated fields", got)
	}
	if got.Description != "" || got.YouTubeURL != "" {
		t.Errorf("empty update fields should clear stored values, got %+v", got)
	}
}

func TestUpdateItemNoOpEdit(t *testing.T) {
	s := setupTestStore(t)

	id, err := s.CreateItem(PortfolioItem{Title: "Stable", Category: CategoryVideo, Image: "a.jpg", Description: "d"})
	if err != nil {
		t.Fatalf("CreateItem failed: %v", err)
	}
	before, err := s.GetItem(id)
	if err != nil {
		t.Fatalf("GetItem failed: %v", err)
	}

	// Writing back the same values leaves the record identical.
	if err := s.UpdateItem(id, before); err != nil {
		t.Fatalf("UpdateItem failed: %v", err)
	}
	after, err := s.GetItem(id)
	if err != nil {
		t.Fatalf("GetItem failed: %v", err)
	}
	if after != before {
		t.Errorf("no-op edit changed the record: before %+v, after %+v", before, after)
	}
}

func TestGetItemNotFound(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.GetItem("nonexistent")
	if err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteItem(t *testing.T) {
	s := setupTestStore(t)

	id, err := s.CreateItem(PortfolioItem{Title: "Doomed", Category: CategoryVideo, Image: "a.jpg"})
	if err != nil {
		t.Fatalf("CreateItem failed: %v", err)
	}

	if err := s.DeleteItem(id); err != nil {
		t.Fatalf("DeleteItem failed: %v", err)
	}
	if _, err := s.GetItem(id); err != ErrNotFound {
		t.Errorf("item should be gone after delete, got err: %v", err)
	}
}

func TestDeleteAbsentItemIsNoOp(t *testing.T) {
	s := setupTestStore(t)

	if _, err := s.CreateItem(PortfolioItem{Title: "Keeper", Category: CategoryVideo, Image: "a.jpg"}); err != nil {
		t.Fatalf("CreateItem failed: %v", err)
	}

	if err := s.DeleteItem("no-such-id"); err != nil {
		t.Errorf("deleting an absent id should not error, got: %v", err)
	}
	items, err := s.ListItems("")
	if err != nil {
		t.Fatalf("ListItems failed: %v", err)
	}
	if len(items) != 1 {
		t.Errorf("item count = %d, want 1 after absent-id delete", len(items))
	}
}

func TestListItemsCategoryFilter(t *testing.T) {
	s := setupTestStore(t)

	seed := []PortfolioItem{
		{Title: "V1", Category: CategoryVideo, Image: "1.jpg"},
		{Title: "P1", Category: CategoryPhoto, Image: "2.jpg"},
		{Title: "V2", Category: CategoryVideo, Image: "3.jpg"},
		{Title: "A1", Category: CategoryAnimation, Image: "4.jpg"},
		{Title: "Custom", Category: "Drone", Image: "5.jpg"}, // free-text category is stored as-is
	}
	for _, p := range seed {
		if _, err := s.CreateItem(p); err != nil {
			t.Fatalf("CreateItem failed: %v", err)
		}
	}

	videos, err := s.ListItems(CategoryVideo)
	if err != nil {
		t.Fatalf("ListItems failed: %v", err)
	}
	if len(videos) != 2 || videos[0].Title != "V1" || videos[1].Title != "V2" {
		t.Errorf("video filter = %v, want [V1 V2] in insertion order", titles(videos))
	}

	all, err := s.ListItems("")
	if err != nil {
		t.Fatalf("ListItems failed: %v", err)
	}
	if len(all) != 5 {
		t.Errorf("unfiltered count = %d, want 5", len(all))
	}
	for i, want := range []string{"V1", "P1", "V2", "A1", "Custom"} {
		if all[i].Title != want {
			t.Errorf("all[%d].Title = %q, want %q", i, all[i].Title, want)
		}
	}

	drone, err := s.ListItems("Drone")
	if err != nil {
		t.Fatalf("ListItems failed: %v", err)
	}
	if len(drone) != 1 || drone[0].Title != "Custom" {
		t.Errorf("free-text category filter = %v, want [Custom]", titles(drone))
	}

	none, err := s.ListItems("nonexistent")
	if err != nil {
		t.Fatalf("ListItems failed: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("unknown category should match nothing, got %d items", len(none))
	}
}

func titles(items []PortfolioItem) []string {
	out := make([]string, len(items))
	for i, p := range items {
		out[i] = p.Title
	}
	return out
}

func TestSaveContentMerges(t *testing.T) {
	s := setupTestStore(t)

	if err := s.SaveContent(SiteContent{Headline: "Stories in motion", ContactEmail: "hello@example.com"}); err != nil {
		t.Fatalf("SaveContent failed: %v", err)
	}

	// A partial save must not erase fields it leaves empty.
	if err := s.SaveContent(SiteContent{HomeCaption: "Caption only"}); err != nil {
		t.Fatalf("SaveContent failed: %v", err)
	}

	got, err := s.GetContent()
	if err != nil {
		t.Fatalf("GetContent failed: %v", err)
	}
	if got.Headline != "Stories in motion" {
		t.Errorf("Headline = %q, want preserved value", got.Headline)
	}
	if got.ContactEmail != "hello@example.com" {
		t.Errorf("ContactEmail = %q, want preserved value", got.ContactEmail)
	}
	if got.HomeCaption != "Caption only" {
		t.Errorf("HomeCaption = %q, want %q", got.HomeCaption, "Caption only")
	}
}

func TestGetContentMissingRow(t *testing.T) {
	s := setupTestStore(t)

	got, err := s.GetContent()
	if err != nil {
		t.Fatalf("GetContent failed: %v", err)
	}
	if got != (SiteContent{}) {
		t.Errorf("missing row should yield zero value, got %+v", got)
	}

	// Render-time defaults fill the gaps.
	withDefaults := got.WithDefaults()
	if withDefaults.Headline == "" {
		t.Error("WithDefaults should supply a headline")
	}
}

func TestSkillLevelClamped(t *testing.T) {
	s := setupTestStore(t)

	id, err := s.CreateSkill(Skill{Title: "Color Grading", Level: 140})
	if err != nil {
		t.Fatalf("CreateSkill failed: %v", err)
	}
	if err := s.UpdateSkill(id, Skill{Title: "Color Grading", Level: -5}); err != nil {
		t.Fatalf("UpdateSkill failed: %v", err)
	}

	skills, err := s.ListSkills()
	if err != nil {
		t.Fatalf("ListSkills failed: %v", err)
	}
	if len(skills) != 1 {
		t.Fatalf("skill count = %d, want 1", len(skills))
	}
	if skills[0].Level != 0 {
		t.Errorf("Level = %d, want clamped to 0", skills[0].Level)
	}
}

func TestExperienceRoundTrip(t *testing.T) {
	s := setupTestStore(t)

	id, err := s.CreateExperience(Experience{Year: "2021", Title: "Lead Videographer", Company: "Studio X", Icon: "camera"})
	if err != nil {
		t.Fatalf("CreateExperience failed: %v", err)
	}

	exps, err := s.ListExperiences()
	if err != nil {
		t.Fatalf("ListExperiences failed: %v", err)
	}
	if len(exps) != 1 || exps[0].ID != id || exps[0].Company != "Studio X" {
		t.Errorf("experiences = %+v, want the created entry", exps)
	}
	if exps[0].DisplayIcon() != "camera" {
		t.Errorf("DisplayIcon = %q, want camera", exps[0].DisplayIcon())
	}

	if err := s.DeleteExperience(id); err != nil {
		t.Fatalf("DeleteExperience failed: %v", err)
	}
	exps, err = s.ListExperiences()
	if err != nil {
		t.Fatalf("ListExperiences failed: %v", err)
	}
	if len(exps) != 0 {
		t.Errorf("experience count = %d, want 0 after delete", len(exps))
	}
}

func TestUnknownExperienceIconFallsBack(t *testing.T) {
	e := Experience{Icon: "rocket"}
	if got := e.DisplayIcon(); got != DefaultExperienceIcon {
		t.Errorf("DisplayIcon = %q, want %q", got, DefaultExperienceIcon)
	}
}
