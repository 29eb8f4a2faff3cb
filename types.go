package reelsite

// Portfolio item categories shown by the gallery filter. Category is stored
// as free text; anything outside this set simply matches no filter.
const (
	CategoryVideo     = "video"
	CategoryPhoto     = "photo"
	CategoryAnimation = "animation"
)

// PortfolioItem is a single piece of work shown in the gallery.
// ID is assigned by the store on creation and stable for the record's lifetime.
type PortfolioItem struct {
	ID          string
	Title       string
	Category    string
	Image       string // thumbnail URL, possibly normalized via NormalizeImageURL
	Description string
	YouTubeURL  string // optional; detail view embeds a player when set
	CreatedAt   string // RFC 3339, set by the store on creation
}

// HasPlayer reports whether the detail view should embed a video player
// instead of the static image.
func (p PortfolioItem) HasPlayer() bool {
	return p.YouTubeURL != "" && (p.Category == CategoryVideo || p.Category == CategoryAnimation)
}

// SiteContent is the singleton set of editable site text. Every field is
// optional; render-time defaults apply to anything left empty.
type SiteContent struct {
	HeroImage      string
	AboutImage     string
	Headline       string
	HomeCaption    string
	AboutText      string
	PortfolioTitle string
	ContactTitle   string
	ContactEmail   string
	StatusTag      string
}

// DefaultSiteContent holds the render-time fallbacks for unset fields.
var DefaultSiteContent = SiteContent{
	Headline:       "Visual World",
	HomeCaption:    "Professional videographer & editor.",
	AboutText:      "Freelance videographer crafting cinematic stories.",
	PortfolioTitle: "Selected Work",
	ContactTitle:   "Let's Talk",
	ContactEmail:   "hello@example.com",
	StatusTag:      "Open for projects",
}

// WithDefaults returns the content with every empty field replaced by its
// hard-coded default.
func (s SiteContent) WithDefaults() SiteContent {
	d := DefaultSiteContent
	if s.Headline == "" {
		s.Headline = d.Headline
	}
	if s.HomeCaption == "" {
		s.HomeCaption = d.HomeCaption
	}
	if s.AboutText == "" {
		s.AboutText = d.AboutText
	}
	if s.PortfolioTitle == "" {
		s.PortfolioTitle = d.PortfolioTitle
	}
	if s.ContactTitle == "" {
		s.ContactTitle = d.ContactTitle
	}
	if s.ContactEmail == "" {
		s.ContactEmail = d.ContactEmail
	}
	if s.StatusTag == "" {
		s.StatusTag = d.StatusTag
	}
	return s
}

// Skill is a CRUD-managed proficiency entry shown on the about section.
type Skill struct {
	ID       string
	Title    string
	Level    int // 0-100
	Category string
}

// ExperienceIcons is the small enumerated icon set for experience entries.
// Anything else renders as DefaultExperienceIcon.
var ExperienceIcons = []string{"camera", "film", "edit", "award", "briefcase"}

// DefaultExperienceIcon is used when an experience names an unknown icon.
const DefaultExperienceIcon = "briefcase"

// Experience is a CRUD-managed career entry. Year is free text, not a date.
type Experience struct {
	ID          string
	Year        string
	Title       string
	Company     string
	Description string
	Icon        string
}

// DisplayIcon returns the entry's icon, falling back to the default when the
// stored value is outside the enumerated set.
func (e Experience) DisplayIcon() string {
	for _, ic := range ExperienceIcons {
		if e.Icon == ic {
			return e.Icon
		}
	}
	return DefaultExperienceIcon
}

// Image is metadata for an admin-uploaded thumbnail.
type Image struct {
	Filename     string
	OriginalName string
	Width        int
	Height       int
	Size         int
	UploadedAt   string
}
