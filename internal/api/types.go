package api

// Language is a programming language tag attached to a project.
type Language struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
}

// Specialization is a curriculum track a project belongs to.
type Specialization struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
}

// Project represents a curriculum project record as served by the backend.
// Optional numeric fields are pointers so that "absent" stays distinguishable
// from zero.
type Project struct {
	ID                 int              `json:"id"`
	ProjectID          int              `json:"project_id"`
	Name               string           `json:"name"`
	Slug               string           `json:"slug"`
	Description        string           `json:"description"`
	ParentName         *string          `json:"parent_name,omitempty"`
	Objectives         []string         `json:"objectives"`
	EstimateTimeHours  *int             `json:"estimate_time"`
	Solo               bool             `json:"solo"`
	XPPoints           *int             `json:"xp_points"`
	Prerequisites      []string         `json:"prerequisites"`
	SubjectDownloadURL *string          `json:"subject_download_url,omitempty"`
	Languages          []Language       `json:"languages"`
	Specializations    []Specialization `json:"specializations"`
	CreatedAt          string           `json:"created_at,omitempty"`
	UpdatedAt          string           `json:"updated_at,omitempty"`
}

// User represents the authenticated user as returned by /auth/user/.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Login42  string `json:"login_42"`
	Email    string `json:"email"`
	ImageURL string `json:"image_url"`
	Campus   string `json:"campus"`
}

// AuthURLResponse is the payload of /auth/login/.
type AuthURLResponse struct {
	AuthURL string `json:"auth_url"`
}

// projectsEnvelope is the DRF-style pagination wrapper the backend may use.
// The client accepts either this envelope or a bare array.
type projectsEnvelope struct {
	Count    int       `json:"count"`
	Next     *string   `json:"next"`
	Previous *string   `json:"previous"`
	Results  []Project `json:"results"`
}
