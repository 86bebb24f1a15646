package pnc

import "time"

// Build is a read-only snapshot of a build as returned by the orchestration service
type Build struct {
	ID                  string               `json:"id" yaml:"id"`
	Status              string               `json:"status,omitempty" yaml:"status,omitempty"`
	BuildContentID      string               `json:"buildContentId,omitempty" yaml:"buildContentId,omitempty"`
	TemporaryBuild      bool                 `json:"temporaryBuild" yaml:"temporaryBuild"`
	SubmitTime          *time.Time           `json:"submitTime,omitempty" yaml:"submitTime,omitempty"`
	StartTime           *time.Time           `json:"startTime,omitempty" yaml:"startTime,omitempty"`
	EndTime             *time.Time           `json:"endTime,omitempty" yaml:"endTime,omitempty"`
	ScmURL              string               `json:"scmUrl,omitempty" yaml:"scmUrl,omitempty"`
	ScmRevision         string               `json:"scmRevision,omitempty" yaml:"scmRevision,omitempty"`
	ScmTag              string               `json:"scmTag,omitempty" yaml:"scmTag,omitempty"`
	BuildConfigRevision *BuildConfigRevision `json:"buildConfigRevision,omitempty" yaml:"buildConfigRevision,omitempty"`
	User                *User                `json:"user,omitempty" yaml:"user,omitempty"`
	Attributes          map[string]string    `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}

// BuildConfigRevision identifies the build configuration a build was started from
type BuildConfigRevision struct {
	ID   string `json:"id" yaml:"id"`
	Rev  int    `json:"rev,omitempty" yaml:"rev,omitempty"`
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
}

type User struct {
	ID       string `json:"id" yaml:"id"`
	Username string `json:"username,omitempty" yaml:"username,omitempty"`
}

// Artifact is a member of a build's built or dependency artifact set.
// Artifacts are never constructed client-side.
type Artifact struct {
	ID              string `json:"id" yaml:"id"`
	Identifier      string `json:"identifier,omitempty" yaml:"identifier,omitempty"`
	Purl            string `json:"purl,omitempty" yaml:"purl,omitempty"`
	Filename        string `json:"filename,omitempty" yaml:"filename,omitempty"`
	Size            int64  `json:"size,omitempty" yaml:"size,omitempty"`
	Md5             string `json:"md5,omitempty" yaml:"md5,omitempty"`
	Sha1            string `json:"sha1,omitempty" yaml:"sha1,omitempty"`
	Sha256          string `json:"sha256,omitempty" yaml:"sha256,omitempty"`
	ArtifactQuality string `json:"artifactQuality,omitempty" yaml:"artifactQuality,omitempty"`
	BuildCategory   string `json:"buildCategory,omitempty" yaml:"buildCategory,omitempty"`
	DeployPath      string `json:"deployPath,omitempty" yaml:"deployPath,omitempty"`
}

// ListOptions carries the optional sort and query expressions of a list call.
// A nil field is absent and is not sent to the service; an empty string is sent as-is.
type ListOptions struct {
	Sort  *string
	Query *string
}

// page is the envelope the service wraps every collection page in
type page[T any] struct {
	PageIndex  int `json:"pageIndex"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
	TotalHits  int `json:"totalHits"`
	Content    []T `json:"content"`
}
