package model

// Target platforms
type Platform string

const (
	PlatformTwitter   Platform = "twitter"
	PlatformInstagram Platform = "instagram"
	PlatformLinkedIn  Platform = "linkedin"
	PlatformFacebook  Platform = "facebook"
	PlatformTikTok    Platform = "tiktok"
)

var ValidPlatforms = []Platform{
	PlatformTwitter, PlatformInstagram, PlatformLinkedIn,
	PlatformFacebook, PlatformTikTok,
}

// Content kinds produced by a pipeline stage
type ContentKind string

const (
	ContentKindText  ContentKind = "text"
	ContentKindImage ContentKind = "image"
	ContentKindVideo ContentKind = "video"
)

var ValidContentKinds = []ContentKind{
	ContentKindText, ContentKindImage, ContentKindVideo,
}

// Content formats for media generation
type ContentFormat string

const (
	FormatStory ContentFormat = "story" // vertical 9:16
	FormatPost  ContentFormat = "post"  // horizontal 16:9
)

// Item lifecycle status
type ItemStatus string

const (
	ItemStatusGenerating ItemStatus = "generating"
	ItemStatusComplete   ItemStatus = "complete"
	ItemStatusError      ItemStatus = "error"
)

// Job status
type JobStatus string

const (
	JobStatusQueued    JobStatus = "queued"
	JobStatusRunning   JobStatus = "running"
	JobStatusSucceeded JobStatus = "succeeded"
	JobStatusFailed    JobStatus = "failed"
	JobStatusCanceled  JobStatus = "canceled"
)

// Event types on the progress stream
const (
	EventTypeProgress = "progress"
	EventTypeContent  = "content"
	EventTypeComplete = "complete"
)
