package domain

// RenderRequest carries the validated inputs of one render job.
type RenderRequest struct {
	Phone string
	Token string
	Year  string
	Mode  Mode
}

// RenderResult is returned to the caller after a successful render.
type RenderResult struct {
	// VideoFile is the deterministic output filename under the exports root.
	VideoFile string
	// Frames is the number of composite frames in the final video, not
	// counting the endcard.
	Frames int
	// SkippedDays counts daily memories dropped due to undecodable or
	// unfetchable images.
	SkippedDays int
}
