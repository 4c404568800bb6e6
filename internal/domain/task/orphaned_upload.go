package task

const OrphanedUploadTaskType = "OrphanedUploadTask"

// OrphanedUploadTask is a stored file left behind by a product save that
// failed after its uploads succeeded.
type OrphanedUploadTask struct {
	FileID     string `json:"file_id"`     // Identifier returned by the upload endpoint
	Origin     string `json:"origin"`      // Workflow step that produced the file
	RetryCount int    `json:"retry_count"` // Number of failed cleanup attempts
	Error      string `json:"error"`       // Last failure message
}

func (t *OrphanedUploadTask) TaskType() string {
	return OrphanedUploadTaskType
}

func (t *OrphanedUploadTask) TaskValue() ([]byte, error) {
	return DefaultTaskValue(t)
}
