package sanitize

import "regexp"

// Rejection messages are a stable contract for UI display.
const (
	uploadReasonType = "file type not allowed"
	uploadReasonSize = "file exceeds size limit"
	uploadReasonName = "invalid file name"
)

// No path separators, spaces, or unicode: defense against path traversal and
// ambiguous encodings.
var uploadNameRe = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// FileMeta is the caller-declared metadata of an uploaded file. The validator
// never touches file content; collaborators own the bytes.
type FileMeta struct {
	Name      string
	MIMEType  string
	SizeBytes int64
}

// UploadResult reports the first failing check, or Valid with no reason.
// Computed fresh on every call, never stored.
type UploadResult struct {
	Valid  bool
	Reason string
}

// CheckUpload validates upload metadata. Checks run in order and short-circuit
// on the first failure: declared MIME type must appear exactly in allowedTypes
// (no prefix or wildcard matching), size must not exceed maxSizeMB, and the
// filename must match the allow-list pattern.
func CheckUpload(file FileMeta, allowedTypes []string, maxSizeMB float64) UploadResult {
	allowed := false
	for _, t := range allowedTypes {
		if file.MIMEType == t {
			allowed = true
			break
		}
	}
	if !allowed {
		return UploadResult{Reason: uploadReasonType}
	}

	if file.SizeBytes > int64(maxSizeMB*1024*1024) {
		return UploadResult{Reason: uploadReasonSize}
	}

	if !uploadNameRe.MatchString(file.Name) {
		return UploadResult{Reason: uploadReasonName}
	}

	return UploadResult{Valid: true}
}
