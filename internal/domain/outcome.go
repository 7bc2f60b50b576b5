package domain

// DuplicateNotice is the fixed user-facing text attached to rejected uploads.
const DuplicateNotice = "DUPLICATE REJECTED (Coherence Already Maxed)"

// UploadOutcome is the terminal result of one ingestion request.
// Exactly one of the two shapes applies: accepted uploads carry the
// inserted count, rejected uploads carry the duplicate evidence.
type UploadOutcome struct {
	Rejected        bool
	InsertedVectors int
	DuplicateChunks int
	MaxSimilarity   float64
}

// AcceptedOutcome marks an upload whose whole batch was inserted.
func AcceptedOutcome(insertedVectors int) UploadOutcome {
	return UploadOutcome{InsertedVectors: insertedVectors}
}

// RejectedOutcome marks an upload refused as a near-duplicate.
// duplicateChunks counts the chunks at or over the threshold and
// maxSimilarity is the highest score observed across the batch.
func RejectedOutcome(duplicateChunks int, maxSimilarity float64) UploadOutcome {
	return UploadOutcome{
		Rejected:        true,
		DuplicateChunks: duplicateChunks,
		MaxSimilarity:   maxSimilarity,
	}
}
