package punch

import "context"

type Service interface {
	// RecordPunch applies an automatic punch to today's row. Duplicate
	// punches of the same phase yield an Already outcome, never an error.
	RecordPunch(ctx context.Context, req PunchRequest) (Outcome, error)

	// VerifyFace sends the image to the face-recognition service and, on a
	// confident identification, records the punch.
	VerifyFace(ctx context.Context, req FaceVerifyRequest) (Outcome, error)

	// AdminUpdate applies an administrative edit to today's row and
	// re-projects the attendance record when the employee is known.
	AdminUpdate(ctx context.Context, req AdminUpdateRequest) (Punch, error)
}
