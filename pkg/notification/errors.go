package notification

import "errors"

var (
	// ErrMissingID is returned when a notification has no identifier.
	ErrMissingID = errors.New("notification ID is required")

	// ErrInvalidSourceType is returned for a source type outside the closed set.
	ErrInvalidSourceType = errors.New("invalid notification source type")

	// ErrInvalidPriority is returned for a priority outside the 0-3 range.
	ErrInvalidPriority = errors.New("invalid notification priority")

	// ErrReadStateMismatch is returned when IsRead and ReadAt disagree.
	ErrReadStateMismatch = errors.New("read_at must be set if and only if the notification is read")

	// ErrPayloadMismatch is returned when a payload variant does not belong
	// to the notification's source type.
	ErrPayloadMismatch = errors.New("payload variant does not match source type")

	// ErrInvalidFilter is returned for an unrecognized filter value.
	ErrInvalidFilter = errors.New("invalid notification filter")
)
