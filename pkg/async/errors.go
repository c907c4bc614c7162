package async

import "errors"

// ErrTimeout is returned by AwaitWithTimeout when the computation does not
// complete in time. The computation itself keeps running.
var ErrTimeout = errors.New("async: await timed out")
