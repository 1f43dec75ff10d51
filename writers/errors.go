package writers

import "errors"

var ErrWriterIsClosed = errors.New("forward writer is closed")
