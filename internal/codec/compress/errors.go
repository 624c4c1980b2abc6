package compress

import "errors"

// ErrCorrupt is returned when the DEFLATE stream cannot be inflated.
var ErrCorrupt = errors.New("compress: corrupt deflate stream")
