package pdfsurface

import "errors"

// ErrLayoutImpossible is returned when a single QR symbol does not fit
// within the page's printable area even on a fresh page.
var ErrLayoutImpossible = errors.New("pdfsurface: qr symbol does not fit on page")
