package ocr

import "errors"

// ErrUnavailable is returned by DetectLabels when OCR support is not
// compiled into the binary or the Tesseract runtime cannot be used.
var ErrUnavailable = errors.New("ocr unavailable: built without tesseract support")
