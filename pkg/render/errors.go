package render

import "errors"

// ErrUnsupportedNode is returned for a node the Python writer has no form for.
var ErrUnsupportedNode = errors.New("render: unsupported node")
