package sl

import (
	"log/slog"

	"github.com/geoknoesis/ntrender/rdf"
)

// Err returns an "error" attribute for err.
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}

// Code returns a "code" attribute carrying the rdf error code of err.
func Code(err error) slog.Attr {
	return slog.String("code", string(rdf.Code(err)))
}
