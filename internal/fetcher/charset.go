package fetcher

import (
	"io"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/encoding/htmlindex"
)

// DecodeCharset wraps r so that it yields UTF-8 from the named encoding
// (any WHATWG label, e.g. "windows-1252", "latin1"). An empty name or a
// UTF-8 label returns r unchanged.
func DecodeCharset(r io.Reader, name string) (io.Reader, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(name, "utf-8") || strings.EqualFold(name, "utf8") {
		return r, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, eris.Wrapf(err, "unsupported charset %q", name)
	}
	return enc.NewDecoder().Reader(r), nil
}
