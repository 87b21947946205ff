package state

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"

	"zcss/scan"
)

// newLocalEnv creates a new LocalEnv instance with default values
func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		start: time.Now(),
	}
}

// LookupEncoding resolves IANA character set name, empty name means no
// encoding.
func LookupEncoding(name string) (encoding.Encoding, error) {
	if len(name) == 0 {
		return nil, nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("unknown character set %q: %w", name, err)
	}
	if enc == nil {
		// known to IANA but not supported by x/text
		return nil, fmt.Errorf("unsupported character set %q", name)
	}
	return enc, nil
}

// SetEncodings resolves HTML fallback charset and bundle file name code page.
// Unknown names are reported and ignored.
func (e *LocalEnv) SetEncodings(fallback, codePage string) {
	log := e.Log
	if log == nil {
		log = zap.NewNop()
	}

	var err error
	if e.Fallback, err = LookupEncoding(fallback); err != nil {
		log.Warn("Unknown character set specification. Ignoring...", zap.String("charset", fallback), zap.Error(err))
	} else if e.Fallback != nil {
		n, _ := ianaindex.IANA.Name(e.Fallback)
		log.Debug("Using fallback charset for HTML templates", zap.String("charset", n))
	}
	if e.CodePage, err = LookupEncoding(codePage); err != nil {
		log.Warn("Unknown character set specification. Ignoring...", zap.String("charset", codePage), zap.Error(err))
	} else if e.CodePage != nil {
		n, _ := ianaindex.IANA.Name(e.CodePage)
		log.Debug("Forcefully converting all non UTF-8 file names in archives", zap.String("charset", n))
	}
}

// Scanner returns template scanner configured from environment.
func (e *LocalEnv) Scanner() *scan.Scanner {
	return scan.New(e.Fallback, e.CodePage, e.Log)
}
