package confloader

import (
	"errors"

	"github.com/knadh/koanf/v2"

	"github.com/yndnr/migrations-go/internal/core/domain"
)

// ErrReadBytesNotSupported is returned when ReadBytes is called on a document provider.
var ErrReadBytesNotSupported = errors.New("confloader: ReadBytes not supported by document provider, use Read() instead")

// documentProvider feeds an already parsed document into koanf.
type documentProvider domain.Document

var _ koanf.Provider = documentProvider(nil)

// ReadBytes returns an error as the document is already decoded.
func (d documentProvider) ReadBytes() ([]byte, error) {
	return nil, ErrReadBytesNotSupported
}

// Read returns the document.
func (d documentProvider) Read() (map[string]any, error) {
	return d, nil
}
