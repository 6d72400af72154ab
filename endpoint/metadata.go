package endpoint

import (
	"net/http"
	"reflect"
	"slices"
	"strings"
)

// Builder collects endpoint metadata while an endpoint is constructed.
type Builder struct {
	Method   string
	Pattern  string
	Metadata []any
}

// Add appends metadata items.
func (b *Builder) Add(md ...any) {
	b.Metadata = append(b.Metadata, md...)
}

// Accepts describes a request body an endpoint reads.
type Accepts struct {
	ContentTypes []string
	RequestType  reflect.Type
	Optional     bool
}

// Produces describes a response an endpoint may write.
type Produces struct {
	StatusCode   int
	Type         reflect.Type
	ContentTypes []string
}

// MetadataOf returns the items of md with type M, in order.
func MetadataOf[M any](md []any) []M {
	var out []M
	for _, item := range md {
		if m, ok := item.(M); ok {
			out = append(out, m)
		}
	}
	return out
}

// AcceptedContentTypes returns the distinct content types of every [Accepts]
// item in md, in first-seen order.
func AcceptedContentTypes(md []any) []string {
	var out []string
	for _, a := range MetadataOf[Accepts](md) {
		for _, ct := range a.ContentTypes {
			if !slices.Contains(out, ct) {
				out = append(out, ct)
			}
		}
	}
	return out
}

// HasBody reports whether requests with method carry a body the endpoint
// should document. Methods match case-insensitively, as chi routes them.
func HasBody(method string) bool {
	switch strings.ToUpper(method) {
	case http.MethodGet, http.MethodHead:
		return false
	}
	return true
}
