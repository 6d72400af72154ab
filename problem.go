package validated

import (
	"fmt"
	"net/http"
	"reflect"

	"github.com/Gobd/validated/endpoint"
)

// Problem is the validation problem response: an RFC 7807 body with the
// failing fields under "errors".
//
//	{
//	  "type": "Person",
//	  "title": "One or more validation errors occurred (person)",
//	  "status": 400,
//	  "errors": {"age": ["must be no less than 18"]}
//	}
type Problem struct {
	endpoint.ProblemDetail
	Errors Errors `json:"errors"`
}

var problemType = reflect.TypeFor[Problem]()

// NewProblem builds the 400 problem for a parameter named param whose value
// of type modelType failed with errs.
func NewProblem(param string, modelType reflect.Type, errs Errors) *Problem {
	return &Problem{
		ProblemDetail: endpoint.ProblemDetail{
			Type:   typeName(modelType),
			Title:  fmt.Sprintf("One or more validation errors occurred (%s)", param),
			Status: http.StatusBadRequest,
		},
		Errors: errs.clone(),
	}
}

// WriteResponse implements [endpoint.Result].
func (p *Problem) WriteResponse(w http.ResponseWriter, r *http.Request) error {
	out := *p
	if out.TraceID == "" {
		out.TraceID = endpoint.TraceID(r)
	}
	if out.Errors == nil {
		out.Errors = Errors{}
	}
	return endpoint.WriteJSON(w, out.Status, endpoint.ProblemContentType, out)
}

func typeName(t reflect.Type) string {
	if t == nil {
		return ""
	}
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Name() != "" {
		return t.Name()
	}
	return t.String()
}
