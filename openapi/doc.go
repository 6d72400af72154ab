// Package openapi renders endpoint metadata into OpenAPI 3 documents.
//
// Endpoints with a validated body carry [endpoint.Accepts] and
// [endpoint.Produces] metadata; [AddEndpoint] turns them into the request
// body and the 400 validation problem response of an operation:
//
//	doc := openapi.DocBase("people", "People API", "1.0")
//	openapi.AddEndpoint(doc, ep, openapi.Endpoint{
//	    OperationID: "createPerson",
//	    Response:    Person{},
//	})
//	r.Handle("/openapi.json", openapi.HandlerMust(doc))
package openapi
