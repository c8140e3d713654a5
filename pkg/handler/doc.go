// Package handler turns typed functions into http.HandlerFunc values.
//
// A HandlerFunc receives a Context and a bound request value and returns a
// Response. Wrap runs the configured binders, calls the function and renders
// the result; any error along the way goes to the ErrorHandler.
//
//	type ContactRequest struct {
//		Name  string `json:"name" form:"name"`
//		Email string `json:"email" form:"email"`
//	}
//
//	r.Post("/api/contact", handler.Wrap(
//		func(ctx handler.Context, req ContactRequest) handler.Response {
//			return handler.JSON(result, handler.WithJSONStatus(http.StatusCreated))
//		},
//		handler.WithBinders[ContactRequest](binder.JSON(64<<10), binder.Form(64<<10)),
//		handler.WithErrorHandler[ContactRequest](errorHandler),
//	))
//
// # Responses
//
// JSON and JSONError write the {"data", "meta", "error"} envelope. Templ
// renders a component as a page, or as a DataStar element patch when the
// request came from DataStar. Redirect does the same for navigation. Empty
// writes only a status code.
package handler
