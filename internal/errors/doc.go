// Package errors is the structured error type shared by every layer of
// grimoire-api.
//
// Repositories return NotFound, InvalidArgument or Internal errors.
// Orchestrators validate input with a ValidationBuilder and wrap repository
// errors with business context:
//
//	if err := repo.Get(ctx, input); err != nil {
//	    return nil, errors.Wrap(err, "failed to get character")
//	}
//
// Wrap keeps the code of the innermost *Error, so a NotFound raised in
// storage still leaves the HTTP boundary as a 404. Handlers turn errors into
// responses with Code.HTTPStatus and UserMessage; the latter hides the detail
// of Internal, Unavailable and DataLoss errors, which are logged instead.
package errors
