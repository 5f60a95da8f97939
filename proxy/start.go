package proxy

import (
	"github.com/aws/aws-lambda-go/lambda"
)

// Start validates the route table and hands Dispatch to the lambda runtime.
// A router holding build errors aborts startup instead of serving with routes
// missing. Registration must be finished before Start is called: the runtime
// may invoke Dispatch concurrently and the table is read without locking.
func (router *Router) Start() error {
	if !router.Valid() {
		return router.BuildErrors()
	}

	lambda.Start(router.Dispatch)
	return nil
}
