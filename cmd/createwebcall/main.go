// Command createwebcall is the lambda function behind POST
// /api/create-web-call.
package main

import (
	"log"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/prognoshealth/retellproxy/webcall"
)

func main() {
	router, err := webcall.NewRouter(webcall.NewService())
	if err != nil {
		log.Fatal(err)
	}

	lambda.Start(router.Route)
}
