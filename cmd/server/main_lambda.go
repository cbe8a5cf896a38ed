//go:build lambda

package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/idlekit/enhance-backend/internal/enhance"
)

var jsonHeader = map[string]string{
	"Content-Type": "application/json",
}

// handler is the Function URL equivalent of POST /calculate.
func handler(_ context.Context, event events.LambdaFunctionURLRequest) (events.LambdaFunctionURLResponse, error) {
	body := event.Body
	if event.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return errResp(400, "invalid base64 body")
		}
		body = string(decoded)
	}

	var params enhance.Params
	if err := json.Unmarshal([]byte(body), &params); err != nil {
		return errResp(400, "invalid JSON: "+err.Error())
	}

	res, err := enhance.Calculate(params)
	if err != nil {
		code := 400
		if errors.Is(err, enhance.ErrSingularModel) {
			code = 500
		}
		return errResp(code, err.Error())
	}

	respJSON, _ := json.Marshal(res)
	return events.LambdaFunctionURLResponse{StatusCode: 200, Headers: jsonHeader, Body: string(respJSON)}, nil
}

func errResp(code int, msg string) (events.LambdaFunctionURLResponse, error) {
	body, _ := json.Marshal(map[string]string{"error": msg})
	return events.LambdaFunctionURLResponse{StatusCode: code, Headers: jsonHeader, Body: string(body)}, nil
}

func main() {
	lambda.Start(handler)
}
