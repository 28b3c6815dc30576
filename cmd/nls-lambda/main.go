package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-lambda-go/lambda"

	nls "github.com/CovidWA/normalized-location-schema/golang"
)

// AWS Lambda wrapper

type ValidateEvent struct {
	Name   string `json:"name"`
	Bucket string `json:"bucket"`
	Key    string `json:"key"`
}

func RunWithPanicTrap(ctx context.Context, evt ValidateEvent) (result string, err error) {
	//trap any panic calls and return them as errors
	defer func() {
		if r := recover(); r != nil {
			if rerr, ok := r.(error); ok {
				err = rerr
			} else if str, ok := r.(string); ok {
				err = errors.New(str)
			} else {
				err = fmt.Errorf("%v", r)
			}
		}
	}()

	config, err := nls.LoadConfig()
	if err != nil {
		return "", err
	}
	//never write files on lambda
	config.DumpOutput = false

	if len(evt.Bucket) > 0 && len(evt.Key) > 0 {
		feedResult, err := nls.ValidateS3Object(ctx, config, evt.Name, evt.Bucket, evt.Key)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s: %d accepted, %d rejected", feedResult.Name, len(feedResult.Accepted), feedResult.Rejected()), nil
	}

	if err := nls.RunOnce(ctx, config); err != nil {
		return "", err
	}
	return fmt.Sprintf("validated %d feed(s)", len(config.Feeds)), nil
}

func HandleRequest(ctx context.Context, evt ValidateEvent) (string, error) {
	summary, err := RunWithPanicTrap(ctx, evt)

	if err != nil {
		return fmt.Sprintf("Execution finished with error: %s!", evt.Name), err
	}
	return fmt.Sprintf("Execution finished: %s! %s", evt.Name, summary), nil
}

func main() {
	lambda.Start(HandleRequest)
}
