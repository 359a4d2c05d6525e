// Package dynamostore implements the store contracts over DynamoDB:
// Users keyed by userId, Registrations keyed by activation token,
// Parkings keyed by parkingId, Reservations keyed by (parkingId,
// reservationDate). Timeouts and retries are the SDK's; this layer adds
// none of its own.
package dynamostore

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/goliatone/go-errors"
)

// Config selects the AWS endpoint and credentials. An Endpoint override
// points the client at dynamodb-local; static keys are for local
// endpoints, otherwise the default credential chain applies.
type Config struct {
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

// NewClient builds the shared DynamoDB client.
func NewClient(ctx context.Context, cfg Config) (*dynamodb.Client, error) {
	var awsCfg aws.Config
	var err error

	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		awsCfg, err = awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithRegion(cfg.Region),
			awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
				cfg.AccessKey,
				cfg.SecretKey,
				"",
			)),
		)
	} else {
		awsCfg, err = awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithRegion(cfg.Region),
		)
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to load AWS config")
	}

	client := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	return client, nil
}

func notFound(what string) error {
	return errors.New(what+" not found", errors.CategoryNotFound).
		WithCode(errors.CodeNotFound)
}

func wrapStoreErr(err error, msg string) error {
	return errors.Wrap(err, errors.CategoryInternal, msg)
}
