// Package sesmailer delivers activation email through SES.
package sesmailer

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/goliatone/go-errors"

	"github.com/cgibeparking/parking-api/auth"
)

// Config selects the AWS endpoint, credentials, and sender identity.
type Config struct {
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	// Source is the verified sender address; it doubles as reply-to.
	Source string
	// CC receives a copy of every activation mail.
	CC []string
}

// Mailer implements auth.Mailer over SES.
type Mailer struct {
	client *sesv2.Client
	source string
	cc     []string
}

var _ auth.Mailer = (*Mailer)(nil)

// New builds the SES-backed mailer.
func New(ctx context.Context, cfg Config) (*Mailer, error) {
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

	client := sesv2.NewFromConfig(awsCfg, func(o *sesv2.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	return &Mailer{
		client: client,
		source: cfg.Source,
		cc:     cfg.CC,
	}, nil
}

// SendActivation sends the activation link as plain text. A delivery
// failure surfaces to the caller; there is no retry here.
func (m *Mailer) SendActivation(ctx context.Context, mail auth.ActivationMail) error {
	_, err := m.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(m.source),
		ReplyToAddresses: []string{m.source},
		Destination: &types.Destination{
			ToAddresses: []string{mail.To},
			CcAddresses: m.cc,
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(mail.Subject()),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Text: &types.Content{
						Data:    aws.String(mail.Body()),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	})
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "ses send failed")
	}
	return nil
}
