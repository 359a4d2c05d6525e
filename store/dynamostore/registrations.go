package dynamostore

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/cgibeparking/parking-api/auth"
)

type registrationRecord struct {
	Token      string `dynamodbav:"token"`
	UserID     string `dynamodbav:"userId"`
	Name       string `dynamodbav:"name"`
	Email      string `dynamodbav:"email"`
	Password   string `dynamodbav:"password"`
	Expiration int64  `dynamodbav:"expiration"`
}

// Registrations implements auth.RegistrationStore over the
// pending-registrations table, keyed by activation token.
type Registrations struct {
	db    *dynamodb.Client
	table string
}

func NewRegistrations(db *dynamodb.Client, table string) *Registrations {
	return &Registrations{db: db, table: table}
}

func (s *Registrations) Get(ctx context.Context, token string) (*auth.PendingRegistration, error) {
	out, err := s.db.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.table),
		Key: map[string]types.AttributeValue{
			"token": &types.AttributeValueMemberS{Value: token},
		},
	})
	if err != nil {
		return nil, wrapStoreErr(err, "registrations get failed")
	}
	if out.Item == nil {
		return nil, notFound("registration")
	}

	var record registrationRecord
	if err := attributevalue.UnmarshalMap(out.Item, &record); err != nil {
		return nil, wrapStoreErr(err, "registrations unmarshal failed")
	}

	return &auth.PendingRegistration{
		Token:      record.Token,
		UserID:     record.UserID,
		Name:       record.Name,
		Email:      record.Email,
		Password:   record.Password,
		Expiration: record.Expiration,
	}, nil
}

func (s *Registrations) Put(ctx context.Context, reg *auth.PendingRegistration) error {
	item, err := attributevalue.MarshalMap(registrationRecord{
		Token:      reg.Token,
		UserID:     reg.UserID,
		Name:       reg.Name,
		Email:      reg.Email,
		Password:   reg.Password,
		Expiration: reg.Expiration,
	})
	if err != nil {
		return wrapStoreErr(err, "registrations marshal failed")
	}

	_, err = s.db.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	})
	if err != nil {
		return wrapStoreErr(err, "registrations put failed")
	}
	return nil
}

func (s *Registrations) Delete(ctx context.Context, token string) error {
	_, err := s.db.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.table),
		Key: map[string]types.AttributeValue{
			"token": &types.AttributeValueMemberS{Value: token},
		},
	})
	if err != nil {
		return wrapStoreErr(err, "registrations delete failed")
	}
	return nil
}
