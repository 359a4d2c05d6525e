package dynamostore

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/cgibeparking/parking-api/auth"
)

// userRecord is the persisted shape; roles travel as the delimited
// string the table has always held.
type userRecord struct {
	UserID   string `dynamodbav:"userId"`
	Name     string `dynamodbav:"name"`
	Email    string `dynamodbav:"email"`
	Password string `dynamodbav:"password"`
	Roles    string `dynamodbav:"roles"`
}

// Users implements auth.UserStore over the Users table.
type Users struct {
	db    *dynamodb.Client
	table string
}

func NewUsers(db *dynamodb.Client, table string) *Users {
	return &Users{db: db, table: table}
}

func (s *Users) Get(ctx context.Context, userID string) (*auth.User, error) {
	out, err := s.db.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.table),
		Key: map[string]types.AttributeValue{
			"userId": &types.AttributeValueMemberS{Value: userID},
		},
	})
	if err != nil {
		return nil, wrapStoreErr(err, "users get failed")
	}
	if out.Item == nil {
		return nil, notFound("user")
	}

	var record userRecord
	if err := attributevalue.UnmarshalMap(out.Item, &record); err != nil {
		return nil, wrapStoreErr(err, "users unmarshal failed")
	}

	return &auth.User{
		UserID:   record.UserID,
		Name:     record.Name,
		Email:    record.Email,
		Password: record.Password,
		Roles:    auth.ParseRoles(record.Roles),
	}, nil
}

func (s *Users) Put(ctx context.Context, user *auth.User) error {
	item, err := attributevalue.MarshalMap(userRecord{
		UserID:   user.UserID,
		Name:     user.Name,
		Email:    user.Email,
		Password: user.Password,
		Roles:    user.Roles.String(),
	})
	if err != nil {
		return wrapStoreErr(err, "users marshal failed")
	}

	_, err = s.db.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	})
	if err != nil {
		return wrapStoreErr(err, "users put failed")
	}
	return nil
}
