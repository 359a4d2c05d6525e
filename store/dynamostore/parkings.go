package dynamostore

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/cgibeparking/parking-api/parkings"
)

type parkingRecord struct {
	ParkingID string `dynamodbav:"parkingId"`
	Name      string `dynamodbav:"name"`
}

// Parkings implements parkings.Store over the Parkings table.
type Parkings struct {
	db    *dynamodb.Client
	table string
}

func NewParkings(db *dynamodb.Client, table string) *Parkings {
	return &Parkings{db: db, table: table}
}

func (s *Parkings) Get(ctx context.Context, parkingID string) (*parkings.Parking, error) {
	out, err := s.db.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.table),
		Key: map[string]types.AttributeValue{
			"parkingId": &types.AttributeValueMemberS{Value: parkingID},
		},
	})
	if err != nil {
		return nil, wrapStoreErr(err, "parkings get failed")
	}
	if out.Item == nil {
		return nil, notFound("parking")
	}

	var record parkingRecord
	if err := attributevalue.UnmarshalMap(out.Item, &record); err != nil {
		return nil, wrapStoreErr(err, "parkings unmarshal failed")
	}
	return &parkings.Parking{ParkingID: record.ParkingID, Name: record.Name}, nil
}

func (s *Parkings) Put(ctx context.Context, parking *parkings.Parking) error {
	item, err := attributevalue.MarshalMap(parkingRecord{
		ParkingID: parking.ParkingID,
		Name:      parking.Name,
	})
	if err != nil {
		return wrapStoreErr(err, "parkings marshal failed")
	}

	_, err = s.db.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	})
	if err != nil {
		return wrapStoreErr(err, "parkings put failed")
	}
	return nil
}

func (s *Parkings) Scan(ctx context.Context) ([]parkings.Parking, error) {
	out := []parkings.Parking{}

	paginator := dynamodb.NewScanPaginator(s.db, &dynamodb.ScanInput{
		TableName: aws.String(s.table),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, wrapStoreErr(err, "parkings scan failed")
		}

		var records []parkingRecord
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &records); err != nil {
			return nil, wrapStoreErr(err, "parkings unmarshal failed")
		}
		for _, record := range records {
			out = append(out, parkings.Parking{ParkingID: record.ParkingID, Name: record.Name})
		}
	}

	return out, nil
}
