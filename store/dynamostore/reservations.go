package dynamostore

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/cgibeparking/parking-api/reservations"
)

type reservationRecord struct {
	ID              string `dynamodbav:"id"`
	ParkingID       string `dynamodbav:"parkingId"`
	ReservationDate string `dynamodbav:"reservationDate"`
	UserID          string `dynamodbav:"userId"`
}

// Reservations implements reservations.Store over the Reservations
// table, whose composite key is (parkingId, reservationDate).
type Reservations struct {
	db    *dynamodb.Client
	table string
}

func NewReservations(db *dynamodb.Client, table string) *Reservations {
	return &Reservations{db: db, table: table}
}

func reservationDynamoKey(parkingID, date string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"parkingId":       &types.AttributeValueMemberS{Value: parkingID},
		"reservationDate": &types.AttributeValueMemberS{Value: date},
	}
}

func (s *Reservations) Get(ctx context.Context, parkingID, date string) (*reservations.Reservation, error) {
	out, err := s.db.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.table),
		Key:       reservationDynamoKey(parkingID, date),
	})
	if err != nil {
		return nil, wrapStoreErr(err, "reservations get failed")
	}
	if out.Item == nil {
		return nil, notFound("reservation")
	}

	var record reservationRecord
	if err := attributevalue.UnmarshalMap(out.Item, &record); err != nil {
		return nil, wrapStoreErr(err, "reservations unmarshal failed")
	}
	return recordToReservation(record), nil
}

func (s *Reservations) Put(ctx context.Context, reservation *reservations.Reservation) error {
	item, err := attributevalue.MarshalMap(reservationRecord{
		ID:              reservation.ID,
		ParkingID:       reservation.ParkingID,
		ReservationDate: reservation.ReservationDate,
		UserID:          reservation.UserID,
	})
	if err != nil {
		return wrapStoreErr(err, "reservations marshal failed")
	}

	_, err = s.db.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	})
	if err != nil {
		return wrapStoreErr(err, "reservations put failed")
	}
	return nil
}

func (s *Reservations) Delete(ctx context.Context, parkingID, date string) error {
	_, err := s.db.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.table),
		Key:       reservationDynamoKey(parkingID, date),
	})
	if err != nil {
		return wrapStoreErr(err, "reservations delete failed")
	}
	return nil
}

func (s *Reservations) QueryByDatePrefix(ctx context.Context, parkingID, datePrefix string) ([]reservations.Reservation, error) {
	out := []reservations.Reservation{}

	paginator := dynamodb.NewQueryPaginator(s.db, &dynamodb.QueryInput{
		TableName:              aws.String(s.table),
		KeyConditionExpression: aws.String("parkingId = :parkingId AND begins_with(reservationDate, :date)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":parkingId": &types.AttributeValueMemberS{Value: parkingID},
			":date":      &types.AttributeValueMemberS{Value: datePrefix},
		},
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, wrapStoreErr(err, "reservations query failed")
		}

		var records []reservationRecord
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &records); err != nil {
			return nil, wrapStoreErr(err, "reservations unmarshal failed")
		}
		for _, record := range records {
			out = append(out, *recordToReservation(record))
		}
	}

	return out, nil
}

func recordToReservation(record reservationRecord) *reservations.Reservation {
	return &reservations.Reservation{
		ID:              record.ID,
		ParkingID:       record.ParkingID,
		ReservationDate: record.ReservationDate,
		UserID:          record.UserID,
	}
}
